package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"storepress/internal/config"
	"storepress/internal/events"
	"storepress/internal/logger"
	"storepress/internal/worker/processors"
)

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.EventProcessor
}

func New(cfg *config.Config, log *logger.Logger) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(cfg.KafkaBrokers, ","),
		GroupID:        "storepress-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    log.With("component", "worker"),
		reader:    reader,
		processor: processors.NewEventProcessor(cfg, log),
	}
}

func (w *Worker) Start() {
	w.logger.Info("worker started, listening for events")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			// A closed reader returns io.EOF
			if errors.Is(err, io.EOF) {
				w.logger.Info("reader closed, stopping")
				return
			}
			w.logger.Error("failed to read message", "error", err)
			continue
		}

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("failed to parse event", "error", err)
			continue
		}

		if err := w.processor.Process(context.Background(), event); err != nil {
			w.logger.Error("failed to process event", "type", event.Type, "error", err)
			continue
		}

		w.logger.Debug("event processed", "type", event.Type, "url", event.URL)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("stopping worker")
	w.reader.Close()
}
