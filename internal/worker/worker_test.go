package worker

import (
	"testing"
	"time"

	"storepress/internal/config"
	"storepress/internal/logger"
)

func TestStartReturnsAfterStop(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{KafkaBrokers: "127.0.0.1:1", KafkaTopic: "product-events"}
	w := New(cfg, logger.New("test", "error"))

	done := make(chan struct{})
	go func() {
		w.Start()
		close(done)
	}()

	// Let the loop enter its first read before closing the reader.
	time.Sleep(50 * time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
