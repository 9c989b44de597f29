package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"storepress/internal/config"
	"storepress/internal/logger"
)

// Optimizer rewrites product copy through a hosted chat-completion model.
// Strictly best-effort: one attempt, and every failure mode falls back to
// the original title and description.
type Optimizer struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *logger.Logger
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type rewrittenCopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

func New(cfg *config.Config, log *logger.Logger) *Optimizer {
	return &Optimizer{
		apiURL:     cfg.SEOAPIURL,
		apiKey:     cfg.SEOAPIKey,
		model:      cfg.SEOModel,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		log:        log.With("component", "seo"),
	}
}

// Optimize returns an SEO-rewritten (title, description) pair, or the
// originals unchanged when the model call fails in any way.
func (o *Optimizer) Optimize(ctx context.Context, title, description string) (string, string) {
	prompt := fmt.Sprintf(`Optimize the following product title and description for SEO. Keep the original meaning and key features, add relevant keywords naturally. Return ONLY a JSON object with "title" and "description" fields, no additional text.

Current title: %s
Current description: %s

Requirements:
- Title: max 60 characters, keyword-rich
- Description: max 160 characters, compelling and keyword-optimized
- Maintain the product's core features and appeal
- No introductory phrases or explanations`, title, description)

	content, err := o.complete(ctx, prompt)
	if err != nil {
		o.log.Warn("seo rewrite failed, keeping original copy", "error", err)
		return title, description
	}

	match := jsonObject.FindString(content)
	if match == "" {
		o.log.Warn("no JSON object in model reply, keeping original copy")
		return title, description
	}

	var rewritten rewrittenCopy
	if err := json.Unmarshal([]byte(match), &rewritten); err != nil {
		o.log.Warn("model reply did not parse, keeping original copy", "error", err)
		return title, description
	}

	outTitle, outDescription := title, description
	if strings.TrimSpace(rewritten.Title) != "" {
		outTitle = strings.TrimSpace(rewritten.Title)
	}
	if strings.TrimSpace(rewritten.Description) != "" {
		outDescription = strings.TrimSpace(rewritten.Description)
	}
	return outTitle, outDescription
}

func (o *Optimizer) complete(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("seo api key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
