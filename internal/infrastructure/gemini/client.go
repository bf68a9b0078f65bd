package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel       = "gemini-2.0-flash"
	maxDescriptionRune = 600
)

const systemInstruction = `You write short product descriptions for an online grocery and household store.
Rules:
- 1 to 3 plain sentences, no more than 400 characters.
- Describe only what the product name and category make evident. Never invent sizes, brands, prices or health claims.
- No markdown, no emoji, no quotes, no headings.
- Reply with the description text only.`

// DescriptionWriter fills in missing product descriptions with Gemini
type DescriptionWriter struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewDescriptionWriter creates a Gemini-backed description writer
func NewDescriptionWriter(ctx context.Context, apiKey string) (*DescriptionWriter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(defaultModel)
	model.SetTemperature(0.4)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(256)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &DescriptionWriter{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // at most 3 requests in flight
		delay:  350 * time.Millisecond, // minimum spacing between requests
	}, nil
}

// WriteDescription generates a description for a product name and category label
func (g *DescriptionWriter) WriteDescription(ctx context.Context, name, category string) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(name, category)))
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	text := cleanDescription(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("empty description")
	}
	return text, nil
}

func buildPrompt(name, category string) string {
	var b strings.Builder
	b.WriteString("Product: ")
	b.WriteString(strings.TrimSpace(name))
	if c := strings.TrimSpace(category); c != "" {
		b.WriteString("\nCategory: ")
		b.WriteString(c)
	}
	return b.String()
}

// extractText concatenates the text parts of every candidate
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

// cleanDescription strips wrapping quotes and markdown noise and caps the length
func cleanDescription(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.Trim(text, "\"'`")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.Join(strings.Fields(text), " ")

	if runes := []rune(text); len(runes) > maxDescriptionRune {
		text = strings.TrimSpace(string(runes[:maxDescriptionRune]))
	}
	return text
}

func (g *DescriptionWriter) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				<-g.sem
				return nil, ctx.Err()
			}
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

// Close closes the underlying client
func (g *DescriptionWriter) Close() error {
	return g.client.Close()
}
