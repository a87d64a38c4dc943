package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

const systemInstruction = `You analyze YouTube comments for a creator dashboard.
Comments are often written in Tanglish, Tinglish, Hinglish or internet slang and use emoji heavily.
Treat emoji as sentiment signals. Always answer with JSON only.`

const singlePrompt = `Classify the sentiment of this comment.
Return a JSON object: {"sentiment": "positive"|"neutral"|"negative", "score": number between -1 and 1, "topics": [up to 3 short lowercase topics]}.

Comment: %s`

const batchPrompt = `Classify the sentiment of each comment in the JSON array below.
Return a JSON object: {"results": [{"id": "<id from input>", "sentiment": "positive"|"neutral"|"negative", "score": number between -1 and 1, "topics": [up to 3 short lowercase topics]}]}.
Return exactly one entry per input id and no other ids.

Comments: %s`

const summaryPrompt = `These are the most-liked comments on a video, as a JSON array.
Summarize what the audience is saying. Return a JSON object with keys:
"sentiment_summary" (one sentence), "sentiment_breakdown" ({"positive","neutral","negative"} percentages summing to 100),
"key_themes" (up to 5 strings), "praise_summary", "criticism_summary",
"ai_insights" (up to 3 actionable suggestions for the creator), "notable_quotes" (up to 3 verbatim comments).

Comments: %s`

// generator is the slice of the genai model the classifier depends on
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	model *genai.GenerativeModel
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// GeminiConfig configures the Gemini classifier
type GeminiConfig struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
	Temperature       float32
}

func (c *GeminiConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 15
	}
}

// Gemini implements Classifier and Summarizer on the Gemini API
type Gemini struct {
	client  *genai.Client
	gen     generator
	limiter *rate.Limiter
	timeout time.Duration
	model   string
	logger  *zap.Logger
}

// NewGemini creates a Gemini classifier. Calls are throttled to
// cfg.RequestsPerMinute and each is bounded by cfg.Timeout.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrClassifierDisabled
	}
	cfg.applyDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.ResponseMIMEType = "application/json"
	if cfg.Temperature > 0 {
		model.GenerationConfig.Temperature = genai.Ptr(cfg.Temperature)
	}

	g := newGemini(&genaiGenerator{model: model}, cfg, logger)
	g.client = client
	g.logger.Info("Gemini classifier initialized",
		zap.String("model", cfg.Model),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute))
	return g, nil
}

func newGemini(gen generator, cfg GeminiConfig, logger *zap.Logger) *Gemini {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	every := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &Gemini{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Every(every), 1),
		timeout: cfg.Timeout,
		model:   cfg.Model,
		logger:  logger.Named("gemini"),
	}
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Model returns the configured model name
func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) call(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return text, nil
}

// Classify scores a single comment
func (g *Gemini) Classify(ctx context.Context, text string) (*Classification, error) {
	quoted, _ := json.Marshal(text)
	resp, err := g.call(ctx, fmt.Sprintf(singlePrompt, quoted))
	if err != nil {
		return nil, err
	}

	var raw rawClassification
	if err := DecodeJSON(resp, &raw); err != nil {
		g.logger.Debug("Unparseable classifier response", zap.String("response", resp), zap.Error(err))
		return nil, err
	}
	result := raw.normalize()
	return &result, nil
}

// ClassifyBatch scores many comments in one request. The returned slice may
// omit inputs or contain ids that were never sent; callers reconcile by id.
func (g *Gemini) ClassifyBatch(ctx context.Context, inputs []Input) ([]Classification, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	resp, err := g.call(ctx, fmt.Sprintf(batchPrompt, payload))
	if err != nil {
		return nil, err
	}

	// some responses come back as a bare array
	var raw rawBatch
	var list []rawClassification
	if err := json.Unmarshal([]byte(stripFences(resp)), &list); err == nil {
		raw.Results = list
	} else if err := DecodeJSON(resp, &raw); err != nil {
		g.logger.Debug("Unparseable batch response", zap.Int("inputs", len(inputs)), zap.Error(err))
		return nil, err
	}

	results := make([]Classification, 0, len(raw.Results))
	for _, r := range raw.Results {
		results = append(results, r.normalize())
	}
	return results, nil
}

// Summarize describes the top comments of a video
func (g *Gemini) Summarize(ctx context.Context, comments []SummaryComment) (*Summary, error) {
	payload, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comments: %w", err)
	}

	resp, err := g.call(ctx, fmt.Sprintf(summaryPrompt, payload))
	if err != nil {
		return nil, err
	}

	var summary Summary
	if err := DecodeJSON(resp, &summary); err != nil {
		return nil, err
	}
	summary.Source = models.SourceClassifier
	return &summary, nil
}
