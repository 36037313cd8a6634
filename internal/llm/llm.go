// Package llm adapts an OpenAI-compatible API to the pipeline's Completer
// and the similarity and index Embedder.
package llm

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/metrics"
)

// #endregion

var (
	// ErrEmptyCompletion is returned when the model produced no choices.
	ErrEmptyCompletion = errors.New("model returned no choices")
	// ErrEmptyEmbedding is returned when fewer vectors come back than inputs.
	ErrEmptyEmbedding = errors.New("embedding response incomplete")
)

// DefaultSystemPrompt is used when Config.SystemPrompt is empty.
const DefaultSystemPrompt = "You are the official Kazi Farms HR assistant. Answer only from the provided context."

// #region config

// Config holds the provider settings shared by Completer and Embedder.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float32
	SystemPrompt string
	// Embedding settings
	EmbeddingModel string
	Dimensions     int
	Logger         *zap.Logger
}

func newClient(cfg *Config) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

func loggerOf(cfg *Config) *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}

// #endregion

// #region completer

// Completer sends one prompt as a system+user chat completion.
type Completer struct {
	client       *openai.Client
	model        string
	temperature  float32
	systemPrompt string
	log          *zap.Logger
}

// NewCompleter creates a chat-completion client.
func NewCompleter(cfg *Config) *Completer {
	sys := cfg.SystemPrompt
	if sys == "" {
		sys = DefaultSystemPrompt
	}
	return &Completer{
		client:       newClient(cfg),
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		systemPrompt: sys,
		log:          loggerOf(cfg).Named("llm"),
	}
}

// Complete returns the first choice's content.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	metrics.ModelRequestDuration.WithLabelValues("complete").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues("complete", "error").Inc()
		return "", fmt.Errorf("chat completion: %w", parseAPIError(err))
	}
	if len(resp.Choices) == 0 {
		metrics.ModelRequestsTotal.WithLabelValues("complete", "empty").Inc()
		return "", ErrEmptyCompletion
	}
	metrics.ModelRequestsTotal.WithLabelValues("complete", "success").Inc()
	c.log.Debug("completion",
		zap.String("model", c.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// #endregion

// #region embedder

// Embedder produces float vectors for a batch of texts.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	log        *zap.Logger
}

// NewEmbedder creates an embedding client.
func NewEmbedder(cfg *Config) *Embedder {
	return &Embedder{
		client:     newClient(cfg),
		model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		dimensions: cfg.Dimensions,
		log:        loggerOf(cfg).Named("embedder"),
	}
}

// Embed returns one vector per input, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	metrics.ModelRequestDuration.WithLabelValues("embed").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues("embed", "error").Inc()
		return nil, fmt.Errorf("embeddings: %w", parseAPIError(err))
	}
	if len(resp.Data) != len(texts) {
		metrics.ModelRequestsTotal.WithLabelValues("embed", "empty").Inc()
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrEmptyEmbedding, len(resp.Data), len(texts))
	}
	metrics.ModelRequestsTotal.WithLabelValues("embed", "success").Inc()

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })
	out := make([][]float32, len(data))
	for i, d := range data {
		out[i] = d.Embedding
	}
	e.log.Debug("embedded", zap.Int("inputs", len(texts)), zap.Int("prompt_tokens", resp.Usage.PromptTokens))
	return out, nil
}

// #endregion

// #region errors

// parseAPIError extracts a readable message from an API failure.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("api error %d: %s: %w", reqErr.HTTPStatusCode, detail, err)
		}
		return fmt.Errorf("api error %d: %w", reqErr.HTTPStatusCode, err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("api error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	return err
}

// extractDetail reads the "detail" field some compatible providers use.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		return parsed.Detail
	}
	return ""
}

// #endregion
