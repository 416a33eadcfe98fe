package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultModel is the analysis model used when none is configured.
	DefaultModel = "claude-haiku-4-5"

	toolName = "record_text_metrics"
)

var ErrAnalysisFailed = errors.New("analysis failed")

// Config configures a Client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
	Timeout time.Duration
}

// Client handles Anthropic API requests for transcript metrics.
type Client struct {
	apiKey string
	model  anthropic.Model
	opts   []option.RequestOption
}

// NewClient creates a new analysis client.
func NewClient(conf Config) *Client {
	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(conf.APIKey),
		option.WithMaxRetries(0),
	}
	if conf.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.BaseURL))
	}
	if conf.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(conf.Timeout))
	}

	return &Client{
		apiKey: conf.APIKey,
		model:  anthropic.Model(model),
		opts:   opts,
	}
}

func countProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": description,
	}
}

// metricsTool returns the tool definition for structured metrics output.
func metricsTool() anthropic.ToolParam {
	return anthropic.ToolParam{
		Name:        toolName,
		Description: anthropic.String("Record the linguistic counts for the transcript"),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type: "object",
			Properties: map[string]interface{}{
				"wordCount":        countProperty("Number of words"),
				"characterCount":   countProperty("Number of characters including spaces"),
				"verbCount":        countProperty("Number of verbs"),
				"nounCount":        countProperty("Number of nouns"),
				"adjectiveCount":   countProperty("Number of adjectives"),
				"conjunctionCount": countProperty("Number of conjunctions"),
				"profanityCount":   countProperty("Number of profane words"),
			},
			Required: []string{
				"wordCount",
				"characterCount",
				"verbCount",
				"nounCount",
				"adjectiveCount",
				"conjunctionCount",
				"profanityCount",
			},
		},
	}
}

// Analyze returns metrics for text. Blank text yields (nil, nil) without a
// remote call.
func (c *Client) Analyze(ctx context.Context, text string) (*Metrics, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: API key required: set ANTHROPIC_API_KEY or run 'voice config set-key anthropic <key>'",
			ErrAnalysisFailed)
	}

	client := anthropic.NewClient(c.opts...)
	toolDef := metricsTool()

	tool := anthropic.ToolUnionParamOfTool(toolDef.InputSchema, toolDef.Name)
	tool.OfTool.Description = toolDef.Description

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
		Tools:      []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceParamOfTool(toolName),
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		slog.Warn("analysis request failed", "error", err, "model", c.model)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	metrics, err := parseMetricsToolUse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	slog.Debug("analysis complete", "model", c.model, "words", metrics.WordCount)

	return metrics, nil
}

// parseMetricsToolUse extracts Metrics from response content blocks.
func parseMetricsToolUse(content []anthropic.ContentBlockUnion) (*Metrics, error) {
	for _, block := range content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != toolName {
			continue
		}

		inputBytes, err := json.Marshal(toolUse.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tool input: %w", err)
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(inputBytes, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse tool input: %w", err)
		}

		for _, field := range metricsTool().InputSchema.Required {
			v, ok := raw[field]
			if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return nil, fmt.Errorf("tool input missing %q", field)
			}
		}

		var metrics Metrics
		if err := json.Unmarshal(inputBytes, &metrics); err != nil {
			return nil, fmt.Errorf("failed to parse tool input: %w", err)
		}

		return &metrics, nil
	}

	return nil, errors.New("no tool use found in Anthropic API response")
}
