package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"optigenius/internal/config"
	"optigenius/internal/metrics"
	"optigenius/internal/model"
)

// Provider represents a logical LLM provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// promptContentLimit caps how much page markdown goes into the prompt.
const promptContentLimit = 6000

// Client is the minimal completion abstraction the generator needs.
// Each provider client sends one system+user exchange and returns the
// raw text of the reply.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator turns a finished analysis into an AI-written narrative. It
// converts the fetched HTML to markdown before prompting so the model
// sees readable content instead of markup.
type Generator struct {
	client    Client
	provider  Provider
	converter *md.Converter
	logger    *slog.Logger
	timeout   time.Duration
}

// NewGenerator builds a Generator from config, picking the configured
// default provider. Returns an error when the provider is missing keys
// so the caller can run without insights instead of failing at request
// time.
func NewGenerator(cfg config.InsightsConfig, logger *slog.Logger) (*Generator, error) {
	client, prov, err := newClientFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:    client,
		provider:  prov,
		converter: md.NewConverter("", true, nil),
		logger:    logger,
		timeout:   30 * time.Second,
	}, nil
}

func newClientFromConfig(cfg config.InsightsConfig) (Client, Provider, error) {
	prov := Provider(cfg.DefaultProvider)

	switch prov {
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" || cfg.OpenAI.Model == "" {
			return nil, prov, errors.New("openai insights provider is not fully configured")
		}
		return newOpenAIClient(cfg.OpenAI), prov, nil
	case ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" || cfg.Anthropic.Model == "" {
			return nil, prov, errors.New("anthropic insights provider is not fully configured")
		}
		return newAnthropicClient(cfg.Anthropic), prov, nil
	case ProviderGoogle:
		if cfg.Google.APIKey == "" || cfg.Google.Model == "" {
			return nil, prov, errors.New("google insights provider is not fully configured")
		}
		return newGoogleClient(cfg.Google), prov, nil
	default:
		return nil, prov, fmt.Errorf("unsupported insights provider: %s", cfg.DefaultProvider)
	}
}

const systemPrompt = "You are an SEO and content strategy expert. Respond with a single JSON object " +
	`of the shape {"summary": string, "suggestions": [string]} and no extra text. ` +
	"The summary is 2-3 sentences; suggestions are concrete, prioritized actions."

// Generate implements analysis.InsightsProvider.
func (g *Generator) Generate(ctx context.Context, result *model.AnalysisResult, html string) (*model.AIInsights, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.converter.ConvertString(html)
	if err != nil {
		// Fall back to whatever the scorer saw; prompting on raw HTML is
		// worse than prompting on nothing.
		g.logger.Warn("markdown conversion failed", "url", result.URL, "error", err)
		content = ""
	}
	if len(content) > promptContentLimit {
		content = content[:promptContentLimit]
	}

	user := buildPrompt(result, content)

	reply, err := g.client.Complete(ctx, systemPrompt, user)
	if err != nil {
		metrics.RecordInsights(string(g.provider), false)
		return nil, err
	}

	ins, err := parseInsights(reply)
	metrics.RecordInsights(string(g.provider), err == nil)
	return ins, err
}

func buildPrompt(result *model.AnalysisResult, content string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this page and explain how to improve its search and AI-engine visibility.\n\n")
	fmt.Fprintf(&sb, "URL: %s\nTitle: %s\nSEO score: %d/100\nAI readiness score: %d/100\nAI ranking score: %d/100\n",
		result.URL, result.Title, result.SEOScore, result.Geo.AIReadinessScore, result.Geo.AIRankingScore)

	if len(result.Issues) > 0 {
		sb.WriteString("\nDetected issues:\n")
		for _, issue := range result.Issues {
			sb.WriteString("- " + issue + "\n")
		}
	}

	if content != "" {
		sb.WriteString("\nPage content (markdown):\n")
		sb.WriteString(content)
	}

	return sb.String()
}

// parseInsights extracts the JSON object from the model reply. Models
// sometimes wrap JSON in prose or code fences, so a failed full parse
// retries on the first {...} block.
func parseInsights(content string) (*model.AIInsights, error) {
	var ins model.AIInsights
	if err := json.Unmarshal([]byte(content), &ins); err == nil && ins.Summary != "" {
		return &ins, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object found in insights reply")
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &ins); err != nil {
		return nil, fmt.Errorf("failed to parse insights reply: %w", err)
	}
	if ins.Summary == "" {
		return nil, errors.New("insights reply has no summary")
	}
	return &ins, nil
}
