package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/config"
)

// NewFromConfig builds a client for the configured provider. Returns
// nil when no provider is configured; callers treat a nil client as
// rule-based composition only.
func NewFromConfig(cfg *config.LLMConfig, logger *zap.Logger) (Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg.Endpoint, cfg.APIKey, cfg.Model, logger), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.Model, logger), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
