// Package llm wraps the Gemini API behind a small client used by the
// assessment pipeline. Models are addressed by tier so the pipeline can pick
// capability per stage without naming concrete models.
package llm

// ModelTier selects how much model capability an assessment stage gets.
type ModelTier string

const (
	// TierLite covers cheap classification and extraction work.
	TierLite ModelTier = "lite"
	// TierStandard covers idea scoring and improvement reports.
	TierStandard ModelTier = "standard"
	// TierAdvanced covers full feasibility studies.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the tier mapping the assessment pipeline runs with.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back through standard
// then lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
