package config

import (
	"fmt"
	"strings"
)

// Prefix is the environment prefix for application settings
// (SALONMIND_DATABASE_URL and so on).
const Prefix = "SALONMIND"

// Config holds the application settings. The capacity, target-utilization
// and business-days values are business assumptions, not measurements; the
// defaults reproduce the established opportunity math (50 slots/day from 5
// staff × 8h × ~1.25 bookings/hr, an 85% utilization target, 20 business
// days per month) and exist as fields so an operator can tune them without
// touching the formulas.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" split_words:"true" required:"true"`

	// Reasoning provider: "anthropic" (default) or "openai". APIKey
	// overrides the provider SDK's usual environment variable; Model
	// overrides the adapter default when set.
	Provider  string `envconfig:"PROVIDER" split_words:"true" default:"anthropic"`
	APIKey    string `envconfig:"API_KEY" split_words:"true"`
	Model     string `envconfig:"MODEL" split_words:"true"`
	MaxTokens int64  `envconfig:"MAX_TOKENS" split_words:"true" default:"4000"`

	CapacityPerDay       int     `envconfig:"CAPACITY_PER_DAY" split_words:"true" default:"50"`
	TargetUtilizationPct float64 `envconfig:"TARGET_UTILIZATION_PCT" split_words:"true" default:"85"`
	BusinessDaysPerMonth int     `envconfig:"BUSINESS_DAYS_PER_MONTH" split_words:"true" default:"20"`

	// Cron expressions for the scheduled workflow runs.
	DailyAnalysisSchedule   string `envconfig:"DAILY_ANALYSIS_SCHEDULE" split_words:"true" default:"0 6 * * *"`
	ChurnPreventionSchedule string `envconfig:"CHURN_PREVENTION_SCHEDULE" split_words:"true" default:"0 9 * * 1"`

	Debug bool `envconfig:"DEBUG" split_words:"true" default:"false"`
}

// Validate checks the settings that envconfig tags cannot express.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.CapacityPerDay <= 0 {
		return fmt.Errorf("capacity per day must be positive, got %d", c.CapacityPerDay)
	}
	if c.TargetUtilizationPct <= 0 || c.TargetUtilizationPct > 100 {
		return fmt.Errorf("target utilization must be in (0, 100], got %v", c.TargetUtilizationPct)
	}
	if c.BusinessDaysPerMonth <= 0 {
		return fmt.Errorf("business days per month must be positive, got %d", c.BusinessDaysPerMonth)
	}
	return nil
}
