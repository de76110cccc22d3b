package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gokuljawahar87/move-more/scoring"

	"gopkg.in/yaml.v3"
)

// ChallengeConfig is the full challenge definition: scoring window, work
// hours, holidays and weights. It is loaded once at startup and passed into
// every scoring call; nothing reads it as process-wide mutable state.
type ChallengeConfig struct {
	ChallengeStart time.Time `yaml:"challenge_start"`
	ExclusionStart time.Time `yaml:"exclusion_start"`
	// FreezeCutoff protects already-reviewed activities: per-user refresh
	// only imports activities starting on/after it.
	FreezeCutoff time.Time `yaml:"freeze_cutoff"`
	// CompetitionEnd is the final instant an activity may end and count.
	CompetitionEnd time.Time `yaml:"competition_end"`

	TimeZone  string `yaml:"time_zone"`
	WorkHours struct {
		Start string `yaml:"start"` // "HH:MM"
		End   string `yaml:"end"`
	} `yaml:"work_hours"`
	Holidays []string `yaml:"holidays"`
	Weights  struct {
		Run   float64 `yaml:"run"`
		Walk  float64 `yaml:"walk"`
		Cycle float64 `yaml:"cycle"`
	} `yaml:"weights"`
	TopN int `yaml:"top_n"`

	location  *time.Location
	workStart scoring.TimeOfDay
	workEnd   scoring.TimeOfDay
}

// LoadChallengeConfig reads the challenge YAML (CHALLENGE_CONFIG_FILE or
// config/challenge.yaml) and applies env overrides for the weight set, so a
// weight change does not require a redeploy of the config file.
func LoadChallengeConfig() (*ChallengeConfig, error) {
	path := os.Getenv("CHALLENGE_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/challenge.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading challenge config: %w", err)
	}
	var cfg ChallengeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing challenge config: %w", err)
	}

	if v := os.Getenv("WEIGHT_RUN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weights.Run = f
		}
	}
	if v := os.Getenv("WEIGHT_WALK"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weights.Walk = f
		}
	}
	if v := os.Getenv("WEIGHT_CYCLE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weights.Cycle = f
		}
	}

	cfg.location, err = time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading challenge time zone %q: %w", cfg.TimeZone, err)
	}

	cfg.workStart, err = parseTimeOfDay(cfg.WorkHours.Start)
	if err != nil {
		return nil, fmt.Errorf("parsing work_hours.start: %w", err)
	}
	cfg.workEnd, err = parseTimeOfDay(cfg.WorkHours.End)
	if err != nil {
		return nil, fmt.Errorf("parsing work_hours.end: %w", err)
	}

	sc := cfg.ScoringConfig()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location returns the challenge's civil time zone.
func (c *ChallengeConfig) Location() *time.Location {
	return c.location
}

// ScoringConfig converts the loaded config into the engine's parameter form.
func (c *ChallengeConfig) ScoringConfig() scoring.Config {
	holidays := make(map[string]struct{}, len(c.Holidays))
	for _, h := range c.Holidays {
		holidays[h] = struct{}{}
	}
	return scoring.Config{
		ChallengeStart: c.ChallengeStart,
		ExclusionStart: c.ExclusionStart,
		WorkHours:      scoring.WorkHours{Start: c.workStart, End: c.workEnd},
		Holidays:       holidays,
		Location:       c.location,
		Weights: scoring.Weights{
			Run:   c.Weights.Run,
			Walk:  c.Weights.Walk,
			Cycle: c.Weights.Cycle,
		},
		TopN: c.TopN,
	}
}

func parseTimeOfDay(s string) (scoring.TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return scoring.TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return scoring.TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return scoring.TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return scoring.TimeOfDay{Hour: h, Minute: m}, nil
}
