package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SHAMED_CONFIG is set
//  3. env (prefix SHAMED_)
//
// Validation is the caller's responsibility (Validate), so flag overrides
// can still be applied on top of the loaded Config.
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SHAMED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, wrapLoad(err)
		}
	}

	// Environment variables: SHAMED_POLL_INTERVAL, SHAMED_DATABASE_PATH, ...
	// Map env keys like SHAMED_POLL_INTERVAL -> poll_interval (flat keys)
	// Preserve underscores to match koanf tags on the struct. List-valued
	// keys arrive as comma-separated strings and must decode to slices.
	envProvider := env.ProviderWithValue("SHAMED_", ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), "shamed_")
		switch key {
		case "ignore_users", "ignore_names":
			return key, SplitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrapLoad(err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrapLoad(err)
	}

	return &cfg, nil
}

// SplitList parses a comma-separated list, trimming whitespace around each
// element and dropping empties. Used for the ignore_users/ignore_names
// flag and env forms.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
