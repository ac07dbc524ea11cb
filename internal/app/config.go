package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/rostergo/internal/feed"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPath string // hcl/yaml files, optional

	LogFormat       string `validate:"oneof=text json"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	HealthcheckPort int    `validate:"gte=0,lte=65535"`

	Feed feed.Config
}

var configValidate = validator.New()

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Feed.URL == "" && (cfg.Feed.Namespace != "" || cfg.Feed.InsecureSkipVerify) {
		return nil, errors.New("feed options require a feed URL")
	}

	if err := configValidate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		reasons := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			reasons = append(reasons, fmt.Sprintf("%s failed %q check", fe.Namespace(), fe.Tag()))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(reasons, "; "))
	}
	return &cfg, nil
}
