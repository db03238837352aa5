package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/a4kulshr/github-navigator/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	cases := []struct {
		name    string
		level   string
		json    bool
		wantErr bool
	}{
		{"debug level", "debug", false, false},
		{"info level", "info", false, false},
		{"warn level", "warn", false, false},
		{"error level", "error", false, false},
		{"case insensitive", "INFO", false, false},
		{"json handler", "info", true, false},
		{"invalid level", "verbose", false, true},
		{"empty level", "", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tc.level, JSON: tc.json}
			logger, err := cfg.Configure()
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}
