package logging

import (
	"testing"

	"github.com/gramflow/gramflow/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{
			name: "json format",
			cfg:  config.LoggingConfig{Level: "INFO", Format: "json"},
		},
		{
			name: "text format",
			cfg:  config.LoggingConfig{Level: "DEBUG", Format: "text"},
		},
		{
			name: "unknown level falls back to info",
			cfg:  config.LoggingConfig{Level: "LOUD", Format: "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitLogger(&tt.cfg); err != nil {
				t.Fatalf("InitLogger() = %v, want nil", err)
			}
			if Logger == nil {
				t.Fatal("Logger should be set after InitLogger")
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() should never return nil")
	}
}

func TestWithComponent(t *testing.T) {
	if err := InitLogger(&config.LoggingConfig{Level: "INFO", Format: "json"}); err != nil {
		t.Fatalf("InitLogger() = %v", err)
	}
	if WithComponent("test") == nil {
		t.Fatal("WithComponent() should return a logger")
	}
}
