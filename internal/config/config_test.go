package config

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"HOME=/root", "PATH=/bin"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Debug() {
		t.Error("Debug should be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load([]string{
		"IMAGE_MCP_LOG_LEVEL=DEBUG",
		"IMAGE_MCP_JPEG_QUALITY=80",
		"IMAGE_MCP_MAX_REQUEST_BYTES=4194304",
		"IMAGE_MCP_PREVIEW_COLOR=#00ff00",
		"IMAGE_MCP_UNKNOWN=ignored",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{LogLevel: "debug", JPEGQuality: 80, MaxRequestBytes: 4194304, PreviewColor: "#00ff00"}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
	if !cfg.Debug() {
		t.Error("Debug should be on")
	}
}

func TestLoad_EmptyValueKeepsDefault(t *testing.T) {
	cfg, err := Load([]string{"IMAGE_MCP_JPEG_QUALITY="})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JPEGQuality != 95 {
		t.Errorf("JPEGQuality: got %d, want 95", cfg.JPEGQuality)
	}
}

func TestLoad_NotANumber(t *testing.T) {
	if _, err := Load([]string{"IMAGE_MCP_JPEG_QUALITY=high"}); err == nil {
		t.Error("Load should fail for a non-numeric quality")
	}
}

func TestLoad_CombinesErrors(t *testing.T) {
	_, err := Load([]string{
		"IMAGE_MCP_JPEG_QUALITY=0",
		"IMAGE_MCP_MAX_REQUEST_BYTES=10",
		"IMAGE_MCP_PREVIEW_COLOR=red",
	})
	if err == nil {
		t.Fatal("Load should fail")
	}

	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("errors: got %d, want 3: %v", len(errs), err)
	}
	for _, name := range []string{"JPEG_QUALITY", "MAX_REQUEST_BYTES", "PREVIEW_COLOR"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestLoad_OtherLogLevelsMeanInfo(t *testing.T) {
	for _, level := range []string{"warn", "ERROR", "verbose", "info"} {
		t.Run(level, func(t *testing.T) {
			cfg, err := Load([]string{"IMAGE_MCP_LOG_LEVEL=" + level})
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.LogLevel != "info" || cfg.Debug() {
				t.Errorf("LogLevel: got %q (debug=%v), want info", cfg.LogLevel, cfg.Debug())
			}
		})
	}
}
