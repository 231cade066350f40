package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"drawsignature/internal/config"
)

func TestFlagsBindConfig(t *testing.T) {
	cfg := config.Default()
	var format string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(fs, &cfg, &format)

	if err := fs.Parse([]string{"--out-dir", "/tmp/sig", "-f", "jpg", "-q", "80", "--trim", "--padding", "4", "--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "/tmp/sig" || format != "jpg" || cfg.Quality != 80 || !cfg.Trim || cfg.Padding != 4 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v format=%q", cfg, format)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestInvalidFormatFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "gif"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected validation error before the window opens")
	}
}
