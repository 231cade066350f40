package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "debug", true); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Setup(nil, "", false) })

	l := For("surface")
	l.Debug().Int("pointer", 3).Msg("touch started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "surface" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["message"] != "touch started" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "warn", true); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Setup(nil, "", false) })

	l := For("ui")
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("warn should be written")
	}
}

func TestSetupBadLevel(t *testing.T) {
	if err := Setup(nil, "loud", false); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}
