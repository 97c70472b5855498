package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
		debug         bool
	}{
		{"info", "json", false, false},
		{"debug", "text", false, true},
		{"WARN", "json", false, false},
		{"loud", "json", true, false},
		{"info", "xml", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			l, err := newLogger(tc.level, tc.format)
			if (err != nil) != tc.wantErr {
				t.Fatalf("newLogger() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if got := l.Enabled(context.Background(), slog.LevelDebug); got != tc.debug {
				t.Errorf("debug enabled = %v, want %v", got, tc.debug)
			}
		})
	}
}

func TestLoadReplacements(t *testing.T) {
	if got := loadReplacements(""); got == nil || got.Len() != 0 {
		t.Errorf("empty path: got %v, want empty table", got)
	}

	path := filepath.Join(t.TempDir(), "replacements.json")
	if err := os.WriteFile(path, []byte(`{"values": {"ok": 1, "no": 0}}`), 0o600); err != nil {
		t.Fatalf("write replacements: %v", err)
	}
	if got := loadReplacements(path); got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
}
