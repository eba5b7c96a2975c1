package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestMaskPassword(t *testing.T) {
	cases := map[string]string{
		"":                                        "",
		"host=db user=app":                        "host=db user=app",
		"host=db password=secret user=app":        "host=db password=*** user=app",
		"host=db password=secret":                 "host=db password=***",
		"postgres://u@h/db?password=secret&ssl=1": "postgres://u@h/db?password=***&ssl=1",
	}

	for in, want := range cases {
		if got := MaskPassword(in); got != want {
			t.Fatalf("MaskPassword(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != slog.LevelDebug {
		t.Fatalf("expected debug level")
	}
	if ParseLevel("warn") != slog.LevelWarn {
		t.Fatalf("expected warn level")
	}
	if ParseLevel("nonsense") != slog.LevelInfo {
		t.Fatalf("expected info fallback")
	}
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	if err := SetupLogger(Config{Level: "info", FilePath: dir}, "tasklist-test"); err != nil {
		t.Fatalf("SetupLogger returned error: %v", err)
	}

	slog.Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "tasklist-test.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log file to contain a record")
	}
}
