package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/.snake/snake.log", filepath.Join(home, ".snake", "snake.log")},
		{"/var/log/snake.log", "/var/log/snake.log"},
		{"relative.log", "relative.log"},
	}
	for _, tc := range tests {
		got, err := expandHome(tc.in)
		if err != nil {
			t.Fatalf("expandHome(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("expandHome(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "snake.log")
	flagLogFile, flagLogLevel = path, "debug"
	t.Cleanup(func() { flagLogFile, flagLogLevel = "~/.snake/snake.log", "info" })

	logger, closeLog, err := newLogger(true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, expected debug", logger.GetLevel())
	}
	logger.Info("hello", "player", "alice")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "player=alice") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	flagLogLevel = "loud"
	t.Cleanup(func() { flagLogLevel = "info" })

	if _, _, err := newLogger(false); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
