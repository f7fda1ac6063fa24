package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotationKeepsBackups(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "shade.log")

	// 1MB is the smallest size lumberjack rotates at.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	// Write well past the 1MB threshold so at least one rotation runs.
	payload := strings.Repeat("x", 240)
	for i := 0; i < 12000; i++ {
		Sugar.Infof("frame %d: %s", i, payload)
	}
	Sync()

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("active log file missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}

	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name == "shade.log" || !strings.HasSuffix(name, ".log") {
			continue
		}
		rotated++
		// Rotated names carry the rotation timestamp.
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s missing timestamp", name)
		}
	}
	if rotated == 0 {
		t.Error("expected at least one rotated backup")
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level   string
		kept    []string
		dropped []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			cfg := DefaultFileConfig(logFile)
			cfg.Compress = false

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug line")
			Info("info line")
			Warn("warn line")
			Error("error line")
			Sync()

			data, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(data)

			for _, level := range tt.kept {
				if !strings.Contains(out, level) {
					t.Errorf("level %s: %s missing from output", tt.level, level)
				}
			}
			for _, level := range tt.dropped {
				if strings.Contains(out, level) {
					t.Errorf("level %s: %s should have been filtered", tt.level, level)
				}
			}
		})
	}
}

func TestNopSilencesGlobals(t *testing.T) {
	Nop()

	if Log == nil || Sugar == nil {
		t.Fatal("Nop left globals nil")
	}

	// Must not panic or write anywhere
	Debug("dropped")
	Info("dropped")
	Sync()
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("logs/render.log")

	if cfg.Path != "logs/render.log" {
		t.Errorf("got path %s, want logs/render.log", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 {
		t.Errorf("got %d MB / %d backups / %d days, want 50/3/7",
			cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected compression enabled")
	}
}
