package config_test

import (
	"testing"
	"time"

	"github.com/albapepper/scoracle-boxscores/internal/config"
)

func clearIngestEnv(t *testing.T) {
	for _, k := range []string{
		"EXPORT_DIR", "USE_PARQUET", "MIRROR_FORMATS", "NBA_LIVE_BASE_URL",
		"NBA_LEGACY_BASE_URL", "HTTP_TIMEOUT_SECONDS", "BOXSCORE_PACE_MS",
		"START_DATE", "END_DATE", "DAYS_BACK", "INGEST_CRON", "PUBLISH_S3_BUCKET",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearIngestEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExportDir != "export" {
		t.Errorf("ExportDir = %q, want export", cfg.ExportDir)
	}
	if cfg.LiveBaseURL != config.DefaultLiveBaseURL {
		t.Errorf("LiveBaseURL = %q", cfg.LiveBaseURL)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Errorf("HTTPTimeout = %v, want 20s", cfg.HTTPTimeout)
	}
	if cfg.BoxscorePace != 400*time.Millisecond {
		t.Errorf("BoxscorePace = %v, want 400ms", cfg.BoxscorePace)
	}
	if len(cfg.MirrorFormats) != 0 {
		t.Errorf("MirrorFormats = %v, want none", cfg.MirrorFormats)
	}
	if cfg.CronSpec != config.DefaultCron {
		t.Errorf("CronSpec = %q", cfg.CronSpec)
	}
	if cfg.PublishEnabled() {
		t.Error("publishing should be disabled by default")
	}
}

func TestLoad_MirrorFormats(t *testing.T) {
	clearIngestEnv(t)
	t.Setenv("USE_PARQUET", "1")
	t.Setenv("MIRROR_FORMATS", "XLSX, parquet")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{config.MirrorParquet, config.MirrorXLSX}
	if len(cfg.MirrorFormats) != len(want) {
		t.Fatalf("MirrorFormats = %v, want %v", cfg.MirrorFormats, want)
	}
	for i := range want {
		if cfg.MirrorFormats[i] != want[i] {
			t.Errorf("MirrorFormats[%d] = %q, want %q", i, cfg.MirrorFormats[i], want[i])
		}
	}
}

func TestLoad_WindowValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"range ok", map[string]string{"START_DATE": "2024-10-22", "END_DATE": "2024-10-25"}, false},
		{"start only", map[string]string{"START_DATE": "2024-10-22"}, true},
		{"bad layout", map[string]string{"START_DATE": "20241022", "END_DATE": "2024-10-25"}, true},
		{"days back", map[string]string{"DAYS_BACK": "3"}, false},
		{"days back zero", map[string]string{"DAYS_BACK": "0"}, true},
		{"days back text", map[string]string{"DAYS_BACK": "week"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearIngestEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
