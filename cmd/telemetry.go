package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	audit "github.com/nexless/storeaudit/internal/application/audit"
	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

type telemetryRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	PagesAudited int       `json:"pages_audited"`
	DurationMS   int64     `json:"duration_ms"`
	HealthScore  int       `json:"health_score"`
	ErrorsTotal  int       `json:"errors_total"`
}

func recordTelemetry(appCtx *AppContext, command string, stats *audit.RunStats) error {
	record := telemetryRecord{
		Timestamp:    time.Now().UTC(),
		Command:      command,
		PagesAudited: stats.Pages,
		DurationMS:   stats.Duration.Milliseconds(),
		HealthScore:  stats.HealthScore,
		ErrorsTotal:  stats.ErrorsTotal,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}

	telemetryPath := filepath.Join(appCtx.AuditDir, consts.TelemetryFileName)
	f, err := os.OpenFile(telemetryPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("open telemetry file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write telemetry: %w", err)
	}

	return nil
}
