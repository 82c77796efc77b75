package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leadhub/models"
)

// backup writes a best-effort JSON export of the primary entity tables
// to the backup directory and returns the created file's path. Each
// table is fetched in its own request; this is not a consistent
// snapshot.
func (b *backend) backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	export := struct {
		ExportedAt time.Time        `json:"exported_at"`
		Leads      []models.Lead    `json:"leads"`
		Tasks      []models.Task    `json:"tasks"`
		Users      []models.User    `json:"users"`
		Settings   []models.Setting `json:"settings"`
	}{ExportedAt: time.Now()}

	// Best effort: a failed table is exported empty, the rest still
	// make it into the file.
	if _, err := b.client.From("leads").Select("*", "", false).ExecuteTo(&export.Leads); err != nil {
		b.log.WithError(err).Warn("backup: exporting leads failed")
	}
	if _, err := b.client.From("tasks").Select("*", "", false).ExecuteTo(&export.Tasks); err != nil {
		b.log.WithError(err).Warn("backup: exporting tasks failed")
	}
	if _, err := b.client.From("users").Select("*", "", false).ExecuteTo(&export.Users); err != nil {
		b.log.WithError(err).Warn("backup: exporting users failed")
	}
	if _, err := b.client.From("settings").Select("*", "", false).ExecuteTo(&export.Settings); err != nil {
		b.log.WithError(err).Warn("backup: exporting settings failed")
	}

	dst := filepath.Join(b.backupDir, "leadhub_export_"+stamp+".json")
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}
