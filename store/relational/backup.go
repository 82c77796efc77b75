package relational

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"leadhub/models"
)

// backup snapshots the store into the backup directory and returns
// the created file's path. On SQLite this is a byte-copy of the data
// file; on Postgres a best-effort JSON export of the primary entity
// tables (fetched in separate, non-transactional queries).
func (b *backend) backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	if b.dialect == "sqlite" {
		dst := filepath.Join(b.backupDir, "leadhub_"+stamp+".db")
		if err := copyFile(b.sqlitePath, dst); err != nil {
			return "", fmt.Errorf("backup database file: %w", err)
		}
		return dst, nil
	}

	export := struct {
		ExportedAt time.Time          `json:"exported_at"`
		Leads      []models.Lead      `json:"leads"`
		Tasks      []models.Task      `json:"tasks"`
		Users      []models.User      `json:"users"`
		Settings   []models.Setting   `json:"settings"`
	}{ExportedAt: time.Now()}

	// Best effort: a failed table is exported empty, the rest still
	// make it into the file.
	if err := b.db.WithContext(ctx).Find(&export.Leads).Error; err != nil {
		b.log.WithError(err).Warn("backup: exporting leads failed")
	}
	if err := b.db.WithContext(ctx).Find(&export.Tasks).Error; err != nil {
		b.log.WithError(err).Warn("backup: exporting tasks failed")
	}
	if err := b.db.WithContext(ctx).Find(&export.Users).Error; err != nil {
		b.log.WithError(err).Warn("backup: exporting users failed")
	}
	if err := b.db.WithContext(ctx).Find(&export.Settings).Error; err != nil {
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

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
