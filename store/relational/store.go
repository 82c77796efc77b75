// Package relational implements the store repositories on the
// relational engine: Postgres in production, a local SQLite file as
// fallback. One gorm handle is opened per store and reused for every
// call; the handle is not shared across processes.
package relational

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"leadhub/config"
	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

// backend holds what every repository needs plus backup bookkeeping.
type backend struct {
	db  *gorm.DB
	log *logrus.Entry

	dialect    string // "postgres" or "sqlite"
	sqlitePath string
	backupDir  string
}

// Open connects the relational engine, migrates the schema, seeds the
// default lookups and the initial admin account, and returns the
// assembled store.
func Open(cfg config.Config) (*store.Store, error) {
	var dialector gorm.Dialector
	dialect := cfg.StoreBackend

	switch dialect {
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("relational store does not support backend %q", cfg.StoreBackend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	if err := models.SeedDefaults(db); err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	hash, err := utils.HashPassword(utils.DefaultAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash default admin password: %w", err)
	}
	if err := models.SeedAdminUser(db, hash); err != nil {
		return nil, fmt.Errorf("seed admin user: %w", err)
	}

	b := &backend{
		db:         db,
		log:        logrus.WithField("store", dialect),
		dialect:    dialect,
		sqlitePath: cfg.SQLitePath,
		backupDir:  cfg.BackupDir,
	}
	return b.assemble(), nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LeadState{},
		&models.LeadPriority{},
		&models.LeadCategory{},
		&models.LeadSource{},
		&models.TaskState{},
		&models.TaskType{},
		&models.Role{},
		&models.Department{},
		&models.User{},
		&models.LeadGroup{},
		&models.GroupMember{},
		&models.Lead{},
		&models.Task{},
		&models.ContactTemplate{},
		&models.ContactSequence{},
		&models.SequenceStep{},
		&models.BrokerLink{},
		&models.Script{},
		&models.Setting{},
		&models.ActivityLogEntry{},
	)
}

func (b *backend) assemble() *store.Store {
	return &store.Store{
		Leads:       leadRepo{b},
		Tasks:       taskRepo{b},
		Users:       userRepo{b},
		Lookups:     lookupRepo{b},
		Groups:      groupRepo{b},
		Templates:   templateRepo{b},
		Sequences:   sequenceRepo{b},
		BrokerLinks: brokerLinkRepo{b},
		Scripts:     scriptRepo{b},
		Settings:    settingRepo{b},
		Activity:    activityRepo{b},
		BackupFunc:  b.backup,
		CloseFunc:   b.close,
	}
}

func (b *backend) close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
