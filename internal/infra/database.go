package infra

import (
	"context"
	"fmt"
	"strings"

	"crkitchen/internal/model"
	"crkitchen/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// NewDatabase opens the document store. DSNs starting with "sqlite:" use the
// embedded driver (local development, tests); anything else goes to postgres.
// Tables are created with AutoMigrate and postgres gets its expression indexes.
func NewDatabase(dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, sqlitePrefix) {
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), gcfg)
	} else {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates one table per collection and applies the postgres-only
// patches. Idempotent.
func RunMigrations(db *gorm.DB) error {
	if err := repository.NewDocumentoRepository(db).Migrar(context.Background()); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches adds indexes over the JSON body that AutoMigrate cannot
// express. Each statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	q := string(model.RecursoCotizaciones)
	patches := []struct{ descr, sql string }{
		{"quotes status index", fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS idx_%[1]s_status ON %[1]s ((data->>'status'))`, q)},
		{"quotes category index", fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS idx_%[1]s_category ON %[1]s ((data->>'category'))`, q)},
		{"inventory descripcion index", fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS idx_%[1]s_descripcion ON %[1]s ((lower(data->>'descripcion')))`, model.RecursoInventario)},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
