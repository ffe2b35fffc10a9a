package db

import (
	"fmt"

	"secops/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the gorm handle. A nil DB means the process was started without
// DATABASE_URL; repositories report that instead of panicking so the server
// can still serve health and auth-only routes.
type Store struct {
	DB *gorm.DB
}

func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return &Store{}, nil
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{DB: gdb}, nil
}

func (s *Store) Available() bool { return s != nil && s.DB != nil }

// Migrate applies the schema. Tables are created in dependency order so the
// foreign keys on tasks and vulnerabilities resolve.
func (s *Store) Migrate() error {
	if !s.Available() {
		return nil
	}
	return s.DB.AutoMigrate(&ProjectModel{}, &TaskModel{}, &VulnerabilityModel{})
}

var errNoDB = fmt.Errorf("%w: db not configured", domain.ErrUnavailable)
