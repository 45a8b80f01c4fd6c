package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"gutvbooker/internal/domain"
	"gutvbooker/internal/logger"
)

// Connect opens PostgreSQL for postgres:// DSNs and the pure-Go SQLite
// driver for anything else (file path or ":memory:").
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	logger.Info("using SQLite", "dsn", dsn)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one connection keeps in-memory
	// databases intact and turns concurrent writers into a queue.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// caseInsensitiveIndexes back the lookups that ignore case. Both dialects
// accept expression indexes.
var caseInsensitiveIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_lower ON users (LOWER(login))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_equipment_types_name_lower ON equipment_types (LOWER(name))",
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.EquipmentType{},
		&domain.EquipmentItem{},
		&domain.Booking{},
		&domain.BookingItem{},
	)
	if err != nil {
		return err
	}

	for _, stmt := range caseInsensitiveIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
