package configs

import (
	"fmt"

	"pos-backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the sqlite database and keeps it as the process-wide handle.
func ConnectionDB(dsn string) (*gorm.DB, error) {
	database, err := OpenDB(dsn, logger.Warn)
	if err != nil {
		return nil, err
	}
	db = database
	return db, nil
}

func OpenDB(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// unique index violations come back as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	// sqlite allows a single writer; one connection keeps transactions serialized
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return database, nil
}

func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderItem{},
	)
}
