package db

import (
	"time"

	"github.com/ptbantu/crm-backend/internal/domain/history"
	"github.com/ptbantu/crm-backend/internal/domain/opportunity"
	"github.com/ptbantu/crm-backend/internal/domain/stage"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates the workflow tables, including the unique index
// that backs stage-order uniqueness among active templates.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&stage.Template{},
		&opportunity.Opportunity{},
		&history.Entry{},
	)
}
