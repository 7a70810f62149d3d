package database

import (
	"fmt"
	"time"

	"finledger/internal/logger"
	"finledger/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database connections and schema upkeep.
type Manager struct {
	db       *gorm.DB
	dsn      string // postgres URL, empty for sqlite
	isSQLite bool
}

// NewManager opens the configured database: postgres in deployments,
// a local sqlite file otherwise.
func NewManager(config *Config) (*Manager, error) {
	if config.Driver == DriverSQLite {
		db, err := gorm.Open(sqlite.Open(config.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &Manager{db: db, isSQLite: true}, nil
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, dsn: config.URL()}, nil
}

// RunMigrations brings the schema up to date. Postgres uses the SQL files
// under migrations/; sqlite relies on gorm auto-migration.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	if m.isSQLite {
		if err := m.db.AutoMigrate(allModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := migrate.New("file://migrations", m.dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

func allModels() []interface{} {
	return []interface{}{
		&models.Person{},
		&models.Category{},
		&models.CreditCard{},
		&models.CreditCardInvoice{},
		&models.Transaction{},
		&models.RecurringTransaction{},
		&models.Budget{},
		&models.SavingsGoal{},
		&models.SavingsDeposit{},
		&models.Investment{},
		&models.ClosedMonth{},
	}
}
