// Package testutil provides shared helpers for service tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"finledger/internal/models"
)

var dbCounter int64

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&dbCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// SQLite allows one writer at a time; a single connection keeps
	// concurrent test writers queueing instead of failing with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Person{},
		&models.Transaction{},
		&models.RecurringTransaction{},
		&models.Budget{},
		&models.SavingsGoal{},
		&models.SavingsDeposit{},
		&models.CreditCard{},
		&models.CreditCardInvoice{},
		&models.Investment{},
		&models.Category{},
		&models.ClosedMonth{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
