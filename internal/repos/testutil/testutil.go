// Package testutil provides the shared postgres harness for repo and
// service integration tests. Tests skip unless TEST_POSTGRES_DSN points
// at a throwaway database.
package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hagwonlab/academy-backend/internal/db"
	"github.com/hagwonlab/academy-backend/internal/logger"
)

var (
	openOnce  sync.Once
	sharedDB  *gorm.DB
	sharedErr error
)

// DB returns a migrated connection shared across the test binary.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping database test")
	}
	openOnce.Do(func() {
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			sharedErr = err
			return
		}
		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			sharedErr = err
			return
		}
		if err := db.Migrate(gdb); err != nil {
			sharedErr = err
			return
		}
		sharedDB = gdb
	})
	if sharedErr != nil {
		t.Fatalf("open test database: %v", sharedErr)
	}
	return sharedDB
}

// Tx hands out a transaction that is rolled back when the test ends, so
// repo tests never leak rows into each other.
func Tx(t *testing.T) *gorm.DB {
	t.Helper()
	tx := DB(t).Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

// Log builds a development logger for constructors that require one.
func Log(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
