package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/matchsage/booking-api/internal/db"
	"github.com/matchsage/booking-api/internal/models"
)

func newTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "booking.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	if err := dbpkg.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	customer models.User
	owner    models.User
	service  models.Service
	alice    models.Employee
	bob      models.Employee
}

func seed(tb testing.TB, db *gorm.DB) fixture {
	tb.Helper()

	f := fixture{
		customer: models.User{Email: "cust@example.com", Role: models.RoleCustomer},
		owner:    models.User{Email: "owner@example.com", Role: models.RoleOwner},
	}
	mustCreate(tb, db, &f.customer)
	mustCreate(tb, db, &f.owner)

	f.service = models.Service{OwnerID: f.owner.ID, Name: "Haircut", PricePerHour: 100, DurationMin: 60}
	mustCreate(tb, db, &f.service)

	f.alice = models.Employee{WorkFor: f.service.ID, FirstName: "Alice"}
	f.bob = models.Employee{WorkFor: f.service.ID, FirstName: "Bob"}
	mustCreate(tb, db, &f.alice)
	mustCreate(tb, db, &f.bob)

	return f
}

func mustCreate(tb testing.TB, db *gorm.DB, v any) {
	tb.Helper()
	if err := db.Create(v).Error; err != nil {
		tb.Fatalf("create %T: %v", v, err)
	}
}

func at(clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+clock)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
