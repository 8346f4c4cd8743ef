package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/config"
	"github.com/matchsage/booking-api/internal/models"
)

// reservationOverlapConstraint keeps two active reservations of one
// employee from overlapping even when the application check is bypassed.
const reservationOverlapConstraint = `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
		) THEN
			ALTER TABLE reservations
				ADD CONSTRAINT reservations_no_overlap
				EXCLUDE USING gist (
					employee_id WITH =,
					tstzrange(date_reserved, ends_at, '[)') WITH &&
				) WHERE (NOT is_cancel);
		END IF;
	END
	$$;
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates the schema. The overlap constraint is Postgres only.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Employee{},
		&models.Reservation{},
		&models.Rating{},
		&models.Receipt{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(reservationOverlapConstraint).Error
}
