package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/domain"
	"github.com/matchsage/booking-api/internal/domain/rating"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	repo := NewCatalogGormRepository(db)

	s, err := repo.GetService(ctx, f.service.ID)
	if err != nil {
		t.Fatalf("get service: %v", err)
	}
	if len(s.Employees) != 2 || s.Employees[0].ID != f.alice.ID {
		t.Fatalf("expected employees preloaded in id order, got %+v", s.Employees)
	}

	if err := repo.UpdateServicePhoto(ctx, s.ID, "https://cdn.example.com/a.webp"); err != nil {
		t.Fatalf("photo: %v", err)
	}
	if err := repo.UpdateServicePhoto(ctx, 999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	e := &models.Employee{WorkFor: s.ID, FirstName: "Carol"}
	if err := repo.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	got, err := repo.GetEmployee(ctx, e.ID)
	if err != nil || got.FirstName != "Carol" {
		t.Fatalf("get employee: %+v %v", got, err)
	}
}

func TestRatingRepository_Record(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	repo := NewRatingGormRepository(db)

	apply := func(a rating.Aggregate) rating.Aggregate { return a.Apply(4) }
	agg, err := repo.Record(ctx, rating.Target{Kind: rating.KindEmployee, ID: f.alice.ID},
		&models.Rating{RaterID: f.customer.ID, Score: 4}, apply)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	apply = func(a rating.Aggregate) rating.Aggregate { return a.Apply(2) }
	agg, err = repo.Record(ctx, rating.Target{Kind: rating.KindEmployee, ID: f.alice.ID},
		&models.Rating{RaterID: f.customer.ID, Score: 2}, apply)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if agg.Latest != 2 || agg.Count != 2 || agg.Mean != 3 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}

	var emp models.Employee
	db.First(&emp, f.alice.ID)
	if emp.Rating != 2 || emp.RatingCount != 2 || emp.RatingMean != 3 {
		t.Fatalf("aggregate not persisted: %+v", emp)
	}

	var rows int64
	db.Model(&models.Rating{}).Where("employee_id = ?", f.alice.ID).Count(&rows)
	if rows != 2 {
		t.Fatalf("expected 2 rating rows, got %d", rows)
	}

	_, err = repo.Record(ctx, rating.Target{Kind: rating.KindService, ID: 999},
		&models.Rating{RaterID: f.customer.ID, Score: 1}, apply)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReceiptRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	repo := NewReceiptGormRepository(db)

	res := newReservation(f, f.alice, "10:00", "11:00")
	mustCreate(t, db, res)

	rc := &models.Receipt{
		ReceiptNo:     "r-1",
		CustomerID:    f.customer.ID,
		ReservationID: res.ID,
		Price:         100,
		PaymentDate:   at("11:00"),
		PaymentStatus: "pending",
	}
	if err := repo.CreateReceipt(ctx, rc); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := *rc
	dup.ID = 0
	dup.ReceiptNo = "r-2"
	if err := repo.CreateReceipt(ctx, &dup); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict for a second receipt, got %v", err)
	}

	rc.PaymentStatus = "approved"
	rc.PaymentRef = "mp-1"
	if err := repo.SavePayment(ctx, rc, models.PaidStatusPaid); err != nil {
		t.Fatalf("save payment: %v", err)
	}

	list, err := repo.ListReceiptsByCustomer(ctx, f.customer.ID)
	if err != nil || len(list) != 1 || list[0].PaymentRef != "mp-1" {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}

	var stored models.Reservation
	db.First(&stored, res.ID)
	if stored.PaidStatus != models.PaidStatusPaid {
		t.Fatalf("reservation paid status not mirrored: %s", stored.PaidStatus)
	}
}

func TestIsConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"translated unique violation", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres exclusion violation", &pgconn.PgError{Code: "23P01"}, true},
		{"untranslated driver text", errors.New("UNIQUE constraint failed: receipts.reservation_id"), false},
		{"other error", errors.New("disk full"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConflict(tc.err); got != tc.want {
				t.Fatalf("isConflict(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
