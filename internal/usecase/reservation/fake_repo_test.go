package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	users        map[uint]models.User
	services     map[uint]models.Service
	employees    map[uint]models.Employee
	reservations map[uint]models.Reservation
	nextID       uint

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]models.User{},
		services:     map[uint]models.Service{},
		employees:    map[uint]models.Employee{},
		reservations: map[uint]models.Reservation{},
	}
}

// seedCatalog: customer 1, second customer 2, owner 3, admin 4, service 10
// owned by 3 with employees 7 and 8, service 20 with employee 9.
func seedCatalog(f *fakeRepo) {
	f.users[1] = models.User{ID: 1, Role: models.RoleCustomer}
	f.users[2] = models.User{ID: 2, Role: models.RoleCustomer}
	f.users[3] = models.User{ID: 3, Role: models.RoleOwner}
	f.users[4] = models.User{ID: 4, Role: models.RoleAdmin}

	f.services[10] = models.Service{ID: 10, OwnerID: 3, Name: "Haircut", PricePerHour: 100, DurationMin: 60}
	f.services[20] = models.Service{ID: 20, OwnerID: 3, Name: "Massage", PricePerHour: 80, DurationMin: 30}

	f.employees[7] = models.Employee{ID: 7, WorkFor: 10}
	f.employees[8] = models.Employee{ID: 8, WorkFor: 10}
	f.employees[9] = models.Employee{ID: 9, WorkFor: 20}
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (f *fakeRepo) ListEmployeeIDs(_ context.Context, serviceID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []uint{}
	for id, e := range f.employees {
		if e.WorkFor == serviceID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeRepo) ListActiveReservations(_ context.Context, employeeIDs []uint, w resv.Window) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[uint]bool{}
	for _, id := range employeeIDs {
		want[id] = true
	}
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if want[r.EmployeeID] && !r.IsCancel && resv.WindowOf(&r).Overlaps(w) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}

	var same []models.Reservation
	for _, existing := range f.reservations {
		if existing.EmployeeID == r.EmployeeID {
			same = append(same, existing)
		}
	}
	if resv.HasConflict(same, resv.WindowOf(r)) {
		return httperr.ConflictErr("time_conflict")
	}

	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	f.reservations[r.ID] = *r
	return nil
}

func (f *fakeRepo) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRepo) MarkCancelled(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.reservations[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.IsCancel {
		return httperr.InvalidStateErr("reservation_already_cancelled")
	}
	stored.IsCancel = true
	stored.CancelledAt = r.CancelledAt
	f.reservations[r.ID] = stored
	return nil
}

func (f *fakeRepo) UpdatePaidStatus(_ context.Context, id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.PaidStatus = status
	f.reservations[id] = r
	return nil
}

func (f *fakeRepo) list(match func(models.Reservation) bool) []models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateReserved.After(out[j].DateReserved) })
	return out
}

func (f *fakeRepo) ListReservationsByCustomer(_ context.Context, customerID uint) ([]models.Reservation, error) {
	return f.list(func(r models.Reservation) bool { return r.CustomerID == customerID }), nil
}

func (f *fakeRepo) ListReservationsByService(_ context.Context, serviceID uint) ([]models.Reservation, error) {
	return f.list(func(r models.Reservation) bool { return r.ServiceID == serviceID }), nil
}

var _ resv.Repository = (*fakeRepo)(nil)

// recordingNotifier keeps every event it receives.
type recordingNotifier struct {
	mu     sync.Mutex
	events []resv.Event
}

func (n *recordingNotifier) Notify(_ context.Context, ev resv.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}
