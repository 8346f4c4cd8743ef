package reservation

import (
	"sort"
	"time"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start time.Time, d time.Duration) (Window, error) {
	w := Window{Start: start, End: start.Add(d)}
	return w, w.Validate()
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() || !w.Start.Before(w.End) {
		return httperr.ValidationErr("invalid_time_window")
	}
	return nil
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps treats touching endpoints as free: [10:00,11:00) and [11:00,12:00)
// do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

func WindowOf(r *models.Reservation) Window {
	return Window{Start: r.DateReserved, End: r.EndsAt}
}

// FreeEmployees returns, in ascending id order, the employees that have no
// non-cancelled reservation overlapping w. Reservations of employees not in
// employeeIDs are ignored.
func FreeEmployees(employeeIDs []uint, reservations []models.Reservation, w Window) []uint {
	byEmployee := make(map[uint][]models.Reservation, len(employeeIDs))
	for _, r := range reservations {
		if r.IsCancel {
			continue
		}
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	seen := make(map[uint]bool, len(employeeIDs))
	free := make([]uint, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !HasConflict(byEmployee[id], w) {
			free = append(free, id)
		}
	}

	sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
	return free
}

// HasConflict scans one employee's reservations sorted by start and stops as
// soon as a reservation starts at or after the end of w.
func HasConflict(reservations []models.Reservation, w Window) bool {
	sorted := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsCancel {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateReserved.Before(sorted[j].DateReserved)
	})

	for i := range sorted {
		if !sorted[i].DateReserved.Before(w.End) {
			break
		}
		if WindowOf(&sorted[i]).Overlaps(w) {
			return true
		}
	}
	return false
}
