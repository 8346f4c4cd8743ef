package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/timezone"
)

// parseSlot reads the slot start of a request. date is "2006-01-02" and
// clock "15:04" (seconds optional) in the default zone; a date carrying a
// full RFC 3339 timestamp needs no clock.
func parseSlot(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if clock == "" {
		return time.Parse(time.RFC3339, date)
	}
	if len(clock) == len("15:04:05") {
		clock = clock[:len("15:04")]
	}
	return timezone.ParseDateTime(date, clock)
}

func parseDateOnly(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, timezone.Location(""))
}

// maxSlotMinutes bounds duration_min to one day.
const maxSlotMinutes = 24 * 60

// durationFromMinutes converts duration_min. 0 means absent and defers to
// the service duration.
func durationFromMinutes(min int) (time.Duration, error) {
	if min < 0 || min > maxSlotMinutes {
		return 0, httperr.ValidationErr("invalid_time_window")
	}
	return time.Duration(min) * time.Minute, nil
}

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// queryID reads an optional positive numeric query parameter; 0 when absent.
func queryID(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
