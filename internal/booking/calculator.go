// Package booking contains the pure stay calculation logic: request
// validation, night counts, price totals and lifecycle derivation.
// Nothing here does I/O or reads a clock; "today" is always an argument.
package booking

import (
	"math"
	"regexp"
	"strings"
	"time"

	"hotelms/internal/models"
)

// DateLayout is the calendar-date format crossing the REST boundary.
const DateLayout = "2006-01-02"

// Lifecycle phases derived from "today" against the stay dates. These are
// recomputed on every read and never persisted; the stored booking status
// (pending/confirmed/cancelled) is administrative, not temporal.
const (
	LifecycleUpcoming  = "upcoming"
	LifecycleActive    = "active"
	LifecycleCompleted = "completed"
)

// Validation failure reasons.
const (
	ReasonMissingField     = "missing_field"
	ReasonInvalidDateOrder = "invalid_date_order"
	ReasonPastDate         = "past_date"
	ReasonInvalidEmail     = "invalid_email"

	// ReasonDateTooFar is appended by the booking service when the stay
	// starts beyond the hotel's advance-booking horizon. The calendar rules
	// above are policy-free; the horizon is configuration.
	ReasonDateTooFar = "date_too_far"
)

// Field names used in validation results.
const (
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// StayRequest is a prospective booking before persistence.
type StayRequest struct {
	CheckIn    time.Time
	CheckOut   time.Time
	GuestName  string
	GuestEmail string
}

// FieldError names one failed field and why it failed.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationResult aggregates every field failure so a caller can surface
// all of them at once instead of fixing the form one error at a time.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Has reports whether any field failed with the given reason.
func (r ValidationResult) Has(reason string) bool {
	for _, e := range r.Errors {
		if e.Reason == reason {
			return true
		}
	}
	return false
}

func (r *ValidationResult) add(field, reason string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Reason: reason})
}

// ParseDate parses an ISO calendar date as it arrives from the REST layer.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ValidateStayRequest checks a stay request against the calendar rules.
// Comparisons are date-only; check-in on "today" itself is allowed.
func ValidateStayRequest(req StayRequest, today time.Time) ValidationResult {
	var result ValidationResult

	if req.CheckIn.IsZero() {
		result.add(FieldCheckIn, ReasonMissingField)
	}
	if req.CheckOut.IsZero() {
		result.add(FieldCheckOut, ReasonMissingField)
	}
	if strings.TrimSpace(req.GuestName) == "" {
		result.add(FieldGuestName, ReasonMissingField)
	}

	email := strings.TrimSpace(req.GuestEmail)
	if email == "" {
		result.add(FieldGuestEmail, ReasonMissingField)
	} else if !emailPattern.MatchString(email) {
		result.add(FieldGuestEmail, ReasonInvalidEmail)
	}

	if !req.CheckIn.IsZero() && !req.CheckOut.IsZero() {
		checkIn := truncateToDate(req.CheckIn)
		checkOut := truncateToDate(req.CheckOut)
		if !checkOut.After(checkIn) {
			result.add(FieldCheckOut, ReasonInvalidDateOrder)
		}
	}

	if !req.CheckIn.IsZero() && truncateToDate(req.CheckIn).Before(truncateToDate(today)) {
		result.add(FieldCheckIn, ReasonPastDate)
	}

	return result
}

// Nights returns the number of 24-hour periods between check-in and
// check-out, rounding partial days up. Missing inputs yield 0.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	span := truncateToDate(checkOut).Sub(truncateToDate(checkIn))
	if span <= 0 {
		return 0
	}
	return int(math.Ceil(span.Hours() / 24))
}

// TotalPrice is nightly price times night count, rounded to 2 decimals.
// Zero nights gives a zero total, used for display before dates are set.
func TotalPrice(nightlyPrice float64, checkIn, checkOut time.Time) float64 {
	return Round2(nightlyPrice * float64(Nights(checkIn, checkOut)))
}

// LifecycleStatus derives the temporal phase of a stay relative to today.
func LifecycleStatus(checkIn, checkOut, today time.Time) string {
	day := truncateToDate(today)
	if day.Before(truncateToDate(checkIn)) {
		return LifecycleUpcoming
	}
	if !day.After(truncateToDate(checkOut)) {
		return LifecycleActive
	}
	return LifecycleCompleted
}

// AggregateSpend sums booking totals recomputed from each booking's
// recorded nightly rate and night count. The rate is snapshotted at
// creation, so later room price edits never change a guest's history.
func AggregateSpend(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += TotalPrice(b.RoomPrice, b.CheckIn, b.CheckOut)
	}
	return Round2(total)
}

// Round2 rounds to two decimal places, the precision prices cross the
// boundary with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
