package models

import (
	"strings"
	"time"
)

// BookingStatus is derived from the status text scraped off the bookings
// page. Unrecognised text maps to StatusUnknown, never an error.
type BookingStatus int

const (
	StatusUnknown BookingStatus = iota
	StatusAccepted
	StatusInside
	StatusAbsent
	StatusFinished
	StatusCancelled
)

// String returns the server's display name for the status.
func (s BookingStatus) String() string {
	switch s {
	case StatusAccepted:
		return "Aceptado"
	case StatusInside:
		return "Dentro"
	case StatusAbsent:
		return "Ausente"
	case StatusFinished:
		return "Terminado"
	case StatusCancelled:
		return "Cancelado"
	default:
		return "Desconocido"
	}
}

// ParseBookingStatus matches status text against the fixed vocabulary,
// ignoring case and surrounding whitespace.
func ParseBookingStatus(text string) BookingStatus {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "aceptado":
		return StatusAccepted
	case "dentro":
		return StatusInside
	case "ausente":
		return StatusAbsent
	case "terminado":
		return StatusFinished
	case "cancelado":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// checkinGrace is the grace period around a booking's start and end.
const checkinGrace = 30 * time.Minute

// Booking is one row of the user's bookings list.
type Booking struct {
	ID         int           `json:"id"`
	Date       string        `json:"date"` // as displayed, e.g. "Miércoles, 07/01/2026"
	StartTime  string        `json:"start_time"` // "08:30"
	EndTime    string        `json:"end_time"`   // "10:30"
	Location   string        `json:"location"`
	TableName  string        `json:"table_name"`
	StatusText string        `json:"status_text"`
	Status     BookingStatus `json:"status"`

	// ReservationTime is when the booking itself was made, if known.
	// It only matters for the late-entry check-in window.
	ReservationTime *time.Time `json:"reservation_time,omitempty"`
}

// CanCancel reports whether the booking may be cancelled.
func (b *Booking) CanCancel() bool {
	return b.Status == StatusAccepted
}

// CanCheckin reports whether check-in is currently legal. Two windows
// apply, both requiring an accepted booking:
//
//  1. now is between the start time and thirty minutes after it.
//  2. The booking was made during its own slot (reservation time between
//     start and end); then check-in stays legal until thirty minutes
//     after the end time.
//
// Start and end are HH:mm strings placed on now's calendar date; a parse
// failure makes check-in illegal rather than returning an error.
func (b *Booking) CanCheckin(now time.Time) bool {
	if b.Status != StatusAccepted {
		return false
	}

	start, err := atTimeOfDay(now, b.StartTime)
	if err != nil {
		return false
	}
	end, err := atTimeOfDay(now, b.EndTime)
	if err != nil {
		return false
	}

	// Window 1: start grace period.
	if !now.Before(start) && !now.After(start.Add(checkinGrace)) {
		return true
	}

	// Window 2: late entry, graced at the end instead.
	if b.ReservationTime != nil &&
		!b.ReservationTime.Before(start) &&
		!b.ReservationTime.After(end) {
		return !now.After(end.Add(checkinGrace))
	}

	return false
}

// atTimeOfDay parses an HH:mm string onto the calendar date of ref.
func atTimeOfDay(ref time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
