package models

import (
	"testing"
	"time"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		text string
		want BookingStatus
	}{
		{"Aceptado", StatusAccepted},
		{"  aceptado ", StatusAccepted},
		{"Dentro", StatusInside},
		{"Ausente", StatusAbsent},
		{"Terminado", StatusFinished},
		{"Cancelado", StatusCancelled},
		{"", StatusUnknown},
		{"Pendiente", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseBookingStatus(tt.text); got != tt.want {
			t.Errorf("ParseBookingStatus(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCanCancel(t *testing.T) {
	b := &Booking{Status: StatusAccepted}
	if !b.CanCancel() {
		t.Error("accepted booking should be cancellable")
	}

	for _, status := range []BookingStatus{StatusInside, StatusAbsent, StatusFinished, StatusCancelled, StatusUnknown} {
		b := &Booking{Status: status}
		if b.CanCancel() {
			t.Errorf("booking with status %v should not be cancellable", status)
		}
	}
}

// at builds a time on a fixed date with the given clock time.
func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(2026, 1, 7, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestCanCheckinStartWindow(t *testing.T) {
	b := &Booking{Status: StatusAccepted, StartTime: "08:30", EndTime: "10:30"}

	tests := []struct {
		now  string
		want bool
	}{
		{"08:29", false}, // before start
		{"08:30", true},  // at start
		{"08:45", true},  // inside grace
		{"09:00", true},  // grace boundary
		{"09:01", false}, // grace over
		{"11:10", false}, // long after
	}

	for _, tt := range tests {
		if got := b.CanCheckin(at(tt.now)); got != tt.want {
			t.Errorf("CanCheckin at %s = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestCanCheckinLateEntry(t *testing.T) {
	// Booked at 09:00 for the 08:30-10:30 slot: check-in stays legal until
	// thirty minutes past the end.
	res := at("09:00")
	b := &Booking{
		Status: StatusAccepted, StartTime: "08:30", EndTime: "10:30",
		ReservationTime: &res,
	}

	tests := []struct {
		now  string
		want bool
	}{
		{"10:50", true},  // past the start window, inside end grace
		{"11:00", true},  // end grace boundary
		{"11:01", false}, // end grace over
		{"11:10", false},
	}

	for _, tt := range tests {
		if got := b.CanCheckin(at(tt.now)); got != tt.want {
			t.Errorf("CanCheckin at %s = %v, want %v", tt.now, got, tt.want)
		}
	}

	// Reservation made before the slot: no late-entry window.
	early := at("07:00")
	b.ReservationTime = &early
	if b.CanCheckin(at("10:50")) {
		t.Error("reservation before the slot must not open the late-entry window")
	}
}

func TestCanCheckinRequiresAccepted(t *testing.T) {
	b := &Booking{Status: StatusInside, StartTime: "08:30", EndTime: "10:30"}
	if b.CanCheckin(at("08:45")) {
		t.Error("non-accepted booking must not be checkable")
	}
}

func TestCanCheckinUnparseableTimes(t *testing.T) {
	b := &Booking{Status: StatusAccepted, StartTime: "junk", EndTime: "10:30"}
	if b.CanCheckin(at("08:45")) {
		t.Error("unparseable start time must make check-in illegal, not panic")
	}
}
