package models

import (
	"strconv"
	"strings"
)

// Service is a bookable library service as returned by the service list.
type Service struct {
	ID        int                   `json:"id"`
	Name      string                `json:"name"`
	Capacity  int                   `json:"capacity"`
	Tables    []TableSlot           `json:"tables"`
	Timetable map[string][]TimeSlot `json:"timetable"` // "monday" -> windows
}

// TableSlot is a physical table in the service catalog.
type TableSlot struct {
	Name   string `json:"name"`   // "Fila 1;Mesa 01"
	Status string `json:"status"` // "0" = free, anything else occupied/blocked
}

// DisplayName renders the composite "row;table" name for display.
func (t TableSlot) DisplayName() string {
	return strings.ReplaceAll(t.Name, ";", " - ")
}

// TimeSlot is one opening window in a service's weekly timetable.
type TimeSlot struct {
	Open  string `json:"open"`  // "08:30"
	Close string `json:"close"` // "10:30"
	ID    string `json:"id,omitempty"`
}

// ParsedTable is the row and table number extracted from a composite
// "Fila X;Mesa Y" table name.
type ParsedTable struct {
	Row   int
	Table int
}

// ParseTableName parses a composite table name. It keeps only the digits
// of each half, so "Fila 11;Mesa 04" parses as row 11, table 4. Returns
// false when either half has no digits.
func ParseTableName(name string) (ParsedTable, bool) {
	parts := strings.Split(name, ";")
	row, ok := digitsOf(parts[0])
	if !ok {
		return ParsedTable{}, false
	}
	table, ok := digitsOf(parts[len(parts)-1])
	if !ok {
		return ParsedTable{}, false
	}
	return ParsedTable{Row: row, Table: table}, true
}

func digitsOf(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// MultiBookingItem is one extension slot in a multi-booking request.
type MultiBookingItem struct {
	Date  string `json:"date"`  // "2026-01-07"
	Start string `json:"start"` // "10:30"
	End   string `json:"end"`   // "12:30"
	Pitch string `json:"pitch"` // table id as a string
}
