package models

// DaySlots holds the availability for one calendar date, keyed by time
// range so the same physical window maps to the same key on every date.
type DaySlots struct {
	Date      string                   `json:"date"`
	TimeSlots map[string][]TableStatus `json:"time_slots"` // "08:30-10:30" -> tables
}

// TableStatus is the state of one table within one time slot.
type TableStatus struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsFree    bool   `json:"is_free"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimeSlotKey derives the stable key for a time window.
func TimeSlotKey(start, end string) string {
	return start + "-" + end
}
