package client

import (
	"encoding/json"
	"fmt"

	"github.com/tobibamidele/spotter/models"
)

// Defaults applied to absent or malformed fields in the freeslots
// document. These are part of the server contract: a table is free iff
// its status is exactly 0, so the defaulted status 1 means occupied.
const (
	defaultSlotTime    = "00:00"
	defaultTableName   = "unnamed"
	defaultTableStatus = 1
	defaultTableID     = -1
)

// normalizeFreeSlots transforms the service's nested freeslots document
// into the canonical date -> timeRange -> tables model.
//
// The document looks like
//
//	{"data": {"freeslots": {"2026-01-07": [ {"start": "08:30", "end": "10:30",
//	    "free": {"k": {"id": 5, "name": "Mesa 1", "status": 0}} } ]}}}
//
// and any level of nesting may be absent. An absent or non-object
// data/freeslots level yields an empty model, not an error: the service
// legitimately reports "no freeslots" that way. The only error path is a
// top-level deserialization failure.
func normalizeFreeSlots(raw []byte) (map[string]models.DaySlots, error) {
	model := make(map[string]models.DaySlots)

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode slots document: %w", err)
	}

	var data map[string]json.RawMessage
	if json.Unmarshal(root["data"], &data) != nil {
		return model, nil
	}

	var freeslots map[string]json.RawMessage
	if json.Unmarshal(data["freeslots"], &freeslots) != nil {
		return model, nil
	}

	for date, rawEntries := range freeslots {
		var entries []map[string]json.RawMessage
		if json.Unmarshal(rawEntries, &entries) != nil {
			continue
		}

		timeSlots := make(map[string][]models.TableStatus, len(entries))
		for _, entry := range entries {
			start := stringField(entry, "start", defaultSlotTime)
			end := stringField(entry, "end", defaultSlotTime)
			key := models.TimeSlotKey(start, end)

			tables := []models.TableStatus{}
			var freeMap map[string]json.RawMessage
			if json.Unmarshal(entry["free"], &freeMap) == nil {
				for _, rawTable := range freeMap {
					var table map[string]json.RawMessage
					if json.Unmarshal(rawTable, &table) != nil {
						continue
					}
					status := intField(table, "status", defaultTableStatus)
					tables = append(tables, models.TableStatus{
						ID:        intField(table, "id", defaultTableID),
						Name:      stringField(table, "name", defaultTableName),
						IsFree:    status == 0,
						StartTime: start,
						EndTime:   end,
					})
				}
			}

			// Last write wins when the same window repeats for a date.
			timeSlots[key] = tables
		}

		model[date] = models.DaySlots{Date: date, TimeSlots: timeSlots}
	}

	return model, nil
}

func stringField(obj map[string]json.RawMessage, key, def string) string {
	var s string
	if json.Unmarshal(obj[key], &s) != nil {
		return def
	}
	return s
}

func intField(obj map[string]json.RawMessage, key string, def int) int {
	var n int
	if json.Unmarshal(obj[key], &n) != nil {
		return def
	}
	return n
}
