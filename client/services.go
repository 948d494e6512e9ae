package client

import (
	"strconv"

	"github.com/tobibamidele/spotter/models"
)

// Wire shapes of the service catalog response.

type servicesResponse struct {
	Data []serviceData `json:"data"`
}

type serviceData struct {
	ID         int                         `json:"id"`
	Name       *string                     `json:"name"`
	Properties serviceProperties           `json:"properties"`
	Timetable  map[string][]timetableEntry `json:"timetable"`
}

type serviceProperties struct {
	TotalPitches string     `json:"total_pitches"`
	PitchNames   []pitchDTO `json:"pitches_names"`
}

type pitchDTO struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type timetableEntry struct {
	Open  string  `json:"open"`
	Close string  `json:"close"`
	GBID  *string `json:"_gbid"`
}

func (d serviceData) toDomain() models.Service {
	name := "Unknown Service"
	if d.Name != nil {
		name = *d.Name
	}

	capacity, err := strconv.Atoi(d.Properties.TotalPitches)
	if err != nil {
		capacity = 0
	}

	tables := make([]models.TableSlot, 0, len(d.Properties.PitchNames))
	for _, p := range d.Properties.PitchNames {
		tables = append(tables, models.TableSlot{Name: p.Name, Status: p.Status})
	}

	timetable := make(map[string][]models.TimeSlot, len(d.Timetable))
	for day, entries := range d.Timetable {
		slots := make([]models.TimeSlot, 0, len(entries))
		for _, e := range entries {
			slot := models.TimeSlot{Open: e.Open, Close: e.Close}
			if e.GBID != nil {
				slot.ID = *e.GBID
			}
			slots = append(slots, slot)
		}
		timetable[day] = slots
	}

	return models.Service{
		ID:        d.ID,
		Name:      name,
		Capacity:  capacity,
		Tables:    tables,
		Timetable: timetable,
	}
}
