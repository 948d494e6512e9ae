package models

import "testing"

func TestParseTableName(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		table int
		ok    bool
	}{
		{"Fila 1;Mesa 04", 1, 4, true},
		{"Fila 11;Mesa 04", 11, 4, true},
		{"F1;M2", 1, 2, true},
		{"Fila;Mesa 04", 0, 0, false},
		{"Fila 1;Mesa", 0, 0, false},
		{"sin numeros", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseTableName(tt.name)
		if ok != tt.ok {
			t.Errorf("ParseTableName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && (got.Row != tt.row || got.Table != tt.table) {
			t.Errorf("ParseTableName(%q) = %+v, want row %d table %d", tt.name, got, tt.row, tt.table)
		}
	}
}

func TestTableSlotDisplayName(t *testing.T) {
	slot := TableSlot{Name: "Fila 1;Mesa 04"}
	if got := slot.DisplayName(); got != "Fila 1 - Mesa 04" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestTimeSlotKey(t *testing.T) {
	if got := TimeSlotKey("08:30", "10:30"); got != "08:30-10:30" {
		t.Errorf("TimeSlotKey = %q", got)
	}
}
