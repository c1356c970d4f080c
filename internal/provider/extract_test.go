package provider

import (
	"encoding/json"
	"testing"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   int64
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"float", float64(110), 110, true},
		{"fractional float", 10.5, 0, false},
		{"json number", json.Number("97"), 97, true},
		{"json number float form", json.Number("97.0"), 97, true},
		{"string", "104", 104, true},
		{"padded string", " 88 ", 88, true},
		{"empty string", "", 0, false},
		{"text", "TBD", 0, false},
		{"bool", true, 0, false},
		{"wrapped value", ValueOf("12"), 12, true},
		{"map", map[string]interface{}{"total": 5}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOptionalInt(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseOptionalInt(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{Null, ""},
		{ValueOf("PT12M00.00S"), "PT12M00.00S"},
		{ValueOf(float64(1610612747)), "1610612747"},
		{ValueOf(json.Number("1610612738")), "1610612738"},
		{ValueOf(true), "true"},
		{Int(1), "1"},
		{ValueOf([]interface{}{1, 2}), ""},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue_SameAcrossRepresentations(t *testing.T) {
	if !ValueOf(float64(1610612747)).Same(ValueOf("1610612747")) {
		t.Error("numeric and string ids should compare equal")
	}
	if Null.Same(Null) {
		t.Error("null never matches")
	}
}

func TestCells_AlignWithColumns(t *testing.T) {
	rec := GameRecord{GameID: "0022400001", HomeScore: ValueOf(float64(110)), Source: SourceLive, DateYMD: "20241022"}
	cols := Columns(rec)
	rows := Cells([]GameRecord{rec})

	if len(rows) != 1 || len(rows[0]) != len(cols) {
		t.Fatalf("rows not aligned with %d columns: %v", len(cols), rows)
	}
	for i, c := range cols {
		if c == "source" || c == "dateYmd" {
			t.Errorf("internal tag persisted as column %d", i)
		}
		if c == "homeScore" && rows[0][i] != "110" {
			t.Errorf("homeScore cell = %q, want 110", rows[0][i])
		}
	}
}
