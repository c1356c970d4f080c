package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

var gameKeys = []string{"gameId"}

func games(rows ...[]string) *Table {
	return New([]string{"gameId", "homeScore", "awayScore"}, rows)
}

func TestMerge_NoExisting(t *testing.T) {
	fresh := games([]string{"G1", "110", "100"}, []string{"G2", "", ""})

	merged, err := Merge(nil, fresh, gameKeys)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !reflect.DeepEqual(merged.Columns, fresh.Columns) || !reflect.DeepEqual(merged.Rows, fresh.Rows) {
		t.Errorf("merged = %+v, want exactly the fresh rows", merged)
	}
}

func TestMerge_NewRowWins(t *testing.T) {
	existing := games([]string{"G1", "90", "88"})
	fresh := games([]string{"G1", "95", "88"})

	merged, err := Merge(existing, fresh, gameKeys)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Len() != 1 {
		t.Fatalf("got %d rows, want 1", merged.Len())
	}
	if got := merged.Rows[0][1]; got != "95" {
		t.Errorf("homeScore = %s, want 95", got)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := games(
		[]string{"G1", "110", "100"},
		[]string{"G2", "99", "101"},
		[]string{"G3", "", ""},
	)
	again := games(
		[]string{"G3", "", ""},
		[]string{"G1", "110", "100"},
	)

	merged, err := Merge(existing, again, gameKeys)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !reflect.DeepEqual(sortedRows(merged), sortedRows(existing)) {
		t.Errorf("merged = %v, want %v", merged.Rows, existing.Rows)
	}

	twice, err := Merge(merged, again, gameKeys)
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}
	if !reflect.DeepEqual(twice.Rows, merged.Rows) {
		t.Errorf("second merge changed the table: %v", twice.Rows)
	}
}

// A replaced row stays where its key first appeared; new keys are appended
// in batch order.
func TestMerge_RowOrder(t *testing.T) {
	existing := games(
		[]string{"G1", "1", "1"},
		[]string{"G2", "2", "2"},
		[]string{"G3", "3", "3"},
	)
	fresh := games(
		[]string{"G4", "4", "4"},
		[]string{"G2", "22", "22"},
		[]string{"G5", "5", "5"},
		[]string{"G4", "44", "44"},
	)

	merged, err := Merge(existing, fresh, gameKeys)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := [][]string{
		{"G1", "1", "1"},
		{"G2", "22", "22"},
		{"G3", "3", "3"},
		{"G4", "44", "44"},
		{"G5", "5", "5"},
	}
	if !reflect.DeepEqual(merged.Rows, want) {
		t.Errorf("rows = %v\nwant %v", merged.Rows, want)
	}
}

func TestMerge_CompositeKey(t *testing.T) {
	cols := []string{"gameId", "teamId", "points"}
	existing := New(cols, [][]string{{"G1", "A", "100"}, {"G1", "B", "98"}})
	fresh := New(cols, [][]string{{"G1", "B", "99"}, {"G2", "A", "101"}})

	merged, err := Merge(existing, fresh, []string{"gameId", "teamId"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := [][]string{{"G1", "A", "100"}, {"G1", "B", "99"}, {"G2", "A", "101"}}
	if !reflect.DeepEqual(merged.Rows, want) {
		t.Errorf("rows = %v, want %v", merged.Rows, want)
	}
}

func TestMerge_ColumnUnion(t *testing.T) {
	existing := New([]string{"gameId", "homeScore"}, [][]string{{"G1", "90"}})
	fresh := New([]string{"arenaName", "gameId", "homeScore"}, [][]string{{"TD Garden", "G2", "101"}})

	merged, err := Merge(existing, fresh, gameKeys)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	wantCols := []string{"gameId", "homeScore", "arenaName"}
	if !reflect.DeepEqual(merged.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", merged.Columns, wantCols)
	}
	want := [][]string{{"G1", "90", ""}, {"G2", "101", "TD Garden"}}
	if !reflect.DeepEqual(merged.Rows, want) {
		t.Errorf("rows = %v, want %v", merged.Rows, want)
	}
}

func TestMerge_MissingKeyColumn(t *testing.T) {
	fresh := New([]string{"homeScore"}, [][]string{{"1"}})
	if _, err := Merge(nil, fresh, gameKeys); !errors.Is(err, ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
}

func TestReadWrite_RoundTripKeepsNullsAndQuotes(t *testing.T) {
	tbl := New(
		[]string{"gameId", "arenaName", "notPlayingReason"},
		[][]string{{"G1", "Madison Square Garden, NY", ""}, {"G2", "", `DNP "rest"`}},
	)

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "gameId,arenaName,notPlayingReason\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, tbl) {
		t.Errorf("round trip = %+v, want %+v", got, tbl)
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestWriteFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "games.csv")

	if _, err := ReadFile(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadFile on missing file: err = %v, want ErrNotExist", err)
	}

	tbl := games([]string{"G1", "110", "100"})
	if err := tbl.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, tbl) {
		t.Errorf("got %+v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWhereAndRecords(t *testing.T) {
	tbl := New([]string{"gameId", "teamId", "win"}, [][]string{
		{"G1", "A", "1"}, {"G1", "B", "0"}, {"G2", "A", ""},
	})

	g1 := tbl.Where("gameId", "G1")
	if g1.Len() != 2 {
		t.Fatalf("Where gameId=G1 got %d rows", g1.Len())
	}
	if tbl.Where("nope", "G1").Len() != 0 {
		t.Error("unknown column should match nothing")
	}

	recs := tbl.Where("gameId", "G2").Records()
	if len(recs) != 1 || recs[0]["teamId"] != "A" || recs[0]["win"] != nil {
		t.Errorf("records = %v", recs)
	}
}

func sortedRows(t *Table) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = strings.Join(r, ",")
	}
	sort.Strings(out)
	return out
}
