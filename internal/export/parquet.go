package export

import (
	"fmt"
	"io"
	"reflect"

	"github.com/parquet-go/parquet-go"

	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// ParquetMirror writes tables as parquet with one optional string column per
// table column, in the table's column order. Empty cells are stored as nulls.
type ParquetMirror struct{}

func (ParquetMirror) Ext() string { return "parquet" }

func (ParquetMirror) Write(w io.Writer, name string, t *table.Table) error {
	schema := parquet.NewSchema(name, parquet.SchemaOf(rowModel(t.Columns)))

	leaf := make(map[string]int, len(t.Columns))
	for i, path := range schema.Columns() {
		leaf[path[0]] = i
	}
	order := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		idx, ok := leaf[c]
		if !ok {
			return fmt.Errorf("parquet schema: column %q not found", c)
		}
		order[i] = idx
	}

	pw := parquet.NewWriter(w, schema)
	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(parquet.Row, len(order))
		for i, idx := range order {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			if cell == "" {
				row[idx] = parquet.NullValue().Level(0, 0, idx)
			} else {
				row[idx] = parquet.ByteArrayValue([]byte(cell)).Level(0, 1, idx)
			}
		}
		rows = append(rows, row)
	}

	if _, err := pw.WriteRows(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return pw.Close()
}

// rowModel returns a zero struct with one optional string field per column.
// Struct schemas keep field order, unlike parquet.Group which sorts by name.
func rowModel(columns []string) interface{} {
	fields := make([]reflect.StructField, len(columns))
	for i, c := range columns {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("C%d", i),
			Type: reflect.TypeOf(""),
			Tag:  reflect.StructTag(fmt.Sprintf("parquet:%q", c+",optional")),
		}
	}
	return reflect.New(reflect.StructOf(fields)).Interface()
}
