package export

import (
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ContentType string = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	tagName     string = "export"
	dateLayout  string = "2006-01-02 15:04"
)

var timeType = reflect.TypeOf(time.Time{})

type column struct {
	index  int
	header string
}

// columns lists the exported top level fields of t. The export tag renames a
// column and "-" leaves the field out.
func columns(t reflect.Type) []column {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	cols := []column{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		header := field.Name
		if tag, ok := field.Tag.Lookup(tagName); ok {
			if tag == "-" {
				continue
			}
			header = tag
		}
		cols = append(cols, column{index: i, header: header})
	}
	return cols
}

func Headers[M any]() []string {
	cols := columns(reflect.TypeOf((*M)(nil)).Elem())
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	return headers
}

// Values flattens item into one cell value per header. Nil pointers become
// empty cells.
func Values[M any](item M) []any {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	cols := columns(v.Type())
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = cell(v.Field(c.index))
	}
	return values
}

func cell(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return fmt.Sprint(v.Interface())
	}
	return v.Interface()
}

// Write stores items as an xlsx workbook with a single sheet. The first row
// holds the headers.
func Write[M any](w io.Writer, sheet string, items []M) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("cannot name sheet '%s': %w", sheet, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("cannot create header style: %w", err)
	}
	headers := Headers[M]()
	if err := setRow(f, sheet, 1, toAny(headers)); err != nil {
		return err
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("cannot style headers: %w", err)
		}
	}
	for i, item := range items {
		if err := setRow(f, sheet, i+2, Values(item)); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("cannot write row %d: %w", row, err)
	}
	return nil
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}
