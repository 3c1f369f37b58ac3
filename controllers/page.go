package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/deltegui/pmadmin/localizer"
)

const (
	TypeText     = ""
	TypeTextArea = "textarea"
	TypeCheckbox = "checkbox"
	TypeDate     = "date"
)

// Field is one column of a resource, named as the model field.
type Field struct {
	Name string

	// Key fields are sent back on update and delete. Unless ReadOnly they
	// are chosen on create.
	Key bool

	// ReadOnly fields are listed but never edited.
	ReadOnly bool

	// Hidden fields are edited but not listed.
	Hidden bool

	// Options is the path of the endpoint filling the dropdown.
	Options string

	Type string
}

func (f Field) Listed() bool {
	return !f.Hidden
}

// Page describes a resource screen.
type Page struct {
	// Name is the path segment, the localization prefix and the export sheet.
	Name   string
	Fields []Field

	// DefaultSort is the field sorted on first load, empty for source order.
	DefaultSort string
}

func (p Page) Path() string {
	return "/" + p.Name
}

func (p Page) Title(loc localizer.Localizer) string {
	return loc.Get(p.Name + ".title")
}

func (p Page) Columns() []Field {
	listed := []Field{}
	for _, f := range p.Fields {
		if f.Listed() {
			listed = append(listed, f)
		}
	}
	return listed
}

type jtableField struct {
	Title   string            `json:"title,omitempty"`
	Key     bool              `json:"key,omitempty"`
	List    *bool             `json:"list,omitempty"`
	Create  *bool             `json:"create,omitempty"`
	Edit    *bool             `json:"edit,omitempty"`
	Type    string            `json:"type,omitempty"`
	Options string            `json:"options,omitempty"`
	Values  map[string]string `json:"values,omitempty"`
}

// jtableFields keeps the field order, which is the column order of the widget.
type jtableFields struct {
	names  []string
	fields map[string]jtableField
}

func (f jtableFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		value, err := json.Marshal(f.fields[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type jtableActions struct {
	ListAction   string `json:"listAction"`
	CreateAction string `json:"createAction"`
	UpdateAction string `json:"updateAction"`
	DeleteAction string `json:"deleteAction"`
}

type JTableConfig struct {
	Title          string        `json:"title"`
	Paging         bool          `json:"paging"`
	PageSize       int           `json:"pageSize"`
	Sorting        bool          `json:"sorting"`
	DefaultSorting string        `json:"defaultSorting,omitempty"`
	Actions        jtableActions `json:"actions"`
	Fields         jtableFields  `json:"fields"`
}

var (
	no  = false
	yes = true
)

// JTable builds the widget configuration of the page, titles localized.
func (p Page) JTable(loc localizer.Localizer, pageSize int) JTableConfig {
	fields := jtableFields{fields: map[string]jtableField{}}
	for _, f := range p.Fields {
		jf := jtableField{
			Title:   loc.Get(p.Name + "." + f.Name),
			Key:     f.Key,
			Type:    f.Type,
			Options: f.Options,
		}
		if f.Hidden {
			jf.List = &no
		}
		if f.Key {
			jf.Create = &yes
			jf.Edit = &no
		}
		if f.ReadOnly {
			jf.Create = &no
			jf.Edit = &no
		}
		if f.Type == TypeCheckbox {
			jf.Values = map[string]string{"false": loc.Get("shared.no"), "true": loc.Get("shared.yes")}
		}
		fields.names = append(fields.names, f.Name)
		fields.fields[f.Name] = jf
	}
	sorting := ""
	if p.DefaultSort != "" {
		sorting = p.DefaultSort + " ASC"
	}
	return JTableConfig{
		Title:          p.Title(loc),
		Paging:         true,
		PageSize:       pageSize,
		Sorting:        true,
		DefaultSorting: sorting,
		Actions: jtableActions{
			ListAction:   p.Path() + "/list",
			CreateAction: p.Path() + "/create",
			UpdateAction: p.Path() + "/update",
			DeleteAction: p.Path() + "/delete",
		},
		Fields: fields,
	}
}

// Cells renders the listed fields of item as text.
func (p Page) Cells(loc localizer.Localizer, item any) []string {
	v := reflect.Indirect(reflect.ValueOf(item))
	columns := p.Columns()
	cells := make([]string, len(columns))
	for i, f := range columns {
		cells[i] = cellText(loc, v.FieldByName(f.Name))
	}
	return cells
}

func cellText(loc localizer.Localizer, v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch value := v.Interface().(type) {
	case bool:
		if value {
			return loc.Get("shared.yes")
		}
		return loc.Get("shared.no")
	case time.Time:
		return value.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprint(value)
	}
}
