package pmadmin

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/deltegui/pmadmin/core"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var timeType = reflect.TypeOf(time.Time{})

// FormError lists the fields whose form value could not be converted to
// the field type.
type FormError struct {
	Fields []core.FieldError
}

func (e *FormError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return fmt.Sprintf("cannot convert form values: %s", strings.Join(messages, ", "))
}

func conversionError(field reflect.StructField) core.FieldError {
	return core.FieldError{
		Field:   field.Name,
		Tag:     "type",
		Param:   typeName(field.Type),
		Message: fmt.Sprintf("%s is not a valid %s", field.Name, typeName(field.Type)),
	}
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == timeType {
		return "date"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return t.String()
	}
}

// ParseForm parses req.Form and then serializes the form data to
// the dst struct using reflection. The form names should match to
// the 'html' tag or, if its not setted, to the field name.
// ParseForm only supports serializing data to one-depth structs.
// Example, using this struct as target:
//
//	type MyStruct struct {
//			A bool,
//			B int `html:"page"`
//	}
//
// And having this serialized form:
//
// "A=false&page=2"
//
// Calling ParseForm like this (NOTE THAT A POINTER TO THE STRUCT IS BEING PASSED):
//
// var s MyStruct
// n, err := ctx.ParseForm(&s)
//
// It will result to this fullfilled struct:
//
// { A = false, B: 2 }
//
// It returns how many fields of dst were present in the form. A value that
// cannot be converted to the field type leaves the field untouched and is
// reported in a *FormError, after every other field has been set.
// Empty values set pointer fields to nil.
// The supported field types are: ints, uints, floats, bool, string, time.Time
// and pointers to them.
func (ctx *Context) ParseForm(dst any) (int, error) {
	names, err := ctx.ParseFormFields(dst)
	return len(names), err
}

// ParseFormFields works like ParseForm and returns the form names of the
// fields of dst present in the form.
func (ctx *Context) ParseFormFields(dst any) ([]string, error) {
	if err := ctx.Req.ParseForm(); err != nil {
		return nil, fmt.Errorf("cannot parse form: %w", err)
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, fmt.Errorf("cannot parse form into %T: a pointer to a struct is needed", dst)
	}
	e := v.Elem()
	t := e.Type()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot parse form into %T: a pointer to a struct is needed", dst)
	}
	var matched []string
	var failed []core.FieldError
	for i := 0; i < t.NumField(); i++ {
		fieldValue := e.Field(i)
		fieldType := t.Field(i)
		lookup, ok := fieldType.Tag.Lookup("html")
		if !ok {
			lookup = fieldType.Name
		}
		if lookup == "-" {
			continue
		}
		if !ctx.Req.Form.Has(lookup) {
			continue
		}
		if !fieldValue.CanSet() {
			continue
		}
		matched = append(matched, lookup)
		if !setValue(fieldValue, strings.TrimSpace(ctx.Req.Form.Get(lookup))) {
			failed = append(failed, conversionError(fieldType))
		}
	}
	if len(failed) > 0 {
		return matched, &FormError{Fields: failed}
	}
	return matched, nil
}

func setValue(field reflect.Value, value string) bool {
	t := field.Type()
	if t.Kind() == reflect.Ptr {
		if value == "" {
			field.Set(reflect.Zero(t))
			return true
		}
		elem := reflect.New(t.Elem())
		if !setValue(elem.Elem(), value) {
			return false
		}
		field.Set(elem)
		return true
	}
	if t == timeType {
		return setTime(field, value)
	}
	switch t.Kind() {
	case reflect.String:
		field.SetString(value)
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, t.Bits())
		if err != nil {
			return false
		}
		field.SetInt(i)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, t.Bits())
		if err != nil {
			return false
		}
		field.SetUint(u)
		return true
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), t.Bits())
		if err != nil {
			return false
		}
		field.SetFloat(f)
		return true
	case reflect.Bool:
		return setBool(field, value)
	default:
		return false
	}
}

func setBool(field reflect.Value, value string) bool {
	switch strings.ToLower(value) {
	case "on", "yes":
		field.SetBool(true)
		return true
	case "off", "no", "":
		field.SetBool(false)
		return true
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	field.SetBool(b)
	return true
}

func setTime(field reflect.Value, value string) bool {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			field.Set(reflect.ValueOf(t))
			return true
		}
	}
	return false
}
