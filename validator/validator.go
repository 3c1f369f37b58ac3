package validator

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/deltegui/pmadmin/core"
	playgroundValidator "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	// Tag is the condition that have failed
	Tag string

	// Param is the parameter of the tag, if any.
	Param string

	// Complete path to the field that have the error.
	Path string

	// Field is the name (and only the name) of the failing field
	Field string

	// Error is the stringified error
	Err string

	Value interface{}
	Kind  reflect.Kind
}

func (v ValidationError) Error() string {
	return v.Err
}

// Message is the readable description of the error shown to users.
func (v ValidationError) Message() string {
	switch v.Tag {
	case "required":
		return fmt.Sprintf("%s is required", v.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", v.Field)
	case "min", "gte":
		if v.Kind == reflect.String {
			return fmt.Sprintf("%s must have at least %s characters", v.Field, v.Param)
		}
		return fmt.Sprintf("%s must be greater or equal than %s", v.Field, v.Param)
	case "max", "lte":
		if v.Kind == reflect.String {
			return fmt.Sprintf("%s must have at most %s characters", v.Field, v.Param)
		}
		return fmt.Sprintf("%s must be less or equal than %s", v.Field, v.Param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", v.Field, v.Param)
	case "len":
		return fmt.Sprintf("%s must have a length of %s", v.Field, v.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", v.Field, v.Param)
	default:
		return fmt.Sprintf("%s is not valid (%s)", v.Field, v.Tag)
	}
}

func ToFieldErrors(errs []ValidationError) []core.FieldError {
	result := make([]core.FieldError, 0, len(errs))
	for _, e := range errs {
		result = append(result, core.FieldError{
			Field:   e.Field,
			Tag:     e.Tag,
			Param:   e.Param,
			Message: e.Message(),
		})
	}
	return result
}

// ModelError maps each failing field to its message, for form rendering.
func ModelError(errs []core.FieldError) map[string]string {
	vmErr := map[string]string{}
	for _, e := range errs {
		vmErr[e.Field] = e.Message
	}
	return vmErr
}

type PlaygroundValidator struct {
	validator *playgroundValidator.Validate
}

func NewPlayground() PlaygroundValidator {
	return PlaygroundValidator{validator: playgroundValidator.New(playgroundValidator.WithRequiredStructEnabled())}
}

func New() core.Validator {
	val := NewPlayground()
	return func(t any) []core.FieldError {
		ss, err := val.Validate(t)
		if err != nil {
			log.Println("[PMADMIN] Cannot validate model:", err)
			return []core.FieldError{{
				Tag:     "invalid",
				Message: "Model cannot be validated",
			}}
		}
		if len(ss) == 0 {
			return nil
		}
		return ToFieldErrors(ss)
	}
}

func (val PlaygroundValidator) Validate(target interface{}) ([]ValidationError, error) {
	err := val.validator.Struct(target)
	if err != nil {
		var e playgroundValidator.ValidationErrors
		if !errors.As(err, &e) {
			return nil, err
		}
		return errorsToResult(e), nil
	}
	return []ValidationError{}, nil
}

func errorsToResult(ee playgroundValidator.ValidationErrors) []ValidationError {
	result := make([]ValidationError, len(ee))
	for i, e := range ee {
		result[i] = ValidationError{
			Tag:   e.ActualTag(),
			Param: e.Param(),
			Path:  e.StructNamespace(),
			Field: e.Field(),
			Err:   e.Error(),
			Value: e.Value(),
			Kind:  e.Kind(),
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
