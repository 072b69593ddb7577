package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Violation describes a field that failed validation.
type Violation struct {
	// Field is the Go name of the struct field.
	Field string

	// Tag is the failed rule (e.g. "gt", "oneof").
	Tag string

	// Param is the parameter of the rule, if any.
	Param string

	// Value is the offending value.
	Value any
}

func (v Violation) String() string {
	if v.Param == "" {
		return fmt.Sprintf("%s: %s (%v)", v.Field, v.Tag, v.Value)
	}
	return fmt.Sprintf("%s: %s=%s (%v)", v.Field, v.Tag, v.Param, v.Value)
}

// EarliestRecipeDate is the lowest accepted creation date of a recipe.
var EarliestRecipeDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("recipedate", isRecipeDate)
	})
	return validate
}

// isRecipeDate accepts dates from EarliestRecipeDate up to tomorrow.
func isRecipeDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	tomorrow := time.Now().AddDate(0, 0, 1)
	return !t.Before(EarliestRecipeDate) && !t.After(tomorrow)
}

// Validate checks a pointer to a recipe or an ingredient row and returns
// all violations. Nested ingredient slices are not traversed.
func Validate(v any) ([]Violation, error) {
	err := getValidator().Struct(v)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	res := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, Violation{
			Field: fe.StructField(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return res, nil
}

// Unset sets an optional field of a struct pointer to nil. It returns
// false if the field does not exist or is not optional.
func Unset(v any, field string) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return false
	}
	f := rv.Elem().FieldByName(field)
	if !f.IsValid() || !f.CanSet() || f.Kind() != reflect.Pointer {
		return false
	}
	f.Set(reflect.Zero(f.Type()))
	return true
}

// ValidatedFields returns the number of fields of a struct that carry
// validation rules.
func ValidatedFields(v any) int {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return 0
	}
	var res int
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("validate")
		if tag != "" && tag != "-" {
			res++
		}
	}
	return res
}
