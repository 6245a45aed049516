package nodepop

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/core/response"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("price", validatePrice)
	_ = v.RegisterValidation("tags", validateTags)
	_ = v.RegisterValidation("objectid", validateObjectID)

	return v
}

func validatePrice(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
	return err == nil && v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validateTags(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice {
		return false
	}
	for i := range f.Len() {
		for _, tag := range product.ParseTags(f.Index(i).String()) {
			if !product.IsAllowedTag(tag) {
				return false
			}
		}
	}
	return true
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := bson.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

// validateStruct runs the validator and maps failures to a
// response.ValidationError reported at location.
func (a *App) validateStruct(v any, location string) error {
	err := a.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field:    fe.Field(),
			Message:  validationMessage(fe),
			Value:    fe.Value(),
			Location: location,
		})
	}
	return response.NewValidationError(fields...)
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "price":
		return field + " must be a number greater than 0"
	case "tags":
		return field + " must be any of: " + strings.Join(product.AllowedTags, ", ")
	case "objectid":
		return field + " must be a valid product id"
	default:
		return field + " is invalid"
	}
}

// flexString decodes a JSON string or number into text, so JSON clients may
// send "price": 12.5 or "price": "12.5".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
