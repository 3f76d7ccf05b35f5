package commerce

import (
	"errors"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var supportedResource = validation.By(func(value interface{}) error {
	resource, _ := value.(ResourceType)
	if resource == "" {
		return nil
	}
	if _, err := ResolveSegment(resource); err != nil {
		return validation.NewError("validation_resource_not_supported", "resource type is not supported")
	}
	return nil
})

// Validate reports every missing or unsupported field as ValidationErrors
func (o GetOptions) Validate() error {
	return collectValidationErrors(validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, supportedResource),
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Nested, validation.When(o.NestedID != "", validation.Required), supportedResource),
	))
}

func (o ListOptions) Validate() error {
	return collectValidationErrors(validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, supportedResource),
	))
}

func (o BuildOptions) Validate() error {
	return collectValidationErrors(validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, supportedResource),
		validation.Field(&o.Data, validation.Required),
	))
}

func (o UpdateOptions) Validate() error {
	return collectValidationErrors(validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, supportedResource),
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Data, validation.Required),
	))
}

func (o DeleteOptions) Validate() error {
	return collectValidationErrors(validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.Required, supportedResource),
		validation.Field(&o.ID, validation.Required),
	))
}

// collectValidationErrors converts ozzo field errors into ValidationErrors sorted by field
func collectValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		result = append(result, ValidationError{
			Field:       field,
			Code:        http.StatusBadRequest,
			Description: fieldErr.Error(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Field < result[j].Field
	})

	return result
}
