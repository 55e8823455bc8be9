package services

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes domain events. The RabbitMQ client implements it;
// nil disables publishing.
type EventPublisher interface {
	PublishEvent(routingKey string, payload any) error
}

// ValidationError reports invalid fields of a write request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func validateModel(v *validator.Validate, model any) error {
	err := v.Struct(model)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate: %w", err)
	}
	fields := make(map[string]string, len(ve))
	for _, e := range ve {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return &ValidationError{Fields: fields}
}

// publish sends an event and only logs failures: the write already happened.
func publish(events EventPublisher, routingKey string, payload any) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
