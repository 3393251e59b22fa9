// Package rule wraps struct and field validation on top of
// go-playground/validator.
package rule

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// initValidator reuses gin's validator engine when available, otherwise a
// fresh instance is created. The tag name is "rule" in both cases.
func initValidator() {
	if engine := binding.Validator.Engine(); engine != nil {
		if v, ok := engine.(*validator.Validate); ok {
			inst = v
			inst.SetTagName("rule")

			return
		}
	}

	inst = validator.New()
	inst.SetTagName("rule")
}

// lazyInit initializes the global validator (idempotent).
func lazyInit() {
	once.Do(initValidator)
}

// Engine returns the global *validator.Validate, initializing it first when
// needed.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation proxies RegisterValidation, ensuring initialization.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// RegisterAlias proxies RegisterAlias for alias rules.
func RegisterAlias(alias, rules string) {
	lazyInit()

	inst.RegisterAlias(alias, rules)
}

// ValidationErrors maps field names to readable messages.
type ValidationErrors map[string]string

// ValidateStruct validates a full struct; the returned error can be expanded
// with Errors.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar validates a single variable against a rule expression, e.g.
// ValidateVar("abc", "required,email").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// Errors expands a validator error into a field->message map. Non-validator
// errors produce a single "_" entry.
func Errors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	out := ValidationErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()

		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			out[field] = fmt.Sprintf("failed on %s=%s", fe.Tag(), fe.Param())
		} else {
			out[field] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}

	return out
}
