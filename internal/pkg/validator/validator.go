package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomRules installs domain validation tags on gin's binding
// engine. Call once at startup, before the router handles requests.
func RegisterCustomRules() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// hhmm accepts wall-clock times like "09:00" or "22:30".
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
}

// Validate checks struct tags outside a request context, for inputs that
// arrive from seeds or internal callers rather than gin binding.
func Validate(v interface{}) map[string]string {
	err := binding.Validator.Engine().(*validator.Validate).Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
