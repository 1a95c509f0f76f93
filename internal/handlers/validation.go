package handlers

import (
	"strings"
	"sync"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerRulesOnce sync.Once

// registerBindingRules adds the custom validator tags used by request DTOs.
func registerBindingRules() {
	registerRulesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("line_type", validateLineType)
	})
}

// validateLineType accepts "debit" or "credit" in any case.
func validateLineType(fl validator.FieldLevel) bool {
	return domain.LineType(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
}
