package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/sales"
)

// registerValidators installs the enum validators used by request
// binding tags, so malformed enums are rejected at the edge with a 400
// before reaching the services.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("movement_type", func(fl validator.FieldLevel) bool {
		return inventory.MovementType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return sales.PaymentMethod(fl.Field().String()).IsValid()
	})
}
