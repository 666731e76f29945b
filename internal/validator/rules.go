package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"artfolio_backend/internal/models"
)

// registerCustomRules wires the enum rules into the validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule failing to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-subscription-type", validateSubscriptionType)
	mustRegister("is-permission-level", validatePermissionLevel)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is 'required's job
	}
	for _, r := range models.ValidRoles {
		if string(r) == value {
			return true
		}
	}
	return false
}

func validateSubscriptionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, s := range models.ValidSubscriptionTypes {
		if string(s) == value {
			return true
		}
	}
	return false
}

func validatePermissionLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, l := range models.ValidPermissionLevels {
		if string(l) == value {
			return true
		}
	}
	return false
}
