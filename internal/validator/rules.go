package validator

import (
	"log"

	"gymdesk_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain-specific validation tags. A rule
// that fails to register is a startup error, not a runtime one.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-membership-status", validateMembershipStatus)
	mustRegister("is-payment-status", validatePaymentStatus)
	mustRegister("is-payment-method", validatePaymentMethod)
	mustRegister("is-duration-unit", validateDurationUnit)
	mustRegister("is-gender", validateGender)
}

// Empty values pass every custom rule; 'required' handles presence.

func validateMembershipStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidMembershipStatus(models.MembershipStatus(value))
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidPaymentStatus(models.PaymentStatus(value))
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentMethod(value) {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI,
		models.PaymentMethodBankTransfer, models.PaymentMethodCheque:
		return true
	default:
		return false
	}
}

func validateDurationUnit(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DurationUnit(value) {
	case models.DurationUnitDays, models.DurationUnitMonths:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "Male", "Female", "Other":
		return true
	default:
		return false
	}
}
