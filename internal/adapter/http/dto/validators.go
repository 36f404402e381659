package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Plan ids are lowercase identifiers like "coach_monthly"; legacy clients may
// still send uppercase variants.
var planIDRe = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("plan_id", validatePlanID)
	}
}

func validatePlanID(fl validator.FieldLevel) bool {
	return planIDRe.MatchString(fl.Field().String())
}
