package validator

import (
	"reflect"
	"strings"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	answerValidator *AnswerValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		answerValidator: NewAnswerValidator(structValidator),
	}
}

// Answer returns the answer validator
func (v *Validator) Answer() *AnswerValidator {
	return v.answerValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("dog_introduction", validateDogIntroduction)
	validate.RegisterValidation("cat_behavior", validateCatBehavior)
	validate.RegisterValidation("kids_behavior", validateKidsBehavior)
	validate.RegisterValidation("strangers_behavior", validateStrangersBehavior)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateDogIntroduction(fl validator.FieldLevel) bool {
	validValues := []models.DogIntroduction{
		models.DogIntroSlow,
		models.DogIntroSupervised,
		models.DogIntroQuick,
		models.DogIntroAvoid,
	}

	value := fl.Field().String()
	for _, valid := range validValues {
		if string(valid) == value {
			return true
		}
	}
	return false
}

func validateCatBehavior(fl validator.FieldLevel) bool {
	validValues := []models.CatBehavior{
		models.CatBehaviorCalm,
		models.CatBehaviorCurious,
		models.CatBehaviorChase,
		models.CatBehaviorAvoid,
	}

	value := fl.Field().String()
	for _, valid := range validValues {
		if string(valid) == value {
			return true
		}
	}
	return false
}

func validateKidsBehavior(fl validator.FieldLevel) bool {
	validValues := []models.KidsBehavior{
		models.KidsBehaviorGentle,
		models.KidsBehaviorTolerant,
		models.KidsBehaviorNervous,
		models.KidsBehaviorAvoid,
	}

	value := fl.Field().String()
	for _, valid := range validValues {
		if string(valid) == value {
			return true
		}
	}
	return false
}

func validateStrangersBehavior(fl validator.FieldLevel) bool {
	validValues := []models.StrangersBehavior{
		models.StrangersShy,
		models.StrangersFriendly,
		models.StrangersCautious,
		models.StrangersProtective,
	}

	value := fl.Field().String()
	for _, valid := range validValues {
		if string(valid) == value {
			return true
		}
	}
	return false
}
