package validator

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/friendr/quiz-session/internal/errors"
	"github.com/friendr/quiz-session/internal/models"
	"github.com/go-playground/validator/v10"
)

// Use shared validation errors from errors package
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}

// AnswerValidator checks a single "answer selected" event against the quiz
type AnswerValidator struct {
	structValidator *validator.Validate
}

// NewAnswerValidator creates a new answer validator
func NewAnswerValidator(structValidator *validator.Validate) *AnswerValidator {
	return &AnswerValidator{structValidator: structValidator}
}

// Apply returns a copy of answers with field set to value. The input set is
// never modified; an invalid value yields ValidationErrors.
func (v *AnswerValidator) Apply(answers models.AnswerSet, field models.AnswerField, value interface{}) (models.AnswerSet, error) {
	if !field.IsKnown() {
		return answers, ValidationErrors{*errors.NewValidationErrorWithRule(string(field), "is not a quiz question", "known_field", value)}
	}

	updated := answers.Clone()

	if field.IsImportance() {
		level, err := toImportance(field, value)
		if err != nil {
			return answers, err
		}
		setImportance(&updated, field, level)
	} else {
		choice, ok := value.(string)
		if !ok {
			return answers, ValidationErrors{*errors.NewValidationErrorWithRule(string(field), "must be a string", "string", value)}
		}
		setBehavior(&updated, field, choice)
	}

	if err := v.ValidateAnswers(updated); err != nil {
		return answers, err
	}
	return updated, nil
}

// ValidateAnswers validates every field of the set
func (v *AnswerValidator) ValidateAnswers(answers models.AnswerSet) error {
	if err := v.structValidator.Struct(&answers); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return fmt.Errorf("failed to validate answers: %w", err)
	}
	return nil
}

func toImportance(field models.AnswerField, value interface{}) (int, error) {
	notNumber := ValidationErrors{*errors.NewValidationErrorWithRule(string(field), "must be a number", "numeric", value)}

	switch n := value.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, notNumber
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, notNumber
		}
		return int(i), nil
	default:
		return 0, notNumber
	}
}

func setImportance(a *models.AnswerSet, field models.AnswerField, level int) {
	switch field {
	case models.FieldDogsImportance:
		a.DogsImportance = level
	case models.FieldCatsImportance:
		a.CatsImportance = level
	case models.FieldKidsImportance:
		a.KidsImportance = level
	case models.FieldStrangersImportance:
		a.StrangersImportance = level
	}
}

func setBehavior(a *models.AnswerSet, field models.AnswerField, choice string) {
	switch field {
	case models.FieldDogIntroduction:
		v := models.DogIntroduction(choice)
		a.DogIntroduction = &v
	case models.FieldCatBehavior:
		v := models.CatBehavior(choice)
		a.CatBehavior = &v
	case models.FieldKidsBehavior:
		v := models.KidsBehavior(choice)
		a.KidsBehavior = &v
	case models.FieldStrangersBehavior:
		v := models.StrangersBehavior(choice)
		a.StrangersBehavior = &v
	}
}
