package student

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/admitcrm/core"
)

var (
	noteCategoryTag  = "notecategory"
	noteCategoryText = fmt.Sprintf("category must be one of: %s", strings.Join(NoteCategories, ", "))

	priorityTag  = "priority"
	priorityText = "priority must be one of: Low, Medium, High"

	// minimum similarity for a country suggestion
	countryMinSim = .6
)

// InitValidators registers the student validation tags and their messages.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(noteCategoryTag, noteCategoryValidation)
	core.RegisterCustomTranslation(validate, translator, noteCategoryTag, noteCategoryText)

	_ = validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)
}

// Custom Validators

func noteCategoryValidation(fl validator.FieldLevel) bool {
	category := fl.Field().String()
	for _, c := range NoteCategories {
		if c == category {
			return true
		}
	}
	return false
}

func priorityValidation(fl validator.FieldLevel) bool {
	return Priority(fl.Field().String()).IsValid()
}

// SuggestCountry returns the known country closest to input, if any is similar enough.
func SuggestCountry(input string) (string, bool) {
	input = strings.ToLower(core.CleanString(input))
	if input == "" {
		return "", false
	}

	var (
		best      string
		bestRatio float64
	)
	for _, c := range Countries {
		lc := strings.ToLower(c)
		if lc == input {
			return c, true
		}
		ratio := difflib.NewMatcher(strings.Split(input, ""), strings.Split(lc, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	if bestRatio < countryMinSim {
		return "", false
	}
	return best, true
}
