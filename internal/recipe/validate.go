package recipe

import (
	"fmt"
	"unicode/utf8"

	"github.com/brewnote/brewnote/internal/sensory"
)

// fieldLimits is the one varchar-ceiling table shared by every write path.
// Limits are in characters and mirror the column widths in internal/db.
var fieldLimits = []struct {
	name  string
	limit int
	get   func(*Recipe) string
}{
	{"recipe_name", 200, func(r *Recipe) string { return r.Name }},
	{"origin", 100, func(r *Recipe) string { return r.BeanInfo.Origin }},
	{"processing_method", 50, func(r *Recipe) string { return r.BeanInfo.ProcessingMethod }},
	{"coffee_bean_brand", 100, func(r *Recipe) string { return r.BeanInfo.CoffeeBeanBrand }},
	{"roasting_level", 20, func(r *Recipe) string { return r.BeanInfo.RoastingLevel }},
	{"brewing_method", 50, func(r *Recipe) string { return r.BrewingParameters.BrewingMethod }},
	{"grinder_model", 100, func(r *Recipe) string { return r.BrewingParameters.GrinderModel }},
	{"grinder_unit", 50, func(r *Recipe) string { return r.BrewingParameters.GrinderUnit }},
	{"filtering_tools", 100, func(r *Recipe) string { return r.BrewingParameters.FilteringTools }},
	{"turbulence", 200, func(r *Recipe) string { return r.BrewingParameters.Turbulence }},
	{"evaluation_system", 20, func(r *Recipe) string {
		if r.Sensation == nil {
			return ""
		}
		return string(r.Sensation.EvaluationSystem)
	}},
}

// ValidateFieldLengths returns one violation per over-limit field, in table
// order. Empty result means every field fits its column.
func ValidateFieldLengths(r *Recipe) []string {
	var out []string
	for _, f := range fieldLimits {
		if n := utf8.RuneCountInString(f.get(r)); n > f.limit {
			out = append(out, fmt.Sprintf("%s: %d characters exceeds limit of %d", f.name, n, f.limit))
		}
	}
	return out
}

// ValidateRequiredFields enforces the non-null business rules. Like the
// length validator it collects everything instead of failing fast, so one
// resubmission can fix all problems.
func ValidateRequiredFields(r *Recipe) []string {
	var out []string
	if r.Measurements.CoffeeBeans <= 0 {
		out = append(out, "measurements.coffee_beans must be greater than 0")
	}
	if r.Measurements.Water <= 0 {
		out = append(out, "measurements.water must be greater than 0")
	}
	if r.BrewingParameters.GrinderModel == "" {
		out = append(out, "brewing_parameters.grinder_model is required")
	}
	if r.BrewingParameters.GrinderUnit == "" {
		out = append(out, "brewing_parameters.grinder_unit is required")
	}
	if r.BeanInfo.Origin == "" {
		out = append(out, "bean_info.origin is required")
	}
	if r.BeanInfo.ProcessingMethod == "" {
		out = append(out, "bean_info.processing_method is required")
	}
	return out
}

// Validate runs every write-path check and aggregates the violations:
// lengths, required fields, CATA descriptor ceilings, defect encodings.
// The caller maps a non-empty list to a 400.
func Validate(r *Recipe) []string {
	out := ValidateRequiredFields(r)
	out = append(out, ValidateFieldLengths(r)...)
	if r.Sensation != nil {
		out = append(out, sensory.ValidateDescriptors(*r.Sensation)...)
		out = append(out, sensory.ValidateDefects(*r.Sensation)...)
	}
	return out
}
