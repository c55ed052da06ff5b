package model

import (
	"strings"

	"github.com/iliyamo/bmi-calculator/internal/service"
)

// BMIRequest is the body accepted by POST /api/bmi/calculate.  Weight and
// Height are pointers so a missing field can be told apart from an explicit
// zero; both produce a validation error but with different messages.
//
// Fields:
//  Weight – kilograms (metric) or pounds (imperial).
//  Height – metres (metric) or inches (imperial).
//  Unit   – "metric" or "imperial"; empty means metric.
type BMIRequest struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	Unit   string   `json:"unit"`
}

// BMIResponse is the JSON shape returned for a successful calculation.
// Weight and Height carry the normalized metric values.
type BMIResponse struct {
	BMI           float64 `json:"bmi"`
	Category      string  `json:"category"`
	HealthMessage string  `json:"healthMessage"`
	HealthAdvice  string  `json:"healthAdvice"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	ColorCode     string  `json:"colorCode"`
}

// adviceBullet prefixes every advice line; clients split healthAdvice on "\n".
const adviceBullet = "• "

// NewBMIResponse converts a calculator result into its wire form.
func NewBMIResponse(r service.Result) BMIResponse {
	return BMIResponse{
		BMI:           r.BMI,
		Category:      r.Category.String(),
		HealthMessage: r.Message,
		HealthAdvice:  FormatAdvice(r.Advice),
		Weight:        r.WeightKg,
		Height:        r.HeightM,
		ColorCode:     r.ColorCode,
	}
}

// FormatAdvice renders advice items as a newline separated bullet list.
func FormatAdvice(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(adviceBullet)
		b.WriteString(it)
	}
	return b.String()
}

// HealthResponse is returned by GET /api/bmi/health.  Timestamp is the
// server time in Unix milliseconds, encoded as a string.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope for failures that are not field validation
// errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
