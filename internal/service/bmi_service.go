// Package service holds the BMI computation. Everything here is pure: no
// I/O, no logging and no package state beyond the read-only category table,
// so the functions are safe to call from any number of goroutines.
package service

import (
	"math"
	"strings"
)

// Unit selects how the raw weight and height are interpreted.
type Unit int

const (
	Metric   Unit = iota // kilograms and metres
	Imperial             // pounds and inches
)

// ParseUnit maps a request unit to a Unit. Matching is case-insensitive and
// anything other than "imperial" (including the empty string) is Metric.
func ParseUnit(s string) Unit {
	if strings.EqualFold(s, "imperial") {
		return Imperial
	}
	return Metric
}

func (u Unit) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

const (
	kgPerPound    = 0.453592
	metersPerInch = 0.0254
)

// PoundsToKg converts a weight in pounds to kilograms.
func PoundsToKg(lb float64) float64 { return lb * kgPerPound }

// InchesToMeters converts a length in inches to metres.
func InchesToMeters(in float64) float64 { return in * metersPerInch }

// Result is the outcome of one calculation. WeightKg and HeightM are the
// normalized values the formula was applied to, not the raw input.
type Result struct {
	BMI       float64
	Category  Category
	Message   string
	Advice    []string
	WeightKg  float64
	HeightM   float64
	ColorCode string
}

// Calculate normalizes the measurement to metric, computes the BMI rounded
// to two decimals and attaches the guidance for its category.
//
// Callers must reject non-positive or non-finite weight and height before
// calling; Calculate does not check them.
func Calculate(weight, height float64, unit string) Result {
	if ParseUnit(unit) == Imperial {
		weight = PoundsToKg(weight)
		height = InchesToMeters(height)
	}

	bmi := round2(weight / (height * height))
	cat := Classify(bmi)
	info := cat.Info()

	return Result{
		BMI:       bmi,
		Category:  cat,
		Message:   info.Message,
		Advice:    append([]string(nil), info.Advice...),
		WeightKg:  weight,
		HeightM:   height,
		ColorCode: info.ColorCode,
	}
}

// round2 rounds to two decimal places, ties away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
