// Package bmi parses height/weight text and computes body-mass index.
package bmi

import (
	"math"
	"regexp"
	"strconv"
)

type Unit string

const (
	Metric   Unit = "metric"
	Imperial Unit = "imperial"
)

var (
	heightCmRe = regexp.MustCompile(`(?i)height:\s*(\d+)\s*cm`)
	weightKgRe = regexp.MustCompile(`(?i)weight:\s*(\d+)\s*kg`)
	heightFtRe = regexp.MustCompile(`(?i)height:\s*(\d+)\s*ft\s*(\d+)\s*in`)
	weightLbRe = regexp.MustCompile(`(?i)weight:\s*(\d+)\s*lbs?`)
)

// Input is a parsed measurement. Only the fields of Unit are meaningful.
type Input struct {
	Unit      Unit
	HeightCm  float64
	WeightKg  float64
	Feet      float64
	Inches    float64
	WeightLbs float64
}

// Result is a BMI rounded to one decimal.
type Result struct {
	Value float64
	Unit  Unit
}

// Parse extracts height and weight from free text. Metric wins when both
// systems are present. ok is false unless both height and weight were found.
func Parse(text string) (Input, bool) {
	hc, wk := heightCmRe.FindStringSubmatch(text), weightKgRe.FindStringSubmatch(text)
	if hc != nil && wk != nil {
		return Input{Unit: Metric, HeightCm: num(hc[1]), WeightKg: num(wk[1])}, true
	}
	hf, wl := heightFtRe.FindStringSubmatch(text), weightLbRe.FindStringSubmatch(text)
	if hf != nil && wl != nil {
		return Input{Unit: Imperial, Feet: num(hf[1]), Inches: num(hf[2]), WeightLbs: num(wl[1])}, true
	}
	return Input{}, false
}

// Calculate computes the BMI. ok is false for a zero height.
func Calculate(in Input) (Result, bool) {
	var v float64
	switch in.Unit {
	case Metric:
		m := in.HeightCm / 100
		if m <= 0 {
			return Result{}, false
		}
		v = in.WeightKg / (m * m)
	case Imperial:
		total := in.Feet*12 + in.Inches
		if total <= 0 {
			return Result{}, false
		}
		v = in.WeightLbs / (total * total) * 703
	default:
		return Result{}, false
	}
	return Result{Value: math.Round(v*10) / 10, Unit: in.Unit}, true
}

// Category labels a BMI value. The upper bounds of the Normal and Overweight
// bands are exclusive at 24.9 and 29.9.
func Category(v float64) string {
	switch {
	case v < 18.5:
		return "Underweight"
	case v < 24.9:
		return "Normal weight"
	case v < 29.9:
		return "Overweight"
	default:
		return "Obese"
	}
}

func num(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
