package props

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantizer rounds numeric feature properties to fixed steps.
type Quantizer struct {
	FloatStep  float64            // Applied to floating point properties when >0.
	IntStep    float64            // Applied to integer properties when >0.
	FieldSteps map[string]float64 // Per-key overrides, case-sensitive.
}

// Result captures quantization statistics for a feature.
type Result struct {
	TotalAbsError float64
	FieldErrors   map[string]float64
	Changes       int
}

func (r *Result) add(key string, diff float64) {
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]float64)
	}
	r.TotalAbsError += diff
	r.FieldErrors[key] += diff
	r.Changes++
}

// Merge folds other into r.
func (r *Result) Merge(other Result) {
	for k, v := range other.FieldErrors {
		if r.FieldErrors == nil {
			r.FieldErrors = make(map[string]float64)
		}
		r.FieldErrors[k] += v
	}
	r.TotalAbsError += other.TotalAbsError
	r.Changes += other.Changes
}

// ParseQuantizer reads rules such as "float=0.01,int=1,area_km2=0.001".
// Tokens may be separated by commas, semicolons or whitespace.
func ParseQuantizer(spec string) (Quantizer, error) {
	q := Quantizer{FieldSteps: make(map[string]float64)}

	tokens := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return Quantizer{}, fmt.Errorf("invalid quantize token %q", token)
		}

		step, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Quantizer{}, fmt.Errorf("parse quantize value %q: %w", token, err)
		}
		if step < 0 || math.IsNaN(step) || math.IsInf(step, 0) {
			return Quantizer{}, fmt.Errorf("quantize step must be a finite non-negative number for %q", token)
		}

		switch strings.ToLower(key) {
		case "float":
			q.FloatStep = step
		case "int":
			q.IntStep = step
		default:
			q.FieldSteps[key] = step
		}
	}
	return q, nil
}

// IsZero reports whether q never changes a value.
func (q Quantizer) IsZero() bool {
	if q.FloatStep > 0 || q.IntStep > 0 {
		return false
	}
	for _, s := range q.FieldSteps {
		if s > 0 {
			return false
		}
	}
	return true
}

// Apply rounds numeric values in place and reports what changed.
func (q Quantizer) Apply(props map[string]any) Result {
	var res Result
	for key, value := range props {
		quantized, diff, ok := q.quantize(key, value)
		if ok {
			props[key] = quantized
			res.add(key, diff)
		}
	}
	return res
}

func (q Quantizer) quantize(key string, value any) (any, float64, bool) {
	switch v := value.(type) {
	case float64:
		return roundFloat(v, q.step(key, q.FloatStep))
	case float32:
		f, diff, ok := roundFloat(float64(v), q.step(key, q.FloatStep))
		return float32(f), diff, ok
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, 0, false
		}
		return roundFloat(f, q.step(key, q.FloatStep))
	case int:
		return roundInt(v, q.step(key, q.IntStep))
	case int32:
		return roundInt(v, q.step(key, q.IntStep))
	case int64:
		return roundInt(v, q.step(key, q.IntStep))
	case uint32:
		return roundInt(v, q.step(key, q.IntStep))
	default:
		return nil, 0, false
	}
}

func (q Quantizer) step(key string, fallback float64) float64 {
	if s, ok := q.FieldSteps[key]; ok {
		return s
	}
	return fallback
}

func roundFloat(v, step float64) (float64, float64, bool) {
	if step <= 0 {
		return v, 0, false
	}
	quantized := math.Round(v/step) * step
	diff := math.Abs(quantized - v)
	if diff == 0 {
		return v, 0, false
	}
	return quantized, diff, true
}

func roundInt[T int | int32 | int64 | uint32](v T, step float64) (T, float64, bool) {
	if step <= 0 {
		return v, 0, false
	}
	quantized := T(math.Round(float64(v)/step) * step)
	if quantized == v {
		return v, 0, false
	}
	return quantized, math.Abs(float64(quantized) - float64(v)), true
}
