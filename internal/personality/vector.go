package personality

import (
	"fmt"
	"math"
)

// Dimension names one axis of the behavioral vector.
type Dimension string

const (
	Dominance     Dimension = "dominance"
	Influence     Dimension = "influence"
	Steadiness    Dimension = "steadiness"
	Compliance    Dimension = "compliance"
	Leadership    Dimension = "leadership"
	Creativity    Dimension = "creativity"
	Analytical    Dimension = "analytical"
	Teamwork      Dimension = "teamwork"
	Independence  Dimension = "independence"
	Adaptability  Dimension = "adaptability"
	Communication Dimension = "communication"
	Empathy       Dimension = "empathy"
)

// Dimensions is the fixed ordering used whenever a vector is flattened.
var Dimensions = [...]Dimension{
	Dominance, Influence, Steadiness, Compliance,
	Leadership, Creativity, Analytical, Teamwork,
	Independence, Adaptability, Communication, Empathy,
}

// NeutralValue is the default for any dimension with no information.
const NeutralValue = 50.0

// Vector is a 12-dimension behavioral profile, each value in [0, 100].
// It is a plain value type: assigning or returning it copies it.
type Vector struct {
	Dominance     float64 `json:"dominance"`
	Influence     float64 `json:"influence"`
	Steadiness    float64 `json:"steadiness"`
	Compliance    float64 `json:"compliance"`
	Leadership    float64 `json:"leadership"`
	Creativity    float64 `json:"creativity"`
	Analytical    float64 `json:"analytical"`
	Teamwork      float64 `json:"teamwork"`
	Independence  float64 `json:"independence"`
	Adaptability  float64 `json:"adaptability"`
	Communication float64 `json:"communication"`
	Empathy       float64 `json:"empathy"`
}

// Neutral returns a vector with every dimension at NeutralValue.
func Neutral() Vector {
	var v Vector
	for _, d := range Dimensions {
		v.Set(d, NeutralValue)
	}
	return v
}

// Values flattens the vector in Dimensions order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(Dimensions))
	for i, d := range Dimensions {
		out[i] = v.Get(d)
	}
	return out
}

// Get returns the value of a dimension. Unknown dimensions read as neutral.
func (v Vector) Get(d Dimension) float64 {
	switch d {
	case Dominance:
		return v.Dominance
	case Influence:
		return v.Influence
	case Steadiness:
		return v.Steadiness
	case Compliance:
		return v.Compliance
	case Leadership:
		return v.Leadership
	case Creativity:
		return v.Creativity
	case Analytical:
		return v.Analytical
	case Teamwork:
		return v.Teamwork
	case Independence:
		return v.Independence
	case Adaptability:
		return v.Adaptability
	case Communication:
		return v.Communication
	case Empathy:
		return v.Empathy
	}
	return NeutralValue
}

// Set assigns a dimension. Unknown dimensions are ignored.
func (v *Vector) Set(d Dimension, value float64) {
	switch d {
	case Dominance:
		v.Dominance = value
	case Influence:
		v.Influence = value
	case Steadiness:
		v.Steadiness = value
	case Compliance:
		v.Compliance = value
	case Leadership:
		v.Leadership = value
	case Creativity:
		v.Creativity = value
	case Analytical:
		v.Analytical = value
	case Teamwork:
		v.Teamwork = value
	case Independence:
		v.Independence = value
	case Adaptability:
		v.Adaptability = value
	case Communication:
		v.Communication = value
	case Empathy:
		v.Empathy = value
	}
}

// Raise sets d to floor when the current value is lower.
func (v *Vector) Raise(d Dimension, floor float64) {
	if v.Get(d) < floor {
		v.Set(d, floor)
	}
}

// Clamped returns a copy with every dimension limited to [0, 100].
func (v Vector) Clamped() Vector {
	out := v
	for _, d := range Dimensions {
		out.Set(d, math.Max(0, math.Min(100, v.Get(d))))
	}
	return out
}

// Variance is the population variance across the twelve dimensions.
func (v Vector) Variance() float64 {
	values := v.Values()
	var sum float64
	for _, x := range values {
		sum += x
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, x := range values {
		sq += (x - mean) * (x - mean)
	}
	return sq / float64(len(values))
}

// ParseDimension resolves a case-sensitive dimension name.
func ParseDimension(name string) (Dimension, bool) {
	for _, d := range Dimensions {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

// VectorFromMap builds a vector that must name every dimension exactly once
// with a value in [0, 100].
func VectorFromMap(m map[string]float64) (Vector, error) {
	var v Vector
	for _, d := range Dimensions {
		val, ok := m[string(d)]
		if !ok {
			return Vector{}, fmt.Errorf("missing dimension %q", d)
		}
		if val < 0 || val > 100 || math.IsNaN(val) {
			return Vector{}, fmt.Errorf("dimension %q out of range: %v", d, val)
		}
		v.Set(d, val)
	}
	for k := range m {
		if _, ok := ParseDimension(k); !ok {
			return Vector{}, fmt.Errorf("unknown dimension %q", k)
		}
	}
	return v, nil
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either has zero norm. Extra elements of the longer slice are ignored.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
