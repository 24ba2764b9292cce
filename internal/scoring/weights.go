package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each sub-score.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	Behavioral  float64 `yaml:"behavioral" json:"behavioral"`
	Agile       float64 `yaml:"agile" json:"agile"`
	TraitFit    float64 `yaml:"trait_fit" json:"trait_fit"`
	Reliability float64 `yaml:"reliability" json:"reliability"`
}

// DefaultWeights returns the standard composite distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Behavioral:  0.35,
		Agile:       0.25,
		TraitFit:    0.25,
		Reliability: 0.15,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Behavioral + w.Agile + w.TraitFit + w.Reliability
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// asList follows factor order: BAS, ARS, TFS, RSI.
func (w WeightSet) asList() []float64 {
	return []float64{w.Behavioral, w.Agile, w.TraitFit, w.Reliability}
}
