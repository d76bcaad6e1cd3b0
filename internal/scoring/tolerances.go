// Package scoring turns geometric errors into bounded scores and combines
// per-force, relation, equilibrium and neatness signals into a final grade.
package scoring

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Default tolerances. Distances are in drawing pixels; the grid step of the
// drawing surface is 20px.
const (
	GridStep = 20.0

	DefaultDirTolDeg     = 2.0
	DefaultAxisDirTolDeg = DefaultDirTolDeg / 4
	DefaultDirSpanDeg    = 24.0
	DefaultPosTol        = 22.0
	DefaultPosSpan       = 2 * DefaultPosTol
	DefaultSumTol        = 0.5 * GridStep
	DefaultSumSpan       = 4 * DefaultSumTol

	DefaultMinForceLength = 15.0
	DefaultMatchThreshold = 0.2
	DefaultNameWeight     = 0.5

	DefaultCoverageExponent = 1.5

	DefaultParallelDeg     = 0.5
	DefaultOverlapPx       = 3.0
	DefaultNeatnessPenalty = 0.9

	DefaultExtrasWeight = 0.5
	DefaultExtrasFree   = 2
	DefaultExtrasDecay  = 0.7
)

// Tolerances parameterizes every scoring rule. The zero value is not useful;
// start from Defaults.
type Tolerances struct {
	DirTolDeg     float64 `mapstructure:"dir_tol_deg" yaml:"dir_tol_deg"`
	AxisDirTolDeg float64 `mapstructure:"axis_dir_tol_deg" yaml:"axis_dir_tol_deg"`
	DirSpanDeg    float64 `mapstructure:"dir_span_deg" yaml:"dir_span_deg"`
	PosTol        float64 `mapstructure:"pos_tol" yaml:"pos_tol"`
	PosSpan       float64 `mapstructure:"pos_span" yaml:"pos_span"`
	SumTol        float64 `mapstructure:"sum_tol" yaml:"sum_tol"`
	SumSpan       float64 `mapstructure:"sum_span" yaml:"sum_span"`

	MinForceLength float64 `mapstructure:"min_force_length" yaml:"min_force_length"`
	MatchThreshold float64 `mapstructure:"match_threshold" yaml:"match_threshold"`
	// NameWeight is the share of the pairing score earned by a correct name.
	NameWeight float64 `mapstructure:"name_weight" yaml:"name_weight"`

	CoverageExponent float64 `mapstructure:"coverage_exponent" yaml:"coverage_exponent"`

	ParallelDeg     float64 `mapstructure:"parallel_deg" yaml:"parallel_deg"`
	OverlapPx       float64 `mapstructure:"overlap_px" yaml:"overlap_px"`
	NeatnessPenalty float64 `mapstructure:"neatness_penalty" yaml:"neatness_penalty"`

	ExtrasWeight float64 `mapstructure:"extras_weight" yaml:"extras_weight"`
	ExtrasFree   int     `mapstructure:"extras_free" yaml:"extras_free"`
	ExtrasDecay  float64 `mapstructure:"extras_decay" yaml:"extras_decay"`
}

// Defaults returns the standard grading tolerances.
func Defaults() Tolerances {
	return Tolerances{
		DirTolDeg:        DefaultDirTolDeg,
		AxisDirTolDeg:    DefaultAxisDirTolDeg,
		DirSpanDeg:       DefaultDirSpanDeg,
		PosTol:           DefaultPosTol,
		PosSpan:          DefaultPosSpan,
		SumTol:           DefaultSumTol,
		SumSpan:          DefaultSumSpan,
		MinForceLength:   DefaultMinForceLength,
		MatchThreshold:   DefaultMatchThreshold,
		NameWeight:       DefaultNameWeight,
		CoverageExponent: DefaultCoverageExponent,
		ParallelDeg:      DefaultParallelDeg,
		OverlapPx:        DefaultOverlapPx,
		NeatnessPenalty:  DefaultNeatnessPenalty,
		ExtrasWeight:     DefaultExtrasWeight,
		ExtrasFree:       DefaultExtrasFree,
		ExtrasDecay:      DefaultExtrasDecay,
	}
}

// DecodeTolerances overlays the keys present in overrides onto base.
// Unknown keys are rejected so that typos in task files surface.
func DecodeTolerances(base Tolerances, overrides map[string]any) (Tolerances, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	out := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(overrides); err != nil {
		return base, fmt.Errorf("decoding tolerances: %w", err)
	}
	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

// Validate rejects tolerances that would make scores meaningless.
func (t Tolerances) Validate() error {
	type field struct {
		key string
		v   float64
	}
	var errs []error
	for _, f := range []field{
		{"dir_tol_deg", t.DirTolDeg},
		{"axis_dir_tol_deg", t.AxisDirTolDeg},
		{"dir_span_deg", t.DirSpanDeg},
		{"pos_tol", t.PosTol},
		{"pos_span", t.PosSpan},
		{"sum_tol", t.SumTol},
		{"sum_span", t.SumSpan},
		{"min_force_length", t.MinForceLength},
		{"parallel_deg", t.ParallelDeg},
		{"overlap_px", t.OverlapPx},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", f.key, f.v))
		}
	}
	for _, f := range []field{
		{"match_threshold", t.MatchThreshold},
		{"name_weight", t.NameWeight},
		{"neatness_penalty", t.NeatnessPenalty},
		{"extras_weight", t.ExtrasWeight},
		{"extras_decay", t.ExtrasDecay},
	} {
		if f.v < 0 || f.v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %g", f.key, f.v))
		}
	}
	if t.ExtrasFree < 0 {
		errs = append(errs, fmt.Errorf("extras_free must not be negative, got %d", t.ExtrasFree))
	}
	if t.CoverageExponent <= 0 {
		errs = append(errs, fmt.Errorf("coverage_exponent must be positive, got %g", t.CoverageExponent))
	}
	return errors.Join(errs...)
}
