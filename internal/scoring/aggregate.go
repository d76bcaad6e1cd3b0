package scoring

import (
	"math"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
)

// Inputs carries everything the aggregator combines.
type Inputs struct {
	ExpectedCount int
	Forces        []models.MatchResult
	Relations     []models.RelationResult
	// HasRelations is true when the task declares relations, even if none
	// produced a result.
	HasRelations bool
	SumF         models.SumFResult
	Neatness     models.NeatnessResult
	// Extras lists the drawn indices of completed, unmatched, non-initial forces.
	Extras []int
}

// ForceScore computes the combined score of one expected force: the mean of
// the name, direction and position scores. Missing forces score 0.
func ForceScore(r *models.MatchResult) models.ForceScore {
	fs := models.ForceScore{Name: r.Name, DirTolDeg: r.DirTolDeg}
	if !r.Found {
		return fs
	}
	if r.NameOK {
		fs.NameScore = 1
	}
	fs.DirScore = r.DirScore
	if r.PosErr != nil {
		fs.PosScore = r.PosScore
	}
	fs.Combined = (fs.NameScore + fs.DirScore + fs.PosScore) / 3
	return fs
}

// ExtrasFactor is the multiplier applied to the equilibrium score when
// stray forces are present: ExtrasWeight for up to ExtrasFree extras, then
// decaying by ExtrasDecay per additional extra.
func (t Tolerances) ExtrasFactor(extras int) float64 {
	if extras <= 0 {
		return 1
	}
	f := t.ExtrasWeight
	if extras > t.ExtrasFree {
		f *= math.Pow(t.ExtrasDecay, float64(extras-t.ExtrasFree))
	}
	return f
}

// Aggregate combines the partial results into the summary score.
func Aggregate(in Inputs, tol Tolerances) models.ScoreSummary {
	s := models.ScoreSummary{
		ExpectedCount: in.ExpectedCount,
		ExtrasCount:   len(in.Extras),
		Extras:        in.Extras,
		HasRelations:  in.HasRelations,
		SumFResult:    in.SumF,
		SumFScore:     in.SumF.Score,
		Neatness:      in.Neatness.Factor,
		Overlap:       in.Neatness.Overlap,
	}

	var total float64
	for i := range in.Forces {
		fs := ForceScore(&in.Forces[i])
		s.Breakdown = append(s.Breakdown, fs)
		if in.Forces[i].Found {
			s.FoundCount++
			total += fs.Combined
		}
	}
	if s.FoundCount > 0 {
		s.BaseScore = total / float64(s.FoundCount)
	}

	s.Coverage = 1
	if s.ExpectedCount > 0 {
		s.Coverage = float64(s.FoundCount) / float64(s.ExpectedCount)
	}
	s.CoverageFactor = math.Pow(geometry.Clamp(s.Coverage, 0, 1), tol.CoverageExponent)

	s.RelationsScore = 1
	if len(in.Relations) > 0 {
		var sum float64
		for _, r := range in.Relations {
			sum += r.Score
		}
		s.RelationsScore = sum / float64(len(in.Relations))
	}

	s.SumFWeighted = s.SumFScore * tol.ExtrasFactor(s.ExtrasCount)

	var combined float64
	if s.HasRelations {
		combined = (s.BaseScore + s.RelationsScore + 2*s.SumFWeighted) / 4
	} else {
		combined = (s.BaseScore + s.SumFWeighted) / 2
	}
	s.FinalScore = geometry.Clamp(combined*s.CoverageFactor*s.Neatness, 0, 1)
	return s
}
