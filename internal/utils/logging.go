package utils

import (
	"context"
	"log/slog"

	"github.com/forcegrade/forcegrade/internal/models"
)

// EvaluationToSlog writes the scoring breakdown of ev at debug level: one
// record per expected force, then the summary.
func EvaluationToSlog(logger *slog.Logger, ev *models.Evaluation) {
	if logger == nil {
		logger = slog.Default()
	}
	if ev == nil || !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	for _, r := range ev.ForceResults {
		attrs := []any{
			"task", ev.TaskID,
			"force", r.Name,
			"found", r.Found,
		}
		if r.Found {
			attrs = append(attrs,
				"index", r.Index,
				"nameOk", r.NameOK,
				"dirErr", r.DirErr,
				"dirTolDeg", r.DirTolDeg,
				"dirScore", r.DirScore,
			)
			attrs = addIf(attrs, "posErr", r.PosErr)
			attrs = append(attrs, "posScore", r.PosScore, "score", r.Score)
		}
		logger.Debug("Force scored", attrs...)
	}

	for _, rr := range ev.RelationResults {
		logger.Debug("Relation checked",
			"task", ev.TaskID,
			"lhs", rr.LHS,
			"rhs", rr.RHS,
			"measuredRatio", rr.MeasuredRatio,
			"expectedRatio", rr.ExpectedRatio,
			"relError", rr.RelError,
			"ok", rr.OK,
		)
	}

	s := ev.Summary
	logger.Debug("Evaluation scored",
		"task", ev.TaskID,
		"expected", s.ExpectedCount,
		"found", s.FoundCount,
		"extras", s.ExtrasCount,
		"baseScore", s.BaseScore,
		"coverageFactor", s.CoverageFactor,
		"relationsScore", s.RelationsScore,
		"sumFScore", s.SumFScore,
		"sumFWeighted", s.SumFWeighted,
		"neatness", s.Neatness,
		"finalScore", s.FinalScore,
	)
}

func addIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name)
		attrs = append(attrs, *v)
	}

	return attrs
}
