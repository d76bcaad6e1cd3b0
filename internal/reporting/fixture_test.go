package reporting

import "github.com/forcegrade/forcegrade/internal/models"

func ptr(v float64) *float64 { return &v }

// newTestEvaluation is a block on an incline: G is perfect, N is drawn
// unnamed at the wrong spot, F is missing.
func newTestEvaluation() *models.Evaluation {
	return &models.Evaluation{
		TaskID: "incline",
		ForceResults: []models.MatchResult{
			{Name: "G", Found: true, NameOK: true, DrawnName: "G", Index: 0, HasDir: true, DirOK: true, DirScore: 1, DirErr: 0.2, DirTolDeg: 0.5, PosErr: ptr(3), PosTol: 22, PosOK: true, PosScore: 1, Score: 1},
			{Name: "N", Found: true, DrawnName: "", Index: 1, HasDir: true, DirOK: true, DirScore: 1, DirErr: 1.1, DirTolDeg: 2, PosErr: ptr(35), PosTol: 22, Score: 0.55},
			{Name: "F", Index: -1, PosTol: 22},
		},
		RelationResults: []models.RelationResult{
			{LHS: "N", RHS: "G", ForceNames: []string{"N", "G"}, ExpectedRatio: 0.87, MeasuredRatio: 1.2, RelError: 0.38, TolRel: 0.15, Indices: []int{1, 0}, MissingNames: []string{}},
			{LHS: "F", RHS: "G", ForceNames: []string{"F", "G"}, ExpectedRatio: 0.5, MissingInvolved: true, MissingNames: []string{"F"}, TolRel: 0.15, Indices: []int{0}, Score: 0},
		},
		Summary: models.ScoreSummary{
			ExpectedCount:  3,
			FoundCount:     2,
			Coverage:       2.0 / 3,
			CoverageFactor: 0.544,
			BaseScore:      0.52,
			HasRelations:   true,
			SumFScore:      1,
			Neatness:       1,
			FinalScore:     0.35,
			SumFResult: models.SumFResult{Checked: []models.SumFComponent{
				{Axis: models.AxisX, Target: 0, Measured: 0.4, OK: true, Score: 1},
				{Axis: models.AxisY, Target: 0, Measured: -42, Err: 42},
			}},
		},
		Feedback: []models.Diagnostic{
			{Kind: models.DiagMissingName, Count: 1, Forces: []string{"N"}, Indices: []int{1}},
			{Kind: models.DiagAnchorOff, Forces: []string{"N"}, Value: 35, Extra: 22, Indices: []int{1}},
			{Kind: models.DiagForceMissing, Forces: []string{"F"}, Indices: []int{}},
		},
	}
}

// newPassingEvaluation is a single perfectly drawn force.
func newPassingEvaluation() *models.Evaluation {
	return &models.Evaluation{
		TaskID: "drop",
		ForceResults: []models.MatchResult{
			{Name: "G", Found: true, NameOK: true, DrawnName: "G", HasDir: true, DirOK: true, DirScore: 1, Score: 1},
		},
		RelationResults: []models.RelationResult{},
		Summary: models.ScoreSummary{
			ExpectedCount: 1, FoundCount: 1, Coverage: 1, CoverageFactor: 1,
			BaseScore: 1, SumFScore: 1, Neatness: 1, FinalScore: 1,
		},
		Feedback: []models.Diagnostic{},
	}
}
