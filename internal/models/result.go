package models

// MatchResult is the grading of one expected force.
type MatchResult struct {
	Name      string `json:"name"`
	Found     bool   `json:"found"`
	NameOK    bool   `json:"nameOk"`
	DrawnName string `json:"drawnName"`
	// Index is the position of the matched force in Drawing.Forces, or -1.
	Index int `json:"index"`

	// HasDir is false when the expected force has no usable direction; such
	// forces keep DirErr at the sentinel angle and score 0 on direction.
	HasDir    bool    `json:"hasDir"`
	DirErr    float64 `json:"dirErr"`
	DirTolDeg float64 `json:"dirTolDeg"`
	DirOK     bool    `json:"dirOk"`
	DirScore  float64 `json:"dirScore"`

	// PosErr is nil when no anchor check applies.
	PosErr   *float64 `json:"posErr"`
	PosTol   float64  `json:"posTol"`
	PosOK    bool     `json:"posOk"`
	PosScore float64  `json:"posScore"`

	// Score is the mean of the name, direction and position scores.
	Score float64 `json:"score"`
}

// RelationResult is the outcome of one declared ratio check.
type RelationResult struct {
	LHS             string   `json:"lhs"`
	RHS             string   `json:"rhs"`
	ForceNames      []string `json:"forceNames"`
	MissingNames    []string `json:"missingNames"`
	MissingInvolved bool     `json:"missingInvolved"`
	ExpectedRatio   float64  `json:"expectedRatio"`
	MeasuredRatio   float64  `json:"measuredRatio"`
	RelError        float64  `json:"relError"`
	TolRel          float64  `json:"tolRel"`
	OK              bool     `json:"ok"`
	Score           float64  `json:"score"`
	Indices         []int    `json:"indices"`
}

// Axis names an equilibrium component.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisN Axis = "n"
)

// SumFComponent is one checked component of the net force.
type SumFComponent struct {
	Axis     Axis    `json:"axis"`
	Measured float64 `json:"measured"`
	Target   float64 `json:"target"`
	Err      float64 `json:"err"`
	OK       bool    `json:"ok"`
	Score    float64 `json:"score"`
}

// SumFResult holds the net force of all completed drawn forces.
type SumFResult struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	HasPlane bool    `json:"hasPlane"`
	N        float64 `json:"n,omitempty"`
	T        float64 `json:"t,omitempty"`

	Checked []SumFComponent `json:"checked,omitempty"`
	// Score is the mean of the checked component scores, or 1 when none are.
	Score float64 `json:"score"`
}

// NeatnessResult reports overlapping, non-parallel matched arrows.
type NeatnessResult struct {
	Factor float64 `json:"factor"`
	// Overlap holds the drawn indices of the first offending pair.
	Overlap []int `json:"overlap,omitempty"`
}

// ForceScore is the per-force line of the debug breakdown.
type ForceScore struct {
	Name      string  `json:"name"`
	NameScore float64 `json:"nameScore"`
	DirScore  float64 `json:"dirScore"`
	DirTolDeg float64 `json:"dirTolDeg"`
	PosScore  float64 `json:"posScore"`
	Combined  float64 `json:"combined"`
}

// ScoreSummary is the aggregated grade of a drawing.
type ScoreSummary struct {
	ExpectedCount  int     `json:"expectedCount"`
	FoundCount     int     `json:"foundCount"`
	ExtrasCount    int     `json:"extrasCount"`
	Coverage       float64 `json:"coverage"`
	CoverageFactor float64 `json:"coverageFactor"`
	BaseScore      float64 `json:"baseScore"`
	HasRelations   bool    `json:"hasRelations"`
	RelationsScore float64 `json:"relationsScore"`
	SumFScore      float64 `json:"sumFScore"`
	SumFWeighted   float64 `json:"sumFWeighted"`
	Neatness       float64 `json:"neatness"`
	FinalScore     float64 `json:"finalScore"`

	SumFResult SumFResult   `json:"sumFResult"`
	Overlap    []int        `json:"overlap,omitempty"`
	Breakdown  []ForceScore `json:"breakdown,omitempty"`
	Extras     []int        `json:"extras,omitempty"`
}

// DiagnosticKind identifies a feedback statement.
type DiagnosticKind string

const (
	DiagMissingName  DiagnosticKind = "missing_name"
	DiagWrongName    DiagnosticKind = "wrong_name"
	DiagForceMissing DiagnosticKind = "force_missing"
	DiagDirectionOff DiagnosticKind = "direction_off"
	DiagAnchorOff    DiagnosticKind = "anchor_off"
	DiagRelationOff  DiagnosticKind = "relation_off"
	DiagSumOff       DiagnosticKind = "sum_off"
	DiagExtraForces  DiagnosticKind = "extra_forces"
	DiagNothingDrawn DiagnosticKind = "nothing_drawn"
)

// Diagnostic is one feedback statement, carrying the data a presentation
// layer needs to phrase it and the drawn indices to highlight.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	// Forces lists the expected-force names the statement is about.
	Forces []string `json:"forces,omitempty"`
	// DrawnName is the label the student gave the force, if any.
	DrawnName string `json:"drawnName,omitempty"`
	Count     int    `json:"count,omitempty"`
	// AllFound is set on name diagnostics that cover every found force.
	AllFound bool `json:"allFound,omitempty"`
	// Value is the measured error (degrees, pixels, ratio, or net force).
	Value float64 `json:"value,omitempty"`
	// Extra carries a second measurement: relative error, or the sum target.
	Extra   float64 `json:"extra,omitempty"`
	Axis    Axis    `json:"axis,omitempty"`
	Indices []int   `json:"indices"`
}

// Evaluation is everything produced by one grading call.
type Evaluation struct {
	TaskID          string           `json:"taskId"`
	ForceResults    []MatchResult    `json:"forceResults"`
	RelationResults []RelationResult `json:"relationResults"`
	Summary         ScoreSummary     `json:"summary"`
	Feedback        []Diagnostic     `json:"feedback"`
}
