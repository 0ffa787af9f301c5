package restarter

// Stage is one step of the run state machine.
type Stage string

const (
	StageInit        Stage = "Init"
	StageScaleDown   Stage = "ScaleDown"
	StageSettle      Stage = "Settle"
	StageScaleUp     Stage = "ScaleUp"
	StageVerify      Stage = "Verify"
	StageFinalSettle Stage = "FinalSettle"
	StageDone        Stage = "Done"
)

// State is the current stage; Tier is set for the scale stages.
type State struct {
	Stage Stage
	Tier  string
}

func (s State) String() string {
	if s.Tier == "" {
		return string(s.Stage)
	}

	return string(s.Stage) + "[" + s.Tier + "]"
}
