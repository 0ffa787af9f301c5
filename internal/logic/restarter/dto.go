package restarter

import (
	"fmt"
	"time"

	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// OutcomeStatus is the result class of one scale command.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "Success"
	OutcomeSkipped OutcomeStatus = "Skipped"
	OutcomeFailed  OutcomeStatus = "Failed"
)

// Outcome is the per-resource result of one operation.
type Outcome struct {
	Status OutcomeStatus
	Reason string
}

func Success() Outcome {
	return Outcome{Status: OutcomeSuccess}
}

func Skipped(reason string) Outcome {
	return Outcome{Status: OutcomeSkipped, Reason: reason}
}

func Failed(reason string) Outcome {
	return Outcome{Status: OutcomeFailed, Reason: reason}
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return string(o.Status)
	}

	return fmt.Sprintf("%s(%s)", o.Status, o.Reason)
}

// ClaimWarning records a storage claim that could not be reset.
type ClaimWarning struct {
	Claim  string
	Reason string
}

// Result pairs a resource with the outcome of its scale command.
type Result struct {
	Ref           topology.ResourceRef
	Replicas      int32
	Outcome       Outcome
	Duration      time.Duration
	ClaimWarnings []ClaimWarning
}

// Availability is the answer of the cluster to the availability query.
type Availability struct {
	Available bool
	Message   string
}

// Verdict is the critical gate result.
type Verdict string

const (
	VerdictReady    Verdict = "Ready"
	VerdictTimedOut Verdict = "TimedOut"
)

// GateResult is the outcome of the readiness gate.
type GateResult struct {
	Ref         topology.ResourceRef
	Verdict     Verdict
	Elapsed     time.Duration
	Polls       int
	Message     string
	Diagnostics string
}

// Phase is the direction of a scale pass.
type Phase string

const (
	PhaseScaleDown Phase = "scale-down"
	PhaseScaleUp   Phase = "scale-up"
)

// PhaseReport is the joined result of one tier in one direction.
type PhaseReport struct {
	Phase   Phase
	Tier    string
	Results []Result
}

// Target is the replica count applied to every resource of a phase.
type Target struct {
	replicas int32
	fromPlan bool
}

// Replicas applies the same count to every resource.
func Replicas(n int32) Target {
	return Target{replicas: n}
}

// RestorePlanReplicas applies each resource's declared restore count.
var RestorePlanReplicas = Target{fromPlan: true}

func (t Target) replicasFor(res topology.Resource) int32 {
	if t.fromPlan {
		return res.Replicas
	}

	return t.replicas
}

// Order selects the tier order of a scale pass.
type Order string

const (
	OrderDeclared Order = "declared"
	OrderReversed Order = "reversed"
)

// ParseOrder parses a tier order name.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderDeclared, OrderReversed:
		return Order(s), nil
	}

	return "", fmt.Errorf("unknown tier order %q", s)
}
