package restarter_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	clocktesting "k8s.io/utils/clock/testing"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

var errRejected = errors.New("admission webhook denied the request")

type testNotFoundError struct{}

func (testNotFoundError) Error() string { return "not found" }
func (testNotFoundError) IsNotFound()   {}

// event is one recorded cluster call boundary.
type event struct {
	op       string // "scale-start", "scale-end", "delete-claim"
	ref      topology.ResourceRef
	claim    string
	replicas int32
}

// fakeCluster is an in-memory ClusterWorkload. Availability of a resource turns true
// readyAfter[ref] after its last scale to a non-zero count, measured on the fake clock.
type fakeCluster struct {
	mu    sync.Mutex
	clock *clocktesting.FakeClock

	replicas   map[topology.ResourceRef]int32
	scaledUpAt map[topology.ResourceRef]time.Time
	readyAfter map[topology.ResourceRef]time.Duration
	failScale  map[topology.ResourceRef]error
	missing    map[topology.ResourceRef]bool
	claimErr   map[string]error
	failAll    bool
	pingErr    error

	describe    string
	describeErr error

	// scaleHook runs inside ScaleCommand, outside the lock.
	scaleHook func(ctx context.Context, ref topology.ResourceRef) error

	events        []event
	deletedClaims []string
	scaleCalls    int
	pings         int
}

func newFakeCluster(clock *clocktesting.FakeClock) *fakeCluster {
	return &fakeCluster{
		clock:      clock,
		replicas:   make(map[topology.ResourceRef]int32),
		scaledUpAt: make(map[topology.ResourceRef]time.Time),
		readyAfter: make(map[topology.ResourceRef]time.Duration),
		failScale:  make(map[topology.ResourceRef]error),
		missing:    make(map[topology.ResourceRef]bool),
		claimErr:   make(map[string]error),
		describe:   "0/1 replicas available",
	}
}

var _ restarter.ClusterWorkload = (*fakeCluster)(nil)

func (f *fakeCluster) PingQuery(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pings++

	return f.pingErr
}

func (f *fakeCluster) ScaleCommand(ctx context.Context, ref topology.ResourceRef, replicas int32) error {
	f.record(event{op: "scale-start", ref: ref, replicas: replicas})
	defer f.record(event{op: "scale-end", ref: ref, replicas: replicas})

	if f.scaleHook != nil {
		if err := f.scaleHook(ctx, ref); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.scaleCalls++

	if f.missing[ref] {
		return testNotFoundError{}
	}

	if f.failAll {
		return errRejected
	}

	if err := f.failScale[ref]; err != nil {
		return err
	}

	f.replicas[ref] = replicas

	if replicas > 0 {
		f.scaledUpAt[ref] = f.clock.Now()
	} else {
		delete(f.scaledUpAt, ref)
	}

	return nil
}

func (f *fakeCluster) GetAvailabilityQuery(_ context.Context, ref topology.ResourceRef) (restarter.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	at, scaled := f.scaledUpAt[ref]
	delay, known := f.readyAfter[ref]

	if !scaled || !known || f.clock.Since(at) < delay {
		return restarter.Availability{Message: "0 available replicas"}, nil
	}

	return restarter.Availability{Available: true, Message: "minimum replicas available"}, nil
}

func (f *fakeCluster) DescribeQuery(_ context.Context, _ topology.ResourceRef) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.describe, f.describeErr
}

func (f *fakeCluster) DeleteStorageClaimCommand(_ context.Context, _, claim string) error {
	f.record(event{op: "delete-claim", claim: claim})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.claimErr[claim]; err != nil {
		return err
	}

	f.deletedClaims = append(f.deletedClaims, claim)

	return nil
}

func (f *fakeCluster) record(e event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, e)
}

func (f *fakeCluster) snapshotEvents() []event {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]event(nil), f.events...)
}

func (f *fakeCluster) replicaCount(ref topology.ResourceRef) (int32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.replicas[ref]

	return n, ok
}

// recordingProgress captures progress events in order.
type recordingProgress struct {
	mu       sync.Mutex
	states   []restarter.State
	phases   []restarter.PhaseReport
	gates    []restarter.GateResult
	reports  []*restarter.Report
	aborted  []error
	onState  func(restarter.State)
	complete chan *restarter.Report
}

func newRecordingProgress() *recordingProgress {
	return &recordingProgress{complete: make(chan *restarter.Report, 8)}
}

func (p *recordingProgress) StateChanged(_ context.Context, _ string, state restarter.State) {
	p.mu.Lock()
	p.states = append(p.states, state)
	hook := p.onState
	p.mu.Unlock()

	if hook != nil {
		hook(state)
	}
}

func (p *recordingProgress) PhaseCompleted(_ context.Context, _ string, phase restarter.PhaseReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.phases = append(p.phases, phase)
}

func (p *recordingProgress) GateResolved(_ context.Context, _ string, gate restarter.GateResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gates = append(p.gates, gate)
}

func (p *recordingProgress) RunCompleted(_ context.Context, report *restarter.Report) {
	p.mu.Lock()
	p.reports = append(p.reports, report)
	p.mu.Unlock()

	p.complete <- report
}

func (p *recordingProgress) RunAborted(_ context.Context, _ *restarter.Report, cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.aborted = append(p.aborted, cause)
}

func (p *recordingProgress) stateNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.states))
	for _, s := range p.states {
		out = append(out, s.String())
	}

	return out
}

var (
	refX = topology.ResourceRef{Kind: topology.KindDeployment, Name: "svc-x", Namespace: "ricplt"}
	refY = topology.ResourceRef{Kind: topology.KindDeployment, Name: "svc-y", Namespace: "nonrtric"}
	refZ = topology.ResourceRef{Kind: topology.KindStatefulSet, Name: "svc-z", Namespace: "nonrtric"}
)

const claimZ = "data-svc-z-0"

var testEpoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// newScenarioTopology is tier a {svc-x}, tier b {svc-y, svc-z}, gate svc-x with a 5s timeout.
func newScenarioTopology(claims ...string) *topology.Topology {
	topo, err := topology.New(
		[]topology.Tier{
			{Name: "a", Resources: []topology.Resource{{Ref: refX, Replicas: 1}}},
			{Name: "b", Resources: []topology.Resource{
				{Ref: refY, Replicas: 1},
				{Ref: refZ, Replicas: 1, ResetClaims: claims},
			}},
		},
		topology.Gate{Ref: refX, Timeout: 5 * time.Second, PollInterval: time.Second},
	)
	if err != nil {
		panic(err)
	}

	return topo
}

type harness struct {
	clock    *clocktesting.FakeClock
	cluster  *fakeCluster
	progress *recordingProgress
	svc      *restarter.Service
}

func newHarness(topo *topology.Topology, cfg restarter.Config) *harness {
	clock := clocktesting.NewFakeClock(testEpoch)
	cluster := newFakeCluster(clock)
	progress := newRecordingProgress()

	return &harness{
		clock:    clock,
		cluster:  cluster,
		progress: progress,
		svc:      restarter.New(slog.Default(), cluster, clock, progress, topo, cfg),
	}
}

func defaultConfig() restarter.Config {
	return restarter.Config{
		SettleInterval:      10 * time.Second,
		FinalSettleInterval: 3 * time.Second,
		CommandTimeout:      time.Second,
	}
}
