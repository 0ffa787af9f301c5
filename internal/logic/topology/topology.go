package topology

import (
	"fmt"
	"slices"
	"time"
)

// DefaultReplicas is the restore target for resources that do not declare one.
const DefaultReplicas int32 = 1

// Topology is the validated, read-only restart plan: ordered tiers, per-resource
// restore targets and the critical gate. Accessors hand out copies.
type Topology struct {
	tiers []Tier
	gate  Gate
	index map[ResourceRef]Resource
}

// New validates the declaration and builds an immutable topology.
func New(tiers []Tier, gate Gate) (*Topology, error) {
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}

	t := &Topology{
		tiers: make([]Tier, 0, len(tiers)),
		gate:  gate,
		index: make(map[ResourceRef]Resource),
	}

	tierNames := make(map[string]struct{}, len(tiers))

	for i := range tiers {
		tier := tiers[i].clone()

		if tier.Name == "" {
			return nil, fmt.Errorf("tier #%d: %w", i, ErrEmptyTierName)
		}

		if _, ok := tierNames[tier.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTier, tier.Name)
		}

		tierNames[tier.Name] = struct{}{}

		for j := range tier.Resources {
			res := tier.Resources[j]

			if err := validateRef(res.Ref); err != nil {
				return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
			}

			if res.Replicas < 0 {
				return nil, fmt.Errorf("tier %s: %w: %s: negative replicas %d",
					tier.Name, ErrInvalidResource, res.Ref, res.Replicas)
			}

			if len(res.ResetClaims) > 0 && res.Ref.Kind != KindStatefulSet {
				return nil, fmt.Errorf("tier %s: %w: %s: storage reset is only supported for statefulsets",
					tier.Name, ErrInvalidResource, res.Ref)
			}

			if slices.Contains(res.ResetClaims, "") {
				return nil, fmt.Errorf("tier %s: %w: %s: empty claim name",
					tier.Name, ErrInvalidResource, res.Ref)
			}

			if _, ok := t.index[res.Ref]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateResource, res.Ref)
			}

			t.index[res.Ref] = res
		}

		t.tiers = append(t.tiers, tier)
	}

	if err := t.validateGate(); err != nil {
		return nil, err
	}

	return t, nil
}

func validateRef(ref ResourceRef) error {
	if ref.Kind != KindDeployment && ref.Kind != KindStatefulSet {
		return fmt.Errorf("%w: %q", ErrUnknownKind, ref.Kind)
	}

	if ref.Name == "" || ref.Namespace == "" {
		return fmt.Errorf("%w: name and namespace are required (%s)", ErrInvalidResource, ref)
	}

	return nil
}

func (t *Topology) validateGate() error {
	if _, ok := t.index[t.gate.Ref]; !ok {
		return fmt.Errorf("%w: %s is not part of any tier", ErrInvalidGate, t.gate.Ref)
	}

	if t.gate.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidGate)
	}

	if t.gate.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidGate)
	}

	return nil
}

// Tiers returns a copy of the tiers in declaration order.
func (t *Topology) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	for i := range t.tiers {
		out[i] = t.tiers[i].clone()
	}

	return out
}

// ReversedTiers returns a copy of the tiers in reverse declaration order.
func (t *Topology) ReversedTiers() []Tier {
	out := t.Tiers()
	slices.Reverse(out)

	return out
}

func (t *Topology) Gate() Gate {
	return t.gate
}

// WithGateTiming returns a new topology sharing the tiers but with the gate timing replaced.
// Zero values keep the current setting.
func (t *Topology) WithGateTiming(timeout, pollInterval time.Duration) (*Topology, error) {
	gate := t.gate

	if timeout > 0 {
		gate.Timeout = timeout
	}

	if pollInterval > 0 {
		gate.PollInterval = pollInterval
	}

	return New(t.tiers, gate)
}

// Lookup returns the resource declared for ref.
func (t *Topology) Lookup(ref ResourceRef) (Resource, bool) {
	res, ok := t.index[ref]
	if !ok {
		return Resource{}, false
	}

	return res.clone(), true
}

// Len is the number of resources across all tiers.
func (t *Topology) Len() int {
	return len(t.index)
}
