package topology

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind is the workload kind a scale command is addressed to.
type Kind string

const (
	KindDeployment  Kind = "Deployment"
	KindStatefulSet Kind = "StatefulSet"
)

// ParseKind accepts the canonical kind name and the usual kubectl short forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deployment", "deployments", "deploy":
		return KindDeployment, nil
	case "statefulset", "statefulsets", "sts":
		return KindStatefulSet, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ResourceRef identifies one scalable workload.
type ResourceRef struct {
	Kind      Kind
	Name      string
	Namespace string
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s/%s/%s", strings.ToLower(string(r.Kind)), r.Namespace, r.Name)
}

// Resource is a workload together with its restore plan entry.
type Resource struct {
	Ref ResourceRef
	// Replicas is the count restored on scale-up.
	Replicas int32
	// ResetClaims lists PersistentVolumeClaims deleted after the workload is scaled to zero,
	// so the workload starts from empty persisted state.
	ResetClaims []string
}

func (r Resource) clone() Resource {
	r.ResetClaims = slices.Clone(r.ResetClaims)

	return r
}

// Tier is an ordered group of resources scaled together.
type Tier struct {
	Name      string
	Resources []Resource
}

func (t Tier) clone() Tier {
	out := Tier{
		Name:      t.Name,
		Resources: make([]Resource, len(t.Resources)),
	}

	for i := range t.Resources {
		out.Resources[i] = t.Resources[i].clone()
	}

	return out
}

// Refs returns the tier's resource references in declaration order.
func (t Tier) Refs() []ResourceRef {
	refs := make([]ResourceRef, 0, len(t.Resources))
	for i := range t.Resources {
		refs = append(refs, t.Resources[i].Ref)
	}

	return refs
}

// Gate is the critical resource verified after restore.
type Gate struct {
	Ref          ResourceRef
	Timeout      time.Duration
	PollInterval time.Duration
}
