package k8s

// NotFoundError represents a workload or claim that does not exist in the cluster.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.Name + " not found"
}

func (e *NotFoundError) IsNotFound() {}

// UnsupportedKindError is returned for workload kinds the adapter cannot scale.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return "unsupported workload kind " + e.Kind
}
