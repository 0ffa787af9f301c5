package restarter

import "errors"

var (
	ErrClusterUnreachable = errors.New("cluster workload api unreachable")
	ErrRunAborted         = errors.New("run aborted")
	ErrRunInProgress      = errors.New("run already in progress")
	ErrScale              = errors.New("scale workload")
	ErrDeleteClaim        = errors.New("delete storage claim")
	ErrDescribe           = errors.New("describe workload")
)
