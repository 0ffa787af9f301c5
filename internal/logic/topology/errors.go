package topology

import "errors"

var (
	ErrNoTiers           = errors.New("topology has no tiers")
	ErrEmptyTierName     = errors.New("tier name is empty")
	ErrDuplicateTier     = errors.New("duplicate tier")
	ErrUnknownKind       = errors.New("unknown resource kind")
	ErrInvalidResource   = errors.New("invalid resource")
	ErrDuplicateResource = errors.New("duplicate resource")
	ErrInvalidGate       = errors.New("invalid critical gate")
)
