package topologyfile

import "errors"

var (
	ErrReadFile = errors.New("read topology file")
	ErrDecode   = errors.New("decode topology")
	ErrInvalid  = errors.New("invalid topology")
)
