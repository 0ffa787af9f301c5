package httpserver

import "errors"

// ErrNotReady is returned by Ping before the listener is bound.
var ErrNotReady = errors.New("server is not ready")
