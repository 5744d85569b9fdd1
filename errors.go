package listeners

import "github.com/pkg/errors"

var (
	ErrUninitialized      = errors.New("listener registry not initialized for element")
	ErrAlreadyInitialized = errors.New("listener registry already initialized for element")
	ErrEmptyEventName     = errors.New("event name is empty")
	ErrNilListener        = errors.New("listener is nil")
	ErrNilElement         = errors.New("element is nil")
)
