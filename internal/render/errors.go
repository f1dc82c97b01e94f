package render

import "errors"

// Terminal error kinds for a render invocation. Callers distinguish them with
// errors.Is; none are retried internally.
var (
	// ErrNoInput means no code was supplied and none was available from any
	// file or stream source.
	ErrNoInput = errors.New("no code input")

	// ErrOutputDir means the output directory could not be created.
	ErrOutputDir = errors.New("output directory not writable")

	// ErrFrameNotFound means the code frame could not be located in the
	// rendered document after load.
	ErrFrameNotFound = errors.New("code frame not found after load")
)
