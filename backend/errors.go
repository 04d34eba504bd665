package backend

import (
	"errors"
	"fmt"
)

// ErrOCRNotEnabled is returned by the OCR backend when OCR support was
// not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// ErrToolNotFound indicates an external binary could not be located.
// Primary extraction treats this as fatal; auxiliary call sites (link
// metadata) log it and degrade to zero results.
var ErrToolNotFound = errors.New("external tool not found")

// ExtractionFailedError indicates an extraction subprocess exited with
// a non-zero status. It is fatal to the extraction run and is not
// retried.
type ExtractionFailedError struct {
	Tool     string
	ExitCode int
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("extraction tool %s failed with exit code %d", e.Tool, e.ExitCode)
}

// MalformedOutputError indicates tool output that could not be parsed
// or was missing expected structure. Auxiliary features catch it at
// their boundary and downgrade to zero results.
type MalformedOutputError struct {
	Tool   string
	Reason string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed output from %s: %s", e.Tool, e.Reason)
}
