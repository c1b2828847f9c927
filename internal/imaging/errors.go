// Package imaging acquires decoded images from local files,
// directories and remote URLs before the extraction engine runs.
package imaging

import "fmt"

// InvalidInputError reports input that never denoted an acquirable
// image: an empty or malformed URL, a path pointing at something that
// is not a file, an unsupported file type. These are caller mistakes,
// not transient failures.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// AcquisitionError reports a failure while obtaining or decoding an
// otherwise plausible image source: stat/open failures, network
// errors, non-2xx responses, non-image payloads, decode errors.
type AcquisitionError struct {
	Input string
	Stage string // "stat", "open", "fetch", "content-type" or "decode"
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Stage, e.Input, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func invalidInput(input, reason string) error {
	return &InvalidInputError{Input: input, Reason: reason}
}

func acquisitionFailed(input, stage string, err error) error {
	return &AcquisitionError{Input: input, Stage: stage, Err: err}
}
