// Package errs declares the sentinel errors returned by the trailenc
// encoder pipeline. Callers use errors.Is against these values; the
// orchestrator wraps them with fmt.Errorf("%w: ...") for context.
package errs

import "errors"

var (
	// ErrAllocFailure is returned when a buffer allocation fails (§7 AllocFailure).
	ErrAllocFailure = errors.New("trailenc: allocation failure")

	// ErrIoFailure is returned when a read, write, seek, open, or close fails (§7 IoFailure).
	ErrIoFailure = errors.New("trailenc: io failure")

	// ErrTooManyInvalid is returned when the invalid-delta ratio exceeds
	// MaxInvalidRatio after grouping (§4.2, §7 TooManyInvalid).
	ErrTooManyInvalid = errors.New("trailenc: too many invalid timestamps")

	// ErrTrailsTooLarge is returned when the cumulative trail offset
	// would reach 2^32-1 (§4.6, §7 TrailsTooLarge).
	ErrTrailsTooLarge = errors.New("trailenc: trails file exceeds 4GB limit")

	// ErrCodebookBuildFailure is surfaced from the Huffman collaborator (§7).
	ErrCodebookBuildFailure = errors.New("trailenc: codebook build failure")

	// ErrEmptyInput is returned when the encoder is given zero events; §4.1
	// documents timestamp-range scanning over empty input as a precondition
	// violation rather than a silent UINT32_MAX/0 result.
	ErrEmptyInput = errors.New("trailenc: empty input")

	// ErrInvalidHeader is returned when a serialized header or codebook blob
	// fails its magic/size validation.
	ErrInvalidHeader = errors.New("trailenc: invalid header")
)
