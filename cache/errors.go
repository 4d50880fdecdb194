package cache

import "github.com/jmgilman/go/errors"

// CodeCapacityExceeded marks insertions rejected because the payload cannot
// fit within the size limit.
const CodeCapacityExceeded errors.ErrorCode = "CAPACITY_EXCEEDED"

// Sentinel errors. Operations return these wrapped with call-specific
// context, so match them with errors.Is or inspect errors.GetCode.
var (
	// ErrInvalidArgument reports an empty key, a nil payload, a non-positive
	// explicit TTL, or invalid Options.
	ErrInvalidArgument = errors.New(errors.CodeInvalidInput, "cache: invalid argument")

	// ErrCapacityExceeded reports an insertion that cannot fit. The cache is
	// left unchanged.
	ErrCapacityExceeded = errors.New(CodeCapacityExceeded, "cache: size limit exceeded")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New(errors.CodeUnavailable, "cache: closed")

	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New(errors.CodeNotImplemented, "cache: no Loader provided")
)

func invalidArgument(msg string, ctx map[string]interface{}) error {
	return errors.WrapWithContext(ErrInvalidArgument, errors.CodeInvalidInput, msg, ctx)
}

func capacityExceeded(key string, need, limit int64) error {
	return errors.WrapWithContext(ErrCapacityExceeded, CodeCapacityExceeded, "cannot fit entry", map[string]interface{}{
		"key":   key,
		"need":  need,
		"limit": limit,
	})
}
