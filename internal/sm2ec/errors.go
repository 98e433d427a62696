package sm2ec

import "errors"

// Sentinel errors returned by the core engine.
var (
	// ErrPointAtInfinity is returned by affine conversion (ToAffine,
	// ToAffineMont, ToAffineX) when the point is the identity.
	ErrPointAtInfinity = errors.New("sm2ec: point at infinity")

	// ErrAllocationFailure is returned by GeneratorHandle.Acquire when the
	// handle's reference count has already dropped to zero.
	ErrAllocationFailure = errors.New("sm2ec: table allocation failure")

	// ErrUndefinedGenerator is returned when an operation needs the
	// canonical generator table and none has been built or supplied.
	ErrUndefinedGenerator = errors.New("sm2ec: undefined generator table")

	// ErrUnknownOrder is returned by GeneratorHandle.Acquire when the
	// handle's table was built for a group order other than this curve's.
	ErrUnknownOrder = errors.New("sm2ec: unknown group order")
)
