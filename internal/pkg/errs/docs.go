// Package errs provides standardized error types for the workflow engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Value errors used by constructors and value objects
//     (ValueIsRequiredError, ValueIsInvalidError)
//   - Engine outcome errors returned to callers
//     (ObjectNotFoundError, IllegalTransitionError, GateBlockedError,
//     InvalidStateError, ConcurrentModificationError, EmptySplitError,
//     BatchTooLargeError, ForbiddenError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions, with a WithCause variant where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify by sentinel
//
// Outcome errors carry enough structure (allowed set, blocker list, batch cap)
// for a caller to render a precise response without the engine knowing anything
// about presentation.
package errs
