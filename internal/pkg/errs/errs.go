package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
// Each typed error below unwraps to exactly one of these.
var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrObjectNotFound         = errors.New("object not found")
	ErrIllegalTransition      = errors.New("illegal transition")
	ErrGateBlocked            = errors.New("gate blocked")
	ErrInvalidState           = errors.New("invalid state")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrEmptySplit             = errors.New("empty split")
	ErrBatchTooLarge          = errors.New("batch too large")
	ErrForbidden              = errors.New("forbidden")
)

// ValueIsRequiredError indicates a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates an object is absent or outside the caller's
// tenant scope. Both cases share this error deliberately so existence is never
// leaked across tenants.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// IllegalTransitionError indicates the target status is not reachable from the
// current status under the resolved transition policy. Carries the allowed set
// so callers can render the valid next steps.
type IllegalTransitionError struct {
	From    string
	To      string
	Allowed []string
}

// NewIllegalTransitionError creates an IllegalTransitionError describing the rejected transition.
func NewIllegalTransitionError(from, to string, allowed []string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Allowed: allowed}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (allowed: [%s])",
		ErrIllegalTransition, e.From, e.To, strings.Join(e.Allowed, ", "))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// GateBlockedError indicates a structurally legal transition is blocked by
// unmet quality-gate preconditions. Blockers lists every failing predicate in
// human-readable form, never just the first one.
type GateBlockedError struct {
	Target   string
	Blockers []string
}

// NewGateBlockedError creates a GateBlockedError with the full list of blockers.
func NewGateBlockedError(target string, blockers []string) *GateBlockedError {
	return &GateBlockedError{Target: target, Blockers: blockers}
}

func (e *GateBlockedError) Error() string {
	return fmt.Sprintf("%s: cannot enter %s: %s", ErrGateBlocked, e.Target, strings.Join(e.Blockers, "; "))
}

func (e *GateBlockedError) Unwrap() error {
	return ErrGateBlocked
}

// InvalidStateError indicates a corrupt or unknown status value. Treated as a
// defect rather than a user error: callers log it with full context instead of
// returning it as an expected outcome.
type InvalidStateError struct {
	Value string
	Cause error
}

// NewInvalidStateError creates an InvalidStateError for the given status value.
func NewInvalidStateError(value string) *InvalidStateError {
	return &InvalidStateError{Value: value}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(value string, cause error) *InvalidStateError {
	return &InvalidStateError{Value: value, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q (cause: %s)", ErrInvalidState, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrInvalidState, e.Value)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConcurrentModificationError indicates a guarded update lost a race against a
// concurrent writer: the row no longer matched the expected state.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for the given object.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrentModification, e.ParamName, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// EmptySplitError indicates a split request that would move nothing, or would
// leave either side of the split with no items.
type EmptySplitError struct {
	Reason string
}

// NewEmptySplitError creates an EmptySplitError with the rejection reason.
func NewEmptySplitError(reason string) *EmptySplitError {
	return &EmptySplitError{Reason: reason}
}

func (e *EmptySplitError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptySplit, e.Reason)
}

func (e *EmptySplitError) Unwrap() error {
	return ErrEmptySplit
}

// BatchTooLargeError indicates a bulk request exceeding the configured cap.
type BatchTooLargeError struct {
	Size int
	Max  int
}

// NewBatchTooLargeError creates a BatchTooLargeError for the given batch size and cap.
func NewBatchTooLargeError(size, maxSize int) *BatchTooLargeError {
	return &BatchTooLargeError{Size: size, Max: maxSize}
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d orders, max is %d", ErrBatchTooLarge, e.Size, e.Max)
}

func (e *BatchTooLargeError) Unwrap() error {
	return ErrBatchTooLarge
}

// ForbiddenError indicates an attempt to touch data outside the caller's
// tenant scope. Surfaced explicitly, never silently ignored.
type ForbiddenError struct {
	ParamName string
	ID        any
}

// NewForbiddenError creates a ForbiddenError for the given object.
func NewForbiddenError(paramName string, id any) *ForbiddenError {
	return &ForbiddenError{ParamName: paramName, ID: id}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrForbidden, e.ParamName, e.ID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
