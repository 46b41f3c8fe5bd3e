// Package kernel contains shared value objects used across the domain model.
//
// It provides:
//   - UUID: validated identifier value object wrapping github.com/google/uuid
//   - Actor: resolved tenant/user identity passed explicitly into every
//     engine operation
//
// Kernel types are immutable value objects with constructor validation; their
// zero values are invalid and rejected by Validate.
package kernel
