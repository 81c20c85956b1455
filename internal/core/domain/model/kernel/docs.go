// Package kernel provides core domain primitives shared by every aggregate
// of the distribution platform.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison capabilities
//   - Role: a value object naming the platform access roles
//   - Actor: the authenticated identity (user, tenant, role) on whose behalf an operation runs
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
