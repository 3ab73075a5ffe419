// Package kernel provides shared value objects used across the order domain.
//
// It contains:
//   - UUID: the identifier type for all entities and aggregates
//   - OrderNumber: the human-facing unique order identifier
//
// All kernel types are immutable value objects: they are created through
// factory functions, validate themselves, and their zero values are invalid.
package kernel
