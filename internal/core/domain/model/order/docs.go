// Package order provides the domain model for customer orders in the
// food-delivery system. It implements the Order aggregate root with its
// lifecycle state machine, monetary invariants, and status history.
//
// The package includes:
//   - Order: the aggregate root owning identity, line items, the monetary
//     breakdown, lifecycle status, history, and the concurrency version
//   - Status: the lifecycle state machine with its transition graph,
//     descriptions, and time estimates
//   - Role: the closed set of actors that drive transitions
//   - PaymentStatus: the payment outcome, tracked independently of delivery
//   - Item and StatusChange: the order's value objects
//
// Key business rules:
//   - money is integer cents; total = subtotal - discount + delivery fee + tax
//   - status only moves along the transition graph, never skipping states
//   - the history is append-only with exactly one entry per transition
//   - cancellation metadata is recorded atomically with the move into cancelled
//   - every accepted mutation increments the aggregate version exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
