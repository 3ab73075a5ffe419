// Package services contains stateless domain services for order processing:
//
//   - PricingEngine computes the monetary breakdown of a candidate order from
//     a resolved catalog snapshot, an optional coupon, and the restaurant's
//     delivery-fee policy.
//   - AuthorizationGate decides whether an actor may drive an order into a
//     target lifecycle status, combining a static target-to-roles policy with
//     a relationship check.
//
// Domain services hold no mutable state and perform no I/O; orchestration and
// persistence are the application layer's concern.
package services
