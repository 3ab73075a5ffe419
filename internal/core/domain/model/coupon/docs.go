// Package coupon provides the Coupon value object: a discount rule identified
// by a code, with an activity window, a minimum order amount, percentage or
// fixed discount computation with an optional cap, and global and per-user
// usage limits.
//
// The coupon store owns the usage counter; this package only carries a
// snapshot of it. The store's atomic conditional increment, performed inside
// the order-creation transaction, is the authoritative over-redemption guard.
package coupon
