// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager controls the transaction boundary of one command execution.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory hands out the order repository bound to the
	// current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CouponRepoFactory hands out the coupon repository bound to the
	// current transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// OrderUoW is the unit of work for commands that only mutate orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates one fresh OrderUoW per command execution.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW is the unit of work spanning order and coupon state. Order
	// placement writes the order and increments the coupon usage counter
	// in one transaction; it is the only cross-entity command.
	UoW interface {
		TxManager
		OrderRepoFactory
		CouponRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-entity operations.
	UoWFactory interface {
		Create() UoW
	}
)
