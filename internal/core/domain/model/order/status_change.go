package order

import (
	"time"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
)

// StatusChange is one entry of an order's append-only status history.
// Exactly one entry is written per accepted transition; entries are never
// mutated or truncated.
type StatusChange struct {
	status  Status
	at      time.Time
	actorID kernel.UUID
	notes   string
}

// NewStatusChange creates a history entry for a transition into status,
// performed by actorID at the given time.
func NewStatusChange(status Status, at time.Time, actorID kernel.UUID, notes string) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := actorID.Validate(); err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		status:  status,
		at:      at,
		actorID: actorID,
		notes:   notes,
	}, nil
}

// Status returns the state the order moved into.
func (c StatusChange) Status() Status {
	return c.status
}

// At returns when the transition was accepted.
func (c StatusChange) At() time.Time {
	return c.at
}

// ActorID returns who initiated the transition. System-initiated transitions
// (payment outcomes, scheduled completion) record SystemActorID.
func (c StatusChange) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the free-form note attached to the transition, if any.
func (c StatusChange) Notes() string {
	return c.notes
}
