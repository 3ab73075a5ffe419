package order

import (
	"errors"
	"fmt"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/model/kernel"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a catalog item with the unit price captured
// from the catalog snapshot at order time. The captured price is immutable:
// later catalog price changes never affect an existing order.
//
// Item is a value object with private fields; it can only be created through
// NewItem, which enforces that quantity is at least 1 and the unit price is
// not negative.
type Item struct {
	catalogItemID  kernel.UUID
	name           string
	unitPriceCents int64
	quantity       int
	notes          string

	isConstructed bool
}

// NewItem creates an order line with validation.
// The unit price must come from a catalog snapshot taken at order time.
func NewItem(catalogItemID kernel.UUID, name string, unitPriceCents int64, quantity int, notes string) (Item, error) {
	if err := catalogItemID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if unitPriceCents < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPriceCents",
			fmt.Errorf("%d is negative", unitPriceCents))
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		catalogItemID:  catalogItemID,
		name:           name,
		unitPriceCents: unitPriceCents,
		quantity:       quantity,
		notes:          notes,
		isConstructed:  true,
	}, nil
}

// maxItemQuantity bounds a single order line; larger orders are bulk orders
// and out of scope for the consumer checkout flow.
const maxItemQuantity = 100

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// CatalogItemID returns the identifier of the catalog item this line refers to.
func (i Item) CatalogItemID() kernel.UUID {
	return i.catalogItemID
}

// Name returns the item name captured at order time.
func (i Item) Name() string {
	return i.name
}

// UnitPriceCents returns the per-unit price in cents captured at order time.
func (i Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// Quantity returns how many units of the item were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Notes returns the customer's free-form note for this line, if any.
func (i Item) Notes() string {
	return i.notes
}

// TotalCents returns unit price times quantity for this line.
func (i Item) TotalCents() int64 {
	return i.unitPriceCents * int64(i.quantity)
}
