package order

import (
	"errors"
	"fmt"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
)

// ChosenOption is a single customization option the customer picked,
// with the per-unit surcharge it carried at order time.
type ChosenOption struct {
	name  string
	price float64
}

// NewChosenOption creates a validated chosen option.
func NewChosenOption(name string, price float64) (ChosenOption, error) {
	if name == "" {
		return ChosenOption{}, errs.NewValueIsRequiredError("option name")
	}
	if price < 0 {
		return ChosenOption{}, errs.NewValueIsInvalidErrorWithCause(
			"option price is invalid", fmt.Errorf("%f is negative", price))
	}
	return ChosenOption{name: name, price: price}, nil
}

// Name returns the option name.
func (o ChosenOption) Name() string {
	return o.name
}

// Price returns the per-unit surcharge of the option.
func (o ChosenOption) Price() float64 {
	return o.price
}

// ChosenCustomization is a customization group (e.g. "Spice level") with the
// options the customer picked from it.
type ChosenCustomization struct {
	name    string
	options []ChosenOption
}

// NewChosenCustomization creates a validated chosen customization.
func NewChosenCustomization(name string, options []ChosenOption) (ChosenCustomization, error) {
	if name == "" {
		return ChosenCustomization{}, errs.NewValueIsRequiredError("customization name")
	}
	return ChosenCustomization{name: name, options: options}, nil
}

// Name returns the customization group name.
func (c ChosenCustomization) Name() string {
	return c.name
}

// Options returns the picked options.
func (c ChosenCustomization) Options() []ChosenOption {
	return c.options
}

// Item is one priced line of an order. The unit price and customization
// surcharges are frozen at order time so later menu edits never change a
// placed order.
type Item struct {
	menuItemID     kernel.UUID
	name           string
	unitPrice      float64
	quantity       int
	customizations []ChosenCustomization
	subtotal       float64
}

// NewItem creates a validated order line.
// The subtotal is computed as (unitPrice + Σ option prices) * quantity.
func NewItem(
	menuItemID kernel.UUID,
	name string,
	unitPrice float64,
	quantity int,
	customizations []ChosenCustomization,
) (Item, error) {
	item := Item{
		menuItemID:     menuItemID,
		name:           name,
		unitPrice:      unitPrice,
		quantity:       quantity,
		customizations: customizations,
	}

	if err := errors.Join(
		menuItemID.Validate(),
		item.validateName(),
		item.validateUnitPrice(),
		item.validateQuantity(),
	); err != nil {
		return Item{}, err
	}

	item.subtotal = item.computeSubtotal()
	return item, nil
}

// MenuItemID returns the id of the menu item this line was built from.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the menu item name as it was at order time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price charged for the line.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Customizations returns the chosen customizations for the line.
func (i Item) Customizations() []ChosenCustomization {
	return i.customizations
}

// Subtotal returns the line total including customization surcharges.
func (i Item) Subtotal() float64 {
	return i.subtotal
}

func (i Item) validateName() error {
	if i.name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	return nil
}

func (i Item) validateUnitPrice() error {
	if i.unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice is invalid", fmt.Errorf("%f is negative", i.unitPrice))
	}
	return nil
}

func (i Item) validateQuantity() error {
	if i.quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", i.quantity))
	}
	return nil
}

func (i Item) computeSubtotal() float64 {
	perUnit := i.unitPrice
	for _, customization := range i.customizations {
		for _, option := range customization.options {
			perUnit += option.price
		}
	}
	return perUnit * float64(i.quantity)
}
