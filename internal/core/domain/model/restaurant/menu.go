package restaurant

import (
	"fmt"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
)

// Option is one pickable option within a customization group, carrying the
// per-unit surcharge it adds to the item price.
type Option struct {
	name  string
	price float64
}

// NewOption creates a validated customization option.
func NewOption(name string, price float64) (Option, error) {
	if name == "" {
		return Option{}, errs.NewValueIsRequiredError("option name")
	}
	if price < 0 {
		return Option{}, errs.NewValueIsInvalidErrorWithCause(
			"option price is invalid", fmt.Errorf("%f is negative", price))
	}
	return Option{name: name, price: price}, nil
}

// Name returns the option name.
func (o Option) Name() string {
	return o.name
}

// Price returns the per-unit surcharge of the option.
func (o Option) Price() float64 {
	return o.price
}

// Customization is a named group of options on a menu item,
// e.g. "Spice level" with options "Mild" and "Extra hot".
type Customization struct {
	name    string
	options []Option
}

// NewCustomization creates a validated customization group.
func NewCustomization(name string, options []Option) (Customization, error) {
	if name == "" {
		return Customization{}, errs.NewValueIsRequiredError("customization name")
	}
	return Customization{name: name, options: options}, nil
}

// Name returns the group name.
func (c Customization) Name() string {
	return c.name
}

// Options returns the pickable options of the group.
func (c Customization) Options() []Option {
	return c.options
}

// FindOption looks up an option of the group by name.
func (c Customization) FindOption(name string) (Option, bool) {
	for _, option := range c.options {
		if option.name == name {
			return option, true
		}
	}
	return Option{}, false
}

// MenuItem is one orderable dish on the restaurant's menu.
type MenuItem struct {
	id              kernel.UUID
	name            string
	price           float64
	discountedPrice *float64
	isAvailable     bool
	customizations  []Customization
}

// NewMenuItem creates a validated menu item.
// A discounted price, when present, must be non-negative and below the
// regular price.
func NewMenuItem(
	id kernel.UUID,
	name string,
	price float64,
	discountedPrice *float64,
	isAvailable bool,
	customizations []Customization,
) (MenuItem, error) {
	if err := id.Validate(); err != nil {
		return MenuItem{}, err
	}
	if name == "" {
		return MenuItem{}, errs.NewValueIsRequiredError("menu item name")
	}
	if price < 0 {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid", fmt.Errorf("%f is negative", price))
	}
	if discountedPrice != nil && (*discountedPrice < 0 || *discountedPrice >= price) {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause(
			"discountedPrice is invalid",
			fmt.Errorf("%f is not within [0, %f)", *discountedPrice, price))
	}

	return MenuItem{
		id:              id,
		name:            name,
		price:           price,
		discountedPrice: discountedPrice,
		isAvailable:     isAvailable,
		customizations:  customizations,
	}, nil
}

// ID returns the menu item's unique identifier.
func (m MenuItem) ID() kernel.UUID {
	return m.id
}

// Name returns the dish name.
func (m MenuItem) Name() string {
	return m.name
}

// Price returns the regular price.
func (m MenuItem) Price() float64 {
	return m.price
}

// DiscountedPrice returns the discounted price, nil if no discount applies.
func (m MenuItem) DiscountedPrice() *float64 {
	return m.discountedPrice
}

// EffectivePrice returns the price to charge: the discounted price when
// present, otherwise the regular price.
func (m MenuItem) EffectivePrice() float64 {
	if m.discountedPrice != nil {
		return *m.discountedPrice
	}
	return m.price
}

// IsAvailable reports whether the item can currently be ordered.
func (m MenuItem) IsAvailable() bool {
	return m.isAvailable
}

// Customizations returns the item's customization groups.
func (m MenuItem) Customizations() []Customization {
	return m.customizations
}

// FindCustomization looks up a customization group by name.
func (m MenuItem) FindCustomization(name string) (Customization, bool) {
	for _, customization := range m.customizations {
		if customization.name == name {
			return customization, true
		}
	}
	return Customization{}, false
}
