package services

import (
	"fmt"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/restaurant"
	"gochop/internal/pkg/errs"
)

// LineRequest is one requested order line as it arrives from the customer:
// a menu item reference, a quantity, and the chosen customizations by name.
type LineRequest struct {
	MenuItemID     kernel.UUID
	Quantity       int
	Customizations []CustomizationRequest
}

// CustomizationRequest names a customization group and the options picked
// from it. Both must exist on the menu item.
type CustomizationRequest struct {
	Name    string
	Options []string
}

// OrderPricer turns requested lines into priced order items and totals
// using the restaurant's menu and pricing policy.
//
// Pricing rules:
//   - every line's menu item must exist on the restaurant's menu and be available
//   - the unit price is the discounted price when present, else the regular price
//   - every requested customization and option must exist on the menu item;
//     option prices are added per unit
//   - the subtotal must reach the restaurant's minimum order
//   - the delivery fee is waived when a free-delivery threshold is set and
//     the subtotal reaches it
//   - tax = subtotal * taxPercentage / 100
//   - total = subtotal + tax + deliveryFee - discount
type OrderPricer struct{}

// NewOrderPricer creates a new OrderPricer instance.
func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Price validates and prices the requested lines against the restaurant.
// The restaurant must be open. Returns the frozen order items and the
// money breakdown that go into the new order.
func (p OrderPricer) Price(
	rest *restaurant.Restaurant,
	lines []LineRequest,
	discount float64,
) ([]order.Item, order.Totals, error) {
	if err := rest.Validate(); err != nil {
		return nil, order.Totals{}, err
	}
	if !rest.IsOpen() {
		return nil, order.Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"restaurant is not accepting orders",
			fmt.Errorf("restaurant status is %s", rest.Status()))
	}
	if len(lines) == 0 {
		return nil, order.Totals{}, errs.NewValueIsRequiredError("items")
	}
	if discount < 0 {
		return nil, order.Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"discount is invalid", fmt.Errorf("%f is negative", discount))
	}

	items := make([]order.Item, 0, len(lines))
	subtotal := 0.0
	for _, line := range lines {
		item, err := p.priceLine(rest, line)
		if err != nil {
			return nil, order.Totals{}, err
		}
		items = append(items, item)
		subtotal += item.Subtotal()
	}

	policy := rest.Policy()
	if subtotal < policy.MinimumOrder {
		return nil, order.Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal is below the minimum order",
			fmt.Errorf("%.2f is less than %.2f", subtotal, policy.MinimumOrder))
	}

	deliveryFee := policy.DeliveryFee
	if policy.FreeDeliveryThreshold > 0 && subtotal >= policy.FreeDeliveryThreshold {
		deliveryFee = 0
	}
	taxAmount := subtotal * policy.TaxPercentage / 100

	totals := order.Totals{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       subtotal + taxAmount + deliveryFee - discount,
	}
	if err := totals.Validate(); err != nil {
		return nil, order.Totals{}, err
	}

	return items, totals, nil
}

func (p OrderPricer) priceLine(rest *restaurant.Restaurant, line LineRequest) (order.Item, error) {
	menuItem, ok := rest.FindMenuItem(line.MenuItemID)
	if !ok {
		return order.Item{}, errs.NewObjectNotFoundError("menuItemId", line.MenuItemID)
	}
	if !menuItem.IsAvailable() {
		return order.Item{}, errs.NewValueIsInvalidErrorWithCause(
			"menu item is unavailable", fmt.Errorf("item %s cannot be ordered", menuItem.Name()))
	}

	chosen := make([]order.ChosenCustomization, 0, len(line.Customizations))
	for _, request := range line.Customizations {
		group, found := menuItem.FindCustomization(request.Name)
		if !found {
			return order.Item{}, errs.NewValueIsInvalidErrorWithCause(
				"customization is invalid",
				fmt.Errorf("%q does not exist on item %s", request.Name, menuItem.Name()))
		}

		options := make([]order.ChosenOption, 0, len(request.Options))
		for _, optionName := range request.Options {
			option, foundOption := group.FindOption(optionName)
			if !foundOption {
				return order.Item{}, errs.NewValueIsInvalidErrorWithCause(
					"customization option is invalid",
					fmt.Errorf("%q does not exist in group %q", optionName, group.Name()))
			}
			chosenOption, err := order.NewChosenOption(option.Name(), option.Price())
			if err != nil {
				return order.Item{}, err
			}
			options = append(options, chosenOption)
		}

		chosenGroup, err := order.NewChosenCustomization(group.Name(), options)
		if err != nil {
			return order.Item{}, err
		}
		chosen = append(chosen, chosenGroup)
	}

	return order.NewItem(
		menuItem.ID(),
		menuItem.Name(),
		menuItem.EffectivePrice(),
		line.Quantity,
		chosen,
	)
}
