package restaurant

import (
	"errors"
	"fmt"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was not
// created through the NewRestaurant or RestoreRestaurant constructors.
var ErrRestaurantIsNotConstructed = errors.New(
	"restaurant must be created via NewRestaurant or RestoreRestaurant constructors")

// PricingPolicy holds the restaurant-level parameters the order pricer uses.
type PricingPolicy struct {
	MinimumOrder          float64
	DeliveryFee           float64
	FreeDeliveryThreshold float64
	TaxPercentage         float64
	PreparationMinutes    int
}

// Validate checks that no policy parameter is negative.
func (p PricingPolicy) Validate() error {
	for name, value := range map[string]float64{
		"minimumOrder":          p.MinimumOrder,
		"deliveryFee":           p.DeliveryFee,
		"freeDeliveryThreshold": p.FreeDeliveryThreshold,
		"taxPercentage":         p.TaxPercentage,
		"preparationMinutes":    float64(p.PreparationMinutes),
	} {
		if value < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				name+" is invalid", fmt.Errorf("%f is negative", value))
		}
	}
	return nil
}

// Restaurant is the aggregate the order pricer and the rating settlement
// read and write: menu with per-item availability and customizations,
// pricing policy, operating status, and the running rating.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string

	status Status
	policy PricingPolicy
	menu   []MenuItem

	averageRating float64
	ratingCount   int

	version int
	guard   guard.ConstructorGuard
}

// NewRestaurant creates a restaurant with an empty menu, open for business.
func NewRestaurant(id kernel.UUID, ownerID kernel.UUID, name string, policy PricingPolicy) (*Restaurant, error) {
	restaurant := &Restaurant{
		status:  StatusOpen,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurant.setID(id),
		restaurant.setOwnerID(ownerID),
		restaurant.setName(name),
		restaurant.setPolicy(policy),
	); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// RestoreRestaurantParams carries the persisted state of a restaurant.
type RestoreRestaurantParams struct {
	ID      kernel.UUID
	OwnerID kernel.UUID
	Name    string

	Status Status
	Policy PricingPolicy
	Menu   []MenuItem

	AverageRating float64
	RatingCount   int

	Version int
}

// RestoreRestaurant reconstructs a restaurant aggregate from persistent storage.
func RestoreRestaurant(params RestoreRestaurantParams) (*Restaurant, error) {
	restaurant := &Restaurant{
		menu:          params.Menu,
		averageRating: params.AverageRating,
		ratingCount:   params.RatingCount,
		version:       params.Version,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurant.setID(params.ID),
		restaurant.setOwnerID(params.OwnerID),
		restaurant.setName(params.Name),
		restaurant.setPolicy(params.Policy),
		restaurant.setStatus(params.Status),
	); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// IsEqual compares two restaurants by their unique identifiers.
func (r *Restaurant) IsEqual(other *Restaurant) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the id of the user who owns the restaurant.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// Name returns the restaurant name.
func (r *Restaurant) Name() string {
	return r.name
}

// Status returns the operating status.
func (r *Restaurant) Status() Status {
	return r.status
}

// IsOpen reports whether the restaurant currently accepts orders.
func (r *Restaurant) IsOpen() bool {
	return r.status == StatusOpen
}

// Policy returns the restaurant's pricing policy.
func (r *Restaurant) Policy() PricingPolicy {
	return r.policy
}

// Menu returns the restaurant's menu items.
func (r *Restaurant) Menu() []MenuItem {
	return r.menu
}

// AverageRating returns the restaurant's running mean rating.
func (r *Restaurant) AverageRating() float64 {
	return r.averageRating
}

// RatingCount returns how many ratings the restaurant has received.
func (r *Restaurant) RatingCount() int {
	return r.ratingCount
}

// Version returns the optimistic concurrency version of the aggregate.
func (r *Restaurant) Version() int {
	return r.version
}

// ChangeStatus updates the operating status.
func (r *Restaurant) ChangeStatus(status Status) error {
	return r.setStatus(status)
}

// AddMenuItem appends an item to the menu. Item ids must be unique per menu.
func (r *Restaurant) AddMenuItem(item MenuItem) error {
	if err := item.ID().Validate(); err != nil {
		return err
	}
	if _, ok := r.FindMenuItem(item.ID()); ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"menu item is invalid", fmt.Errorf("item %s already on the menu", item.ID()))
	}
	r.menu = append(r.menu, item)
	return nil
}

// FindMenuItem looks up a menu item by id.
func (r *Restaurant) FindMenuItem(id kernel.UUID) (MenuItem, bool) {
	for _, item := range r.menu {
		if item.ID().IsEqual(id) {
			return item, true
		}
	}
	return MenuItem{}, false
}

// AddRating folds a new score into the running mean:
// newAvg = (oldAvg*oldCount + score) / (oldCount+1).
func (r *Restaurant) AddRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("rating", score, 1, 5)
	}
	r.averageRating = (r.averageRating*float64(r.ratingCount) + float64(score)) / float64(r.ratingCount+1)
	r.ratingCount++
	return nil
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.ownerID = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setPolicy(policy PricingPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	r.policy = policy
	return nil
}

func (r *Restaurant) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
