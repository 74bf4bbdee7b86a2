// Package restaurantrepo persists restaurant aggregates with GORM. The menu
// lives in a jsonb column; it is always read and written as a whole with its
// restaurant.
package restaurantrepo

import (
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO is the database representation of a restaurant aggregate.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Name    string

	Status string `gorm:"index"`

	MinimumOrder          float64
	DeliveryFee           float64
	FreeDeliveryThreshold float64
	TaxPercentage         float64
	PreparationMinutes    int

	Menu []MenuItemDTO `gorm:"serializer:json;type:jsonb"`

	AverageRating float64
	RatingCount   int

	Version int
}

// TableName overrides GORM's default naming to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO is one menu entry inside the jsonb menu column.
type MenuItemDTO struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Price           float64            `json:"price"`
	DiscountedPrice *float64           `json:"discountedPrice,omitempty"`
	IsAvailable     bool               `json:"isAvailable"`
	Customizations  []CustomizationDTO `json:"customizations,omitempty"`
}

// CustomizationDTO is one customization group of a menu item.
type CustomizationDTO struct {
	Name    string      `json:"name"`
	Options []OptionDTO `json:"options"`
}

// OptionDTO is one selectable option within a customization group.
type OptionDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	menu := make([]MenuItemDTO, 0, len(aggregate.Menu()))
	for _, item := range aggregate.Menu() {
		menu = append(menu, menuItemFromDomain(item))
	}

	policy := aggregate.Policy()

	return RestaurantDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Name:    aggregate.Name(),

		Status: aggregate.Status().String(),

		MinimumOrder:          policy.MinimumOrder,
		DeliveryFee:           policy.DeliveryFee,
		FreeDeliveryThreshold: policy.FreeDeliveryThreshold,
		TaxPercentage:         policy.TaxPercentage,
		PreparationMinutes:    policy.PreparationMinutes,

		Menu: menu,

		AverageRating: aggregate.AverageRating(),
		RatingCount:   aggregate.RatingCount(),

		Version: aggregate.Version(),
	}
}

func menuItemFromDomain(item restaurant.MenuItem) MenuItemDTO {
	customizations := make([]CustomizationDTO, 0, len(item.Customizations()))
	for _, customization := range item.Customizations() {
		options := make([]OptionDTO, 0, len(customization.Options()))
		for _, option := range customization.Options() {
			options = append(options, OptionDTO{Name: option.Name(), Price: option.Price()})
		}
		customizations = append(customizations, CustomizationDTO{
			Name:    customization.Name(),
			Options: options,
		})
	}

	return MenuItemDTO{
		ID:              item.ID().Bytes(),
		Name:            item.Name(),
		Price:           item.Price(),
		DiscountedPrice: item.DiscountedPrice(),
		IsAvailable:     item.IsAvailable(),
		Customizations:  customizations,
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	status, err := restaurant.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	menu := make([]restaurant.MenuItem, 0, len(dto.Menu))
	for _, itemDTO := range dto.Menu {
		item, itemErr := menuItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		menu = append(menu, item)
	}

	return restaurant.RestoreRestaurant(restaurant.RestoreRestaurantParams{
		ID:      id,
		OwnerID: ownerID,
		Name:    dto.Name,

		Status: status,
		Policy: restaurant.PricingPolicy{
			MinimumOrder:          dto.MinimumOrder,
			DeliveryFee:           dto.DeliveryFee,
			FreeDeliveryThreshold: dto.FreeDeliveryThreshold,
			TaxPercentage:         dto.TaxPercentage,
			PreparationMinutes:    dto.PreparationMinutes,
		},
		Menu: menu,

		AverageRating: dto.AverageRating,
		RatingCount:   dto.RatingCount,

		Version: dto.Version,
	})
}

func menuItemToDomain(dto MenuItemDTO) (restaurant.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return restaurant.MenuItem{}, err
	}

	customizations := make([]restaurant.Customization, 0, len(dto.Customizations))
	for _, customizationDTO := range dto.Customizations {
		options := make([]restaurant.Option, 0, len(customizationDTO.Options))
		for _, optionDTO := range customizationDTO.Options {
			option, optionErr := restaurant.NewOption(optionDTO.Name, optionDTO.Price)
			if optionErr != nil {
				return restaurant.MenuItem{}, optionErr
			}
			options = append(options, option)
		}

		customization, customizationErr := restaurant.NewCustomization(customizationDTO.Name, options)
		if customizationErr != nil {
			return restaurant.MenuItem{}, customizationErr
		}
		customizations = append(customizations, customization)
	}

	return restaurant.NewMenuItem(id, dto.Name, dto.Price, dto.DiscountedPrice, dto.IsAvailable, customizations)
}
