// Package orderrepo persists order aggregates with GORM. The order's nested
// collections (lines, audit trail) live in jsonb columns of the orders table;
// the scalar lifecycle fields stay relational so the read-side queries can
// filter on them directly.
package orderrepo

import (
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	RiderID      *uuid.UUID `gorm:"type:uuid;index"`

	Items []ItemDTO `gorm:"serializer:json;type:jsonb"`

	Subtotal    float64
	TaxAmount   float64
	DeliveryFee float64
	Discount    float64
	Tip         float64
	Bonus       float64
	Total       float64

	PaymentMethod     string
	PaymentStatus     string
	ExternalPaymentID string

	AddressText         string
	AddressLongitude    *float64
	AddressLatitude     *float64
	AddressInstructions string

	Status  string            `gorm:"index"`
	History []StatusChangeDTO `gorm:"serializer:json;type:jsonb"`

	RestaurantRatingScore   *int
	RestaurantRatingComment string
	RiderRatingScore        *int
	RiderRatingComment      string

	CancelledBy        string
	CancellationReason string
	RefundStatus       string

	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time

	Version int
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the jsonb items column.
type ItemDTO struct {
	MenuItemID     uuid.UUID          `json:"menuItemId"`
	Name           string             `json:"name"`
	UnitPrice      float64            `json:"unitPrice"`
	Quantity       int                `json:"quantity"`
	Customizations []CustomizationDTO `json:"customizations,omitempty"`
}

// CustomizationDTO is one chosen customization group of an order line.
type CustomizationDTO struct {
	Name    string      `json:"name"`
	Options []OptionDTO `json:"options"`
}

// OptionDTO is one chosen option within a customization group.
type OptionDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// StatusChangeDTO is one audit trail entry inside the jsonb history column.
type StatusChangeDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(item))
	}

	history := make([]StatusChangeDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, StatusChangeDTO{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		})
	}

	var longitude, latitude *float64
	if point := aggregate.Address().Point(); point != nil {
		lon, lat := point.Longitude(), point.Latitude()
		longitude, latitude = &lon, &lat
	}

	var restaurantScore, riderScore *int
	var restaurantComment, riderComment string
	if rating := aggregate.RestaurantRating(); rating != nil {
		score := rating.Score()
		restaurantScore = &score
		restaurantComment = rating.Comment()
	}
	if rating := aggregate.RiderRating(); rating != nil {
		score := rating.Score()
		riderScore = &score
		riderComment = rating.Comment()
	}

	totals := aggregate.Totals()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		RiderID:      riderID,

		Items: items,

		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		DeliveryFee: totals.DeliveryFee,
		Discount:    totals.Discount,
		Tip:         totals.Tip,
		Bonus:       totals.Bonus,
		Total:       totals.Total,

		PaymentMethod:     aggregate.Payment().Method().String(),
		PaymentStatus:     aggregate.Payment().Status().String(),
		ExternalPaymentID: aggregate.Payment().ExternalPaymentID(),

		AddressText:         aggregate.Address().Text(),
		AddressLongitude:    longitude,
		AddressLatitude:     latitude,
		AddressInstructions: aggregate.Address().Instructions(),

		Status:  aggregate.Status().String(),
		History: history,

		RestaurantRatingScore:   restaurantScore,
		RestaurantRatingComment: restaurantComment,
		RiderRatingScore:        riderScore,
		RiderRatingComment:      riderComment,

		CancelledBy:        aggregate.CancelledBy(),
		CancellationReason: aggregate.CancellationReason(),
		RefundStatus:       aggregate.RefundStatus().String(),

		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		CreatedAt:             aggregate.CreatedAt(),

		Version: aggregate.Version(),
	}
}

func itemFromDomain(item order.Item) ItemDTO {
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

	return ItemDTO{
		MenuItemID:     item.MenuItemID().Bytes(),
		Name:           item.Name(),
		UnitPrice:      item.UnitPrice(),
		Quantity:       item.Quantity(),
		Customizations: customizations,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		parsed, idErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		riderID = &parsed
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entryStatus, entryErr := order.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		entry, entryErr := order.NewStatusChange(entryStatus, entryDTO.Timestamp, entryDTO.Note)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	method, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	payment, err := order.NewPayment(method, paymentStatus, dto.ExternalPaymentID)
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.AddressLongitude != nil && dto.AddressLatitude != nil {
		geoPoint, geoErr := kernel.NewGeoPoint(*dto.AddressLongitude, *dto.AddressLatitude)
		if geoErr != nil {
			return nil, geoErr
		}
		point = &geoPoint
	}
	address, err := order.NewAddress(dto.AddressText, point, dto.AddressInstructions)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	refundStatus, err := order.RefundStatusFromString(dto.RefundStatus)
	if err != nil {
		return nil, err
	}

	var restaurantRating, riderRating *order.Rating
	if dto.RestaurantRatingScore != nil {
		rating, ratingErr := order.NewRating(*dto.RestaurantRatingScore, dto.RestaurantRatingComment)
		if ratingErr != nil {
			return nil, ratingErr
		}
		restaurantRating = &rating
	}
	if dto.RiderRatingScore != nil {
		rating, ratingErr := order.NewRating(*dto.RiderRatingScore, dto.RiderRatingComment)
		if ratingErr != nil {
			return nil, ratingErr
		}
		riderRating = &rating
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		RiderID:      riderID,

		Items: items,
		Totals: order.Totals{
			Subtotal:    dto.Subtotal,
			TaxAmount:   dto.TaxAmount,
			DeliveryFee: dto.DeliveryFee,
			Discount:    dto.Discount,
			Tip:         dto.Tip,
			Bonus:       dto.Bonus,
			Total:       dto.Total,
		},
		Payment: payment,
		Address: address,

		Status:  status,
		History: history,

		RestaurantRating: restaurantRating,
		RiderRating:      riderRating,

		CancelledBy:        dto.CancelledBy,
		CancellationReason: dto.CancellationReason,
		RefundStatus:       refundStatus,

		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		CreatedAt:             dto.CreatedAt,

		Version: dto.Version,
	})
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}

	customizations := make([]order.ChosenCustomization, 0, len(dto.Customizations))
	for _, customizationDTO := range dto.Customizations {
		options := make([]order.ChosenOption, 0, len(customizationDTO.Options))
		for _, optionDTO := range customizationDTO.Options {
			option, optionErr := order.NewChosenOption(optionDTO.Name, optionDTO.Price)
			if optionErr != nil {
				return order.Item{}, optionErr
			}
			options = append(options, option)
		}

		customization, customizationErr := order.NewChosenCustomization(customizationDTO.Name, options)
		if customizationErr != nil {
			return order.Item{}, customizationErr
		}
		customizations = append(customizations, customization)
	}

	return order.NewItem(menuItemID, dto.Name, dto.UnitPrice, dto.Quantity, customizations)
}
