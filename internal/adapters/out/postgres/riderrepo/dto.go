// Package riderrepo persists rider aggregates with GORM.
package riderrepo

import (
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the database representation of a rider aggregate.
type RiderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Status         string `gorm:"index"`
	IsAvailable    bool   `gorm:"index"`
	CurrentOrderID *uuid.UUID `gorm:"type:uuid"`

	AverageRating float64
	RatingCount   int
	TotalEarnings float64

	Longitude         *float64
	Latitude          *float64
	LocationUpdatedAt *time.Time

	Version int
}

// TableName overrides GORM's default naming to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(aggregate *rider.Rider) RiderDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrderID(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	var longitude, latitude *float64
	if point := aggregate.Location(); point != nil {
		lon, lat := point.Longitude(), point.Latitude()
		longitude, latitude = &lon, &lat
	}

	return RiderDTO{
		ID:     aggregate.ID().Bytes(),
		UserID: aggregate.UserID().Bytes(),

		Status:         aggregate.Status().String(),
		IsAvailable:    aggregate.IsAvailable(),
		CurrentOrderID: currentOrderID,

		AverageRating: aggregate.AverageRating(),
		RatingCount:   aggregate.RatingCount(),
		TotalEarnings: aggregate.TotalEarnings(),

		Longitude:         longitude,
		Latitude:          latitude,
		LocationUpdatedAt: aggregate.LocationUpdatedAt(),

		Version: aggregate.Version(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		parsed, idErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		currentOrderID = &parsed
	}

	var location *kernel.GeoPoint
	if dto.Longitude != nil && dto.Latitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Longitude, *dto.Latitude)
		if geoErr != nil {
			return nil, geoErr
		}
		location = &point
	}

	return rider.RestoreRider(rider.RestoreRiderParams{
		ID:     id,
		UserID: userID,

		Status:         status,
		IsAvailable:    dto.IsAvailable,
		CurrentOrderID: currentOrderID,

		AverageRating: dto.AverageRating,
		RatingCount:   dto.RatingCount,
		TotalEarnings: dto.TotalEarnings,

		Location:          location,
		LocationUpdatedAt: dto.LocationUpdatedAt,

		Version: dto.Version,
	})
}
