package services

import (
	"errors"
	"math"
	"time"

	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/rider"
)

// ErrRiderNotFound is returned when no suitable rider exists for dispatch.
// This occurs when the candidate list is empty or every candidate is
// offline, unavailable, or already carrying an order.
var ErrRiderNotFound = errors.New("no available rider found")

// Dispatcher is the domain service that binds riders to orders and frees
// them again. Reserving mutates both aggregates as one in-memory unit;
// the caller persists both in a single transaction so the binding is
// atomic against storage as well.
type Dispatcher struct{}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// Reserve binds r to o: the rider becomes busy and unavailable with the
// order as its current order, and the order moves to AssignedToRider.
// Fails with rider.ErrRiderUnavailable when the rider cannot take the
// order; the order is left untouched in that case. If the order side
// fails the rider reservation is rolled back.
func (d Dispatcher) Reserve(o *order.Order, r *rider.Rider, now time.Time, note string) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}

	if err := r.Reserve(o.ID()); err != nil {
		return err
	}

	if err := o.AssignRider(r.ID(), now, note); err != nil {
		r.Release()
		return err
	}

	return nil
}

// Release frees the rider after delivery or cancellation. Idempotent.
func (d Dispatcher) Release(r *rider.Rider) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.Release()
	return nil
}

// FindNearest picks the closest reservable rider to the order's delivery
// point by great-circle distance. Riders without a reported location, or
// when the order has no geocoded point, rank behind located ones but are
// still eligible. Returns ErrRiderNotFound when no candidate can take an
// order at all.
func (d Dispatcher) FindNearest(o *order.Order, riders []*rider.Rider) (*rider.Rider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *rider.Rider
		bestDist = math.MaxFloat64
	)

	for _, candidate := range riders {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if candidate.Status() != rider.StatusOnline || !candidate.IsAvailable() || candidate.CurrentOrderID() != nil {
			continue
		}

		dist := math.MaxFloat64
		if point := o.Address().Point(); point != nil && candidate.Location() != nil {
			var err error
			dist, err = candidate.Location().DistanceKm(*point)
			if err != nil {
				return nil, err
			}
		}

		if best == nil || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrRiderNotFound
	}
	return best, nil
}
