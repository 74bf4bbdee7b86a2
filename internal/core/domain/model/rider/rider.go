package rider

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

var (
	// ErrRiderIsNotConstructed is returned when a Rider instance was not created
	// through the NewRider or RestoreRider constructors.
	ErrRiderIsNotConstructed = errors.New("rider must be created via NewRider or RestoreRider constructors")

	// ErrRiderUnavailable is returned when a reservation is attempted on a rider
	// that is not online, not available, or already carrying an order. It is also
	// the outcome when a concurrent reservation wins the race for the rider.
	ErrRiderUnavailable = errors.New("rider is unavailable")

	// ErrRiderHasActiveOrder is returned when a rider tries to become available
	// while still bound to an order.
	ErrRiderHasActiveOrder = errors.New("rider has an active order")
)

// Rider is the aggregate root for courier state: duty status, availability,
// the single active order reference, the running rating, accumulated
// earnings, and the last reported location.
//
// Invariants:
//   - isAvailable == true implies currentOrderID == nil and status != Busy
//   - a rider holds at most one active order at any instant
//   - totalEarnings never decreases
//
// Reserve and Release are safe for concurrent use on a shared instance;
// cross-process races are resolved by the repository's conditional update
// keyed on the version column.
type Rider struct {
	id     kernel.UUID
	userID kernel.UUID

	status         Status
	isAvailable    bool
	currentOrderID *kernel.UUID

	averageRating float64
	ratingCount   int
	totalEarnings float64

	location          *kernel.GeoPoint
	locationUpdatedAt *time.Time

	version int
	guard   guard.ConstructorGuard

	mu sync.Mutex
}

// NewRider creates a freshly onboarded rider: offline, unavailable, no order,
// zero earnings and ratings.
func NewRider(id kernel.UUID, userID kernel.UUID) (*Rider, error) {
	rider := &Rider{
		status:      StatusOffline,
		isAvailable: false,
		version:     1,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rider.setID(id),
		rider.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// RestoreRiderParams carries the persisted state of a rider for RestoreRider.
type RestoreRiderParams struct {
	ID     kernel.UUID
	UserID kernel.UUID

	Status         Status
	IsAvailable    bool
	CurrentOrderID *kernel.UUID

	AverageRating float64
	RatingCount   int
	TotalEarnings float64

	Location          *kernel.GeoPoint
	LocationUpdatedAt *time.Time

	Version int
}

// RestoreRider reconstructs a rider aggregate from persistent storage.
func RestoreRider(params RestoreRiderParams) (*Rider, error) {
	rider := &Rider{
		isAvailable:       params.IsAvailable,
		currentOrderID:    params.CurrentOrderID,
		averageRating:     params.AverageRating,
		ratingCount:       params.RatingCount,
		totalEarnings:     params.TotalEarnings,
		location:          params.Location,
		locationUpdatedAt: params.LocationUpdatedAt,
		version:           params.Version,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rider.setID(params.ID),
		rider.setUserID(params.UserID),
		rider.setStatus(params.Status),
	); err != nil {
		return nil, err
	}

	if params.CurrentOrderID != nil {
		if err := params.CurrentOrderID.Validate(); err != nil {
			return nil, err
		}
	}
	if params.Location != nil {
		if err := params.Location.Validate(); err != nil {
			return nil, err
		}
	}

	return rider, nil
}

// Validate ensures the Rider instance was properly constructed.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares two riders by their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// UserID returns the id of the user account behind the rider.
func (r *Rider) UserID() kernel.UUID {
	return r.userID
}

// Status returns the rider's duty status.
func (r *Rider) Status() Status {
	return r.status
}

// IsAvailable reports whether the rider can be reserved for an order.
func (r *Rider) IsAvailable() bool {
	return r.isAvailable
}

// CurrentOrderID returns the active order the rider is bound to, nil if none.
func (r *Rider) CurrentOrderID() *kernel.UUID {
	return r.currentOrderID
}

// AverageRating returns the rider's running mean rating.
func (r *Rider) AverageRating() float64 {
	return r.averageRating
}

// RatingCount returns how many ratings the rider has received.
func (r *Rider) RatingCount() int {
	return r.ratingCount
}

// TotalEarnings returns the rider's accumulated delivery earnings.
func (r *Rider) TotalEarnings() float64 {
	return r.totalEarnings
}

// Location returns the last reported location, nil if never reported.
func (r *Rider) Location() *kernel.GeoPoint {
	return r.location
}

// LocationUpdatedAt returns when the location was last reported, nil if never.
func (r *Rider) LocationUpdatedAt() *time.Time {
	return r.locationUpdatedAt
}

// Version returns the optimistic concurrency version of the aggregate.
func (r *Rider) Version() int {
	return r.version
}

// Reserve binds the rider to an order. It fails with ErrRiderUnavailable
// unless the rider is online, available, and not carrying an order. Of
// several concurrent reservations on the same instance exactly one wins.
func (r *Rider) Reserve(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusOnline || !r.isAvailable || r.currentOrderID != nil {
		return ErrRiderUnavailable
	}

	r.status = StatusBusy
	r.isAvailable = false
	r.currentOrderID = &orderID
	return nil
}

// Release frees the rider after delivery or cancellation: online, available,
// no current order. Releasing an already free rider is a no-op.
func (r *Rider) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status = StatusOnline
	r.isAvailable = true
	r.currentOrderID = nil
}

// CreditEarnings adds amount to the rider's total earnings.
// Negative amounts are rejected.
func (r *Rider) CreditEarnings(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid", fmt.Errorf("%f is negative", amount))
	}
	r.totalEarnings += amount
	return nil
}

// AddRating folds a new score into the running mean:
// newAvg = (oldAvg*oldCount + score) / (oldCount+1).
func (r *Rider) AddRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("rating", score, 1, 5)
	}
	r.averageRating = (r.averageRating*float64(r.ratingCount) + float64(score)) / float64(r.ratingCount+1)
	r.ratingCount++
	return nil
}

// ChangeAvailability updates the rider's duty status and availability flag.
// Nil arguments leave the corresponding field untouched.
//
// A rider with an active order cannot become available, and going offline
// always forces the availability flag off.
func (r *Rider) ChangeAvailability(status *Status, isAvailable *bool) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	if isAvailable != nil && *isAvailable && r.currentOrderID != nil {
		return ErrRiderHasActiveOrder
	}

	if status != nil {
		r.status = *status
	}
	if isAvailable != nil {
		r.isAvailable = *isAvailable
	}
	if r.status == StatusOffline {
		r.isAvailable = false
	}
	return nil
}

// MoveTo records a fresh location report.
func (r *Rider) MoveTo(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	r.location = &point
	r.locationUpdatedAt = &now
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.userID = id
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
