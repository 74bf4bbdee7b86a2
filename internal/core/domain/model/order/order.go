package order

import (
	"errors"
	"fmt"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder constructors")

	// ErrOrderInTerminalState is returned when a transition is requested on an
	// order that already reached Delivered or Cancelled.
	ErrOrderInTerminalState = errors.New("order is in a terminal state")

	// ErrAlreadyRated is returned when a rating slot that was already filled
	// is written a second time.
	ErrAlreadyRated = errors.New("rating already submitted for this order")

	// ErrOrderNotDelivered is returned when a rating is submitted before the
	// order reached Delivered.
	ErrOrderNotDelivered = errors.New("order has not been delivered yet")
)

// defaultCancellationReason is recorded when a cancellation carries no reason.
const defaultCancellationReason = "No reason provided"

// StatusChange is one entry of the order's append-only audit trail.
type StatusChange struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewStatusChange creates a validated audit trail entry.
func NewStatusChange(status Status, timestamp time.Time, note string) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if timestamp.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("timestamp")
	}
	return StatusChange{status: status, timestamp: timestamp, note: note}, nil
}

// Status returns the status recorded by the entry.
func (c StatusChange) Status() Status {
	return c.status
}

// Timestamp returns when the entry was recorded.
func (c StatusChange) Timestamp() time.Time {
	return c.timestamp
}

// Note returns the optional free-text note of the entry.
func (c StatusChange) Note() string {
	return c.note
}

// Address is the delivery destination: a free-text address, optionally a
// geocoded point, and delivery instructions. Geocoding is best effort, so
// the point may be absent.
type Address struct {
	text         string
	point        *kernel.GeoPoint
	instructions string
}

// NewAddress creates a validated delivery address.
func NewAddress(text string, point *kernel.GeoPoint, instructions string) (Address, error) {
	if text == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return Address{}, err
		}
	}
	return Address{text: text, point: point, instructions: instructions}, nil
}

// Text returns the free-text address.
func (a Address) Text() string {
	return a.text
}

// Point returns the geocoded location, nil if geocoding failed or was skipped.
func (a Address) Point() *kernel.GeoPoint {
	return a.point
}

// Instructions returns the delivery instructions, possibly empty.
func (a Address) Instructions() string {
	return a.instructions
}

// Totals is the priced money breakdown of an order, computed once at checkout
// by the order pricer. Total = Subtotal + TaxAmount + DeliveryFee - Discount.
// Tip and Bonus default to zero and feed the rider earnings summary.
type Totals struct {
	Subtotal    float64
	TaxAmount   float64
	DeliveryFee float64
	Discount    float64
	Tip         float64
	Bonus       float64
	Total       float64
}

// Validate checks that no money field is negative.
func (t Totals) Validate() error {
	for name, value := range map[string]float64{
		"subtotal":    t.Subtotal,
		"taxAmount":   t.TaxAmount,
		"deliveryFee": t.DeliveryFee,
		"discount":    t.Discount,
		"tip":         t.Tip,
		"bonus":       t.Bonus,
		"total":       t.Total,
	} {
		if value < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				name+" is invalid", fmt.Errorf("%f is negative", value))
		}
	}
	return nil
}

// Order is the aggregate root of the order lifecycle. It owns the status
// state machine, the append-only audit trail, the payment and refund record,
// and the once-per-target rating slots.
//
// Invariants:
//   - statusHistory is never truncated or reordered and its last entry's
//     status equals the order status
//   - riderID is set whenever the status requires a rider and is retained
//     for history after Delivered or Cancelled
//   - actualDeliveryTime is set exactly once, on Delivered
//   - each rating slot is settable at most once, only after Delivered
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	riderID      *kernel.UUID

	items   []Item
	totals  Totals
	payment Payment
	address Address

	status  Status
	history []StatusChange

	restaurantRating *Rating
	riderRating      *Rating

	cancelledBy        string
	cancellationReason string
	refundStatus       RefundStatus

	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
	createdAt             time.Time

	version int
	guard   guard.ConstructorGuard
}

// NewOrder creates a freshly placed order in Pending status with a single
// "Order placed" audit entry. Pricing must already be resolved into totals;
// for card payments the charge must already have succeeded, so the payment
// record arrives completed.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	totals Totals,
	payment Payment,
	address Address,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:    StatusPending,
		createdAt: now,
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setItems(items),
		order.setTotals(totals),
		order.setPayment(payment),
		order.setAddress(address),
	); err != nil {
		return nil, err
	}

	entry, err := NewStatusChange(StatusPending, now, "Order placed")
	if err != nil {
		return nil, err
	}
	order.history = []StatusChange{entry}

	return order, nil
}

// RestoreOrderParams carries the persisted state of an order for RestoreOrder.
type RestoreOrderParams struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	RiderID      *kernel.UUID

	Items   []Item
	Totals  Totals
	Payment Payment
	Address Address

	Status  Status
	History []StatusChange

	RestaurantRating *Rating
	RiderRating      *Rating

	CancelledBy        string
	CancellationReason string
	RefundStatus       RefundStatus

	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time

	Version int
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
// Unlike NewOrder it accepts any valid lifecycle state, including terminal
// ones, and preserves the persisted audit trail and version.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		riderID:               params.RiderID,
		restaurantRating:      params.RestaurantRating,
		riderRating:           params.RiderRating,
		cancelledBy:           params.CancelledBy,
		cancellationReason:    params.CancellationReason,
		refundStatus:          params.RefundStatus,
		estimatedDeliveryTime: params.EstimatedDeliveryTime,
		actualDeliveryTime:    params.ActualDeliveryTime,
		createdAt:             params.CreatedAt,
		version:               params.Version,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setCustomerID(params.CustomerID),
		order.setRestaurantID(params.RestaurantID),
		order.setItems(params.Items),
		order.setTotals(params.Totals),
		order.setPayment(params.Payment),
		order.setAddress(params.Address),
		order.setStatus(params.Status),
		order.setHistory(params.History),
	); err != nil {
		return nil, err
	}

	if params.RiderID != nil {
		if err := params.RiderID.Validate(); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the id of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the id of the restaurant preparing the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RiderID returns the assigned rider's id, nil if no rider was ever assigned.
// The reference is retained after delivery or cancellation for history.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// Totals returns the priced money breakdown.
func (o *Order) Totals() Totals {
	return o.totals
}

// Payment returns the payment record.
func (o *Order) Payment() Payment {
	return o.payment
}

// Address returns the delivery address.
func (o *Order) Address() Address {
	return o.address
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns the append-only audit trail, oldest entry first.
func (o *Order) History() []StatusChange {
	return o.history
}

// RestaurantRating returns the restaurant rating slot, nil if not yet rated.
func (o *Order) RestaurantRating() *Rating {
	return o.restaurantRating
}

// RiderRating returns the rider rating slot, nil if not yet rated.
func (o *Order) RiderRating() *Rating {
	return o.riderRating
}

// CancelledBy returns who cancelled the order, empty if not cancelled.
func (o *Order) CancelledBy() string {
	return o.cancelledBy
}

// CancellationReason returns the recorded cancellation reason, empty if not cancelled.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// RefundStatus returns the outcome of the cancellation refund attempt.
func (o *Order) RefundStatus() RefundStatus {
	return o.refundStatus
}

// EstimatedDeliveryTime returns the ETA set when the restaurant accepted
// the order, nil before acceptance.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns when the order was delivered, nil before delivery.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// AuthorizeTransition checks whether an actor with the given role may request
// a transition of this order to the target status.
//
// Admin may request any valid target. Restaurant, rider and customer are
// limited to their allowed target sets; the customer may additionally only
// cancel while the order is still Pending. Ownership checks (the actor owns
// the restaurant, is the assigned rider, or placed the order) are enforced
// by the caller against the loaded aggregates.
//
// Terminal orders reject every transition with ErrOrderInTerminalState.
func (o *Order) AuthorizeTransition(role kernel.Role, target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderInTerminalState
	}
	if !target.AllowedForRole(role) {
		return errs.NewNotAuthorizedError(role.String(), "change status to "+target.String())
	}
	if role == kernel.RoleCustomer && o.status != StatusPending {
		return errs.NewNotAuthorizedError(role.String(), "cancel a non-pending order")
	}
	return nil
}

// ChangeStatus applies a plain status transition with no side effects beyond
// the status commit and the audit entry. Transitions that mutate more state
// have dedicated methods: Accept, AssignRider, Deliver, Cancel.
func (o *Order) ChangeStatus(target Status, now time.Time, note string) error {
	return o.commitStatus(target, now, note)
}

// Accept marks the order accepted by the restaurant and sets the estimated
// delivery time to now plus the restaurant's preparation minutes.
func (o *Order) Accept(now time.Time, preparationMinutes int, note string) error {
	if err := o.commitStatus(StatusAccepted, now, note); err != nil {
		return err
	}
	eta := now.Add(time.Duration(preparationMinutes) * time.Minute)
	o.estimatedDeliveryTime = &eta
	return nil
}

// AssignRider binds a rider to the order and moves it to AssignedToRider.
// The rider side of the reservation is handled by the dispatcher; both
// mutations must be persisted in the same transaction.
func (o *Order) AssignRider(riderID kernel.UUID, now time.Time, note string) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := o.commitStatus(StatusAssignedToRider, now, note); err != nil {
		return err
	}
	o.riderID = &riderID
	return nil
}

// Deliver marks the order delivered and records the actual delivery time.
func (o *Order) Deliver(now time.Time, note string) error {
	if err := o.commitStatus(StatusDelivered, now, note); err != nil {
		return err
	}
	o.actualDeliveryTime = &now
	return nil
}

// Cancel moves the order to Cancelled and records who cancelled it and why.
// Roles outside {customer, restaurant, rider} are recorded as "system".
// An empty reason is recorded as "No reason provided".
func (o *Order) Cancel(role kernel.Role, reason string, now time.Time) error {
	if reason == "" {
		reason = defaultCancellationReason
	}
	if err := o.commitStatus(StatusCancelled, now, reason); err != nil {
		return err
	}

	switch role {
	case kernel.RoleCustomer, kernel.RoleRestaurant, kernel.RoleRider:
		o.cancelledBy = role.String()
	default:
		o.cancelledBy = "system"
	}
	o.cancellationReason = reason
	return nil
}

// SetRefundOutcome records the result of the refund attempted during
// cancellation of a card-paid order. A successful refund also flips the
// payment status to refunded; a failed one leaves the payment completed
// and surfaces only through the refund status.
func (o *Order) SetRefundOutcome(succeeded bool) error {
	if o.status != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"refund outcome is invalid",
			fmt.Errorf("order status is %s, not %s", o.status, StatusCancelled))
	}

	if succeeded {
		o.refundStatus = RefundStatusCompleted
		o.payment.status = PaymentStatusRefunded
		return nil
	}
	o.refundStatus = RefundStatusFailed
	return nil
}

// RateRestaurant fills the restaurant rating slot. The order must be
// delivered and the slot must be empty.
func (o *Order) RateRestaurant(rating Rating) error {
	if o.status != StatusDelivered {
		return ErrOrderNotDelivered
	}
	if o.restaurantRating != nil {
		return ErrAlreadyRated
	}
	o.restaurantRating = &rating
	return nil
}

// RateRider fills the rider rating slot. The order must be delivered and
// the slot must be empty.
func (o *Order) RateRider(rating Rating) error {
	if o.status != StatusDelivered {
		return ErrOrderNotDelivered
	}
	if o.riderRating != nil {
		return ErrAlreadyRated
	}
	o.riderRating = &rating
	return nil
}

// commitStatus validates the transition target, applies the terminal guard,
// sets the new status and appends the audit entry.
func (o *Order) commitStatus(target Status, now time.Time, note string) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderInTerminalState
	}

	entry, err := NewStatusChange(target, now, note)
	if err != nil {
		return err
	}

	o.status = target
	o.history = append(o.history, entry)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = items
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Method().Validate(); err != nil {
		return err
	}
	if err := payment.Status().Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setAddress(address Address) error {
	if address.text == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setHistory(history []StatusChange) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("statusHistory")
	}
	o.history = history
	return nil
}
