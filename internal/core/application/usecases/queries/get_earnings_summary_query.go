package queries

import (
	"errors"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

var ErrGetEarningsSummaryQueryIsNotConstructed = errors.New(
	"GetEarningsSummaryQuery must be created via NewGetEarningsSummaryQuery constructor",
)

// GetEarningsSummaryQuery aggregates a rider's settled deliveries over a
// period. Only delivered orders count; cancelled ones never pay out.
//
// Example:
//
//	query, err := NewGetEarningsSummaryQuery(riderID, weekStart, weekEnd)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get earnings: %w", err)
//	}
//
//	fmt.Printf("%d deliveries, %.2f earned\n", summary.Deliveries, summary.TotalEarnings)
type GetEarningsSummaryQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	from    time.Time
	to      time.Time

	guard guard.ConstructorGuard
}

// NewGetEarningsSummaryQuery creates an earnings summary query for the
// period [from, to]. The period bounds are required and must be ordered.
func NewGetEarningsSummaryQuery(riderID kernel.UUID, from, to time.Time) (GetEarningsSummaryQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetEarningsSummaryQuery{}, err
	}
	if from.IsZero() {
		return GetEarningsSummaryQuery{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return GetEarningsSummaryQuery{}, errs.NewValueIsRequiredError("to")
	}
	if to.Before(from) {
		return GetEarningsSummaryQuery{}, errs.NewValueIsInvalidError("period")
	}

	return GetEarningsSummaryQuery{
		riderID: riderID,
		from:    from,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsSummaryQueryIsNotConstructed)
}

// RiderID returns the id of the rider being summarized.
func (q GetEarningsSummaryQuery) RiderID() kernel.UUID {
	return q.riderID
}

// From returns the inclusive start of the period.
func (q GetEarningsSummaryQuery) From() time.Time {
	return q.from
}

// To returns the inclusive end of the period.
func (q GetEarningsSummaryQuery) To() time.Time {
	return q.to
}

// GetEarningsSummaryQueryResponse is a rider's settlement over a period.
// HoursWorked sums the placement-to-delivery spans of the counted orders;
// orders missing a delivery timestamp contribute nothing to it.
type GetEarningsSummaryQueryResponse struct {
	RiderID kernel.UUID
	From    time.Time
	To      time.Time

	TotalEarnings      float64
	Deliveries         int
	HoursWorked        float64
	AveragePerDelivery float64
	TotalTips          float64
	TotalBonuses       float64
}
