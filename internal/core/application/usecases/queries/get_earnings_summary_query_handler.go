package queries

import (
	"context"
	"database/sql"
	"time"

	"gochop/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetEarningsSummaryQueryHandler computes a rider's earnings over a period
// from the delivered orders recorded in the database.
type GetEarningsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetEarningsSummaryQueryHandler creates a handler for earnings queries.
func NewGetEarningsSummaryQueryHandler(db *gorm.DB) GetEarningsSummaryQueryHandler {
	return GetEarningsSummaryQueryHandler{db: db}
}

// Handle executes the query. Earnings are the delivery fees of the rider's
// delivered orders placed within the period, plus tips and bonuses reported
// separately.
func (h GetEarningsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsSummaryQuery,
) (GetEarningsSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	summary := GetEarningsSummaryQueryResponse{
		RiderID: query.RiderID(),
		From:    query.From(),
		To:      query.To(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			delivery_fee,
			tip,
			bonus,
			created_at,
			actual_delivery_time
		FROM orders
		WHERE rider_id = ?
		  AND status = ?
		  AND created_at BETWEEN ? AND ?
	`, query.RiderID().String(), order.StatusDelivered.String(), query.From(), query.To()).Rows()
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deliveryFee float64
			tip         float64
			bonus       float64
			createdAt   time.Time
			deliveredAt sql.NullTime
		)

		if err = rows.Scan(&deliveryFee, &tip, &bonus, &createdAt, &deliveredAt); err != nil {
			return GetEarningsSummaryQueryResponse{}, err
		}

		summary.TotalEarnings += deliveryFee
		summary.TotalTips += tip
		summary.TotalBonuses += bonus
		summary.Deliveries++

		if deliveredAt.Valid {
			summary.HoursWorked += deliveredAt.Time.Sub(createdAt).Hours()
		}
	}

	if err = rows.Err(); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	if summary.Deliveries > 0 {
		summary.AveragePerDelivery = summary.TotalEarnings / float64(summary.Deliveries)
	}

	return summary, nil
}
