// Package http exposes the REST API. Authentication is out of scope: the
// acting identity arrives in the X-Actor-Id and X-Actor-Role headers, set by
// the gateway in front of this service.
package http

import (
	"errors"
	"net/http"
	"time"

	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/application/usecases/queries"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"
	"gochop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	rateOrderHandler          commands.RateOrderCommandHandler
	createRiderHandler        commands.CreateRiderCommandHandler
	updateAvailabilityHandler commands.UpdateRiderAvailabilityCommandHandler
	updateLocationHandler     commands.UpdateRiderLocationCommandHandler

	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	createRiderHandler commands.CreateRiderCommandHandler,
	updateAvailabilityHandler commands.UpdateRiderAvailabilityCommandHandler,
	updateLocationHandler commands.UpdateRiderLocationCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		rateOrderHandler:          rateOrderHandler,
		createRiderHandler:        createRiderHandler,
		updateAvailabilityHandler: updateAvailabilityHandler,
		updateLocationHandler:     updateLocationHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getEarningsSummaryHandler: getEarningsSummaryHandler,
	}
}

// RegisterRoutes binds all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.PUT("/orders/:id/status", s.ChangeOrderStatus)
	v1.POST("/orders/:id/ratings", s.RateOrder)

	v1.POST("/riders", s.CreateRider)
	v1.GET("/riders/:id/earnings", s.GetEarningsSummary)
	v1.PUT("/riders/:id/availability", s.UpdateRiderAvailability)
	v1.PUT("/riders/:id/location", s.UpdateRiderLocation)
}

// Error is the JSON error body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorResponse(ctx echo.Context, err error) error {
	return ctx.JSON(statusForError(err), Error{
		Code:    statusForError(err),
		Message: err.Error(),
	})
}

// statusForError maps the application error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, order.ErrOrderInTerminalState),
		errors.Is(err, order.ErrAlreadyRated),
		errors.Is(err, order.ErrOrderNotDelivered),
		errors.Is(err, rider.ErrRiderUnavailable),
		errors.Is(err, rider.ErrRiderHasActiveOrder),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func actorID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(actorIDHeader))
}

func actorRole(ctx echo.Context) (kernel.Role, error) {
	return kernel.RoleFromString(ctx.Request().Header.Get(actorRoleHeader))
}

// CustomizationRequest is one customization group picked for an order line.
type CustomizationRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// OrderLineRequest is one requested order line.
type OrderLineRequest struct {
	MenuItemID     string                 `json:"menuItemId"`
	Quantity       int                    `json:"quantity"`
	Customizations []CustomizationRequest `json:"customizations,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	RestaurantID  string             `json:"restaurantId"`
	Items         []OrderLineRequest `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentToken  string             `json:"paymentToken,omitempty"`
	Address       string             `json:"address"`
	Instructions  string             `json:"instructions,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// acting customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := actorID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	method, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return errorResponse(ctx, err)
	}
	lines, err := toLineRequests(req.Items)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, restaurantID,
		lines, method, req.PaymentToken,
		req.Address, req.Instructions,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

func toLineRequests(items []OrderLineRequest) ([]services.LineRequest, error) {
	lines := make([]services.LineRequest, 0, len(items))
	for _, item := range items {
		menuItemID, err := kernel.UUIDFromString(item.MenuItemID)
		if err != nil {
			return nil, err
		}

		customizations := make([]services.CustomizationRequest, 0, len(item.Customizations))
		for _, customization := range item.Customizations {
			customizations = append(customizations, services.CustomizationRequest{
				Name:    customization.Name,
				Options: customization.Options,
			})
		}

		lines = append(lines, services.LineRequest{
			MenuItemID:     menuItemID,
			Quantity:       item.Quantity,
			Customizations: customizations,
		})
	}
	return lines, nil
}

// ChangeOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status  string `json:"status"`
	RiderID string `json:"riderId,omitempty"`
	Note    string `json:"note,omitempty"`
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status - moves an order
// through its lifecycle on behalf of the acting user.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	role, err := actorRole(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var riderID *kernel.UUID
	if req.RiderID != "" {
		parsed, idErr := kernel.UUIDFromString(req.RiderID)
		if idErr != nil {
			return errorResponse(ctx, idErr)
		}
		riderID = &parsed
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, role, actor, target, riderID, req.Note)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateOrderRequest is the body of POST /api/v1/orders/:id/ratings.
type RateOrderRequest struct {
	RestaurantScore   *int   `json:"restaurantScore,omitempty"`
	RestaurantComment string `json:"restaurantComment,omitempty"`
	RiderScore        *int   `json:"riderScore,omitempty"`
	RiderComment      string `json:"riderComment,omitempty"`
}

// RateOrder handles POST /api/v1/orders/:id/ratings - rates a delivered
// order's restaurant and rider.
func (s *Server) RateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	customerID, err := actorID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req RateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRateOrderCommand(
		orderID, customerID,
		req.RestaurantScore, req.RestaurantComment,
		req.RiderScore, req.RiderComment,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActiveOrderResponse is one order of GET /api/v1/orders/active.
type ActiveOrderResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	RestaurantID string    `json:"restaurantId"`
	RiderID      *string   `json:"riderId,omitempty"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetActiveOrders handles GET /api/v1/orders/active - lists all in-flight
// orders for the operations dashboard.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve active orders",
		})
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		var riderID *string
		if o.RiderID != nil {
			id := o.RiderID.String()
			riderID = &id
		}

		response[i] = ActiveOrderResponse{
			ID:           o.ID.String(),
			CustomerID:   o.CustomerID.String(),
			RestaurantID: o.RestaurantID.String(),
			RiderID:      riderID,
			Status:       o.Status.String(),
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRiderRequest is the body of POST /api/v1/riders.
type CreateRiderRequest struct {
	UserID string `json:"userId"`
}

// CreateRider handles POST /api/v1/riders - onboards a new rider. Admin only.
func (s *Server) CreateRider(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if role != kernel.RoleAdmin {
		return errorResponse(ctx, errs.NewNotAuthorizedError(role.String(), "onboard riders"))
	}

	var req CreateRiderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(riderID, userID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": riderID.String()})
}

// EarningsSummaryResponse is the body of GET /api/v1/riders/:id/earnings.
type EarningsSummaryResponse struct {
	RiderID            string    `json:"riderId"`
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	TotalEarnings      float64   `json:"totalEarnings"`
	Deliveries         int       `json:"deliveries"`
	HoursWorked        float64   `json:"hoursWorked"`
	AveragePerDelivery float64   `json:"averagePerDelivery"`
	TotalTips          float64   `json:"totalTips"`
	TotalBonuses       float64   `json:"totalBonuses"`
}

// GetEarningsSummary handles GET /api/v1/riders/:id/earnings - summarizes a
// rider's earnings between the from and to query parameters (RFC 3339).
// Omitted bounds default to the last thirty days.
func (s *Server) GetEarningsSummary(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := ctx.QueryParam("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("from", err))
		}
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("to", err))
		}
	}

	query, err := queries.NewGetEarningsSummaryQuery(riderID, from, to)
	if err != nil {
		return errorResponse(ctx, err)
	}

	summary, err := s.getEarningsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute earnings summary",
		})
	}

	return ctx.JSON(http.StatusOK, EarningsSummaryResponse{
		RiderID:            summary.RiderID.String(),
		From:               summary.From,
		To:                 summary.To,
		TotalEarnings:      summary.TotalEarnings,
		Deliveries:         summary.Deliveries,
		HoursWorked:        summary.HoursWorked,
		AveragePerDelivery: summary.AveragePerDelivery,
		TotalTips:          summary.TotalTips,
		TotalBonuses:       summary.TotalBonuses,
	})
}

// UpdateRiderAvailabilityRequest is the body of PUT /api/v1/riders/:id/availability.
type UpdateRiderAvailabilityRequest struct {
	Status      *string `json:"status,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// UpdateRiderAvailability handles PUT /api/v1/riders/:id/availability -
// toggles a rider's duty status and availability.
func (s *Server) UpdateRiderAvailability(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req UpdateRiderAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var status *rider.Status
	if req.Status != nil {
		parsed, statusErr := rider.StatusFromString(*req.Status)
		if statusErr != nil {
			return errorResponse(ctx, statusErr)
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdateRiderAvailabilityCommand(riderID, status, req.IsAvailable)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateRiderLocationRequest is the body of PUT /api/v1/riders/:id/location.
type UpdateRiderLocationRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// UpdateRiderLocation handles PUT /api/v1/riders/:id/location - records a
// rider's reported position.
func (s *Server) UpdateRiderLocation(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req UpdateRiderLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	point, err := kernel.NewGeoPoint(req.Longitude, req.Latitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(riderID, point)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
