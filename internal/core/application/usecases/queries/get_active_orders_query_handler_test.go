package queries_test

import (
	"context"
	"testing"
	"time"

	"gochop/internal/adapters/out/postgres/orderrepo"
	"gochop/internal/core/application/usecases/queries"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyActiveOrders() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	pending := createTestOrder(suite.T(), now)

	preparing := createTestOrder(suite.T(), now.Add(time.Minute))
	suite.Require().NoError(preparing.Accept(now, 30, ""))
	suite.Require().NoError(preparing.ChangeStatus(order.StatusPreparing, now, ""))

	delivered := deliverTestOrder(suite.T(), kernel.NewUUID(), now, now.Add(30*time.Minute), order.Totals{
		Subtotal: 20, DeliveryFee: 5, Total: 25,
	})

	cancelled := createTestOrder(suite.T(), now)
	suite.Require().NoError(cancelled.Cancel(kernel.RoleCustomer, "Changed my mind", now))

	for _, o := range []*order.Order{pending, preparing, delivered, cancelled} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)

	// Oldest first.
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal(order.StatusPending, result[0].Status)
	suite.Nil(result[0].RiderID)
	suite.InDelta(pending.Totals().Total, result[0].Total, 1e-9)

	suite.Equal(preparing.ID(), result[1].ID)
	suite.Equal(order.StatusPreparing, result[1].Status)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_AssignedOrder_MapsRiderID() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	riderID := kernel.NewUUID()

	assigned := createTestOrder(suite.T(), now)
	suite.Require().NoError(assigned.Accept(now, 30, ""))
	suite.Require().NoError(assigned.ChangeStatus(order.StatusPreparing, now, ""))
	suite.Require().NoError(assigned.ChangeStatus(order.StatusReadyForPickup, now, ""))
	suite.Require().NoError(assigned.AssignRider(riderID, now, ""))

	suite.Require().NoError(suite.orderRepo.Add(ctx, assigned))

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(order.StatusAssignedToRider, result[0].Status)
	suite.Require().NotNil(result[0].RiderID)
	suite.Equal(riderID, *result[0].RiderID)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetActiveOrdersQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveOrdersQuery constructor")
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveOrdersQuery())

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
