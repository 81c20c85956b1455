package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises order persistence against a
// real PostgreSQL database: aggregate roundtrips with child rows, lifecycle
// updates, and the daily sequence count.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
	tenantID  kernel.UUID
	actor     kernel.Actor
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
	suite.tenantID = kernel.NewUUID()
	suite.actor, err = kernel.NewActor(kernel.NewUUID(), suite.tenantID, kernel.RoleSupervisor)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	for _, table := range []string{"order_status_history", "order_items", "orders"} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string, createdAt time.Time) *order.Order {
	return suite.newOrderForTenant(suite.tenantID, number, createdAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderForTenant(
	tenantID kernel.UUID, number string, createdAt time.Time,
) *order.Order {
	amounts, err := order.NewAmounts(
		decimal.RequireFromString("95.50"), decimal.Zero, decimal.Zero,
		decimal.RequireFromString("95.50"))
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(),
		decimal.RequireFromString("19.10"), 5, decimal.RequireFromString("95.50"))
	suite.Require().NoError(err)

	deliveryDate := createdAt.AddDate(0, 0, 2)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:                    kernel.NewUUID(),
		TenantID:              tenantID,
		OrderNumber:           number,
		CustomerID:            kernel.NewUUID(),
		SalesRepID:            suite.actor.UserID(),
		CreatedBy:             suite.actor.UserID(),
		Amounts:               amounts,
		Notes:                 "deliver before noon",
		RequestedDeliveryDate: &deliveryDate,
		Items:                 []*order.Item{item},
		Now:                   createdAt,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundtripsAggregate() {
	ctx := context.Background()
	o := suite.newOrder("ORD-011015", time.Now().UTC().Truncate(time.Microsecond))

	suite.Require().NoError(suite.repo.Add(ctx, o))

	loaded, err := suite.repo.Get(ctx, o.ID(), suite.tenantID)
	suite.Require().NoError(err)

	suite.Equal(o.OrderNumber(), loaded.OrderNumber())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal(order.PaymentUnpaid, loaded.PaymentStatus())
	suite.True(o.Amounts().Total().Equal(loaded.Amounts().Total()))
	suite.Equal("deliver before noon", loaded.Notes())

	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(5, loaded.Items()[0].QtyOrdered())
	suite.True(loaded.Items()[0].UnitPrice().Equal(decimal.RequireFromString("19.10")))

	suite.Require().Len(loaded.History(), 1)
	suite.Nil(loaded.History()[0].FromStatus())
	suite.Equal(order.StatusPending, loaded.History()[0].ToStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_WrongTenant_ReturnsNotFound() {
	ctx := context.Background()
	o := suite.newOrder("ORD-011016", time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, o))

	_, err := suite.repo.Get(ctx, o.ID(), kernel.NewUUID())
	suite.Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OrderNumberUniquePerTenant() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder("ORD-011020", now)))

	err := suite.repo.Add(ctx, suite.newOrder("ORD-011020", now))
	suite.Error(err, "a second order with the same number in the same tenant must be rejected")

	foreign := suite.newOrderForTenant(kernel.NewUUID(), "ORD-011020", now)
	suite.NoError(suite.repo.Add(ctx, foreign),
		"the same number is allowed in a different tenant")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndAppendsHistory() {
	ctx := context.Background()
	o := suite.newOrder("ORD-011017", time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(suite.repo.Add(ctx, o))

	err := o.ChangeStatus(suite.actor, order.StatusConfirmed, "phoned the shop", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, o))

	loaded, err := suite.repo.Get(ctx, o.ID(), suite.tenantID)
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, loaded.Status())
	suite.Require().Len(loaded.History(), 2)
	suite.Equal(order.StatusConfirmed, loaded.History()[1].ToStatus())
	suite.Equal("phoned the shop", loaded.History()[1].Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotDuplicateHistoryRows() {
	ctx := context.Background()
	o := suite.newOrder("ORD-011018", time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, o))

	err := o.ChangeStatus(suite.actor, order.StatusConfirmed, "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, o))
	suite.Require().NoError(suite.repo.Update(ctx, o))

	loaded, err := suite.repo.Get(ctx, o.ID(), suite.tenantID)
	suite.Require().NoError(err)
	suite.Len(loaded.History(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsError() {
	o := suite.newOrder("ORD-011019", time.Now().UTC())

	err := suite.repo.Update(context.Background(), o)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountCreatedSince_CountsOnlyTenantOrdersInWindow() {
	ctx := context.Background()
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder("ORD-010800", now)))
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder("ORD-020830", now)))

	count, err := suite.repo.CountCreatedSince(ctx, suite.tenantID, midnight)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repo.CountCreatedSince(ctx, kernel.NewUUID(), midnight)
	suite.Require().NoError(err)
	suite.Equal(0, count)

	count, err = suite.repo.CountCreatedSince(ctx, suite.tenantID, now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
