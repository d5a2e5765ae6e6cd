package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgenrdp/platform/internal/domain"
	"github.com/nextgenrdp/platform/internal/pricing"
)

type stubPlanRepo struct {
	plans map[string]*domain.Plan
}

func (s *stubPlanRepo) Create(context.Context, *domain.Plan) error { return nil }
func (s *stubPlanRepo) Update(context.Context, *domain.Plan) error { return nil }
func (s *stubPlanRepo) GetByID(_ context.Context, id string) (*domain.Plan, error) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (s *stubPlanRepo) GetBySlug(_ context.Context, slug string) (*domain.Plan, error) {
	if p, ok := s.plans[slug]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}
func (s *stubPlanRepo) ListActive(context.Context) ([]*domain.Plan, error) { return nil, nil }
func (s *stubPlanRepo) ListAll(context.Context) ([]*domain.Plan, error)    { return nil, nil }

type stubOrderRepo struct {
	created []*domain.Order
	byID    map[string]*domain.Order
}

func (s *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = "order-1"
	s.created = append(s.created, order)
	return nil
}
func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := s.byID[id]; ok {
		return o, nil
	}
	return nil, pgx.ErrNoRows
}
func (s *stubOrderRepo) ListByUser(context.Context, string) ([]*domain.Order, error) {
	return nil, nil
}
func (s *stubOrderRepo) List(context.Context, int, int) ([]*domain.Order, error) { return nil, nil }
func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	if o, ok := s.byID[id]; ok {
		o.Status = status
		return nil
	}
	return pgx.ErrNoRows
}
func (s *stubOrderRepo) CountByStatus(context.Context) (map[domain.OrderStatus]int64, error) {
	return nil, nil
}

func newOrderServiceForTest(t *testing.T, orders *stubOrderRepo, plans *stubPlanRepo) *OrderService {
	t.Helper()
	table, err := pricing.NewPromoTable(pricing.DefaultPromoCodes())
	require.NoError(t, err)
	return NewOrderService(orders, plans, table, nil)
}

func activePlan() *domain.Plan {
	return &domain.Plan{
		ID:                "plan-1",
		Slug:              "vps-starter",
		Name:              "VPS Starter",
		Type:              domain.PlanTypeVPS,
		MonthlyPriceCents: 1000,
		Active:            true,
	}
}

func TestPlaceOrderWithPromo(t *testing.T) {
	orders := &stubOrderRepo{}
	plans := &stubPlanRepo{plans: map[string]*domain.Plan{"vps-starter": activePlan()}}
	svc := newOrderServiceForTest(t, orders, plans)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        "user-1",
		PlanSlug:      "vps-starter",
		BillingMonths: 3,
		PromoCode:     "NEXTGEN20",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), order.SubtotalCents)
	assert.Equal(t, 20, order.DiscountPercent)
	assert.Equal(t, int64(2400), order.TotalCents)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "NEXTGEN20", *order.PromoCode)
	assert.NotEmpty(t, order.Reference)
	require.Len(t, orders.created, 1)
}

func TestPlaceOrderWithoutPromo(t *testing.T) {
	orders := &stubOrderRepo{}
	plans := &stubPlanRepo{plans: map[string]*domain.Plan{"vps-starter": activePlan()}}
	svc := newOrderServiceForTest(t, orders, plans)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:   "user-1",
		PlanSlug: "vps-starter",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, order.BillingMonths)
	assert.Equal(t, int64(1000), order.TotalCents)
	assert.Nil(t, order.PromoCode)
}

func TestPlaceOrderInvalidPromo(t *testing.T) {
	orders := &stubOrderRepo{}
	plans := &stubPlanRepo{plans: map[string]*domain.Plan{"vps-starter": activePlan()}}
	svc := newOrderServiceForTest(t, orders, plans)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:    "user-1",
		PlanSlug:  "vps-starter",
		PromoCode: "not-a-code",
	})
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
	assert.Empty(t, orders.created)
}

func TestPlaceOrderInactivePlan(t *testing.T) {
	plan := activePlan()
	plan.Active = false
	orders := &stubOrderRepo{}
	plans := &stubPlanRepo{plans: map[string]*domain.Plan{"vps-starter": plan}}
	svc := newOrderServiceForTest(t, orders, plans)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:   "user-1",
		PlanSlug: "vps-starter",
	})
	assert.ErrorIs(t, err, ErrPlanUnavailable)
}

func TestPlaceOrderUnknownPlan(t *testing.T) {
	svc := newOrderServiceForTest(t, &stubOrderRepo{}, &stubPlanRepo{plans: map[string]*domain.Plan{}})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:   "user-1",
		PlanSlug: "missing",
	})
	assert.ErrorIs(t, err, ErrPlanUnavailable)
}

func TestChangeStatus(t *testing.T) {
	existing := &domain.Order{ID: "order-1", UserID: "user-1", Status: domain.OrderStatusPending}
	orders := &stubOrderRepo{byID: map[string]*domain.Order{"order-1": existing}}
	svc := newOrderServiceForTest(t, orders, &stubPlanRepo{})

	order, err := svc.ChangeStatus(context.Background(), "order-1", domain.OrderStatusProvisioning)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProvisioning, order.Status)

	_, err = svc.ChangeStatus(context.Background(), "order-1", domain.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetUserOrderEnforcesOwnership(t *testing.T) {
	existing := &domain.Order{ID: "order-1", UserID: "user-1", Status: domain.OrderStatusPending}
	orders := &stubOrderRepo{byID: map[string]*domain.Order{"order-1": existing}}
	svc := newOrderServiceForTest(t, orders, &stubPlanRepo{})

	_, err := svc.GetUserOrder(context.Background(), "user-2", "order-1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	order, err := svc.GetUserOrder(context.Background(), "user-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
}
