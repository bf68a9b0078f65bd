package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

func TestComputeStats(t *testing.T) {
	// Thursday
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	day := func(back int) time.Time { return now.AddDate(0, 0, -back) }

	orders := []entity.Order{
		{ID: "o1", TotalCents: 1000, Status: entity.OrderDelivered, PlacedAt: day(0)},
		{ID: "o2", TotalCents: 2550, Status: entity.OrderPending, PlacedAt: day(1)},
		{ID: "o3", TotalCents: 9999, Status: entity.OrderCancelled, PlacedAt: day(1)},
		{ID: "o4", TotalCents: 500, Status: entity.OrderShipped, PlacedAt: day(6)},
		{ID: "o5", TotalCents: 700, Status: entity.OrderShipped, PlacedAt: day(7)},
		{ID: "o6", TotalCents: 100, Status: entity.OrderConfirmed, PlacedAt: day(30)},
	}
	products := []entity.Product{
		{ID: "p1", Active: true, Stock: 50},
		{ID: "p2", Active: true, Stock: 9},
		{ID: "p3", Active: false, Stock: 0},
	}

	stats := ComputeStats(orders, products, now)

	assert.Equal(t, int64(1000+2550+500+700+100), stats.RevenueCents)
	assert.Equal(t, 6, stats.Orders)
	assert.Equal(t, 2, stats.ActiveProducts)
	assert.Equal(t, 2, stats.LowStock)

	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, "o1", stats.RecentOrders[0].ID)
	assert.Equal(t, "o5", stats.RecentOrders[4].ID)

	require.Len(t, stats.SalesByDay, 7)
	assert.Equal(t, "Fri", stats.SalesByDay[0].Day)
	assert.Equal(t, "Thu", stats.SalesByDay[6].Day)
	assert.InDelta(t, 5.0, stats.SalesByDay[0].Sales, 1e-9)
	assert.InDelta(t, 25.5, stats.SalesByDay[5].Sales, 1e-9)
	assert.InDelta(t, 10.0, stats.SalesByDay[6].Sales, 1e-9)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now())
	assert.Zero(t, stats.RevenueCents)
	assert.NotNil(t, stats.RecentOrders)
	assert.Len(t, stats.SalesByDay, 7)
}

func TestDashboardUseCase_Stats(t *testing.T) {
	orders := newFakeOrders(entity.Order{ID: "o1", TotalCents: 300, Status: entity.OrderPending, PlacedAt: time.Now()})
	catalog := &fakeCatalog{products: []entity.Product{{ID: "p1", Active: true, Stock: 3}}}

	stats, err := NewDashboardUseCase(catalog, orders).Stats(context.Background(), entity.Session{})
	require.NoError(t, err)
	assert.Equal(t, int64(300), stats.RevenueCents)
	assert.Equal(t, 1, stats.ActiveProducts)
	assert.Equal(t, 1, stats.LowStock)
}
