package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

const (
	dashboardFetchLimit = 1000
	lowStockThreshold   = 10
	recentOrdersCount   = 5
	salesWindowDays     = 7
)

// DashboardUseCase headline metrics
type DashboardUseCase interface {
	Stats(ctx context.Context, session entity.Session) (*entity.DashboardStats, error)
}

type dashboardUseCase struct {
	catalog repository.CatalogAPI
	orders  repository.OrderAPI
	now     func() time.Time
}

// NewDashboardUseCase creates the dashboard use case
func NewDashboardUseCase(catalog repository.CatalogAPI, orders repository.OrderAPI) DashboardUseCase {
	return &dashboardUseCase{
		catalog: catalog,
		orders:  orders,
		now:     time.Now,
	}
}

// Stats fetches orders and products concurrently and aggregates them
func (u *dashboardUseCase) Stats(ctx context.Context, session entity.Session) (*entity.DashboardStats, error) {
	var (
		orders   []entity.Order
		products []entity.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = u.orders.ListOrders(gctx, session, dashboardFetchLimit)
		if err != nil {
			return fmt.Errorf("fetch orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = u.catalog.ListProducts(gctx, session, dashboardFetchLimit)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := ComputeStats(orders, products, u.now())
	return &stats, nil
}

// ComputeStats aggregates dashboard numbers. Cancelled orders count towards
// the order total but not towards revenue or sales.
func ComputeStats(orders []entity.Order, products []entity.Product, now time.Time) entity.DashboardStats {
	stats := entity.DashboardStats{
		Orders:       len(orders),
		RecentOrders: []entity.Order{},
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := today.AddDate(0, 0, -(salesWindowDays - 1))
	salesCents := make([]int64, salesWindowDays)

	for _, o := range orders {
		if o.Status == entity.OrderCancelled {
			continue
		}
		stats.RevenueCents += o.TotalCents

		placed := o.PlacedAt.In(now.Location())
		day := time.Date(placed.Year(), placed.Month(), placed.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		idx := int(day.Sub(windowStart).Hours()+12) / 24
		if idx >= 0 && idx < salesWindowDays {
			salesCents[idx] += o.TotalCents
		}
	}

	stats.SalesByDay = make([]entity.DailySales, salesWindowDays)
	for i := range salesWindowDays {
		day := windowStart.AddDate(0, 0, i)
		stats.SalesByDay[i] = entity.DailySales{
			Day:   day.Weekday().String()[:3],
			Sales: float64(salesCents[i]) / 100,
		}
	}

	for _, p := range products {
		if p.Active {
			stats.ActiveProducts++
		}
		if p.Stock < lowStockThreshold {
			stats.LowStock++
		}
	}

	recent := append([]entity.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PlacedAt.After(recent[j].PlacedAt)
	})
	if len(recent) > recentOrdersCount {
		recent = recent[:recentOrdersCount]
	}
	stats.RecentOrders = append(stats.RecentOrders, recent...)

	return stats
}
