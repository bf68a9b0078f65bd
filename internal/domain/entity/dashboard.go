package entity

// DailySales revenue (currency units) of one weekday
type DailySales struct {
	Day   string  `json:"name"`
	Sales float64 `json:"sales"`
}

// DashboardStats headline metrics for the dashboard
type DashboardStats struct {
	RevenueCents   int64        `json:"revenue_cents"`
	Orders         int          `json:"orders"`
	ActiveProducts int          `json:"active_products"`
	LowStock       int          `json:"low_stock"`
	RecentOrders   []Order      `json:"recent_orders"`
	SalesByDay     []DailySales `json:"sales_by_day"`
}
