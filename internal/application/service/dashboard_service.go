package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
)

// DashboardService aggregates store-wide figures for the overview screen
type DashboardService struct {
	store *store.Store
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// Overview is the headline dashboard payload
type Overview struct {
	TodayRevenue       float64 `json:"today_revenue"`
	TodaySalesCount    int     `json:"today_sales_count"`
	LowStockCount      int     `json:"low_stock_count"`
	OutstandingCredit  float64 `json:"outstanding_credit"`
	OverdueCount       int     `json:"overdue_count"`
	DueSoonCount       int     `json:"due_soon_count"`
	CollectedThisMonth float64 `json:"collected_this_month"`
}

// dueSoonWindow is how far ahead a due date counts as "due soon"
const dueSoonWindow = 3 * 24 * time.Hour

// GetOverview builds the headline figures
func (s *DashboardService) GetOverview() Overview {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var o Overview
	revenue := decimal.Zero
	for _, t := range s.store.Transactions() {
		if t.CreatedAt.Before(dayStart) {
			continue
		}
		o.TodaySalesCount++
		revenue = revenue.Add(decimal.NewFromFloat(t.Total))
	}
	o.TodayRevenue = revenue.InexactFloat64()

	for _, p := range s.store.Products() {
		if p.IsLowStock() {
			o.LowStockCount++
		}
	}

	outstanding := decimal.Zero
	collected := decimal.Zero
	for _, c := range s.store.Credits() {
		if c.Outstanding() {
			outstanding = outstanding.Add(decimal.NewFromFloat(c.Balance))
			if c.Status == enum.CreditStatusOverdue {
				o.OverdueCount++
			} else if due := c.DueDate.Sub(now); due >= 0 && due <= dueSoonWindow {
				o.DueSoonCount++
			}
		}
		for _, p := range c.Payments {
			if !p.Date.Before(monthStart) {
				collected = collected.Add(decimal.NewFromFloat(p.Amount))
			}
		}
	}
	o.OutstandingCredit = outstanding.InexactFloat64()
	o.CollectedThisMonth = collected.InexactFloat64()
	return o
}

// DayPoint is one day's sales aggregate
type DayPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// SalesSummary aggregates per-day revenue for the last n days, oldest
// first, with zero-filled gaps.
func (s *DashboardService) SalesSummary(days int) []DayPoint {
	if days < 1 {
		days = 7
	}
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	byDay := make(map[string]*DayPoint, days)
	points := make([]DayPoint, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		points[i] = DayPoint{Date: key}
		byDay[key] = &points[i]
	}

	totals := make(map[string]decimal.Decimal, days)
	for _, t := range s.store.Transactions() {
		if t.CreatedAt.Before(start) {
			continue
		}
		key := t.CreatedAt.Format("2006-01-02")
		point, ok := byDay[key]
		if !ok {
			continue
		}
		point.Count++
		totals[key] = totals[key].Add(decimal.NewFromFloat(t.Total))
	}
	for key, total := range totals {
		byDay[key].Total = total.InexactFloat64()
	}
	return points
}

// ProductRank is one product's sales aggregate over a window
type ProductRank struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	Revenue   float64 `json:"revenue"`
}

// TopProducts ranks products by revenue over the last n days
func (s *DashboardService) TopProducts(days, limit int) []ProductRank {
	if days < 1 {
		days = 30
	}
	if limit < 1 {
		limit = 5
	}
	start := s.now().AddDate(0, 0, -days)

	type acc struct {
		name    string
		qty     decimal.Decimal
		revenue decimal.Decimal
	}
	byProduct := make(map[string]*acc)
	for _, t := range s.store.Transactions() {
		if t.CreatedAt.Before(start) {
			continue
		}
		for _, line := range t.Items {
			a, ok := byProduct[line.ProductID]
			if !ok {
				a = &acc{name: line.Name}
				byProduct[line.ProductID] = a
			}
			a.qty = a.qty.Add(decimal.NewFromFloat(line.Qty))
			a.revenue = a.revenue.Add(decimal.NewFromFloat(line.Subtotal))
		}
	}

	ranks := make([]ProductRank, 0, len(byProduct))
	for id, a := range byProduct {
		ranks = append(ranks, ProductRank{
			ProductID: id,
			Name:      a.name,
			Qty:       a.qty.InexactFloat64(),
			Revenue:   a.revenue.InexactFloat64(),
		})
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Revenue > ranks[j].Revenue })
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// LowStockProducts returns products at or below their alert threshold
func (s *DashboardService) LowStockProducts() []entity.Product {
	var out []entity.Product
	for _, p := range s.store.Products() {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
