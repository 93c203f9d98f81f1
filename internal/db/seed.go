package db

import (
	"database/sql"
	"fmt"

	"vista/internal/model"
)

// SampleDataset is the demo data the dashboard ships with.
func SampleDataset() model.Dataset {
	return model.Dataset{
		KPIs: []model.KPI{
			{ID: 1, Title: "Total Revenue", Value: 798000, Change: 12.5, Trend: model.TrendUp, Prefix: "$"},
			{ID: 2, Title: "Total Orders", Value: 4214, Change: 8.3, Trend: model.TrendUp},
			{ID: 3, Title: "Avg Order Value", Value: 189.35, Change: 3.9, Trend: model.TrendUp, Prefix: "$"},
			{ID: 4, Title: "Customer Retention", Value: 87.5, Change: -1.2, Trend: model.TrendDown, Suffix: "%"},
		},
		RevenueTrends: []model.TrendPoint{
			{Month: "Jan", Revenue: 45000, Profit: 12000},
			{Month: "Feb", Revenue: 52000, Profit: 15000},
			{Month: "Mar", Revenue: 48000, Profit: 13500},
			{Month: "Apr", Revenue: 61000, Profit: 18000},
			{Month: "May", Revenue: 55000, Profit: 16500},
			{Month: "Jun", Revenue: 67000, Profit: 20000},
			{Month: "Jul", Revenue: 72000, Profit: 22000},
			{Month: "Aug", Revenue: 68000, Profit: 21000},
			{Month: "Sep", Revenue: 75000, Profit: 23500},
			{Month: "Oct", Revenue: 82000, Profit: 26000},
			{Month: "Nov", Revenue: 78000, Profit: 24500},
			{Month: "Dec", Revenue: 85000, Profit: 28000},
		},
		MonthlyOrders: []model.MonthlyOrders{
			{Month: "Jul", Orders: 340},
			{Month: "Aug", Orders: 380},
			{Month: "Sep", Orders: 420},
			{Month: "Oct", Orders: 395},
			{Month: "Nov", Orders: 445},
			{Month: "Dec", Orders: 460},
		},
		SalesByCategory: []model.CategorySales{
			{Name: "Electronics", Value: 285000, Color: "#0ea5e9"},
			{Name: "Clothing", Value: 195000, Color: "#10b981"},
			{Name: "Home & Garden", Value: 142000, Color: "#f59e0b"},
			{Name: "Sports", Value: 98000, Color: "#8b5cf6"},
			{Name: "Books", Value: 78000, Color: "#ec4899"},
		},
		RevenueVsExpenses: []model.RevenueExpense{
			{Month: "Jan", Revenue: 45000, Expenses: 33000},
			{Month: "Feb", Revenue: 52000, Expenses: 37000},
			{Month: "Mar", Revenue: 48000, Expenses: 34500},
			{Month: "Apr", Revenue: 61000, Expenses: 43000},
			{Month: "May", Revenue: 55000, Expenses: 38500},
			{Month: "Jun", Revenue: 67000, Expenses: 47000},
		},
		Products: []model.Product{
			{ID: 1, Name: "Wireless Headphones Pro", Category: "Electronics", Sales: 1250, Revenue: 87500, Growth: 15.3, Status: "trending"},
			{ID: 2, Name: "Smart Fitness Watch", Category: "Electronics", Sales: 980, Revenue: 68600, Growth: 12.7, Status: "trending"},
			{ID: 3, Name: "Premium Cotton T-Shirt", Category: "Clothing", Sales: 2100, Revenue: 52500, Growth: 8.2, Status: "stable"},
			{ID: 4, Name: "Running Shoes Elite", Category: "Sports", Sales: 750, Revenue: 97500, Growth: 18.9, Status: "trending"},
			{ID: 5, Name: "Organic Coffee Beans", Category: "Home & Garden", Sales: 3200, Revenue: 64000, Growth: -2.1, Status: "declining"},
			{ID: 6, Name: "Yoga Mat Premium", Category: "Sports", Sales: 890, Revenue: 44500, Growth: 6.5, Status: "stable"},
			{ID: 7, Name: "LED Desk Lamp", Category: "Electronics", Sales: 1450, Revenue: 58000, Growth: 10.1, Status: "stable"},
			{ID: 8, Name: "Leather Wallet", Category: "Clothing", Sales: 1680, Revenue: 84000, Growth: 14.6, Status: "trending"},
			{ID: 9, Name: "Gardening Tool Set", Category: "Home & Garden", Sales: 620, Revenue: 37200, Growth: -4.3, Status: "declining"},
			{ID: 10, Name: "Cookbook Collection", Category: "Books", Sales: 1920, Revenue: 57600, Growth: 5.8, Status: "stable"},
		},
		Customers: []model.CustomerSegment{
			{ID: 1, Segment: "Enterprise", Customers: 145, Revenue: 425000, AvgOrderValue: 2931, Retention: 92.5},
			{ID: 2, Segment: "Small Business", Customers: 892, Revenue: 267000, AvgOrderValue: 299, Retention: 85.3},
			{ID: 3, Segment: "Individual", Customers: 3177, Revenue: 106000, AvgOrderValue: 33, Retention: 78.9},
		},
	}
}

// Seed writes ds into an empty database. It reports false and writes
// nothing when products already exist.
func Seed(db *sql.DB, ds model.Dataset) (bool, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := seedTx(tx, ds); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

func seedTx(tx *sql.Tx, ds model.Dataset) error {
	for _, k := range ds.KPIs {
		if _, err := tx.Exec(
			`INSERT INTO kpis (id, title, value, change, trend, prefix, suffix) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			k.ID, k.Title, k.Value, k.Change, nullString(string(k.Trend)), k.Prefix, k.Suffix,
		); err != nil {
			return fmt.Errorf("failed to insert kpi %q: %w", k.Title, err)
		}
	}
	for i, p := range ds.RevenueTrends {
		if _, err := tx.Exec(
			`INSERT INTO revenue_trends (position, month, revenue, profit) VALUES (?, ?, ?, ?)`,
			i, p.Month, p.Revenue, p.Profit,
		); err != nil {
			return fmt.Errorf("failed to insert revenue trend: %w", err)
		}
	}
	for i, o := range ds.MonthlyOrders {
		if _, err := tx.Exec(
			`INSERT INTO monthly_orders (position, month, orders) VALUES (?, ?, ?)`,
			i, o.Month, o.Orders,
		); err != nil {
			return fmt.Errorf("failed to insert monthly orders: %w", err)
		}
	}
	for i, c := range ds.SalesByCategory {
		if _, err := tx.Exec(
			`INSERT INTO sales_by_category (position, name, value, color) VALUES (?, ?, ?, ?)`,
			i, c.Name, c.Value, c.Color,
		); err != nil {
			return fmt.Errorf("failed to insert category sales: %w", err)
		}
	}
	for i, r := range ds.RevenueVsExpenses {
		if _, err := tx.Exec(
			`INSERT INTO revenue_vs_expenses (position, month, revenue, expenses) VALUES (?, ?, ?, ?)`,
			i, r.Month, r.Revenue, r.Expenses,
		); err != nil {
			return fmt.Errorf("failed to insert revenue vs expenses: %w", err)
		}
	}
	for _, p := range ds.Products {
		if _, err := tx.Exec(
			`INSERT INTO products (id, name, category, sales, revenue, growth, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.Sales, p.Revenue, p.Growth, nullString(p.Status),
		); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
	}
	for _, c := range ds.Customers {
		if _, err := tx.Exec(
			`INSERT INTO customer_segments (id, segment, customers, revenue, avg_order_value, retention) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Segment, c.Customers, c.Revenue, c.AvgOrderValue, c.Retention,
		); err != nil {
			return fmt.Errorf("failed to insert customer segment %q: %w", c.Segment, err)
		}
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
