package db

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vista/internal/model"
)

// LoadDataset reads every dashboard dataset. The queries run concurrently;
// the first failure cancels the rest.
func LoadDataset(ctx context.Context, db *sql.DB) (model.Dataset, error) {
	var ds model.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ds.KPIs, err = ListKPIs(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.RevenueTrends, err = ListRevenueTrends(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.MonthlyOrders, err = ListMonthlyOrders(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.SalesByCategory, err = ListSalesByCategory(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.RevenueVsExpenses, err = ListRevenueVsExpenses(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.Products, err = ListProducts(ctx, db)
		return err
	})
	g.Go(func() (err error) {
		ds.Customers, err = ListCustomerSegments(ctx, db)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// ListKPIs retrieves the KPI cards in id order.
func ListKPIs(ctx context.Context, db *sql.DB) ([]model.KPI, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, value, change, trend, prefix, suffix
		FROM kpis
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	defer rows.Close()

	var results []model.KPI
	for rows.Next() {
		var k model.KPI
		var trend sql.NullString
		if err := rows.Scan(&k.ID, &k.Title, &k.Value, &k.Change, &trend, &k.Prefix, &k.Suffix); err != nil {
			return nil, fmt.Errorf("failed to scan kpi row: %w", err)
		}
		if trend.Valid {
			k.Trend = model.Trend(trend.String)
		}
		results = append(results, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kpi rows: %w", err)
	}
	return results, nil
}

// ListRevenueTrends retrieves monthly revenue and profit.
func ListRevenueTrends(ctx context.Context, db *sql.DB) ([]model.TrendPoint, error) {
	rows, err := db.QueryContext(ctx, `SELECT month, revenue, profit FROM revenue_trends ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue trends: %w", err)
	}
	defer rows.Close()

	var results []model.TrendPoint
	for rows.Next() {
		var p model.TrendPoint
		if err := rows.Scan(&p.Month, &p.Revenue, &p.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan revenue trend row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue trend rows: %w", err)
	}
	return results, nil
}

// ListMonthlyOrders retrieves monthly order counts.
func ListMonthlyOrders(ctx context.Context, db *sql.DB) ([]model.MonthlyOrders, error) {
	rows, err := db.QueryContext(ctx, `SELECT month, orders FROM monthly_orders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly orders: %w", err)
	}
	defer rows.Close()

	var results []model.MonthlyOrders
	for rows.Next() {
		var o model.MonthlyOrders
		if err := rows.Scan(&o.Month, &o.Orders); err != nil {
			return nil, fmt.Errorf("failed to scan monthly orders row: %w", err)
		}
		results = append(results, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly orders rows: %w", err)
	}
	return results, nil
}

// ListSalesByCategory retrieves revenue per product category.
func ListSalesByCategory(ctx context.Context, db *sql.DB) ([]model.CategorySales, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, value, color FROM sales_by_category ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales by category: %w", err)
	}
	defer rows.Close()

	var results []model.CategorySales
	for rows.Next() {
		var c model.CategorySales
		if err := rows.Scan(&c.Name, &c.Value, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category sales row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category sales rows: %w", err)
	}
	return results, nil
}

// ListRevenueVsExpenses retrieves monthly revenue against expenses.
func ListRevenueVsExpenses(ctx context.Context, db *sql.DB) ([]model.RevenueExpense, error) {
	rows, err := db.QueryContext(ctx, `SELECT month, revenue, expenses FROM revenue_vs_expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue vs expenses: %w", err)
	}
	defer rows.Close()

	var results []model.RevenueExpense
	for rows.Next() {
		var r model.RevenueExpense
		if err := rows.Scan(&r.Month, &r.Revenue, &r.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan revenue vs expenses row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue vs expenses rows: %w", err)
	}
	return results, nil
}

// ListProducts retrieves the product table in id order.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, category, sales, revenue, growth, status
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var results []model.Product
	for rows.Next() {
		var p model.Product
		var status sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Sales, &p.Revenue, &p.Growth, &status); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		if status.Valid {
			p.Status = status.String
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return results, nil
}

// ListCustomerSegments retrieves the customer segments table in id order.
func ListCustomerSegments(ctx context.Context, db *sql.DB) ([]model.CustomerSegment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, segment, customers, revenue, avg_order_value, retention
		FROM customer_segments
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer segments: %w", err)
	}
	defer rows.Close()

	var results []model.CustomerSegment
	for rows.Next() {
		var c model.CustomerSegment
		if err := rows.Scan(&c.ID, &c.Segment, &c.Customers, &c.Revenue, &c.AvgOrderValue, &c.Retention); err != nil {
			return nil, fmt.Errorf("failed to scan customer segment row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer segment rows: %w", err)
	}
	return results, nil
}
