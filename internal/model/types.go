package model

import (
	"time"

	"vista/internal/record"
)

// Trend is the direction of a KPI change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// KPI represents a headline metric card.
type KPI struct {
	ID     int64
	Title  string
	Value  float64
	Change float64 // percent versus previous period
	Trend  Trend
	Prefix string
	Suffix string
}

// TrendPoint is one month of revenue and profit.
type TrendPoint struct {
	Month   string
	Revenue float64
	Profit  float64
}

// MonthlyOrders is one month of order volume.
type MonthlyOrders struct {
	Month  string
	Orders int64
}

// CategorySales is the revenue share of a product category.
type CategorySales struct {
	Name  string
	Value float64
	Color string // hex, e.g. #0ea5e9
}

// RevenueExpense is one month of revenue against expenses.
type RevenueExpense struct {
	Month    string
	Revenue  float64
	Expenses float64
}

// Product represents a row in the product performance table.
type Product struct {
	ID       int64
	Name     string
	Category string
	Sales    int64
	Revenue  float64
	Growth   float64
	Status   string // trending, stable, declining
}

// Record converts the product to a generic table row.
func (p Product) Record() record.Row {
	return record.Row{
		"id":       record.Int(p.ID),
		"name":     record.Str(p.Name),
		"category": record.Str(p.Category),
		"sales":    record.Int(p.Sales),
		"revenue":  record.Num(p.Revenue),
		"growth":   record.Num(p.Growth),
		"status":   record.Str(p.Status),
	}
}

// CustomerSegment represents a row in the customer segments table.
type CustomerSegment struct {
	ID            int64
	Segment       string
	Customers     int64
	Revenue       float64
	AvgOrderValue float64
	Retention     float64
}

// Record converts the segment to a generic table row.
func (c CustomerSegment) Record() record.Row {
	return record.Row{
		"id":            record.Int(c.ID),
		"segment":       record.Str(c.Segment),
		"customers":     record.Int(c.Customers),
		"revenue":       record.Num(c.Revenue),
		"avgOrderValue": record.Num(c.AvgOrderValue),
		"retention":     record.Num(c.Retention),
	}
}

// Dataset bundles everything the dashboard renders.
type Dataset struct {
	KPIs              []KPI
	RevenueTrends     []TrendPoint
	MonthlyOrders     []MonthlyOrders
	SalesByCategory   []CategorySales
	RevenueVsExpenses []RevenueExpense
	Products          []Product
	Customers         []CustomerSegment
}

// ProductRecords converts every product to a table row.
func (d Dataset) ProductRecords() []record.Row {
	out := make([]record.Row, len(d.Products))
	for i, p := range d.Products {
		out[i] = p.Record()
	}
	return out
}

// CustomerRecords converts every customer segment to a table row.
func (d Dataset) CustomerRecords() []record.Row {
	out := make([]record.Row, len(d.Customers))
	for i, c := range d.Customers {
		out[i] = c.Record()
	}
	return out
}

// ExportRecord is an audit entry for a CSV export.
type ExportRecord struct {
	ID        string // uuid
	Board     string
	Rows      int
	Path      string // empty when the export went to the clipboard or stdout
	Mode      string
	CreatedAt time.Time
}
