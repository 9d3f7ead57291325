package dto

import "github.com/shopspring/decimal"

// SummaryResponse mirrors the dashboard of the statistics page: entity
// counts plus the revenue/cost/profit totals over all sales.
type SummaryResponse struct {
	Brands    int64 `json:"brands"`
	Items     int64 `json:"items"`
	Customers int64 `json:"customers"`
	Sales     int64 `json:"sales"`
	LowStock  int   `json:"low_stock"`

	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// MonthBucket is one calendar month of revenue. Month is "YYYY-MM"; buckets
// are always returned in chronological order.
type MonthBucket struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// BrandQuantity is the total units sold for one brand.
type BrandQuantity struct {
	Brand    string `json:"brand"`
	Quantity int    `json:"quantity"`
}

// ForecastResponse carries the OLS extrapolation. When fewer than two
// distinct month buckets exist no line is fitted and InsufficientData is
// true with an empty Points slice.
type ForecastResponse struct {
	InsufficientData bool          `json:"insufficient_data"`
	Points           []MonthBucket `json:"points"`
}
