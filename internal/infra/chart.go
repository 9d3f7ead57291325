package infra

import (
	"bytes"
	"fmt"

	"screenstock/internal/dto"

	chart "github.com/wcharczuk/go-chart/v2"
)

// RenderRevenueChart draws the monthly revenue series as a bar chart PNG.
func RenderRevenueChart(buckets []dto.MonthBucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("chart: no revenue data to render")
	}

	bars := make([]chart.Value, 0, len(buckets))
	for _, b := range buckets {
		v, _ := b.Revenue.Float64()
		bars = append(bars, chart.Value{Value: v, Label: b.Month})
	}

	graph := chart.BarChart{
		Title:    "Revenue by month",
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render revenue: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBrandChart draws units sold per brand as a pie chart PNG.
func RenderBrandChart(rows []dto.BrandQuantity) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("chart: no brand data to render")
	}

	values := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		values = append(values, chart.Value{Value: float64(r.Quantity), Label: r.Brand})
	}

	graph := chart.PieChart{
		Title:  "Units sold by brand",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render brands: %w", err)
	}
	return buf.Bytes(), nil
}
