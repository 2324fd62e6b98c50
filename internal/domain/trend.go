package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when a trend needs more distinct categories.
var ErrInsufficientData = errors.New("insufficient data for trend")

// TrendPoint is one category of the trend fit.
type TrendPoint struct {
	Category  string  `json:"category"`
	Ordinal   int     `json:"ordinal"`
	Count     int     `json:"count"`
	Predicted float64 `json:"predicted"`
}

// TrendModel is an ordinary least-squares line count = Slope*ordinal + Intercept.
type TrendModel struct {
	Points      []TrendPoint `json:"points"`
	Slope       float64      `json:"slope"`
	Intercept   float64      `json:"intercept"`
	Correlation float64      `json:"correlation"` // Pearson r of actual vs predicted counts
}

// Predict evaluates the fitted line at an ordinal.
func (m TrendModel) Predict(ordinal int) float64 {
	return m.Slope*float64(ordinal) + m.Intercept
}

// EncodeOrdinals assigns each distinct category its 0-based position in
// alphabetical order.
func EncodeOrdinals(categories []string) map[string]int {
	sorted := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !seen[c] {
			seen[c] = true
			sorted = append(sorted, c)
		}
	}
	sort.Strings(sorted)

	enc := make(map[string]int, len(sorted))
	for i, c := range sorted {
		enc[c] = i
	}
	return enc
}

// FitTrend regresses counts on the ordinal encoding of their categories and
// reports the correlation between actual and predicted counts. It needs at
// least two distinct categories.
func FitTrend(rows []CountRow) (TrendModel, error) {
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.Category
	}
	enc := EncodeOrdinals(categories)
	if len(enc) < 2 || len(enc) != len(rows) {
		return TrendModel{}, fmt.Errorf("fit trend: %w: %d distinct categories in %d rows", ErrInsufficientData, len(enc), len(rows))
	}

	points := make([]TrendPoint, len(rows))
	for i, r := range rows {
		points[i] = TrendPoint{Category: r.Category, Ordinal: enc[r.Category], Count: r.Count}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Ordinal < points[j].Ordinal })

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = float64(p.Ordinal)
		y[i] = float64(p.Count)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	model := TrendModel{Slope: slope, Intercept: intercept}

	predicted := make([]float64, len(points))
	for i := range points {
		points[i].Predicted = model.Predict(points[i].Ordinal)
		predicted[i] = points[i].Predicted
	}
	model.Points = points

	// A constant series has no defined correlation.
	r := stat.Correlation(y, predicted, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 0
	}
	model.Correlation = math.Max(-1, math.Min(1, r))
	return model, nil
}
