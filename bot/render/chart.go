package render

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// UsersByDay renders a time series of daily registrations as PNG. Input
// maps day (any time within it) to a count; days are plotted sorted.
func UsersByDay(byDay map[time.Time]int) ([]byte, error) {
	if len(byDay) == 0 {
		return nil, fmt.Errorf("render: no data points")
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	xValues := make([]time.Time, len(days))
	yValues := make([]float64, len(days))
	for i, day := range days {
		xValues[i] = day
		yValues[i] = float64(byDay[day])
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "users",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	var out bytes.Buffer
	if err := graph.Render(chart.PNG, &out); err != nil {
		return nil, fmt.Errorf("render: chart: %w", err)
	}
	return out.Bytes(), nil
}

// BucketByDay folds timestamps into day buckets in UTC.
func BucketByDay(stamps []time.Time) map[time.Time]int {
	byDay := make(map[time.Time]int, len(stamps))
	for _, ts := range stamps {
		if ts.IsZero() {
			continue
		}
		day := ts.UTC().Truncate(24 * time.Hour)
		byDay[day]++
	}
	return byDay
}
