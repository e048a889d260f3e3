package render

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"playstore-dashboard/models"
)

// ErrNothingToDraw is returned for results without any plottable rows.
var ErrNothingToDraw = errors.New("nothing to draw")

// ErrNotRenderable is returned when the result's viewing window is closed.
var ErrNotRenderable = errors.New("result is outside its viewing window")

const (
	chartWidth  = 1000
	chartHeight = 600
)

var (
	sentimentColors = map[string]drawing.Color{
		models.SentimentPositive: drawing.ColorFromHex("4caf50"),
		models.SentimentNeutral:  drawing.ColorFromHex("ffeb3b"),
		models.SentimentNegative: drawing.ColorFromHex("f44336"),
	}
	highlightColors = map[string]drawing.Color{
		models.LabelAbove1M: drawing.ColorFromHex("FF5733"),
		models.LabelBelow1M: drawing.ColorFromHex("4caf50"),
	}
	categoryColors = map[string]drawing.Color{
		"ENTERTAINMENT": drawing.ColorFromHex("FF5733"),
		"COMMUNICATION": drawing.ColorFromHex("4caf50"),
		"BUSINESS":      drawing.ColorFromHex("6C63FF"),
	}
	significantColor = drawing.ColorFromHex("FFD700")
	plotBackground   = drawing.ColorFromHex("f0f2f6")
)

// Chart draws res as a PNG into w.
func Chart(w io.Writer, res *models.Result) error {
	if !res.Renderable {
		return ErrNotRenderable
	}
	switch {
	case res.Sentiment != nil:
		return sentimentChart(w, res.Sentiment)
	case res.Installs != nil:
		return installsChart(w, res.Installs)
	case res.Trend != nil:
		return trendChart(w, res.Trend)
	}
	return ErrNothingToDraw
}

func sentimentChart(w io.Writer, tallies []models.SentimentTally) error {
	var bars []chart.StackedBar
	for _, t := range tallies {
		if t.Total() == 0 {
			continue
		}
		bar := chart.StackedBar{Name: fmt.Sprintf("%s %s", t.Category, t.RatingGroup)}
		for _, s := range []struct {
			label string
			n     int
		}{
			{models.SentimentPositive, t.Positive},
			{models.SentimentNeutral, t.Neutral},
			{models.SentimentNegative, t.Negative},
		} {
			if s.n == 0 {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Label: s.label,
				Value: float64(s.n),
				Style: chart.Style{FillColor: sentimentColors[s.label], StrokeColor: sentimentColors[s.label]},
			})
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return ErrNothingToDraw
	}

	sbc := chart.StackedBarChart{
		Title:      "Sentiment Distribution by Rating Group (Top 5 Categories)",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60, Bottom: 40}},
		Canvas:     chart.Style{FillColor: plotBackground},
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.Style{},
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

func installsChart(w io.Writer, summaries []models.CategorySummary) error {
	if len(summaries) == 0 {
		return ErrNothingToDraw
	}

	var top float64
	bars := make([]chart.Value, 0, len(summaries))
	for _, s := range summaries {
		v := float64(s.Installs)
		if v > top {
			top = v
		}
		col := highlightColors[s.HighlightLabel]
		bars = append(bars, chart.Value{
			Label: s.Category,
			Value: v,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}
	if top <= 0 {
		top = 1
	}

	bc := chart.BarChart{
		Title:      "App Installs by Category (Highlight: Above 1M)",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60}},
		Canvas:     chart.Style{FillColor: plotBackground},
		BarWidth:   60,
		YAxis: chart.YAxis{
			Name:  "Total Installs",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func trendChart(w io.Writer, series []models.MonthlyCategorySeries) error {
	type line struct {
		xs []time.Time
		ys []float64
		sx []time.Time
		sy []float64
	}
	lines := make(map[string]*line)
	distinct := make(map[time.Time]struct{})
	var top float64

	for _, p := range series {
		// undated rows have no place on a time axis
		if !p.YearMonth.Valid {
			continue
		}
		l, ok := lines[p.Category]
		if !ok {
			l = &line{}
			lines[p.Category] = l
		}
		x, y := p.YearMonth.Time(), float64(p.Installs)
		l.xs, l.ys = append(l.xs, x), append(l.ys, y)
		if p.Significant {
			l.sx, l.sy = append(l.sx, x), append(l.sy, y)
		}
		distinct[x] = struct{}{}
		if y > top {
			top = y
		}
	}
	if len(lines) == 0 {
		return ErrNothingToDraw
	}
	if top <= 0 {
		top = 1
	}

	categories := make([]string, 0, len(lines))
	for c := range lines {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var out []chart.Series
	for i, c := range categories {
		l := lines[c]
		xs, ys := l.xs, l.ys
		if len(distinct) == 1 {
			// a single period gives a zero-width x range; stretch it by a month
			xs = append(xs, xs[0].AddDate(0, 1, 0))
			ys = append(ys, ys[0])
		}
		col, ok := categoryColors[c]
		if !ok {
			col = chart.GetDefaultColor(i)
		}
		out = append(out, chart.TimeSeries{
			Name:    c,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 2},
		})
		if len(l.sx) > 0 {
			out = append(out, chart.TimeSeries{
				Name:    c + " (>20% MoM)",
				XValues: l.sx,
				YValues: l.sy,
				Style:   pointStyle(significantColor),
			})
		}
	}

	ch := chart.Chart{
		Title:      "Total Installs Over Time by App Category",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: plotBackground},
		XAxis: chart.XAxis{
			Name:           "Month",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			Name:  "Total Installs",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Series: out,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
