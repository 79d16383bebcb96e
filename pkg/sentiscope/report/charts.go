package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

var labelColors = map[post.Sentiment]drawing.Color{
	post.Positive: drawing.ColorFromHex("2ca02c"),
	post.Neutral:  drawing.ColorFromHex("7f7f7f"),
	post.Negative: drawing.ColorFromHex("d62728"),
}

func colorFor(label post.Sentiment) drawing.Color {
	if c, ok := labelColors[label]; ok {
		return c
	}
	return drawing.ColorBlack
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

// RenderDistribution draws one bar per label with its count as a PNG.
func RenderDistribution(w io.Writer, counts []LabelCount) error {
	if len(counts) == 0 {
		return internalerr.ErrNoData
	}
	graph := distributionChart(counts)
	return graph.Render(chart.PNG, w)
}

func distributionChart(counts []LabelCount) chart.BarChart {
	bars := make([]chart.Value, 0, len(counts))
	top := 0
	for _, c := range counts {
		top = max(top, c.Count)
		bars = append(bars, chart.Value{
			Label: string(c.Label),
			Value: float64(c.Count),
			Style: chart.Style{
				FillColor:   colorFor(c.Label),
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		})
	}

	yMax := float64(top)*1.15 + 1
	graph := chart.BarChart{
		Title:      "Sentiment Distribution",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      800,
		Height:     500,
		BarWidth:   120,
		BarSpacing: 60,
		YAxis: chart.YAxis{
			Name:           "Count",
			ValueFormatter: intFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: bars,
	}
	graph.Elements = []chart.Renderable{barCountLabels(graph, yMax)}
	return graph
}

// barCountLabels writes each bar's integer value just above it. Bar
// positions follow the BarChart layout: bars start at the canvas left edge,
// each slot is width+spacing wide, and both shrink to fit a narrow canvas.
func barCountLabels(bc chart.BarChart, yMax float64) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		n := len(bc.Bars)
		if n == 0 || yMax <= 0 {
			return
		}
		width, spacing := barLayout(n, bc.GetBarWidth(), bc.GetBarSpacing(), canvasBox.Width())
		style := chart.Style{
			Font:      defaults.Font,
			FontSize:  12,
			FontColor: drawing.ColorBlack,
		}

		left := canvasBox.Left
		for _, bar := range bc.Bars {
			text := fmt.Sprintf("%.0f", bar.Value)
			tb := chart.Draw.MeasureText(r, text, style)
			barTop := canvasBox.Bottom - int(math.Ceil(bar.Value/yMax*float64(canvasBox.Height())))
			center := left + spacing/2 + width/2
			chart.Draw.Text(r, text, center-tb.Width()/2, barTop-6, style)
			left += width + spacing
		}
	}
}

// barLayout mirrors how BarChart shrinks spacing, then width, when the bars
// do not fit the canvas.
func barLayout(n, width, spacing, canvasWidth int) (int, int) {
	if n*(width+spacing) > canvasWidth {
		if rest := canvasWidth - n*width; rest > 0 {
			spacing = int(math.Ceil(float64(rest) / float64(n)))
		} else {
			spacing = 0
		}
	}
	if n*(width+spacing) > canvasWidth {
		if rest := canvasWidth - n*spacing; rest > 0 {
			width = int(math.Ceil(float64(rest) / float64(n)))
		} else {
			width = 0
		}
	}
	return width, spacing
}

// RenderProportion draws a pie with one slice per label as a PNG.
func RenderProportion(w io.Writer, counts []LabelCount) error {
	if Total(counts) == 0 {
		return internalerr.ErrNoData
	}

	shares := Proportions(counts)
	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Fraction*100),
			Value: float64(counts[i].Count),
			Style: chart.Style{
				FillColor:   colorFor(s.Label),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.PieChart{
		Title:  "Sentiment Proportion",
		Width:  700,
		Height: 700,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

// RenderTrend draws one line per label of posts per day as a PNG.
func RenderTrend(w io.Writer, trend TrendSeries) error {
	if len(trend.Days) == 0 || len(trend.Labels) == 0 {
		return internalerr.ErrNoData
	}

	series := make([]chart.Series, 0, len(trend.Labels))
	for _, label := range trend.Labels {
		ys := make([]float64, len(trend.Days))
		for i, y := range trend.Counts[label] {
			ys[i] = float64(y)
		}
		c := colorFor(label)
		series = append(series, chart.TimeSeries{
			Name: capitalize(string(label)),
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    4,
			},
			XValues: trend.Days,
			YValues: ys,
		})
	}

	first, last := trend.Days[0], trend.Days[len(trend.Days)-1]
	graph := chart.Chart{
		Title:  "Sentiment Trend Over Time",
		Width:  1000,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first.Add(-12 * time.Hour)),
				Max: chart.TimeToFloat64(last.Add(12 * time.Hour)),
			},
		},
		YAxis: chart.YAxis{
			Name:           "Post Count",
			ValueFormatter: intFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(trend.Max()) + 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
