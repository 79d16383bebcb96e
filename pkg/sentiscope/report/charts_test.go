package report

import (
	"bytes"
	"testing"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

func TestBarLayout(t *testing.T) {
	tests := []struct {
		name                 string
		n, width, spacing    int
		canvas               int
		wantWidth, wantSpace int
	}{
		{"fits", 3, 120, 60, 800, 120, 60},
		{"shrinks spacing", 3, 120, 60, 400, 120, 14},
		{"shrinks width", 4, 120, 60, 300, 75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := barLayout(tt.n, tt.width, tt.spacing, tt.canvas)
			if w != tt.wantWidth || s != tt.wantSpace {
				t.Errorf("barLayout = (%d, %d), want (%d, %d)", w, s, tt.wantWidth, tt.wantSpace)
			}
		})
	}
}

func TestDistributionChartDrawsCounts(t *testing.T) {
	counts := []LabelCount{{post.Positive, 5}, {post.Neutral, 2}, {post.Negative, 1}}
	graph := distributionChart(counts)
	if len(graph.Elements) != 1 {
		t.Fatalf("expected a count annotation element, got %d", len(graph.Elements))
	}
	for i, bar := range graph.Bars {
		if bar.Label != string(counts[i].Label) {
			t.Errorf("bar %d label = %q, want %q", i, bar.Label, counts[i].Label)
		}
	}

	var annotated, plain bytes.Buffer
	if err := graph.Render(chart.PNG, &annotated); err != nil {
		t.Fatalf("render: %v", err)
	}
	graph.Elements = nil
	if err := graph.Render(chart.PNG, &plain); err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Equal(annotated.Bytes(), plain.Bytes()) {
		t.Error("count labels should change the rendered image")
	}
}
