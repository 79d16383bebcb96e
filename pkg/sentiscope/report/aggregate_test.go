package report

import (
	"errors"
	"testing"
	"time"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

func labeled(id, date string, s post.Sentiment) post.LabeledPost {
	return post.LabeledPost{
		CleanedPost: post.CleanedPost{ID: id, Date: date, CleanedContent: "x"},
		Sentiment:   s,
	}
}

func TestCountsFirstAppearanceOrder(t *testing.T) {
	posts := []post.LabeledPost{
		labeled("1", "", post.Neutral),
		labeled("2", "", post.Positive),
		labeled("3", "", post.Neutral),
		labeled("4", "", post.Neutral),
	}
	counts := Counts(posts)
	if len(counts) != 2 {
		t.Fatalf("expected 2 labels, got %+v", counts)
	}
	if counts[0] != (LabelCount{post.Neutral, 3}) || counts[1] != (LabelCount{post.Positive, 1}) {
		t.Errorf("unexpected counts %+v", counts)
	}
	if Total(counts) != len(posts) {
		t.Errorf("Total = %d, want %d", Total(counts), len(posts))
	}
}

func TestProportions(t *testing.T) {
	shares := Proportions([]LabelCount{{post.Positive, 1}, {post.Negative, 3}})
	if shares[0].Fraction != 0.25 || shares[1].Fraction != 0.75 {
		t.Errorf("unexpected shares %+v", shares)
	}
	if got := Proportions(nil); len(got) != 0 {
		t.Errorf("expected no shares, got %+v", got)
	}
}

func TestTrendGroupsByDay(t *testing.T) {
	posts := []post.LabeledPost{
		labeled("1", "2024-01-01 09:00:00", post.Positive),
		labeled("2", "2024-01-01T23:59:00Z", post.Positive),
		labeled("3", "2024-01-03", post.Negative),
		labeled("4", "2024-01-01", post.Negative),
	}
	trend, err := Trend(posts)
	if err != nil {
		t.Fatalf("Trend: %v", err)
	}
	if len(trend.Days) != 2 {
		t.Fatalf("expected 2 days, got %v", trend.Days)
	}
	if !trend.Days[0].Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day = %v", trend.Days[0])
	}
	if len(trend.Labels) != 2 || trend.Labels[0] != post.Negative || trend.Labels[1] != post.Positive {
		t.Errorf("labels should follow class order, got %v", trend.Labels)
	}
	if got := trend.Counts[post.Positive]; got[0] != 2 || got[1] != 0 {
		t.Errorf("positive counts = %v", got)
	}
	if got := trend.Counts[post.Negative]; got[0] != 1 || got[1] != 1 {
		t.Errorf("negative counts = %v", got)
	}
	if trend.Max() != 2 {
		t.Errorf("Max = %d, want 2", trend.Max())
	}
}

func TestTrendUnparseableDate(t *testing.T) {
	posts := []post.LabeledPost{
		labeled("1", "2024-01-01", post.Positive),
		labeled("2", "n/a", post.Neutral),
	}
	if _, err := Trend(posts); !errors.Is(err, internalerr.ErrDateParse) {
		t.Fatalf("expected ErrDateParse, got %v", err)
	}
}

func TestTrendEmptyDate(t *testing.T) {
	posts := []post.LabeledPost{labeled("1", "", post.Positive)}
	if _, err := Trend(posts); !errors.Is(err, internalerr.ErrDateParse) {
		t.Fatalf("expected ErrDateParse, got %v", err)
	}
}

func TestTrendNoPosts(t *testing.T) {
	if _, err := Trend(nil); !errors.Is(err, internalerr.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
