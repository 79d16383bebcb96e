package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
)

// LabelCount is the number of posts carrying one sentiment label.
type LabelCount struct {
	Label post.Sentiment
	Count int
}

// Counts tallies posts per label. Labels appear in the order they are first
// observed; labels with no posts are omitted.
func Counts(posts []post.LabeledPost) []LabelCount {
	var out []LabelCount
	index := make(map[post.Sentiment]int)
	for _, p := range posts {
		i, ok := index[p.Sentiment]
		if !ok {
			i = len(out)
			index[p.Sentiment] = i
			out = append(out, LabelCount{Label: p.Sentiment})
		}
		out[i].Count++
	}
	return out
}

// Total sums the counts.
func Total(counts []LabelCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

// Share is one label's fraction of all posts.
type Share struct {
	Label    post.Sentiment
	Fraction float64
}

// Proportions converts counts to fractions of the total.
func Proportions(counts []LabelCount) []Share {
	total := Total(counts)
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		frac := 0.0
		if total > 0 {
			frac = float64(c.Count) / float64(total)
		}
		out = append(out, Share{Label: c.Label, Fraction: frac})
	}
	return out
}

// TrendSeries holds per-day post counts for each observed label.
// Counts[label][i] is the number of posts with that label on Days[i].
type TrendSeries struct {
	Days   []time.Time
	Labels []post.Sentiment
	Counts map[post.Sentiment][]int
}

// Max returns the largest single-day count.
func (t TrendSeries) Max() int {
	m := 0
	for _, ys := range t.Counts {
		for _, y := range ys {
			m = max(m, y)
		}
	}
	return m
}

// Trend groups posts by calendar day and label. Every post must carry a
// parseable date; otherwise ErrDateParse is returned.
func Trend(posts []post.LabeledPost) (TrendSeries, error) {
	if len(posts) == 0 {
		return TrendSeries{}, internalerr.ErrNoData
	}

	perDay := make(map[time.Time]map[post.Sentiment]int)
	seen := make(map[post.Sentiment]bool)
	for i, p := range posts {
		day, err := ParseDay(p.Date)
		if err != nil {
			return TrendSeries{}, fmt.Errorf("post %d (id %q): %w", i, p.ID, err)
		}
		if perDay[day] == nil {
			perDay[day] = make(map[post.Sentiment]int)
		}
		perDay[day][p.Sentiment]++
		seen[p.Sentiment] = true
	}

	days := make([]time.Time, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var labels []post.Sentiment
	for _, l := range post.Labels() {
		if seen[l] {
			labels = append(labels, l)
		}
	}
	// Labels outside the known set sort after it, alphabetically.
	var extra []post.Sentiment
	for l := range seen {
		if l.Index() < 0 {
			extra = append(extra, l)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	labels = append(labels, extra...)

	counts := make(map[post.Sentiment][]int, len(labels))
	for _, l := range labels {
		ys := make([]int, len(days))
		for i, d := range days {
			ys[i] = perDay[d][l]
		}
		counts[l] = ys
	}

	return TrendSeries{Days: days, Labels: labels, Counts: counts}, nil
}

// ParseDay parses a post date and truncates it to its calendar day, taken in
// the timestamp's own zone. The result is expressed as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", internalerr.ErrDateParse)
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", internalerr.ErrDateParse, s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
