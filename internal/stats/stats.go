// Package stats computes rating averages and 7-day trend buckets.
//
// A day's average only counts positive ratings, and the weekly and total
// averages only count days whose own average is positive. An unrated day
// therefore never pulls an average toward zero. Every function returns 0
// when there is nothing to average.
package stats

import (
	"math"
	"time"

	"github.com/nibzard/dayrate/internal/tracker"
)

// WindowDays is the length of the trailing window used for weekly figures.
const WindowDays = 7

// MaxBucket is the highest trend bucket.
const MaxBucket = 8

// sparkGlyphs maps a bucket to its sparkline glyph.
var sparkGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// DailyAverage returns the mean of the positive ratings recorded on date.
func DailyAverage(ratings tracker.Ratings, date string) float64 {
	return mean(ratings[date])
}

func mean(day map[string]int) float64 {
	sum, n := 0, 0
	for _, v := range day {
		if v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// WeeklyAverage averages the daily averages of the seven days ending at date,
// skipping days without data.
func WeeklyAverage(ratings tracker.Ratings, date time.Time) float64 {
	var sum float64
	n := 0
	for _, day := range window(date) {
		if v := DailyAverage(ratings, day); v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TotalAverage averages the daily averages of every recorded date,
// skipping days without data.
func TotalAverage(ratings tracker.Ratings) float64 {
	var sum float64
	n := 0
	for date := range ratings {
		if v := DailyAverage(ratings, date); v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// WorkspaceAverage returns the mean of the positive ratings on date whose
// task belongs to workspace.
func WorkspaceAverage(ratings tracker.Ratings, tasks map[string]tracker.Task, date, workspace string) float64 {
	sum, n := 0, 0
	for id, v := range ratings[date] {
		t, ok := tasks[id]
		if !ok || t.Workspace != workspace || v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Trend returns the daily averages of the seven days ending at date,
// oldest first. Unrated days are 0.
func Trend(ratings tracker.Ratings, date time.Time) [WindowDays]float64 {
	var out [WindowDays]float64
	for i, day := range window(date) {
		out[i] = DailyAverage(ratings, day)
	}
	return out
}

// TrendBuckets quantizes Trend into buckets 0..8.
func TrendBuckets(ratings tracker.Ratings, date time.Time) [WindowDays]int {
	var out [WindowDays]int
	for i, v := range Trend(ratings, date) {
		out[i] = Bucket(v)
	}
	return out
}

// Bucket maps a rating in [0,5] to an intensity level in [0,8].
func Bucket(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	b := int(math.Floor((v / 5) * MaxBucket))
	if b < 0 {
		return 0
	}
	if b > MaxBucket {
		return MaxBucket
	}
	return b
}

// Sparkline renders buckets as block glyphs, blank for 0.
func Sparkline(buckets [WindowDays]int) string {
	out := make([]rune, 0, len(buckets))
	for _, b := range buckets {
		if b < 0 {
			b = 0
		}
		if b > MaxBucket {
			b = MaxBucket
		}
		out = append(out, sparkGlyphs[b])
	}
	return string(out)
}

// Summary holds the headline figures for one selected date.
type Summary struct {
	Date  string
	Day   float64
	Week  float64
	Total float64
	Trend [WindowDays]int
}

// Summarize computes the day, week, and total averages plus the trend for date.
func Summarize(ratings tracker.Ratings, date time.Time) Summary {
	day := tracker.FormatDate(date)
	return Summary{
		Date:  day,
		Day:   DailyAverage(ratings, day),
		Week:  WeeklyAverage(ratings, date),
		Total: TotalAverage(ratings),
		Trend: TrendBuckets(ratings, date),
	}
}

// window returns the seven date keys ending at date, oldest first.
func window(date time.Time) [WindowDays]string {
	var out [WindowDays]string
	for i := 0; i < WindowDays; i++ {
		out[i] = tracker.FormatDate(date.AddDate(0, 0, i-(WindowDays-1)))
	}
	return out
}
