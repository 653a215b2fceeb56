// Package weight records body weight measurements and summarises them.
package weight

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of measurement dates.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidWeight is returned for missing or non-positive weights.
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrInvalidTimeframe is returned for unknown timeframe names.
	ErrInvalidTimeframe = errors.New("invalid timeframe")
)

// Entry is one measurement. A user has at most one entry per date.
type Entry struct {
	Date      string  `json:"date" db:"date"`
	Weight    float64 `json:"peso" db:"peso"`
	Note      string  `json:"note" db:"note"`
	Timestamp string  `json:"timestamp" db:"recorded_at"`
}

// Input is the body of a save request.
type Input struct {
	Date   string  `json:"date"`
	Weight float64 `json:"peso"`
	Note   string  `json:"note"`
}

// UnmarshalJSON accepts peso as a number or a numeric string.
func (in *Input) UnmarshalJSON(data []byte) error {
	type Alias Input
	aux := &struct {
		Weight json.RawMessage `json:"peso"`
		*Alias
	}{
		Alias: (*Alias)(in),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s := strings.TrimSpace(string(aux.Weight))
	if s == "" || s == "null" {
		in.Weight = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(aux.Weight, &str); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", ".")
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	in.Weight = w
	return nil
}

// Validate checks the date format and the weight.
func (in Input) Validate() error {
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	if in.Weight <= 0 || math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, in.Weight)
	}
	return nil
}

// Record is the per-date payload of the GET /api/pesate map.
type Record struct {
	Weight    float64 `json:"peso"`
	Timestamp string  `json:"timestamp"`
	Note      string  `json:"note"`
}

// ToMap keys entries by date.
func ToMap(entries []Entry) map[string]Record {
	m := make(map[string]Record, len(entries))
	for _, e := range entries {
		m[e.Date] = Record{Weight: e.Weight, Timestamp: e.Timestamp, Note: e.Note}
	}
	return m
}

// Timeframe restricts the window the range metrics are computed on.
type Timeframe string

// Supported timeframes.
const (
	Week  Timeframe = "settimana"
	Month Timeframe = "mese"
	All   Timeframe = "tutto"
)

// ParseTimeframe maps a query value to a Timeframe. Empty means Week.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return Week, nil
	case Week, Month, All:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, s)
	}
}

func (tf Timeframe) window() time.Duration {
	switch tf {
	case Week:
		return 7 * 24 * time.Hour
	case Month:
		return 30 * 24 * time.Hour
	}
	return 0
}

// Metrics summarises a user's measurements. Initial, Current, Difference and
// Percentage cover every entry; Min, Max and Mean cover only the timeframe
// and are nil when it holds no entry.
type Metrics struct {
	Initial    float64   `json:"peso_iniziale"`
	Current    float64   `json:"peso_attuale"`
	Difference float64   `json:"differenza"`
	Percentage float64   `json:"percentuale"`
	Min        *float64  `json:"peso_min"`
	Max        *float64  `json:"peso_max"`
	Mean       *float64  `json:"media"`
	Timeframe  Timeframe `json:"timeframe"`
	Entries    []Entry   `json:"entries"`
}

// ComputeMetrics returns nil when there are no entries.
func ComputeMetrics(entries []Entry, tf Timeframe, now time.Time) *Metrics {
	if len(entries) == 0 {
		return nil
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	m := &Metrics{
		Initial:   sorted[0].Weight,
		Current:   sorted[len(sorted)-1].Weight,
		Timeframe: tf,
		Entries:   []Entry{},
	}
	m.Difference = m.Current - m.Initial
	m.Percentage = round(m.Difference/m.Initial*100, 2)

	var since time.Time
	if w := tf.window(); w > 0 {
		since = now.Add(-w)
	}
	var sum float64
	for _, e := range sorted {
		if !since.IsZero() {
			d, err := time.Parse(DateLayout, e.Date)
			if err != nil || d.Before(since) {
				continue
			}
		}
		m.Entries = append(m.Entries, e)
		w := e.Weight
		if m.Min == nil || w < *m.Min {
			m.Min = &w
		}
		if m.Max == nil || w > *m.Max {
			m.Max = &w
		}
		sum += w
	}
	if n := len(m.Entries); n > 0 {
		mean := round(sum/float64(n), 1)
		m.Mean = &mean
	}
	return m
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
