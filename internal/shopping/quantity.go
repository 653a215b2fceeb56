package shopping

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Unit is a shopping-list measurement symbol.
type Unit string

// Known units, in display order.
const (
	Grams  Unit = "g"
	Pieces Unit = "pz"
	Cups   Unit = "tazz."
	Spoons Unit = "cucchiaini"
)

// Units lists the known units in display order.
var Units = []Unit{Grams, Pieces, Cups, Spoons}

// Amount is a parsed quantity.
type Amount struct {
	Unit  Unit
	Value float64
}

// Quantities accumulates amounts per unit.
type Quantities map[Unit]float64

// Add sums a into q.
func (q Quantities) Add(a Amount) {
	q[a.Unit] += a.Value
}

// units returns the units present in q, known units first in display order.
func (q Quantities) units() []Unit {
	out := make([]Unit, 0, len(q))
	for _, u := range Units {
		if _, ok := q[u]; ok {
			out = append(out, u)
		}
	}
	var extra []Unit
	for u := range q {
		if unitIndex(u) < 0 {
			extra = append(extra, u)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func unitIndex(u Unit) int {
	for i, known := range Units {
		if known == u {
			return i
		}
	}
	return -1
}

// A leading integer must not continue another number or be the denominator
// of a fraction, so "1/2 cucchiaio" is left to the fraction rule.
const wholeNumber = `(?:^|[^\d/])(\d+)`

// quantityRule reads one unit out of a lower-cased quantity string.
type quantityRule struct {
	unit    Unit
	pattern *regexp.Regexp
	extract func(s string, m []string) (float64, bool)
}

// rules are evaluated in order; the first match wins.
var rules = []quantityRule{
	{unit: Grams, pattern: regexp.MustCompile(wholeNumber + `\s*g`), extract: firstInteger},
	{unit: Pieces, pattern: regexp.MustCompile(`(?:^|[^\pL])n[°º.]?\s*(\d+)|` + wholeNumber + `\s*pz`), extract: firstInteger},
	{unit: Cups, pattern: regexp.MustCompile(wholeNumber + `\s*tazzin`), extract: firstInteger},
	{unit: Spoons, pattern: regexp.MustCompile(wholeNumber + `\s*cucchiai`), extract: firstInteger},
	{unit: Spoons, pattern: regexp.MustCompile(`(\d+)\s*/\s*(\d+)`), extract: spoonFraction},
}

// ParseQuantity reads a free-text quantity such as "150 g", "n°2" or
// "1/2 cucchiaio". Matching ignores case. Strings no rule recognises
// report false.
func ParseQuantity(s string) (Amount, bool) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return Amount{}, false
	}
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(str)
		if m == nil {
			continue
		}
		v, ok := r.extract(str, m)
		if !ok {
			continue
		}
		return Amount{Unit: r.unit, Value: v}, true
	}
	return Amount{}, false
}

func firstInteger(_ string, m []string) (float64, bool) {
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func spoonFraction(s string, m []string) (float64, bool) {
	if !strings.Contains(s, "cucchiai") {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(m[2], 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// FormatQuantities renders q as "200 g, 2 pz". Values below one keep a
// decimal; larger values are rounded up to a whole number.
func FormatQuantities(q Quantities) string {
	parts := make([]string, 0, len(q))
	for _, u := range q.units() {
		v := q[u]
		var value string
		if v < 1 {
			value = strconv.FormatFloat(v, 'f', 1, 64)
		} else {
			value = strconv.FormatFloat(math.Ceil(v), 'f', 0, 64)
		}
		parts = append(parts, value+" "+string(u))
	}
	return strings.Join(parts, ", ")
}
