package diet

import (
	"math"
	"time"
)

// Days lists the day keys in calendar order, Monday first.
var Days = []string{"lunedi", "martedi", "mercoledi", "giovedi", "venerdi", "sabato", "domenica"}

// Meals lists the meal keys in the order they are eaten.
var Meals = []string{"colazione", "spuntino_meta_mattina", "pranzo", "merenda", "cena", "nell_arco_della_giornata"}

var dayNames = map[string]string{
	"lunedi":    "Lunedì",
	"martedi":   "Martedì",
	"mercoledi": "Mercoledì",
	"giovedi":   "Giovedì",
	"venerdi":   "Venerdì",
	"sabato":    "Sabato",
	"domenica":  "Domenica",
}

var mealNames = map[string]string{
	"colazione":                "Colazione",
	"spuntino_meta_mattina":    "Spuntino",
	"pranzo":                   "Pranzo",
	"merenda":                  "Merenda",
	"cena":                     "Cena",
	"nell_arco_della_giornata": "Nell'arco della giornata",
}

// DayIndex returns the calendar position of a day key, or -1.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// MealIndex returns the position of a meal key in the day, or -1.
func MealIndex(meal string) int {
	for i, m := range Meals {
		if m == meal {
			return i
		}
	}
	return -1
}

// DayName returns the display name of a day key, or the key itself.
func DayName(day string) string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return day
}

// MealName returns the display name of a meal key, or the key itself.
func MealName(meal string) string {
	if name, ok := mealNames[meal]; ok {
		return name
	}
	return meal
}

// DayOfWeek returns the day key for t.
func DayOfWeek(t time.Time) string {
	// time.Weekday starts on Sunday.
	return Days[(int(t.Weekday())+6)%7]
}

// CurrentMeal returns the meal key for the hour of t. Outside meal hours
// (23:00 to 06:00) it returns "".
func CurrentMeal(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 10:
		return "colazione"
	case h >= 10 && h < 12:
		return "spuntino_meta_mattina"
	case h >= 12 && h < 15:
		return "pranzo"
	case h >= 15 && h < 18:
		return "merenda"
	case h >= 18 && h < 23:
		return "cena"
	}
	return ""
}

// IsPastMeal reports whether meal comes before the current meal at t.
func IsPastMeal(meal string, t time.Time) bool {
	return MealIndex(meal) < MealIndex(CurrentMeal(t))
}

// WeeksSinceStart returns the 1-based plan week for now, cycling through
// cycle weeks starting from start. A zero start yields week 1.
func WeeksSinceStart(start, now time.Time, cycle int) int {
	if start.IsZero() || cycle < 1 {
		return 1
	}
	diff := now.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	return (days/7)%cycle + 1
}
