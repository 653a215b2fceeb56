package diet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2024, time.March, 4, hour, 30, 0, 0, time.UTC)
}

func TestDayOfWeek(t *testing.T) {
	// 4 March 2024 is a Monday.
	monday := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "lunedi", DayOfWeek(monday))
	assert.Equal(t, "sabato", DayOfWeek(monday.AddDate(0, 0, 5)))
	assert.Equal(t, "domenica", DayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestCurrentMeal(t *testing.T) {
	tests := map[int]string{
		5:  "",
		6:  "colazione",
		10: "spuntino_meta_mattina",
		13: "pranzo",
		16: "merenda",
		20: "cena",
		23: "",
	}
	for hour, want := range tests {
		assert.Equal(t, want, CurrentMeal(at(hour)), "hour %d", hour)
	}
}

func TestIsPastMeal(t *testing.T) {
	assert.True(t, IsPastMeal("colazione", at(13)))
	assert.False(t, IsPastMeal("pranzo", at(13)))
	assert.False(t, IsPastMeal("cena", at(13)))
	assert.False(t, IsPastMeal("colazione", at(2)))
}

func TestWeeksSinceStart(t *testing.T) {
	start := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, WeeksSinceStart(time.Time{}, start, 3))
	assert.Equal(t, 1, WeeksSinceStart(start, start, 3))
	assert.Equal(t, 1, WeeksSinceStart(start, start.AddDate(0, 0, 6), 3))
	assert.Equal(t, 2, WeeksSinceStart(start, start.AddDate(0, 0, 7), 3))
	assert.Equal(t, 3, WeeksSinceStart(start, start.AddDate(0, 0, 15), 3))
	assert.Equal(t, 1, WeeksSinceStart(start, start.AddDate(0, 0, 21), 3))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Mercoledì", DayName("mercoledi"))
	assert.Equal(t, "altro", DayName("altro"))
	assert.Equal(t, "Spuntino", MealName("spuntino_meta_mattina"))
	assert.Equal(t, "brunch", MealName("brunch"))
}
