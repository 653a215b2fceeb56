package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dietapp/internal/diet"
)

type weekSummary struct {
	Week int      `json:"week"`
	Key  string   `json:"key"`
	Days []string `json:"days"`
}

// GetPlan lists the plan weeks with their days.
func (h *Handler) GetPlan(c *gin.Context) {
	weeks := h.Bundle.Plan.Weeks()
	out := make([]weekSummary, 0, len(weeks))
	for _, n := range weeks {
		w, _ := h.Bundle.Plan.Week(n)
		out = append(out, weekSummary{Week: n, Key: diet.WeekKey(n), Days: w.Days()})
	}
	c.JSON(http.StatusOK, gin.H{"weeks": out, "meals": diet.Meals})
}

type dayResponse struct {
	Week    int             `json:"week"`
	Day     string          `json:"day"`
	DayName string          `json:"day_name"`
	Meals   []diet.MealView `json:"meals"`
}

// GetDay returns the meals of one plan day.
func (h *Handler) GetDay(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		abortWithError(c, http.StatusBadRequest, "week must be a positive number")
		return
	}
	day := c.Param("day")

	meals, err := h.Bundle.DayView(week, day)
	if err != nil {
		if errors.Is(err, diet.ErrWeekNotFound) || errors.Is(err, diet.ErrDayNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dayResponse{Week: week, Day: day, DayName: diet.DayName(day), Meals: meals})
}

type todayResponse struct {
	dayResponse
	Meal     string `json:"meal"`
	MealName string `json:"meal_name"`
}

// GetToday resolves the plan day the user is on. start_week is the week
// tracking began on and start_date when it began; the week advances every
// seven days and wraps around the plan.
func (h *Handler) GetToday(c *gin.Context) {
	now := h.Now()

	startWeek := 1
	if s := c.Query("start_week"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			abortWithError(c, http.StatusBadRequest, "start_week must be a positive number")
			return
		}
		startWeek = n
	}

	var startDate time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02", s, now.Location())
		}
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "start_date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		startDate = t
	}

	cycle := len(h.Bundle.Plan.Weeks())
	week := startWeek
	if cycle > 0 {
		elapsed := diet.WeeksSinceStart(startDate, now, cycle) - 1
		week = (startWeek-1+elapsed)%cycle + 1
	}

	day := diet.DayOfWeek(now)
	meals, err := h.Bundle.DayView(week, day)
	if err != nil {
		meals = []diet.MealView{}
	}
	meal := diet.CurrentMeal(now)
	c.JSON(http.StatusOK, todayResponse{
		dayResponse: dayResponse{Week: week, Day: day, DayName: diet.DayName(day), Meals: meals},
		Meal:        meal,
		MealName:    diet.MealName(meal),
	})
}

// GetNotes returns the general notes verbatim.
func (h *Handler) GetNotes(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.Bundle.Notes)
}

// SearchCAD returns the CAD entries matching q, grouped by category.
func (h *Handler) SearchCAD(c *gin.Context) {
	c.JSON(http.StatusOK, h.Bundle.CAD.Search(c.Query("q")))
}

// GetCAD returns one CAD entry.
func (h *Handler) GetCAD(c *gin.Context) {
	entry, ok := h.Bundle.CAD.Lookup(c.Param("code"))
	if !ok {
		abortWithError(c, http.StatusNotFound, "CAD code not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}
