package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

type saveDayRequest struct {
	CalorieIntake float64 `json:"calorieIntake"`
	WaterIntake   float64 `json:"waterIntake"`
}

type saveGoalsRequest struct {
	DailyCalorieGoal float64 `json:"dailyCalorieGoal"`
	DailyWaterGoal   float64 `json:"dailyWaterGoal"`
}

type TrackingHandler struct {
	svc *service.TrackingService
	now func() time.Time
}

func NewTrackingHandler(svc *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc, now: time.Now}
}

func (h *TrackingHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	view, err := h.svc.Day(r.Context(), day)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TrackingHandler) SaveDay(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	var req saveDayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.svc.SaveDay(r.Context(), day, req.CalorieIntake, req.WaterIntake)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TrackingHandler) Goals(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Goals(r.Context())
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *TrackingHandler) SaveGoals(w http.ResponseWriter, r *http.Request) {
	var req saveGoalsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.svc.SaveGoals(r.Context(), req.DailyCalorieGoal, req.DailyWaterGoal)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// Week defaults to the current week when start is omitted.
func (h *TrackingHandler) Week(w http.ResponseWriter, r *http.Request) {
	start := domain.DayOf(h.now()).StartOfWeek()
	if s := r.URL.Query().Get("start"); s != "" {
		d, err := domain.ParseDay(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
			return
		}
		start = d
	}

	period, err := h.svc.Week(r.Context(), start)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

// Month defaults to the current month for a missing year or month.
func (h *TrackingHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = v
	}
	if s := q.Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = v
	}

	period, err := h.svc.Month(r.Context(), year, time.Month(month))
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, period)
}
