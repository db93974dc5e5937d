package handler

import (
	"math"
	"net/http"

	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/i18n"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

const profileNotFound = "profile not found"

type userResponse struct {
	domain.User
	GenderLabel        string `json:"genderLabel"`
	ActivityLevelLabel string `json:"activityLevelLabel"`
	GoalLabel          string `json:"goalLabel"`
}

func newUserResponse(u domain.User, lang i18n.Language) userResponse {
	return userResponse{
		User:               u,
		GenderLabel:        i18n.Gender(lang, u.Gender),
		ActivityLevelLabel: i18n.ActivityLevel(lang, u.ActivityLevel),
		GoalLabel:          i18n.Goal(lang, u.Goal),
	}
}

type dashboardResponse struct {
	User                    userResponse        `json:"user"`
	Measurement             *domain.Measurement `json:"measurement"`
	Metrics                 *domain.BodyMetrics `json:"metrics"`
	BMICategoryLabel        string              `json:"bmiCategoryLabel,omitempty"`
	WaistToHipCategoryLabel string              `json:"waistToHipCategoryLabel,omitempty"`
	DailyCalories           *float64            `json:"dailyCalories"`
}

func newDashboardResponse(d *service.Dashboard, lang i18n.Language) dashboardResponse {
	resp := dashboardResponse{
		User:        newUserResponse(d.User, lang),
		Measurement: d.Measurement,
		Metrics:     d.Metrics,
	}
	if d.Metrics != nil {
		resp.BMICategoryLabel = i18n.BMICategory(lang, d.Metrics.BMICategory)
		resp.WaistToHipCategoryLabel = i18n.Risk(lang, d.Metrics.WaistToHipCategory)
		if c := d.DailyCalories; !math.IsNaN(c) && !math.IsInf(c, 0) {
			resp.DailyCalories = &c
		}
	}
	return resp
}

type UserHandler struct {
	svc  *service.ProfileService
	lang i18n.Language
}

func NewUserHandler(svc *service.ProfileService, lang i18n.Language) *UserHandler {
	return &UserHandler{svc: svc, lang: lang}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(*u, language(r, h.lang)))
}

func (h *UserHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var in service.SetupInput
	if !decodeJSON(w, r, &in) {
		return
	}

	d, err := h.svc.Setup(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, newDashboardResponse(d, language(r, h.lang)))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}

	d, err := h.svc.UpdateProfile(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newDashboardResponse(d, language(r, h.lang)))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProfile(r.Context()); err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newDashboardResponse(d, language(r, h.lang)))
}
