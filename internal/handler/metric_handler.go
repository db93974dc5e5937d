package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/i18n"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

type calculateResponse struct {
	Metrics                 domain.BodyMetrics `json:"metrics"`
	BMICategoryLabel        string             `json:"bmiCategoryLabel"`
	WaistToHipCategoryLabel string             `json:"waistToHipCategoryLabel"`
}

type MetricHandler struct {
	svc  *service.ProgressService
	lang i18n.Language
}

func NewMetricHandler(svc *service.ProgressService, lang i18n.Language) *MetricHandler {
	return &MetricHandler{svc: svc, lang: lang}
}

func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	measurements, err := h.svc.Measurements(r.Context())
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, measurements)
}

func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.MeasurementInput
	if !decodeJSON(w, r, &in) {
		return
	}

	m, err := h.svc.AddMeasurement(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MetricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}

	if err := h.svc.DeleteMeasurement(r.Context(), id); err != nil {
		writeServiceError(w, err, "measurement not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MetricHandler) Progress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Calculate computes body metrics for the posted profile and measurement
// without storing anything.
func (h *MetricHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in service.CalculateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	metrics, err := service.Calculate(in)
	if err != nil {
		writeServiceError(w, err, "not found")
		return
	}

	lang := language(r, h.lang)
	writeJSON(w, http.StatusOK, calculateResponse{
		Metrics:                 metrics,
		BMICategoryLabel:        i18n.BMICategory(lang, metrics.BMICategory),
		WaistToHipCategoryLabel: i18n.Risk(lang, metrics.WaistToHipCategory),
	})
}
