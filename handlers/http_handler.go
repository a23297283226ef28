// Package handlers provides HTTP request handlers for the medcheck API
// endpoints: catalog lookups, scan matching, and warning evaluation.
package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/interfaces"
	"github.com/medscan/medcheck-api/logging"
	"github.com/medscan/medcheck-api/matching"
	"github.com/medscan/medcheck-api/metrics"
	"github.com/medscan/medcheck-api/warnings"
)

const pageSize = 10

// HTTPHandler carries the injected dependencies of all endpoints
type HTTPHandler struct {
	store     interfaces.CatalogStore
	validator interfaces.DataValidator
	checker   interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(store interfaces.CatalogStore, validator interfaces.DataValidator, checker interfaces.HealthChecker) *HTTPHandler {
	return &HTTPHandler{
		store:     store,
		validator: validator,
		checker:   checker,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandler) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandler) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// ServeAllDrugs returns the full catalog snapshot
func (h *HTTPHandler) ServeAllDrugs(w http.ResponseWriter, r *http.Request) {
	drugs := h.store.GetDrugs()
	h.RespondWithJSON(w, http.StatusOK, drugs)
}

// ServePagedDrugs returns one catalog page
func (h *HTTPHandler) ServePagedDrugs(w http.ResponseWriter, r *http.Request) {
	pageNumber := chi.URLParam(r, "pageNumber")
	page, err := strconv.Atoi(pageNumber)
	if err != nil || page < 1 {
		logging.Warn("Unusual user input", "pageNumber", pageNumber)
		h.RespondWithError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	drugs := h.store.GetDrugs()
	start := (page - 1) * pageSize
	end := start + pageSize

	if start >= len(drugs) {
		h.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	if end > len(drugs) {
		end = len(drugs)
	}

	totalItems := len(drugs)
	maxPage := (totalItems + pageSize - 1) / pageSize

	response := map[string]interface{}{
		"data":       drugs[start:end],
		"page":       page,
		"pageSize":   pageSize,
		"totalItems": totalItems,
		"maxPage":    maxPage,
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// FindDrug searches for drugs by display name, case-insensitive substring
func (h *HTTPHandler) FindDrug(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}

	if err := h.validator.ValidateInput(name); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sanitized := regexp.QuoteMeta(strings.ToLower(name))

	drugs := h.store.GetDrugs()
	results := make([]entities.Drug, 0)

	for _, d := range drugs {
		if strings.Contains(strings.ToLower(d.Name), sanitized) {
			results = append(results, d)
		}
	}

	// Always 200 with a results array, empty when nothing matched
	h.RespondWithJSON(w, http.StatusOK, results)
}

// FindDrugByID finds a drug by its catalog key
func (h *HTTPHandler) FindDrugByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.validator.ValidateDrugID(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid drug id")
		return
	}

	drugsMap := h.store.GetDrugsMap()
	drug, exists := drugsMap[id]
	if !exists {
		h.RespondWithError(w, http.StatusNotFound, "Drug not found")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, drug)
}

// ServeCategories returns the distinct category list
func (h *HTTPHandler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.store.GetCategories())
}

// FindDrugsByCategory returns the drugs in one category
func (h *HTTPHandler) FindDrugsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing category")
		return
	}

	if err := h.validator.ValidateInput(category); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	drugs := h.store.GetDrugsByCategory(category)
	if len(drugs) == 0 {
		h.RespondWithError(w, http.StatusNotFound, "No drugs found in category")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, drugs)
}

// scanRequest is the body of POST /scan
type scanRequest struct {
	Text string `json:"text"`
}

// ScanText resolves raw scanned text into catalog drugs
func (h *HTTPHandler) ScanText(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	matched := matching.Match(req.Text, h.store.GetDrugs())

	metrics.ScanMatchTotal.Inc()
	metrics.ScanMatchedDrugs.Observe(float64(len(matched)))

	h.RespondWithJSON(w, http.StatusOK, matched)
}

// warningsRequest is the body of POST /warnings. DrugIDs are the catalog
// keys of the user's confirmed drugs; allergies and conditions come from
// the user profile.
type warningsRequest struct {
	DrugIDs    []string `json:"drugIds"`
	Allergies  []string `json:"allergies"`
	Conditions []string `json:"conditions"`
}

// EvaluateWarnings evaluates every confirmed drug against the profile and
// the remaining confirmed drugs
func (h *HTTPHandler) EvaluateWarnings(w http.ResponseWriter, r *http.Request) {
	var req warningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.DrugIDs) == 0 {
		h.RespondWithError(w, http.StatusBadRequest, "drugIds cannot be empty")
		return
	}

	drugsMap := h.store.GetDrugsMap()
	drugs := make([]entities.Drug, 0, len(req.DrugIDs))
	seen := make(map[string]bool, len(req.DrugIDs))

	for _, rawID := range req.DrugIDs {
		id, err := h.validator.ValidateDrugID(rawID)
		if err != nil {
			h.RespondWithError(w, http.StatusBadRequest, "Invalid drug id: "+rawID)
			return
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		drug, exists := drugsMap[id]
		if !exists {
			h.RespondWithError(w, http.StatusNotFound, "Drug not found: "+id)
			return
		}
		drugs = append(drugs, drug)
	}

	results := warnings.EvaluateBatch(drugs, req.Allergies, req.Conditions)

	for i := range results {
		metrics.WarningsEvaluatedTotal.WithLabelValues(string(results[i].RiskLevel)).Inc()
	}

	h.RespondWithJSON(w, http.StatusOK, results)
}

// HealthCheck returns server health information
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.checker.HealthCheck()

	response := map[string]interface{}{
		"status": status,
		"data":   data,
	}

	h.RespondWithJSON(w, httpStatus, response)
}
