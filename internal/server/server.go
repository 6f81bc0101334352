// Package server exposes the report calculators over an HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/grain-loss/internal/calculator"
	"github.com/iwvelando/grain-loss/internal/config"
	"github.com/iwvelando/grain-loss/internal/form"
	"github.com/iwvelando/grain-loss/internal/ratetable"
	"github.com/iwvelando/grain-loss/internal/report"
	"github.com/iwvelando/grain-loss/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	conf        *config.Configuration
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler serving the report API. A nil
// configuration uses the built-in rate table and thresholds.
func NewHandler(logger *zap.Logger, conf *config.Configuration, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		conf:        conf,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		now:         time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, newError(codeRouteNotFound, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, newError(codeMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/loss", h.handleLoss)
		r.Post("/surplus", h.handleSurplus)
		r.Post("/processing-loss", h.handleProcessing)
		r.Get("/commodities", h.handleCommodities)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type lossRequest struct {
	form.LossForm
	Region string        `json:"region,omitempty"`
	Header report.Header `json:"header"`
}

type surplusRequest struct {
	form.SurplusForm
	Header report.Header `json:"header"`
}

type processingRequest struct {
	form.ProcessingForm
	Header report.Header `json:"header"`
}

type reportResponse struct {
	Result        any            `json:"result"`
	Report        *report.Report `json:"report"`
	Notices       []form.Notice  `json:"notices,omitempty"`
	FileName      string         `json:"fileName,omitempty"`
	MissingFields []string       `json:"missingFields,omitempty"`
}

func (h *handler) handleLoss(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoss"

	var req lossRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	table, err := h.conf.RateTable(req.Region)
	if err != nil {
		h.respondError(w, r, newError(codeRegionNotFound, err.Error(), http.StatusNotFound), op)
		return
	}

	in, notices, err := req.LossForm.Parse(h.conf.FormThresholds())
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	result, err := calculator.ComputeLoss(in, table, calculator.WithLossRounding(h.conf.LossRounding()))
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	if result.UnknownCommodity {
		h.logger.Warn("commodity has no rate table entry",
			zap.String("op", op),
			zap.String("commodity", in.Commodity),
			zap.String("region", req.Region),
		)
	}
	h.logger.Info("loss report computed",
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.String("commodity", in.Commodity),
		zap.Int("storageMonths", result.StorageMonths),
		zap.Bool("overLoss", result.IsOverLoss),
	)

	h.respondReport(w, result, report.NewLossReport(req.Header, req.LossForm, &result, notices))
}

func (h *handler) handleSurplus(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSurplus"

	var req surplusRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	in, err := req.SurplusForm.Parse()
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	result, err := calculator.ComputeSurplus(in, calculator.WithSurplusRounding(h.conf.SurplusRounding()))
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	h.logger.Info("surplus report computed",
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.Int("storageMonths", result.StorageMonths),
	)

	h.respondReport(w, result, report.NewSurplusReport(req.Header, req.SurplusForm, &result))
}

func (h *handler) handleProcessing(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProcessing"

	var req processingRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	in, err := req.ProcessingForm.Parse()
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	result, err := calculator.ComputeProcessingLoss(in)
	if err != nil {
		h.respondInvalid(w, r, err, op)
		return
	}

	h.logger.Info("processing loss report computed",
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.Bool("negativeLoss", result.NegativeLoss),
	)

	h.respondReport(w, result, report.NewProcessingReport(req.Header, req.ProcessingForm, &result))
}

type commodity struct {
	Name  string           `json:"name"`
	Tiers []ratetable.Tier `json:"tiers"`
}

func (h *handler) handleCommodities(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	table, err := h.conf.RateTable(region)
	if err != nil {
		h.respondError(w, r, newError(codeRegionNotFound, err.Error(), http.StatusNotFound), "server.handleCommodities")
		return
	}

	names := table.Commodities()
	commodities := make([]commodity, 0, len(names))
	for _, name := range names {
		commodities = append(commodities, commodity{Name: name, Tiers: table[name]})
	}

	if region == "" {
		region = h.conf.DefaultRegion
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"region":      strings.ToLower(strings.TrimSpace(region)),
		"regions":     h.conf.Regions(),
		"commodities": commodities,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a JSON body into dst, writing the error response itself when
// it fails.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, newError(codeBodyTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize),
				http.StatusRequestEntityTooLarge), op)
			return false
		}
		h.respondError(w, r, newError(codeInvalidBody, fmt.Sprintf("failed to decode request: %v", err), http.StatusBadRequest), op)
		return false
	}
	return true
}

func (h *handler) respondReport(w http.ResponseWriter, result any, rep *report.Report) {
	resp := reportResponse{
		Result:  result,
		Report:  rep,
		Notices: rep.Notices,
	}
	if missing := rep.MissingFields(); len(missing) > 0 {
		resp.MissingFields = missing
	} else {
		resp.FileName = rep.FileName(h.now())
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) respondInvalid(w http.ResponseWriter, r *http.Request, err error, op string) {
	if !errors.Is(err, calculator.ErrInvalidInput) {
		h.respondError(w, r, newError(codeInternal, err.Error(), http.StatusInternalServerError), op)
		return
	}

	details := map[string]any{}
	var fieldErr *form.FieldError
	var inputErr *calculator.InvalidInputError
	switch {
	case errors.As(err, &fieldErr):
		details["field"] = fieldErr.Field
	case errors.As(err, &inputErr):
		details["field"] = inputErr.Field
	}
	h.respondError(w, r, newError(codeInvalidInput, err.Error(), http.StatusBadRequest).withDetails(details), op)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, e apiError, op string) {
	h.logger.Warn("report request failed",
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.Int("status", e.Status),
		zap.String("error", e.Message),
	)
	writeError(r.Context(), w, e)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
