package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/resume-classifier/internal/config"
	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/core/ports"
	"github.com/kirillkom/resume-classifier/internal/observability/metrics"
)

const (
	serviceName     = "resume-api"
	uploadFieldName = "file"
	multipartMemory = 8 << 20
)

type Router struct {
	cfg        config.Config
	classifier ports.ResumeClassifier
	catalog    ports.CategoryCatalog
	metrics    *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	classifier ports.ResumeClassifier,
	catalog ports.CategoryCatalog,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:        cfg,
		classifier: classifier,
		catalog:    catalog,
		metrics:    httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	classify := backpressureMiddleware(
		http.HandlerFunc(rt.classifyResume),
		rt.cfg.APIMaxInFlight,
		time.Duration(rt.cfg.APIQueueWaitMillis)*time.Millisecond,
		rt.rejectionCounter("overloaded"),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/categories", rt.listCategories)
	mux.Handle("/v1/resumes/classify", classify)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.cfg.APIRateLimitRPS > 0 {
		limiter := rate.NewLimiter(rate.Limit(rt.cfg.APIRateLimitRPS), max(rt.cfg.APIRateLimitBurst, 1))
		handler = rateLimitMiddleware(handler, limiter, rt.rejectionCounter("rate_limited"))
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(recoverMiddleware(handler)))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": rt.catalog.List()})
}

type classifyResponse struct {
	Status        domain.State    `json:"status"`
	Filename      string          `json:"filename"`
	FileType      domain.FileType `json:"file_type,omitempty"`
	Category      string          `json:"category,omitempty"`
	ClassID       *int            `json:"class_id,omitempty"`
	KnownCategory *bool           `json:"known_category,omitempty"`
	Text          *string         `json:"text,omitempty"`
	Units         int             `json:"units,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
	Error         *domain.Failure `json:"error,omitempty"`
}

func (rt *Router) classifyResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, http.StatusRequestEntityTooLarge, "", &domain.Failure{
				Kind:    domain.FailureInvalidInput,
				Message: "The uploaded file exceeds the " + strconv.FormatInt(tooLarge.Limit, 10) + " byte limit.",
			})
			return
		}
		writeFailure(w, http.StatusBadRequest, "", &domain.Failure{
			Kind:    domain.FailureInvalidInput,
			Message: "multipart field 'file' is required",
		})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile(uploadFieldName)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "", &domain.Failure{
			Kind:    domain.FailureInvalidInput,
			Message: "multipart field 'file' is required",
		})
		return
	}
	defer file.Close()

	outcome := rt.classifier.Classify(r.Context(), fileHeader.Filename, file)
	annotateRequest(r.Context(), "file_type", outcome.FileType, "outcome", outcome.State)
	if outcome.Failure != nil {
		annotateRequest(r.Context(), "failure_kind", outcome.Failure.Kind)
	}
	if outcome.Prediction != nil {
		annotateRequest(r.Context(), "category", outcome.Prediction.Category)
	}
	if !outcome.Succeeded() {
		writeFailure(w, mapOutcomeToHTTPStatus(outcome), outcome.Filename, outcome.Failure)
		return
	}

	resp := classifyResponse{
		Status:   outcome.State,
		Filename: outcome.Filename,
		FileType: outcome.FileType,
	}
	if p := outcome.Prediction; p != nil {
		resp.Category = p.Category
		resp.ClassID = &p.ClassID
		resp.KnownCategory = &p.Known
	}
	if x := outcome.Extracted; x != nil {
		resp.Units = x.Units
		resp.Warnings = x.Warnings
		if showText, _ := strconv.ParseBool(r.URL.Query().Get("show_text")); showText {
			resp.Text = &x.Text
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) rejectionCounter(reason string) func() {
	if rt.metrics == nil {
		return nil
	}
	return func() {
		rt.metrics.RecordRejected(serviceName, reason)
	}
}

func writeFailure(w http.ResponseWriter, status int, filename string, failure *domain.Failure) {
	writeJSON(w, status, classifyResponse{
		Status:   domain.StateFailed,
		Filename: filename,
		Error:    failure,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
