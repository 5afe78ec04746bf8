package httpadapter

import (
	"net/http"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

func mapOutcomeToHTTPStatus(outcome domain.Outcome) int {
	if outcome.Failure == nil {
		if outcome.Succeeded() {
			return http.StatusOK
		}
		return http.StatusInternalServerError
	}
	return mapFailureToHTTPStatus(outcome.Failure.Kind)
}

func mapFailureToHTTPStatus(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case domain.FailureExtraction, domain.FailureDecode:
		return http.StatusUnprocessableEntity
	case domain.FailureInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
