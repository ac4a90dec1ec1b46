package utils

import (
	"errors"
	"net/http"

	"github.com/SundayYogurt/league_service/internal/domain"
)

var statusByCode = map[string]int{
	domain.ErrValidation.Code:    http.StatusBadRequest,
	domain.ErrMissingParams.Code: http.StatusBadRequest,

	domain.ErrUnauthenticated.Code:   http.StatusUnauthorized,
	domain.ErrInvalidCredential.Code: http.StatusForbidden,
	domain.ErrForbidden.Code:         http.StatusForbidden,

	domain.ErrNotFound.Code: http.StatusNotFound,

	domain.ErrConflict.Code:          http.StatusBadRequest,
	domain.ErrAlreadyRegistered.Code: http.StatusBadRequest,
	domain.ErrEmailTaken.Code:        http.StatusBadRequest,
	domain.ErrUsernameTaken.Code:     http.StatusBadRequest,
	domain.ErrDuplicateRequest.Code:  http.StatusBadRequest,
	domain.ErrInvalidReferral.Code:   http.StatusUnauthorized,

	domain.ErrPaymentNotCompleted.Code: http.StatusPaymentRequired,
	domain.ErrPaymentMismatch.Code:     http.StatusPaymentRequired,
	domain.ErrPaymentRequired.Code:     http.StatusPaymentRequired,

	domain.ErrAllocationExhausted.Code: http.StatusInternalServerError,
	domain.ErrUpstream.Code:            http.StatusInternalServerError,
	domain.ErrInternal.Code:            http.StatusInternalServerError,
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:      http.StatusBadRequest,
	domain.KindUnauthenticated: http.StatusUnauthorized,
	domain.KindForbidden:       http.StatusForbidden,
	domain.KindNotFound:        http.StatusNotFound,
	domain.KindConflict:        http.StatusBadRequest,
	domain.KindPayment:         http.StatusPaymentRequired,
	domain.KindUpstream:        http.StatusInternalServerError,
	domain.KindInternal:        http.StatusInternalServerError,
}

// StatusFor maps an error to the HTTP status and the message shown to the
// client. Errors outside the domain taxonomy never leak their text.
func StatusFor(err error) (int, string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, domain.ErrInternal.Message
	}

	msg := de.Message
	if de.Err != nil && de.Kind != domain.KindUpstream && de.Kind != domain.KindInternal {
		msg = de.Message + ": " + de.Err.Error()
	}

	if status, ok := statusByCode[de.Code]; ok {
		return status, msg
	}
	if status, ok := statusByKind[de.Kind]; ok {
		return status, msg
	}
	return http.StatusInternalServerError, msg
}
