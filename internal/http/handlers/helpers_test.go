package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"voltledger/internal/models"
)

func TestWriteServiceErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrAlreadyRegistered, http.StatusConflict},
		{models.ErrAlreadyCompleted, http.StatusConflict},
		{models.ErrAlreadyPaid, http.StatusConflict},
		{models.ErrNotCompleted, http.StatusConflict},
		{models.ErrIDCollision, http.StatusConflict},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrUnknownStation, http.StatusNotFound},
		{models.ErrSessionNotFound, http.StatusNotFound},
		{models.ErrInsufficientPayment, http.StatusPaymentRequired},
		{models.ErrInsufficientFunds, http.StatusPaymentRequired},
		{models.ErrAmountMismatch, http.StatusBadRequest},
		{models.ErrInvalidAmount, http.StatusBadRequest},
		{models.ErrInvalidName, http.StatusBadRequest},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}
