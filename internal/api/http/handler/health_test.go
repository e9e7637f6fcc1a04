package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sessionauth/internal/mocks"
	"github.com/dtroode/sessionauth/internal/testutil"
)

func TestHealth_Check(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{name: "store reachable", wantStatus: http.StatusOK},
		{name: "store down", pingErr: assert.AnError, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewStorage(t)
			store.On("Ping", mock.Anything).Return(tt.pingErr)

			h := NewHealth(store, time.Second, testutil.MakeNoopLogger())
			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
