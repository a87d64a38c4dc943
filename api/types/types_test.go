package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
	apperrors "github.com/killallgit/pulsegrow-api/pkg/errors"
)

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"channel not found", fmt.Errorf("%w: UC1", channels.ErrChannelNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"video not found", fmt.Errorf("%w: v1", videos.ErrVideoNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid reference", channels.ErrInvalidReference, http.StatusBadRequest, "INVALID_INPUT"},
		{"app error passes through", apperrors.ValidationError("max_comments", "bad"), http.StatusBadRequest, "VALIDATION"},
		{"youtube unavailable", fmt.Errorf("commentThreads.list: %w: quota", youtube.ErrUnavailable), http.StatusBadGateway, "EXTERNAL_SERVICE"},
		{"deadline", fmt.Errorf("fetching: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "API_TIMEOUT"},
		{"unknown error", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			SendError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestParseOptionalIntQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		query  string
		want   int
		wantOK bool
	}{
		{"missing uses fallback", "", 500, true},
		{"explicit value", "?max_comments=120", 120, true},
		{"zero", "?max_comments=0", 0, true},
		{"negative", "?max_comments=-3", 0, false},
		{"not a number", "?max_comments=lots", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/"+tt.query, nil)

			got, ok := ParseOptionalIntQuery(c, "max_comments", 500)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}
