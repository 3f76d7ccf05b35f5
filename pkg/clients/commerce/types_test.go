package commerce

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	query := NewQuery("limit", "10", "offset", "20")
	assert.Equal(t, "limit=10&offset=20", query.Encode())

	query = query.Set("limit", "5").Set("search", "red shirt & co")
	assert.Equal(t, "limit=5&offset=20&search=red+shirt+%26+co", query.Encode())

	value, ok := query.Get("offset")
	assert.True(t, ok)
	assert.Equal(t, "20", value)

	_, ok = query.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "", Query(nil).Encode())
	assert.Equal(t, "flag=", NewQuery("flag").Encode())
}

func TestResponse_Err(t *testing.T) {
	tests := []struct {
		name      string
		resp      Response
		wantErr   bool
		message   string
		requestID string
	}{
		{name: "success", resp: Response{StatusCode: http.StatusOK}},
		{name: "redirect is not an error", resp: Response{StatusCode: http.StatusFound}},
		{
			name:      "message from payload",
			resp:      Response{StatusCode: http.StatusUnprocessableEntity, Data: map[string]any{"message": "price is invalid"}, RequestID: "r1"},
			wantErr:   true,
			message:   "price is invalid",
			requestID: "r1",
		},
		{
			name:      "status text fallback",
			resp:      Response{StatusCode: http.StatusInternalServerError, RequestID: "r2"},
			wantErr:   true,
			message:   "Internal Server Error",
			requestID: "r2",
		},
		{
			name:      "request id from platform header",
			resp:      Response{StatusCode: http.StatusBadRequest, RequestID: "r3", Header: http.Header{"X-Request-Id": []string{"platform-1"}}},
			wantErr:   true,
			message:   "Bad Request",
			requestID: "platform-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Err()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.resp.StatusCode, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.requestID, apiErr.RequestID)
			assert.Contains(t, apiErr.Error(), tt.message)
		})
	}
}
