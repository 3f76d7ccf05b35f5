package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponse(status int, raw string) *commerce.Response {
	resp := &commerce.Response{
		StatusCode:        status,
		RawBody:           raw,
		RequestedEndpoint: "https://api.example.com/v1/orders/14",
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	var data any
	if err := decoder.Decode(&data); err == nil {
		resp.Data = data
	}

	return resp
}

func TestRenderPayload(t *testing.T) {
	resp := newTestResponse(http.StatusOK, `{"data":{"id":14,"price":10.5,"name":"<b>"}}`)

	tests := []struct {
		name     string
		format   outputFormat
		contains []string
	}{
		{
			name:     "json",
			format:   formatJSON,
			contains: []string{"{\n  \"data\": {", `"name": "<b>"`},
		},
		{
			name:     "yaml",
			format:   formatYAML,
			contains: []string{"data:", "id: 14\n", "price: 10.5\n", "name: <b>"},
		},
		{
			name:     "xml",
			format:   formatXML,
			contains: []string{"<response>", "<id>14</id>", "</response>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, renderPayload(&out, resp, tt.format))
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRenderPayload_RawBodyWithoutData(t *testing.T) {
	resp := newTestResponse(http.StatusBadGateway, "<html>bad gateway</html>")

	var out bytes.Buffer
	require.NoError(t, renderPayload(&out, resp, formatJSON))
	assert.Equal(t, "<html>bad gateway</html>\n", out.String())
}

func newOutputCommand(t *testing.T, format string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("output", "o", string(formatJSON), "")
	require.NoError(t, cmd.Flags().Set("output", format))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	return cmd, &stdout, &stderr
}

func TestPrintResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cmd, stdout, stderr := newOutputCommand(t, "json")

		err := printResponse(cmd, newTestResponse(http.StatusOK, `{"data":[]}`), nil)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"data": []`)
		assert.Contains(t, stderr.String(), "200 https://api.example.com/v1/orders/14")
	})

	t.Run("api error", func(t *testing.T) {
		cmd, stdout, _ := newOutputCommand(t, "json")

		err := printResponse(cmd, newTestResponse(http.StatusNotFound, `{"message":"order not found"}`), nil)

		var apiErr *commerce.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "order not found", apiErr.Message)
		assert.Contains(t, stdout.String(), "order not found")
	})

	t.Run("execute error without response", func(t *testing.T) {
		cmd, stdout, _ := newOutputCommand(t, "json")
		execErr := errors.New("boom")

		err := printResponse(cmd, nil, execErr)
		assert.Same(t, execErr, err)
		assert.Empty(t, stdout.String())
	})

	t.Run("malformed response is printed raw", func(t *testing.T) {
		cmd, stdout, _ := newOutputCommand(t, "yaml")
		malformed := &commerce.MalformedResponseError{Kind: commerce.MalformedSyntax, StatusCode: http.StatusOK, Err: errors.New("bad")}

		err := printResponse(cmd, newTestResponse(http.StatusOK, `{"a":`), malformed)
		assert.Same(t, malformed, err)
		assert.Equal(t, "{\"a\":\n", stdout.String())
	})

	t.Run("unsupported format", func(t *testing.T) {
		cmd, _, _ := newOutputCommand(t, "csv")

		err := printResponse(cmd, newTestResponse(http.StatusOK, `{}`), nil)
		assert.Error(t, err)
	})
}

func TestPlainNumbers(t *testing.T) {
	input := map[string]any{
		"id":    json.Number("14"),
		"price": json.Number("10.5"),
		"items": []any{json.Number("1"), "two", map[string]any{"n": json.Number("-3")}},
		"flag":  true,
	}

	expected := map[string]any{
		"id":    int64(14),
		"price": 10.5,
		"items": []any{int64(1), "two", map[string]any{"n": int64(-3)}},
		"flag":  true,
	}

	assert.Equal(t, expected, plainNumbers(input))
}
