package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    commerce.Query
		wantErr bool
	}{
		{
			name:   "empty",
			values: nil,
			want:   nil,
		},
		{
			name:   "keeps order",
			values: []string{"limit=10", "page=2"},
			want:   commerce.NewQuery("limit", "10", "page", "2"),
		},
		{
			name:   "value with equals sign",
			values: []string{"filter=a=b"},
			want:   commerce.NewQuery("filter", "a=b"),
		},
		{
			name:   "repeated key keeps last value",
			values: []string{"limit=10", "limit=20"},
			want:   commerce.NewQuery("limit", "20"),
		},
		{
			name:    "missing separator",
			values:  []string{"limit"},
			wantErr: true,
		},
		{
			name:    "empty key",
			values:  []string{"=10"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuery(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadBody(t *testing.T) {
	file := filepath.Join(t.TempDir(), "order.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"items":[1]}`), 0o600))

	tests := []struct {
		name    string
		data    string
		file    string
		want    string
		wantErr bool
	}{
		{name: "no body", want: ""},
		{name: "inline", data: `{"a":1}`, want: `{"a":1}`},
		{name: "from file", file: file, want: `{"items":[1]}`},
		{name: "invalid json", data: `{"a":`, wantErr: true},
		{name: "both sources", data: `{}`, file: file, wantErr: true},
		{name: "missing file", file: filepath.Join(t.TempDir(), "missing.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readBody(tt.data, tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
