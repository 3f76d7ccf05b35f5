package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
)

// parseQuery turns repeated key=value flags into an ordered query
func parseQuery(values []string) (commerce.Query, error) {
	var query commerce.Query

	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", value)
		}
		query = query.Set(key, val)
	}

	return query, nil
}

// readBody loads a JSON request body from --data or --file
func readBody(data, file string) (json.RawMessage, error) {
	if data != "" && file != "" {
		return nil, fmt.Errorf("use either --data or --file, not both")
	}

	raw := []byte(data)
	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		raw = content
	}

	if len(raw) == 0 {
		return nil, nil
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}

	return json.RawMessage(raw), nil
}
