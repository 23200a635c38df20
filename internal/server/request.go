package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/josephgoksu/AgentX/models"
)

const maxBodyBytes = 1 << 20

// ValidationError reports a request the server cannot act on.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Missing, ", "))
}

// keyAliases lists the alternative spellings accepted for a body key.
var keyAliases = map[string]string{
	"defination": "definition",
	"definition": "defination",
}

// requestSpec describes what an endpoint needs from its body.
type requestSpec struct {
	// required keys must be present, under their own name or an alias.
	required []string
	// minFields, when set, is the least number of top-level keys accepted.
	minFields int
	// expected keys are reported as missing when minFields is not met.
	expected []string
}

// decodeRequest reads the JSON body once, checks it against spec and
// decodes it into dst, which is then validated against its tags.
func decodeRequest(r *http.Request, spec requestSpec, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return &ValidationError{Message: "could not read request body"}
	}
	if len(body) > maxBodyBytes {
		return &ValidationError{Message: "request body too large"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return &ValidationError{Message: "request body must be a JSON object"}
	}

	if spec.minFields > 0 && len(fields) < spec.minFields {
		return &ValidationError{
			Message: "Some parameters are missing in the request body",
			Missing: absent(fields, spec.expected),
		}
	}

	for key, alias := range keyAliases {
		if _, ok := fields[key]; !ok {
			if raw, ok := fields[alias]; ok {
				fields[key] = raw
			}
		}
	}
	if missing := absent(fields, spec.required); len(missing) > 0 {
		return &ValidationError{Message: "Missing parameters", Missing: missing}
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return &ValidationError{Message: "request body must be a JSON object"}
	}
	if err := json.Unmarshal(normalized, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Message: fmt.Sprintf("invalid value for %s", typeErr.Field), Missing: []string{typeErr.Field}}
		}
		return &ValidationError{Message: fmt.Sprintf("invalid request body: %v", err)}
	}

	if result := models.Validate(dst); !result.Valid {
		return &ValidationError{Message: "invalid request: " + result.ErrorSummary(), Missing: result.Fields()}
	}
	return nil
}

func absent(fields map[string]json.RawMessage, keys []string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
