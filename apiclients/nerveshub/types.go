package nerveshub

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product is a named grouping of firmware and devices belonging to one
// organization. The server may attach arbitrary additional string fields
// to the record; those fold into Metadata so callers never need to know
// the full field set in advance.
type Product struct {
	Name     string
	Metadata map[string]string
}

// UnmarshalJSON implements the json.Unmarshaler interface for a Product,
// lifting the "name" field out of the object and collecting all other
// scalar fields into the Metadata map. Nested objects and arrays are
// server-side detail this client has no use for and are skipped.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = ""
	p.Metadata = nil

	for key, value := range raw {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case float64, bool:
			s = fmt.Sprintf("%v", v)
		case nil:
			continue
		default: // object or array
			continue
		}
		if key == "name" {
			p.Name = s
			continue
		}
		if p.Metadata == nil {
			p.Metadata = make(map[string]string)
		}
		p.Metadata[key] = s
	}

	return nil
}

// productsResponse is the body of a successful product listing.
type productsResponse struct {
	Data []Product `json:"data"`
}

// productResponse is the body of a successful create or update.
type productResponse struct {
	Data Product `json:"data"`
}

// loginResponse is the body of a successful login.
type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// APIError represents a non-success response from the NervesHub API. The
// server reports validation failures as {"errors": {"field": ["msg", ...]}}
// but error bodies may also be empty or arbitrary text, so the raw body is
// retained alongside any structured errors that could be extracted.
type APIError struct {
	StatusCode int
	Errors     map[string][]string
	Body       string
}

// newAPIError builds an APIError from a response status and body,
// extracting structured field errors where the body allows it. It never
// fails: an empty or malformed body simply yields no structured errors.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}

	var payload struct {
		Errors map[string]any `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return apiErr
	}

	apiErr.Errors = make(map[string][]string)
	for field, value := range payload.Errors {
		switch v := value.(type) {
		case string:
			apiErr.Errors[field] = []string{v}
		case []any:
			for _, item := range v {
				apiErr.Errors[field] = append(apiErr.Errors[field], fmt.Sprintf("%v", item))
			}
		default:
			apiErr.Errors[field] = []string{fmt.Sprintf("%v", v)}
		}
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}
