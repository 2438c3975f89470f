package product

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jjcarstens/nerves-hub-cli/apiclients/nerveshub"
)

// renderProduct formats a product record as a block of `key: value` lines,
// name first and the remaining metadata keys sorted for stable output.
// Trailing whitespace is trimmed.
func renderProduct(p nerveshub.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", p.Name)

	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, p.Metadata[k])
	}

	return strings.TrimRight(b.String(), " \t\n")
}

// renderError produces a human-readable diagnostic for any failed remote
// call: structured API validation errors, bare non-success statuses, and
// transport failures. Unknown shapes get a generic fallback rather than a
// crash.
func renderError(err error) string {
	var apiErr *nerveshub.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("Request failed: %v", err)
	}

	if len(apiErr.Errors) == 0 {
		return fmt.Sprintf("Unexpected response from server (status %d).", apiErr.StatusCode)
	}

	fields := make([]string, 0, len(apiErr.Errors))
	for field := range apiErr.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("Error processing request:")
	for _, field := range fields {
		for _, message := range apiErr.Errors[field] {
			fmt.Fprintf(&b, "\n  %s %s", field, message)
		}
	}
	return b.String()
}
