package tracing

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
)

var allowedSpanKeys = map[attribute.Key]struct{}{
	"http.method":             {},
	"http.route":              {},
	"http.status_code":        {},
	"http.server_duration_ms": {},
	"request_id":              {},
	"project_id":              {},
	"tx_type":                 {},
}

// SafeAttributes strips attributes that could carry request payload data.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedSpanKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

// SafeError reduces an error to its kind so span events stay free of
// user-supplied text.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	kind := err
	for {
		unwrapped := errors.Unwrap(kind)
		if unwrapped == nil {
			break
		}
		kind = unwrapped
	}
	return kind
}
