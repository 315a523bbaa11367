package models

import (
	"sort"
	"strings"
)

// ValidationError carries per-field validation messages. Handlers surface the
// Fields map inline so the operator can correct the offending inputs.
type ValidationError struct {
	Fields map[string]string
}

// Error joins the field messages in sorted key order, so the string is stable
// no matter how many fields failed.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}
