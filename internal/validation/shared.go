package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error collects per-field validation failures. errors.Is matches any of the
// underlying causes, so callers can test for apperrors sentinels.
type Error struct {
	Fields map[string]string
	causes []error
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors.
func (e *Error) Unwrap() []error {
	return e.causes
}

// collector accumulates field errors while a record set is checked.
type collector struct {
	fields map[string]string
	causes []error
}

func newCollector() *collector {
	return &collector{fields: make(map[string]string)}
}

func (c *collector) add(field string, err error) {
	c.fields[field] = err.Error()
	c.causes = append(c.causes, err)
}

// result returns nil when no field failed, so callers can return it directly.
func (c *collector) result() error {
	if len(c.fields) > 0 {
		return &Error{Fields: c.fields, causes: c.causes}
	}
	return nil
}
