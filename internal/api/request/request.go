// Package request holds the JSON request bodies accepted by the API and their decoding.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; every accepted body is a single small field.
const maxBodyBytes = 4 << 10

// ErrEmptyBody indicates a request without a JSON body.
var ErrEmptyBody = errors.New("request body is required")

// Decode reads a single JSON object from r into v, rejecting unknown fields.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
