package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotObject is returned when the document is valid JSON but not an object
	ErrNotObject = errors.New("payload is not a JSON object")

	// ErrMissingKey is returned when a required top-level key is absent
	ErrMissingKey = errors.New("payload is missing a required key")
)

var requiredKeys = []string{"types", "years", "aggregates", "activities", "units"}

// Decode reads and validates a payload document
func Decode(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return Parse(data)
}

// Parse validates a payload document already held in memory
func Parse(data []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decoding payload: %w", io.ErrUnexpectedEOF)
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("decoding payload: body is not valid JSON")
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
		}
	}

	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	p.applyDefaults()
	return &p, nil
}

// applyDefaults fills optional fields the dashboard relies on
func (p *Payload) applyDefaults() {
	if p.OtherBucket == "" {
		p.OtherBucket = DefaultOtherBucket
	}
	if p.Units.Distance != "km" {
		p.Units.Distance = "mi"
	}
	if p.Units.Elevation != "m" {
		p.Units.Elevation = "ft"
	}
	if p.TypeMeta == nil {
		p.TypeMeta = make(map[string]TypeMeta)
	}
	if p.Aggregates == nil {
		p.Aggregates = make(Aggregates)
	}
}
