package kv

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Status classifies a lookup.
type Status int

const (
	StatusMiss Status = iota
	StatusOK
	StatusErr
)

// ErrMiss is returned when decoding a lookup that found nothing.
var ErrMiss = errors.New("kv: miss")

// Result is the outcome of a read. Text holds the stored JSON text when
// Status is StatusOK; Err holds the reason when Status is StatusErr.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Found builds an OK result around stored JSON text.
func Found(text string) Result { return Result{Status: StatusOK, Text: text} }

// Missed builds a miss result.
func Missed() Result { return Result{Status: StatusMiss} }

// Failed builds an error result.
func Failed(err error) Result { return Result{Status: StatusErr, Err: err} }

// Decode unmarshals the stored text into dst.
func (r Result) Decode(dst any) error {
	switch r.Status {
	case StatusOK:
		if err := json.Unmarshal([]byte(r.Text), dst); err != nil {
			return fmt.Errorf("decode stored value: %w", err)
		}
		return nil
	case StatusErr:
		return r.Err
	default:
		return ErrMiss
	}
}

// Resolve applies the read policy shared by every store and role: an OK
// result is decoded, anything else yields the resolved default. The error
// is non-nil when the lookup or the decode failed, so callers can report it;
// the returned value is always usable.
func Resolve(r Result, def Value) (any, error) {
	switch r.Status {
	case StatusOK:
		var out any
		if err := r.Decode(&out); err != nil {
			return def.Resolve(), err
		}
		return out, nil
	case StatusErr:
		return def.Resolve(), r.Err
	default:
		return def.Resolve(), nil
	}
}
