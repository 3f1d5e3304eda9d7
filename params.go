package signpost

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/signpost-go/signpost/errors"
)

// Params holds converted path parameter values using a fixed-size buffer
// for the common case (≤8 params), with heap overflow for deep routes.
type Params struct {
	keys      [8]string
	values    [8]any
	kOverflow []string
	vOverflow []any
	count     int
}

// set adds a key-value pair (internal).
func (p *Params) set(key string, value any) {
	if p.count < 8 {
		p.keys[p.count] = key
		p.values[p.count] = value
	} else {
		p.kOverflow = append(p.kOverflow, key)
		p.vOverflow = append(p.vOverflow, value)
	}
	p.count++
}

// Value returns the converted value for the given key.
func (p *Params) Value(key string) (any, bool) {
	if p == nil {
		return nil, false
	}

	n := p.count
	if n > 8 {
		n = 8
	}

	for i := 0; i < n; i++ {
		if p.keys[i] == key {
			return p.values[i], true
		}
	}

	for i := 0; i < len(p.kOverflow); i++ {
		if p.kOverflow[i] == key {
			return p.vOverflow[i], true
		}
	}

	return nil, false
}

// Get returns the converted value for the given key, or nil if not found.
func (p *Params) Get(key string) any {
	v, _ := p.Value(key)
	return v
}

// GetString returns a str- or path-typed parameter value.
func (p *Params) GetString(key string) string {
	if v, ok := p.Value(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt returns an int-typed parameter value.
func (p *Params) GetInt(key string) int64 {
	if v, ok := p.Value(key); ok {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}

// GetFloat returns a float-typed parameter value.
func (p *Params) GetFloat(key string) float64 {
	if v, ok := p.Value(key); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// GetUUID returns a uuid-typed parameter value.
func (p *Params) GetUUID(key string) uuid.UUID {
	if v, ok := p.Value(key); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return p.count
}

// convertParam applies a type tag's conversion to a raw path segment.
// str and path are identity, int is base-10, float is IEEE-754, uuid is
// RFC-4122.
func convertParam(tag TypeTag, raw string) (any, error) {
	switch tag {
	case TypeString, TypePath:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, conversionError(tag, raw)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, conversionError(tag, raw)
		}
		return f, nil
	case TypeUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, conversionError(tag, raw)
		}
		return id, nil
	}
	return nil, conversionError(tag, raw)
}

func conversionError(tag TypeTag, raw string) error {
	return errors.Wrap(errors.ErrorParameterConversion,
		fmt.Errorf("cannot convert %q to %s", raw, tag))
}
