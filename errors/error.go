package errors

import (
	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost/utils"
)

// Error struct holds the wrapped error
type Error struct {
	Key         string         `json:"key"`
	Err         error          `json:"-"`
	Status      int            `json:"-"`
	Caller      string         `json:"-"`
	ErrorString string         `json:"error,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

func (ae Error) Error() string {
	if ae.ErrorString != "" {
		return ae.ErrorString
	}
	return ae.Key
}

func (ae Error) ToLogFields() logrus.Fields {
	return logrus.Fields{
		"key":    ae.Key,
		"error":  ae.Err,
		"caller": ae.Caller,
	}
}

// NewError returns a new error resolving format and other stuff
func (ae Error) NewError(err error) Error {
	source := ""
	if e, ok := err.(Error); ok {
		source = e.Caller
	} else {
		source = utils.FileWithLineNum()
	}

	e := Error{Key: ae.Key, Err: err, Caller: source, Status: ae.Status}

	er := ae.Err
	if er == nil {
		er = err
	}

	e.ErrorString = er.Error()
	return e
}

func SetData(err error, key string, value any) error {
	if err != nil {
		if ae, ok := err.(Error); ok {
			if ae.Data == nil {
				ae.Data = map[string]any{}
			}
			ae.Data[key] = value
			return ae
		}
	}
	return err
}

// WrapWithStatus wraps a standard error overriding the wrapper's status
func WrapWithStatus(ae Error, err error, status int) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(Error); ok {
		if e.Status == 0 {
			e.Status = status
		}
		return e
	}

	n := ae.NewError(err)
	n.Status = status
	return n
}

// Wrap wraps an error
func Wrap(ae Error, err error) error {
	if err == nil {
		return nil
	}

	return ae.NewError(err)
}

// Unwrap attempts to unwind the error all the way back
func Unwrap(err error) Error {
	if ae, ok := err.(Error); ok {
		return ae
	}
	return ErrorGeneric.NewError(err)
}

// Kind returns the taxonomy key of an error, or the generic key for
// errors raised outside this package.
func Kind(err error) string {
	return Unwrap(err).Key
}

// IsKind reports whether an error carries the given taxonomy key.
func IsKind(err error, key string) bool {
	if err == nil {
		return false
	}
	return Kind(err) == key
}
