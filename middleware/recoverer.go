package middleware

import (
	"net/http"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost"
)

// Recoverer middleware that turns handler panics into 500 responses
func Recoverer(next signpost.HandlerFunc) signpost.HandlerFunc {
	return func(c *signpost.Context) {
		defer func() {
			if r := recover(); r != nil {
				buf := make([]byte, 1<<16)
				n := runtime.Stack(buf, false)

				c.Logger().WithFields(logrus.Fields{
					"stack": string(buf[:n]),
				}).Errorf("panic: %v", r)

				c.Response().WriteHeader(http.StatusInternalServerError)
			}
		}()

		next(c)
	}
}
