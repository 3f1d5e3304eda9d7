package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost"
)

// RequestLogger middleware that adds request logging
func RequestLogger(next signpost.HandlerFunc) signpost.HandlerFunc {
	return func(c *signpost.Context) {
		defer func(t time.Time, w http.ResponseWriter) {
			writer, ok := w.(signpost.WrapResponseWriter)
			if !ok {
				return
			}

			elapsed := time.Since(t)
			status := writer.Status()

			logger := c.Logger().WithFields(logrus.Fields{
				"http.status_code":      status,
				"network.bytes_written": writer.BytesWritten(),
				"duration":              elapsed.Nanoseconds(),
			})

			str := fmt.Sprintf("Completed request [%v] [%d %s]", elapsed, status, http.StatusText(status))

			switch {
			case status < 302:
				logger.Info(str)
			case status < 500:
				logger.Warn(str)
			default:
				logger.Error(str)
			}
		}(time.Now(), c.Response())

		next(c)
	}
}
