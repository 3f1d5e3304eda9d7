package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signpost-go/signpost"
)

func buildMux(t *testing.T, register func(r *signpost.Router)) *signpost.Mux {
	t.Helper()

	r := signpost.NewRouter(signpost.Options{})
	register(r)

	res, err := r.Build()
	require.NoError(t, err)

	return signpost.NewMux(res, signpost.Options{})
}

func TestRecoverer(t *testing.T) {
	t.Run("it should turn panics into 500 responses", func(t *testing.T) {
		m := buildMux(t, func(r *signpost.Router) {
			require.NoError(t, r.Get("/boom", &signpost.HandlerEntry{
				Handler: signpost.HandlerFunc(func(c *signpost.Context) {
					panic("kaboom")
				}),
			}))
		})
		m.Use(Recoverer)

		w := httptest.NewRecorder()
		m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("it should not interfere with healthy handlers", func(t *testing.T) {
		m := buildMux(t, func(r *signpost.Router) {
			require.NoError(t, r.Get("/ok", &signpost.HandlerEntry{
				Handler: signpost.HandlerFunc(func(c *signpost.Context) {
					c.NoContent(http.StatusOK)
				}),
			}))
		})
		m.Use(Recoverer)

		w := httptest.NewRecorder()
		m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
