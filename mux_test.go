package signpost

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMux(t *testing.T, opts Options, register func(r *Router)) *Mux {
	t.Helper()

	r := NewRouter(opts)
	register(r)

	res, err := r.Build()
	require.NoError(t, err)

	return NewMux(res, opts)
}

func performRequest(m *Mux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestMuxDispatch(t *testing.T) {
	m := buildMux(t, Options{}, func(r *Router) {
		require.NoError(t, r.Get("/users/{id:int}", &HandlerEntry{
			Name: "show",
			Handler: HandlerFunc(func(c *Context) {
				c.JSON(http.StatusOK, map[string]any{"id": c.Params().GetInt("id")})
			}),
		}))

		require.NoError(t, r.Get("/plain", &HandlerEntry{
			Handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			},
		}))
	})

	t.Run("it should dispatch with converted params", func(t *testing.T) {
		w := performRequest(m, http.MethodGet, "/users/42")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 42}`, w.Body.String())
	})

	t.Run("it should dispatch plain http handler funcs", func(t *testing.T) {
		w := performRequest(m, http.MethodGet, "/plain")
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("it should render 404 for unknown paths", func(t *testing.T) {
		w := performRequest(m, http.MethodGet, "/users/not-an-int")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ERROR.ROUTE_NOT_FOUND", body["key"])
	})

	t.Run("it should render 405 with an Allow header", func(t *testing.T) {
		w := performRequest(m, http.MethodDelete, "/users/42")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Header().Get(HeaderAllow), http.MethodGet)
	})

	t.Run("it should answer bare OPTIONS with the allowed set", func(t *testing.T) {
		w := performRequest(m, http.MethodOptions, "/users/42")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get(HeaderAllow), http.MethodGet)
		assert.Empty(t, w.Body.String())
	})

	t.Run("it should serve HEAD from the GET handler without a body", func(t *testing.T) {
		w := performRequest(m, http.MethodHead, "/users/42")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestMuxMounts(t *testing.T) {
	t.Run("it should re-root mounted handlers at the sub-path", func(t *testing.T) {
		var seen string

		m := buildMux(t, Options{}, func(r *Router) {
			require.NoError(t, r.Mount("/admin", &HandlerEntry{
				Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					seen = r.URL.Path
					w.WriteHeader(http.StatusOK)
				}),
			}))
		})

		w := performRequest(m, http.MethodPost, "/admin/users/7")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/users/7", seen)
	})
}

func TestMuxMiddleware(t *testing.T) {
	t.Run("it should apply middleware outermost first", func(t *testing.T) {
		order := []string{}

		mw := func(name string) MiddlewareFunc {
			return func(next HandlerFunc) HandlerFunc {
				return func(c *Context) {
					order = append(order, name)
					next(c)
				}
			}
		}

		m := buildMux(t, Options{}, func(r *Router) {
			require.NoError(t, r.Get("/a", &HandlerEntry{
				Handler: HandlerFunc(func(c *Context) {
					order = append(order, "handler")
					c.NoContent(http.StatusOK)
				}),
			}))
		})
		m.Use(mw("first"), mw("second"))

		w := performRequest(m, http.MethodGet, "/a")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})
}

func TestMuxRedirect(t *testing.T) {
	t.Run("it should redirect denormalized paths when configured", func(t *testing.T) {
		m := buildMux(t, Options{RedirectTrailingSlash: true}, func(r *Router) {
			require.NoError(t, r.Get("/users", &HandlerEntry{
				Handler: HandlerFunc(func(c *Context) { c.NoContent(http.StatusOK) }),
			}))
		})

		w := performRequest(m, http.MethodGet, "/users/")

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "/users", w.Header().Get("Location"))
	})

	t.Run("it should serve denormalized paths directly by default", func(t *testing.T) {
		m := buildMux(t, Options{}, func(r *Router) {
			require.NoError(t, r.Get("/users", &HandlerEntry{
				Handler: HandlerFunc(func(c *Context) { c.NoContent(http.StatusOK) }),
			}))
		})

		w := performRequest(m, http.MethodGet, "/users/")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMuxUnsupportedHandler(t *testing.T) {
	t.Run("it should respond 500 for unknown handler types", func(t *testing.T) {
		m := buildMux(t, Options{}, func(r *Router) {
			require.NoError(t, r.Get("/odd", &HandlerEntry{Handler: 42}))
		})

		w := performRequest(m, http.MethodGet, "/odd")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
