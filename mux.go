package signpost

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost/errors"
)

const HeaderAllow = "Allow"

// HandlerFunc defines our handler function
type HandlerFunc func(*Context)

// MiddlewareFunc defines our middleware function
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Context carries a single request through the mux: the wrapped writer,
// the resolved route and a request-scoped logger.
type Context struct {
	request   *http.Request
	writer    WrapResponseWriter
	route     *ResolvedRoute
	requestID string
	logger    *logrus.Entry
}

func (c *Context) Request() *http.Request        { return c.request }
func (c *Context) Response() http.ResponseWriter { return c.writer }
func (c *Context) Route() *ResolvedRoute         { return c.route }
func (c *Context) RequestID() string             { return c.requestID }
func (c *Context) Logger() *logrus.Entry         { return c.logger }

// Params returns the converted path parameters of the resolved route.
func (c *Context) Params() *Params {
	if c.route == nil {
		return nil
	}
	return c.route.Params
}

// Param returns a single converted path parameter value.
func (c *Context) Param(name string) any {
	return c.Params().Get(name)
}

// JSON renders v as a JSON response body.
func (c *Context) JSON(status int, v any) {
	c.writer.Header().Set("Content-Type", "application/json")
	c.writer.WriteHeader(status)

	if err := json.NewEncoder(c.writer).Encode(v); err != nil {
		c.logger.WithError(err).Error("response encoding failed")
	}
}

// Text renders a plain-text response body.
func (c *Context) Text(status int, body string) {
	c.writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.writer.WriteHeader(status)

	if _, err := c.writer.Write([]byte(body)); err != nil {
		c.logger.WithError(err).Error("response write failed")
	}
}

// NoContent finishes the response with a bare status code.
func (c *Context) NoContent(status int) {
	c.writer.WriteHeader(status)
}

func (c *Context) reset(r *http.Request, w WrapResponseWriter, route *ResolvedRoute, logger *logrus.Logger) {
	c.request = r
	c.writer = w
	c.route = route
	c.requestID = uuid.NewString()
	c.logger = logger.WithFields(logrus.Fields{
		"request_id": c.requestID,
		"path":       route.Path,
		"method":     r.Method,
	})
}

// Mux adapts a built Resolver to net/http: it resolves each request,
// maps routing errors onto 404/405 JSON responses with Allow headers, and
// dispatches the resolved entry through the middleware chain.
type Mux struct {
	resolver   *Resolver
	logger     *logrus.Logger
	middleware []MiddlewareFunc
	redirect   bool

	ctxPool sync.Pool
}

// NewMux wraps a resolver as an http.Handler.
func NewMux(resolver *Resolver, opts Options) *Mux {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Mux{
		resolver: resolver,
		logger:   logger,
		redirect: opts.RedirectTrailingSlash,
		ctxPool: sync.Pool{
			New: func() any { return &Context{} },
		},
	}
}

// Use appends middleware applied to every dispatched handler.
func (m *Mux) Use(fns ...MiddlewareFunc) *Mux {
	m.middleware = append(m.middleware, fns...)
	return m
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, err := m.resolver.Resolve(r.URL.Path, r.Method)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	if m.redirect && r.Method == http.MethodGet && route.Path != r.URL.Path {
		http.Redirect(w, r, route.Path, http.StatusPermanentRedirect)
		return
	}

	handler := m.handlerFunc(route)
	if handler == nil {
		m.logger.WithFields(logrus.Fields{
			"path":  route.Path,
			"entry": route.Entry.Name,
		}).Error("unsupported handler type")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer := newWrapResponseWriter(w)
	defer freeWrapResponseWriter(writer)

	if r.Method == http.MethodHead {
		// HEAD may be served by the GET handler; the body is dropped.
		writer.Discard()
	}

	ctx := m.ctxPool.Get().(*Context)
	ctx.reset(r, writer, route, m.logger)
	defer m.ctxPool.Put(ctx)

	chain(m.middleware, handler)(ctx)
}

// handlerFunc normalizes the entry's opaque handler into a HandlerFunc.
// Mount entries receive the request re-rooted at the residual sub-path.
func (m *Mux) handlerFunc(route *ResolvedRoute) HandlerFunc {
	switch h := route.Entry.Handler.(type) {
	case HandlerFunc:
		return h
	case func(*Context):
		return HandlerFunc(h)
	case http.Handler:
		return func(c *Context) {
			req := c.request
			if sub, ok := route.SubPath(); ok {
				req = req.Clone(req.Context())
				req.URL.Path = "/" + sub
			}
			h.ServeHTTP(c.writer, req)
		}
	case func(http.ResponseWriter, *http.Request):
		return func(c *Context) { h(c.writer, c.request) }
	default:
		return nil
	}
}

func (m *Mux) renderError(w http.ResponseWriter, r *http.Request, err error) {
	e := errors.Unwrap(err)

	if errors.IsMethodNotAllowed(err) {
		if header, ok := e.Data["allow_header"].(string); ok && header != "" {
			w.Header().Set(HeaderAllow, header)
		}

		// Bare OPTIONS answers with the allowed set, no error body.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encodeErr := json.NewEncoder(w).Encode(e); encodeErr != nil {
		m.logger.WithError(encodeErr).Error("error encoding failed")
	}
}

// chain wraps the endpoint with the middleware list, first middleware
// outermost.
func chain(middlewares []MiddlewareFunc, endpoint HandlerFunc) HandlerFunc {
	if len(middlewares) == 0 {
		return endpoint
	}

	h := middlewares[len(middlewares)-1](endpoint)
	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
