package signpost

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost/errors"
)

// Options holds the router's construction settings.
type Options struct {
	// Logger used for registration and build logging. Defaults to the
	// logrus standard logger.
	Logger *logrus.Logger

	// CacheSize bounds the resolver's (method, path) memoization LRU.
	// Zero disables caching.
	CacheSize int

	// AllowNestedRoutes permits handlers registered beneath a mount
	// prefix; they shadow the mount for their exact paths. When false
	// (the default) Build rejects such trees.
	AllowNestedRoutes bool

	// RedirectTrailingSlash makes the net/http adapter answer GET
	// requests whose raw path differs from the normalized one with a
	// permanent redirect instead of serving them directly.
	RedirectTrailingSlash bool
}

// Router accumulates route registrations and builds an immutable Resolver.
// Registration is a single-threaded startup activity; once Build has been
// called the router is frozen and further registration fails.
type Router struct {
	root *node
	opts Options

	static map[string]*node
	mounts map[string]*node

	mountRegex *mountIndex

	built bool
}

// NewRouter returns an empty route trie builder.
func NewRouter(opts Options) *Router {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Router{
		root:       newNode(),
		opts:       opts,
		static:     map[string]*node{},
		mounts:     map[string]*node{},
		mountRegex: &mountIndex{},
	}
}

// Register parses the template and binds the entry under the given method
// key. All registration errors identify the offending template and are
// meant to abort startup.
func (r *Router) Register(template string, method string, entry *HandlerEntry) error {
	mt, ok := methodsByName[method]
	if !ok {
		return errors.Wrap(errors.ErrorMalformedPath,
			fmt.Errorf("unknown method %q (template: %q)", method, template))
	}
	return r.register(template, mt, entry)
}

// Get binds a handler entry for GET requests. HEAD is bound implicitly to
// the same entry unless registered explicitly.
func (r *Router) Get(template string, entry *HandlerEntry) error {
	return r.register(template, GET, entry)
}

// Post binds a handler entry for POST requests.
func (r *Router) Post(template string, entry *HandlerEntry) error {
	return r.register(template, POST, entry)
}

// Put binds a handler entry for PUT requests.
func (r *Router) Put(template string, entry *HandlerEntry) error {
	return r.register(template, PUT, entry)
}

// Patch binds a handler entry for PATCH requests.
func (r *Router) Patch(template string, entry *HandlerEntry) error {
	return r.register(template, PATCH, entry)
}

// Delete binds a handler entry for DELETE requests.
func (r *Router) Delete(template string, entry *HandlerEntry) error {
	return r.register(template, DELETE, entry)
}

// Head binds a handler entry for HEAD requests, overriding any implicit
// HEAD binding from a GET registration.
func (r *Router) Head(template string, entry *HandlerEntry) error {
	return r.register(template, HEAD, entry)
}

// Options binds a handler entry for OPTIONS requests.
func (r *Router) Options(template string, entry *HandlerEntry) error {
	return r.register(template, OPTIONS, entry)
}

// Connect binds a handler entry for CONNECT requests.
func (r *Router) Connect(template string, entry *HandlerEntry) error {
	return r.register(template, CONNECT, entry)
}

// Trace binds a handler entry for TRACE requests.
func (r *Router) Trace(template string, entry *HandlerEntry) error {
	return r.register(template, TRACE, entry)
}

// Websocket binds a handler entry for websocket connections, resolved via
// MethodWebsocket rather than an HTTP verb.
func (r *Router) Websocket(template string, entry *HandlerEntry) error {
	return r.register(template, WEBSOCKET, entry)
}

// Match binds the same entry for several HTTP methods at once.
func (r *Router) Match(template string, entry *HandlerEntry, methods ...string) error {
	var mask methodType

	for _, m := range methods {
		mt, ok := methodsByName[m]
		if !ok {
			return errors.Wrap(errors.ErrorMalformedPath,
				fmt.Errorf("unknown method %q (template: %q)", m, template))
		}
		mask |= mt
	}

	return r.register(template, mask, entry)
}

// Mount registers a prefix that accepts every sub-path beneath it. The
// entry answers all verbs; the prefix must be parameterless.
func (r *Router) Mount(prefix string, entry *HandlerEntry) error {
	return r.mount(prefix, entry, false)
}

// Static registers a mount flagged as static-file serving. Resolution
// behaves as Mount; the flag only surfaces through introspection.
func (r *Router) Static(prefix string, entry *HandlerEntry) error {
	return r.mount(prefix, entry, true)
}

func (r *Router) mount(prefix string, entry *HandlerEntry, static bool) error {
	rt, err := ParseTemplate(prefix)
	if err != nil {
		return err
	}

	if rt.HasParams() {
		return errors.Wrap(errors.ErrorMalformedPath,
			fmt.Errorf("mount prefix must be parameterless (template: %q)", prefix))
	}

	catchAll, err := ParseTemplate(rt.Raw() + "/{path:path}")
	if err != nil {
		return err
	}

	if err := r.insert(catchAll, MOUNT, entry); err != nil {
		return err
	}

	if static {
		if n, ok := r.mounts[rt.Raw()]; ok {
			n.isStatic = true
		}
	}

	return nil
}

// register parses and inserts under a method bitmask.
func (r *Router) register(template string, mask methodType, entry *HandlerEntry) error {
	rt, err := ParseTemplate(template)
	if err != nil {
		return err
	}
	return r.insert(rt, mask, entry)
}

// insert walks and creates trie nodes for the template's segments and
// attaches the entry at the terminal node for every set method bit.
func (r *Router) insert(rt *RouteTemplate, mask methodType, entry *HandlerEntry) error {
	if r.built {
		return errors.Wrap(errors.ErrorRouterFrozen,
			fmt.Errorf("routes are frozen once built (template: %q)", rt.Raw()))
	}
	if entry == nil {
		return errors.Wrap(errors.ErrorMalformedPath,
			fmt.Errorf("nil handler entry (template: %q)", rt.Raw()))
	}

	cur := r.root

	for pos := range rt.segments {
		seg := &rt.segments[pos]

		if !seg.IsParam {
			child := cur.findChild(seg.Literal)
			if child == nil {
				child = newNode()
				cur.children[seg.Literal] = child
			}
			cur = child
			continue
		}

		if seg.Type == TypePath {
			// Catch-all: the current node accepts the residual sub-path,
			// no further descent.
			if cur.catchAll != "" && cur.catchAll != seg.Name {
				return errors.WrapAmbiguousRoute(
					fmt.Errorf("catch-all %q conflicts with existing %q (template: %q)",
						seg.Name, cur.catchAll, rt.Raw()))
			}
			cur.catchAll = seg.Name
			cur.isMount = true
			break
		}

		if cur.param == nil {
			cur.param = &paramChild{name: seg.Name, tag: seg.Type, node: newNode()}
		} else if cur.param.tag != seg.Type {
			return errors.WrapAmbiguousRoute(
				fmt.Errorf("parameter {%s:%s} conflicts with {%s:%s} at the same position (template: %q)",
					seg.Name, seg.Type, cur.param.name, cur.param.tag, rt.Raw()))
		} else if cur.param.name != seg.Name {
			return errors.WrapAmbiguousRoute(
				fmt.Errorf("parameter name %q conflicts with %q at the same position (template: %q)",
					seg.Name, cur.param.name, rt.Raw()))
		}

		cur = cur.param.node
	}

	if err := r.bind(cur, rt, mask, entry); err != nil {
		return err
	}

	r.index(rt, cur)

	r.opts.Logger.WithFields(logrus.Fields{
		"template": rt.Raw(),
		"methods":  mask,
		"entry":    entry.Name,
	}).Debug("route registered")

	return nil
}

// bind attaches the entry under every set method bit, enforcing the
// duplicate rules: rebinding the identical entry is a no-op, a different
// entry is an error, implicit bindings may be overridden.
func (r *Router) bind(n *node, rt *RouteTemplate, mask methodType, entry *HandlerEntry) error {
	for mt := methodType(1); mt != 0 && mt <= mask; mt <<= 1 {
		if mask&mt == 0 {
			continue
		}

		idx := methodIndex(mt)

		if existing := n.handlers[idx]; existing != nil && n.implicit&mt == 0 {
			if existing == entry {
				continue
			}
			return errors.WrapDuplicateRoute(
				fmt.Errorf("%s already registered (template: %q)", methodNames[mt], rt.Raw()))
		}

		n.handlers[idx] = entry
		n.allowed |= mt
		n.implicit &^= mt
	}

	// GET implies HEAD for the same entry unless HEAD was bound explicitly.
	if mask&GET != 0 {
		idx := methodIndex(HEAD)
		if n.handlers[idx] == nil || n.implicit&HEAD != 0 {
			n.handlers[idx] = entry
			n.allowed |= HEAD
			n.implicit |= HEAD
		}
	}

	n.updateAllowHeader()
	return nil
}

// index feeds the fast-path indexes: parameterless templates go to the
// static index, literal-prefixed catch-alls to the mount index.
func (r *Router) index(rt *RouteTemplate, n *node) {
	if !rt.HasParams() {
		r.static[rt.Raw()] = n
		return
	}

	if rt.IsCatchAll() && len(rt.ParamNames()) == 1 {
		prefix := "/"
		if cnt := len(rt.segments); cnt > 1 {
			prefix = (&RouteTemplate{segments: rt.segments[:cnt-1]}).String()
		}

		r.mounts[prefix] = n
		r.mountRegex.rebuild(r.mounts)
	}
}

// Build validates and freezes the trie, returning the immutable resolver.
// The resolver is safe for unsynchronized concurrent reads.
func (r *Router) Build() (*Resolver, error) {
	if err := r.validate(r.root, "/"); err != nil {
		return nil, err
	}

	r.built = true

	res := &Resolver{
		root:   r.root,
		static: r.static,
		mounts: r.mountRegex,
		logger: r.opts.Logger,
	}

	if r.opts.CacheSize > 0 {
		res.initCache(r.opts.CacheSize)
	}

	r.opts.Logger.WithFields(logrus.Fields{
		"routes": len(r.Table()),
		"static": len(r.static),
		"mounts": len(r.mounts),
	}).Info("routing trie built")

	return res, nil
}

// validate walks the finished trie rejecting nodes registered beneath a
// mount prefix (unless allowed) and unreachable intermediate nodes.
func (r *Router) validate(n *node, path string) error {
	if n.catchAll != "" && !r.opts.AllowNestedRoutes {
		if len(n.children) > 0 || n.param != nil {
			return errors.WrapAmbiguousRoute(
				fmt.Errorf("routes registered beneath mount path %q", path))
		}
	}

	if !n.hasHandlers() && len(n.children) == 0 && n.param == nil && n != r.root {
		return errors.Wrap(errors.ErrorMalformedPath,
			fmt.Errorf("unreachable node at %q", path))
	}

	for segment, child := range n.children {
		if err := r.validate(child, joinPath(path, segment)); err != nil {
			return err
		}
	}

	if n.param != nil {
		placeholder := "{" + n.param.name + ":" + n.param.tag.String() + "}"
		if err := r.validate(n.param.node, joinPath(path, placeholder)); err != nil {
			return err
		}
	}

	return nil
}

// Table returns the registered routes as sorted "[METHOD] /path" lines.
func (r *Router) Table() []string {
	lines := buildTable(r.root, "/")
	sort.Strings(lines)
	return lines
}

func buildTable(n *node, path string) []string {
	ret := []string{}

	for mt, name := range methodNames {
		if n.allowed&mt == 0 || n.implicit&mt != 0 {
			continue
		}

		display := path
		if n.catchAll != "" {
			display = joinPath(path, "{"+n.catchAll+":path}")
		}

		ret = append(ret, fmt.Sprintf("[%s] %s", name, display))
	}

	for segment, child := range n.children {
		ret = append(ret, buildTable(child, joinPath(path, segment))...)
	}

	if n.param != nil {
		placeholder := "{" + n.param.name + ":" + n.param.tag.String() + "}"
		ret = append(ret, buildTable(n.param.node, joinPath(path, placeholder))...)
	}

	return ret
}

func joinPath(prefix, segment string) string {
	if prefix == "/" {
		return "/" + segment
	}
	return prefix + "/" + segment
}
