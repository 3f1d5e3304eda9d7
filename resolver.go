package signpost

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/signpost-go/signpost/errors"
)

// ResolvedRoute is the outcome of a successful resolution: the registered
// entry, the normalized request path and the converted path parameters.
type ResolvedRoute struct {
	Entry  *HandlerEntry
	Path   string
	Params *Params

	subPath string
	mount   bool
}

// SubPath returns the residual path beneath a matched mount prefix. The
// second return is false for non-mount matches.
func (rr *ResolvedRoute) SubPath() (string, bool) {
	return rr.subPath, rr.mount
}

type cacheKey struct {
	method string
	path   string
}

// Resolver is the immutable, read-side view of a built routing trie. It
// performs no I/O and never blocks; concurrent use needs no locking.
type Resolver struct {
	root   *node
	static map[string]*node
	mounts *mountIndex
	cache  *lru.Cache[cacheKey, *ResolvedRoute]
	logger *logrus.Logger
}

func (res *Resolver) initCache(size int) {
	cache, err := lru.New[cacheKey, *ResolvedRoute](size)
	if err != nil {
		res.logger.WithError(err).Warn("resolve cache disabled")
		return
	}
	res.cache = cache
}

// Resolve maps a request path and method to the registered handler entry
// plus extracted, converted path parameters. Use MethodWebsocket for
// connections without an HTTP verb. Returns a not-found error when no
// template matches (unconvertible parameter segments included) and a
// method-not-allowed error when the path exists but the verb is unbound.
func (res *Resolver) Resolve(path string, method string) (*ResolvedRoute, error) {
	norm := NormalizePath(path)
	key := cacheKey{method: method, path: norm}

	if res.cache != nil {
		if rr, ok := res.cache.Get(key); ok {
			return rr, nil
		}
	}

	rr, err := res.resolve(norm, method)
	if err != nil {
		return nil, err
	}

	if res.cache != nil {
		res.cache.Add(key, rr)
	}

	return rr, nil
}

func (res *Resolver) resolve(path string, method string) (*ResolvedRoute, error) {
	// Fully-literal paths answer from the static index without descent.
	if n, ok := res.static[path]; ok {
		return res.finish(n, path, &Params{}, "", method)
	}

	// Mounted prefixes answer from the precompiled alternation; the
	// remainder becomes the catch-all parameter's value.
	if n, prefix := res.mounts.match(path); n != nil {
		rest := subPathAfter(path, prefix)

		params := &Params{}
		params.set(n.catchAll, rest)

		return res.finish(n, path, params, rest, method)
	}

	return res.descend(path, method)
}

// descend walks the trie segment by segment. Catch-all nodes consume the
// remainder; otherwise an exact literal child wins over the parameter
// child, and a parameter segment that fails conversion means the path
// simply doesn't match.
func (res *Resolver) descend(path string, method string) (*ResolvedRoute, error) {
	segments := splitPath(path)

	cur := res.root
	params := &Params{}

	for pos := 0; pos < len(segments); pos++ {
		if cur.catchAll != "" {
			rest := strings.Join(segments[pos:], "/")
			params.set(cur.catchAll, rest)
			return res.finish(cur, path, params, rest, method)
		}

		if child := cur.findChild(segments[pos]); child != nil {
			cur = child
			continue
		}

		if cur.param != nil {
			value, err := convertParam(cur.param.tag, segments[pos])
			if err != nil {
				// Conversion failure collapses into not-found: an
				// unconvertible segment means the pattern doesn't apply.
				return nil, notFound(path)
			}

			params.set(cur.param.name, value)
			cur = cur.param.node
			continue
		}

		return nil, notFound(path)
	}

	if cur.catchAll != "" {
		params.set(cur.catchAll, "")
		return res.finish(cur, path, params, "", method)
	}

	return res.finish(cur, path, params, "", method)
}

// finish resolves the matched node's handler table by method.
func (res *Resolver) finish(n *node, path string, params *Params, subPath string, method string) (*ResolvedRoute, error) {
	if n == nil || !n.hasHandlers() {
		return nil, notFound(path)
	}

	entry := res.entryFor(n, method)
	if entry == nil {
		err := errors.WrapMethodNotAllowed(
			fmt.Errorf("%s not allowed for %q", method, path))
		err = errors.SetData(err, "allow", n.Allow())
		return nil, errors.SetData(err, "allow_header", n.allowHeader)
	}

	if params.Len() == 0 {
		params = nil
	}

	return &ResolvedRoute{
		Entry:   entry,
		Path:    path,
		Params:  params,
		subPath: subPath,
		mount:   n.isMount,
	}, nil
}

// entryFor picks the handler for the method key. A mount entry answers
// every method.
func (res *Resolver) entryFor(n *node, method string) *HandlerEntry {
	if entry := n.handlerFor(MOUNT); entry != nil {
		return entry
	}

	mt, ok := methodsByName[method]
	if !ok {
		return nil
	}

	return n.handlerFor(mt)
}

func notFound(path string) error {
	return errors.WrapNotFound(fmt.Errorf("no route for %q", path))
}
