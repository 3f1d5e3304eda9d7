package signpost

import (
	"math/bits"
	"net/http"
	"sort"
	"strings"
)

type methodType uint

const (
	STUB    methodType = 0x001
	CONNECT methodType = 0x002
	DELETE  methodType = 0x004
	GET     methodType = 0x008
	HEAD    methodType = 0x010
	OPTIONS methodType = 0x020
	PATCH   methodType = 0x040
	POST    methodType = 0x080
	PUT     methodType = 0x100
	TRACE   methodType = 0x200

	// Pseudo-methods for non-HTTP connections. WEBSOCKET binds websocket
	// upgrade handlers; MOUNT binds sub-application handlers that accept
	// every verb beneath their prefix.
	WEBSOCKET methodType = 0x400
	MOUNT     methodType = 0x800
)

const (
	// MethodWebsocket resolves a websocket connection (no HTTP verb).
	MethodWebsocket = "websocket"

	// MethodMount resolves a mounted sub-application connection.
	MethodMount = "mount"
)

var (
	ALL methodType = CONNECT | DELETE | GET | HEAD | OPTIONS | PATCH | POST | PUT | TRACE

	methodsByName = map[string]methodType{
		http.MethodConnect: CONNECT,
		http.MethodDelete:  DELETE,
		http.MethodGet:     GET,
		http.MethodHead:    HEAD,
		http.MethodOptions: OPTIONS,
		http.MethodPatch:   PATCH,
		http.MethodPost:    POST,
		http.MethodPut:     PUT,
		http.MethodTrace:   TRACE,
		MethodWebsocket:    WEBSOCKET,
		MethodMount:        MOUNT,
	}

	methodNames = map[methodType]string{
		CONNECT:   http.MethodConnect,
		DELETE:    http.MethodDelete,
		GET:       http.MethodGet,
		HEAD:      http.MethodHead,
		OPTIONS:   http.MethodOptions,
		PATCH:     http.MethodPatch,
		POST:      http.MethodPost,
		PUT:       http.MethodPut,
		TRACE:     http.MethodTrace,
		WEBSOCKET: MethodWebsocket,
		MOUNT:     MethodMount,
	}
)

func methodIndex(m methodType) int {
	return bits.TrailingZeros(uint(m))
}

// HandlerEntry is an opaque reference to an application-level handler and
// its metadata. The router stores and returns entries, never inspects or
// invokes them; identity is pointer identity.
type HandlerEntry struct {
	// Name optionally identifies the entry in route tables and logs.
	Name string

	// Handler is the application handler. The net/http adapter accepts
	// HandlerFunc, http.Handler and http.HandlerFunc values here.
	Handler any
}

// paramChild is the single typed-parameter child a trie node may carry.
type paramChild struct {
	name string
	tag  TypeTag
	node *node
}

// node is an entry in the routing trie. Parent nodes exclusively own their
// children; traversal is always root-to-leaf so no back-references exist.
type node struct {
	children map[string]*node
	param    *paramChild

	// Index 1-11: CONNECT..MOUNT via methodIndex.
	handlers [12]*HandlerEntry

	allowed  methodType
	implicit methodType // bound implicitly (HEAD mirroring GET)

	// catchAll is the name of the terminal path-typed parameter, when the
	// node accepts any residual sub-path.
	catchAll string

	isMount  bool
	isStatic bool

	allowHeader string // precomputed Allow header
}

func newNode() *node {
	return &node{children: map[string]*node{}}
}

func (n *node) findChild(segment string) *node {
	return n.children[segment]
}

func (n *node) hasHandlers() bool {
	return n.allowed != 0
}

// handlerFor returns the entry bound for the method bit, or nil.
func (n *node) handlerFor(m methodType) *HandlerEntry {
	return n.handlers[methodIndex(m)]
}

// Allow returns the allowed HTTP methods on the node, sorted.
func (n *node) Allow() []string {
	ret := []string{}

	if n.allowed == 0 {
		return ret
	}

	for mt, name := range methodNames {
		if mt&ALL == 0 {
			continue
		}
		if n.allowed&mt != 0 {
			ret = append(ret, name)
		}
	}

	sort.Strings(ret)
	return ret
}

func (n *node) updateAllowHeader() {
	n.allowHeader = strings.Join(n.Allow(), ",")
}
