package errors

import "net/http"

var (
	// ErrorGeneric generic error key no status
	ErrorGeneric = Error{Key: "ERROR.UNKNOWN"}

	// ErrorMalformedPath - invalid {name:type} syntax in a route template.
	// Raised at parse time; fatal to application startup.
	ErrorMalformedPath = Error{Key: "ERROR.MALFORMED_PATH", Status: http.StatusInternalServerError}

	// ErrorAmbiguousRoute - two different parameter types registered at
	// the same trie position. Fatal to application startup.
	ErrorAmbiguousRoute = Error{Key: "ERROR.AMBIGUOUS_ROUTE", Status: http.StatusInternalServerError}

	// ErrorDuplicateRoute - a method+path already bound to a different
	// handler. Fatal to application startup.
	ErrorDuplicateRoute = Error{Key: "ERROR.DUPLICATE_ROUTE", Status: http.StatusInternalServerError}

	// ErrorRouterFrozen - registration attempted after the resolver was
	// built.
	ErrorRouterFrozen = Error{Key: "ERROR.ROUTER_FROZEN", Status: http.StatusInternalServerError}

	// ErrorRouteNotFound - no trie path matches. Recoverable per-request.
	ErrorRouteNotFound = Error{Key: "ERROR.ROUTE_NOT_FOUND", Status: http.StatusNotFound}

	// ErrorMethodNotAllowed - the path matched but the verb didn't.
	// Recoverable per-request.
	ErrorMethodNotAllowed = Error{Key: "ERROR.METHOD_NOT_ALLOWED", Status: http.StatusMethodNotAllowed}

	// ErrorParameterConversion - a path segment failed its declared type
	// conversion. Internal only: always collapsed into a not-found by the
	// resolver, an unconvertible segment means the path doesn't exist.
	ErrorParameterConversion = Error{Key: "ERROR.PARAMETER_CONVERSION", Status: http.StatusNotFound}
)
