/*
Package signpost is a request-routing trie with typed path parameters and
an immutable resolver.

# Overview

Signpost maps registered path templates like "/users/{id:int}" onto
handlers with O(segment-count) lookup. Templates mix literal segments,
typed parameters (str, int, float, uuid) and a trailing catch-all (path)
that consumes the rest of the URL. Literal segments always shadow
parameter segments at the same depth.

Routes are registered once at startup through a Router, then frozen into a
Resolver that is safe for unsynchronized concurrent reads:

	router := signpost.NewRouter(signpost.Options{CacheSize: 1024})
	router.Get("/users/{id:uuid}", &signpost.HandlerEntry{Name: "show-user", Handler: showUser})
	router.Static("/assets", &signpost.HandlerEntry{Handler: http.FileServer(http.Dir("public"))})

	resolver, err := router.Build()
	if err != nil {
		log.Fatal(err)
	}

	route, err := resolver.Resolve("/users/9dd23e0c-1e1c-4a52-9c0e-1b2d3f4a5b6c", http.MethodGet)

# Components

  - Router: the build-phase trie, rejecting ambiguous and duplicate
    registrations with startup-fatal errors.
  - Resolver: the immutable read side, with a static-path index, a
    mount-prefix alternation regex and an optional LRU result cache.
  - Mux: a net/http adapter dispatching resolved entries with middleware
    chains, Allow headers and JSON error bodies.

Resolution failures are per-request: a 404-class not-found when no
template matches (an unconvertible parameter segment counts as no match)
and a 405-class method-not-allowed when the path exists but the verb is
unbound.
*/
package signpost
