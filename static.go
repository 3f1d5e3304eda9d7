package signpost

import (
	"regexp"
	"sort"
	"strings"
)

// mountIndex matches mount prefixes via a single precompiled alternation
// regex, longest prefix first, bypassing trie descent for mounted paths.
// Rebuilt on every mount registration; read-only after Build.
type mountIndex struct {
	re       *regexp.Regexp
	prefixes []string
	nodes    map[string]*node
	hasRoot  bool
}

func (mi *mountIndex) rebuild(mounts map[string]*node) {
	mi.nodes = mounts
	mi.prefixes = mi.prefixes[:0]
	mi.hasRoot = false

	for prefix := range mounts {
		if prefix == "/" {
			mi.hasRoot = true
			continue
		}
		mi.prefixes = append(mi.prefixes, prefix)
	}

	// Longest first so the alternation prefers the deepest mount.
	sort.Slice(mi.prefixes, func(i, j int) bool {
		return len(mi.prefixes[i]) > len(mi.prefixes[j])
	})

	if len(mi.prefixes) == 0 {
		mi.re = nil
		return
	}

	quoted := make([]string, len(mi.prefixes))
	for pos := range mi.prefixes {
		quoted[pos] = regexp.QuoteMeta(mi.prefixes[pos])
	}

	mi.re = regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)(?:/|$)`)
}

// match returns the mount node owning the path's longest registered
// prefix, with the prefix itself, or nil.
func (mi *mountIndex) match(path string) (*node, string) {
	if mi.re != nil {
		if m := mi.re.FindStringSubmatch(path); m != nil {
			return mi.nodes[m[1]], m[1]
		}
	}

	if mi.hasRoot {
		return mi.nodes["/"], "/"
	}

	return nil, ""
}

// MountMatch describes a mount-prefix hit.
type MountMatch struct {
	Prefix  string
	SubPath string
	Entry   *HandlerEntry
}

// IsStatic reports whether the normalized path is a fully-literal
// registered route, answerable without trie descent.
func (res *Resolver) IsStatic(path string) bool {
	_, ok := res.static[NormalizePath(path)]
	return ok
}

// MountPrefix returns the mount owning the path's prefix, if any. The
// result is always consistent with full trie traversal.
func (res *Resolver) MountPrefix(path string) (*MountMatch, bool) {
	norm := NormalizePath(path)

	n, prefix := res.mounts.match(norm)
	if n == nil {
		return nil, false
	}

	return &MountMatch{
		Prefix:  prefix,
		SubPath: subPathAfter(norm, prefix),
		Entry:   n.handlerFor(MOUNT),
	}, true
}

// subPathAfter is the normalized remainder of path beneath prefix,
// without a leading slash.
func subPathAfter(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	return strings.TrimPrefix(rest, "/")
}
