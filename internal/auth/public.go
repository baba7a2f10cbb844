package auth

// PublicPaths is the closed set of routes exempt from credential
// verification. Matching is exact string equality on the request path: no
// prefixes, no globs. A typo in a new route therefore fails closed (the
// route stays protected), which is the posture the whole service relies on.
type PublicPaths struct {
	paths map[string]struct{}
}

// NewPublicPaths builds the classifier from an explicit list.
func NewPublicPaths(paths ...string) PublicPaths {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return PublicPaths{paths: set}
}

// DefaultPublicPaths lists every route reachable without a credential:
// account creation, the two credential exchanges, and the liveness probe.
// Everything else is implicitly protected.
func DefaultPublicPaths() PublicPaths {
	return NewPublicPaths(
		"/auth/signup",
		"/auth/login",
		"/auth/refresh",
		"/healthz",
	)
}

// IsPublic is a pure lookup; it has no hidden state and is safe to call
// from any goroutine.
func (p PublicPaths) IsPublic(path string) bool {
	_, ok := p.paths[path]
	return ok
}
