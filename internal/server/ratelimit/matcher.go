package ratelimit

import "strings"

// unlimited marks an endpoint that bypasses the buckets.
var unlimited = EndpointConfig{}

// MatchEndpoint resolves a request path and method to its endpoint config.
// Exact path matches win; configs whose path ends in "/" act as prefixes, so
// "/api/mentor/remarks/" covers "/api/mentor/remarks/{id}". The health probe
// is never limited. Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/api/health" && method == "GET" {
		return &unlimited
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
