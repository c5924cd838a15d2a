package ratelimit

import "strings"

// MatchEndpoint finds the rule covering a path and method. Exact paths win
// over prefix rules (a Path ending in "/" covers everything under it, which
// is how /auth/ catches both login and register). The health check is
// always unlimited so probes never see 429.
func MatchEndpoint(path, method string, rules []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range rules {
		rule := &rules[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if prefix == nil && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			prefix = rule
		}
	}
	return prefix
}
