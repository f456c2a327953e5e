package fakeserver

import (
	"regexp"
	"strings"
)

// Route maps a method and path pattern to a canned response.
type Route struct {
	Method      string
	PathPattern string
	PathRegex   *regexp.Regexp
	Name        string
	Response    *Response
}

// Response is a canned HTTP response served by the fake server.
type Response struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        string
}

// Router matches incoming requests to routes.
type Router struct {
	routes []*Route
}

// NewRouter creates a new router.
func NewRouter() *Router {
	return &Router{
		routes: make([]*Route, 0),
	}
}

// AddRoute adds a route to the router.
func (r *Router) AddRoute(route *Route) {
	if route.PathRegex == nil {
		route.PathRegex = compilePathPattern(route.PathPattern)
	}
	r.routes = append(r.routes, route)
}

// Match finds a route matching the given method and path. The returned
// map holds the values captured by {{param}} placeholders.
func (r *Router) Match(method, path string) (*Route, map[string]string) {
	path = normalizePath(path)

	for _, route := range r.routes {
		if !strings.EqualFold(route.Method, method) {
			continue
		}
		if params := matchPath(route, path); params != nil {
			return route, params
		}
	}

	return nil, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

func matchPath(route *Route, path string) map[string]string {
	if route.PathRegex == nil {
		if route.PathPattern == path {
			return map[string]string{}
		}
		return nil
	}

	matches := route.PathRegex.FindStringSubmatch(path)
	if matches == nil {
		return nil
	}

	params := make(map[string]string)
	for i, name := range route.PathRegex.SubexpNames() {
		if i > 0 && name != "" && i < len(matches) {
			params[name] = matches[i]
		}
	}
	return params
}

// compilePathPattern converts {{param}} placeholders into named capture
// groups. Patterns that fail to compile fall back to a literal match.
func compilePathPattern(pattern string) *regexp.Regexp {
	regexPattern := regexp.MustCompile(`\{\{([^}]+)\}\}`).ReplaceAllString(pattern, `(?P<$1>[^/]+)`)

	regex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return regexp.MustCompile("^" + regexp.QuoteMeta(pattern) + "$")
	}
	return regex
}
