package fakeserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterMatchesLiteralPath(t *testing.T) {
	r := NewRouter()
	r.AddRoute(&Route{Method: "GET", PathPattern: "/ads", Response: &Response{StatusCode: 200}})

	route, params := r.Match("GET", "/ads")
	require.NotNil(t, route)
	assert.Empty(t, params)
}

func TestRouterCapturesParams(t *testing.T) {
	r := NewRouter()
	r.AddRoute(&Route{Method: "GET", PathPattern: "/ads/{{id}}/creative/{{slot}}", Response: &Response{StatusCode: 200}})

	route, params := r.Match("GET", "/ads/42/creative/top")
	require.NotNil(t, route)
	assert.Equal(t, map[string]string{"id": "42", "slot": "top"}, params)
}

func TestRouterMethodIsCaseInsensitive(t *testing.T) {
	r := NewRouter()
	r.AddRoute(&Route{Method: "post", PathPattern: "/track", Response: &Response{StatusCode: 204}})

	route, _ := r.Match("POST", "/track")
	assert.NotNil(t, route)
}

func TestRouterNormalizesTrailingSlash(t *testing.T) {
	r := NewRouter()
	r.AddRoute(&Route{Method: "GET", PathPattern: "/ads", Response: &Response{StatusCode: 200}})

	route, _ := r.Match("GET", "/ads/")
	assert.NotNil(t, route)
}

func TestRouterNoMatch(t *testing.T) {
	r := NewRouter()
	r.AddRoute(&Route{Method: "GET", PathPattern: "/ads", Response: &Response{StatusCode: 200}})

	route, _ := r.Match("GET", "/other")
	assert.Nil(t, route)
}
