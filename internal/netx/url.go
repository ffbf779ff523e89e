package netx

import (
	"net/url"
	"strings"
)

// ConcatURL appends an already encoded query string to base, using "&" when
// base carries a query of its own.
func ConcatURL(base, query string) string {
	if query == "" {
		return base
	}
	if strings.Contains(base, "?") {
		return base + "&" + query
	}
	return base + "?" + query
}

// BuildURL encodes params and appends them to base.
func BuildURL(base string, params url.Values) string {
	return ConcatURL(base, params.Encode())
}

// JoinPath glues a trimmed endpoint root and a resource path that starts
// with "/".
func JoinPath(root, resource string) string {
	return strings.TrimRight(root, "/") + resource
}
