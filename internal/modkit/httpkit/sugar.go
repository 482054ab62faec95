package httpkit

import (
	"net/http"

	phttp "cinedex/internal/platform/net/http"
)

// GetQuery mounts a GET handler whose input binds from URL query parameters
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// Get mounts a body-less JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Head mounts a body-less JSON handler under HEAD
func Head(r Router, path string, h func(*http.Request) (any, error)) {
	r.Head(path, Call(h))
}
