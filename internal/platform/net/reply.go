package net

import (
	"net/http"

	perr "cinedex/internal/platform/errors"
)

// Detail is the error body every endpoint returns.
// Successful responses carry the payload bare, only failures are wrapped
type Detail struct {
	Detail string `json:"detail"`
}

// Error maps err onto its http status and a Detail body
func Error(err error) (int, Detail) {
	if err == nil {
		return http.StatusOK, Detail{}
	}
	return HTTPStatus(err), Detail{Detail: perr.Message(err)}
}
