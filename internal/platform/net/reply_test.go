package net_test

import (
	"net/http"
	"testing"

	perr "cinedex/internal/platform/errors"
	pnet "cinedex/internal/platform/net"
)

func TestError_NilIsOK(t *testing.T) {
	status, d := pnet.Error(nil)

	if status != http.StatusOK {
		t.Fatalf("status %d want %d", status, http.StatusOK)
	}
	if d.Detail != "" {
		t.Fatalf("detail %q want empty", d.Detail)
	}
}

func TestError_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{
			name:   "not found",
			err:    perr.NotFoundf("film not found"),
			status: http.StatusNotFound,
			detail: "film not found",
		},
		{
			name:   "invalid argument is 422",
			err:    perr.InvalidArgf("page_size must be at most 100"),
			status: http.StatusUnprocessableEntity,
			detail: "page_size must be at most 100",
		},
		{
			name:   "unknown is 500",
			err:    perr.Internalf("kaboom"),
			status: http.StatusInternalServerError,
			detail: "kaboom",
		},
		{
			name:   "wrapped keeps top message only",
			err:    perr.Wrap(perr.Internalf("dial tcp refused"), perr.ErrorCodeSearch, "search movies"),
			status: http.StatusInternalServerError,
			detail: "search movies",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, d := pnet.Error(tc.err)
			if status != tc.status {
				t.Fatalf("status %d want %d", status, tc.status)
			}
			if d.Detail != tc.detail {
				t.Fatalf("detail %q want %q", d.Detail, tc.detail)
			}
		})
	}
}
