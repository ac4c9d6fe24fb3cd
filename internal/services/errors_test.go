package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"reelmate/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrParse, "letterboxd", "parse", "bad header", errors.New("boom"))
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse tag, got %v", err)
	}
	if !strings.Contains(err.Error(), "letterboxd: parse: bad header") {
		t.Fatalf("unexpected message: %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped cause in message: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "store", "save", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient default, got %v", err)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{services.Wrap(services.ErrParse, "letterboxd", "parse", "", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrValidation, "server", "compare", "", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrNotFound, "store", "get", "", nil), http.StatusNotFound},
		{services.Wrap(services.ErrConfiguration, "tmdb", "new", "", nil), http.StatusServiceUnavailable},
		{services.Wrap(services.ErrPersistence, "store", "save", "", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
