package services_test

import (
	"errors"
	"strings"
	"testing"

	"assetsync/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrRemoteCall, "push", "42", "update asset", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrRemoteCall) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"push", "42", "update asset"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrRemoteCall) {
		t.Fatalf("expected remote call marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestAbortsOnlyForPreconditions(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{services.Wrap(services.ErrMissingIndex, "push", "", "please, pull first", nil), true},
		{services.Wrap(services.ErrInvalidArgument, "pull", "abc", "limit", nil), true},
		{services.Wrap(services.ErrTransfer, "pull", "cat.png", "download", errors.New("eof")), false},
		{services.Wrap(services.ErrTraversal, "walk", "/x", "", errors.New("denied")), false},
		{services.Wrap(services.ErrRemoteCall, "publish", "42", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.Aborts(tc.err); got != tc.want {
			t.Fatalf("Aborts(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestKindLabels(t *testing.T) {
	if kind := services.Kind(services.Wrap(services.ErrTransfer, "", "", "x", nil)); kind != "transfer" {
		t.Fatalf("unexpected kind %q", kind)
	}
	if kind := services.Kind(errors.New("plain")); kind != "remote_call" {
		t.Fatalf("unexpected kind for unmarked error %q", kind)
	}
	if kind := services.Kind(nil); kind != "" {
		t.Fatalf("expected empty kind for nil, got %q", kind)
	}
}
