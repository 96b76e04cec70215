package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if unwrapped := stderrs.Unwrap(e3); unwrapped == nil || unwrapped.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeUnavailable, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeUnavailable {
		t.Fatalf("As(Wrapf) = %v, %v", got, ok)
	}
}

func TestRootAndCodeOf(t *testing.T) {
	src := stderrs.New("cause")
	wrapped := Wrap(Wrap(src, ErrorCodeDB, "inner"), ErrorCodeUnavailable, "outer")

	if Root(wrapped).Error() != "cause" {
		t.Fatalf("Root = %q", Root(wrapped).Error())
	}
	// outermost code wins
	if CodeOf(wrapped) != ErrorCodeUnavailable {
		t.Fatalf("CodeOf = %v", CodeOf(wrapped))
	}
	// plain errors carry the unknown code
	if CodeOf(src) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(plain) = %v", CodeOf(src))
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(nil) = %v", CodeOf(nil))
	}
}

func TestIsCodeAndSentinel(t *testing.T) {
	if !IsCode(NotFoundf("video %s", "x"), ErrorCodeNotFound) {
		t.Fatalf("IsCode(NotFoundf) = false")
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("IsCode(ErrNotFound) = false")
	}
	if IsCode(InvalidArgf("bad"), ErrorCodeNotFound) {
		t.Fatalf("IsCode mismatched code = true")
	}
}

func TestWithField(t *testing.T) {
	e := WithField(New(ErrorCodeValidation, "required"), "youtube_id")
	got, ok := As(e)
	if !ok || got.Field() != "youtube_id" {
		t.Fatalf("WithField = %v, %v", got, ok)
	}
}
