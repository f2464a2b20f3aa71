package apierr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHelpersSeeThroughWrapping(t *testing.T) {
	v := fmt.Errorf("add policy: %w", Invalid("rpm", "must be at least 1"))
	if !IsValidation(v) {
		t.Fatalf("wrapped validation error not detected")
	}
	if IsNotFound(v) {
		t.Fatalf("validation error reported as not found")
	}
	nf := fmt.Errorf("update: %w", NotFound("channel", "9"))
	if !IsNotFound(nf) {
		t.Fatalf("wrapped not-found error not detected")
	}
	if got := nf.Error(); got != "update: channel not found: 9" {
		t.Fatalf("message=%q", got)
	}
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  interface{ StatusCode() int }
		want int
	}{
		{ValidationError{Field: "x"}, http.StatusBadRequest},
		{NotFoundError{Kind: "x"}, http.StatusNotFound},
		{ConflictError{Msg: "x"}, http.StatusConflict},
	}
	for _, c := range cases {
		if got := c.err.StatusCode(); got != c.want {
			t.Fatalf("%T status=%d want %d", c.err, got, c.want)
		}
	}
}
