package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("db")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, 0)
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected default 500, got %d", appErr.HTTPStatus)
	}
	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause")
	}
	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Error != "An internal error occurred" {
		t.Fatalf("unexpected body: %+v", body)
	}

	simple := NewDomainErrorSimple("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized)
	if simple.Error() != "UNAUTHORIZED: unauthorized" {
		t.Fatalf("unexpected message %q", simple.Error())
	}
}
