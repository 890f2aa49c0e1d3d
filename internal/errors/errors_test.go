package errors

import (
	stderrors "errors"
	"testing"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	plain := New(CodeConfigInvalid, "bad config")
	if plain.Error() != "bad config" {
		t.Errorf("Expected bare message, got %q", plain.Error())
	}
	if plain.Unwrap() != nil {
		t.Error("Error without a cause must unwrap to nil")
	}

	cause := stderrors.New("disk full")
	wrapped := ReportWriteError("/tmp/report.json", cause)
	if wrapped.Error() != "failed to write report to /tmp/report.json: disk full" {
		t.Errorf("Unexpected message: %q", wrapped.Error())
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Wrapped error must match its cause with errors.Is")
	}
}

func TestWrap_CodePropagation(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrapping nil must return nil")
	}

	inner := InvalidInput("bad flag combination")
	outer := Wrap(inner, "command failed")
	if GetCode(outer) != CodeInvalidInput {
		t.Errorf("Wrap must preserve the inner code, got %s", GetCode(outer))
	}

	plain := Wrap(stderrors.New("boom"), "something broke")
	if GetCode(plain) != CodeInternalError {
		t.Errorf("Wrapping a plain error must default to %s, got %s", CodeInternalError, GetCode(plain))
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(InvalidInput("x")); got != CodeInvalidInput {
		t.Errorf("Expected %s, got %s", CodeInvalidInput, got)
	}
	if got := GetCode(ConfigInvalid("x")); got != CodeConfigInvalid {
		t.Errorf("Expected %s, got %s", CodeConfigInvalid, got)
	}
	if got := GetCode(stderrors.New("plain")); got != "UNKNOWN" {
		t.Errorf("Non-AppError must report UNKNOWN, got %s", got)
	}
}
