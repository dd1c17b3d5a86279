package auth

import (
	"testing"

	"github.com/go-faster/errors"
)

func TestStaticToken_Check(t *testing.T) {
	token := NewStaticToken("APEX_SUPPLEMENTS_TOKEN_2025")

	tests := []struct {
		name       string
		credential string
		wantErr    error
	}{
		{name: "matching token", credential: "APEX_SUPPLEMENTS_TOKEN_2025", wantErr: nil},
		{name: "empty token", credential: "", wantErr: ErrInvalidCredential},
		{name: "wrong token", credential: "letmein", wantErr: ErrInvalidCredential},
		{name: "case differs", credential: "apex_supplements_token_2025", wantErr: ErrInvalidCredential},
		{name: "trailing space", credential: "APEX_SUPPLEMENTS_TOKEN_2025 ", wantErr: ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := token.Check(tt.credential)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Check(%q) error = %v, want %v", tt.credential, err, tt.wantErr)
			}
		})
	}
}

func TestStaticToken_EmptySecretRejectsEverything(t *testing.T) {
	token := NewStaticToken("")

	if err := token.Check(""); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("Check(\"\") error = %v, want %v", err, ErrInvalidCredential)
	}
}

func TestStaticToken_Issue(t *testing.T) {
	token := NewStaticToken("secret")

	if got := token.Issue("ana"); got != "secret" {
		t.Errorf("Issue() = %q, want %q", got, "secret")
	}

	if err := token.Check(token.Issue("luis")); err != nil {
		t.Errorf("issued token rejected: %v", err)
	}
}

func TestCheckerFunc(t *testing.T) {
	called := ""
	checker := CheckerFunc(func(credential string) error {
		called = credential
		return nil
	})

	if err := checker.Check("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called != "abc" {
		t.Errorf("checker received %q, want %q", called, "abc")
	}
}
