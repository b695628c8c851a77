package security

import "testing"

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(tok) != sessionTokenBytes*2 {
		t.Errorf("token length = %d, want %d", len(tok), sessionTokenBytes*2)
	}

	other, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok == other {
		t.Error("two tokens should not collide")
	}
}
