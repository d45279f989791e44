package utils

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken("secret", "sid-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sid, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sid != "sid-123" {
		t.Fatalf("got sid %q", sid)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _ := NewSessionToken("secret", "sid-123")
	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatalf("token must not verify under a different secret")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not.a.jwt"); err == nil {
		t.Fatalf("garbage must not parse")
	}
}

func TestRandomHexLengthAndUniqueness(t *testing.T) {
	a, err := RandomHex(16)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, _ := RandomHex(16)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("16 bytes must encode to 32 hex chars, got %d/%d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("two draws must differ")
	}
}
