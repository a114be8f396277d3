package types

import (
	"encoding/json"
	"testing"
)

func TestUnlockHash_StringRoundTrip(t *testing.T) {
	uh := NewUnlockHash(UnlockTypePubKey, Hash{0x11, 0x22, 0x33})
	s := uh.String()
	if len(s) != UnlockHashStringLength {
		t.Fatalf("String() length = %d, want %d", len(s), UnlockHashStringLength)
	}
	if s[:2] != "01" {
		t.Errorf("String() prefix = %s, want 01", s[:2])
	}

	parsed, err := ParseUnlockHash(s)
	if err != nil {
		t.Fatalf("ParseUnlockHash: %v", err)
	}
	if parsed != uh {
		t.Errorf("parsed = %v, want %v", parsed, uh)
	}
}

func TestParseUnlockHash_BadChecksum(t *testing.T) {
	s := NewUnlockHash(UnlockTypePubKey, Hash{0x01}).String()
	tampered := s[:len(s)-1] + "0"
	if tampered == s {
		tampered = s[:len(s)-1] + "1"
	}
	if _, err := ParseUnlockHash(tampered); err == nil {
		t.Error("expected checksum error")
	}
}

func TestParseUnlockHash_BadLength(t *testing.T) {
	if _, err := ParseUnlockHash("0102"); err == nil {
		t.Error("expected length error")
	}
}

func TestUnlockHash_JSON(t *testing.T) {
	uh := NewUnlockHash(UnlockTypeAtomicSwap, Hash{0xaa})
	data, err := json.Marshal(uh)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got UnlockHash
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != uh {
		t.Errorf("got %v, want %v", got, uh)
	}
}
