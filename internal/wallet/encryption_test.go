package wallet

import (
	"bytes"
	"errors"
	"testing"
)

// fastParams returns low-cost Argon2 params for fast tests.
func fastParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64, // 64 KiB (minimal)
		Iterations:  1,
		Parallelism: 1,
	}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	large := make([]byte, 10000)
	for i := range large {
		large[i] = byte(i % 256)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("secret wallet data")},
		{"seed", testSeedBytes(t)},
		{"large", large},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Encrypt(tt.data, []byte("pass"), fastParams())
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			got, err := Decrypt(sealed, []byte("pass"))
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("decrypted %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestDecrypt_Failures(t *testing.T) {
	sealed, err := Encrypt([]byte("data"), []byte("correct"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	corrupted := append([]byte(nil), sealed...)
	corrupted[len(corrupted)-1] ^= 0xFF

	if _, err := Decrypt(sealed, []byte("wrong")); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("wrong password: err = %v, want ErrWrongPassword", err)
	}
	if _, err := Decrypt(corrupted, []byte("correct")); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("corrupted: err = %v, want ErrWrongPassword", err)
	}
	if _, err := Decrypt([]byte("too short"), []byte("correct")); err == nil {
		t.Error("truncated data should fail")
	}
}

func TestEncrypt_DifferentEachTime(t *testing.T) {
	enc1, err := Encrypt([]byte("same data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	enc2, err := Encrypt([]byte("same data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(enc1, enc2) {
		t.Error("sealing twice should use a fresh salt and nonce")
	}
	if want := headerSize + 24 + len("same data") + 16; len(enc1) != want {
		t.Errorf("sealed length = %d, want %d", len(enc1), want)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Memory != 64*1024 || p.Iterations != 3 || p.Parallelism != 4 {
		t.Errorf("DefaultParams() = %+v", p)
	}
}
