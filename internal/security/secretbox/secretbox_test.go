package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
)

func setTestKey(t *testing.T) {
	t.Helper()
	k := make([]byte, 32)
	if _, err := rand.Read(k); err != nil {
		t.Fatal(err)
	}
	if err := SetMasterKey(base64.StdEncoding.EncodeToString(k)); err != nil {
		t.Fatal(err)
	}
}

func TestRoundtrip(t *testing.T) {
	setTestKey(t)

	for _, plain := range []string{"", "x", "password-smtp-123", strings.Repeat("a", 4096)} {
		ct, err := Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plain, err)
		}
		if !strings.Contains(ct, "|") {
			t.Fatalf("formato inesperado: %q", ct)
		}
		got, err := Decrypt(ct)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != plain {
			t.Fatalf("roundtrip: got %q, want %q", got, plain)
		}
	}
}

func TestEncrypt_NoncesUnicos(t *testing.T) {
	setTestKey(t)

	a, err := Encrypt("mismo texto")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt("mismo texto")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("dos cifrados del mismo texto no deben coincidir")
	}
}

func TestDecrypt_FormatoInvalido(t *testing.T) {
	setTestKey(t)

	for _, bad := range []string{"", "sin-separador", "a|b|c", "!!!|###"} {
		if _, err := Decrypt(bad); err == nil {
			t.Fatalf("Decrypt(%q) aceptado", bad)
		}
	}
}

func TestDecrypt_CiphertextAlterado(t *testing.T) {
	setTestKey(t)

	ct, err := Encrypt("secreto")
	if err != nil {
		t.Fatal(err)
	}
	// Flip de un byte del ciphertext: GCM debe rechazarlo.
	parts := strings.SplitN(ct, "|", 2)
	raw, _ := base64.StdEncoding.DecodeString(parts[1])
	raw[0] ^= 0xff
	tampered := parts[0] + "|" + base64.StdEncoding.EncodeToString(raw)

	if _, err := Decrypt(tampered); err == nil {
		t.Fatal("ciphertext alterado aceptado")
	}
}

func TestSetMasterKey_Invalida(t *testing.T) {
	if err := SetMasterKey("no-es-base64!!"); err == nil {
		t.Fatal("clave no-base64 aceptada")
	}
	short := base64.StdEncoding.EncodeToString([]byte("corta"))
	if err := SetMasterKey(short); err == nil {
		t.Fatal("clave corta aceptada")
	}
}
