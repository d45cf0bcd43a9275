package testing

import (
	"encoding/json"
	"testing"
)

func TestTestKey(t *testing.T) {
	key := TestKey(t)
	if len(key) != 32 {
		t.Errorf("TestKey() length = %d, want 32", len(key))
	}
}

func TestTestEncryptor(t *testing.T) {
	enc := TestEncryptor(t)

	plaintext := []byte("test")
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}

	if string(decrypted) != string(plaintext) {
		t.Errorf("round-trip failed")
	}
}

func TestCustomer_Clone(t *testing.T) {
	original := NewCustomer()
	cloned := original.Clone()

	if cloned.Nickname == original.Nickname {
		t.Error("Clone() should copy Nickname, not share it")
	}
	*cloned.Nickname = "changed"
	if *original.Nickname != "Ali" {
		t.Errorf("original Nickname = %q, want %q", *original.Nickname, "Ali")
	}
}

func TestCustomerMasker(t *testing.T) {
	m := CustomerMasker(t)
	res := MustMask(t, m, NewCustomer())

	var out map[string]any
	if err := json.Unmarshal([]byte(res.Payload), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := map[string]any{
		"ID":    "cus_001",
		"Name":  "A**** J****",
		"Email": "a***@example.com",
		"Phone": "+** ** ** ** 78",
		"SSN":   "***-**-6789",
		"Card":  "**** **** **** 1111",
		"IBAN":  "GB82**************5432",
	}
	for k, v := range want {
		if out[k] != v {
			t.Errorf("%s = %v, want %v", k, out[k], v)
		}
	}
	if out["Balance"] != float64(1000) {
		t.Errorf("Balance = %v, want 1000", out["Balance"])
	}
	if _, ok := out["Internal"]; ok {
		t.Error("Internal should not be emitted")
	}
}
