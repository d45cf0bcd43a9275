package fluentmasker

import (
	"context"
	"testing"
)

func TestJSONCodec(t *testing.T) {
	c := JSONCodec()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}

	data, err := c.Marshal(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out map[string]string
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out["a"] != "b" {
		t.Errorf("Unmarshal() = %v", out)
	}
}

func TestOptions_NilIgnored(t *testing.T) {
	m, err := New[pair](WithCodec(nil), WithLogger(nil))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	res, err := m.Mask(context.Background(), &pair{A: "a", B: "b"})
	if err != nil {
		t.Fatalf("Mask() error: %v", err)
	}
	if res.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want %q", res.ContentType, "application/json")
	}
	if res.Payload != `{"A":"a","B":"b"}` {
		t.Errorf("Payload = %s", res.Payload)
	}
}

func TestOptions_Behavior(t *testing.T) {
	m, err := New[pair](WithBehavior(Remove))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m.Behavior() != Remove {
		t.Errorf("Behavior() = %v, want %v", m.Behavior(), Remove)
	}
}
