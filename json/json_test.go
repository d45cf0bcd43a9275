package json

import (
	"context"
	"testing"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
)

type account struct {
	Owner string
	Email string
	Note  string
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]string{"a": "<b>&"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"a":"<b>&"}` {
		t.Errorf("Marshal() = %s, want %s", data, `{"a":"<b>&"}`)
	}
}

func TestNewIndent(t *testing.T) {
	c := NewIndent("", "  ")

	data, err := c.Marshal(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid json"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestMaskerPayload(t *testing.T) {
	m, err := fluentmasker.New[account](fluentmasker.WithCodec(New()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	err = fluentmasker.MaskString(m, func(a *account) *string { return &a.Owner },
		func(b *fluentmasker.StringBuilder) *fluentmasker.StringBuilder {
			return b.KeepFirst(1, '*')
		})
	if err != nil {
		t.Fatalf("MaskString() error: %v", err)
	}

	obj := &account{Owner: "Alice", Email: "alice@example.com", Note: "vip"}
	res, err := m.Mask(context.Background(), obj)
	if err != nil {
		t.Fatalf("Mask() error: %v", err)
	}
	if !res.Success {
		t.Fatalf("Mask() failed: %v", res.Err)
	}

	want := `{"Owner":"A****","Email":"alice@example.com","Note":"vip"}`
	if res.Payload != want {
		t.Errorf("Payload = %s, want %s", res.Payload, want)
	}
	if res.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want %q", res.ContentType, "application/json")
	}
}
