package fluentmasker

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"
)

type accessorSubject struct {
	ID       string `mask:"readonly"`
	Name     string
	Age      int
	Nick     *string
	Secret   string `mask:"-"`
	internal string
}

func TestCompile_Order(t *testing.T) {
	a, err := Compile[accessorSubject]()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	want := []string{"ID", "Name", "Age", "Nick"}
	if got := a.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if a.TypeName() != "accessorSubject" {
		t.Errorf("TypeName() = %q, want %q", a.TypeName(), "accessorSubject")
	}
}

func TestCompile_Descriptors(t *testing.T) {
	a, _ := Compile[accessorSubject]()

	id, ok := a.Property("ID")
	if !ok {
		t.Fatal("Property(ID) not found")
	}
	if !id.ReadOnly {
		t.Error("ID should be read-only")
	}

	nick, _ := a.Property("Nick")
	if !nick.Pointer || nick.Elem != reflect.TypeFor[string]() {
		t.Errorf("Nick = {Pointer: %v, Elem: %v}, want pointer to string", nick.Pointer, nick.Elem)
	}

	if _, ok := a.Property("Secret"); ok {
		t.Error("Secret is tagged mask:\"-\" and should be skipped")
	}
	if _, ok := a.Property("internal"); ok {
		t.Error("unexported fields should be skipped")
	}

	if len(a.Properties()) != 4 {
		t.Errorf("len(Properties()) = %d, want 4", len(a.Properties()))
	}
}

func TestCompile_NonStruct(t *testing.T) {
	_, err := Compile[int]()
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Compile[int]() error = %v, want ErrUnsupportedType", err)
	}
}

func TestAccessor_Get(t *testing.T) {
	a, _ := Compile[accessorSubject]()
	obj := &accessorSubject{ID: "x1", Name: "Ann", Age: 30}

	got, err := a.Get(obj, "Name")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "Ann" {
		t.Errorf("Get(Name) = %v, want %q", got, "Ann")
	}

	// Read-only properties are still readable.
	if got, _ := a.Get(obj, "ID"); got != "x1" {
		t.Errorf("Get(ID) = %v, want %q", got, "x1")
	}

	if _, err := a.Get(obj, "Missing"); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("Get(Missing) error = %v, want ErrPropertyNotFound", err)
	}
	if _, err := a.Get(nil, "Name"); !errors.Is(err, ErrNilInstance) {
		t.Errorf("Get(nil) error = %v, want ErrNilInstance", err)
	}
}

func TestAccessor_Set(t *testing.T) {
	a, _ := Compile[accessorSubject]()
	obj := &accessorSubject{}

	if err := a.Set(obj, "Name", "Bob"); err != nil {
		t.Fatalf("Set(Name) error: %v", err)
	}
	if obj.Name != "Bob" {
		t.Errorf("Name = %q, want %q", obj.Name, "Bob")
	}

	if err := a.Set(obj, "Age", int64(41)); err != nil {
		t.Fatalf("Set(Age, int64) error: %v", err)
	}
	if obj.Age != 41 {
		t.Errorf("Age = %d, want 41", obj.Age)
	}

	if err := a.Set(obj, "Nick", "bobby"); err != nil {
		t.Fatalf("Set(Nick) error: %v", err)
	}
	if obj.Nick == nil || *obj.Nick != "bobby" {
		t.Errorf("Nick = %v, want pointer to %q", obj.Nick, "bobby")
	}

	if err := a.Set(obj, "Nick", nil); err != nil {
		t.Fatalf("Set(Nick, nil) error: %v", err)
	}
	if obj.Nick != nil {
		t.Errorf("Nick = %v, want nil", obj.Nick)
	}
}

func TestAccessor_SetErrors(t *testing.T) {
	a, _ := Compile[accessorSubject]()
	obj := &accessorSubject{}

	tests := []struct {
		name  string
		prop  string
		value any
		want  error
	}{
		{"read-only", "ID", "x", ErrPropertyReadOnly},
		{"unknown", "Missing", "x", ErrPropertyNotFound},
		{"string into int", "Age", "forty", ErrTypeMismatch},
		{"int into string", "Name", 65, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.Set(obj, tt.prop, tt.value); !errors.Is(err, tt.want) {
				t.Errorf("Set(%s, %v) error = %v, want %v", tt.prop, tt.value, err, tt.want)
			}
		})
	}

	if err := a.Set(nil, "Name", "x"); !errors.Is(err, ErrNilInstance) {
		t.Errorf("Set(nil) error = %v, want ErrNilInstance", err)
	}
}

type accountID string

type offsetSubject struct {
	Flag    bool
	Code    accountID
	Score   int16
	Comment *string
	Owner   string
}

func TestLoaderFor(t *testing.T) {
	a, err := Compile[offsetSubject]()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	comment := "hello"
	obj := &offsetSubject{Flag: true, Code: "acc-9", Score: -7, Comment: &comment, Owner: "Bo"}
	base := unsafe.Pointer(obj)

	if got := *loaderFor[string](a.props["Owner"])(base); got != "Bo" {
		t.Errorf("load(Owner) = %q, want %q", got, "Bo")
	}
	if got := *loaderFor[string](a.props["Code"])(base); got != "acc-9" {
		t.Errorf("load(Code) = %q, want %q", got, "acc-9")
	}
	if got := *loaderFor[int16](a.props["Score"])(base); got != -7 {
		t.Errorf("load(Score) = %d, want -7", got)
	}
	if got := *loaderFor[int64](a.props["Score"])(base); got != -7 {
		t.Errorf("load(Score as int64) = %d, want -7", got)
	}

	p := loaderFor[string](a.props["Comment"])(base)
	if p == nil || *p != "hello" {
		t.Fatalf("load(Comment) = %v, want hello", p)
	}
	*p = "changed"
	if comment != "hello" {
		t.Error("loaded value aliases the field")
	}

	obj.Comment = nil
	if p := loaderFor[string](a.props["Comment"])(base); p != nil {
		t.Errorf("load(nil Comment) = %q, want nil", *p)
	}
}

func TestAccessor_OffsetSetLeavesNeighbours(t *testing.T) {
	a, _ := Compile[offsetSubject]()
	obj := &offsetSubject{Flag: true, Code: "acc-1", Score: 3, Owner: "Bo"}

	if err := a.Set(obj, "Score", int16(99)); err != nil {
		t.Fatalf("Set(Score) error: %v", err)
	}
	if err := a.Set(obj, "Code", "acc-2"); err != nil {
		t.Fatalf("Set(Code) error: %v", err)
	}

	want := offsetSubject{Flag: true, Code: "acc-2", Score: 99, Owner: "Bo"}
	if *obj != want {
		t.Errorf("obj = %+v, want %+v", *obj, want)
	}
}
