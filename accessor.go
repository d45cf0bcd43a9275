package fluentmasker

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
	"unsafe"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the property tag with sentinel so Scan surfaces it.
	sentinel.Tag(tagName)
}

const (
	tagName     = "mask"
	tagReadOnly = "readonly"
	tagSkip     = "-"
)

// PropertyDescriptor describes one accessible property of a struct type.
// Descriptors are built once per type and never mutated afterwards.
type PropertyDescriptor struct {
	Name     string       // Go field name, used as the output key
	Type     reflect.Type // Declared field type
	Elem     reflect.Type // Value type rules operate on (pointer element for pointer fields)
	Pointer  bool         // True when the field is a pointer to Elem
	ReadOnly bool         // True when compiled without a setter
	Offset   uintptr      // Field offset from the start of the struct

	get   func(base unsafe.Pointer) reflect.Value
	set   func(base unsafe.Pointer, v reflect.Value)
}

// Accessor provides compiled property access for struct type T.
// Accessors are immutable after compilation and safe for concurrent use.
type Accessor[T any] struct {
	typeName string
	order    []string
	props    map[string]*PropertyDescriptor
}

// Compile returns the cached accessor for T, building it on first use.
// T must be a struct type.
func Compile[T any]() (*Accessor[T], error) {
	return cachedAccessor[T]()
}

// buildAccessor scans T and compiles a getter and setter per exported field.
// Both address the field by offset from the struct base; no field lookup
// happens after compilation.
func buildAccessor[T any]() (*Accessor[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedType, rt)
	}

	spec := sentinel.Scan[T]()
	a := &Accessor[T]{
		typeName: rt.Name(),
		order:    make([]string, 0, len(spec.Fields)),
		props:    make(map[string]*PropertyDescriptor, len(spec.Fields)),
	}

	for _, field := range spec.Fields {
		if !isExported(field.Name) || len(field.Index) != 1 {
			continue
		}
		tag := field.Tags[tagName]
		if tag == tagSkip {
			continue
		}

		sf := rt.FieldByIndex(field.Index)
		pd := &PropertyDescriptor{
			Name:     field.Name,
			Type:     field.ReflectType,
			Elem:     field.ReflectType,
			ReadOnly: hasTagOption(tag, tagReadOnly),
			Offset:   sf.Offset,
		}
		if pd.Type.Kind() == reflect.Pointer {
			pd.Pointer = true
			pd.Elem = pd.Type.Elem()
		}

		typ, off := pd.Type, pd.Offset
		pd.get = func(base unsafe.Pointer) reflect.Value {
			return reflect.NewAt(typ, unsafe.Add(base, off)).Elem()
		}
		if !pd.ReadOnly {
			pd.set = func(base unsafe.Pointer, v reflect.Value) {
				reflect.NewAt(typ, unsafe.Add(base, off)).Elem().Set(v)
			}
		}

		a.order = append(a.order, pd.Name)
		a.props[pd.Name] = pd
	}

	return a, nil
}

// TypeName returns the unqualified name of T.
func (a *Accessor[T]) TypeName() string {
	return a.typeName
}

// Names returns compiled property names in declaration order.
func (a *Accessor[T]) Names() []string {
	return append([]string(nil), a.order...)
}

// Property returns the descriptor for name.
func (a *Accessor[T]) Property(name string) (PropertyDescriptor, bool) {
	pd, ok := a.props[name]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return *pd, true
}

// Properties returns all descriptors in declaration order.
func (a *Accessor[T]) Properties() []PropertyDescriptor {
	out := make([]PropertyDescriptor, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.props[name])
	}
	return out
}

// Get returns the current value of the named property.
func (a *Accessor[T]) Get(obj *T, name string) (any, error) {
	pd, ok := a.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, a.typeName, name)
	}
	if obj == nil {
		return nil, ErrNilInstance
	}
	return pd.get(unsafe.Pointer(obj)).Interface(), nil
}

// Set writes value to the named property. A nil value stores the zero value.
// Values convertible to the property type (or its pointer element) are converted.
func (a *Accessor[T]) Set(obj *T, name string, value any) error {
	pd, ok := a.props[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, a.typeName, name)
	}
	if pd.set == nil {
		return fmt.Errorf("%w: %s.%s", ErrPropertyReadOnly, a.typeName, name)
	}
	if obj == nil {
		return ErrNilInstance
	}

	rv, err := pd.coerce(value)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", a.typeName, name, err)
	}
	pd.set(unsafe.Pointer(obj), rv)
	return nil
}

// read returns the raw reflect value of the property of the struct at base.
func (pd *PropertyDescriptor) read(base unsafe.Pointer) reflect.Value {
	return pd.get(base)
}

// coerce converts value into a reflect.Value assignable to the property.
func (pd *PropertyDescriptor) coerce(value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(pd.Type), nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(pd.Type) {
		return v, nil
	}

	// Accept a pointer to the element type for pointer fields and dereference
	// pointers for value fields.
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(pd.Type), nil
		}
		if !pd.Pointer {
			v = v.Elem()
		}
	}

	if pd.Pointer {
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		if !v.Type().ConvertibleTo(pd.Elem) {
			return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, v.Type(), pd.Type)
		}
		p := reflect.New(pd.Elem)
		p.Elem().Set(v.Convert(pd.Elem))
		return p, nil
	}

	if !v.Type().ConvertibleTo(pd.Type) || !sameCategory(v.Type(), pd.Type) {
		return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, v.Type(), pd.Type)
	}
	return v.Convert(pd.Type), nil
}

// sameCategory rejects conversions Go allows but masking never intends,
// such as int to string.
func sameCategory(from, to reflect.Type) bool {
	return category(from) == category(to)
}

func category(t reflect.Type) reflect.Kind {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return reflect.Float64
	default:
		return t.Kind()
	}
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func hasTagOption(tag, option string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == option {
			return true
		}
	}
	return false
}
