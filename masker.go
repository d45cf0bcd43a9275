package fluentmasker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
	"unsafe"

	"go.uber.org/zap"
)

// PropertyBehavior controls which properties of T appear in masked output.
type PropertyBehavior int

const (
	// Exclude emits every property; registered ones are transformed and the
	// rest pass through untouched. This is the default.
	Exclude PropertyBehavior = iota

	// Include emits only properties with a registered chain.
	Include

	// Remove emits every property except those with a registered chain.
	Remove
)

func (b PropertyBehavior) String() string {
	switch b {
	case Exclude:
		return "exclude"
	case Include:
		return "include"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("PropertyBehavior(%d)", int(b))
	}
}

// ParseBehavior converts "include", "exclude" or "remove" to a PropertyBehavior.
func ParseBehavior(s string) (PropertyBehavior, error) {
	switch s {
	case "exclude", "Exclude":
		return Exclude, nil
	case "include", "Include":
		return Include, nil
	case "remove", "Remove":
		return Remove, nil
	}
	return Exclude, fmt.Errorf("%w: unknown behavior %q", ErrInvalidArgument, s)
}

// propertyChain is the type-erased registry entry for one property.
type propertyChain struct {
	prop  *PropertyDescriptor
	chain any // Chain[V]
	steps int
	run   func(base unsafe.Pointer) (any, int, error)
}

// Masker maps properties of T to rule chains and produces masked payloads.
//
// Configure a Masker with Register, RegisterName, MaskString, MaskNumber and
// MaskDate, then call Mask any number of times. Configuration and Mask are
// safe for concurrent use; a Mask call observes the configuration in effect
// when it started.
type Masker[T any] struct {
	accessor *Accessor[T]
	codec    Codec
	logger   *zap.Logger

	mu       sync.RWMutex
	behavior PropertyBehavior
	chains   map[string]*propertyChain
	plan     *outputPlan // rebuilt lazily after configuration changes
}

// New creates a Masker for struct type T.
func New[T any](opts ...Option) (*Masker[T], error) {
	accessor, err := Compile[T]()
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Masker[T]{
		accessor: accessor,
		codec:    o.codec,
		logger:   o.logger.With(zap.String("type", accessor.TypeName())),
		behavior: o.behavior,
		chains:   make(map[string]*propertyChain),
	}

	emitMaskerCreated(context.Background(), m.codec.ContentType(), accessor.TypeName())
	return m, nil
}

// Accessor returns the compiled accessor for T.
func (m *Masker[T]) Accessor() *Accessor[T] {
	return m.accessor
}

// SetBehavior sets the property behavior applied by subsequent Mask calls.
// Returns the masker for chaining. Unknown values behave like Exclude.
func (m *Masker[T]) SetBehavior(b PropertyBehavior) *Masker[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behavior = b
	m.plan = nil
	return m
}

// Behavior returns the active property behavior.
func (m *Masker[T]) Behavior() PropertyBehavior {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.behavior
}

// ChainLen returns the number of rules registered for the named property.
func (m *Masker[T]) ChainLen(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pc, ok := m.chains[name]; ok {
		return pc.steps
	}
	return 0
}

// Registered returns the properties with a chain, in declaration order.
func (m *Masker[T]) Registered() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	for _, name := range m.accessor.order {
		if _, ok := m.chains[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Register appends rules to the chain of the property selected by selector.
// The selector must return the address of a field of its argument:
//
//	fluentmasker.Register(m, func(c *Customer) *string { return &c.Email }, fluentmasker.Email())
//
// Pointer fields are registered by name with RegisterName.
func Register[T, V any](m *Masker[T], selector func(*T) *V, rules ...Rule[V]) error {
	pd, err := resolveSelector(m.accessor, selector)
	if err != nil {
		return err
	}
	return registerRules(m, pd, rules, "direct")
}

// RegisterName appends rules to the chain of the named property. Pointer
// fields are addressed by their element type: a *string field takes
// Rule[string].
func RegisterName[T, V any](m *Masker[T], name string, rules ...Rule[V]) error {
	pd, err := lookupProperty(m.accessor, name)
	if err != nil {
		return err
	}
	return registerRules(m, pd, rules, "direct")
}

// MaskString builds a chain with a fresh StringBuilder and appends it to the
// selected property.
func MaskString[T any](m *Masker[T], selector func(*T) *string, build func(*StringBuilder) *StringBuilder) error {
	pd, err := resolveSelector(m.accessor, selector)
	if err != nil {
		return err
	}
	return registerStringBuilder(m, pd, build)
}

// MaskStringName is MaskString addressed by property name.
func MaskStringName[T any](m *Masker[T], name string, build func(*StringBuilder) *StringBuilder) error {
	pd, err := lookupProperty(m.accessor, name)
	if err != nil {
		return err
	}
	return registerStringBuilder(m, pd, build)
}

// MaskNumber builds a chain with a fresh NumberBuilder and appends it to the
// selected property.
func MaskNumber[T any, N Number](m *Masker[T], selector func(*T) *N, build func(*NumberBuilder[N]) *NumberBuilder[N]) error {
	pd, err := resolveSelector(m.accessor, selector)
	if err != nil {
		return err
	}
	return registerNumberBuilder(m, pd, build)
}

// MaskNumberName is MaskNumber addressed by property name.
func MaskNumberName[T any, N Number](m *Masker[T], name string, build func(*NumberBuilder[N]) *NumberBuilder[N]) error {
	pd, err := lookupProperty(m.accessor, name)
	if err != nil {
		return err
	}
	return registerNumberBuilder(m, pd, build)
}

// MaskDate builds a chain with a fresh DateBuilder and appends it to the
// selected property.
func MaskDate[T any](m *Masker[T], selector func(*T) *time.Time, build func(*DateBuilder) *DateBuilder) error {
	pd, err := resolveSelector(m.accessor, selector)
	if err != nil {
		return err
	}
	return registerDateBuilder(m, pd, build)
}

// MaskDateName is MaskDate addressed by property name.
func MaskDateName[T any](m *Masker[T], name string, build func(*DateBuilder) *DateBuilder) error {
	pd, err := lookupProperty(m.accessor, name)
	if err != nil {
		return err
	}
	return registerDateBuilder(m, pd, build)
}

func registerRules[T, V any](m *Masker[T], pd *PropertyDescriptor, rules []Rule[V], source string) error {
	if len(rules) == 0 {
		return invalidArg("Register", "rules", "at least one rule is required for %s", pd.Name)
	}
	for i, r := range rules {
		if r == nil {
			return invalidArg("Register", "rules", "rule %d for %s is nil", i, pd.Name)
		}
	}
	return addChain(m, pd, NewChain(rules...), source)
}

func registerStringBuilder[T any](m *Masker[T], pd *PropertyDescriptor, build func(*StringBuilder) *StringBuilder) error {
	if build == nil {
		return invalidArg("MaskString", "build", "must not be nil")
	}
	b := build(NewStringBuilder())
	if b == nil {
		return invalidArg("MaskString", "build", "returned nil builder for %s", pd.Name)
	}
	chain, err := b.Build()
	if err != nil {
		return fmt.Errorf("property %s: %w", pd.Name, err)
	}
	m.noteDiscardedSeed(pd.Name, b.HasPendingSeed())
	return addChain(m, pd, chain, "builder")
}

func registerNumberBuilder[T any, N Number](m *Masker[T], pd *PropertyDescriptor, build func(*NumberBuilder[N]) *NumberBuilder[N]) error {
	if build == nil {
		return invalidArg("MaskNumber", "build", "must not be nil")
	}
	b := build(NewNumberBuilder[N]())
	if b == nil {
		return invalidArg("MaskNumber", "build", "returned nil builder for %s", pd.Name)
	}
	chain, err := b.Build()
	if err != nil {
		return fmt.Errorf("property %s: %w", pd.Name, err)
	}
	m.noteDiscardedSeed(pd.Name, b.HasPendingSeed())
	return addChain(m, pd, chain, "builder")
}

func registerDateBuilder[T any](m *Masker[T], pd *PropertyDescriptor, build func(*DateBuilder) *DateBuilder) error {
	if build == nil {
		return invalidArg("MaskDate", "build", "must not be nil")
	}
	b := build(NewDateBuilder())
	if b == nil {
		return invalidArg("MaskDate", "build", "returned nil builder for %s", pd.Name)
	}
	chain, err := b.Build()
	if err != nil {
		return fmt.Errorf("property %s: %w", pd.Name, err)
	}
	m.noteDiscardedSeed(pd.Name, b.HasPendingSeed())
	return addChain(m, pd, chain, "builder")
}

// noteDiscardedSeed logs a seed that no seed-aware rule consumed. The seed is
// still dropped; reporting it is all we do.
func (m *Masker[T]) noteDiscardedSeed(property string, pending bool) {
	if pending {
		m.logger.Debug("pending seed discarded: no seed-aware rule followed",
			zap.String("property", property))
	}
}

// addChain appends c to the property's chain, creating it if needed.
func addChain[T, V any](m *Masker[T], pd *PropertyDescriptor, c Chain[V], source string) error {
	vt := reflect.TypeFor[V]()
	if !compatible(pd.Elem, vt) {
		return fmt.Errorf("%w: property %s is %s, rules operate on %s", ErrTypeMismatch, pd.Name, pd.Type, vt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.chains[pd.Name]; ok {
		prev, ok := existing.chain.(Chain[V])
		if !ok {
			return fmt.Errorf("%w: property %s already has rules of another type", ErrTypeMismatch, pd.Name)
		}
		c = prev.append(c.rules...)
	}

	m.chains[pd.Name] = &propertyChain{
		prop:  pd,
		chain: c,
		steps: c.Len(),
		run:   runnerFor(pd, c),
	}
	m.plan = nil

	m.logger.Debug("registered rule chain",
		zap.String("property", pd.Name),
		zap.String("source", source),
		zap.Int("rules", c.Len()),
	)
	return nil
}

// runnerFor returns a type-erased function folding a field through c.
func runnerFor[V any](pd *PropertyDescriptor, c Chain[V]) func(base unsafe.Pointer) (any, int, error) {
	load := loaderFor[V](pd)
	return func(base unsafe.Pointer) (any, int, error) {
		out, step, err := c.apply(load(base))
		if err != nil {
			return nil, step, err
		}
		if out == nil {
			return nil, -1, nil
		}
		return *out, -1, nil
	}
}

// loaderFor returns a function copying the property of the struct at base
// into a fresh *V. Fields declared exactly as V or *V are read through
// their offset; named types convertible to V go through reflection.
func loaderFor[V any](pd *PropertyDescriptor) func(base unsafe.Pointer) *V {
	vt := reflect.TypeFor[V]()
	off := pd.Offset
	switch {
	case pd.Elem == vt && pd.Pointer:
		return func(base unsafe.Pointer) *V {
			p := *(**V)(unsafe.Add(base, off))
			if p == nil {
				return nil
			}
			v := *p
			return &v
		}
	case pd.Elem == vt:
		return func(base unsafe.Pointer) *V {
			v := *(*V)(unsafe.Add(base, off))
			return &v
		}
	}
	return func(base unsafe.Pointer) *V {
		return toValue[V](pd.read(base), pd.Pointer, vt)
	}
}

// toValue copies a field into a *V, returning nil for nil pointer fields.
func toValue[V any](field reflect.Value, pointer bool, vt reflect.Type) *V {
	if pointer {
		if field.IsNil() {
			return nil
		}
		field = field.Elem()
	}
	if v, ok := field.Interface().(V); ok {
		return &v
	}
	v := field.Convert(vt).Interface().(V)
	return &v
}

// compatible reports whether values of elem can be masked by Rule[V].
func compatible(elem, vt reflect.Type) bool {
	if elem == vt {
		return true
	}
	return sameCategory(elem, vt) && elem.ConvertibleTo(vt) && vt.ConvertibleTo(elem)
}

// lookupProperty returns the descriptor for name.
func lookupProperty[T any](a *Accessor[T], name string) (*PropertyDescriptor, error) {
	pd, ok := a.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrPropertyNotFound, a.typeName, name)
	}
	return pd, nil
}

// resolveSelector maps a field-address selector to its property by calling
// it on a zero T and matching the returned offset and type.
func resolveSelector[T, V any](a *Accessor[T], selector func(*T) *V) (*PropertyDescriptor, error) {
	if selector == nil {
		return nil, fmt.Errorf("%w: nil selector", ErrInvalidSelector)
	}

	var zero T
	p := selector(&zero)
	if p == nil {
		return nil, fmt.Errorf("%w: selector returned nil", ErrInvalidSelector)
	}

	base := uintptr(unsafe.Pointer(&zero))
	addr := uintptr(unsafe.Pointer(p))
	if addr < base || addr >= base+unsafe.Sizeof(zero) {
		return nil, fmt.Errorf("%w: selector must return the address of a field of %s", ErrInvalidSelector, a.typeName)
	}

	offset := addr - base
	vt := reflect.TypeFor[V]()
	for _, name := range a.order {
		pd := a.props[name]
		if pd.Offset == offset && pd.Type == vt {
			return pd, nil
		}
	}
	return nil, fmt.Errorf("%w: no accessible %s field at offset %d of %s", ErrInvalidSelector, vt, offset, a.typeName)
}

// Mask runs every registered chain against obj and serializes the result.
//
// Rule and codec failures are reported through Result with Success false; a
// failing property is emitted as null and never as its raw value. The
// returned error is reserved for misuse, such as a nil instance.
func (m *Masker[T]) Mask(ctx context.Context, obj *T) (*Result, error) {
	if obj == nil {
		return nil, ErrNilInstance
	}

	plan := m.currentPlan()
	typeName := m.accessor.TypeName()
	contentType := m.codec.ContentType()

	start := time.Now()
	emitMaskStart(ctx, contentType, typeName, plan.behavior)

	result := &Result{ContentType: contentType}
	defer func() {
		emitMaskComplete(ctx, contentType, typeName, len(result.Payload),
			time.Since(start), result.Masked, result.Err)
	}()

	shaped, errs := m.assemble(ctx, plan, unsafe.Pointer(obj), result)

	data, err := m.codec.Marshal(shaped.Addr().Interface())
	if err != nil {
		errs = append(errs, newCodecError(ErrMarshal, err))
	} else {
		result.Payload = string(data)
	}

	if len(errs) > 0 {
		result.Err = errors.Join(errs...)
		return result, nil
	}
	result.Success = true
	return result, nil
}

// assemble folds each planned property and stores it in the shadow struct.
func (m *Masker[T]) assemble(ctx context.Context, plan *outputPlan, base unsafe.Pointer, result *Result) (reflect.Value, []error) {
	shaped := reflect.New(plan.typ).Elem()
	var errs []error

	for _, f := range plan.fields {
		var value any
		if f.chain == nil {
			value = f.prop.read(base).Interface()
		} else {
			out, step, err := f.chain.run(base)
			if err != nil {
				terr := newTransformError(f.prop.Name, step, err)
				errs = append(errs, terr)
				emitRuleFailed(ctx, m.accessor.TypeName(), f.prop.Name, step, err)
				m.logger.Warn("rule chain failed",
					zap.String("property", f.prop.Name),
					zap.Int("step", step),
					zap.Error(err),
				)
				continue
			}
			value = out
			result.Masked++
		}

		if value != nil {
			shaped.Field(f.out).Set(reflect.ValueOf(value))
		}
	}

	return shaped, errs
}

// MaskValue returns a masked copy of obj typed as T. Transformed values are
// written back through the accessor; properties the behavior omits are reset
// to their zero value. obj itself is never modified. A read-only property
// that would need a write fails with ErrPropertyReadOnly.
func (m *Masker[T]) MaskValue(ctx context.Context, obj *T) (*T, error) {
	if obj == nil {
		return nil, ErrNilInstance
	}

	plan := m.currentPlan()

	var clone T
	if c, ok := any(*obj).(Cloner[T]); ok {
		clone = c.Clone()
	} else {
		clone = *obj
	}

	planned := make(map[string]planField, len(plan.fields))
	for _, f := range plan.fields {
		planned[f.prop.Name] = f
	}

	base := unsafe.Pointer(obj)
	var errs []error
	for _, name := range m.accessor.order {
		f, ok := planned[name]
		switch {
		case !ok && name == "XMLName":
			continue
		case !ok:
			if err := m.accessor.Set(&clone, name, nil); err != nil {
				errs = append(errs, err)
			}
		case f.chain != nil:
			out, step, err := f.chain.run(base)
			if err != nil {
				errs = append(errs, newTransformError(name, step, err))
				emitRuleFailed(ctx, m.accessor.TypeName(), name, step, err)
				continue
			}
			if err := m.accessor.Set(&clone, name, out); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &clone, nil
}

// currentPlan returns the cached output plan, building it if configuration
// changed since the last call.
func (m *Masker[T]) currentPlan() *outputPlan {
	m.mu.RLock()
	plan := m.plan
	m.mu.RUnlock()
	if plan != nil {
		return plan
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plan == nil {
		m.plan = buildPlan(m.accessor, m.behavior, m.chains)
	}
	return m.plan
}
