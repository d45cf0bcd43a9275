// Package fluentmasker masks sensitive properties of Go structs before they
// leave a process boundary.
//
// A Masker maps properties of a struct type to ordered rule chains. Each
// Mask call reads every participating property through a compiled accessor,
// folds it through its chain and serializes the result with a pluggable
// Codec.
//
// # Registering Rules
//
// Rules can be registered directly or declared with a fluent builder:
//
//	type Customer struct {
//	    Name  string
//	    Email string
//	    Phone string
//	    SSN   string
//	}
//
//	m, _ := fluentmasker.New[Customer]()
//
//	// Direct rules
//	fluentmasker.Register(m, func(c *Customer) *string { return &c.Email }, fluentmasker.Email())
//
//	// Builder
//	fluentmasker.MaskString(m, func(c *Customer) *string { return &c.Phone },
//	    func(b *fluentmasker.StringBuilder) *fluentmasker.StringBuilder {
//	        return b.FormatPreserving(2, '*', true)
//	    })
//
// Repeated registrations for the same property append to its chain. Every
// builder callback receives a fresh builder.
//
// # Property Behavior
//
// The property behavior decides which properties appear in the output:
//
//   - Exclude (default): every property; unregistered ones pass through
//   - Include: only properties with a chain
//   - Remove: only properties without a chain
//
// # Results
//
// Mask returns a Result. A failing chain marks the result unsuccessful and
// emits that property as null; sibling properties are still masked. The
// payload keeps T's field declaration order, and masking the same instance
// twice with deterministic rules yields identical bytes.
//
//	res, err := m.Mask(ctx, &customer)
//	if err != nil {
//	    return err // nil instance
//	}
//	if !res.Success {
//	    log.Printf("masking failed: %s", res.Detail())
//	}
//
// # Seeds
//
// Shuffle, RandomReplace, Hash, Noise and ShiftDate are seed-aware. A seed
// set on a builder with WithSeed or WithSeedValue binds to the next
// seed-aware rule added; it is dropped if none follows.
//
// # Codecs
//
// JSON is the default. The json, yaml, msgpack, xml and bson subpackages
// provide alternatives:
//
//	m, _ := fluentmasker.New[Customer](fluentmasker.WithCodec(yaml.New()))
//
// # Observability
//
// Mask operations emit capitan signals (SignalMaskStart, SignalMaskComplete,
// SignalRuleFailed) and log through the zap logger given to WithLogger.
package fluentmasker
