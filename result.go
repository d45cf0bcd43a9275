package fluentmasker

import (
	"encoding/xml"
	"fmt"
	"reflect"
)

// Result is the outcome of one Mask call.
type Result struct {
	// Payload is the serialized masked structure. It is populated even when
	// some properties failed, with those properties set to null.
	Payload string

	// Success is true when every chain ran and the payload was serialized.
	Success bool

	// Err describes every failure of the pass, joined. Nil on success.
	Err error

	// Masked counts the properties whose chains ran successfully.
	Masked int

	// ContentType is the codec's MIME type.
	ContentType string
}

// Detail returns the failure detail, or "" on success.
func (r *Result) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// outputPlan describes the shadow structure produced for one behavior and
// set of registered chains. Plans are immutable once built.
type outputPlan struct {
	behavior PropertyBehavior
	typ      reflect.Type
	fields   []planField
}

// planField maps one property of T to a field of the shadow structure.
type planField struct {
	prop  *PropertyDescriptor
	chain *propertyChain // nil when the value passes through
	out   int            // field index in the shadow structure
}

var (
	anyType     = reflect.TypeFor[any]()
	xmlNameType = reflect.TypeFor[xml.Name]()
)

// buildPlan selects properties according to behavior and derives a struct
// type whose field order matches T's declaration order.
func buildPlan[T any](a *Accessor[T], behavior PropertyBehavior, chains map[string]*propertyChain) *outputPlan {
	plan := &outputPlan{behavior: behavior}

	rootName := a.TypeName()
	if rootName == "" {
		rootName = "Masked"
	}
	fields := []reflect.StructField{{
		Name: "XMLName",
		Type: xmlNameType,
		Tag:  reflect.StructTag(fmt.Sprintf(`xml:"%s" json:"-" yaml:"-" msgpack:"-" bson:"-"`, rootName)),
	}}

	for _, name := range a.order {
		pd := a.props[name]
		if pd.Name == "XMLName" {
			continue
		}
		pc, registered := chains[name]

		switch behavior {
		case Include:
			if !registered {
				continue
			}
		case Remove:
			if registered {
				continue
			}
			pc = nil
		}

		plan.fields = append(plan.fields, planField{
			prop:  pd,
			chain: pc,
			out:   len(fields),
		})
		fields = append(fields, reflect.StructField{
			Name: pd.Name,
			Type: anyType,
			Tag: reflect.StructTag(fmt.Sprintf(`json:"%[1]s" yaml:"%[1]s" msgpack:"%[1]s" bson:"%[1]s" xml:"%[1]s"`,
				pd.Name)),
		})
	}

	plan.typ = reflect.StructOf(fields)
	return plan
}
