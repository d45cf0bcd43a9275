package fluentmasker

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for masking events.
var (
	SignalMaskerCreated = capitan.NewSignal("fluentmasker.masker.created", "Masker instantiated")
	SignalMaskStart     = capitan.NewSignal("fluentmasker.mask.start", "Mask operation beginning")
	SignalMaskComplete  = capitan.NewSignal("fluentmasker.mask.complete", "Mask operation finished")
	SignalRuleFailed    = capitan.NewSignal("fluentmasker.rule.failed", "Rule chain failed for a property")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyProperty    = capitan.NewStringKey("property")
	KeyBehavior    = capitan.NewStringKey("behavior")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyMaskedCount = capitan.NewIntKey("masked_count")
	KeyStep        = capitan.NewIntKey("step")
)

// emitMaskerCreated emits an event when a masker is created.
func emitMaskerCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalMaskerCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitMaskStart emits an event when a mask pass begins.
func emitMaskStart(ctx context.Context, contentType, typeName string, behavior PropertyBehavior) {
	capitan.Emit(ctx, SignalMaskStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyBehavior.Field(behavior.String()),
	)
}

// emitMaskComplete emits an event when a mask pass finishes.
func emitMaskComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, masked int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyMaskedCount.Field(masked),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMaskComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMaskComplete, fields...)
	}
}

// emitRuleFailed emits an event when a property's chain fails.
func emitRuleFailed(ctx context.Context, typeName, property string, step int, err error) {
	capitan.Error(ctx, SignalRuleFailed,
		KeyTypeName.Field(typeName),
		KeyProperty.Field(property),
		KeyStep.Field(step),
		KeyError.Field(err),
	)
}
