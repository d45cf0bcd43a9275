package fluentmasker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitMaskerCreated(_ *testing.T) {
	// Should not panic
	emitMaskerCreated(context.Background(), "application/json", "TestType")
}

func TestEmitMaskStart(_ *testing.T) {
	emitMaskStart(context.Background(), "application/json", "TestType", Exclude)
}

func TestEmitMaskComplete_Success(_ *testing.T) {
	emitMaskComplete(context.Background(), "application/json", "TestType", 128, 100*time.Millisecond, 5, nil)
}

func TestEmitMaskComplete_Error(_ *testing.T) {
	emitMaskComplete(context.Background(), "application/json", "TestType", 64, 100*time.Millisecond, 0, errors.New("test error"))
}

func TestEmitRuleFailed(_ *testing.T) {
	emitRuleFailed(context.Background(), "TestType", "Email", 1, errors.New("test error"))
}

func TestSignalsDefined(t *testing.T) {
	signals := map[string]any{
		"SignalMaskerCreated": SignalMaskerCreated,
		"SignalMaskStart":     SignalMaskStart,
		"SignalMaskComplete":  SignalMaskComplete,
		"SignalRuleFailed":    SignalRuleFailed,
	}
	for name, sig := range signals {
		if sig == nil {
			t.Errorf("%s is nil", name)
		}
	}
}

func TestKeysDefined(t *testing.T) {
	keys := map[string]any{
		"KeyContentType": KeyContentType,
		"KeyTypeName":    KeyTypeName,
		"KeyProperty":    KeyProperty,
		"KeyBehavior":    KeyBehavior,
		"KeySize":        KeySize,
		"KeyDuration":    KeyDuration,
		"KeyError":       KeyError,
		"KeyMaskedCount": KeyMaskedCount,
		"KeyStep":        KeyStep,
	}
	for name, key := range keys {
		if key == nil {
			t.Errorf("%s is nil", name)
		}
	}
}
