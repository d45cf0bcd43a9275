package benchmarks

import (
	"context"
	"testing"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
	"github.com/UlrikAtItWrk/FluentMasker-sub002/msgpack"
	masktest "github.com/UlrikAtItWrk/FluentMasker-sub002/testing"
)

func BenchmarkMask_NoRules(b *testing.B) {
	m, _ := fluentmasker.New[masktest.Customer]()
	obj := masktest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Mask(context.Background(), obj)
	}
}

func BenchmarkMask_Customer_JSON(b *testing.B) {
	m := masktest.CustomerMasker(b)
	obj := masktest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Mask(context.Background(), obj)
	}
}

func BenchmarkMask_Customer_MessagePack(b *testing.B) {
	m := masktest.CustomerMasker(b, fluentmasker.WithCodec(msgpack.New()))
	obj := masktest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Mask(context.Background(), obj)
	}
}

func BenchmarkMask_Include(b *testing.B) {
	m := masktest.CustomerMasker(b, fluentmasker.WithBehavior(fluentmasker.Include))
	obj := masktest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Mask(context.Background(), obj)
	}
}

func BenchmarkMask_Parallel(b *testing.B) {
	m := masktest.CustomerMasker(b)
	obj := masktest.NewCustomer()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = m.Mask(context.Background(), obj)
		}
	})
}

func BenchmarkMaskValue(b *testing.B) {
	m := masktest.CustomerMasker(b)
	obj := masktest.NewCustomer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.MaskValue(context.Background(), obj)
	}
}

func BenchmarkRegexReplace(b *testing.B) {
	rule, err := fluentmasker.RegexReplace(`\d{4}`, "####", fluentmasker.RegexNone)
	if err != nil {
		b.Fatal(err)
	}
	v := "card 4111 1111 1111 1111"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rule.Apply(&v)
	}
}

func BenchmarkHash_SHA256(b *testing.B) {
	rule, err := fluentmasker.Hash(fluentmasker.HashSHA256)
	if err != nil {
		b.Fatal(err)
	}
	v := "alice@example.com"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rule.Apply(&v)
	}
}
