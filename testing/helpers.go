// Package testing provides fixtures and helpers for tests of fluentmasker
// and code built on it.
package testing

import (
	"context"
	"testing"
	"time"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) fluentmasker.Encryptor {
	tb.Helper()
	enc, err := fluentmasker.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Customer is a fixture carrying the common kinds of personal data.
type Customer struct {
	ID        string `mask:"readonly"`
	Name      string
	Email     string
	Phone     string
	SSN       string
	Card      string
	IBAN      string
	Balance   float64
	Age       int
	BirthDate time.Time
	Nickname  *string
	Internal  string `mask:"-"`
}

// Clone implements fluentmasker.Cloner[Customer].
func (c Customer) Clone() Customer {
	out := c
	if c.Nickname != nil {
		nick := *c.Nickname
		out.Nickname = &nick
	}
	return out
}

// NewCustomer returns a fully populated Customer.
func NewCustomer() *Customer {
	nick := "Ali"
	return &Customer{
		ID:        "cus_001",
		Name:      "Alice Jones",
		Email:     "alice@example.com",
		Phone:     "+45 12 34 56 78",
		SSN:       "123-45-6789",
		Card:      "4111 1111 1111 1111",
		IBAN:      "GB82WEST12345698765432",
		Balance:   1234.56,
		Age:       37,
		BirthDate: time.Date(1988, time.June, 14, 9, 30, 0, 0, time.UTC),
		Nickname:  &nick,
		Internal:  "not serialized by maskers",
	}
}

// Payment is a small fixture for single-rule scenarios.
type Payment struct {
	Reference string
	Card      string
	Amount    int
}

// CustomerMasker returns a Customer masker with a representative rule set:
// name, email, phone, SSN, card and IBAN masked; balance bucketed; birth
// date truncated to the year.
func CustomerMasker(tb testing.TB, opts ...fluentmasker.Option) *fluentmasker.Masker[Customer] {
	tb.Helper()

	m, err := fluentmasker.New[Customer](opts...)
	if err != nil {
		tb.Fatalf("New() error: %v", err)
	}

	must := func(err error) {
		tb.Helper()
		if err != nil {
			tb.Fatalf("register error: %v", err)
		}
	}

	must(fluentmasker.RegisterName(m, "Name", fluentmasker.Name()))
	must(fluentmasker.RegisterName(m, "Email", fluentmasker.Email()))
	must(fluentmasker.MaskString(m, func(c *Customer) *string { return &c.Phone },
		func(b *fluentmasker.StringBuilder) *fluentmasker.StringBuilder {
			return b.FormatPreserving(2, '*', true)
		}))
	must(fluentmasker.RegisterName(m, "SSN", fluentmasker.SSN()))
	must(fluentmasker.RegisterName(m, "Card", fluentmasker.Card()))
	must(fluentmasker.RegisterName(m, "IBAN", fluentmasker.IBAN()))
	must(fluentmasker.MaskNumber(m, func(c *Customer) *float64 { return &c.Balance },
		func(b *fluentmasker.NumberBuilder[float64]) *fluentmasker.NumberBuilder[float64] {
			return b.Bucket(1000)
		}))
	must(fluentmasker.MaskDate(m, func(c *Customer) *time.Time { return &c.BirthDate },
		func(b *fluentmasker.DateBuilder) *fluentmasker.DateBuilder {
			return b.Truncate(fluentmasker.DateYear)
		}))

	return m
}

// MustMask runs m.Mask and fails the test on a returned error or an
// unsuccessful result.
func MustMask[T any](tb testing.TB, m *fluentmasker.Masker[T], obj *T) *fluentmasker.Result {
	tb.Helper()
	res, err := m.Mask(context.Background(), obj)
	if err != nil {
		tb.Fatalf("Mask() error: %v", err)
	}
	if !res.Success {
		tb.Fatalf("Mask() failed: %v", res.Err)
	}
	return res
}
