// Package format renders the fixed-width fields of NTS user data.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moov-io/iso8583/encoding"
	"github.com/moov-io/iso8583/field"
	"github.com/moov-io/iso8583/padding"
	"github.com/moov-io/iso8583/prefix"
	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow is returned when a value needs more characters than its field holds.
	ErrOverflow = errors.New("field overflow")
	// ErrNegative is returned for negative values in unsigned fields.
	ErrNegative = errors.New("negative value in unsigned field")
	// ErrNotNumeric is returned when a numeric field receives non-digit characters.
	ErrNotNumeric = errors.New("non-numeric value in numeric field")
	// ErrNotASCII is returned when a text field receives characters outside ASCII.
	ErrNotASCII = errors.New("non-ascii value in text field")
)

// Align selects the side a text value is anchored to.
type Align int

const (
	// AlignLeft keeps the value on the left and pads on the right.
	AlignLeft Align = iota
	// AlignRight keeps the value on the right and pads on the left.
	AlignRight
)

// Numeric renders v left-zero-padded to width.
func Numeric(v int64, width int) (string, error) {
	if v < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegative, v)
	}
	return fixed(fmt.Sprintf("%d", v), width, padding.Left('0'))
}

// Digits renders a caller supplied digit string left-zero-padded to width.
func Digits(s string, width int) (string, error) {
	if !IsDigits(s) {
		return "", fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return fixed(s, width, padding.Left('0'))
}

// Implied renders v as a fixed-point number with fraction implied decimal
// places and no separator, left-zero-padded to width. Extra precision is
// rounded half away from zero.
func Implied(v decimal.Decimal, width, fraction int) (string, error) {
	if v.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrNegative, v.String())
	}
	scaled := v.Shift(int32(fraction)).Round(0)
	return fixed(scaled.String(), width, padding.Left('0'))
}

// Text pads s to width with pad on the side opposite to align. An empty
// value fills the whole field with pad.
func Text(s string, width int, align Align, pad byte) (string, error) {
	if align == AlignRight {
		return fixed(s, width, padding.Left(rune(pad)))
	}
	if len(s) > width {
		return "", fmt.Errorf("%w: %q exceeds %d", ErrOverflow, s, width)
	}
	if !isASCII(s) {
		return "", fmt.Errorf("%w: %q", ErrNotASCII, s)
	}
	return s + strings.Repeat(string(pad), width-len(s)), nil
}

// Fill returns a placeholder of width pad characters.
func Fill(width int, pad byte) string {
	return strings.Repeat(string(pad), width)
}

// Zeros returns a zero-filled placeholder of width characters.
func Zeros(width int) string {
	return Fill(width, '0')
}

// Blank returns a space-filled placeholder of width characters.
func Blank(width int) string {
	return Fill(width, ' ')
}

// fixed packs s as a fixed-length ASCII field; the fixed prefixer refuses
// anything that does not end up exactly width long.
func fixed(s string, width int, pad padding.Padder) (string, error) {
	if !isASCII(s) {
		return "", fmt.Errorf("%w: %q", ErrNotASCII, s)
	}
	f := field.NewStringValue(s)
	f.SetSpec(&field.Spec{
		Length:      width,
		Description: "user data field",
		Enc:         encoding.ASCII,
		Pref:        prefix.ASCII.Fixed,
		Pad:         pad,
	})
	packed, err := f.Pack()
	if err != nil {
		return "", fmt.Errorf("%w: %q exceeds %d", ErrOverflow, s, width)
	}
	return string(packed), nil
}

// IsDigits reports whether s is made of ASCII digits only.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
