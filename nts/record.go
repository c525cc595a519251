package nts

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alovak/nts-userdata/internal/format"
)

// record builds a positional block field by field. The first formatting
// error is kept and every later write is ignored.
type record struct {
	sb  strings.Builder
	err error
}

func (r *record) fail(name string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", name, classify(err))
	}
}

func (r *record) raw(s string) {
	if r.err == nil {
		r.sb.WriteString(s)
	}
}

// num writes a whole number zero padded on the left.
func (r *record) num(name string, v int64, width int) {
	if r.err != nil {
		return
	}
	s, err := format.Numeric(v, width)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.sb.WriteString(s)
}

// count writes the integer part of a quantity.
func (r *record) count(name string, v decimal.Decimal, width int) {
	r.num(name, v.IntPart(), width)
}

func (r *record) digits(name, s string, width int) {
	if r.err != nil {
		return
	}
	v, err := format.Digits(s, width)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.sb.WriteString(v)
}

// implied writes v with fraction implied decimal places.
func (r *record) implied(name string, v decimal.Decimal, width, fraction int) {
	if r.err != nil {
		return
	}
	s, err := format.Implied(v, width, fraction)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.sb.WriteString(s)
}

func (r *record) amount(name string, v decimal.Decimal, width int) {
	r.implied(name, v, width, 2)
}

func (r *record) text(name, s string, width int, align format.Align, pad byte) {
	if r.err != nil {
		return
	}
	v, err := format.Text(s, width, align, pad)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.sb.WriteString(v)
}

func (r *record) left(name, s string, width int, pad byte) {
	r.text(name, s, width, format.AlignLeft, pad)
}

func (r *record) right(name, s string, width int, pad byte) {
	r.text(name, s, width, format.AlignRight, pad)
}

func (r *record) zeros(width int) {
	r.raw(format.Zeros(width))
}

func (r *record) blank(width int) {
	r.raw(format.Blank(width))
}

func (r *record) String() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.sb.String(), nil
}
