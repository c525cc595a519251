package nts

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alovak/nts-userdata/nts/models"
)

// slot is one position of a fixed-size line item list on the wire.
type slot struct {
	item    models.LineItem
	filled  bool
	summary bool
	count   int64
	amount  decimal.Decimal
}

// planRollUp fits items into exactly slots positions. When there are more
// items than positions the last position summarises the items that did not
// fit: how many there were and what they amount to. Every layout has at
// least one position, so slots below one panics.
func planRollUp(items []models.LineItem, slots int) []slot {
	if slots <= 0 {
		panic(fmt.Sprintf("nts: roll-up over %d slots", slots))
	}

	out := make([]slot, 0, slots)
	if len(items) <= slots {
		for _, it := range items {
			out = append(out, slot{item: it, filled: true, amount: it.Amount})
		}
		for len(out) < slots {
			out = append(out, slot{amount: decimal.Zero})
		}
		return out
	}

	for _, it := range items[:slots-1] {
		out = append(out, slot{item: it, filled: true, amount: it.Amount})
	}

	sum := decimal.Zero
	for _, it := range items[slots-1:] {
		sum = sum.Add(it.Amount)
	}

	return append(out, slot{
		summary: true,
		count:   int64(len(items) - slots + 1),
		amount:  sum,
	})
}

// rollUpFormat renders planned slots for one card type. pos is the wire
// position of the slot, which only matters where widths differ per position.
type rollUpFormat struct {
	item    func(r *record, pos int, it models.LineItem)
	empty   func(r *record, pos int)
	summary func(r *record, pos int, count int64, amount decimal.Decimal)
}

func (f rollUpFormat) write(r *record, items []models.LineItem, slots, offset int) {
	for i, s := range planRollUp(items, slots) {
		pos := i + offset
		switch {
		case s.summary:
			f.summary(r, pos, s.count, s.amount)
		case s.filled:
			f.item(r, pos, s.item)
		default:
			f.empty(r, pos)
		}
	}
}

// compactRollUp is the code, whole quantity, amount layout shared by the
// fleet networks. Codes are space padded on the left.
func compactRollUp(sentinel string, codeWidth, qtyWidth, amountWidth int) rollUpFormat {
	return rollUpFormat{
		item: func(r *record, _ int, it models.LineItem) {
			r.right("non-fuel code", it.Code, codeWidth, ' ')
			r.count("non-fuel quantity", it.Quantity, qtyWidth)
			r.amount("non-fuel amount", it.Amount, amountWidth)
		},
		empty: func(r *record, _ int) {
			r.blank(codeWidth)
			r.zeros(qtyWidth)
			r.zeros(amountWidth)
		},
		summary: func(r *record, _ int, n int64, sum decimal.Decimal) {
			r.right("roll-up code", sentinel, codeWidth, ' ')
			r.num("roll-up count", n, qtyWidth)
			r.amount("roll-up amount", sum, amountWidth)
		},
	}
}

var (
	visaFleetRollUp       = compactRollUp("90", 2, 2, 6)
	mastercardFleetRollUp = compactRollUp("99", 2, 2, 6)
	fleetCorRollUp        = compactRollUp("400", 3, 4, 5)
	voyagerRollUp         = compactRollUp("33", 2, 2, 5)
)

const rollUpCode = "400"

// bankcardRollUp lays out code, price, quantity and amount. The summary
// carries the item count in the quantity field and a zero price.
var bankcardRollUp = rollUpFormat{
	item: func(r *record, _ int, it models.LineItem) {
		r.right("non-fuel code", it.Code, 3, '0')
		r.implied("non-fuel price", it.Price, 5, 3)
		r.implied("non-fuel quantity", it.Quantity, 7, 3)
		r.amount("non-fuel amount", it.Amount, 8)
	},
	empty: func(r *record, _ int) {
		r.zeros(3 + 5 + 7 + 8)
	},
	summary: func(r *record, _ int, n int64, sum decimal.Decimal) {
		r.raw(rollUpCode)
		r.zeros(5)
		r.implied("roll-up count", decimal.NewFromInt(n), 7, 3)
		r.amount("roll-up amount", sum, 8)
	},
}

// WEX quantity widths by wire position. Position 0 carries three implied
// decimals, every other position a whole quantity.
var (
	wexSaleWidths     = [7]int{6, 3, 3, 3, 2, 1, 1}
	wexReversalWidths = [7]int{6, 3, 3, 3, 3, 3, 3}
)

func wexRollUp(widths [7]int) rollUpFormat {
	return rollUpFormat{
		item: func(r *record, pos int, it models.LineItem) {
			r.right("non-fuel code", it.Code, 3, '0')
			r.num("non-fuel unit of measure", it.UnitOfMeasure.Code(), 1)
			if pos == 0 {
				r.implied("non-fuel quantity", it.Quantity, widths[pos], 3)
			} else {
				r.count("non-fuel quantity", it.Quantity, widths[pos])
			}
			r.amount("non-fuel amount", it.Amount, 6)
		},
		empty: func(r *record, pos int) {
			r.zeros(3 + 1 + widths[pos] + 6)
		},
		summary: func(r *record, pos int, n int64, sum decimal.Decimal) {
			r.raw(rollUpCode)
			r.zeros(1)
			r.num("roll-up count", n, widths[pos])
			r.amount("roll-up amount", sum, 6)
		},
	}
}

var (
	wexSaleRollUp     = wexRollUp(wexSaleWidths)
	wexReversalRollUp = wexRollUp(wexReversalWidths)
)

// wexSlots returns how many non-fuel slots follow the fuel block and the
// wire position of the first one. Two fuel items take over position 0.
func wexSlots(fuelItems int, reversal bool) (slots, offset int) {
	base := 7
	if !reversal && fuelItems >= 2 {
		base = 6
	}
	if fuelItems == 2 {
		offset = 1
	}
	return base - offset, offset
}
