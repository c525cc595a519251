package nts

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alovak/nts-userdata/nts/models"
)

// productEncoder writes the purchased goods block of one card type.
type productEncoder func(r *record, req models.Request, p *models.ProductData)

var productEncoders = map[models.CardType]productEncoder{
	models.VisaFleet:       visaFleetProduct,
	models.MastercardFleet: mastercardFleetProduct,
	models.Visa:            bankcardProduct,
	models.Mastercard:      bankcardProduct,
	models.AmericanExpress: bankcardProduct,
	models.Discover:        bankcardProduct,
	models.StoredValue:     bankcardProduct,
	models.PinDebit:        bankcardProduct,
	models.WexFleet:        wexProduct,
	models.VoyagerFleet:    voyagerProduct,
	models.FleetWide:       fleetCorProduct,
	models.FuelmanFleet:    fleetCorProduct,
}

// encodeProduct renders the product data of req for its card type.
func encodeProduct(req models.Request) (string, error) {
	ct := req.Transaction.CardType
	enc, ok := productEncoders[ct]
	if !ok {
		return "", unsupported(fmt.Sprintf("product data for %s", ct))
	}
	if req.Product == nil {
		return "", missing(fmt.Sprintf("product data for %s", ct))
	}

	var r record
	enc(&r, req, req.Product)
	return r.String()
}

func optionalAmount(r *record, name string, v decimal.NullDecimal, width int) {
	if !v.Valid {
		r.zeros(width)
		return
	}
	r.amount(name, v.Decimal, width)
}

func visaFleetProduct(r *record, _ models.Request, p *models.ProductData) {
	r.raw(p.PurchaseType.Value())

	if len(p.Fuel) > 0 {
		f := p.Fuel[0]
		r.right("fuel code", f.Code, 2, '0')
		if p.PurchaseType.HasFuel() {
			r.num("fuel unit of measure", f.UnitOfMeasure.FleetCode(), 1)
		} else {
			r.blank(1)
		}
		r.implied("fuel quantity", f.Quantity, 6, 3)
		r.implied("fuel price", f.Price, 5, 3)
		r.amount("fuel amount", f.Amount, 9)
	} else {
		r.blank(2 + 1)
		r.zeros(6 + 5 + 9)
	}

	r.raw(p.ServiceLevel.Value())
	visaFleetRollUp.write(r, p.NonFuel, 3, 0)
	optionalAmount(r, "sales tax", p.SalesTax, 5)
}

func mastercardFleetProduct(r *record, _ models.Request, p *models.ProductData) {
	r.right("product code type", p.ProductCodeType, 1, '0')

	if len(p.Fuel) > 0 {
		f := p.Fuel[0]
		r.right("fuel code", f.Code, 2, '0')
		r.num("service level", p.ServiceLevel.Code(), 1)
		r.num("fuel unit of measure", f.UnitOfMeasure.FleetCode(), 1)
		r.implied("fuel quantity", f.Quantity, 6, 3)
		r.implied("fuel price", f.Price, 5, 3)
		r.amount("fuel amount", f.Amount, 9)
	} else {
		r.zeros(2)
		r.num("service level", p.ServiceLevel.Code(), 1)
		r.zeros(1 + 6 + 5 + 9)
	}

	mastercardFleetRollUp.write(r, p.NonFuel, 3, 0)
	optionalAmount(r, "sales tax", p.SalesTax, 5)
}

// bankcardProduct emits a fuel slot only when fuel was bought. Several fuel
// items are folded into one slot with code 099 and no price.
func bankcardProduct(r *record, _ models.Request, p *models.ProductData) {
	switch {
	case len(p.Fuel) == 1:
		f := p.Fuel[0]
		r.right("fuel code", f.Code, 3, '0')
		r.implied("fuel price", f.Price, 5, 3)
		r.implied("fuel quantity", f.Quantity, 7, 3)
		r.amount("fuel amount", f.Amount, 8)
	case len(p.Fuel) > 1:
		qty, amount := decimal.Zero, decimal.Zero
		for _, f := range p.Fuel {
			qty = qty.Add(f.Quantity)
			amount = amount.Add(f.Amount)
		}
		r.raw("099")
		r.zeros(5)
		r.implied("fuel quantity", qty, 7, 3)
		r.amount("fuel amount", amount, 8)
	}

	slots := 5
	if len(p.Fuel) > 0 {
		slots = 4
	}
	bankcardRollUp.write(r, p.NonFuel, slots, 0)

	optionalAmount(r, "sales tax", p.SalesTax, 7)
	optionalAmount(r, "fuel discount", p.Discount, 5)
	r.zeros(12)
}

// wexFuel writes the WEX fuel block. The first fuel item leads with unit of
// measure and service level, the next one is narrower.
func wexFuel(r *record, p *models.ProductData, fuel []models.LineItem) {
	if len(fuel) == 0 {
		r.zeros(1 + 2 + 3 + 7 + 7)
		return
	}

	for i, f := range fuel {
		if i == 0 {
			r.num("fuel unit of measure", f.UnitOfMeasure.Code(), 1)
			r.num("service level", p.ServiceLevel.WexCode(), 2)
			r.right("fuel code", f.Code, 3, '0')
			r.implied("fuel quantity", f.Quantity, 7, 3)
			r.amount("fuel amount", f.Amount, 7)
			continue
		}
		r.right("fuel code", f.Code, 3, '0')
		r.num("fuel unit of measure", f.UnitOfMeasure.Code(), 1)
		r.implied("fuel quantity", f.Quantity, 6, 3)
		r.amount("fuel amount", f.Amount, 6)
	}
}

// wexProduct writes the fuel block and the non-fuel slots. A sale carries at
// most two fuel items, a reversal echoes every fuel item of the original.
func wexProduct(r *record, req models.Request, p *models.ProductData) {
	reversal := req.Transaction.TransactionType == models.Reversal

	fuel := p.Fuel
	if !reversal && len(fuel) > 2 {
		fuel = fuel[:2]
	}
	wexFuel(r, p, fuel)

	slots, offset := wexSlots(len(p.Fuel), reversal)
	if reversal {
		wexReversalRollUp.write(r, p.NonFuel, slots, offset)
	} else {
		wexSaleRollUp.write(r, p.NonFuel, slots, offset)
	}
}

// voyagerProduct always writes two fuel slots of code, quantity and amount.
func voyagerProduct(r *record, _ models.Request, p *models.ProductData) {
	r.num("service level", p.ServiceLevel.VoyagerCode(), 1)

	for i := 0; i < 2; i++ {
		if i >= len(p.Fuel) {
			r.zeros(2 + 5 + 5)
			continue
		}
		f := p.Fuel[i]
		r.right("fuel code", f.Code, 2, '0')
		r.implied("fuel quantity", f.Quantity, 5, 2)
		r.amount("fuel amount", f.Amount, 5)
	}

	voyagerRollUp.write(r, p.NonFuel, 4, 0)
	optionalAmount(r, "sales tax", p.SalesTax, 6)
}

// fleetCorProduct is shared by FleetWide and Fuelman. Unit of measure and
// service level lead the single fuel slot.
func fleetCorProduct(r *record, _ models.Request, p *models.ProductData) {
	if len(p.Fuel) > 0 {
		f := p.Fuel[0]
		r.num("fuel unit of measure", f.UnitOfMeasure.FleetCode(), 1)
		r.num("service level", p.ServiceLevel.Code(), 1)
		r.right("fuel code", f.Code, 3, ' ')
		r.implied("fuel price", f.Price, 5, 3)
		r.implied("fuel quantity", f.Quantity, 6, 3)
		r.amount("fuel amount", f.Amount, 5)
	} else {
		r.zeros(1)
		r.num("service level", p.ServiceLevel.Code(), 1)
		r.blank(3)
		r.zeros(5 + 6 + 5)
	}

	fleetCorRollUp.write(r, p.NonFuel, 4, 0)
	optionalAmount(r, "sales tax", p.SalesTax, 5)
}
