package nts

import (
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/alovak/nts-userdata/internal/clock"
	"github.com/alovak/nts-userdata/nts/models"
)

// NonBankcardUserData renders the positional user data of the fleet
// networks, and of bankcard data collects and other bankcard messages.
func (e *Encoder) NonBankcardUserData(req models.Request, at time.Time) (string, error) {
	var (
		r   record
		err error
	)
	at = at.In(e.loc)

	switch ct := req.Transaction.CardType; {
	case ct.IsBankcard():
		err = bankcardUserData(&r, req, at)
	case ct == models.FleetWide || ct == models.FuelmanFleet:
		err = fleetCorUserData(&r, req, at)
	case ct == models.WexFleet:
		err = wexUserData(&r, req)
	case ct == models.VoyagerFleet:
		err = voyagerUserData(&r, req)
	default:
		err = unsupported(fmt.Sprintf("non-bankcard user data for %s", ct))
	}
	if err != nil {
		return "", fmt.Errorf("non-bankcard user data: %w", err)
	}

	out, err := r.String()
	if err != nil {
		return "", fmt.Errorf("non-bankcard user data: %w", err)
	}

	e.logger.Debug("non-bankcard user data encoded",
		slog.String("card_type", string(req.Transaction.CardType)),
		slog.String("message_code", req.Transaction.MessageCode.Code()),
		slog.Int("length", len(out)),
	)

	return out, nil
}

func describe(tx models.TransactionContext) string {
	return fmt.Sprintf("%s %s with message code %s", tx.CardType, tx.TransactionType, tx.MessageCode)
}

func bankcardUserData(r *record, req models.Request, at time.Time) error {
	tx := req.Transaction
	if tx.TransactionType != models.DataCollect {
		r.left("transaction type indicator", tx.TransactionTypeIndicator, 8, ' ')
		r.digits("system trace audit number", tx.SystemTraceAuditNumber, 6)
		return nil
	}

	if req.Tag16 == nil {
		return missing("tag 16 data for a bankcard data collect")
	}
	block, err := tag16Block(req.Tag16, at)
	if err != nil {
		return err
	}
	r.raw(block)
	r.left("postal code", req.Acceptor.PostalCode, 9, '0')
	r.digits("card sequence number", req.Card.CardSequenceNumber, 4)

	product, err := encodeProduct(req)
	if err != nil {
		return err
	}
	r.raw(product)
	return nil
}

func fleetCorUserData(r *record, req models.Request, at time.Time) error {
	tx := req.Transaction

	// an auth keeps its driver block even under the credit adjustment code
	switch {
	case (tx.TransactionType == models.Sale || tx.TransactionType == models.DataCollect) && tx.MessageCode != models.CreditAdjustment:
		if req.Fleet == nil {
			return missing("fleet data")
		}
		if req.Product == nil {
			return missing("product data")
		}
		fleetCorDriver(r, req.Fleet)
		fleetCorProduct(r, req, req.Product)
	case tx.TransactionType == models.Auth:
		if req.Fleet == nil {
			return missing("fleet data")
		}
		fleetCorDriver(r, req.Fleet)
	case tx.MessageCode == models.CreditAdjustment:
		if req.DataCollect == nil {
			return missing("data collect request for a credit adjustment")
		}
		creditAdjustment(r, req.DataCollect, at)
	default:
		return unsupported(describe(tx))
	}
	return nil
}

func fleetCorDriver(r *record, f *models.FleetData) {
	r.left("driver id", f.DriverID, 5, '0')
	r.left("odometer", f.Odometer, 6, '0')
}

func wexUserData(r *record, req models.Request) error {
	tx := req.Transaction
	p := req.Product

	if req.Fleet == nil {
		return missing("fleet data")
	}
	deviceSequence := func() {
		r.left("purchase device sequence number", req.Fleet.PurchaseDeviceSequenceNumber, 5, '0')
	}

	switch {
	case tx.TransactionType == models.Auth:
		wexPrompts(r, p, tx.HasTagData())
		wexFuelAmounts(r, p)
		deviceSequence()
		wexEmv(r, req, true)

	case (tx.TransactionType == models.Sale || tx.TransactionType == models.DataCollect) &&
		tx.MessageCode != models.CreditAdjustment:
		if p == nil {
			return missing("product data")
		}
		wexPrompts(r, p, tx.HasTagData())
		wexProduct(r, req, p)
		deviceSequence()
		optionalAmount(r, "sales tax", p.SalesTax, 5)
		optionalAmount(r, "discount", p.Discount, 5)
		wexEmv(r, req, false)

	case tx.MessageCode == models.CreditAdjustment:
		dc := req.DataCollect
		if dc == nil {
			return missing("data collect request for a credit adjustment")
		}
		if err := clock.ValidateMMDDYY(dc.OriginalTransactionDate); err != nil {
			return fmt.Errorf("%w: original transaction date: %v", ErrInvalidValue, err)
		}
		r.right("purchase device sequence number", req.Fleet.PurchaseDeviceSequenceNumber, 5, '0')
		if req.Fleet.DriverID != "" {
			r.left("driver id", req.Fleet.DriverID, 6, ' ')
		} else {
			r.zeros(6)
		}
		r.num("batch number", dc.BatchNumber, 2)
		r.num("sequence number", dc.SequenceNumber, 3)
		r.raw(dc.OriginalTransactionDate)

	case tx.TransactionType == models.Reversal:
		if req.Reference == nil {
			return missing("transaction reference for a reversal")
		}
		if p == nil {
			return missing("product data")
		}
		switch req.Reference.OriginalMessageCode {
		case models.AuthorizationOrBalanceInquiry.Code():
			wexFuelAmounts(r, p)
			deviceSequence()
		case models.DataCollectOrSale.Code():
			wexProduct(r, req, p)
			deviceSequence()
			optionalAmount(r, "sales tax", p.SalesTax, 5)
			optionalAmount(r, "discount", p.Discount, 5)
		default:
			return unsupported(fmt.Sprintf("WexFleet reversal of message code %q", req.Reference.OriginalMessageCode))
		}

	default:
		return unsupported(describe(tx))
	}
	return nil
}

// wexFuelAmounts writes the service level and the amount of every fuel item
// as authorized.
func wexFuelAmounts(r *record, p *models.ProductData) {
	if p == nil {
		r.zeros(2)
		return
	}
	r.num("service level", p.ServiceLevel.WexCode(), 2)
	for _, f := range p.Fuel {
		r.raw("074")
		r.amount("fuel amount", f.Amount, 7)
	}
}

func voyagerUserData(r *record, req models.Request) error {
	tx := req.Transaction

	vehicle := func() error {
		if req.Fleet == nil {
			return missing("fleet data")
		}
		r.left("odometer", req.Fleet.Odometer, 7, '0')
		r.left("vehicle number", req.Fleet.VehicleNumber, 6, '0')
		return nil
	}

	switch tx.TransactionType {
	case models.Auth:
		return vehicle()
	case models.Sale, models.DataCollect:
	default:
		return unsupported(describe(tx))
	}

	if req.Product == nil {
		return missing("product data")
	}

	switch tx.MessageCode {
	case models.DataCollectOrSale:
		if err := vehicle(); err != nil {
			return err
		}
	case models.CreditAdjustment:
		r.raw(tx.InvoiceNumber)
	default:
		return unsupported(describe(tx))
	}

	voyagerProduct(r, req, req.Product)
	return nil
}
