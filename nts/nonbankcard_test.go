package nts

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/alovak/nts-userdata/nts/models"
)

func decimalOf(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func TestNonBankcardUserData_BankcardSale(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:                 models.Visa,
			TransactionType:          models.Sale,
			MessageCode:              models.DataCollectOrSale,
			SystemTraceAuditNumber:   "123",
			TransactionTypeIndicator: "SALE",
		},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)
	require.Equal(t, "SALE    "+"000123", got)
}

func TestNonBankcardUserData_BankcardDataCollect(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.Mastercard,
			TransactionType: models.DataCollect,
			MessageCode:     models.DataCollectOrSale,
		},
		Acceptor: models.AcceptorConfig{PostalCode: "30301"},
		Card:     models.CardCapabilities{CardSequenceNumber: "1"},
		Tag16:    &models.Tag16{PumpNumber: 4, WorkstationID: 2, ServiceCode: "F", SecurityData: "1"},
		Product:  &models.ProductData{},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)

	want := "0402" + "120529" + "210709" + "F1" +
		"303010000" +
		"0001" +
		strings.Repeat("0", 5*23) + "0000000" + "00000" + strings.Repeat("0", 12)
	require.Equal(t, want, got)

	req.Tag16 = nil
	_, err = newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestNonBankcardUserData_FleetCor(t *testing.T) {
	fleet := &models.FleetData{DriverID: "123", Odometer: "4567"}

	auth := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.FleetWide,
			TransactionType: models.Auth,
			MessageCode:     models.AuthorizationOrBalanceInquiry,
		},
		Fleet: fleet,
	}
	got, err := newTestEncoder().NonBankcardUserData(auth, at)
	require.NoError(t, err)
	require.Equal(t, "12300"+"456700", got)

	sale := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.FuelmanFleet,
			TransactionType: models.Sale,
			MessageCode:     models.DataCollectOrSale,
		},
		Fleet:   fleet,
		Product: &models.ProductData{ServiceLevel: models.FullServe},
	}
	got, err = newTestEncoder().NonBankcardUserData(sale, at)
	require.NoError(t, err)
	require.Equal(t, "12300"+"456700"+"0"+"2"+"   "+strings.Repeat("0", 16)+strings.Repeat("   000000000", 4)+"00000", got)

	adjustment := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.FleetWide,
			TransactionType: models.DataCollect,
			MessageCode:     models.CreditAdjustment,
		},
		DataCollect: &models.DataCollectRequest{ApprovalCode: "A1B2", BatchNumber: 3, SequenceNumber: 7},
	}
	got, err = newTestEncoder().NonBankcardUserData(adjustment, at)
	require.NoError(t, err)
	require.Equal(t, "00A1B2"+"03"+"007"+"120529"+"210709", got)

	adjustment.DataCollect = nil
	_, err = newTestEncoder().NonBankcardUserData(adjustment, at)
	require.ErrorIs(t, err, ErrMissingRequiredData)

	// an auth under the credit adjustment code still carries the driver block
	authAdjustment := auth
	authAdjustment.Transaction.MessageCode = models.CreditAdjustment
	authAdjustment.DataCollect = &models.DataCollectRequest{ApprovalCode: "A1B2", BatchNumber: 3, SequenceNumber: 7}
	got, err = newTestEncoder().NonBankcardUserData(authAdjustment, at)
	require.NoError(t, err)
	require.Equal(t, "12300"+"456700", got)

	void := auth
	void.Transaction.TransactionType = models.Void
	void.Transaction.MessageCode = models.ReversalOrVoid
	_, err = newTestEncoder().NonBankcardUserData(void, at)
	require.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestNonBankcardUserData_WexAuth(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.Auth,
			MessageCode:     models.AuthorizationOrBalanceInquiry,
		},
		Fleet: &models.FleetData{PurchaseDeviceSequenceNumber: "12"},
		Product: &models.ProductData{
			ServiceLevel: models.FullServe,
			Prompts:      []models.Prompt{{Code: models.PromptDriverID, Value: "1234"}},
			Fuel:         []models.LineItem{{Code: "1", Amount: d("25.00")}},
		},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)

	want := "1" + "1" + "04" + "000000001234" + strings.Repeat("0", 2*15) +
		"01" +
		"074" + "0002500" +
		"12000"
	require.Equal(t, want, got)
}

func TestNonBankcardUserData_WexChipAuth(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.Auth,
			MessageCode:     models.AuthorizationOrBalanceInquiry,
			Modifier:        models.Fallback,
			TagData:         "9F2701",
		},
		Acceptor: models.AcceptorConfig{AvailableProductCapability: "2"},
		Fleet:    &models.FleetData{PurchaseDeviceSequenceNumber: "12345"},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)

	want := "0" + strings.Repeat("0", 6*15) +
		"00" +
		"12345" +
		"000" + "F" + "2" + "0006" + "9F2701"
	require.Equal(t, want, got)
}

func TestNonBankcardUserData_WexPromptsAreCapped(t *testing.T) {
	prompts := make([]models.Prompt, 5)
	for i := range prompts {
		prompts[i] = models.Prompt{Code: models.PromptOdometer, Value: "9"}
	}
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.Auth,
			MessageCode:     models.AuthorizationOrBalanceInquiry,
		},
		Fleet:   &models.FleetData{},
		Product: &models.ProductData{Prompts: prompts},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)
	require.Equal(t, "3"+strings.Repeat("2"+"01"+"000000000009", 3)+"00"+"00000", got)
}

func TestNonBankcardUserData_WexSale(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.Sale,
			MessageCode:     models.DataCollectOrSale,
		},
		Fleet: &models.FleetData{PurchaseDeviceSequenceNumber: "7"},
		Product: &models.ProductData{
			SalesTax: decimalOf("1.50"),
			Discount: decimalOf("0.25"),
		},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)

	want := "0" + strings.Repeat("0", 3*15) +
		strings.Repeat("0", 20+16+3*13+12+11+11) +
		"70000" + "00150" + "00025"
	require.Equal(t, want, got)

	req.Product = nil
	_, err = newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestNonBankcardUserData_WexCreditAdjustment(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.DataCollect,
			MessageCode:     models.CreditAdjustment,
		},
		Fleet:       &models.FleetData{PurchaseDeviceSequenceNumber: "42", DriverID: "D7"},
		DataCollect: &models.DataCollectRequest{BatchNumber: 12, SequenceNumber: 345, OriginalTransactionDate: "120429"},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)
	require.Equal(t, "00042"+"D7    "+"12"+"345"+"120429", got)

	req.DataCollect.OriginalTransactionDate = "133129"
	_, err = newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestNonBankcardUserData_WexReversal(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.WexFleet,
			TransactionType: models.Reversal,
			MessageCode:     models.ReversalOrVoid,
		},
		Fleet: &models.FleetData{PurchaseDeviceSequenceNumber: "1"},
		Product: &models.ProductData{
			ServiceLevel: models.SelfServe,
			Fuel:         []models.LineItem{{Code: "1", Amount: d("10.00")}, {Code: "2", Amount: d("5.00")}},
		},
		Reference: &models.TransactionReference{OriginalMessageCode: "01"},
	}

	got, err := newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)
	require.Equal(t, "02"+"074"+"0001000"+"074"+"0000500"+"10000", got)

	req.Reference.OriginalMessageCode = "02"
	got, err = newTestEncoder().NonBankcardUserData(req, at)
	require.NoError(t, err)

	fuel := "0" + "02" + "001" + "0000000" + "0001000" +
		"002" + "0" + "000000" + "000500"
	// two fuel items shift the non-fuel slots by one position
	slots := strings.Repeat("0", 6*13)
	require.Equal(t, fuel+slots+"10000"+"00000"+"00000", got)

	req.Reference.OriginalMessageCode = "05"
	_, err = newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrUnsupportedCombination)

	req.Reference = nil
	_, err = newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestNonBankcardUserData_Voyager(t *testing.T) {
	fleet := &models.FleetData{Odometer: "5521", VehicleNumber: "77"}

	auth := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.VoyagerFleet,
			TransactionType: models.Auth,
			MessageCode:     models.AuthorizationOrBalanceInquiry,
		},
		Fleet: fleet,
	}
	got, err := newTestEncoder().NonBankcardUserData(auth, at)
	require.NoError(t, err)
	require.Equal(t, "5521000"+"770000", got)

	product := &models.ProductData{ServiceLevel: models.SelfServe}
	empty := "0" + strings.Repeat("0", 24) + strings.Repeat("  0000000", 4) + "000000"

	sale := auth
	sale.Transaction.TransactionType = models.Sale
	sale.Transaction.MessageCode = models.DataCollectOrSale
	sale.Product = product
	got, err = newTestEncoder().NonBankcardUserData(sale, at)
	require.NoError(t, err)
	require.Equal(t, "5521000"+"770000"+empty, got)

	adjustment := sale
	adjustment.Transaction.MessageCode = models.CreditAdjustment
	adjustment.Transaction.InvoiceNumber = "INV001"
	got, err = newTestEncoder().NonBankcardUserData(adjustment, at)
	require.NoError(t, err)
	require.Equal(t, "INV001"+empty, got)

	reversal := sale
	reversal.Transaction.TransactionType = models.Reversal
	_, err = newTestEncoder().NonBankcardUserData(reversal, at)
	require.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestNonBankcardUserData_Unsupported(t *testing.T) {
	req := models.Request{
		Transaction: models.TransactionContext{
			CardType:        models.PayPal,
			TransactionType: models.Sale,
			MessageCode:     models.DataCollectOrSale,
		},
	}
	_, err := newTestEncoder().NonBankcardUserData(req, at)
	require.ErrorIs(t, err, ErrUnsupportedCombination)
}
