package nts

import (
	"fmt"
	"time"

	"github.com/alovak/nts-userdata/nts/models"
)

// Function codes of tag 01.
const (
	functionBalanceInquiry  = "01"
	functionOfflineApproved = "02"
	functionOfflineDeclined = "03"
	functionVoid            = "04"
)

// EMV chip authorization codes of tag 25.
const (
	emvOfflineApproved          = "Y1"
	emvOfflineDeclined          = "Z1"
	emvUnableToGoOnlineApproved = "Y3"
	emvUnableToGoOnlineDeclined = "Z3"
)

// tagRule is one entry of the user data catalogue. The catalogue order is
// the wire order.
type tagRule struct {
	id      string
	applies func(req models.Request) bool
	value   func(e *Encoder, req models.Request, at time.Time) (string, error)
}

var tagCatalogue = []tagRule{
	{id: "01", applies: hasFunctionCode, value: functionCodeValue},
	{
		id:      "02",
		applies: func(req models.Request) bool { return req.Acceptor.TerminalCapability != "" },
		value:   func(_ *Encoder, req models.Request, _ time.Time) (string, error) { return req.Acceptor.TerminalCapability, nil },
	},
	{id: "03", applies: isReversalWithReference, value: referenceValue("03")},
	{id: "07", applies: usesAddressVerification, value: postalCodeValue},
	{id: "08", applies: hasFleetAuthData, value: fleetAuthDataValue},
	{id: "09", applies: hasProductData, value: productDataValue},
	{id: "11", applies: isMastercardVoidWithReference, value: referenceValue("11")},
	{id: "12", applies: isMastercardVoidWithReference, value: referenceValue("12")},
	{id: "13", applies: hasVerificationCode, value: verificationCodeValue},
	{id: "14", applies: isDiscoverReversalWithReference, value: referenceValue("14")},
	{
		id:      "16",
		applies: func(req models.Request) bool { return req.Tag16 != nil },
		value:   func(_ *Encoder, req models.Request, at time.Time) (string, error) { return tag16Block(req.Tag16, at) },
	},
	{id: "17", applies: hasChipCardSequence, value: cardSequenceValue},
	{id: "18", applies: isVisaVoidWithReference, value: referenceValue("18")},
	{id: "20", applies: hasCashOver, value: cashOverValue},
	{id: "21", applies: hasUniqueDeviceID, value: uniqueDeviceIDValue},
	{id: "22", applies: emvPinData(models.CardCapabilities.HasPinBlock), value: pinBlockValue},
	{id: "23", applies: emvPinData(models.CardCapabilities.HasEncryptionData), value: ksnValue},
	{id: "24", applies: hasMaxPinEntry, value: maxPinEntryValue},
	{id: "25", applies: isOfflineChip, value: chipAuthCodeValue},
	{id: "26", applies: hasGoodsSold, value: goodsSoldValue},
	{id: "28", applies: ecommerceData(func(t models.TransactionContext) string { return t.EcommerceData1 }), value: ecommerceDataValue(1)},
	{id: "29", applies: ecommerceData(func(t models.TransactionContext) string { return t.EcommerceData2 }), value: ecommerceDataValue(2)},
	{id: "30", applies: isMastercardSecureECommerce, value: emptyValue},
	{id: "31", applies: isMastercardSecureECommerce, value: emptyValue},
	{id: "32", applies: isMastercardSecureECommerce, value: emptyValue},
	{id: "33", applies: isFleetECommerce, value: ecommerceAuthIndicatorValue},
	{id: "34", applies: hasMerchantOrderNumber, value: merchantOrderNumberValue},
	{id: "99", applies: func(req models.Request) bool { return req.Transaction.HasTagData() }, value: integratedCircuitCardValue},
}

func functionCode(tx models.TransactionContext) string {
	switch {
	case tx.MessageCode == models.DataCollectOrSale && tx.Modifier == models.Offline,
		tx.MessageCode == models.ForceCollectOrForceSale:
		return functionOfflineApproved
	case tx.MessageCode == models.AuthorizationOrBalanceInquiry && tx.Modifier != models.ChipDecline:
		if tx.Amount.IsZero() {
			return functionBalanceInquiry
		}
		return ""
	case tx.MessageCode == models.DataCollectOrSale,
		tx.MessageCode == models.AuthorizationOrBalanceInquiry && tx.Modifier == models.ChipDecline:
		return functionOfflineDeclined
	case tx.MessageCode.IsReversalOrVoid():
		return functionVoid
	}
	return ""
}

func hasFunctionCode(req models.Request) bool {
	tx := req.Transaction
	if !tx.HasTagData() && tx.TransactionType != models.Void && tx.TransactionType != models.Balance {
		return false
	}
	return functionCode(tx) != ""
}

func functionCodeValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return functionCode(req.Transaction), nil
}

func isReversalWithReference(req models.Request) bool {
	return req.Transaction.MessageCode.IsReversalOrVoid() && req.Reference != nil
}

func isMastercardVoidWithReference(req models.Request) bool {
	tx := req.Transaction
	return (tx.CardType == models.Mastercard || tx.CardType == models.MastercardFleet) &&
		(tx.TransactionType == models.Void || tx.TransactionType == models.Balance) &&
		req.Reference != nil
}

func isDiscoverReversalWithReference(req models.Request) bool {
	return req.Transaction.CardType == models.Discover && isReversalWithReference(req)
}

func isVisaVoidWithReference(req models.Request) bool {
	tx := req.Transaction
	return tx.CardType.IsVisa() && tx.TransactionType == models.Void && req.Reference != nil
}

// referenceValue echoes a tag of the original response.
func referenceValue(id string) func(*Encoder, models.Request, time.Time) (string, error) {
	return func(_ *Encoder, req models.Request, _ time.Time) (string, error) {
		v, ok := req.Reference.UserDataTags[id]
		if !ok {
			return "", missing(fmt.Sprintf("tag %s of the original response", id))
		}
		return v, nil
	}
}

// usesAddressVerification is true when the postal code is verified instead
// of a card verification code.
func usesAddressVerification(req models.Request) bool {
	tx := req.Transaction
	return !tx.CardType.IsFleetBankcard() &&
		!req.Card.HasCVN() &&
		tx.TransactionType.IsAuthOrSale() &&
		req.Acceptor.PostalCode != ""
}

func postalCodeValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.left("postal code", req.Acceptor.PostalCode, 9, ' ')
	return r.String()
}

func hasFleetAuthData(req models.Request) bool {
	tx := req.Transaction
	return tx.CardType.IsFleetBankcard() &&
		(tx.TransactionType.IsAuthOrSale() || tx.TransactionType == models.DataCollect) &&
		req.Fleet != nil
}

func fleetAuthDataValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return fleetAuthData(req.Transaction.CardType, req.Fleet)
}

// hasProductData applies to fleet bankcard sales and data collects, and to
// bankcard sales that carry product data. A fleet data collect without
// product data is rejected by the value.
func hasProductData(req models.Request) bool {
	tx := req.Transaction
	switch tx.CardType {
	case models.VisaFleet, models.MastercardFleet:
		return tx.TransactionType == models.DataCollect ||
			tx.TransactionType == models.Sale && req.Product != nil
	case models.Visa, models.Mastercard, models.AmericanExpress, models.Discover:
		return tx.TransactionType == models.Sale && req.Product != nil
	}
	return false
}

func productDataValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	out, err := encodeProduct(req)
	if err != nil {
		return "", err
	}
	// the fleet variant is terminated
	if req.Transaction.CardType.IsFleetBankcard() {
		out += "?"
	}
	return out, nil
}

func hasVerificationCode(req models.Request) bool {
	tx := req.Transaction
	switch tx.CardType {
	case models.Visa, models.Mastercard, models.Discover, models.AmericanExpress:
	default:
		return false
	}
	return req.Card.HasCVN() &&
		(tx.TransactionType.IsAuthOrSale() || tx.MessageCode == models.AuthorizationOrBalanceInquiry)
}

func verificationCodeValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.left("cvn", req.Card.CVN, 4, ' ')
	return r.String()
}

func hasChipCardSequence(req models.Request) bool {
	return req.Transaction.HasTagData() && req.Card.HasCardSequenceNumber()
}

func cardSequenceValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.digits("card sequence number", req.Card.CardSequenceNumber, 3)
	return r.String()
}

func hasCashOver(req models.Request) bool {
	tx := req.Transaction
	return tx.CardType == models.Discover && tx.TransactionType == models.Sale && tx.CashBackAmount.Valid
}

func cashOverValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.amount("cash over amount", req.Transaction.CashBackAmount.Decimal, 6)
	return r.String()
}

func hasUniqueDeviceID(req models.Request) bool {
	tx := req.Transaction
	return tx.TransactionType != models.Void && tx.UniqueDeviceID != ""
}

func uniqueDeviceIDValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.left("unique device id", req.Transaction.UniqueDeviceID, 4, ' ')
	return r.String()
}

// isChip is true for chip transactions other than voids.
func isChip(tx models.TransactionContext) bool {
	return tx.TransactionType != models.Void && tx.HasTagData()
}

// emvPinData gates tags 22 to 24: chip authorizations and data collects
// where the card carries the checked data.
func emvPinData(has func(models.CardCapabilities) bool) func(models.Request) bool {
	return func(req models.Request) bool {
		tx := req.Transaction
		if !isChip(tx) {
			return false
		}
		if tx.MessageCode != models.AuthorizationOrBalanceInquiry && tx.MessageCode != models.DataCollectOrSale {
			return false
		}
		return has(req.Card)
	}
}

func pinBlockValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return req.Card.PinBlock, nil
}

func ksnValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	var r record
	r.right("ksn", req.Card.KSN, 20, ' ')
	return r.String()
}

func hasMaxPinEntry(req models.Request) bool {
	return req.Transaction.EmvMaxPinEntry != "" && emvPinData(func(models.CardCapabilities) bool { return true })(req)
}

func maxPinEntryValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return req.Transaction.EmvMaxPinEntry, nil
}

func isOfflineChip(req models.Request) bool {
	tx := req.Transaction
	return isChip(tx) && (tx.Modifier == models.Offline || tx.Modifier == models.ChipDecline)
}

func chipAuthCodeValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	switch mc := req.Transaction.MessageCode; {
	case mc == models.DataCollectOrSale, mc == models.ForceCollectOrForceSale:
		return emvOfflineApproved, nil
	case mc == models.AuthorizationOrBalanceInquiry:
		return emvOfflineDeclined, nil
	case mc.IsReversalOrVoid():
		return emvUnableToGoOnlineApproved, nil
	default:
		return emvUnableToGoOnlineDeclined, nil
	}
}

func hasGoodsSold(req models.Request) bool {
	tx := req.Transaction
	return tx.CardType == models.AmericanExpress && tx.TransactionType.IsAuthOrSale() && tx.GoodsSold != ""
}

func goodsSoldValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return req.Transaction.GoodsSold, nil
}

func ecommerceData(field func(models.TransactionContext) string) func(models.Request) bool {
	return func(req models.Request) bool {
		tx := req.Transaction
		switch tx.CardType {
		case models.Visa, models.VisaFleet, models.AmericanExpress, models.Discover, models.PayPal:
		default:
			return false
		}
		return tx.TransactionType.IsAuthOrSale() && field(tx) != ""
	}
}

func ecommerceDataValue(n int) func(*Encoder, models.Request, time.Time) (string, error) {
	return func(_ *Encoder, req models.Request, _ time.Time) (string, error) {
		if n == 1 {
			return req.Transaction.EcommerceData1, nil
		}
		return req.Transaction.EcommerceData2, nil
	}
}

func isMastercardSecureECommerce(req models.Request) bool {
	tx := req.Transaction
	return tx.CardType.IsMastercard() && tx.TransactionType.IsAuthOrSale() && req.Card.IsSecureECommerce(req.Acceptor.OperatingEnvironment)
}

// emptyValue is sent for tags whose presence alone carries the meaning.
func emptyValue(*Encoder, models.Request, time.Time) (string, error) {
	return "", nil
}

func isFleetECommerce(req models.Request) bool {
	tx := req.Transaction
	return tx.TransactionType.IsAuthOrSale() && tx.CardType.IsFleetBankcard() && req.Card.IsECommerce(req.Acceptor.OperatingEnvironment)
}

func ecommerceAuthIndicatorValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return req.Transaction.EcommerceAuthIndicator, nil
}

func hasMerchantOrderNumber(req models.Request) bool {
	return isFleetECommerce(req) && req.Transaction.InvoiceNumber != ""
}

func merchantOrderNumberValue(_ *Encoder, req models.Request, _ time.Time) (string, error) {
	return req.Transaction.InvoiceNumber, nil
}

func integratedCircuitCardValue(e *Encoder, req models.Request, _ time.Time) (string, error) {
	accepted, err := e.filter.AcceptedTagData(req.Transaction.TagData)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return accepted, nil
}
