package models

import "github.com/shopspring/decimal"

// TransactionContext is the snapshot of the outbound transaction the user
// data is built for. It is never changed while encoding.
type TransactionContext struct {
	CardType        CardType            `json:"card_type"`
	TransactionType TransactionType     `json:"transaction_type"`
	MessageCode     MessageCode         `json:"message_code"`
	Modifier        TransactionModifier `json:"modifier,omitempty"`

	Amount         decimal.Decimal     `json:"amount"`
	CashBackAmount decimal.NullDecimal `json:"cash_back_amount"`

	UniqueDeviceID string `json:"unique_device_id,omitempty"`
	// TagData is the raw EMV tag data as hex. Empty means the card was not read by chip.
	TagData        string `json:"tag_data,omitempty"`
	EmvMaxPinEntry string `json:"emv_max_pin_entry,omitempty"`

	GoodsSold              string `json:"goods_sold,omitempty"`
	EcommerceData1         string `json:"ecommerce_data1,omitempty"`
	EcommerceData2         string `json:"ecommerce_data2,omitempty"`
	EcommerceAuthIndicator string `json:"ecommerce_auth_indicator,omitempty"`
	InvoiceNumber          string `json:"invoice_number,omitempty"`

	SystemTraceAuditNumber   string `json:"stan,omitempty"`
	TransactionTypeIndicator string `json:"transaction_type_indicator,omitempty"`
}

// HasTagData reports whether EMV tag data was captured.
func (t TransactionContext) HasTagData() bool {
	return t.TagData != ""
}

// LineItem is one purchased product. Amount is supplied by the caller and
// is never recomputed from price and quantity.
type LineItem struct {
	Code          string          `json:"code"`
	UnitOfMeasure UnitOfMeasure   `json:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
}

// Prompt is a value the driver entered at the pump.
type Prompt struct {
	Code  PromptCode `json:"code"`
	Value string     `json:"value"`
}

// ProductData holds the purchased goods of a fleet or bankcard sale.
type ProductData struct {
	Fuel            []LineItem          `json:"fuel,omitempty"`
	NonFuel         []LineItem          `json:"non_fuel,omitempty"`
	PurchaseType    PurchaseType        `json:"purchase_type"`
	ProductCodeType string              `json:"product_code_type,omitempty"`
	ServiceLevel    ServiceLevel        `json:"service_level"`
	SalesTax        decimal.NullDecimal `json:"sales_tax"`
	Discount        decimal.NullDecimal `json:"discount"`
	Prompts         []Prompt            `json:"prompts,omitempty"`
}

// FleetData carries the fleet identifiers captured for the purchase.
type FleetData struct {
	Odometer                     string `json:"odometer,omitempty"`
	DriverID                     string `json:"driver_id,omitempty"`
	VehicleNumber                string `json:"vehicle_number,omitempty"`
	GenericIdentificationNo      string `json:"generic_identification_no,omitempty"`
	PurchaseDeviceSequenceNumber string `json:"purchase_device_sequence_number,omitempty"`
}

// Identification returns the first present of driver id, vehicle number and
// generic identification number.
func (f FleetData) Identification() string {
	switch {
	case f.DriverID != "":
		return f.DriverID
	case f.VehicleNumber != "":
		return f.VehicleNumber
	default:
		return f.GenericIdentificationNo
	}
}

// CardCapabilities is a read-only view of what the payment instrument carries.
type CardCapabilities struct {
	CVN                string      `json:"cvn,omitempty"`
	PinBlock           string      `json:"pin_block,omitempty"`
	KSN                string      `json:"ksn,omitempty"`
	TrackPresent       bool        `json:"track_present,omitempty"`
	TrackNumber        int         `json:"track_number,omitempty"`
	EntryMethod        EntryMethod `json:"entry_method,omitempty"`
	CardSequenceNumber string      `json:"card_sequence_number,omitempty"`
}

func (c CardCapabilities) HasCVN() bool                { return c.CVN != "" }
func (c CardCapabilities) HasPinBlock() bool           { return c.PinBlock != "" }
func (c CardCapabilities) HasEncryptionData() bool     { return c.KSN != "" }
func (c CardCapabilities) HasCardSequenceNumber() bool { return c.CardSequenceNumber != "" }

// AcceptorConfig is the terminal configuration consulted while encoding.
type AcceptorConfig struct {
	// TerminalCapability is empty when no bankcard POS configuration exists.
	TerminalCapability         string               `json:"terminal_capability,omitempty"`
	OperatingEnvironment       OperatingEnvironment `json:"operating_environment,omitempty"`
	PostalCode                 string               `json:"postal_code,omitempty"`
	AvailableProductCapability string               `json:"available_product_capability,omitempty"`
}

// TransactionReference points back at an earlier message and the user data
// tags its response carried.
type TransactionReference struct {
	OriginalMessageCode string            `json:"original_message_code"`
	UserDataTags        map[string]string `json:"user_data_tags"`
}

// Tag16 is the pump and workstation block.
type Tag16 struct {
	PumpNumber    int64  `json:"pump_number"`
	WorkstationID int64  `json:"workstation_id"`
	ServiceCode   string `json:"service_code"`
	SecurityData  string `json:"security_data"`
}

// DataCollectRequest carries the identifiers of the authorization being collected.
type DataCollectRequest struct {
	ApprovalCode            string `json:"approval_code"`
	BatchNumber             int64  `json:"batch_number"`
	SequenceNumber          int64  `json:"sequence_number"`
	OriginalTransactionDate string `json:"original_transaction_date"`
}

// RequestToBalance is the payload of an end-of-day request to balance.
type RequestToBalance struct {
	DaySequenceNumber    int64           `json:"day_sequence_number"`
	PdlBatchDiscount     decimal.Decimal `json:"pdl_batch_discount"`
	VendorSoftwareNumber string          `json:"vendor_software_number"`
}

// Request is everything the encoder reads for one outbound message.
type Request struct {
	Transaction TransactionContext    `json:"transaction"`
	Card        CardCapabilities      `json:"card"`
	Acceptor    AcceptorConfig        `json:"acceptor"`
	Product     *ProductData          `json:"product,omitempty"`
	Fleet       *FleetData            `json:"fleet,omitempty"`
	Reference   *TransactionReference `json:"reference,omitempty"`
	Tag16       *Tag16                `json:"tag16,omitempty"`
	DataCollect *DataCollectRequest   `json:"data_collect,omitempty"`
}
