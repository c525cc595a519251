package models

// CardType is the NTS card brand of the payment instrument.
type CardType string

const (
	Visa                 CardType = "Visa"
	Mastercard           CardType = "Mastercard"
	MastercardPurchasing CardType = "MastercardPurchasing"
	AmericanExpress      CardType = "AmericanExpress"
	Discover             CardType = "Discover"
	VisaFleet            CardType = "VisaFleet"
	MastercardFleet      CardType = "MastercardFleet"
	WexFleet             CardType = "WexFleet"
	VoyagerFleet         CardType = "VoyagerFleet"
	FleetWide            CardType = "FleetWide"
	FuelmanFleet         CardType = "FuelmanFleet"
	PayPal               CardType = "PayPal"
	StoredValue          CardType = "StoredValue"
	PinDebit             CardType = "PinDebit"
)

// IsBankcard reports whether c uses the generic bankcard product layout.
func (c CardType) IsBankcard() bool {
	switch c {
	case Visa, Mastercard, AmericanExpress, Discover, StoredValue, PinDebit:
		return true
	}
	return false
}

// IsFleetBankcard reports whether c is a fleet product on a bankcard network.
func (c CardType) IsFleetBankcard() bool {
	return c == VisaFleet || c == MastercardFleet
}

// IsMastercard reports whether c settles on the Mastercard network.
func (c CardType) IsMastercard() bool {
	return c == Mastercard || c == MastercardFleet || c == MastercardPurchasing
}

// IsVisa reports whether c settles on the Visa network.
func (c CardType) IsVisa() bool {
	return c == Visa || c == VisaFleet
}

// TransactionType is the kind of operation the terminal performs.
type TransactionType string

const (
	Auth        TransactionType = "Auth"
	Sale        TransactionType = "Sale"
	DataCollect TransactionType = "DataCollect"
	Void        TransactionType = "Void"
	Balance     TransactionType = "Balance"
	Reversal    TransactionType = "Reversal"
)

// IsAuthOrSale reports whether t is an authorization or a sale.
func (t TransactionType) IsAuthOrSale() bool {
	return t == Auth || t == Sale
}

// MessageCode classifies the purpose of an NTS request.
type MessageCode string

const (
	AuthorizationOrBalanceInquiry MessageCode = "AuthorizationOrBalanceInquiry"
	DataCollectOrSale             MessageCode = "DataCollectOrSale"
	CreditAdjustment              MessageCode = "CreditAdjustment"
	ForceCollectOrForceSale       MessageCode = "ForceCollectOrForceSale"
	ReversalOrVoid                MessageCode = "ReversalOrVoid"
	ForceReversalOrForceVoid      MessageCode = "ForceReversalOrForceVoid"
	PinDebitMessage               MessageCode = "PinDebit"
)

var messageCodes = map[MessageCode]string{
	AuthorizationOrBalanceInquiry: "01",
	DataCollectOrSale:             "02",
	CreditAdjustment:              "03",
	ForceCollectOrForceSale:       "04",
	ReversalOrVoid:                "05",
	ForceReversalOrForceVoid:      "06",
	PinDebitMessage:               "07",
}

// Code returns the two digit wire value of m, or "" when m is unknown.
func (m MessageCode) Code() string {
	return messageCodes[m]
}

// IsReversalOrVoid reports whether m cancels an earlier message.
func (m MessageCode) IsReversalOrVoid() bool {
	return m == ReversalOrVoid || m == ForceReversalOrForceVoid
}

// TransactionModifier refines how a transaction was performed.
type TransactionModifier string

const (
	NoModifier  TransactionModifier = ""
	Offline     TransactionModifier = "Offline"
	ChipDecline TransactionModifier = "ChipDecline"
	Fallback    TransactionModifier = "Fallback"
)

// EmvTransactionType returns the one character EMV transaction type of the WEX EMV block.
func (m TransactionModifier) EmvTransactionType() string {
	switch m {
	case Fallback:
		return "F"
	case Offline:
		return "A"
	case ChipDecline:
		return "D"
	default:
		return " "
	}
}

// UnitOfMeasure is the unit a line item quantity is counted in.
type UnitOfMeasure string

const (
	CaseOrCarton    UnitOfMeasure = "CaseOrCarton"
	Gallons         UnitOfMeasure = "Gallons"
	Kilograms       UnitOfMeasure = "Kilograms"
	Liters          UnitOfMeasure = "Liters"
	Pounds          UnitOfMeasure = "Pounds"
	Quarts          UnitOfMeasure = "Quarts"
	Units           UnitOfMeasure = "Units"
	Ounces          UnitOfMeasure = "Ounces"
	ImperialGallons UnitOfMeasure = "ImperialGallons"
	OtherOrUnknown  UnitOfMeasure = "OtherOrUnknown"
	NoFuelPurchased UnitOfMeasure = "NoFuelPurchased"
)

// Code maps u to the generic NTS unit-of-measure digit.
func (u UnitOfMeasure) Code() int64 {
	switch u {
	case CaseOrCarton:
		return 1
	case Gallons:
		return 2
	case Kilograms:
		return 3
	case Liters:
		return 4
	case Pounds:
		return 5
	case Quarts:
		return 6
	case Units:
		return 7
	case Ounces:
		return 8
	default:
		return 0
	}
}

// FleetCode maps u to the fleet unit-of-measure digit.
func (u UnitOfMeasure) FleetCode() int64 {
	switch u {
	case Gallons:
		return 1
	case Liters:
		return 2
	case Pounds:
		return 3
	case Kilograms:
		return 4
	case ImperialGallons:
		return 5
	default:
		return 0
	}
}

// ServiceLevel tells how fuel was dispensed.
type ServiceLevel string

const (
	SelfServe           ServiceLevel = "SelfServe"
	FullServe           ServiceLevel = "FullServe"
	OtherNonFuel        ServiceLevel = "OtherNonFuel"
	NoFuelService       ServiceLevel = "NoFuelPurchased"
	OtherService        ServiceLevel = "Other"
	UnknownServiceLevel ServiceLevel = "Unknown"
)

// Value is the one character service level carried by Visa Fleet.
func (s ServiceLevel) Value() string {
	switch s {
	case SelfServe:
		return "S"
	case FullServe:
		return "F"
	case OtherNonFuel, OtherService:
		return "O"
	case NoFuelService:
		return "N"
	default:
		return " "
	}
}

// Code maps s to the digit used by Mastercard Fleet, FleetWide and Fuelman.
func (s ServiceLevel) Code() int64 {
	switch s {
	case SelfServe:
		return 1
	case FullServe:
		return 2
	case OtherNonFuel:
		return 3
	default:
		return 0
	}
}

// WexCode maps s to the WEX service level.
func (s ServiceLevel) WexCode() int64 {
	switch s {
	case FullServe:
		return 1
	case SelfServe:
		return 2
	default:
		return 0
	}
}

// VoyagerCode maps s to the Voyager service level.
func (s ServiceLevel) VoyagerCode() int64 {
	switch s {
	case FullServe:
		return 1
	case OtherService:
		return 2
	case SelfServe:
		return 0
	default:
		return 9
	}
}

// PurchaseType summarises what kind of goods a purchase contains.
type PurchaseType string

const (
	PurchaseFuel           PurchaseType = "Fuel"
	PurchaseNonFuel        PurchaseType = "NonFuel"
	PurchaseFuelAndNonFuel PurchaseType = "FuelAndNonFuel"
)

// Value is the one character wire value of p.
func (p PurchaseType) Value() string {
	switch p {
	case PurchaseFuel:
		return "1"
	case PurchaseNonFuel:
		return "2"
	case PurchaseFuelAndNonFuel:
		return "3"
	default:
		return "0"
	}
}

// HasFuel reports whether p includes fuel.
func (p PurchaseType) HasFuel() bool {
	return p == PurchaseFuel || p == PurchaseFuelAndNonFuel
}

// OperatingEnvironment is where the terminal is deployed.
type OperatingEnvironment string

const (
	Attended        OperatingEnvironment = "Attended"
	Unattended      OperatingEnvironment = "Unattended"
	UnattendedAfd   OperatingEnvironment = "UnattendedAfd"
	UnattendedCat   OperatingEnvironment = "UnattendedCat"
	OnPremises      OperatingEnvironment = "OnPremises"
	OffPremises     OperatingEnvironment = "OffPremises"
	NoTerminalUsed  OperatingEnvironment = "NoTerminalUsed"
	UnknownLocation OperatingEnvironment = "Unknown"
)

// EntryMethod is how the card data reached the terminal.
type EntryMethod string

const (
	Swipe           EntryMethod = "Swipe"
	Proximity       EntryMethod = "Proximity"
	KeyEntry        EntryMethod = "KeyEntry"
	ECommerce       EntryMethod = "ECommerce"
	SecureECommerce EntryMethod = "SecureECommerce"
)

// PromptCode identifies a WEX prompt answered at the pump.
type PromptCode string

const (
	PromptDriverID      PromptCode = "1"
	PromptOdometer      PromptCode = "2"
	PromptVehicleNumber PromptCode = "3"
	PromptJobNumber     PromptCode = "4"
	PromptDepartment    PromptCode = "5"
	PromptTrailerNumber PromptCode = "6"
	PromptUserID        PromptCode = "7"
	PromptCustomerData  PromptCode = "8"
)
