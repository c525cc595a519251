package nts

import (
	"errors"
	"fmt"

	"github.com/alovak/nts-userdata/internal/format"
)

var (
	// ErrMissingRequiredData is returned when the card type and transaction
	// require a data structure the request does not carry.
	ErrMissingRequiredData = fmt.Errorf("missing required data")

	// ErrFieldOverflow is returned when a value does not fit its fixed width.
	ErrFieldOverflow = format.ErrOverflow

	// ErrUnsupportedCombination is returned when no encoding rule exists for
	// the card type, transaction type and message code.
	ErrUnsupportedCombination = fmt.Errorf("unsupported combination")

	// ErrInvalidValue is returned for negative, non-numeric or non-ASCII values.
	ErrInvalidValue = fmt.Errorf("invalid value")
)

// classify tags formatter failures other than overflow as invalid values.
func classify(err error) error {
	if errors.Is(err, format.ErrNegative) || errors.Is(err, format.ErrNotNumeric) || errors.Is(err, format.ErrNotASCII) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return err
}

func missing(what string) error {
	return fmt.Errorf("%w: %s", ErrMissingRequiredData, what)
}

func unsupported(req string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedCombination, req)
}
