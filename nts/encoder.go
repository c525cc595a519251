// Package nts builds the user data carried by NTS requests: the tag counted
// bankcard user data, the positional non-bankcard user data and the request
// to balance block.
package nts

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/alovak/nts-userdata/internal/emv"
	"github.com/alovak/nts-userdata/internal/format"
	"github.com/alovak/nts-userdata/nts/models"
)

const delimiter = `\`

// TagDataFilter turns raw EMV tag data into the accepted tag data sent in
// tag 99.
type TagDataFilter interface {
	AcceptedTagData(tagData string) (string, error)
}

// Encoder is stateless and safe for concurrent use. Every wall clock value
// comes from the at argument and is rendered in the encoder's location.
type Encoder struct {
	logger *slog.Logger
	filter TagDataFilter
	loc    *time.Location
}

type Option func(*Encoder)

// WithLocation sets the location wire timestamps are rendered in. The
// default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(e *Encoder) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewEncoder returns an encoder. A nil filter falls back to emv.Filter.
func NewEncoder(logger *slog.Logger, filter TagDataFilter, opts ...Option) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	if filter == nil {
		filter = emv.NewFilter()
	}
	e := &Encoder{
		logger: logger.With(slog.String("component", "nts-encoder")),
		filter: filter,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the location wire timestamps are rendered in.
func (e *Encoder) Location() *time.Location {
	return e.loc
}

// BankcardUserData walks the tag catalogue in order and returns the tag
// count followed by every applicable tag and its value.
func (e *Encoder) BankcardUserData(req models.Request, at time.Time) (string, error) {
	var body strings.Builder
	count := 0
	at = at.In(e.loc)

	for _, rule := range tagCatalogue {
		if !rule.applies(req) {
			continue
		}
		value, err := rule.value(e, req, at)
		if err != nil {
			return "", fmt.Errorf("tag %s: %w", rule.id, err)
		}
		body.WriteString(rule.id + delimiter + value + delimiter)
		count++
	}

	prefix, err := format.Numeric(int64(count), 2)
	if err != nil {
		return "", fmt.Errorf("tag count: %w", err)
	}

	e.logger.Debug("bankcard user data encoded",
		slog.String("card_type", string(req.Transaction.CardType)),
		slog.String("message_code", req.Transaction.MessageCode.Code()),
		slog.Int("tags", count),
	)

	return prefix + delimiter + strings.TrimSuffix(body.String(), delimiter), nil
}

// ProductData returns the product data block of req on its own, as carried
// in tag 09 of the bankcards.
func (e *Encoder) ProductData(req models.Request) (string, error) {
	return encodeProduct(req)
}

// RequestToBalanceUserData renders the user data of a request to balance.
func (e *Encoder) RequestToBalanceUserData(rb models.RequestToBalance) (string, error) {
	var r record
	r.num("day sequence number", rb.DaySequenceNumber, 3)
	r.amount("pdl batch discount", rb.PdlBatchDiscount, 7)
	r.left("vendor software number", rb.VendorSoftwareNumber, 30, ' ')

	out, err := r.String()
	if err != nil {
		return "", fmt.Errorf("request to balance: %w", err)
	}
	return out, nil
}
