// Package emv filters raw chip data down to the tags the network accepts in
// user data tag 99.
package emv

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/skythen/bertlv"
)

var (
	ErrMalformed = errors.New("malformed emv tag data")
	ErrNoTags    = errors.New("no accepted emv tags")
)

// acceptedTags is the set of tags forwarded to the host. Track equivalents,
// the PAN and the cardholder name are never forwarded.
var acceptedTags = map[string]bool{
	"4F":   true, // application identifier
	"82":   true, // application interchange profile
	"84":   true, // dedicated file name
	"95":   true, // terminal verification results
	"9A":   true, // transaction date
	"9C":   true, // transaction type
	"5F24": true, // application expiration date
	"5F2A": true, // transaction currency code
	"5F34": true, // pan sequence number
	"9F02": true, // amount authorized
	"9F03": true, // amount other
	"9F06": true,
	"9F07": true,
	"9F09": true,
	"9F10": true, // issuer application data
	"9F1A": true, // terminal country code
	"9F1E": true,
	"9F26": true, // application cryptogram
	"9F27": true, // cryptogram information data
	"9F33": true, // terminal capabilities
	"9F34": true, // cvm results
	"9F35": true, // terminal type
	"9F36": true, // application transaction counter
	"9F37": true, // unpredictable number
	"9F41": true,
	"9F53": true,
	"9F6E": true,
}

// Filter returns the accepted tag data of a raw hex TLV string.
type Filter struct{}

func NewFilter() *Filter {
	return &Filter{}
}

// AcceptedTagData parses tagData, drops every tag that is not accepted and
// re-encodes the rest, in their original order, as upper case hex.
func (f *Filter) AcceptedTagData(tagData string) (string, error) {
	raw, err := hex.DecodeString(tagData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tlvs, err := bertlv.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if tlvs.FindFirstWithTag(bertlv.NewOneByteTag(0x82)) == nil {
		return "", fmt.Errorf("%w: application interchange profile (82) missing", ErrMalformed)
	}

	var out []byte
	for _, tlv := range tlvs {
		tag := strings.ToUpper(hex.EncodeToString(tlv.Tag))
		if !acceptedTags[tag] {
			continue
		}
		out = append(out, tlv.Tag...)
		out = append(out, encodeLength(len(tlv.Value))...)
		out = append(out, tlv.Value...)
	}

	if len(out) == 0 {
		return "", ErrNoTags
	}

	return strings.ToUpper(hex.EncodeToString(out)), nil
}

// encodeLength renders n in BER definite form.
func encodeLength(n int) []byte {
	switch {
	case n < 0x80:
		return []byte{byte(n)}
	case n <= 0xff:
		return []byte{0x81, byte(n)}
	default:
		return []byte{0x82, byte(n >> 8), byte(n)}
	}
}
