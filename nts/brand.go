package nts

import (
	"time"

	"github.com/alovak/nts-userdata/internal/clock"
	"github.com/alovak/nts-userdata/nts/models"
)

const (
	wexPromptSlots     = 3
	wexChipPromptSlots = 6
)

// wexPrompts writes the number of prompts sent followed by a fixed number
// of prompt slots. Chip transactions have room for six prompts.
func wexPrompts(r *record, p *models.ProductData, chip bool) {
	limit := wexPromptSlots
	if chip {
		limit = wexChipPromptSlots
	}

	var prompts []models.Prompt
	if p != nil {
		prompts = p.Prompts
	}
	if len(prompts) > limit {
		prompts = prompts[:limit]
	}

	r.num("prompt count", int64(len(prompts)), 1)
	for _, pr := range prompts {
		r.left("prompt code", string(pr.Code), 1, '0')
		r.num("prompt length", int64(len(pr.Value)), 2)
		r.right("prompt value", pr.Value, 12, '0')
	}
	for i := len(prompts); i < limit; i++ {
		r.zeros(1 + 2 + 12)
	}
}

// fleetAuthData renders tag 08 for the fleet bankcards.
func fleetAuthData(ct models.CardType, f *models.FleetData) (string, error) {
	var r record
	switch ct {
	case models.VisaFleet:
		r.digits("odometer", f.Odometer, 7)
		r.left("fleet identification", f.Identification(), 17, ' ')
	case models.MastercardFleet:
		if f.Odometer != "" {
			r.digits("odometer", f.Odometer, 7)
		} else {
			r.blank(7)
		}
		optionalRight(&r, "driver id", f.DriverID, 6)
		optionalRight(&r, "vehicle number", f.VehicleNumber, 6)
	default:
		return "", unsupported("fleet data for " + string(ct))
	}
	return r.String()
}

// optionalRight zero pads s on the left or blanks the field when s is absent.
func optionalRight(r *record, name, s string, width int) {
	if s == "" {
		r.blank(width)
		return
	}
	r.right(name, s, width, '0')
}

// creditAdjustment identifies the authorization a FleetWide or Fuelman
// credit adjustment applies to, stamped with the time of the adjustment.
func creditAdjustment(r *record, dc *models.DataCollectRequest, at time.Time) {
	r.right("approval code", dc.ApprovalCode, 6, '0')
	r.num("batch number", dc.BatchNumber, 2)
	r.num("sequence number", dc.SequenceNumber, 3)
	r.raw(clock.Stamp(at))
}

func tag16Block(t *models.Tag16, at time.Time) (string, error) {
	var r record
	r.num("pump number", t.PumpNumber, 2)
	r.num("workstation id", t.WorkstationID, 2)
	r.raw(clock.Stamp(at))
	r.left("service code", t.ServiceCode, 1, ' ')
	r.left("security data", t.SecurityData, 1, ' ')
	return r.String()
}

// wexEmv appends the chip block of WEX messages. The product capability is
// only sent with authorizations.
func wexEmv(r *record, req models.Request, withCapability bool) {
	tx := req.Transaction
	if !tx.HasTagData() {
		return
	}

	r.digits("card sequence number", req.Card.CardSequenceNumber, 3)
	r.raw(tx.Modifier.EmvTransactionType())
	if withCapability {
		r.left("available product capability", req.Acceptor.AvailableProductCapability, 1, ' ')
	}
	r.num("tag data length", int64(len(tx.TagData)), 4)
	r.raw(tx.TagData)
}
