package models

import "strconv"

// NTSEntryMethod is the entry method as the host classifies it: how the card
// data was read combined with the attendance of the terminal.
type NTSEntryMethod string

const (
	ECommerceNoTrackDataAttended            NTSEntryMethod = "ECommerceNoTrackDataAttended"
	ECommerceNoTrackDataUnattended          NTSEntryMethod = "ECommerceNoTrackDataUnattended"
	ECommerceNoTrackDataUnattendedAfd       NTSEntryMethod = "ECommerceNoTrackDataUnattendedAfd"
	ECommerceNoTrackDataUnattendedCat       NTSEntryMethod = "ECommerceNoTrackDataUnattendedCat"
	SecureECommerceNoTrackDataAttended      NTSEntryMethod = "SecureECommerceNoTrackDataAttended"
	SecureECommerceNoTrackDataUnattended    NTSEntryMethod = "SecureECommerceNoTrackDataUnattended"
	SecureECommerceNoTrackDataUnattendedAfd NTSEntryMethod = "SecureECommerceNoTrackDataUnattendedAfd"
	SecureECommerceNoTrackDataUnattendedCat NTSEntryMethod = "SecureECommerceNoTrackDataUnattendedCat"
)

var (
	secureECommerceEntries = map[NTSEntryMethod]bool{
		SecureECommerceNoTrackDataAttended:      true,
		SecureECommerceNoTrackDataUnattended:    true,
		SecureECommerceNoTrackDataUnattendedAfd: true,
		SecureECommerceNoTrackDataUnattendedCat: true,
	}
	eCommerceEntries = map[NTSEntryMethod]bool{
		ECommerceNoTrackDataAttended:      true,
		ECommerceNoTrackDataUnattended:    true,
		ECommerceNoTrackDataUnattendedAfd: true,
		ECommerceNoTrackDataUnattendedCat: true,
	}
)

// attendance folds the operating environment into the four classes the host
// distinguishes. Anything that is not attended, AFD or CAT is unattended.
func (e OperatingEnvironment) attendance() string {
	switch e {
	case Attended, UnattendedAfd, UnattendedCat:
		return string(e)
	default:
		return string(Unattended)
	}
}

// NTSEntryMethod derives the host entry method for a terminal in env. A read
// track, either flagged or numbered, yields a track entry even when the
// terminal reported an e-commerce entry.
func (c CardCapabilities) NTSEntryMethod(env OperatingEnvironment) NTSEntryMethod {
	var read string
	switch {
	case c.TrackPresent || c.TrackNumber > 0:
		track := c.TrackNumber
		if track == 0 {
			track = 2
		}
		read = string(c.EntryMethod) + "Track" + strconv.Itoa(track)
	default:
		read = string(c.EntryMethod) + "NoTrackData"
	}
	return NTSEntryMethod(read + env.attendance())
}

// IsECommerce reports a card-not-present e-commerce entry, secure or not.
func (c CardCapabilities) IsECommerce(env OperatingEnvironment) bool {
	m := c.NTSEntryMethod(env)
	return eCommerceEntries[m] || secureECommerceEntries[m]
}

// IsSecureECommerce reports a card-not-present 3-D Secure entry.
func (c CardCapabilities) IsSecureECommerce(env OperatingEnvironment) bool {
	return secureECommerceEntries[c.NTSEntryMethod(env)]
}
