package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardCapabilities_NTSEntryMethod(t *testing.T) {
	cases := []struct {
		card CardCapabilities
		env  OperatingEnvironment
		want NTSEntryMethod
	}{
		{CardCapabilities{EntryMethod: ECommerce}, Attended, ECommerceNoTrackDataAttended},
		{CardCapabilities{EntryMethod: ECommerce}, UnattendedAfd, ECommerceNoTrackDataUnattendedAfd},
		{CardCapabilities{EntryMethod: SecureECommerce}, UnattendedCat, SecureECommerceNoTrackDataUnattendedCat},
		{CardCapabilities{EntryMethod: SecureECommerce}, OffPremises, SecureECommerceNoTrackDataUnattended},
		{CardCapabilities{EntryMethod: SecureECommerce}, "", SecureECommerceNoTrackDataUnattended},
		{CardCapabilities{EntryMethod: Swipe, TrackNumber: 1}, Attended, "SwipeTrack1Attended"},
		{CardCapabilities{EntryMethod: Swipe, TrackPresent: true}, UnattendedCat, "SwipeTrack2UnattendedCat"},
		{CardCapabilities{EntryMethod: ECommerce, TrackNumber: 2}, Attended, "ECommerceTrack2Attended"},
		{CardCapabilities{EntryMethod: KeyEntry}, Attended, "KeyEntryNoTrackDataAttended"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.card.NTSEntryMethod(c.env))
	}
}

func TestCardCapabilities_ECommerce(t *testing.T) {
	secure := CardCapabilities{EntryMethod: SecureECommerce}
	require.True(t, secure.IsECommerce(Attended))
	require.True(t, secure.IsSecureECommerce(UnattendedAfd))

	plain := CardCapabilities{EntryMethod: ECommerce}
	require.True(t, plain.IsECommerce(UnattendedCat))
	require.False(t, plain.IsSecureECommerce(UnattendedCat))

	plain.TrackNumber = 1
	require.False(t, plain.IsECommerce(Attended))

	require.False(t, CardCapabilities{EntryMethod: KeyEntry}.IsECommerce(Attended))
}
