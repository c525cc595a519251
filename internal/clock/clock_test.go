package clock

import (
	"testing"
	"time"
)

func TestFormats(t *testing.T) {
	at := time.Date(2029, time.December, 5, 21, 7, 9, 0, time.UTC)
	if got := MMDDYY(at); got != "120529" {
		t.Fatalf("MMDDYY got %s want %s", got, "120529")
	}
	if got := HHMMSS(at); got != "210709" {
		t.Fatalf("HHMMSS got %s want %s", got, "210709")
	}
	if got := Stamp(at); got != "120529210709" {
		t.Fatalf("Stamp got %s want %s", got, "120529210709")
	}
}

func TestFormats_OwnLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	// 02:30 UTC on Jan 1st is still Dec 31st in EST
	at := time.Date(2031, time.January, 1, 2, 30, 0, 0, time.UTC)
	if got := Stamp(at); got != "010131023000" {
		t.Fatalf("Stamp got %s want %s", got, "010131023000")
	}
	if got := MMDDYY(at.In(est)); got != "123130" {
		t.Fatalf("MMDDYY got %s want %s", got, "123130")
	}
	if got := HHMMSS(at.In(est)); got != "213000" {
		t.Fatalf("HHMMSS got %s want %s", got, "213000")
	}
}

func TestValidateMMDDYY(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"022924", true}, {"123199", true}, {"010100", true},
		{"022923", false}, {"13012a", false}, {"130124", false}, {"000124", false}, {"04312", false},
	}
	for _, c := range cases {
		err := ValidateMMDDYY(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("ValidateMMDDYY(%s) ok=%v got err=%v", c.in, c.ok, err)
		}
	}
}
