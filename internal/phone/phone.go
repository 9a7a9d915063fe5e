package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Region is the default region for numbers keyed without a country code.
const Region = "UZ"

// CountryCode is the Uzbek calling code every canonical number starts with.
const CountryCode = "998"

const Placeholder = "+998 XX XXX-XX-XX"

// Digits drops everything that is not an ASCII digit.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Normalize turns keyed input into the display form +998 XX XXX-XX-XX.
// Partial input yields a partial display, so it can run on every keystroke.
func Normalize(raw string) string {
	d := Digits(raw)
	if d == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(d, CountryCode):
	case d[0] == '8' && len(d) > 1:
		// national trunk prefix
		d = CountryCode + d[1:]
	default:
		d = CountryCode + d
	}

	// groups of 3/2/3/2/2; anything past 12 digits stays on the last group
	switch n := len(d); {
	case n <= 3:
		return "+" + d
	case n <= 5:
		return "+" + d[:3] + " " + d[3:]
	case n <= 8:
		return "+" + d[:3] + " " + d[3:5] + " " + d[5:]
	case n <= 10:
		return "+" + d[:3] + " " + d[3:5] + " " + d[5:8] + "-" + d[8:]
	default:
		return "+" + d[:3] + " " + d[3:5] + " " + d[5:8] + "-" + d[8:10] + "-" + d[10:]
	}
}

// IsValid reports whether s holds a complete Uzbek number.
func IsValid(s string) bool {
	d := Digits(s)
	return len(d) == 12 && strings.HasPrefix(d, CountryCode)
}

// E164 returns +998XXXXXXXXX for a valid number and "" otherwise.
func E164(s string) string {
	n := Normalize(s)
	if !IsValid(n) {
		return ""
	}
	num, err := phonenumbers.Parse(n, Region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
