package phone

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNormalizeScenarios(t *testing.T) {
	cases := []struct {
		in, want string
		valid    bool
	}{
		{"901234567", "+998 90 123-45-67", true},
		{"", "", false},
		{"+998 90 123-45-67", "+998 90 123-45-67", true},
		{"998901234567", "+998 90 123-45-67", true},
		{"8901234567", "+998 90 123-45-67", true},
		{"(90) 123 45 67", "+998 90 123-45-67", true},
		{"9", "+998 9", false},
		{"90123", "+998 90 123", false},
		{"9012345", "+998 90 123-45", false},
		{"abc", "", false},
		{"9012345678", "+998 90 123-45-678", false},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
		if IsValid(got) != c.valid {
			t.Fatalf("IsValid(%q) = %v, want %v", got, !c.valid, c.valid)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		in := randomInput(r)
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeShape(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		n := 9 + r.Intn(4)
		d := randomDigits(r, n)
		got := Normalize(d)
		if !strings.HasPrefix(got, "+") {
			t.Fatalf("Normalize(%q) = %q, missing +", d, got)
		}
		for _, c := range got[1:] {
			if !(c >= '0' && c <= '9') && c != ' ' && c != '-' {
				t.Fatalf("Normalize(%q) = %q, unexpected %q", d, got, c)
			}
		}
	}
}

func TestValidityDependsOnDigitCount(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		d := "90" + randomDigits(r, r.Intn(11))
		punctuated := punctuate(r, d)
		want := len(CountryCode+d) == 12
		if got := IsValid(Normalize(punctuated)); got != want {
			t.Fatalf("IsValid(Normalize(%q)) = %v, want %v", punctuated, got, want)
		}
		if IsValid(Normalize(d)) != IsValid(Normalize(punctuated)) {
			t.Fatalf("punctuation changed validity for %q", punctuated)
		}
	}
}

func TestE164(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"90 123 45 67", "+998901234567"},
		{"+998 (90) 123-45-67", "+998901234567"},
		{"8 90 123 45 67", "+998901234567"},
		{"998931112233", "+998931112233"},
		{"90 123", ""},
		{"+998 90 123-45-67-89", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := E164(c.in); got != c.want {
			t.Fatalf("E164(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func randomDigits(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + r.Intn(10))
	}
	return string(b)
}

func randomInput(r *rand.Rand) string {
	const alphabet = "0123456789 +-()x"
	b := make([]byte, r.Intn(20))
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func punctuate(r *rand.Rand, d string) string {
	const seps = " -()."
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		if r.Intn(3) == 0 {
			b.WriteByte(seps[r.Intn(len(seps))])
		}
		b.WriteByte(d[i])
	}
	return b.String()
}
