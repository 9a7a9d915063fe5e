package i18n

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		tg, accept string
		want       Language
	}{
		{"uz", "en-US", Uz},
		{"ru", "", Ru},
		{"de", "ru-RU,ru;q=0.9", Ru},
		{"", "uz", Uz},
		{"en", "fr-FR", En},
		{"", "", En},
	}
	for _, c := range cases {
		if got := Detect(c.tg, c.accept); got != c.want {
			t.Fatalf("Detect(%q, %q) = %q, want %q", c.tg, c.accept, got, c.want)
		}
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Ru, NetworkError, nil); got != "Ошибка сети" {
		t.Fatalf("got %q", got)
	}
	if got := Message(En, ValidationError, map[string]string{"field": "serial_number"}); got != "Check the field: serial_number" {
		t.Fatalf("got %q", got)
	}
	if got := Message(Language("de"), NotFound, nil); got != "Nothing found" {
		t.Fatalf("got %q", got)
	}
	if got := Message(En, "missing_key", nil); got != "missing_key" {
		t.Fatalf("got %q", got)
	}
}
