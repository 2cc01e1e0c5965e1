package i18n

import "testing"

func TestTranslationsHaveSameKeys(t *testing.T) {
	for _, lang := range AvailableLanguages() {
		for _, other := range AvailableLanguages() {
			for key := range translations[lang] {
				if _, ok := translations[other][key]; !ok {
					t.Errorf("key %q present in %s but missing in %s", key, lang, other)
				}
			}
		}
	}
}

func TestSetLanguage(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(RU)
	if got := T("tray_quit"); got != "Выход" {
		t.Fatalf("T(tray_quit) = %q", got)
	}
	SetLanguage("xx")
	if GetLanguage() != RU {
		t.Fatalf("unknown language replaced current: %s", GetLanguage())
	}
	if got := T("no_such_key"); got != "no_such_key" {
		t.Fatalf("missing key fallback = %q", got)
	}
	SetLanguage(EN)
	if got := Tf("tray_ready_chord", "⌘⇧Z"); got != "Hold ⌘⇧Z to record" {
		t.Fatalf("Tf() = %q", got)
	}
}
