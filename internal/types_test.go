package internal

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestTranslations_SetKeepsFirstPosition(t *testing.T) {
	var tr Translations
	tr.Set("en", Text("Hello"))
	tr.Set("fr", nil)
	tr.Set("en", Text("Hi"))

	if got, want := tr.Codes(), []string{"en", "fr"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
	if text, ok := tr.Get("en"); !ok || text != "Hi" {
		t.Errorf("Get(en) = %q, %v; want \"Hi\", true", text, ok)
	}
	if _, ok := tr.Get("fr"); ok {
		t.Error("expected absence marker for fr")
	}
	if v, ok := tr.lookup("fr"); !ok || v != nil {
		t.Errorf("lookup(fr) = %v, %v; want nil, true", v, ok)
	}
	if _, ok := tr.lookup("de"); ok {
		t.Error("expected de to be missing")
	}
	if got := tr.Failed(); !reflect.DeepEqual(got, []string{"fr"}) {
		t.Errorf("Failed() = %v, want [fr]", got)
	}
}

func TestTranslations_MarshalJSON(t *testing.T) {
	var tr Translations
	tr.Set("fr", Text("Bonjour <ami> & co"))
	tr.Set("en", nil)
	tr.Set("uk", Text("Привіт"))

	data, err := tr.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	want := `{"fr":"Bonjour <ami> & co","en":null,"uk":"Привіт"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestTranslations_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Translations{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal = %s, want {}", data)
	}
}

func TestTranslations_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var tr Translations
	err := json.Unmarshal([]byte(`{"de":"Hallo","en":"Hello","fr":null,"ar":"مرحبا"}`), &tr)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got, want := tr.Codes(), []string{"de", "en", "fr", "ar"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
	if text, _ := tr.Get("ar"); text != "مرحبا" {
		t.Errorf("Get(ar) = %q", text)
	}
	if v, ok := tr.lookup("fr"); !ok || v != nil {
		t.Error("expected fr to hold the absence marker")
	}
}

func TestTranslations_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `["en"]`},
		{name: "number value", input: `{"en": 5}`},
		{name: "object value", input: `{"en": {"text": "x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Translations
			if err := json.Unmarshal([]byte(tt.input), &tr); err == nil {
				t.Errorf("expected error for %s", tt.input)
			}
		})
	}
}

func TestTranslations_UnmarshalJSON_Null(t *testing.T) {
	var tr Translations
	if err := json.Unmarshal([]byte(`null`), &tr); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if tr.Len() != 0 {
		t.Errorf("expected empty translations, got %d", tr.Len())
	}
}

func TestTranslations_Equal(t *testing.T) {
	var a, b Translations
	a.Set("en", Text("Hello"))
	a.Set("fr", nil)
	b.Set("en", Text("Hello"))
	b.Set("fr", nil)

	if !a.Equal(b) {
		t.Error("expected equal mappings")
	}

	b.Set("fr", Text("Bonjour"))
	if a.Equal(b) {
		t.Error("expected mappings to differ after fr changed")
	}

	var c Translations
	c.Set("fr", nil)
	c.Set("en", Text("Hello"))
	if a.Equal(c) {
		t.Error("expected order to matter")
	}
}

func TestHistoryEntry_JSONShape(t *testing.T) {
	entry := HistoryEntry{Original: "Hello"}
	entry.Translations.Set("en", Text("Hello"))

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"original":"Hello"`) || !strings.Contains(s, `"translations":{"en":"Hello"}`) {
		t.Errorf("unexpected entry JSON: %s", s)
	}
}
