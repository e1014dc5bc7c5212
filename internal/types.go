package internal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Translations maps language codes to translated text, remembering the order
// in which codes were first set. A nil value is the absence marker: the
// translation for that code could not be obtained.
type Translations struct {
	codes  []string
	values map[string]*string
}

// Text returns a pointer to s, for building Translations values.
func Text(s string) *string {
	return &s
}

// Set stores text for code. Re-setting a code replaces its value in place.
func (t *Translations) Set(code string, text *string) {
	if t.values == nil {
		t.values = make(map[string]*string)
	}
	if _, ok := t.values[code]; !ok {
		t.codes = append(t.codes, code)
	}
	t.values[code] = text
}

// lookup reports the stored value for code and whether the code is present.
func (t Translations) lookup(code string) (*string, bool) {
	v, ok := t.values[code]
	return v, ok
}

// Get returns the translated text for code. ok is false when the code is
// missing or holds the absence marker.
func (t Translations) Get(code string) (string, bool) {
	v := t.values[code]
	if v == nil {
		return "", false
	}
	return *v, true
}

// Codes returns the language codes in insertion order.
func (t Translations) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

func (t Translations) Len() int {
	return len(t.codes)
}

// Failed returns the codes holding the absence marker, in insertion order.
func (t Translations) Failed() []string {
	var failed []string
	for _, code := range t.codes {
		if t.values[code] == nil {
			failed = append(failed, code)
		}
	}
	return failed
}

// Equal reports whether both mappings hold the same codes, in the same order,
// with the same values.
func (t Translations) Equal(other Translations) bool {
	if len(t.codes) != len(other.codes) {
		return false
	}
	for i, code := range t.codes {
		if other.codes[i] != code {
			return false
		}
		a, b := t.values[code], other.values[code]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

func (t Translations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range t.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(code)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := t.values[code]
		if v == nil {
			buf.WriteString("null")
			continue
		}
		val, err := marshalNoEscape(*v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of code -> string|null keeping the
// document's key order.
func (t *Translations) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("translations: invalid JSON")
	}

	res := gjson.ParseBytes(data)
	*t = Translations{}
	if res.Type == gjson.Null {
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("translations: expected object, got %s", res.Type)
	}

	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			t.Set(key.String(), nil)
		case gjson.String:
			t.Set(key.String(), Text(value.String()))
		default:
			err = fmt.Errorf("translations: value for %q must be a string or null, got %s", key.String(), value.Type)
			return false
		}
		return true
	})
	return err
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// HistoryEntry is one persisted request/response pair.
type HistoryEntry struct {
	Original     string       `json:"original"`
	Translations Translations `json:"translations"`
}
