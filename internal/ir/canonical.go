package ir

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for hashing.
// This is the ONLY serialization used for content-addressed identity.
//
// Differences from encoding/json:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping; only quote, backslash and control characters
//  3. Strings and keys are NFC normalized
//  4. No floats and no null (both return an error)
//
// Supported values: string, bool, int, int64, []string, []any,
// map[string]any, map[string][]string, and the document types of this
// package.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		writeCanonicalString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case []string:
		list := make([]any, len(val))
		for i, s := range val {
			list[i] = s
		}
		return writeCanonicalArray(buf, list)
	case []any:
		return writeCanonicalArray(buf, val)
	case map[string][]string:
		obj := make(map[string]any, len(val))
		for k, s := range val {
			obj[k] = s
		}
		return writeCanonicalObject(buf, obj)
	case map[string]any:
		return writeCanonicalObject(buf, val)
	case AutomatonDoc:
		return writeCanonicalObject(buf, val.canonical())
	case *AutomatonDoc:
		if val == nil {
			return fmt.Errorf("null is forbidden in canonical JSON")
		}
		return writeCanonicalObject(buf, val.canonical())
	case Definition:
		return writeCanonicalObject(buf, val.canonical())
	case float32, float64:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// writeCanonicalString escapes per RFC 8785: the short forms \b \t \n \f \r,
// \u00xx for other control characters, and \" and \\. Everything else,
// including U+2028 and U+2029, is written literally.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"
	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\f':
			buf.WriteString(`\f`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xf])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func writeCanonicalArray(buf *bytes.Buffer, list []any) error {
	buf.WriteByte('[')
	for i, elem := range list {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	// Keys are normalized before sorting so the order matches the bytes written.
	keys := make([]string, 0, len(obj))
	byKey := make(map[string]string, len(obj))
	for k := range obj {
		nk := norm.NFC.String(k)
		if prev, dup := byKey[nk]; dup {
			return fmt.Errorf("keys %q and %q collide after NFC normalization", prev, k)
		}
		byKey[nk] = k
		keys = append(keys, nk)
	}
	sort.Slice(keys, func(i, j int) bool { return lessUTF16(keys[i], keys[j]) })

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCanonicalString(buf, k)
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[byKey[k]]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// lessUTF16 orders strings by UTF-16 code units, as RFC 8785 requires.
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// canonical returns the hashing view of the document. The label is
// display-only and is left out, so structurally identical automata share
// an identity.
func (d AutomatonDoc) canonical() map[string]any {
	states := make([]any, len(d.States))
	for i, s := range d.States {
		on := make(map[string]any, len(s.On))
		for sym, targets := range s.On {
			on[sym] = targets
		}
		states[i] = map[string]any{
			"name":   s.Name,
			"accept": s.Accept,
			"on":     on,
		}
	}
	return map[string]any{
		"kind":     string(d.Kind),
		"alphabet": append([]string{}, d.Alphabet...),
		"start":    d.Start,
		"states":   states,
	}
}

func (d Definition) canonical() map[string]any {
	obj := map[string]any{
		"name": d.Name,
		"kind": string(d.Kind),
	}
	switch {
	case d.Kind == KindString:
		obj["text"] = d.Text
	case d.Kind == KindBool:
		obj["bool"] = d.Bool
	case d.Automaton != nil:
		obj["automaton"] = d.Automaton.canonical()
	}
	return obj
}
