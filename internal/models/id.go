package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID is an opaque identifier. It remembers whether it arrived as a JSON
// number or a JSON string and is written back the same way; the text is
// never parsed or normalized.
type ID struct {
	text string
	kind idKind
}

type idKind uint8

const (
	idNull idKind = iota
	idString
	idNumber
)

// StringID is an id that encodes as a JSON string.
func StringID(s string) ID { return ID{text: s, kind: idString} }

// NewID converts a caller-supplied id. Go integers, floats and json.Number
// become numeric ids; anything else keeps its printed form as a string id.
func NewID(v any) ID {
	switch x := v.(type) {
	case ID:
		return x
	case *ID:
		if x == nil {
			return ID{}
		}
		return *x
	case string:
		return StringID(x)
	case json.Number:
		return ID{text: x.String(), kind: idNumber}
	case int:
		return ID{text: strconv.FormatInt(int64(x), 10), kind: idNumber}
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ID{text: fmt.Sprint(x), kind: idNumber}
	case float32:
		return floatID(float64(x))
	case float64:
		return floatID(x)
	}
	return StringID(fmt.Sprint(v))
}

func floatID(f float64) ID {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return StringID(fmt.Sprint(f))
	}
	return ID{text: strconv.FormatFloat(f, 'f', -1, 64), kind: idNumber}
}

func (id ID) String() string { return id.text }

// IsNumber reports whether the id encodes as a JSON number.
func (id ID) IsNumber() bool { return id.kind == idNumber }

func (id ID) IsZero() bool { return id == ID{} }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID{text: n.String(), kind: idNumber}
	return nil
}

// MarshalJSON writes the id in the form it was received in. The zero ID is null.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idNumber:
		return []byte(id.text), nil
	case idString:
		return json.Marshal(id.text)
	}
	return []byte("null"), nil
}
