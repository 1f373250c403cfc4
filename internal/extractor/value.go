package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// ValueKind is the type of a decoded JSON value
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

// Member is an object field; members keep document order
type Member struct {
	Key   string
	Value *Value
}

// Value is a decoded JSON document
type Value struct {
	Kind    ValueKind
	Bool    bool
	Number  float64
	String  string
	Items   []*Value
	Members []Member
}

var errInvalidJSON = errors.New("invalid JSON")

// ParseValue decodes a JSON document preserving object key order
func ParseValue(data []byte) (*Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return nil, errInvalidJSON
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON value: %w", err)
	}
	return buildValue(raw, dataType)
}

func buildValue(raw []byte, dataType jsonparser.ValueType) (*Value, error) {
	switch dataType {
	case jsonparser.Null:
		return &Value{Kind: NullValue}, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: BoolValue, Bool: b}, nil

	case jsonparser.Number:
		n, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: NumberValue, Number: n}, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: StringValue, String: s}, nil

	case jsonparser.Array:
		v := &Value{Kind: ArrayValue}
		var itemErr error
		_, err := jsonparser.ArrayEach(raw, func(item []byte, itemType jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			child, err := buildValue(item, itemType)
			if err != nil {
				itemErr = err
				return
			}
			v.Items = append(v.Items, child)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return v, nil

	case jsonparser.Object:
		v := &Value{Kind: ObjectValue}
		err := jsonparser.ObjectEach(raw, func(key []byte, member []byte, memberType jsonparser.ValueType, _ int) error {
			child, err := buildValue(member, memberType)
			if err != nil {
				return err
			}
			// ObjectEach hands over keys already unescaped
			v.Members = append(v.Members, Member{Key: string(key), Value: child})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	return nil, fmt.Errorf("unexpected JSON value type %s", dataType)
}

// Field returns the value of key, or nil. Duplicate keys resolve to the last one.
func (v *Value) Field(key string) *Value {
	if v == nil || v.Kind != ObjectValue {
		return nil
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == key {
			return v.Members[i].Value
		}
	}
	return nil
}

// StringField returns the string value of key, or "" when absent or not a string
func (v *Value) StringField(key string) string {
	f := v.Field(key)
	if f == nil || f.Kind != StringValue {
		return ""
	}
	return f.String
}

// IsContainer reports whether v is an array or an object
func (v *Value) IsContainer() bool {
	return v != nil && (v.Kind == ArrayValue || v.Kind == ObjectValue)
}
