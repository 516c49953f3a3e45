package specgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "sequence"
	case KindObject:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a structured document value. Numbers keep their source text and
// object members keep their source order.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string
	Text    string
	Items   []Value
	Members []Member
}

type Member struct {
	Key   string
	Value Value
}

func Null() Value { return Value{Kind: KindNull} }
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func Number(n string) Value { return Value{Kind: KindNumber, Number: n} }
func String(s string) Value { return Value{Kind: KindString, Text: s} }
func Array(items ...Value) Value { return Value{Kind: KindArray, Items: append([]Value{}, items...)} }

func Object(members ...Member) Value {
	obj := Value{Kind: KindObject, Members: []Member{}}
	for _, m := range members {
		obj.set(m.Key, m.Value)
	}
	return obj
}

// set replaces an existing member in place so that later duplicates win,
// matching encoding/json.
func (v *Value) set(key string, value Value) {
	for i := range v.Members {
		if v.Members[i].Key == key {
			v.Members[i].Value = value
			return
		}
	}
	v.Members = append(v.Members, Member{Key: key, Value: value})
}

// Field looks up a member of an object value.
func (v Value) Field(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Interface converts v into the generic form produced by
// jsonschema.UnmarshalJSON, with json.Number for numbers.
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return json.Number(v.Number)
	case KindString:
		return v.Text
	case KindArray:
		out := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, item.Interface())
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

func DecodeJSON(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string at offset %d", dec.InputOffset())
				}
				member, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.set(key, member)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return obj, nil
		case '[':
			arr := Array()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr.Items = append(arr.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return arr, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
}

func DecodeYAML(raw []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Value{}, err
	}
	return FromYAML(&doc)
}

// FromYAML converts a yaml.v3 node tree. Custom tags on collections (such
// as the !code lambdas of the mustache suite) are ignored.
func FromYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(node.Content[0])
	case yaml.AliasNode:
		return FromYAML(node.Alias)
	case yaml.SequenceNode:
		arr := Array()
		for _, child := range node.Content {
			item, err := FromYAML(child)
			if err != nil {
				return Value{}, err
			}
			arr.Items = append(arr.Items, item)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := Object()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			member, err := FromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			obj.set(keyNode.Value, member)
		}
		return obj, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var n any
		if err := node.Decode(&n); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		switch x := n.(type) {
		case int:
			return Number(strconv.Itoa(x)), nil
		case int64:
			return Number(strconv.FormatInt(x, 10)), nil
		case uint64:
			return Number(strconv.FormatUint(x, 10)), nil
		case float64:
			if math.IsInf(x, 0) || math.IsNaN(x) {
				return Value{}, fmt.Errorf("line %d: number %q has no JSON form", node.Line, node.Value)
			}
			return Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
		default:
			return Value{}, fmt.Errorf("line %d: unsupported number %q", node.Line, node.Value)
		}
	default:
		return String(node.Value), nil
	}
}
