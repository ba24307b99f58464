// Package astdump converts parsed statements into YAML documents for the
// parse command and the HTTP API.
//
// The tree is walked by reflection. Every node becomes a mapping whose
// first key is its kind; zero-valued fields are omitted so the dump shows
// only what the source contained.
package astdump

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"gopkg.in/yaml.v3"
)

type kinded interface {
	Kind() core.NodeKind
}

// Node builds the YAML node tree for v, which is a statement, a slice of
// statements or any syntax tree node.
func Node(v any) *yaml.Node {
	n := encode(reflect.ValueOf(v))
	if n == nil {
		return scalar("!!null", "null")
	}
	return n
}

// Value returns the tree as plain maps, slices and scalars, suitable for
// encoding/json.
func Value(v any) (any, error) {
	var out any
	if err := Node(v).Decode(&out); err != nil {
		return nil, fmt.Errorf("astdump: %w", err)
	}
	return out, nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Node(v)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	val, err := Value(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(val)
}

var (
	stringerType  = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	statementType = reflect.TypeOf((*core.SqlStatement)(nil))
)

func encode(v reflect.Value) *yaml.Node {
	if !v.IsValid() {
		return nil
	}

	if v.Type() == statementType {
		if v.IsNil() {
			return nil
		}
		stmt := v.Interface().(*core.SqlStatement)
		m := mapping()
		addPair(m, "statement", scalar("!!str", stmt.Type().String()))
		if body := encode(reflect.ValueOf(stmt.Body())); body != nil {
			addPair(m, "body", body)
		}
		return m
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if v.Kind() == reflect.Pointer {
			return encodeStruct(v.Elem(), v.Interface())
		}
		return encode(v.Elem())

	case reflect.Struct:
		return encodeStruct(v, nil)

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return nil
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			item := encode(v.Index(i))
			if item == nil {
				item = scalar("!!null", "null")
			}
			seq.Content = append(seq.Content, item)
		}
		return seq

	case reflect.String:
		return scalar("!!str", v.String())

	case reflect.Bool:
		return scalar("!!bool", strconv.FormatBool(v.Bool()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Type().Implements(stringerType) {
			return scalar("!!str", v.Interface().(fmt.Stringer).String())
		}
		if v.CanInt() {
			return scalar("!!int", strconv.FormatInt(v.Int(), 10))
		}
		return scalar("!!int", strconv.FormatUint(v.Uint(), 10))
	}

	return scalar("!!str", fmt.Sprint(v.Interface()))
}

// encodeStruct emits a mapping for a struct. ptr is the original pointer,
// used to find the node kind of tree nodes.
func encodeStruct(v reflect.Value, ptr any) *yaml.Node {
	if v.Kind() != reflect.Struct {
		return encode(v)
	}

	m := mapping()
	k, isNode := ptr.(kinded)
	if isNode {
		addPair(m, "node", scalar("!!str", k.Kind().String()))
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() && !(isNode && meaningfulZero(fv)) {
			continue
		}
		child := encode(fv)
		if child == nil {
			continue
		}
		addPair(m, snakeCase(f.Name), child)
	}
	return m
}

// meaningfulZero reports whether a zero enum still names something, such
// as LiteralKind number or FrameUnit ROWS.
func meaningfulZero(v reflect.Value) bool {
	if v.Kind() != reflect.Int || !v.Type().Implements(stringerType) {
		return false
	}
	s := v.Interface().(fmt.Stringer).String()
	return s != "" && s != "default"
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func addPair(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, scalar("!!str", key), val)
}

// snakeCase converts a Go field name: OrderBy -> order_by, CTEs -> ctes.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1])
				// An acronym ends where a word of two or more lower case
				// letters starts: HTTPServer -> http_server, CTEs -> ctes.
				nextLower := unicode.IsUpper(runes[i-1]) && i+2 < len(runes) &&
					unicode.IsLower(runes[i+1]) && unicode.IsLower(runes[i+2])
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
