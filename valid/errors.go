package valid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/xy-planning-network/vouch"
)

// Errors is the set of violations found validating a value.
//
// Errors is a tree mirroring the shape of the value.
// Messages about the value as a whole sit in Errors.
// Messages about a struct field or map key sit in the node under Properties.
// Messages about a slice element sit in the node under Items.
//
// Errors marshals into JSON with "properties" and "items" present whenever their maps are set:
//
//	{"errors": [], "properties": {"name": {"errors": ["..."]}}}
//	{"errors": [], "items": {"0": {"errors": ["..."]}}}
//	{"errors": ["..."]}
//
// Struct fields and map entries, numeric keys included, are Properties;
// only slice and array elements are Items.
type Errors struct {
	Errors     []string
	Properties map[string]*Errors
	Items      map[int]*Errors
}

// NewErrors constructs the root of an *Errors tree for a struct or map value.
func NewErrors() *Errors {
	return &Errors{Properties: make(map[string]*Errors)}
}

// Add appends msg to the messages about the value this node represents.
func (e *Errors) Add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// Property retrieves the node for the named field, creating it if need be.
func (e *Errors) Property(name string) *Errors {
	if e.Properties == nil {
		e.Properties = make(map[string]*Errors)
	}

	node, ok := e.Properties[name]
	if !ok {
		node = new(Errors)
		e.Properties[name] = node
	}

	return node
}

// Item retrieves the node for the element at index i, creating it if need be.
func (e *Errors) Item(i int) *Errors {
	if e.Items == nil {
		e.Items = make(map[int]*Errors)
	}

	node, ok := e.Items[i]
	if !ok {
		node = new(Errors)
		e.Items[i] = node
	}

	return node
}

// Merge folds every message in other into e, matching nodes by field name and index.
func (e *Errors) Merge(other *Errors) {
	if other == nil {
		return
	}

	e.Errors = append(e.Errors, other.Errors...)
	for name, node := range other.Properties {
		e.Property(name).Merge(node)
	}

	for i, node := range other.Items {
		e.Item(i).Merge(node)
	}
}

// Len counts the messages in the whole tree.
func (e *Errors) Len() int {
	if e == nil {
		return 0
	}

	n := len(e.Errors)
	for _, node := range e.Properties {
		n += node.Len()
	}

	for _, node := range e.Items {
		n += node.Len()
	}

	return n
}

// Empty asserts whether the tree holds no messages at all.
func (e *Errors) Empty() bool { return e.Len() == 0 }

// Fields flattens the tree into messages keyed by field path,
// e.g., "name", "address.city", "tags[1]".
// Messages about the root value are keyed by the empty string.
func (e *Errors) Fields() map[string][]string {
	fields := make(map[string][]string)
	e.flatten("", fields)

	return fields
}

func (e *Errors) flatten(path string, fields map[string][]string) {
	if e == nil {
		return
	}

	if len(e.Errors) > 0 {
		fields[path] = append(fields[path], e.Errors...)
	}

	for name, node := range e.Properties {
		next := name
		if path != "" {
			next = path + "." + name
		}
		node.flatten(next, fields)
	}

	for i, node := range e.Items {
		node.flatten(path+"["+strconv.Itoa(i)+"]", fields)
	}
}

func (e *Errors) Error() string {
	fields := e.Fields()
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var msgs []string
	for _, path := range paths {
		for _, msg := range fields[path] {
			msgs = append(msgs, fmt.Sprintf("field=%q error=%q", path, msg))
		}
	}

	return strings.Join(msgs, "\n")
}

func (*Errors) Unwrap() error { return vouch.ErrNotValid }

// MarshalJSON renders the tree in the shapes described on [Errors].
// Properties and Items are each rendered whenever they are set.
// A nil *Errors renders as an object with no violations.
//
// Messages are written as they are; "<", ">" and "&" are not escaped.
func (e *Errors) MarshalJSON() ([]byte, error) {
	if e == nil {
		e = NewErrors()
	}

	msgs := e.Errors
	if msgs == nil {
		msgs = []string{}
	}

	node := map[string]any{"errors": msgs}
	if e.Properties != nil {
		node["properties"] = e.Properties
	}

	if e.Items != nil {
		node["items"] = e.Items
	}

	return marshalUnescaped(node)
}

// marshalUnescaped encodes v as JSON without escaping HTML characters.
func marshalUnescaped(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// newRoot constructs the root of the tree describing rv:
// Items for slices and arrays, Properties for anything else.
func newRoot(rv reflect.Value) *Errors {
	switch indirect(rv).Kind() {
	case reflect.Slice, reflect.Array:
		return &Errors{Items: make(map[int]*Errors)}
	default:
		return NewErrors()
	}
}

// locate walks keys down the tree alongside rv, the value the tree describes,
// creating nodes along the way, and returns the node at the end.
//
// A key addresses Items where rv holds a slice or an array,
// and Properties where it holds a struct or a map, whatever the key looks like.
// Once rv can no longer be followed, keys address Properties.
func (e *Errors) locate(rv reflect.Value, keys []string) *Errors {
	node := e
	for _, key := range keys {
		rv = indirect(rv)

		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 {
				node, rv = node.Property(key), reflect.Value{}
				continue
			}

			node = node.Item(i)
			if i < rv.Len() {
				rv = rv.Index(i)
			} else {
				rv = reflect.Value{}
			}

		case reflect.Map:
			node, rv = node.Property(key), mapIndex(rv, key)

		case reflect.Struct:
			node, rv = node.Property(key), structField(rv, key)

		default:
			node, rv = node.Property(key), reflect.Value{}
		}
	}

	return node
}

// indirect follows pointers and interfaces to the value they hold.
// A nil pointer or interface yields the zero reflect.Value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}

	return rv
}

// mapIndex looks up the entry of m whose key formats as key.
func mapIndex(m reflect.Value, key string) reflect.Value {
	kt := m.Type().Key()

	var k reflect.Value
	switch kt.Kind() {
	case reflect.String:
		k = reflect.ValueOf(key).Convert(kt)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}
		}
		k = reflect.ValueOf(i).Convert(kt)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}
		}
		k = reflect.ValueOf(u).Convert(kt)
	default:
		return reflect.Value{}
	}

	return m.MapIndex(k)
}

// structField finds the field of s named name in violations; cf. fieldName.
func structField(s reflect.Value, name string) reflect.Value {
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		n := fieldName(f)
		if n == "" {
			n = f.Name
		}

		if n == name {
			return s.Field(i)
		}
	}

	return reflect.Value{}
}

// pathKeys splits a path in the notation of [Errors.Fields], e.g., "matrix[0][1].name",
// into the keys it is made of: "matrix", "0", "1", "name".
func pathKeys(path string) []string {
	var keys []string
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}

		name, brackets := splitKeys(seg)
		if name != "" {
			keys = append(keys, name)
		}
		keys = append(keys, brackets...)
	}

	return keys
}

// splitKeys separates "matrix[0][1]" into "matrix" and ["0", "1"].
func splitKeys(seg string) (string, []string) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil
	}

	name := seg[:open]
	var keys []string
	for _, part := range strings.Split(seg[open:], "[") {
		if part == "" {
			continue
		}
		keys = append(keys, strings.TrimSuffix(part, "]"))
	}

	return name, keys
}
