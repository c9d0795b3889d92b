package valid

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/xy-planning-network/vouch"
)

const rootContext = "(root)"

// SchemaProvider is implemented by payloads described by a JSON Schema document.
//
// JSONSchema must return the same document for every value of a type:
// the compiled schema is cached per type.
//
// The document checks the value as encoding/json marshals it.
// A field without "omitempty" is always present, if only as its zero value,
// so "required" only ever fires for fields tagged "omitempty".
type SchemaProvider interface {
	JSONSchema() string
}

// A schemaCache holds schemas compiled from SchemaProvider documents, keyed by type.
//
// A schemaCache is not safe for concurrent use.
// Validator hands each one to a single validation at a time through a sync.Pool.
type schemaCache struct {
	compiled map[reflect.Type]*gojsonschema.Schema
}

// load returns the compiled schema for t, compiling doc the first time t is seen.
func (c *schemaCache) load(t reflect.Type, doc string) (*gojsonschema.Schema, error) {
	if s, ok := c.compiled[t]; ok {
		return s, nil
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %s has an unusable JSON schema: %s", vouch.ErrBadConfig, t, err)
	}

	c.compiled[t] = s
	return s, nil
}

// validateSchema checks structPtr against the document its type provides, if any.
func (v *Validator) validateSchema(structPtr any, errs *Errors) error {
	rv := reflect.ValueOf(structPtr)
	sp, ok := asType[SchemaProvider](structPtr)
	if !ok {
		return nil
	}

	cache := v.caches.Get().(*schemaCache)
	defer v.caches.Put(cache)

	schema, err := cache.load(reflect.TypeOf(structPtr), sp.JSONSchema())
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(structPtr))
	if err != nil {
		return fmt.Errorf("%w: validating %T against its JSON schema: %s", vouch.ErrUnexpected, structPtr, err)
	}

	for _, re := range result.Errors() {
		errs.locate(rv, schemaKeys(re)).Add(schemaMessage(re))
	}

	return nil
}

// schemaKeys splits the context of re, e.g., "(root).tags.1", into the keys leading to
// the violating value, e.g., "tags", "1".
//
// Violations about a missing or unexpected property are reported by gojsonschema on the parent object;
// schemaKeys moves them onto the property itself.
func schemaKeys(re gojsonschema.ResultError) []string {
	var keys []string
	for _, seg := range strings.Split(strings.TrimPrefix(re.Context().String(), rootContext), ".") {
		if seg != "" {
			keys = append(keys, seg)
		}
	}

	switch re.Type() {
	case "required", "additional_property_not_allowed":
		if prop, ok := re.Details()["property"].(string); ok && prop != "" {
			keys = append(keys, prop)
		}
	}

	return keys
}

// schemaMessage phrases re the same way defaultMessage phrases struct tag failures.
func schemaMessage(re gojsonschema.ResultError) string {
	d := re.Details()
	switch re.Type() {
	case "required":
		return "The value is required."
	case "additional_property_not_allowed":
		return "The property is not allowed."
	case "string_lte":
		return fmt.Sprintf("The length of the value must be <= %s.", number(d["max"]))
	case "string_gte":
		return fmt.Sprintf("The length of the value must be >= %s.", number(d["min"]))
	case "number_lte":
		return fmt.Sprintf("The number must be <= %s.", number(d["max"]))
	case "number_gte":
		return fmt.Sprintf("The number must be >= %s.", number(d["min"]))
	case "number_lt":
		return fmt.Sprintf("The number must be < %s.", number(d["max"]))
	case "number_gt":
		return fmt.Sprintf("The number must be > %s.", number(d["min"]))
	case "array_max_items":
		return fmt.Sprintf("The length of the items must be <= %s.", number(d["max"]))
	case "array_min_items":
		return fmt.Sprintf("The length of the items must be >= %s.", number(d["min"]))
	case "unique":
		return "The items must be unique."
	case "pattern":
		return fmt.Sprintf("The value must match the pattern of %q.", fmt.Sprint(d["pattern"]))
	case "enum":
		return fmt.Sprintf("The value must be in [%v].", d["allowed"])
	case "multiple_of":
		return fmt.Sprintf("The value must be multiple of %s.", number(d["multiple"]))
	case "invalid_type":
		return fmt.Sprintf("The value must be of type %v.", d["expected"])
	default:
		return re.Description()
	}
}

// number formats the numeric detail values gojsonschema reports.
func number(v any) string {
	switch n := v.(type) {
	case *big.Rat:
		if n.IsInt() {
			return n.Num().String()
		}
		f, _ := n.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case *big.Float:
		return n.Text('f', -1)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
