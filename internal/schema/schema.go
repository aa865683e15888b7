// Package schema describes the shape of each submittable entity and
// validates incoming field-maps against those descriptions.
//
// A Schema is plain data: an ordered list of fields, each with a type,
// a required flag, and optional constraints (allowed-value set, format,
// non-negativity). Validate is a pure function over a field-map and a
// Schema — it touches no storage and collects EVERY problem before
// returning, so a client sees all of its mistakes in one response
// instead of fixing them one at a time.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType says how a submitted value is interpreted.
type FieldType int

const (
	// Text fields pass through as strings.
	Text FieldType = iota
	// Number fields are coerced from text to float64; non-numeric
	// input is reported as a problem.
	Number
)

// Field is one entry in a Schema.
type Field struct {
	Name     string
	Type     FieldType
	Required bool

	// Enum, when non-empty, is the set of allowed values for a Text
	// field. A present value outside the set is a problem.
	Enum []string

	// Format names an extra well-formedness check on a Text field.
	// The only format used today is "email", delegated to
	// go-playground/validator.
	Format string

	// NonNegative rejects values below zero on a Number field.
	NonNegative bool
}

// Schema is the declarative description of one entity kind.
type Schema struct {
	Entity string
	Fields []Field
}

// Record is a normalized field-map: every Number field holds a float64,
// every Text field a string, and optional absent fields are simply not
// present.
type Record map[string]any

// Reasons a field can fail validation.
const (
	ReasonMissing      = "missing"
	ReasonInvalidValue = "invalid value"
	ReasonNotANumber   = "not a number"
	ReasonInvalidEmail = "invalid email"
)

// Problem is one validation failure on one field.
type Problem struct {
	Field  string
	Reason string
}

func (p Problem) String() string {
	switch p.Reason {
	case ReasonMissing:
		return "missing: " + p.Field
	case ReasonNotANumber:
		return p.Field + " is not a number"
	case ReasonInvalidEmail:
		return p.Field + " is not a valid email address"
	default:
		return "invalid value for " + p.Field
	}
}

// Problems is the full, ordered list of failures from one Validate call.
// It implements error so handlers can pass it straight to the response
// layer.
type Problems []Problem

func (ps Problems) Error() string {
	msgs := make([]string, 0, len(ps))
	for _, p := range ps {
		msgs = append(msgs, p.String())
	}
	return strings.Join(msgs, ", ")
}

// Fields returns just the offending field names, in schema order.
func (ps Problems) Fields() []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Field)
	}
	return names
}

// validate is shared across calls; a validator.Validate is safe for
// concurrent use and caches struct metadata internally.
var validate = validator.New()

// Validate checks a field-map against a schema.
//
// It returns either a normalized Record and nil, or a non-empty Problems
// list describing every required field that was absent or empty, every
// enum field holding a value outside its allowed set, every numeric
// field that failed to coerce, and every email field that is malformed.
// Unknown keys in the field-map are ignored — the Record contains only
// fields the schema names.
func Validate(fields map[string]any, s Schema) (Record, Problems) {
	record := make(Record, len(s.Fields))
	var problems Problems

	for _, f := range s.Fields {
		value, present := fields[f.Name]
		if !present || isEmpty(value) {
			if f.Required {
				problems = append(problems, Problem{f.Name, ReasonMissing})
			}
			continue
		}

		switch f.Type {
		case Number:
			n, err := toNumber(value)
			if err != nil {
				problems = append(problems, Problem{f.Name, ReasonNotANumber})
				continue
			}
			if f.NonNegative && n < 0 {
				problems = append(problems, Problem{f.Name, ReasonInvalidValue})
				continue
			}
			record[f.Name] = n

		default: // Text
			text := fmt.Sprintf("%v", value)
			if len(f.Enum) > 0 && !contains(f.Enum, text) {
				problems = append(problems, Problem{f.Name, ReasonInvalidValue})
				continue
			}
			if f.Format == "email" {
				if err := validate.Var(text, "email"); err != nil {
					problems = append(problems, Problem{f.Name, ReasonInvalidEmail})
					continue
				}
			}
			record[f.Name] = text
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return record, nil
}

// isEmpty treats nil and the empty string as "not provided". A form that
// posts message="" means the same thing as a form that omits message.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toNumber coerces the value shapes we actually receive: float64 from
// encoding/json, string from multipart form fields, and ints from tests.
func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("cannot interpret %T as a number", v)
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
