/*
Package valid checks decoded request payloads and reports what is wrong with them.

A [Validator] evaluates three kinds of rules against a value:
"validate" struct tags through go-playground/validator,
a JSON Schema document through gojsonschema when the type implements [SchemaProvider],
and the type's own Validate method when it implements [Validatable].

Violations are collected into an [*Errors] tree shaped like the value:

	{
		"errors": [],
		"properties": {
			"name": {"errors": ["The length of the value must be <= 3."]},
			"tags": {"errors": [], "items": {"1": {"errors": ["The value is required."]}}}
		}
	}

Fields are named after their "json" tag, falling back to their "schema" tag,
so the paths in an [*Errors] match what clients sent.
*/
package valid
