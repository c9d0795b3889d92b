package valid_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/valid"
)

func TestErrorsMarshalJSON(t *testing.T) {
	for _, tc := range []struct {
		name     string
		errs     func() *valid.Errors
		expected string
	}{
		{
			"Zero-Value",
			func() *valid.Errors { return new(valid.Errors) },
			`{"errors":[]}`,
		},
		{
			"Nil",
			func() *valid.Errors { return nil },
			`{"errors":[],"properties":{}}`,
		},
		{
			"Root",
			valid.NewErrors,
			`{"errors":[],"properties":{}}`,
		},
		{
			"Property",
			func() *valid.Errors {
				e := valid.NewErrors()
				e.Property("name").Add("The length of the value must be <= 3.")
				return e
			},
			`{"errors":[],"properties":{"name":{"errors":["The length of the value must be <= 3."]}}}`,
		},
		{
			"Nested",
			func() *valid.Errors {
				e := valid.NewErrors()
				e.Add("whole")
				e.Property("address").Property("city").Add("The value is required.")
				e.Property("tags").Item(1).Add("The length of the value must be >= 2.")
				return e
			},
			`{
				"errors": ["whole"],
				"properties": {
					"address": {"errors": [], "properties": {"city": {"errors": ["The value is required."]}}},
					"tags": {"errors": [], "items": {"1": {"errors": ["The length of the value must be >= 2."]}}}
				}
			}`,
		},
		{
			"Properties-And-Items",
			func() *valid.Errors {
				e := valid.NewErrors()
				e.Property("name").Add("a")
				e.Item(2).Add("b")
				return e
			},
			`{"errors":[],"items":{"2":{"errors":["b"]}},"properties":{"name":{"errors":["a"]}}}`,
		},
		{
			"Items",
			func() *valid.Errors {
				e := new(valid.Errors)
				e.Item(0).Item(1).Add("a")
				return e
			},
			`{"errors":[],"items":{"0":{"errors":[],"items":{"1":{"errors":["a"]}}}}}`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := tc.errs().MarshalJSON()

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(actual))
		})
	}
}

func TestErrorsMarshalJSONUnescaped(t *testing.T) {
	// Arrange
	e := valid.NewErrors()
	e.Property("range").Add("The number must be < 3 & > 1.")
	e.Item(0).Add("<b>")

	// Act
	actual, err := e.MarshalJSON()

	// Assert
	require.Nil(t, err)
	require.Equal(
		t,
		`{"errors":[],"items":{"0":{"errors":["<b>"]}},"properties":{"range":{"errors":["The number must be < 3 & > 1."]}}}`,
		string(actual),
	)
}

func TestErrorsMarshalJSONEmbedded(t *testing.T) {
	// Arrange
	e := valid.NewErrors()
	e.Property("name").Add("oops")

	// Act
	actual, err := json.Marshal(map[string]any{"wrapped": e})

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `{"wrapped":{"errors":[],"properties":{"name":{"errors":["oops"]}}}}`, string(actual))
}

func TestErrorsMerge(t *testing.T) {
	// Arrange
	e := valid.NewErrors()
	e.Property("name").Add("first")

	other := valid.NewErrors()
	other.Add("whole")
	other.Property("name").Add("second")
	other.Property("tags").Item(0).Add("third")

	// Act
	e.Merge(other)
	e.Merge(nil)

	// Assert
	require.Equal(t, 4, e.Len())
	require.Equal(t, map[string][]string{
		"":        {"whole"},
		"name":    {"first", "second"},
		"tags[0]": {"third"},
	}, e.Fields())
}

func TestErrorsEmpty(t *testing.T) {
	var nilErrs *valid.Errors
	require.True(t, nilErrs.Empty())

	e := valid.NewErrors()
	e.Property("name")
	require.True(t, e.Empty())

	e.Property("name").Add("oops")
	require.False(t, e.Empty())
}

func TestErrorsError(t *testing.T) {
	// Arrange
	e := valid.NewErrors()
	e.Property("b").Add("second")
	e.Property("a").Property("c").Add("first")

	expected := strings.Join([]string{
		`field="a.c" error="first"`,
		`field="b" error="second"`,
	}, "\n")

	// Act
	actual := e.Error()

	// Assert
	require.Equal(t, expected, actual)
	require.Zero(t, valid.NewErrors().Error())
}

func TestErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, valid.NewErrors(), vouch.ErrNotValid)
}
