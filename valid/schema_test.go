package valid_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/valid"
)

type testOrder struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Note     string   `json:"note,omitempty"`
	Tags     []string `json:"tags"`
}

func (testOrder) JSONSchema() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "maxLength": 3},
			"quantity": {"type": "integer", "minimum": 1},
			"note": {"type": "string"},
			"tags": {"type": "array", "items": {"type": "string", "minLength": 2}}
		},
		"required": ["name", "note"]
	}`
}

type testBrokenSchema struct {
	Name string `json:"name"`
}

func (testBrokenSchema) JSONSchema() string { return `{"type": "object"` }

func TestValidatorValidateSchema(t *testing.T) {
	// Arrange
	v := valid.New()
	var actual *valid.Errors

	// Act
	err := v.Validate(&testOrder{Name: "taro", Quantity: 0, Tags: []string{"ok", "x"}})

	// Assert
	require.ErrorIs(t, err, vouch.ErrNotValid)
	require.ErrorAs(t, err, &actual)

	fields := actual.Fields()
	require.Equal(t, []string{"The length of the value must be <= 3."}, fields["name"])
	require.Equal(t, []string{"The value is required."}, fields["note"])
	require.NotEmpty(t, fields["quantity"])
	require.NotEmpty(t, fields["tags[1]"])
	require.Len(t, fields, 4)

	// Act
	err = v.Validate(&testOrder{Name: "abc", Quantity: 2, Note: "rush", Tags: []string{"ok"}})

	// Assert
	require.Nil(t, err)
}

func TestValidatorValidateSchemaBroken(t *testing.T) {
	// Arrange
	v := valid.New()

	// Act
	err := v.Validate(&testBrokenSchema{Name: "abc"})

	// Assert
	require.ErrorIs(t, err, vouch.ErrBadConfig)
	require.NotErrorIs(t, err, vouch.ErrNotValid)
}

func TestValidatorValidateSchemaConcurrent(t *testing.T) {
	// Arrange
	v := valid.New()
	results := make([]error, 40)
	var wg sync.WaitGroup

	// Act
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := testOrder{Name: "abc", Quantity: i % 2, Note: "n", Tags: []string{}}
			results[i] = v.Validate(&order)
		}(i)
	}
	wg.Wait()

	// Assert
	for i, err := range results {
		if i%2 == 0 {
			require.ErrorIs(t, err, vouch.ErrNotValid)
			continue
		}
		require.Nil(t, err)
	}
}
