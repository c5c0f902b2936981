package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requirementSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["text", "priority"],
	"properties": {
		"text": {"type": "string"},
		"priority": {"type": "string", "enum": ["must_have", "nice_to_have", "preferred"]}
	}
}`

func TestValidateJSONString_Documents(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{name: "valid requirement", document: `{"text": "Go", "priority": "must_have"}`},
		{name: "missing required field", document: `{"text": "Go"}`, wantField: "(root)"},
		{name: "wrong type", document: `{"text": 42, "priority": "must_have"}`, wantField: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(requirementSchema, tt.document)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(requirementSchema, "{ invalid json }")
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(requirementSchema, `{"text": "Go", "priority": "preferred"}`))

	err := ValidateJSONString(requirementSchema, `{"text": "Go", "priority": "someday"}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "priority", validationErr.Errors[0].Field)
}

func TestValidateJSONString_RootError(t *testing.T) {
	err := ValidateJSONString(requirementSchema, `{}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidateValue(t *testing.T) {
	type requirement struct {
		Text     string `json:"text"`
		Priority string `json:"priority"`
	}

	assert.NoError(t, ValidateValue(requirementSchema, requirement{Text: "Go", Priority: "must_have"}))
	assert.Error(t, ValidateValue(requirementSchema, requirement{Text: "Go", Priority: "urgent"}))
}

func TestValidateValue_Unmarshalable(t *testing.T) {
	err := ValidateValue(requirementSchema, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal value")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "text", Message: "is required"},
			{Field: "years_required", Message: "must be an integer"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. text: is required")
	assert.Contains(t, msg, "2. years_required")
}
