package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prescottcassy/insurance-assistant/constants"
)

func TestSetIfAbsent(t *testing.T) {
	f := make(FieldMap)

	assert.True(t, f.SetIfAbsent("copay", "25"))
	assert.False(t, f.SetIfAbsent("copay", "99"))
	assert.Equal(t, "25", f["copay"])
}

func TestSortedKeys(t *testing.T) {
	f := FieldMap{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, f.SortedKeys())
}

func TestClean(t *testing.T) {
	in := FieldMap{
		"copay":              "25",
		"empty":              "",
		"blank":              "   ",
		"null_value":         "null",
		"none_value":         "None",
		"padded":             " 30 ",
		constants.RawTextKey: "full ocr text",
	}

	out := Clean(in)

	assert.Equal(t, FieldMap{"copay": "25", "padded": "30"}, out)
	// receiver untouched
	assert.Contains(t, in, constants.RawTextKey)
	assert.Equal(t, "", in["empty"])
}

func TestKeyify(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Group No", "group_no"},
		{"Customer Service", "customer_service"},
		{"Co-Pay", "co_pay"},
		{"  Plan Name  ", "plan_name"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyify(tt.label), tt.label)
	}
}

func TestValidateFields(t *testing.T) {
	schema := BuildCardJSONSchema()

	assert.NoError(t, ValidateFields(schema, FieldMap{"copay": "25", "group_no": "98765"}))
	assert.Error(t, ValidateFields(schema, FieldMap{"Bad Key": "x"}))
	assert.Error(t, ValidateFields(schema, FieldMap{"copay": ""}))
}
