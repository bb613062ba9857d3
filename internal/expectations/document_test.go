package expectations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expectgroup/internal/errors"
)

func TestParse_KeyOrder(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "document order not lexical",
			data: `{"z/1":"FAIL","a/1":"FAIL","m/1":"CRASH"}`,
			want: []string{"z/1", "a/1", "m/1"},
		},
		{
			name: "empty object",
			data: `{}`,
			want: []string{},
		},
		{
			name: "duplicate keys keep first position",
			data: `{"a/x":1,"b/y":2,"a/x":3}`,
			want: []string{"a/x", "b/y"},
		},
		{
			name: "escaped keys are decoded",
			data: `{"a\/b":1,"café/x":2}`,
			want: []string{"a/b", "café/x"},
		},
		{
			name: "nested values are not inspected",
			data: `{"a/x":{"b/y":1},"c":[1,2]}`,
			want: []string{"a/x", "c"},
		},
		{
			name: "surrounding whitespace",
			data: "\n  {\"k\": null}\n",
			want: []string{"k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Keys)
			assert.Equal(t, len(tt.want), doc.Len())
		})
	}
}

func TestParse_Outcomes(t *testing.T) {
	doc, err := Parse([]byte(`{"a/1":"FAIL","a/2":"CRASH","b/1":7,"a/1":"TIMEOUT"}`))
	require.NoError(t, err)

	require.Equal(t, []string{"a/1", "a/2", "b/1"}, doc.Keys)
	assert.Equal(t, "TIMEOUT", doc.Outcome(0), "last value of a repeated key wins")
	assert.Equal(t, "CRASH", doc.Outcome(1))
	assert.Equal(t, "", doc.Outcome(2), "non-string values have no outcome")
}

func TestDocument_KeysWithOutcome(t *testing.T) {
	doc, err := Parse([]byte(`{"a/1":"FAIL","a/2":"CRASH","b/1":"FAIL","c/1":"TIMEOUT"}`))
	require.NoError(t, err)

	assert.Equal(t, doc.Keys, doc.KeysWithOutcome())
	assert.Equal(t, []string{"a/1", "b/1"}, doc.KeysWithOutcome("FAIL"))
	assert.Equal(t, []string{"a/2", "c/1"}, doc.KeysWithOutcome("TIMEOUT", "CRASH"))
	assert.Empty(t, doc.KeysWithOutcome("fail"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"empty input", ``, errors.InputInvalid},
		{"truncated", `{"a/x":1`, errors.InputInvalid},
		{"trailing garbage", `{"a":1} x`, errors.InputInvalid},
		{"not json", `a/x: 1`, errors.InputInvalid},
		{"array", `["a/x"]`, errors.InputNotObject},
		{"string", `"a/x"`, errors.InputNotObject},
		{"number", `42`, errors.InputNotObject},
		{"null", `null`, errors.InputNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, errors.ParseError, errors.KindOf(err))
		})
	}
}
