package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"expectgroup/internal/grouping"
)

func TestWriteHuman(t *testing.T) {
	tests := []struct {
		name   string
		groups []grouping.Group
		want   string
	}{
		{
			name:   "two groups",
			groups: []grouping.Group{{Key: "a", Count: 2}, {Key: "b", Count: 1}},
			want:   "'a': 2\n'b': 1\n",
		},
		{
			name:   "empty group key",
			groups: []grouping.Group{{Key: "", Count: 1}, {Key: "also", Count: 1}},
			want:   "'': 1\n'also': 1\n",
		},
		{
			name:   "no groups",
			groups: nil,
			want:   "",
		},
		{
			name:   "quotes are not escaped",
			groups: []grouping.Group{{Key: "it's/here", Count: 3}},
			want:   "'it's/here': 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, New(tt.groups, 0), FormatHuman))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New([]grouping.Group{{Key: "a", Count: 2}, {Key: "", Count: 1}}, 3)
	require.NoError(t, Write(&buf, r, FormatJSON))

	var got struct {
		Groups []struct {
			Key   string `json:"key"`
			Count int    `json:"count"`
		} `json:"groups"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "a", got.Groups[0].Key)
	assert.Equal(t, "", got.Groups[1].Key)
	assert.Equal(t, 3, got.Total)
}

func TestWriteJSON_EmptyGroupsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(nil, 0), FormatJSON))
	assert.Contains(t, buf.String(), `"groups": []`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	r := New([]grouping.Group{{Key: "built-ins/Array", Count: 4}}, 4)
	require.NoError(t, Write(&buf, r, FormatYAML))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 4, got["total"])
	assert.True(t, strings.HasPrefix(buf.String(), "groups:\n"), "got %q", buf.String())
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	r := New([]grouping.Group{{Key: "a", Count: 2}, {Key: "b", Count: 1}}, 3)
	require.NoError(t, Write(&buf, r, FormatTOML))

	assert.Equal(t, 2, strings.Count(buf.String(), "[[groups]]"))

	var got Report
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r.Groups, got.Groups)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, New(nil, 0), OutputFormat("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"human", FormatHuman, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"", "", true},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReport_Top(t *testing.T) {
	r := New([]grouping.Group{{Key: "a", Count: 3}, {Key: "b", Count: 2}, {Key: "c", Count: 1}}, 6)

	assert.Len(t, r.Top(0).Groups, 3)
	assert.Len(t, r.Top(10).Groups, 3)

	top := r.Top(2)
	assert.Equal(t, []grouping.Group{{Key: "a", Count: 3}, {Key: "b", Count: 2}}, top.Groups)
	assert.Equal(t, 6, top.Total)
}
