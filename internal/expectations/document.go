// Package expectations loads test expectation documents: JSON objects whose
// keys are slash-delimited test paths and whose values are outcomes such as
// "FAIL" or "CRASH".
package expectations

import (
	"fmt"

	"github.com/valyala/fastjson"

	"expectgroup/internal/errors"
)

// DefaultPath is where the expectations file lives relative to the repository root.
const DefaultPath = "tests/expectations.json"

// Document is a parsed expectations object.
type Document struct {
	// Keys holds the object's keys in document order. A key repeated in the
	// source appears once, at the position of its first occurrence.
	Keys []string

	// outcomes is parallel to Keys. The last occurrence of a repeated key wins.
	outcomes []string
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	return len(d.Keys)
}

// Outcome returns the string value recorded for Keys[i], or "" when the
// value was not a JSON string.
func (d *Document) Outcome(i int) string {
	return d.outcomes[i]
}

// KeysWithOutcome returns the keys whose outcome is one of outcomes, in
// document order. An empty outcomes list selects every key.
func (d *Document) KeysWithOutcome(outcomes ...string) []string {
	if len(outcomes) == 0 {
		return d.Keys
	}

	want := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		want[o] = struct{}{}
	}

	keys := make([]string, 0, len(d.Keys))
	for i, k := range d.Keys {
		if _, ok := want[d.outcomes[i]]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Parse parses data as an expectations object.
func Parse(data []byte) (*Document, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errors.New(errors.InputInvalid, "expectations are not valid JSON", "", err)
	}

	obj, err := v.Object()
	if err != nil {
		return nil, errors.New(errors.InputNotObject,
			fmt.Sprintf("expectations must be a JSON object, got %s", v.Type()), "", nil)
	}

	doc := &Document{
		Keys:     make([]string, 0, obj.Len()),
		outcomes: make([]string, 0, obj.Len()),
	}
	index := make(map[string]int, obj.Len())

	obj.Visit(func(key []byte, v *fastjson.Value) {
		k := string(key)
		outcome := ""
		if v.Type() == fastjson.TypeString {
			outcome = string(v.GetStringBytes())
		}

		if i, dup := index[k]; dup {
			doc.outcomes[i] = outcome
			return
		}
		index[k] = len(doc.Keys)
		doc.Keys = append(doc.Keys, k)
		doc.outcomes = append(doc.outcomes, outcome)
	})

	return doc, nil
}
