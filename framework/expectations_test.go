package framework

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type fakeT struct {
	errors []string
	failed bool
}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) FailNow() {
	f.failed = true
}

func jsonResponse(status int, body string) APIResponse {
	return APIResponse{
		Method:     "GET",
		URL:        "http://service/api/company",
		StatusCode: status,
		Body:       []byte(body),
		JSON:       parseJSON([]byte(body)),
	}
}

func TestMatchJSON(t *testing.T) {
	for _, p := range []struct {
		name     string
		expected string
		actual   string
		matches  bool
	}{
		{"equal scalars", `"a"`, `"a"`, true},
		{"different scalars", `"a"`, `"b"`, false},
		{"number and string", `1`, `"1"`, false},
		{"subset of object", `{"success": true}`, `{"success": true, "company_id": "x"}`, true},
		{"missing property", `{"name": "x"}`, `{"company_id": "x"}`, false},
		{"null is not missing", `{"name": null}`, `{"name": null}`, true},
		{"wrong property value", `{"name": "x"}`, `{"name": "y"}`, false},
		{"object against array", `{"name": "x"}`, `[{"name": "x"}]`, false},
		{"nested object", `{"a": {"b": 1}}`, `{"a": {"b": 1, "c": 2}}`, true},
		{"array element anywhere", `[{"name": "x"}]`, `[{"name": "y"}, {"name": "x", "id": "1"}]`, true},
		{"array element absent", `[{"name": "x"}]`, `[{"name": "y"}]`, false},
		{"empty expected array", `[]`, `[{"name": "y"}]`, true},
		{"array against object", `[]`, `{}`, false},
	} {
		t.Run(p.name, func(t *testing.T) {
			mismatches := MatchJSON(ldvalue.Parse([]byte(p.expected)), ldvalue.Parse([]byte(p.actual)))
			if p.matches {
				assert.Empty(t, mismatches)
			} else {
				assert.NotEmpty(t, mismatches)
			}
		})
	}
}

func TestMatchJSONDescribesPath(t *testing.T) {
	mismatches := MatchJSON(
		ldvalue.Parse([]byte(`{"a": {"b": "x", "c": 1}}`)),
		ldvalue.Parse([]byte(`{"a": {"b": "y"}}`)),
	)
	assert.Equal(t, []string{
		`at $.a.b: expected "x" but got "y"`,
		`at $.a.c: property is missing`,
	}, mismatches)
}

func TestExpectStatus(t *testing.T) {
	ok := &fakeT{}
	ExpectStatus(ok, jsonResponse(200, `{}`), 200)
	assert.False(t, ok.failed)

	bad := &fakeT{}
	ExpectStatus(bad, jsonResponse(404, `{"message":"Company not found"}`), 200)
	assert.True(t, bad.failed)
	require.Len(t, bad.errors, 1)
	assert.Contains(t, bad.errors[0], "expected HTTP status 200 but got 404")
	assert.Contains(t, bad.errors[0], "Company not found")
}

func TestExpectJSONLike(t *testing.T) {
	expected := ldvalue.ObjectBuild().Set("success", ldvalue.Bool(true)).Build()

	ok := &fakeT{}
	ExpectJSONLike(ok, jsonResponse(201, `{"success": true, "company_id": "1"}`), expected)
	assert.False(t, ok.failed)

	bad := &fakeT{}
	ExpectJSONLike(bad, jsonResponse(201, `{"success": false}`), expected)
	assert.True(t, bad.failed)
	assert.Contains(t, strings.Join(bad.errors, "\n"), "at $.success")
}

func TestExpectJSONLikeRequiresJSONBody(t *testing.T) {
	for _, body := range []string{"", "not json"} {
		f := &fakeT{}
		ExpectJSONLike(f, jsonResponse(200, body), ldvalue.ArrayOf())
		assert.True(t, f.failed, "body: %q", body)
	}
}

var summarySchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"company_id": map[string]interface{}{"type": "string"},
			"name":       map[string]interface{}{"type": "string"},
		},
		"required": []string{"company_id", "name"},
	},
}

func TestValidateJSONSchema(t *testing.T) {
	problems, err := ValidateJSONSchema(summarySchema, []byte(`[{"company_id": "1", "name": "x", "city": "y"}]`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = ValidateJSONSchema(summarySchema, []byte(`[{"company_id": 1}]`))
	require.NoError(t, err)
	assert.Len(t, problems, 2) // wrong type, missing name
}

func TestExpectJSONSchema(t *testing.T) {
	ok := &fakeT{}
	ExpectJSONSchema(ok, jsonResponse(200, `[]`), summarySchema)
	assert.False(t, ok.failed)

	bad := &fakeT{}
	ExpectJSONSchema(bad, jsonResponse(200, `{"company_id": "1"}`), summarySchema)
	assert.True(t, bad.failed)
}
