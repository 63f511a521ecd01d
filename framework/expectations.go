package framework

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The Expect functions have require semantics: if the expectation is not met, they log the
// mismatch and call FailNow on the test.

// ExpectStatus fails the test if the response did not have the specified status.
func ExpectStatus(t require.TestingT, resp APIResponse, status int) {
	if resp.StatusCode != status {
		require.Fail(t, fmt.Sprintf("expected HTTP status %d but got %d", status, resp.StatusCode),
			"response was: %s", resp)
	}
}

// ExpectJSONLike fails the test unless the response body contains everything in expected, as
// defined by MatchJSON.
func ExpectJSONLike(t require.TestingT, resp APIResponse, expected ldvalue.Value) {
	requireJSONBody(t, resp)
	if mismatches := MatchJSON(expected, resp.JSON); len(mismatches) > 0 {
		require.Fail(t, "response body did not match expected properties",
			"%s\nexpected at least: %s\nresponse was: %s",
			strings.Join(mismatches, "\n"), expected.JSONString(), resp)
	}
}

// ExpectJSONSchema fails the test unless the response body is valid according to schema. The
// schema can be anything that marshals to a JSON schema document, such as a map or a
// *jsonschema.Schema.
func ExpectJSONSchema(t require.TestingT, resp APIResponse, schema interface{}) {
	requireJSONBody(t, resp)
	problems, err := ValidateJSONSchema(schema, resp.Body)
	require.NoError(t, err, "could not evaluate JSON schema")
	if len(problems) > 0 {
		require.Fail(t, "response body did not match JSON schema",
			"%s\nresponse was: %s", strings.Join(problems, "\n"), resp)
	}
}

func requireJSONBody(t require.TestingT, resp APIResponse) {
	if !resp.IsJSON() {
		require.Fail(t, "expected a JSON response body", "response was: %s", resp)
	}
}

// ValidateJSONSchema returns a description of each way in which document violates schema. The
// error is non-nil only if the schema itself could not be used.
func ValidateJSONSchema(schema interface{}, document []byte) ([]string, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, err
	}
	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}

// MatchJSON compares actual against expected using partial-match rules, and returns a
// description of each mismatch, or nil if they match.
//
// An expected object matches an actual object if every property of the expected object exists
// in the actual one with a matching value; other actual properties are ignored. An expected
// array matches an actual array if each expected element matches at least one actual element,
// in any order. Any other expected value must be equal to the actual value.
func MatchJSON(expected, actual ldvalue.Value) []string {
	return matchJSONAt("$", expected, actual)
}

func matchJSONAt(path string, expected, actual ldvalue.Value) []string {
	switch expected.Type() {
	case ldvalue.ObjectType:
		if actual.Type() != ldvalue.ObjectType {
			return []string{fmt.Sprintf("at %s: expected an object but got %s", path, actual.JSONString())}
		}
		present := make(map[string]bool)
		for _, k := range actual.Keys() {
			present[k] = true
		}
		keys := expected.Keys()
		sort.Strings(keys)
		var mismatches []string
		for _, k := range keys {
			p := path + "." + k
			if !present[k] {
				mismatches = append(mismatches, fmt.Sprintf("at %s: property is missing", p))
				continue
			}
			mismatches = append(mismatches, matchJSONAt(p, expected.GetByKey(k), actual.GetByKey(k))...)
		}
		return mismatches

	case ldvalue.ArrayType:
		if actual.Type() != ldvalue.ArrayType {
			return []string{fmt.Sprintf("at %s: expected an array but got %s", path, actual.JSONString())}
		}
		var mismatches []string
		for i := 0; i < expected.Count(); i++ {
			e := expected.GetByIndex(i)
			found := false
			for j := 0; j < actual.Count(); j++ {
				if len(matchJSONAt(path, e, actual.GetByIndex(j))) == 0 {
					found = true
					break
				}
			}
			if !found {
				mismatches = append(mismatches, fmt.Sprintf("at %s: no element matched %s", path, e.JSONString()))
			}
		}
		return mismatches

	default:
		if !expected.Equal(actual) {
			return []string{fmt.Sprintf("at %s: expected %s but got %s", path, expected.JSONString(), actual.JSONString())}
		}
		return nil
	}
}
