package framework

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewJSONFileReporter(path)

	r.AfterCall(CallRecord{
		TestID:       TestID{Path: []string{"a", "create"}},
		Time:         time.Now(),
		Method:       "POST",
		URL:          "http://service/api/company/new",
		RequestBody:  `{"name":"x"}`,
		StatusCode:   201,
		ResponseBody: `{"success":true}`,
		Duration:     time.Millisecond * 1500,
	})
	r.AfterCall(CallRecord{
		TestID: TestID{Path: []string{"a", "get"}},
		Method: "GET",
		URL:    "http://service/api/company/1",
		Error:  "timed out",
	})

	failed := TestResult{TestID: TestID{Path: []string{"a", "get"}}, Errors: []error{errors.New("timed out")}}
	results := Results{
		Tests: []TestResult{
			{TestID: TestID{Path: []string{"a", "create"}}},
			failed,
			{TestID: TestID{Path: []string{"a", "delete"}}, Skipped: true, SkipReason: "previous step failed"},
		},
		Failures: []TestResult{failed},
	}
	require.NoError(t, r.End(results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var report jsonReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.False(t, report.OK)
	require.Len(t, report.Tests, 3)
	assert.Equal(t, "a/get", report.Tests[1].ID)
	assert.Equal(t, []string{"timed out"}, report.Tests[1].Errors)
	assert.True(t, report.Tests[2].Skipped)
	assert.Equal(t, "previous step failed", report.Tests[2].SkipReason)

	require.Len(t, report.Calls, 2)
	assert.Equal(t, "a/create", report.Calls[0].Test)
	assert.Equal(t, 201, report.Calls[0].Status)
	assert.Equal(t, int64(1500), report.Calls[0].DurationMS)
	assert.Equal(t, "timed out", report.Calls[1].Error)
}

func TestJSONFileReporterReportsWriteError(t *testing.T) {
	r := NewJSONFileReporter(filepath.Join(t.TempDir(), "missing-dir", "report.json"))
	assert.Error(t, r.End(Results{}))
}
