package framework

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CallRecord describes one request made during the test run. If the request got no response,
// Error is set and StatusCode is zero.
type CallRecord struct {
	TestID       TestID
	Time         time.Time
	Method       string
	URL          string
	RequestBody  string
	StatusCode   int
	ResponseBody string
	Duration     time.Duration
	Error        string
}

// Reporter is a sink for the activity of a test run. It is added to the TestHarness before the
// run, sees every call as it completes, and is ended once with the final results.
type Reporter interface {
	AfterCall(record CallRecord)
	End(results Results) error
}

// JSONFileReporter writes a JSON document describing the whole run to a file when it is
// ended.
type JSONFileReporter struct {
	path    string
	started time.Time
	calls   []CallRecord
	lock    sync.Mutex
}

type jsonReport struct {
	Started  time.Time        `json:"started"`
	Finished time.Time        `json:"finished"`
	OK       bool             `json:"ok"`
	Tests    []jsonTestResult `json:"tests"`
	Calls    []jsonCallRecord `json:"calls"`
}

type jsonTestResult struct {
	ID         string   `json:"id"`
	Skipped    bool     `json:"skipped,omitempty"`
	SkipReason string   `json:"skipReason,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

type jsonCallRecord struct {
	Test         string    `json:"test"`
	Time         time.Time `json:"time"`
	Method       string    `json:"method"`
	URL          string    `json:"url"`
	RequestBody  string    `json:"requestBody,omitempty"`
	Status       int       `json:"status,omitempty"`
	ResponseBody string    `json:"responseBody,omitempty"`
	DurationMS   int64     `json:"durationMs"`
	Error        string    `json:"error,omitempty"`
}

func NewJSONFileReporter(path string) *JSONFileReporter {
	return &JSONFileReporter{path: path, started: time.Now()}
}

func (r *JSONFileReporter) AfterCall(record CallRecord) {
	r.lock.Lock()
	r.calls = append(r.calls, record)
	r.lock.Unlock()
}

func (r *JSONFileReporter) End(results Results) error {
	r.lock.Lock()
	calls := append([]CallRecord(nil), r.calls...)
	r.lock.Unlock()

	report := jsonReport{
		Started:  r.started,
		Finished: time.Now(),
		OK:       results.OK(),
		Tests:    make([]jsonTestResult, 0, len(results.Tests)),
		Calls:    make([]jsonCallRecord, 0, len(calls)),
	}
	for _, t := range results.Tests {
		jt := jsonTestResult{ID: t.TestID.String(), Skipped: t.Skipped, SkipReason: t.SkipReason}
		for _, err := range t.Errors {
			jt.Errors = append(jt.Errors, err.Error())
		}
		report.Tests = append(report.Tests, jt)
	}
	for _, c := range calls {
		report.Calls = append(report.Calls, jsonCallRecord{
			Test:         c.TestID.String(),
			Time:         c.Time,
			Method:       c.Method,
			URL:          c.URL,
			RequestBody:  c.RequestBody,
			Status:       c.StatusCode,
			ResponseBody: c.ResponseBody,
			DurationMS:   c.Duration.Milliseconds(),
			Error:        c.Error,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
