package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, and were skipped. A group that
// contains other tests is counted like any other test.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

// Find returns the result for the test with the specified ID, if any.
func (r Results) Find(id string) (TestResult, bool) {
	for _, t := range r.Tests {
		if t.TestID.String() == id {
			return t, true
		}
	}
	return TestResult{}, false
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Child returns the ID of a subtest. The new ID never shares storage with this one.
func (t TestID) Child(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

// Parent returns the ID of the test that contains this one; for a top-level test it returns
// the empty ID.
func (t TestID) Parent() TestID {
	if len(t.Path) == 0 {
		return t
	}
	return TestID{Path: append([]string(nil), t.Path[:len(t.Path)-1]...)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
