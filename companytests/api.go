package companytests

import (
	"github.com/desafio-qa/company-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the Company API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with debug logging that is only shown for failed tests.
// Those features are provided by the lower-level framework package.
//
// To make test assertions, you can use the assert and require packages, or the Expect
// functions in the framework package, passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
}

func newTestScope(context *framework.Context, harness *framework.TestHarness) *T {
	return &T{
		context: context,
		harness: harness,
	}
}

// ID returns the identifier of this test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, returning false if it failed. This is equivalent to the Run method of
// testing.T.
func (t *T) Run(name string, action func(*T)) bool {
	return t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// Skip ends the test immediately without failing it, reporting the specified reason.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Call sends a request to the Company API. The test fails and immediately exits if there is no
// response within the harness's call timeout.
func (t *T) Call(req framework.APIRequest) framework.APIResponse {
	resp, err := t.harness.Call(t.context.ID(), t.context.DebugLogger(), req)
	require.NoError(t, err)
	return resp
}
