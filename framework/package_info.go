// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to the Company API.
//
// The general model is:
//
// 1. The test harness talks to a remote REST service over HTTP. Every call goes to the
// service's base URL plus a path, waits for a response or a fixed timeout, and is handed to
// any reporters that were added before the run.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Assertions from testify's assert and require packages can be used
// with it, as can the response expectations in this package.
//
// The domain-specific code that knows what is being tested is responsible for deciding which
// requests to make, in what order, and what the responses must look like.
package framework
