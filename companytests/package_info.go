// Package companytests contains the Company API contract tests themselves and their
// supporting API.
//
// Test harness infrastructure that is not specific to the Company API, such as making HTTP
// calls with a timeout, matching JSON responses, and collecting results, is in the
// lower-level framework package.
package companytests
