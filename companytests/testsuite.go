package companytests

import (
	"github.com/desafio-qa/company-contract-tests/framework"
)

// RunTestSuite runs every Company API test against the service that the harness points to.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness)

		t.Run("company operations", DoCompanyOperationTests)
	})
}
