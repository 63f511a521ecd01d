package companytests

import (
	"fmt"
	"net/http"

	"github.com/desafio-qa/company-contract-tests/framework"
	"github.com/desafio-qa/company-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

// lifecycle follows one company from creation to deletion. It holds the identifier that the
// create step received, and what the company should look like after the writes so far. Each
// scenario owns its own lifecycle; nothing about a company is shared between scenarios.
type lifecycle struct {
	description string
	company     servicedef.Company
	deleted     bool
}

func newLifecycle(description string) *lifecycle {
	return &lifecycle{description: description}
}

func (l *lifecycle) created() bool {
	return l.company.CompanyID != ""
}

// bind takes the company ID from a successful create response.
func (l *lifecycle) bind(t *T, resp framework.APIResponse, fields servicedef.CompanyFields) {
	id := resp.JSON.GetByKey("company_id")
	require.False(t, id.IsNull(), "create response had no company_id: %s", resp)
	require.True(t, id.IsString(), "company_id in create response was not a string: %s", resp)
	require.NotEmpty(t, id.StringValue(), "company_id in create response was empty")
	l.company = servicedef.Company{CompanyID: id.StringValue()}.Apply(fields)
	l.deleted = false
	t.Debug("Bound %s to company_id %q", l.description, l.company.CompanyID)
}

// requireID returns the company ID, or skips the test if no company was created.
func (l *lifecycle) requireID(t *T) string {
	if !l.created() {
		t.Skip(fmt.Sprintf("%s was not created", l.description))
	}
	return l.company.CompanyID
}

func (l *lifecycle) applyUpdate(fields servicedef.CompanyFields) {
	l.company = l.company.Apply(fields)
}

// expected returns what a read of the company should return.
func (l *lifecycle) expected() servicedef.Company {
	return l.company
}

// cleanUp deletes the company if the scenario did not. Failures are logged, not reported as
// test failures, since the scenario's own steps have already been checked.
func (l *lifecycle) cleanUp(t *T) {
	if !l.created() || l.deleted {
		return
	}
	resp, err := t.harness.Call(t.ID(), t.context.DebugLogger(), framework.APIRequest{
		Method: http.MethodDelete,
		Path:   companyPath(l.company.CompanyID),
	})
	switch {
	case err != nil:
		t.Debug("Could not delete %s: %s", l.description, err)
	case resp.StatusCode >= 300:
		t.Debug("Could not delete %s: %s", l.description, resp)
	default:
		l.deleted = true
	}
}

// scenario runs an ordered sequence of steps, each as a subtest. Steps depend on the outcome of
// earlier steps, so once a step fails, the rest are skipped.
type scenario struct {
	t          *T
	failedStep string
}

func newScenario(t *T) *scenario {
	return &scenario{t: t}
}

func (s *scenario) step(name string, action func(*T)) {
	if s.failedStep != "" {
		failed := s.failedStep
		s.t.Run(name, func(t *T) {
			t.Skip(fmt.Sprintf("previous step %q failed", failed))
		})
		return
	}
	if !s.t.Run(name, action) {
		s.failedStep = name
	}
}
