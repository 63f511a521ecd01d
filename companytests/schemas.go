package companytests

import (
	"github.com/desafio-qa/company-contract-tests/servicedef"

	"github.com/invopop/jsonschema"
)

const schemaVersion = "http://json-schema.org/draft-07/schema#"

type createdCompanyShape struct {
	CompanyID string `json:"company_id"`
}

// schemaFor derives a JSON schema from the JSON encoding of a Go type. Fields without
// omitempty are required, and properties that the type doesn't mention are allowed.
func schemaFor(v interface{}) *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := r.Reflect(v)
	s.Version = schemaVersion
	return s
}

var (
	createdCompanySchema = schemaFor(&createdCompanyShape{})
	companySchema        = schemaFor(&servicedef.Company{})
	companyListSchema    = schemaFor([]servicedef.CompanySummary{})
)
