// Package servicedef contains the request and response formats of the Company API.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	CompanyBasePath   = "/company"
	CreateCompanyPath = "/company/new"
	SearchCompanyPath = "/company/search"

	SearchNameParam = "name"
)

// Company is the representation of a single company returned by the API.
type Company struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// CompanySummary is the part of Company that every element of a list or search result must
// have.
type CompanySummary struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// CreateCompanyResult is the body of a successful create response.
type CreateCompanyResult struct {
	Success   bool   `json:"success"`
	CompanyID string `json:"company_id"`
}

// StatusResult is the body of an update response, and of error responses.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CompanyFields is the body of a create or update request. Only the defined fields are sent,
// so an update can change some fields and leave the rest alone, and a create request can omit
// a required field on purpose.
type CompanyFields struct {
	Name    ldvalue.OptionalString
	Address ldvalue.OptionalString
	City    ldvalue.OptionalString
	Country ldvalue.OptionalString
}

// NewCompanyFields returns a CompanyFields with all properties defined.
func NewCompanyFields(name, address, city, country string) CompanyFields {
	return CompanyFields{
		Name:    ldvalue.NewOptionalString(name),
		Address: ldvalue.NewOptionalString(address),
		City:    ldvalue.NewOptionalString(city),
		Country: ldvalue.NewOptionalString(country),
	}
}

type namedField struct {
	key   string
	value ldvalue.OptionalString
}

func (f CompanyFields) properties() []namedField {
	return []namedField{
		{"name", f.Name},
		{"address", f.Address},
		{"city", f.City},
		{"country", f.Country},
	}
}

// AsValue returns the JSON request body.
func (f CompanyFields) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, p := range f.properties() {
		if p.value.IsDefined() {
			b = b.Set(p.key, ldvalue.String(p.value.StringValue()))
		}
	}
	return b.Build()
}

// Apply returns a copy of c with the defined fields of f replacing the current values.
func (c Company) Apply(f CompanyFields) Company {
	if f.Name.IsDefined() {
		c.Name = f.Name.StringValue()
	}
	if f.Address.IsDefined() {
		c.Address = f.Address.StringValue()
	}
	if f.City.IsDefined() {
		c.City = f.City.StringValue()
	}
	if f.Country.IsDefined() {
		c.Country = f.Country.StringValue()
	}
	return c
}

// AsValue returns the JSON representation of c.
func (c Company) AsValue() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("company_id", ldvalue.String(c.CompanyID)).
		Set("name", ldvalue.String(c.Name)).
		Set("address", ldvalue.String(c.Address)).
		Set("city", ldvalue.String(c.City)).
		Set("country", ldvalue.String(c.Country)).
		Build()
}
