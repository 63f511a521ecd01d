package companytests

import (
	"net/http"
	"net/url"

	"github.com/desafio-qa/company-contract-tests/framework"
	"github.com/desafio-qa/company-contract-tests/servicedef"
)

func companyPath(id string) string {
	return servicedef.CompanyBasePath + "/" + url.PathEscape(id)
}

// CreateCompany sends POST /company/new with the defined fields.
func (t *T) CreateCompany(fields servicedef.CompanyFields) framework.APIResponse {
	return t.Call(framework.APIRequest{
		Method: http.MethodPost,
		Path:   servicedef.CreateCompanyPath,
		Body:   fields.AsValue(),
	})
}

// GetCompany sends GET /company/{id}.
func (t *T) GetCompany(id string) framework.APIResponse {
	return t.Call(framework.APIRequest{Method: http.MethodGet, Path: companyPath(id)})
}

// UpdateCompany sends PUT /company/{id} with the defined fields.
func (t *T) UpdateCompany(id string, fields servicedef.CompanyFields) framework.APIResponse {
	return t.Call(framework.APIRequest{
		Method: http.MethodPut,
		Path:   companyPath(id),
		Body:   fields.AsValue(),
	})
}

// DeleteCompany sends DELETE /company/{id}.
func (t *T) DeleteCompany(id string) framework.APIResponse {
	return t.Call(framework.APIRequest{Method: http.MethodDelete, Path: companyPath(id)})
}

// ListCompanies sends GET /company.
func (t *T) ListCompanies() framework.APIResponse {
	return t.Call(framework.APIRequest{Method: http.MethodGet, Path: servicedef.CompanyBasePath})
}

// SearchCompanies sends GET /company/search with an exact name.
func (t *T) SearchCompanies(name string) framework.APIResponse {
	return t.Call(framework.APIRequest{
		Method: http.MethodGet,
		Path:   servicedef.SearchCompanyPath,
		Query:  url.Values{servicedef.SearchNameParam: []string{name}},
	})
}
