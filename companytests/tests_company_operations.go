package companytests

import (
	"net/http"

	"github.com/desafio-qa/company-contract-tests/framework"
	"github.com/desafio-qa/company-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// unknownCompanyID is an identifier that the service never assigns.
const unknownCompanyID = "id_invalido"

var successResult = ldvalue.ObjectBuild().Set("success", ldvalue.Bool(true)).Build()

var (
	firstCompany = servicedef.NewCompanyFields(
		"Empresa de Teste", "123 Rua de Teste", "Cidade de Teste", "País de Teste")
	firstCompanyUpdate = servicedef.CompanyFields{
		Name:    ldvalue.NewOptionalString("Empresa Atualizada"),
		Address: ldvalue.NewOptionalString("456 Rua Atualizada"),
	}

	secondCompany = servicedef.NewCompanyFields(
		"Outra Empresa de Teste", "789 Outra Rua", "Outra Cidade", "Outro País")
	secondCompanyUpdate = servicedef.CompanyFields{
		Name: ldvalue.NewOptionalString("Outra Empresa Atualizada"),
	}

	companyWithoutName = servicedef.CompanyFields{
		Address: ldvalue.NewOptionalString("Rua sem Nome"),
		City:    ldvalue.NewOptionalString("Cidade"),
	}
	invalidUpdate = servicedef.CompanyFields{
		Name: ldvalue.NewOptionalString("Atualização Inválida"),
	}
)

func DoCompanyOperationTests(t *T) {
	t.Run("first company", doFirstCompanyLifecycle)
	t.Run("second company", doSecondCompanyLifecycle)
}

func doFirstCompanyLifecycle(t *T) {
	company := newLifecycle("first company")
	s := newScenario(t)

	s.step("create company", func(t *T) {
		doCreateCompany(t, company, firstCompany)
	})

	s.step("get company", func(t *T) {
		doGetCompany(t, company)
	})

	s.step("get unknown company returns 404", func(t *T) {
		resp := t.GetCompany(unknownCompanyID)
		framework.ExpectStatus(t, resp, http.StatusNotFound)
	})

	s.step("update company", func(t *T) {
		doUpdateCompany(t, company, firstCompanyUpdate)
	})

	s.step("get updated company", func(t *T) {
		doGetCompany(t, company)
	})

	s.step("delete company", func(t *T) {
		id := company.requireID(t)
		resp := t.DeleteCompany(id)
		framework.ExpectStatus(t, resp, http.StatusNoContent)
		company.deleted = true
	})

	s.step("get deleted company returns 404", func(t *T) {
		id := company.requireID(t)
		resp := t.GetCompany(id)
		framework.ExpectStatus(t, resp, http.StatusNotFound)
	})

	company.cleanUp(t)
}

func doSecondCompanyLifecycle(t *T) {
	company := newLifecycle("second company")
	s := newScenario(t)

	s.step("create company", func(t *T) {
		doCreateCompany(t, company, secondCompany)
	})

	s.step("list all companies", func(t *T) {
		resp := t.ListCompanies()
		framework.ExpectStatus(t, resp, http.StatusOK)
		framework.ExpectJSONSchema(t, resp, companyListSchema)
	})

	s.step("search companies by name", func(t *T) {
		company.requireID(t)
		name := company.expected().Name
		resp := t.SearchCompanies(name)
		framework.ExpectStatus(t, resp, http.StatusOK)
		framework.ExpectJSONSchema(t, resp, companyListSchema)
		framework.ExpectJSONLike(t, resp, ldvalue.ArrayOf(
			ldvalue.ObjectBuild().Set("name", ldvalue.String(name)).Build(),
		))
	})

	s.step("update company", func(t *T) {
		doUpdateCompany(t, company, secondCompanyUpdate)
	})

	s.step("get updated company", func(t *T) {
		doGetCompany(t, company)
	})

	s.step("update unknown company returns 404", func(t *T) {
		resp := t.UpdateCompany(unknownCompanyID, invalidUpdate)
		framework.ExpectStatus(t, resp, http.StatusNotFound)
	})

	s.step("create company without name returns 400", func(t *T) {
		resp := t.CreateCompany(companyWithoutName)
		if resp.StatusCode == http.StatusCreated {
			// Don't leave behind a company that should never have existed.
			stray := newLifecycle("company without name")
			if id := resp.JSON.GetByKey("company_id"); id.IsString() {
				stray.company.CompanyID = id.StringValue()
				stray.cleanUp(t)
			}
		}
		framework.ExpectStatus(t, resp, http.StatusBadRequest)
	})

	s.step("company details have expected structure", func(t *T) {
		id := company.requireID(t)
		resp := t.GetCompany(id)
		framework.ExpectStatus(t, resp, http.StatusOK)
		framework.ExpectJSONSchema(t, resp, companySchema)
	})

	company.cleanUp(t)
}

func doCreateCompany(t *T, company *lifecycle, fields servicedef.CompanyFields) {
	resp := t.CreateCompany(fields)
	framework.ExpectStatus(t, resp, http.StatusCreated)
	framework.ExpectJSONLike(t, resp, successResult)
	framework.ExpectJSONSchema(t, resp, createdCompanySchema)
	company.bind(t, resp, fields)
}

// doGetCompany checks that a read returns every field as last written, including fields that
// a partial update did not mention.
func doGetCompany(t *T, company *lifecycle) {
	id := company.requireID(t)
	resp := t.GetCompany(id)
	framework.ExpectStatus(t, resp, http.StatusOK)
	framework.ExpectJSONLike(t, resp, company.expected().AsValue())
}

func doUpdateCompany(t *T, company *lifecycle, fields servicedef.CompanyFields) {
	id := company.requireID(t)
	resp := t.UpdateCompany(id, fields)
	framework.ExpectStatus(t, resp, http.StatusOK)
	framework.ExpectJSONLike(t, resp, successResult)
	company.applyUpdate(fields)
}
