package mockapi

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desafio-qa/company-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func doRequest(t *testing.T, method, u, body string) (int, []byte) {
	req, err := http.NewRequest(method, u, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func withMockAPI(t *testing.T, action func(s *Server, baseURL string)) {
	s := NewServer(zaptest.NewLogger(t))
	httphelpers.WithServer(s.Handler(), func(server *httptest.Server) {
		action(s, server.URL+BasePath)
	})
}

func TestCompanyLifecycle(t *testing.T) {
	withMockAPI(t, func(s *Server, baseURL string) {
		status, body := doRequest(t, "POST", baseURL+"/company/new",
			`{"name":"A","address":"1 Street","city":"C","country":"X"}`)
		require.Equal(t, http.StatusCreated, status)
		var created servicedef.CreateCompanyResult
		require.NoError(t, json.Unmarshal(body, &created))
		assert.True(t, created.Success)
		require.NotEmpty(t, created.CompanyID)
		companyURL := baseURL + "/company/" + created.CompanyID

		status, body = doRequest(t, "GET", companyURL, "")
		require.Equal(t, http.StatusOK, status)
		var c servicedef.Company
		require.NoError(t, json.Unmarshal(body, &c))
		assert.Equal(t, servicedef.Company{CompanyID: created.CompanyID, Name: "A", Address: "1 Street", City: "C", Country: "X"}, c)

		status, body = doRequest(t, "PUT", companyURL, `{"name":"B"}`)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"success":true}`, string(body))

		_, body = doRequest(t, "GET", companyURL, "")
		require.NoError(t, json.Unmarshal(body, &c))
		assert.Equal(t, "B", c.Name)
		assert.Equal(t, "1 Street", c.Address)

		status, body = doRequest(t, "DELETE", companyURL, "")
		assert.Equal(t, http.StatusNoContent, status)
		assert.Empty(t, body)
		assert.Equal(t, 0, s.Count())

		status, _ = doRequest(t, "GET", companyURL, "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCreateWithoutNameIsRejected(t *testing.T) {
	withMockAPI(t, func(s *Server, baseURL string) {
		status, body := doRequest(t, "POST", baseURL+"/company/new", `{"address":"Rua sem Nome","city":"Cidade"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(body), `"success":false`)
		assert.Equal(t, 0, s.Count())

		status, _ = doRequest(t, "POST", baseURL+"/company/new", `not json`)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestUnknownCompany(t *testing.T) {
	withMockAPI(t, func(s *Server, baseURL string) {
		u := baseURL + "/company/id_invalido"
		status, _ := doRequest(t, "GET", u, "")
		assert.Equal(t, http.StatusNotFound, status)
		status, _ = doRequest(t, "PUT", u, `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, status)
		status, _ = doRequest(t, "DELETE", u, "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestListAndSearch(t *testing.T) {
	withMockAPI(t, func(s *Server, baseURL string) {
		s.Put(servicedef.Company{CompanyID: "1", Name: "Outra Empresa de Teste"})
		s.Put(servicedef.Company{CompanyID: "2", Name: "Outra Empresa"})

		status, body := doRequest(t, "GET", baseURL+"/company", "")
		require.Equal(t, http.StatusOK, status)
		var all []servicedef.Company
		require.NoError(t, json.Unmarshal(body, &all))
		assert.Len(t, all, 2)

		q := url.Values{"name": []string{"Outra Empresa de Teste"}}
		status, body = doRequest(t, "GET", baseURL+"/company/search?"+q.Encode(), "")
		require.Equal(t, http.StatusOK, status)
		var found []servicedef.Company
		require.NoError(t, json.Unmarshal(body, &found))
		require.Len(t, found, 1)
		assert.Equal(t, "1", found[0].CompanyID)

		_, body = doRequest(t, "GET", baseURL+"/company/search?name=nobody", "")
		assert.JSONEq(t, `[]`, string(body))
	})
}
