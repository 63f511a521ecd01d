// Package mockapi is an in-memory implementation of the Company API. It exists so that the
// contract tests can be run against a known-good service in this repository's own tests.
package mockapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/desafio-qa/company-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BasePath is where the API is mounted, matching the public service.
const BasePath = "/api"

// Server holds the companies and serves the API.
type Server struct {
	companies map[string]servicedef.Company
	order     []string
	logger    *zap.Logger
	lock      sync.Mutex
}

type companyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		companies: make(map[string]servicedef.Company),
		logger:    logger,
	}
}

// Handler returns the router for the API, including BasePath.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route(BasePath+servicedef.CompanyBasePath, func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/new", s.create)
		r.Get("/search", s.search)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})
	return r
}

// Count returns the number of companies that currently exist.
func (s *Server) Count() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.companies)
}

// Put adds or replaces a company directly.
func (s *Server) Put(c servicedef.Company) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.companies[c.CompanyID]; !ok {
		s.order = append(s.order, c.CompanyID)
	}
	s.companies[c.CompanyID] = c
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("API request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// create handles POST /company/new.
func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeStatus(w, http.StatusBadRequest, "Company name is required")
		return
	}

	c := req.applyTo(servicedef.Company{CompanyID: uuid.New().String()})
	s.Put(c)
	writeJSON(w, http.StatusCreated, servicedef.CreateCompanyResult{Success: true, CompanyID: c.CompanyID})
}

// get handles GET /company/{id}.
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	c, ok := s.find(chi.URLParam(r, "id"))
	if !ok {
		writeStatus(w, http.StatusNotFound, "Company not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// update handles PUT /company/{id}. Properties missing from the body keep their values.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.lock.Lock()
	c, ok := s.companies[id]
	if ok {
		s.companies[id] = req.applyTo(c)
	}
	s.lock.Unlock()

	if !ok {
		writeStatus(w, http.StatusNotFound, "Company not found")
		return
	}
	writeJSON(w, http.StatusOK, servicedef.StatusResult{Success: true})
}

// delete handles DELETE /company/{id}.
func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.lock.Lock()
	_, ok := s.companies[id]
	if ok {
		delete(s.companies, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.lock.Unlock()

	if !ok {
		writeStatus(w, http.StatusNotFound, "Company not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// list handles GET /company.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.matching(func(servicedef.Company) bool { return true }))
}

// search handles GET /company/search?name=.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get(servicedef.SearchNameParam)
	writeJSON(w, http.StatusOK, s.matching(func(c servicedef.Company) bool { return c.Name == name }))
}

func (s *Server) find(id string) (servicedef.Company, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	c, ok := s.companies[id]
	return c, ok
}

func (s *Server) matching(pred func(servicedef.Company) bool) []servicedef.Company {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]servicedef.Company, 0, len(s.order))
	for _, id := range s.order {
		if c := s.companies[id]; pred(c) {
			ret = append(ret, c)
		}
	}
	return ret
}

func (req companyRequest) applyTo(c servicedef.Company) servicedef.Company {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.Country != nil {
		c.Country = *req.Country
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, servicedef.StatusResult{Success: false, Message: message})
}
