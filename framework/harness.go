package framework

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultCallTimeout is how long a single request to the service may take before the step
// that made it fails.
const DefaultCallTimeout = time.Second * 30

const startupPollInterval = time.Millisecond * 100

// TestHarness issues requests to the service under test and hands a record of each one to
// the reporters that have been added.
type TestHarness struct {
	serviceBaseURL string
	httpClient     *http.Client
	logger         Logger
	reporters      []Reporter
	lock           sync.Mutex
}

// APIRequest describes one call to the service. Path is relative to the base URL. If Body is
// not null, it is sent as JSON.
type APIRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   ldvalue.Value
}

// APIResponse is what the service returned for an APIRequest. JSON is the parsed body, or a
// null value if the body was empty or was not valid JSON.
type APIResponse struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	JSON       ldvalue.Value
	Duration   time.Duration
}

func (r APIResponse) String() string {
	body := string(r.Body)
	if body == "" {
		body = "<empty>"
	}
	return fmt.Sprintf("%s %s returned HTTP %d: %s", r.Method, r.URL, r.StatusCode, body)
}

// IsJSON returns true if the response had a non-empty, well-formed JSON body.
func (r APIResponse) IsJSON() bool {
	return len(r.Body) > 0 && !r.JSON.IsNull()
}

// NewTestHarness creates a TestHarness for the service at serviceBaseURL.
//
// If startupTimeout is nonzero, it also waits until the service responds to a request for its
// base URL with any HTTP status, since hosted services may take a while to wake up. Progress
// is written to startupOutput.
func NewTestHarness(
	serviceBaseURL string,
	callTimeout time.Duration,
	startupTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if startupOutput == nil {
		startupOutput = ioutil.Discard
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}

	u, err := url.Parse(serviceBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL %q: %w", serviceBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("service URL %q must be an absolute http or https URL", serviceBaseURL)
	}

	h := &TestHarness{
		serviceBaseURL: strings.TrimSuffix(serviceBaseURL, "/"),
		httpClient:     &http.Client{Timeout: callTimeout},
		logger:         debugLogger,
	}

	if startupTimeout > 0 {
		if err := h.awaitService(startupTimeout, startupOutput); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *TestHarness) awaitService(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", h.serviceBaseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := h.httpClient.Get(h.serviceBaseURL)
		if err == nil {
			if resp.Body != nil {
				_, _ = io.Copy(ioutil.Discard, resp.Body)
				_ = resp.Body.Close()
			}
			fmt.Fprintln(output)
			h.logger.Printf("Service responded with HTTP %d", resp.StatusCode)
			return nil
		}
		h.logger.Printf("Service is not responding yet: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(startupPollInterval)
	}
}

// BaseURL returns the service base URL without a trailing slash.
func (h *TestHarness) BaseURL() string {
	return h.serviceBaseURL
}

// CallTimeout returns the time limit for each request.
func (h *TestHarness) CallTimeout() time.Duration {
	return h.httpClient.Timeout
}

// URL returns the absolute URL for a path and optional query relative to the base URL.
func (h *TestHarness) URL(path string, query url.Values) string {
	u := h.serviceBaseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Call sends a request to the service and waits for the response. The returned error is
// non-nil only if there was no HTTP response at all, for instance because of a timeout; an
// error status is a normal response.
//
// The request and response are logged to logger, and are passed to every reporter along
// with the ID of the test that made the call.
func (h *TestHarness) Call(id TestID, logger Logger, req APIRequest) (APIResponse, error) {
	if logger == nil {
		logger = h.logger
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	resp := APIResponse{Method: method, URL: h.URL(req.Path, req.Query)}

	var requestBody string
	var bodyReader io.Reader
	if !req.Body.IsNull() {
		requestBody = req.Body.JSONString()
		bodyReader = bytes.NewBufferString(requestBody)
	}

	record := CallRecord{
		TestID:      id,
		Time:        time.Now(),
		Method:      method,
		URL:         resp.URL,
		RequestBody: requestBody,
	}
	if requestBody == "" {
		logger.Printf("Request: %s %s", method, resp.URL)
	} else {
		logger.Printf("Request: %s %s %s", method, resp.URL, requestBody)
	}

	err := h.doCall(&resp, bodyReader)
	resp.Duration = time.Since(record.Time)
	record.Duration = resp.Duration
	if err != nil {
		logger.Printf("Request failed after %s: %s", resp.Duration, err)
		record.Error = err.Error()
		h.report(record)
		return resp, err
	}

	record.StatusCode = resp.StatusCode
	record.ResponseBody = string(resp.Body)
	logger.Printf("Response: HTTP %d in %s: %s", resp.StatusCode, resp.Duration, string(resp.Body))
	h.report(record)
	return resp, nil
}

func (h *TestHarness) doCall(resp *APIResponse, body io.Reader) error {
	httpReq, err := http.NewRequest(resp.Method, resp.URL, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := h.httpClient.Do(httpReq)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("no response from %s %s within %s: %w", resp.Method, resp.URL, h.httpClient.Timeout, err)
		}
		return err
	}
	defer func() { _ = httpResp.Body.Close() }()

	resp.StatusCode = httpResp.StatusCode
	resp.Header = httpResp.Header
	data, err := ioutil.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body from %s %s: %w", resp.Method, resp.URL, err)
	}
	resp.Body = data
	resp.JSON = parseJSON(data)
	return nil
}

func parseJSON(data []byte) ldvalue.Value {
	if len(bytes.TrimSpace(data)) == 0 {
		return ldvalue.Null()
	}
	return ldvalue.Parse(data)
}

// AddReporter registers a reporter that will see every call made from now on. This should be
// done before the test run starts.
func (h *TestHarness) AddReporter(r Reporter) {
	h.lock.Lock()
	h.reporters = append(h.reporters, r)
	h.lock.Unlock()
}

func (h *TestHarness) report(record CallRecord) {
	h.lock.Lock()
	reporters := append([]Reporter(nil), h.reporters...)
	h.lock.Unlock()
	for _, r := range reporters {
		r.AfterCall(record)
	}
}

// EndReporters tells every reporter that the run is over. All reporters are ended even if
// some of them fail; their errors are combined.
func (h *TestHarness) EndReporters(results Results) error {
	h.lock.Lock()
	reporters := h.reporters
	h.reporters = nil
	h.lock.Unlock()

	var err error
	for _, r := range reporters {
		err = multierr.Append(err, r.End(results))
	}
	return err
}
