package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/desafio-qa/company-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const (
	defaultServiceURL     = "https://api-desafio-qa.onrender.com/api"
	serviceURLEnvVar      = "COMPANY_API_URL"
	defaultStartupTimeout = time.Second * 90
)

type commandParams struct {
	serviceURL     string
	callTimeout    time.Duration
	startupTimeout time.Duration
	filters        framework.RegexFilters
	reportFile     string
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string) bool {
	urlDefault := defaultServiceURL
	if u := os.Getenv(serviceURLEnvVar); u != "" {
		urlDefault = u
	}

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.serviceURL, "url", urlDefault, "base URL of the Company API (or $"+serviceURLEnvVar+")")
	fs.DurationVar(&c.callTimeout, "timeout", framework.DefaultCallTimeout, "time limit for each request")
	fs.DurationVar(&c.startupTimeout, "startup-timeout", defaultStartupTimeout,
		"how long to wait for the service to respond before running tests (0 to not wait)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.reportFile, "report", "", "write a JSON report of the run to this file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	if c.callTimeout <= 0 {
		fmt.Fprintln(os.Stderr, "-timeout must be positive")
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand returns a command line that runs only the scenarios containing the failed
// tests. Steps in a scenario depend on each other, so a failed step can't be re-run alone.
func rerunCommand(program string, params commandParams, results framework.Results) string {
	var cmd commandBuilder
	cmd.add(program, "-url", params.serviceURL)
	if params.callTimeout != framework.DefaultCallTimeout {
		cmd.add("-timeout", params.callTimeout.String())
	}
	seen := make(map[string]bool)
	for _, f := range results.Failures {
		scenario := f.TestID.Parent()
		if len(scenario.Path) == 0 {
			scenario = f.TestID
		}
		pattern := rerunPattern(scenario)
		if !seen[pattern] {
			seen[pattern] = true
			cmd.add("-run", pattern)
		}
	}
	return cmd.String()
}

// rerunPattern returns a regex that matches a test, every test that contains it, and every test
// it contains, so that a -run filter with it lets the whole subtree run. For a/b it is
// ^a(/b(/.*)?)?$.
func rerunPattern(id framework.TestID) string {
	var b strings.Builder
	b.WriteString("^")
	for i, p := range id.Path {
		if i > 0 {
			b.WriteString("(/")
		}
		b.WriteString(regexp.QuoteMeta(p))
	}
	b.WriteString("(/.*)?")
	for i := 1; i < len(id.Path); i++ {
		b.WriteString(")?")
	}
	b.WriteString("$")
	return b.String()
}
