package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desafio-qa/company-contract-tests/framework"

	"github.com/fatih/color"
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", color.RedString("FAILED"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", color.YellowString("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", color.YellowString("SKIPPED"), id, reason)
	}
}

func printResults(out io.Writer, results framework.Results) {
	passed, failed, skipped := results.Counts()
	if results.OK() {
		fmt.Fprintf(out, "%s (%d passed, %d skipped)\n", color.GreenString("All tests passed"), passed, skipped)
		return
	}
	fmt.Fprintf(out, "%s (%d passed, %d failed, %d skipped)\n", color.RedString("FAILED"), passed, failed, skipped)
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			fmt.Fprintf(out, "  %s\n", framework.TestFailure{ID: f.TestID, Err: errors.New(summarizeError(err))})
		}
	}
}

// summarizeError returns the one line of an error that best describes it. Assertion failures
// from testify span several lines, with the description on the line labeled "Error:".
func summarizeError(err error) string {
	first := ""
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Error:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Error:"))
		}
		if first == "" {
			first = line
		}
	}
	return first
}
