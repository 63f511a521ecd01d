package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desafio-qa/company-contract-tests/companytests"
	"github.com/desafio-qa/company-contract-tests/framework"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		zapLogger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create logger: %s\n", err)
			return 1
		}
		defer func() { _ = zapLogger.Sync() }()
		mainDebugLogger = framework.ZapLogger(zapLogger)
	}

	harness, err := framework.NewTestHarness(
		params.serviceURL,
		params.callTimeout,
		params.startupTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		return 1
	}
	if params.reportFile != "" {
		harness.AddReporter(framework.NewJSONFileReporter(params.reportFile))
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := companytests.RunTestSuite(harness, params.filters.AsFilter, testLogger)

	fmt.Println()
	printResults(os.Stdout, results)
	if err := harness.EndReporters(results); err != nil {
		fmt.Fprintf(os.Stderr, "Reporter error: %s\n", err)
	}
	if !results.OK() {
		fmt.Println()
		fmt.Println("To re-run the failed scenarios:")
		fmt.Printf("  %s\n", rerunCommand(filepath.Base(args[0]), params, results))
		return 1
	}
	return 0
}
