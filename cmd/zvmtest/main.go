// Command zvmtest is a regression harness: it runs every module file in a
// directory and records whether each one completed without a fatal error,
// the way the teacher's gametest command walks a directory of story files
// and records pass/fail per game.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zmodule"
	"github.com/zata-lang/zvm/zvm"
)

// TestResult captures the outcome of running a single module.
type TestResult struct {
	Filename     string   `json:"filename"`
	Success      bool     `json:"success"`
	PanicMessage string   `json:"panic_message,omitempty"`
	StackTrace   string   `json:"stack_trace,omitempty"`
	Output       []string `json:"output,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

func main() {
	modulesDir := flag.String("modules", "modules", "Directory containing compiled .zvmb module files")
	outputDir := flag.String("output", "testdata", "Directory to write results to")
	singleModule := flag.String("module", "", "Test a single module file instead of the whole directory")
	timeout := flag.Duration("timeout", 5*time.Second, "Per-module execution timeout")
	flag.Parse()

	if *singleModule != "" {
		result := runModuleTest(*singleModule, *timeout)
		printResult(result)
		return
	}

	runAllModules(*modulesDir, *outputDir, *timeout)
}

func runAllModules(modulesDir, outputDir string, timeout time.Duration) {
	if _, err := os.Stat(modulesDir); os.IsNotExist(err) {
		fmt.Printf("modules directory not found: %s\n", modulesDir)
		os.Exit(1)
	}

	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		fmt.Printf("failed to read modules directory: %v\n", err)
		os.Exit(1)
	}

	var modules []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".zvmb") {
			modules = append(modules, filepath.Join(modulesDir, entry.Name()))
		}
	}

	if len(modules) == 0 {
		fmt.Printf("no .zvmb files found in %s\n", modulesDir)
		os.Exit(1)
	}

	fmt.Printf("found %d modules to test\n", len(modules))

	var results []TestResult
	for i, path := range modules {
		result := runModuleTest(path, timeout)
		results = append(results, result)

		status := "PASS"
		if !result.Success {
			status = "FAIL"
		}
		fmt.Printf("[%d/%d] %s %s\n", i+1, len(modules), status, result.Filename)
		if !result.Success && result.ErrorMessage != "" {
			fmt.Printf("        error: %s\n", result.ErrorMessage)
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	resultsPath := filepath.Join(outputDir, "test_results.json")
	resultsJSON, _ := json.MarshalIndent(results, "", "  ")
	if err := os.WriteFile(resultsPath, resultsJSON, 0644); err != nil {
		fmt.Printf("failed to write results: %v\n", err)
	} else {
		fmt.Printf("\nresults written to %s\n", resultsPath)
	}

	passed, failed := 0, 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}
	fmt.Printf("\n=== SUMMARY ===\npassed: %d\nfailed: %d\ntotal: %d\n", passed, failed, len(results))
}

func printResult(result TestResult) {
	fmt.Printf("module: %s\n", result.Filename)
	fmt.Printf("success: %v\n", result.Success)
	if result.PanicMessage != "" {
		fmt.Printf("panic: %s\n", result.PanicMessage)
		fmt.Printf("stack: %s\n", result.StackTrace)
	}
	if result.ErrorMessage != "" {
		fmt.Printf("error: %s\n", result.ErrorMessage)
	}
	fmt.Printf("output:\n%s\n", strings.Join(result.Output, "\n"))
}

func runModuleTest(path string, timeout time.Duration) (result TestResult) {
	result.Filename = filepath.Base(path)

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.PanicMessage = fmt.Sprintf("%v", r)
			result.StackTrace = string(debug.Stack())
		}
	}()

	mod, err := zmodule.Load(path)
	if err != nil {
		result.Success = false
		result.ErrorMessage = err.Error()
		return
	}

	var out bytes.Buffer
	machine := zvm.New(zvm.WithStdout(&out))

	type runOutcome struct {
		zerr *zerror.Error
	}
	done := make(chan runOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				result.PanicMessage = fmt.Sprintf("panic in Run: %v", r)
				result.StackTrace = string(debug.Stack())
				done <- runOutcome{}
				return
			}
		}()
		_, zerr := machine.Run(mod)
		done <- runOutcome{zerr: zerr}
	}()

	select {
	case outcome := <-done:
		result.Output = strings.Split(out.String(), "\n")
		if result.PanicMessage != "" {
			result.Success = false
			return
		}
		if outcome.zerr != nil {
			result.Success = false
			result.ErrorMessage = outcome.zerr.Error()
			return
		}
		result.Success = true
		return
	case <-time.After(timeout):
		result.Success = false
		result.ErrorMessage = "timeout waiting for module to halt"
		result.Output = strings.Split(out.String(), "\n")
		return
	}
}
