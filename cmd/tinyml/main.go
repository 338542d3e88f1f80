package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aripiprazole/tinyml/internal/analyzer"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/lowering"
	"github.com/aripiprazole/tinyml/internal/pipeline"
	"github.com/aripiprazole/tinyml/internal/prettyprinter"
	"github.com/aripiprazole/tinyml/internal/utils"
	"github.com/fsnotify/fsnotify"
)

const usage = `Usage: tinyml <command> [-v] <path>

Commands:
  check <path>...  Lower and type check programs, then print them with their types.
                   A directory stands for the source files directly inside it.
  watch <file>     Check again every time the file changes
  help             Show this message

The nearest tinyml.yaml above the file, if any, configures the run.
`

var verbose bool

func logf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// loadProject finds the configuration governing path.
func loadProject(path string) (*config.Project, error) {
	found, err := config.FindConfig(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if found == "" {
		logf("no %s found, using defaults", config.ProjectFileName)
		return config.Default(), nil
	}
	logf("using %s", found)
	return config.LoadConfig(found)
}

// runPipeline checks one file and reports whether it is free of diagnostics.
func runPipeline(path string) bool {
	cfg, err := loadProject(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return false
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		return false
	}

	processingPipeline := pipeline.New(
		&pipeline.DecodeProcessor{},
		&lowering.LoweringProcessor{},
		&analyzer.InferenceProcessor{},
	)
	initialContext := pipeline.NewPipelineContext(path, source, cfg)
	logf("checking %s (unit %s)", path, initialContext.Unit)
	finalContext := processingPipeline.Run(initialContext)

	if finalContext.Program != nil {
		fmt.Print(prettyprinter.PrintProgram(finalContext.Program))
	}

	errs := finalContext.Errors()
	if len(errs) == 0 {
		logf("%s: ok", path)
		return true
	}
	printer := diagnostics.NewPrinter(os.Stderr, diagnostics.UseColor(cfg.Color, os.Stderr))
	if err := printer.PrintAll(errs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing diagnostics: %s\n", err)
	}
	logf("%s: %d diagnostics", path, len(errs))
	return false
}

func handleHelp(args []string) bool {
	if len(args) == 0 || args[0] == "help" || args[0] == "-help" || args[0] == "--help" {
		fmt.Print(usage)
		return true
	}
	return false
}

func handleCheck(args []string) bool {
	if args[0] != "check" {
		return false
	}
	operands := operandArgs(args)
	if len(operands) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: tinyml check <path>...\n")
		os.Exit(1)
	}
	files, err := utils.SourceFiles(operands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No source files found")
		return true
	}

	failed := false
	for _, file := range files {
		if len(files) > 1 {
			fmt.Printf("=== %s ===\n", utils.ExtractModuleName(file))
		}
		if !runPipeline(file) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return true
}

// handleWatch checks the file, then checks it again whenever it is written or
// recreated. Events for other files in its directory are ignored.
func handleWatch(args []string) bool {
	if args[0] != "watch" {
		return false
	}
	path, err := filepath.Abs(fileArg(args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %s\n", err)
		os.Exit(1)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %s\n", path, err)
		os.Exit(1)
	}

	runPipeline(path)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return true
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logf("%s changed", path)
			fmt.Println("---")
			runPipeline(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return true
			}
			fmt.Fprintf(os.Stderr, "Watch error: %s\n", err)
		}
	}
}

// operandArgs returns the arguments of a command that are not flags.
func operandArgs(args []string) []string {
	var operands []string
	for _, arg := range args[1:] {
		if !strings.HasPrefix(arg, "-") {
			operands = append(operands, arg)
		}
	}
	return operands
}

// fileArg returns the single file operand of a command, exiting on misuse.
func fileArg(args []string) string {
	files := operandArgs(args)
	if len(files) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: tinyml %s <file>\n", args[0])
		os.Exit(1)
	}
	if !utils.IsSourceFile(files[0]) {
		fmt.Fprintf(os.Stderr, "Warning: %s does not have a %s extension\n", files[0], config.SourceFileExt)
	}
	return files[0]
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("TINYML_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	var args []string
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		args = append(args, arg)
	}

	if handleHelp(args) {
		return
	}
	if handleCheck(args) {
		return
	}
	if handleWatch(args) {
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", args[0], usage)
	os.Exit(1)
}
