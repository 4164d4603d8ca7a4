// Command mamba is a minimal compiler driver, in the teacher's flag-based
// style (main.go): it reads a source file (or stdin), runs Compile, and
// writes the resulting LLVM IR to stdout or -o. It does not shell out to
// llc/ld; linking is left to the caller.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sangwon090/mamba"
	"github.com/sangwon090/mamba/internal/config"
	"github.com/sangwon090/mamba/internal/errs"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Show version information")
		showHelp     = flag.Bool("help", false, "Show help information")
		outFile      = flag.String("o", "", "Write output to this file instead of stdout")
		targetTriple = flag.String("target", "", "Override the target triple (default: config / none)")
		noPrelude    = flag.Bool("no-prelude", false, "Suppress the printf/malloc/free extern declarations")
		configPath   = flag.String("config", "", "Path to a config file (default: platform config dir)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("mamba %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *targetTriple != "" {
		cfg.Codegen.TargetTriple = *targetTriple
	}
	if *noPrelude {
		cfg.Codegen.EmitPrelude = false
	}

	src, filename, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}

	ir, err := mamba.Compile(src, filename, cfg)
	if err != nil {
		printCompileError(err)
		os.Exit(1)
	}

	if err := writeOutput(*outFile, ir); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// readSource returns the source text and a filename label for error
// positions. An empty arg reads from stdin, labeled "<stdin>".
func readSource(arg string) (src, filename string, err error) {
	if arg == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(b), "<stdin>", nil
	}

	b, err := os.ReadFile(arg) // #nosec G304 -- user-supplied source path, driver-only
	if err != nil {
		return "", "", err
	}
	return string(b), arg, nil
}

func writeOutput(path, ir string) error {
	if path == "" {
		_, err := fmt.Print(ir)
		return err
	}
	return os.WriteFile(path, []byte(ir), 0o644) // #nosec G306 -- generated IR text, not sensitive
}

func printCompileError(err error) {
	if list, ok := err.(*errs.List); ok {
		fmt.Fprint(os.Stderr, list.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

func printHelp() {
	fmt.Print(`mamba - compiles indentation-structured source into LLVM textual IR

Usage: mamba [options] <source-file>
       mamba [options] < source-file

Options:
  -help              Show this help message
  -version           Show version information
  -o FILE            Write output to FILE instead of stdout
  -target TRIPLE     Override the target triple emitted at the top of the module
  -no-prelude        Suppress the printf/malloc/free extern declarations
  -config FILE       Load settings from FILE instead of the platform config dir
`)
}
