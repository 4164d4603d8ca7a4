// Package mamba is the library entry point for the compiler: it wires
// internal/lexer, internal/parser, and internal/irgen together behind a
// single Compile call, the way the teacher's api.Server wired vm/parser/
// loader behind its HTTP handlers rather than exposing each stage
// separately (api/server.go).
package mamba

import (
	"github.com/sangwon090/mamba/internal/config"
	"github.com/sangwon090/mamba/internal/irgen"
	"github.com/sangwon090/mamba/internal/lexer"
	"github.com/sangwon090/mamba/internal/parser"
)

// Compile runs lex -> parse -> generate over src and returns the emitted
// LLVM textual IR. filename is only used to annotate lexer/parser error
// positions; cfg may be nil, in which case config.DefaultConfig() applies.
func Compile(src, filename string, cfg *config.Config) (string, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	l := lexer.New(src, filename)
	tokens := l.Tokenize()
	if l.Errors().HasErrors() {
		return "", l.Errors()
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}

	return irgen.Generate(prog, irgen.Options{
		TargetTriple: cfg.Codegen.TargetTriple,
		EmitPrelude:  cfg.Codegen.EmitPrelude,
	})
}
