// Package mlog is a thin wrapper over the standard log package, giving
// cmd/mambainspect a single place to prefix and route diagnostic output
// (cmd/mamba writes its errors to stderr directly and does not use it). No structured logging library appears anywhere
// across the retrieved corpus — every teacher/example file that logs at
// all (api/server.go, service/debugger_service.go, gui/app.go) reaches for
// log.Printf directly — so this package stays a stdlib wrapper rather than
// introducing a dependency nothing else in the stack uses.
package mlog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "mamba: ", 0)

// SetPrefix changes the line prefix, e.g. "mambainspect: " for the TUI.
func SetPrefix(prefix string) {
	std.SetPrefix(prefix)
}

func Infof(format string, args ...any) {
	std.Printf("info: "+format, args...)
}

func Warnf(format string, args ...any) {
	std.Printf("warn: "+format, args...)
}

func Errorf(format string, args ...any) {
	std.Printf("error: "+format, args...)
}

// Fatalf logs and exits with status 1, mirroring log.Fatalf.
func Fatalf(format string, args ...any) {
	std.Printf("fatal: "+format, args...)
	os.Exit(1)
}
