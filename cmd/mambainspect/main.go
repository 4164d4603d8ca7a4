// Command mambainspect is a read-only tview/tcell TUI that runs the same
// lex -> parse -> generate pipeline as mamba and renders three panels —
// token stream, AST, generated IR — refreshed on Ctrl-R. Modeled on the
// teacher's debugger/tui.go panel-and-keybinding structure, with the
// debugger's mutate-a-running-VM commands dropped entirely: there is
// nothing here to step or breakpoint, only source to inspect.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sangwon090/mamba/internal/ast"
	"github.com/sangwon090/mamba/internal/config"
	"github.com/sangwon090/mamba/internal/errs"
	"github.com/sangwon090/mamba/internal/irgen"
	"github.com/sangwon090/mamba/internal/lexer"
	"github.com/sangwon090/mamba/internal/mlog"
	"github.com/sangwon090/mamba/internal/parser"
)

func main() {
	mlog.SetPrefix("mambainspect: ")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mambainspect <source-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		mlog.Fatalf("loading config: %v", err)
	}

	ui := newInspector(path, cfg)
	if err := ui.Run(); err != nil {
		mlog.Fatalf("running TUI: %v", err)
	}
}

// inspector is the TUI state, grounded on debugger.TUI's field layout:
// an App/Pages pair, a set of bordered TextView panels laid out in a
// Flex tree, and a key-capture func wired in setupKeyBindings.
type inspector struct {
	App   *tview.Application
	Pages *tview.Pages

	TokenView  *tview.TextView
	ASTView    *tview.TextView
	IRView     *tview.TextView
	StatusView *tview.TextView
	MainLayout *tview.Flex

	Path string
	Cfg  *config.Config
}

func newInspector(path string, cfg *config.Config) *inspector {
	in := &inspector{
		App:  tview.NewApplication(),
		Path: path,
		Cfg:  cfg,
	}
	in.initializeViews()
	in.buildLayout()
	in.setupKeyBindings()
	return in
}

func (in *inspector) initializeViews() {
	in.TokenView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	in.TokenView.SetBorder(true).SetTitle(" Tokens ")

	in.ASTView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	in.ASTView.SetBorder(true).SetTitle(" AST ")

	in.IRView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	in.IRView.SetBorder(true).SetTitle(" LLVM IR ")

	in.StatusView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	in.StatusView.SetBorder(true).SetTitle(" Status ")
}

func (in *inspector) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(in.TokenView, 0, 1, false).
		AddItem(in.ASTView, 0, 1, false).
		AddItem(in.IRView, 0, 1, false)

	in.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 5, false).
		AddItem(in.StatusView, 3, 0, false)

	in.Pages = tview.NewPages().
		AddPage("main", in.MainLayout, true, true)
}

func (in *inspector) setupKeyBindings() {
	in.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlR:
			in.refresh()
			return nil
		case tcell.KeyCtrlC:
			in.App.Stop()
			return nil
		}
		return event
	})
}

// refresh re-reads the source file from disk and re-runs lex/parse/
// generate, so edits made in another editor show up without restarting.
func (in *inspector) refresh() {
	src, err := os.ReadFile(in.Path) // #nosec G304 -- path given on the command line by the operator
	if err != nil {
		in.setStatus(fmt.Sprintf("[red]error reading %s: %v", in.Path, err))
		return
	}

	l := lexer.New(string(src), in.Path)
	tokens := l.Tokenize()
	in.TokenView.SetText(dumpTokens(tokens))

	if l.Errors().HasErrors() {
		in.ASTView.SetText("")
		in.IRView.SetText("")
		in.setStatus(fmt.Sprintf("[red]lex error:\n%s", l.Errors().Error()))
		return
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		in.ASTView.SetText("")
		in.IRView.SetText("")
		in.setStatus(fmt.Sprintf("[red]parse error: %v", err))
		return
	}
	in.ASTView.SetText(ast.Dump(prog))

	ir, err := irgen.Generate(prog, irgen.Options{
		TargetTriple: in.Cfg.Codegen.TargetTriple,
		EmitPrelude:  in.Cfg.Codegen.EmitPrelude,
	})
	if err != nil {
		in.IRView.SetText("")
		in.setStatus(formatGenError(err))
		return
	}
	in.IRView.SetText(ir)
	in.setStatus(fmt.Sprintf("[green]%s — %d token(s), ok. Ctrl-R to refresh, Ctrl-C to quit.", in.Path, len(tokens)))
}

func (in *inspector) setStatus(text string) {
	in.StatusView.SetText(text)
}

func formatGenError(err error) string {
	if e, ok := err.(*errs.Error); ok {
		return fmt.Sprintf("[red]codegen error: %s", e.Error())
	}
	return fmt.Sprintf("[red]codegen error: %v", err)
}

func dumpTokens(tokens []lexer.Token) string {
	var out string
	for _, t := range tokens {
		out += t.String() + "\n"
	}
	return out
}

// Run performs the initial lex/parse/generate pass and starts the
// application event loop.
func (in *inspector) Run() error {
	in.refresh()
	return in.App.SetRoot(in.Pages, true).SetFocus(in.MainLayout).Run()
}
