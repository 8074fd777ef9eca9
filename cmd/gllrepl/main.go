/*
Command gllrepl is an interactive sandbox for the GLL runtime: it reads one
arithmetic expression per line, parses it with the hand-compiled grammar in
grammar.go, and prints either the matched span and a tree view of the
resulting parse forest, or a diagnostic naming the farthest position reached
and what was expected there.

Grounded on gorgo's terex/terexlang/trepl REPL: a chzyer/readline prompt
loop, pterm for styled output, and a flag-configured trace level wired
through schuko/tracing's gologadapter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/forest"
	"github.com/npillmayer/gll/input"
	"github.com/npillmayer/gll/runtime"
)

func tracer() tracing.Trace {
	return tracing.Select("gll.gllrepl")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	steps := flag.Bool("steps", false, "Trace every dispatched step")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	pterm.Info.Println("Welcome to gllrepl — enter an arithmetic expression")
	tracer().Infof("Grammar: Expr -> Expr ('+'|'-') Term | Term ; Term -> Term ('*'|'/') Factor | Factor")

	repl, err := readline.New("gll> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	r := &session{repl: repl, traceSteps: *steps}
	tracer().Infof("Quit with <ctrl>D")
	r.loop()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

type session struct {
	repl       *readline.Instance
	traceSteps bool
}

func (s *session) loop() {
	for {
		line, err := s.repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		if line == "" {
			continue
		}
		s.evalLine(line)
	}
	pterm.Println("Good bye!")
}

func (s *session) evalLine(line string) {
	src := input.NewSource(line)
	f := forest.New()

	var opts []runtime.Option
	if s.traceSteps {
		opts = append(opts, runtime.TraceSteps(true))
	}
	result := runtime.Parse(src, LExpr, KExpr, f, opts...)

	if result.Failed {
		pterm.Error.Printfln("no parse: stuck at position %d, expected %s",
			result.FarthestPosition, describe(result.Expected))
		return
	}
	pterm.Info.Printfln("matched %s", result.Root.Range)
	root := buildTree(f, result.Root, src)
	pterm.DefaultTree.WithRoot(root).Render()
}

func describe(pats []gll.Pattern) string {
	if len(pats) == 0 {
		return "(nothing)"
	}
	s := ""
	for i, p := range pats {
		if i > 0 {
			s += " or "
		}
		s += fmt.Sprintf("%q", p.String())
	}
	return s
}

// buildTree walks the forest recursively, rendering every witnessed split
// and choice; a node without splits is a leaf and prints its matched text.
func buildTree(f *forest.Forest, node gll.ForestNode, src *input.Source) pterm.TreeNode {
	label := fmt.Sprintf("%s", node)
	children := []pterm.TreeNode{}

	for _, sp := range f.AllSplits(node) {
		children = append(children,
			pterm.TreeNode{Text: "left", Children: []pterm.TreeNode{buildTree(f, sp.Left, src)}},
			pterm.TreeNode{Text: "right", Children: []pterm.TreeNode{buildTree(f, sp.Right, src)}},
		)
	}
	if cs := f.Choices(node); len(cs) > 0 {
		label = fmt.Sprintf("%s (alt %v)", label, cs)
	}
	if len(children) == 0 {
		label = fmt.Sprintf("%s %q", label, src.Text(node.Range))
	}
	return pterm.TreeNode{Text: label, Children: children}
}
