/*
This file compiles a small arithmetic expression grammar directly into
CodeLabel/CodeStep values, by hand, the way a GLL grammar generator would:

  Expr   -> Expr '+' Term | Expr '-' Term | Term
  Term   -> Term '*' Factor | Term '/' Factor | Factor
  Factor -> number | '(' Expr ')'

It is deliberately left-recursive in Expr and Term, the textbook case GLL
handles without grammar transformation: the entry label for a nonterminal
spawns one thread per alternative, including alternatives that call straight
back into the same nonterminal at the same position. Termination falls out
of Threads' own continuation dedup (see runtime/threads.go) rather than
anything grammar-specific.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/input"
	"github.com/npillmayer/gll/runtime"
)

// Kind identifies which nonterminal a ForestNode stands for.
type Kind int

const (
	KExpr Kind = iota
	KTerm
	KFactor
)

var kindNames = map[Kind]string{KExpr: "Expr", KTerm: "Term", KFactor: "Factor"}

func (k Kind) String() string { return kindNames[k] }

func (k Kind) Compare(other gll.NodeKind) int {
	o := other.(Kind)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// Label is a position in the compiled grammar: either the entry point of a
// nonterminal (LExpr, LTerm, LFactor) or a continuation within one of its
// alternatives.
type Label int

const (
	LExpr Label = iota
	lExprPlus1
	lExprPlus2
	lExprPlus3
	lExprMinus1
	lExprMinus2
	lExprMinus3
	lExprTerm1
	lExprTerm2

	LTerm
	lTermMul1
	lTermMul2
	lTermMul3
	lTermDiv1
	lTermDiv2
	lTermDiv3
	lTermFactor1
	lTermFactor2

	LFactor
	lFactorNum
	lFactorParen1
	lFactorParen2
)

var labelNames = map[Label]string{
	LExpr: "Expr", lExprPlus1: "Expr.+1", lExprPlus2: "Expr.+2", lExprPlus3: "Expr.+3",
	lExprMinus1: "Expr.-1", lExprMinus2: "Expr.-2", lExprMinus3: "Expr.-3",
	lExprTerm1: "Expr.T1", lExprTerm2: "Expr.T2",
	LTerm: "Term", lTermMul1: "Term.*1", lTermMul2: "Term.*2", lTermMul3: "Term.*3",
	lTermDiv1: "Term./1", lTermDiv2: "Term./2", lTermDiv3: "Term./3",
	lTermFactor1: "Term.F1", lTermFactor2: "Term.F2",
	LFactor: "Factor", lFactorNum: "Factor.num", lFactorParen1: "Factor.(1", lFactorParen2: "Factor.(2",
}

func (l Label) String() string { return labelNames[l] }

func (l Label) Compare(other runtime.CodeLabel) int {
	o := other.(Label)
	switch {
	case l < o:
		return -1
	case l > o:
		return 1
	default:
		return 0
	}
}

// EnclosingFn reports which nonterminal's entry label a continuation
// belongs to, used by Runtime.Ret to identify the completed call.
func (l Label) EnclosingFn() runtime.CodeLabel {
	switch {
	case l <= lExprTerm2:
		return LExpr
	case l <= lTermFactor2:
		return LTerm
	default:
		return LFactor
	}
}

var (
	opPlus   = input.Literal("+")
	opMinus  = input.Literal("-")
	opMul    = input.Literal("*")
	opDiv    = input.Literal("/")
	lParen   = input.Literal("(")
	rParen   = input.Literal(")")
	numberPat = input.MustRegexp(`[0-9]+`)
)

// Step implements runtime.CodeStep for every label in the grammar.
func (l Label) Step(rt *runtime.Runtime) {
	switch l {

	case LExpr:
		rt.Spawn(lExprPlus1)
		rt.Spawn(lExprMinus1)
		rt.Spawn(lExprTerm1)

	case lExprPlus1:
		rt.Call(LExpr, lExprPlus2)
	case lExprPlus2:
		rt.Save(KExpr)
		if rt.InputConsumeLeft(opPlus) {
			rt.Call(LTerm, lExprPlus3)
		}
	case lExprPlus3:
		left := rt.TakeSaved()
		rt.ForestAddSplit(KExpr, left)
		rt.ForestAddChoice(KExpr, 0)
		rt.Ret()

	case lExprMinus1:
		rt.Call(LExpr, lExprMinus2)
	case lExprMinus2:
		rt.Save(KExpr)
		if rt.InputConsumeLeft(opMinus) {
			rt.Call(LTerm, lExprMinus3)
		}
	case lExprMinus3:
		left := rt.TakeSaved()
		rt.ForestAddSplit(KExpr, left)
		rt.ForestAddChoice(KExpr, 1)
		rt.Ret()

	case lExprTerm1:
		rt.Call(LTerm, lExprTerm2)
	case lExprTerm2:
		rt.ForestAddChoice(KExpr, 2)
		rt.Ret()

	case LTerm:
		rt.Spawn(lTermMul1)
		rt.Spawn(lTermDiv1)
		rt.Spawn(lTermFactor1)

	case lTermMul1:
		rt.Call(LTerm, lTermMul2)
	case lTermMul2:
		rt.Save(KTerm)
		if rt.InputConsumeLeft(opMul) {
			rt.Call(LFactor, lTermMul3)
		}
	case lTermMul3:
		left := rt.TakeSaved()
		rt.ForestAddSplit(KTerm, left)
		rt.ForestAddChoice(KTerm, 0)
		rt.Ret()

	case lTermDiv1:
		rt.Call(LTerm, lTermDiv2)
	case lTermDiv2:
		rt.Save(KTerm)
		if rt.InputConsumeLeft(opDiv) {
			rt.Call(LFactor, lTermDiv3)
		}
	case lTermDiv3:
		left := rt.TakeSaved()
		rt.ForestAddSplit(KTerm, left)
		rt.ForestAddChoice(KTerm, 1)
		rt.Ret()

	case lTermFactor1:
		rt.Call(LFactor, lTermFactor2)
	case lTermFactor2:
		rt.ForestAddChoice(KTerm, 2)
		rt.Ret()

	case LFactor:
		rt.Spawn(lFactorNum)
		rt.Spawn(lFactorParen1)

	case lFactorNum:
		if rt.InputConsumeLeft(numberPat) {
			rt.ForestAddChoice(KFactor, 0)
			rt.Ret()
		}
	case lFactorParen1:
		if rt.InputConsumeLeft(lParen) {
			rt.Call(LExpr, lFactorParen2)
		}
	case lFactorParen2:
		if rt.InputConsumeLeft(rParen) {
			rt.ForestAddChoice(KFactor, 1)
			rt.Ret()
		}
	}
}
