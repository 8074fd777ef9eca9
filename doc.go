/*
Package gll implements the core of a generalized context-free parsing
runtime based on the GLL (Generalized LL) family of algorithms.

The runtime drives a set of parse "threads" through a grammar compiled to a
flat set of labeled code steps (package runtime), records successful
sub-parses in a memoization table, and shares return continuations through
a Graph-Structured Stack so that ambiguous or overlapping derivations are
explored without exponential blowup. The result is a single parse forest
(package forest) whose sharing mirrors the GSS.

Package structure:

■ runtime: the scheduler, Graph-Structured Stack, memoizer and the Runtime
driver API a compiled grammar's step functions are invoked with.

■ forest: a concrete parse-forest implementation supporting the mutating
operations the runtime invokes, plus the query operations forest traversal
relies on.

■ cursor: lazy, restartable traversal combinators (Once, FlattenIter, Either,
Product) for enumerating derivations out of a finished forest.

■ input: an Input/Pattern implementation over a byte slice (literal and
regexp patterns), plus a lexmachine-backed token adapter.

■ cmd/gllrepl: an interactive command-line driver for the above, built on
top of the library packages. It is a demonstration binary, not part of the
library's API.

The base package (this one) contains the data types shared across all of
them: Range, Pattern, Input, NodeKind, ForestNode and ParseResult.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gll
