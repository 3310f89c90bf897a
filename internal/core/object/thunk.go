// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package object

import (
	"github.com/google/uuid"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/token"
)

// Interp is the capability (Eval plus Apply) the Thunk machinery and the
// Builtin protocol use to force an AST expression without this package
// importing the evaluator (spec design notes §9). The evaluator package
// implements Interp; runtime wires a root-scope Thunk's interp field to it.
type Interp interface {
	Eval(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error)

	// Apply invokes fn (a UserLambda or Builtin) on an already-constructed
	// argument thunk, without routing through an ast.Apply node. Builtins
	// that take a callback (map and similar) use this to invoke the
	// callback per element lazily.
	Apply(fn Value, arg *Thunk, bt *diag.Frame) (Value, *diag.Error)
}

// state is the Thunk state machine of spec §3.2/§4.2.
type state int

const (
	statePendingExpr state = iota
	statePendingEval
	stateResolving
	stateConcrete
)

// EvalClosure is the one-shot effectful computation a PendingEval thunk
// runs (used for `inherit (e) a b;` and similar deferred lookups, spec
// §3.2).
type EvalClosure func(interp Interp, bt *diag.Frame) (Value, *diag.Error)

// Thunk is the mutable lazy cell of spec §3.2. Every bound name and every
// list element is a Thunk; thunks are shared by reference (multiple
// environment entries may alias the same cell) and forcing is not
// re-entrant on the same cell — forcing is single-threaded per spec §5, so
// no locking protects the state transition.
type Thunk struct {
	st state

	value Value // valid when st == stateConcrete

	interp Interp
	scope  *Scope   // valid when st == statePendingExpr
	expr   ast.Expr // valid when st == statePendingExpr
	eval   EvalClosure // valid when st == statePendingEval

	defBT *diag.Frame // backtrace at the point this thunk was created
	defSpan token.Span

	id uuid.UUID // lazily assigned; only used to label InfiniteRecursion
}

// NewExprThunk creates a PendingExpr thunk suspending expr in scope, to be
// evaluated via interp when forced.
func NewExprThunk(interp Interp, scope *Scope, expr ast.Expr, defBT *diag.Frame) *Thunk {
	return &Thunk{
		st:      statePendingExpr,
		interp:  interp,
		scope:   scope,
		expr:    expr,
		defBT:   defBT,
		defSpan: expr.Span(),
	}
}

// NewEvalThunk creates a PendingEval thunk running the given one-shot
// closure when forced.
func NewEvalThunk(interp Interp, eval EvalClosure, defBT *diag.Frame, defSpan token.Span) *Thunk {
	return &Thunk{
		st:      statePendingEval,
		interp:  interp,
		eval:    eval,
		defBT:   defBT,
		defSpan: defSpan,
	}
}

// NewConcreteThunk wraps an already-forced value in a Concrete thunk.
func NewConcreteThunk(v Value) *Thunk {
	return &Thunk{st: stateConcrete, value: v}
}

// IsConcrete reports whether the thunk has already been forced.
func (t *Thunk) IsConcrete() bool { return t.st == stateConcrete }

// Force evaluates the thunk to a Value, memoising the result on success
// (spec §4.2). callerBT is the backtrace of whoever is forcing — it is
// attached to the InfiniteRecursion diagnostic alongside the thunk's own
// definition backtrace if the same cell is re-entered while Resolving.
func (t *Thunk) Force(callerBT *diag.Frame) (Value, *diag.Error) {
	switch t.st {
	case stateConcrete:
		return t.value, nil
	case stateResolving:
		if t.id == uuid.Nil {
			t.id = uuid.New()
		}
		e := diag.Errorf(diag.InfiniteRecursion, callerBT, t.defSpan,
			"infinite recursion encountered (cycle %s)", t.id.String()[:8])
		e.WithLabel(t.defSpan, diag.SevInfo, diag.InfiniteRecursion, "value defined here")
		if callerBT != nil {
			e.WithLabel(callerBT.Span, diag.SevError, diag.InfiniteRecursion, "re-entered while forcing here")
		}
		return nil, e
	}

	prior := t.st
	t.st = stateResolving

	var v Value
	var err *diag.Error
	switch prior {
	case statePendingExpr:
		v, err = t.interp.Eval(t.scope, t.expr, t.defBT)
	case statePendingEval:
		v, err = t.eval(t.interp, t.defBT)
	}

	if err != nil {
		// Error memoization is left undefined by spec §4.2/§9 Open
		// Questions: the cell stays Resolving. A retry is therefore
		// indistinguishable from genuine self-reference.
		return nil, err
	}

	t.value = v
	t.st = stateConcrete
	t.scope = nil
	t.expr = nil
	t.eval = nil
	t.interp = nil
	return v, nil
}

// ForceDeep forces self; if the result is an AttrSet or List, it forces
// each element once, descending further only if recursive is true. In
// non-recursive mode elements that are already Concrete are skipped. In
// recursive mode every element is descended into, Concrete ones included:
// forcing a Concrete cell returns its stored value without re-running its
// computation, but no record of visited cells is kept, so a value that
// contains itself through already-forced cells is descended into without
// end.
func ForceDeep(t *Thunk, recursive bool, bt *diag.Frame) (Value, *diag.Error) {
	v, err := t.Force(bt)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case *AttrSet:
		for _, k := range x.order {
			et := x.entries[k]
			if et.IsConcrete() && !recursive {
				continue
			}
			if recursive {
				if _, err := ForceDeep(et, true, bt); err != nil {
					return nil, err
				}
			} else if _, err := et.Force(bt); err != nil {
				return nil, err
			}
		}
	case *List:
		for _, et := range x.Elems {
			if et.IsConcrete() && !recursive {
				continue
			}
			if recursive {
				if _, err := ForceDeep(et, true, bt); err != nil {
					return nil, err
				}
			} else if _, err := et.Force(bt); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// ForceNoTrace forces the thunk with no caller backtrace, for internal
// uses (structural equality, printing) that don't need to extend a
// diagnostic chain.
func (t *Thunk) ForceNoTrace() (Value, *diag.Error) {
	return t.Force(nil)
}
