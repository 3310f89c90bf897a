// Copyright 2018 The CUE Authors
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

// Package diag defines the diagnostic and backtrace shapes shared by the
// evaluator: a Label taxonomy (spec §7), linked Backtrace frames (spec
// §3.5), and an Error type that accumulates both as evaluation unwinds.
package diag

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/nixlang/evalcore/token"
)

// Kind classifies a diagnostic message, mirroring spec §7's error
// taxonomy.
type Kind int

const (
	// Custom is a free-form message with no specific taxonomy entry.
	Custom Kind = iota
	VariableNotFound
	AttributeMissing
	TypeError
	AssertionFailed
	InfiniteRecursion
	MissingRequiredArgument
	UnusedArgument
	Unimplemented
	IO
)

func (k Kind) String() string {
	switch k {
	case VariableNotFound:
		return "VariableNotFound"
	case AttributeMissing:
		return "AttributeMissing"
	case TypeError:
		return "TypeError"
	case AssertionFailed:
		return "AssertionFailed"
	case InfiniteRecursion:
		return "InfiniteRecursion"
	case MissingRequiredArgument:
		return "MissingRequiredArgument"
	case UnusedArgument:
		return "UnusedArgument"
	case Unimplemented:
		return "Unimplemented"
	case IO:
		return "IO"
	default:
		return "Custom"
	}
}

// Severity classifies a Label the way spec §4.7 does: Error, Help, Info.
type Severity int

const (
	SevError Severity = iota
	SevHelp
	SevInfo
)

// Label is one annotated span attached to an Error.
type Label struct {
	Span     token.Span
	Severity Severity
	Kind     Kind
	Message  string
}

// Frame is one backtrace entry: a source span and its caller.
type Frame struct {
	Span   token.Span
	Parent *Frame
}

// Push returns a new Frame with span s whose parent is f (f may be nil).
func (f *Frame) Push(s token.Span) *Frame {
	return &Frame{Span: s, Parent: f}
}

// Frames returns the chain from the innermost frame outward.
func (f *Frame) Frames() []*Frame {
	var out []*Frame
	for fr := f; fr != nil; fr = fr.Parent {
		out = append(out, fr)
	}
	return out
}

// Error is the diagnostic type produced by the evaluator: a message, the
// Kind that classifies it, zero or more Labels, and the Backtrace
// accumulated up to the point of failure.
type Error struct {
	Kind      Kind
	format    string
	args      []interface{}
	Labels    []Label
	Backtrace *Frame
	wrapped   error
}

// Errorf builds an Error of the given Kind with the given primary span.
func Errorf(kind Kind, bt *Frame, span token.Span, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      kind,
		format:    format,
		args:      args,
		Backtrace: bt,
		Labels: []Label{{
			Span:     span,
			Severity: SevError,
			Kind:     kind,
			Message:  fmt.Sprintf(format, args...),
		}},
	}
}

// WithLabel appends an additional label (e.g. a second span for a
// two-operand TypeError, or the re-entering caller's span for
// InfiniteRecursion) and returns the same Error for chaining.
func (e *Error) WithLabel(span token.Span, sev Severity, kind Kind, format string, args ...interface{}) *Error {
	e.Labels = append(e.Labels, Label{
		Span:     span,
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
	return e
}

// Wrap attaches a subordinate error (e.g. an upstream loader IOError) for
// inspection context, mirroring cue/errors.Wrap.
func (e *Error) Wrap(child error) *Error {
	e.wrapped = child
	return e
}

// Unwrap supports errors.Is/errors.As over the wrapped child, if any.
func (e *Error) Unwrap() error { return e.wrapped }

// Msg returns the unformatted message and its arguments, for callers that
// want to localize or re-render (cue/errors.Error.Msg convention).
func (e *Error) Msg() (string, []interface{}) { return e.format, e.args }

// Error implements the standard error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if e.wrapped != nil {
		return msg + ": " + e.wrapped.Error()
	}
	return msg
}

// Position returns the primary label's span, or token.NoSpan if there are
// no labels.
func (e *Error) Position() token.Span {
	if len(e.Labels) == 0 {
		return token.NoSpan
	}
	return e.Labels[0].Span
}

// Print renders the full diagnostic — message, labels, and backtrace —
// word-wrapped to a fixed terminal width, the way a host would display it.
func (e *Error) Print(width uint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Error())
	for _, l := range e.Labels {
		fmt.Fprintf(&b, "  at %s: %s\n", l.Span, l.Message)
	}
	for _, fr := range e.Backtrace.Frames() {
		fmt.Fprintf(&b, "  from %s\n", fr.Span)
	}
	return wordwrap.WrapString(b.String(), width)
}
