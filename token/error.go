package token

import (
	"fmt"
	"strings"
)

// Stage identifies which pass of the front end raised an Error, and
// therefore which process exit code the driver reports.
type Stage int

const (
	// LexStage is a lexical-analysis failure (exit 201).
	LexStage Stage = iota
	// ParseStage is a parser failure (exit 202).
	ParseStage
	// ResolveStage is a symbol-resolution failure (exit 203).
	ResolveStage
	// TypeStage is a type-checker failure (exit 204), and also covers
	// fold-time errors raised by the simplifier.
	TypeStage
)

// ExitCode returns the process exit status associated with a Stage.
func (s Stage) ExitCode() int {
	switch s {
	case LexStage:
		return 201
	case ParseStage:
		return 202
	case ResolveStage:
		return 203
	case TypeStage:
		return 204
	default:
		return 1
	}
}

// An Error is a diagnostic raised by one of the compiler's staged
// passes. It always carries the source position of the offending
// construct. Notes attach supplementary detail without escalating to
// a separate error.
type Error struct {
	Stage   Stage
	Pos     Pos
	Message string
	Notes   []string
}

// NewError builds a staged Error at pos with the given message.
func NewError(stage Stage, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Stage: stage, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Note appends supplementary detail to err and returns it, allowing
// call sites to chain construction.
func (err *Error) Note(format string, args ...interface{}) *Error {
	err.Notes = append(err.Notes, fmt.Sprintf(format, args...))
	return err
}

func (err *Error) Error() string {
	var s strings.Builder
	s.WriteString(err.Pos.String())
	s.WriteString(": ")
	s.WriteString(err.Message)
	for _, n := range err.Notes {
		s.WriteString("\n\t")
		s.WriteString(n)
	}
	return s.String()
}
