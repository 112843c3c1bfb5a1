package diagnostics

import (
	"fmt"
	"strings"
)

// Common diagnostic builders for the lowering engine and resolver

// UndefinedVariable creates a diagnostic for an unbound variable reference
func UndefinedVariable(name string) *Diagnostic {
	return NewError("undefined variable: " + name).
		WithCode(ErrUndefinedVariable).
		WithHelp("declare the variable before using it")
}

// TypeMismatch creates a diagnostic for an assignment type mismatch
func TypeMismatch(name, want, got string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot assign %s value to %s (declared as %s)", got, name, want)).
		WithCode(ErrTypeMismatch)
}

// UnsupportedType creates a diagnostic for an unknown declared type
func UnsupportedType(typeName string) *Diagnostic {
	return NewError("unsupported type: " + typeName).
		WithCode(ErrUnsupportedType)
}

// UnimplementedOperator creates a diagnostic for an operator with no lowering
func UnimplementedOperator(op string) *Diagnostic {
	return NewError("unsupported operator: " + op).
		WithCode(ErrUnimplementedOperator)
}

// InvalidVoidReturn creates a diagnostic for a bare return in a non-void function
func InvalidVoidReturn(fn string) *Diagnostic {
	return NewError("void return used in non-void function " + fn).
		WithCode(ErrInvalidVoidReturn)
}

// MissingTerminator creates a diagnostic for a function that falls off the end
func MissingTerminator(fn, block string) *Diagnostic {
	return NewError(fmt.Sprintf("missing return in function %s (block %s is not terminated)", fn, block)).
		WithCode(ErrMissingTerminator).
		WithHelp("every control flow path must end in a return")
}

// LoopControlOutsideLoop creates a diagnostic for break/continue with no loop
func LoopControlOutsideLoop(keyword string) *Diagnostic {
	return NewError(keyword + " used outside of a loop").
		WithCode(ErrLoopControl)
}

// ExternNotFound creates a diagnostic for an unknown qualified extern name
func ExternNotFound(qualified string) *Diagnostic {
	return NewError("function " + qualified + " not found in extern functions").
		WithCode(ErrExternNotFound).
		WithHelp("check that the defining module is listed in the unit's uses")
}

// OverloadMismatch creates a diagnostic for an argument tuple with no overload
func OverloadMismatch(qualified string, tags []string) *Diagnostic {
	return NewError(fmt.Sprintf("function %s does not have a (%s) argument type match",
		qualified, strings.Join(tags, ", "))).
		WithCode(ErrOverloadMismatch)
}

// DescriptorError creates a diagnostic for a malformed descriptor file
func DescriptorError(path, detail string) *Diagnostic {
	return NewError("invalid descriptor file " + path + ": " + detail).
		WithCode(ErrDescriptor)
}

// ToolchainMissing creates a diagnostic for an absent external binary
func ToolchainMissing(tool string) *Diagnostic {
	return NewError("make sure (" + tool + ") is installed and on your PATH").
		WithCode(ErrToolchainMissing)
}

// ProcessFailed creates a diagnostic for a failed external process
func ProcessFailed(tool string, err error) *Diagnostic {
	return NewError(fmt.Sprintf("%s failed: %v", tool, err)).
		WithCode(ErrProcessFailed)
}

// OverloadOverwritten warns that a later descriptor entry replaced an earlier one
func OverloadOverwritten(qualified, tuple string) *Diagnostic {
	msg := "extern overload " + qualified
	if tuple != "" {
		msg += ":" + tuple
	}
	return NewWarning(msg + " redefined; the later descriptor entry wins").
		WithCode(WarnOverloadOverwritten)
}
