// Package aerrors defines the domain error kinds spec.md §7 names:
// ParseError (codec-level), SemanticError (resolver/patch-level),
// IoError (filesystem), and ToolError (external tool invocation, e.g. the
// NSS compiler). Each kind wraps a closed set of string codes rather than
// modeling every failure as its own Go type, mirroring the teacher's
// xdr.Error{Op, Err} "op + wrapped cause" shape rather than reaching for a
// multi-error library — the set of kinds is small, fixed by the spec, and
// doesn't benefit from one.
package aerrors

import "fmt"

// ParseCode enumerates §7's ParseError codes.
type ParseCode string

const (
	BadSignature               ParseCode = "BadSignature"
	UnsupportedVersion         ParseCode = "UnsupportedVersion"
	TruncatedSection           ParseCode = "TruncatedSection"
	IndexOutOfRange            ParseCode = "IndexOutOfRange"
	InvalidUtf8Final           ParseCode = "InvalidUtf8Final"
	OversizedResRef            ParseCode = "OversizedResRef"
	CyclicGraph                ParseCode = "CyclicGraph"
	LocalizedStringLenMismatch ParseCode = "LocalizedStringLengthMismatch"
	InvalidResRef              ParseCode = "InvalidResRef"
	IntegerOverflow             ParseCode = "IntegerOverflow"
	UnexpectedEof              ParseCode = "UnexpectedEof"
)

// ParseError is a codec-level failure, surfaced verbatim to callers per
// §7's propagation policy.
type ParseError struct {
	Code ParseCode
	Op   string // e.g. "gff.Decode", "tlk.Decode"
	Err  error  // wrapped cause, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError constructs a ParseError with an optional wrapped cause.
func NewParseError(op string, code ParseCode, cause error) *ParseError {
	return &ParseError{Code: code, Op: op, Err: cause}
}

// SemanticCode enumerates §7's SemanticError codes.
type SemanticCode string

const (
	UnknownResource     SemanticCode = "UnknownResource"
	UndefinedMemoryToken SemanticCode = "UndefinedMemoryToken"
	SelectorNoMatch     SemanticCode = "SelectorNoMatch"
	InvalidPath         SemanticCode = "InvalidPath"
	AmbiguousRow        SemanticCode = "AmbiguousRow"
)

// SemanticError is a resolver- or patch-engine-level failure: the bytes
// parsed fine but the requested operation doesn't make sense against them.
type SemanticError struct {
	Code SemanticCode
	Op   string
	File string // file the error pertains to, if any
	Err  error
}

func (e *SemanticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Code, e.File)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *SemanticError) Unwrap() error { return e.Err }

func NewSemanticError(op string, code SemanticCode, file string, cause error) *SemanticError {
	return &SemanticError{Code: code, Op: op, File: file, Err: cause}
}

// IoCode enumerates §7's IoError codes.
type IoCode string

const (
	FileNotFound     IoCode = "FileNotFound"
	PermissionDenied IoCode = "PermissionDenied"
	WriteFailed      IoCode = "WriteFailed"
)

// IoError wraps a filesystem-level failure encountered by the resolver or
// the patch engine's install orchestration.
type IoError struct {
	Code IoCode
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Code, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

func NewIoError(path string, code IoCode, cause error) *IoError {
	return &IoError{Code: code, Path: path, Err: cause}
}

// ToolCode enumerates §7's ToolError codes.
type ToolCode string

const (
	CompileError ToolCode = "CompileError"
)

// ToolError wraps a failure from an external tool invocation (the NSS
// compiler contract of §4.8.5).
type ToolError struct {
	Code ToolCode
	File string
	Diag string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Diag)
}

func (e *ToolError) Unwrap() error { return e.Err }

func NewToolError(file string, code ToolCode, diag string, cause error) *ToolError {
	return &ToolError{Code: code, File: file, Diag: diag, Err: cause}
}
