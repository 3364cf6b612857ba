package coil

import "fmt"

// ErrorKind is the closed taxonomy of errors the core can raise.
type ErrorKind int

const (
	// Lexical covers unrecognized input, unterminated strings, decode failures.
	Lexical ErrorKind = iota
	// Syntax covers unexpected tokens and premature end of input.
	Syntax
	// Data covers invalid/duplicate/deleted keys, bad @extends/@file targets,
	// and double-add/double-delete.
	Data
	// Circular is raised when expansion detects a cycle.
	Circular
	// KeyMissing is raised when a path does not resolve to any value.
	KeyMissing
	// KeyType stands for a path that is not a string. Paths are Go strings
	// throughout this API, so the core never raises it.
	KeyType
	// KeyValue is raised when a path/key fails validation.
	KeyValue
	// ValueType is raised when a path resolves to a value of the wrong kind.
	ValueType
	// IO covers file open/read failures during @file/@package.
	IO
	// Unicode covers decode failures when an encoding was declared.
	Unicode
)

func (k ErrorKind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Data:
		return "Data"
	case Circular:
		return "Circular"
	case KeyMissing:
		return "KeyMissing"
	case KeyType:
		return "KeyType"
	case KeyValue:
		return "KeyValue"
	case ValueType:
		return "ValueType"
	case IO:
		return "IO"
	case Unicode:
		return "Unicode"
	default:
		return "Unknown"
	}
}

// Error is the single error type raised by every stage of the core. It
// always carries a source Location and, for struct-level errors, the
// absolute node Path.
type Error struct {
	Kind     ErrorKind
	Location Location
	Path     string // absolute node path, empty if not applicable
	Reason   string
	Key      string // for KeyMissing: the bare leaf key that was not found
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Location, e.Reason)
}

func newError(kind ErrorKind, loc Location, path, reason string, args ...interface{}) *Error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &Error{Kind: kind, Location: loc, Path: path, Reason: reason}
}

func lexicalError(loc Location, reason string, args ...interface{}) *Error {
	return newError(Lexical, loc, "", reason, args...)
}

func syntaxError(loc Location, reason string, args ...interface{}) *Error {
	return newError(Syntax, loc, "", reason, args...)
}

func dataError(s *Struct, reason string, args ...interface{}) *Error {
	path := ""
	if s != nil {
		path = s.AbsPath()
	}
	loc := Location{}
	if s != nil {
		loc = s.location
	}
	return newError(Data, loc, path, reason, args...)
}

func dataErrorAt(loc Location, path, reason string, args ...interface{}) *Error {
	return newError(Data, loc, path, reason, args...)
}

func circularError(s *Struct, abspath string) *Error {
	path := ""
	loc := Location{}
	if s != nil {
		path = s.AbsPath()
		loc = s.location
	}
	return newError(Circular, loc, path, "circular reference to %s", abspath)
}

func keyMissingError(s *Struct, key string) *Error {
	path := ""
	loc := Location{}
	if s != nil {
		path = s.AbsPath()
		loc = s.location
	}
	e := newError(KeyMissing, loc, path, "the key %q was not found", key)
	e.Key = key
	return e
}

func keyValueError(s *Struct, key string) *Error {
	path := ""
	loc := Location{}
	if s != nil {
		path = s.AbsPath()
		loc = s.location
	}
	return newError(KeyValue, loc, path, "the key %q is invalid", key)
}

func valueTypeError(s *Struct, key string, got, want string) *Error {
	path := ""
	loc := Location{}
	if s != nil {
		path = s.AbsPath()
		loc = s.location
	}
	return newError(ValueType, loc, path, "the value at %q has type %s, want %s", key, got, want)
}

func ioError(loc Location, reason string, args ...interface{}) *Error {
	return newError(IO, loc, "", reason, args...)
}

func unicodeError(loc Location, reason string, args ...interface{}) *Error {
	return newError(Unicode, loc, "", reason, args...)
}

// IsKeyMissing reports whether err is a KeyMissing *Error.
func IsKeyMissing(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KeyMissing
}
