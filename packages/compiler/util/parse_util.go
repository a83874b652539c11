package util

import "fmt"

// ParseLocation is a location in a parsed source file.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation.
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{File: file, Offset: offset, Line: line, Col: col}
}

func (l *ParseLocation) String() string {
	if l.File == nil {
		return fmt.Sprintf("@%d", l.Offset)
	}
	return fmt.Sprintf("%s@%d:%d", l.File.URL, l.Line, l.Col)
}

// MoveBy returns a new location shifted by delta characters. Line and column
// tracking is recomputed from the file content when available.
func (l *ParseLocation) MoveBy(delta int) *ParseLocation {
	if l.File == nil {
		return NewParseLocation(nil, l.Offset+delta, l.Line, l.Col)
	}
	source := l.File.Content
	length := len(source)
	offset := l.Offset
	line := l.Line
	col := l.Col
	for delta > 0 && offset < length {
		ch := source[offset]
		offset++
		delta--
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	for delta < 0 && offset > 0 {
		offset--
		delta++
		ch := source[offset]
		if ch == '\n' {
			line--
			// Column is unknown when moving back across a newline.
			col = 0
		} else {
			col--
		}
	}
	return NewParseLocation(l.File, offset, line, col)
}

// ParseSourceFile holds the content of one source file being parsed.
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile.
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseSourceSpan is a span of text in a source file, with an optional
// fullStart that includes leading trivia (whitespace preceding the token).
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   *string
}

// NewParseSourceSpan creates a new ParseSourceSpan. fullStart defaults to
// start when nil.
func NewParseSourceSpan(start, end, fullStart *ParseLocation, details *string) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{Start: start, End: end, FullStart: fullStart, Details: details}
}

func (s *ParseSourceSpan) String() string {
	if s == nil || s.Start == nil || s.Start.File == nil {
		return ""
	}
	return s.Start.File.Content[s.Start.Offset:s.End.Offset]
}

// ParseErrorLevel distinguishes warnings from errors.
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ParseError is a diagnostic attached to a source span.
type ParseError struct {
	Span  *ParseSourceSpan
	Msg   string
	Level ParseErrorLevel
}

// NewParseError creates a new error-level ParseError.
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelError}
}

func (e *ParseError) Error() string {
	if e.Span != nil && e.Span.Start != nil {
		return fmt.Sprintf("%s (%s)", e.Msg, e.Span.Start.String())
	}
	return e.Msg
}
