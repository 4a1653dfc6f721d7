// Package logparse turns raw chat-log lines into normalized entries.
package logparse

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"
)

// Entry is one parsed log line. Nick is already normalized.
type Entry struct {
	Date string
	Time string
	Nick string
	Msg  string
}

// Kind tags a parse result.
type Kind int

const (
	// Done means the source is exhausted (or unreadable); no more results follow.
	Done Kind = iota
	// Skip means the line was malformed or filtered out.
	Skip
	// Yield means Entry carries a parsed record.
	Yield
)

// Result is the outcome of reading one line.
type Result struct {
	Kind  Kind
	Entry Entry
}

// Normalize strips surrounding whitespace and nick decorations ('@', '<', '>')
// from both ends and lowercases. Idempotent.
func Normalize(nick string) string {
	nick = strings.TrimFunc(nick, func(r rune) bool {
		return unicode.IsSpace(r) || r == '@' || r == '<' || r == '>'
	})
	return strings.ToLower(nick)
}

// join/part/action markers some log formats put in the nick column
const (
	markerJoin   = "-->"
	markerPart   = "<--"
	markerAction = "--"
)

// Parser reads log lines from r one at a time.
// It is single-use: once Next returns Done, it keeps returning Done.
type Parser struct {
	r    *bufio.Reader
	done bool
}

func NewParser(r io.Reader) *Parser {
	return &Parser{r: bufio.NewReader(r)}
}

// Open returns a parser over the log file at path together with the handle to
// close once parsing is done.
func Open(path string) (*Parser, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewParser(f), f, nil
}

// Next reads one line and reports Done, Skip or Yield.
// A read error terminates the sequence exactly like a clean end of input;
// callers cannot distinguish the two. Intentional: a half-readable log is
// treated as a shorter log.
func (p *Parser) Next() Result {
	if p.done {
		return Result{Kind: Done}
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		p.done = true
		if len(line) == 0 {
			return Result{Kind: Done}
		}
		// final line without a trailing newline still counts
	}
	e, ok := fromLine(strings.TrimSpace(line))
	if !ok {
		return Result{Kind: Skip}
	}
	return Result{Kind: Yield, Entry: e}
}

// fromLine splits a line into date, time, nick and message on the first three
// runs of ASCII whitespace.
func fromLine(line string) (Entry, bool) {
	fields := splitN(line, 4)
	if len(fields) < 4 {
		return Entry{}, false
	}
	nick := Normalize(fields[2])
	if nick == markerJoin || nick == markerPart || nick == markerAction {
		return Entry{}, false
	}
	return Entry{Date: fields[0], Time: fields[1], Nick: nick, Msg: fields[3]}, true
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// splitN splits s on runs of ASCII whitespace into at most n fields,
// the last field keeping the remainder of the line verbatim.
func splitN(s string, n int) []string {
	var fields []string
	i := 0
	for len(fields) < n-1 {
		for i < len(s) && isASCIISpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return fields
		}
		start := i
		for i < len(s) && !isASCIISpace(s[i]) {
			i++
		}
		fields = append(fields, s[start:i])
	}
	for i < len(s) && isASCIISpace(s[i]) {
		i++
	}
	if i < len(s) {
		fields = append(fields, s[i:])
	}
	return fields
}
