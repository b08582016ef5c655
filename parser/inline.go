// MIT License

// Copyright (c) 2018 Akhil Indurti

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package parser

import (
	"strings"

	"akhil.cc/harpdown/ast"
)

// A matcher reports the node for a span at the start of s and the number of
// bytes it consumed, or zero if s does not start with its span.
type matcher func(s string) (ast.Inline, int)

// Tried in order, so that **x** is never read as two italics.
var matchers = [...]matcher{bold, italic, link}

// Inline splits the flattened text of a paragraph into text, bold, italic and
// link nodes. The nodes cover s without gaps: joining ast.Raw of every node
// yields s again.
func Inline(s string) []ast.Inline {
	var nodes []ast.Inline
	for len(s) > 0 {
		if n, w := span(s); w > 0 {
			nodes = append(nodes, n)
			s = s[w:]
			continue
		}
		i := next(s)
		nodes = append(nodes, ast.Text{Value: s[:i]})
		s = s[i:]
	}
	return nodes
}

func span(s string) (ast.Inline, int) {
	for _, m := range matchers {
		if n, w := m(s); w > 0 {
			return n, w
		}
	}
	return nil, 0
}

// next returns the offset of the first span after the start of s,
// or len(s) if there is none.
//
// A '*' needs another '*' at least two bytes on, and a '[' needs a "]("
// followed by a ')' at least three bytes further. Markers past the last such
// closer are skipped without running the matchers, so a run of unclosed
// markers stays linear. Text with newlines can still fail a matcher after a
// full scan and is quadratic in the worst case.
func next(s string) int {
	star := strings.LastIndexByte(s, '*')
	bracket := -1
	if p := strings.LastIndexByte(s, ')'); p >= 3 {
		bracket = strings.LastIndex(s[:p-1], "](")
	}
	for i := 1; i < len(s); i++ {
		j := strings.IndexAny(s[i:], "*[")
		if j < 0 {
			break
		}
		i += j
		if (s[i] == '*' && i+2 > star) || (s[i] == '[' && i+2 > bracket) {
			continue
		}
		if _, w := span(s[i:]); w > 0 {
			return i
		}
	}
	return len(s)
}

// asterisk asterisk span asterisk asterisk
func bold(s string) (ast.Inline, int) {
	if len(s) < 5 || !strings.HasPrefix(s, "**") {
		return nil, 0
	}
	i := strings.Index(s[3:], "**")
	if i < 0 {
		return nil, 0
	}
	v := s[2 : 3+i]
	if !oneLine(v) {
		return nil, 0
	}
	return ast.Bold{Value: v}, 3 + i + 2
}

// asterisk span asterisk
func italic(s string) (ast.Inline, int) {
	if len(s) < 3 || s[0] != '*' {
		return nil, 0
	}
	i := strings.IndexByte(s[2:], '*')
	if i < 0 {
		return nil, 0
	}
	v := s[1 : 2+i]
	if !oneLine(v) {
		return nil, 0
	}
	return ast.Italic{Value: v}, 2 + i + 1
}

// lbrack span rbrack lparen span rparen
//
// Only the first "](" can close the text: any later one would put the
// failing part of the first candidate inside the text or the href.
func link(s string) (ast.Inline, int) {
	if len(s) < 6 || s[0] != '[' {
		return nil, 0
	}
	i := strings.Index(s[2:], "](")
	if i < 0 {
		return nil, 0
	}
	rb := 2 + i
	if rb+3 > len(s) {
		return nil, 0
	}
	j := strings.IndexByte(s[rb+3:], ')')
	if j < 0 {
		return nil, 0
	}
	rp := rb + 3 + j
	text, href := s[1:rb], s[rb+2:rp]
	if !oneLine(text) || !oneLine(href) {
		return nil, 0
	}
	return ast.Link{Href: href, Text: text}, rp + 1
}

func oneLine(s string) bool {
	return strings.IndexByte(s, '\n') < 0
}
