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

// Package parser implements a parser for harpdown source. It takes in an io.Reader
// or a string as input and outputs an *ast.Document.
//
// Parsing never fails on malformed markup: unterminated emphasis and links
// stay literal text, and an unterminated front matter block is read as body.
//
// The parser adheres to the following grammar for harpdown source files:
//
//	unicode_char = /* an arbitrary Unicode code point except newline */ .
//	newline      = /* the Unicode code point U+000A */ .
//	octothorpe   = /* the Unicode code point U+0023 */ .
//	asterisk     = /* the Unicode code point U+002A */ .
//	lbrack       = /* the Unicode code point U+005B */ .
//	rbrack       = /* the Unicode code point U+005D */ .
//	lparen       = /* the Unicode code point U+0028 */ .
//	rparen       = /* the Unicode code point U+0029 */ .
//	colon        = /* the Unicode code point U+003A */ .
//	delimiter    = "---" .
//
//	line = { unicode_char } .
//	blank = /* a line containing only white space */ .
//	entry = line [ colon line ] .
//	front_matter = delimiter newline { ( entry | blank ) newline } delimiter newline .
//	span = unicode_char { unicode_char } .
//	text = span |
//	       asterisk asterisk span asterisk asterisk |
//	       asterisk span asterisk |
//	       lbrack span rbrack lparen span rparen .
//	header = octothorpe { octothorpe } line .
//	paragraph = text { newline text } .
//	statement = header | paragraph .
//	source_file = [ front_matter ] { statement newline { blank newline } } .
//
// Spans are matched shortest first and tried in the order bold, italic, link.
package parser // import "akhil.cc/harpdown/parser"

import (
	"io"
	"strings"

	"akhil.cc/harpdown/ast"
)

// MustParse is like Parse but panics if the source cannot be read.
func MustParse(src io.Reader) *ast.Document {
	d, err := Parse(src)
	if err != nil {
		panic("Parse error: " + err.Error())
	}
	return d
}

// Parse reads all of src and returns its corresponding AST structure.
// The only errors returned are those from reading src.
// A generator can be used to transform the returned AST into another format.
func Parse(src io.Reader) (*ast.Document, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return ParseString(string(b)), nil
}

// ParseString parses text into a Document. It never fails; the worst case is a
// single paragraph holding the whole trimmed text. A leading byte order mark
// is dropped.
func ParseString(text string) *ast.Document {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	fm, body := frontMatter(lines)
	p := &parser{doc: &ast.Document{FrontMatter: fm, Content: []ast.Block{}}}
	for _, l := range body {
		p.line(strings.TrimSpace(l))
	}
	p.flush()
	return p.doc
}

type parser struct {
	doc     *ast.Document
	pending []string
}

// statement = header | paragraph .
func (p *parser) line(l string) {
	switch {
	case l == "":
		p.flush()
	case l[0] == '#':
		p.flush()
		p.doc.Content = append(p.doc.Content, header(l))
	default:
		p.pending = append(p.pending, l)
	}
}

// header = octothorpe { octothorpe } line .
func header(l string) *ast.Heading {
	n := 0
	for n < len(l) && l[n] == '#' {
		n++
	}
	return &ast.Heading{Level: n, Value: strings.TrimSpace(l[n:])}
}

// flush turns the accumulated lines into a paragraph, if there are any.
func (p *parser) flush() {
	if len(p.pending) == 0 {
		return
	}
	body := strings.TrimSpace(strings.Join(p.pending, " "))
	p.pending = p.pending[:0]
	p.doc.Content = append(p.doc.Content, &ast.Paragraph{Value: Inline(body)})
}
