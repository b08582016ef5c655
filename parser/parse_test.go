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

// Tests for parse.go
package parser_test

import (
	"reflect"
	"strings"
	"testing"

	"akhil.cc/harpdown/ast"
	"akhil.cc/harpdown/parser"
	"github.com/sanity-io/litter"
)

type smallcase struct {
	in   string
	want ast.Document
}

var litCfg = litter.Options{
	Compact:           true,
	StripPackageNames: false,
	HidePrivateFields: false,
	Separator:         " ",
}

func docEquals(want, got ast.Document) bool {
	if len(want.FrontMatter) != len(got.FrontMatter) {
		return false
	}
	for k, v := range want.FrontMatter {
		if gv, ok := got.FrontMatter[k]; !ok || gv != v {
			return false
		}
	}
	if len(want.Content) != len(got.Content) {
		return false
	}
	for i := range want.Content {
		if !reflect.DeepEqual(want.Content[i], got.Content[i]) {
			return false
		}
	}
	return true
}

func runCases(t *testing.T, cases []smallcase) {
	t.Helper()
	for i, test := range cases {
		got := parser.ParseString(test.in)
		if !docEquals(test.want, *got) {
			t.Errorf("case %d, in %q,\nwant %s,\ngot %s", i, test.in, litCfg.Sdump(test.want), litCfg.Sdump(*got))
		}
	}
}

func para(in ...ast.Inline) *ast.Paragraph {
	return &ast.Paragraph{Value: in}
}

var blockSmall = []smallcase{
	{"", ast.Document{}},
	{"some textttt ", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "some textttt"}),
	}}},
	{" multiple \n    line\n    paragraph", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "multiple line paragraph"}),
	}}},
	{"line one\nline two", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "line one line two"}),
	}}},
	{"# hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 1, Value: "hi"}}}},
	{"## hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 2, Value: "hi"}}}},
	{"### hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 3, Value: "hi"}}}},
	{"#### hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 4, Value: "hi"}}}},
	{"##### hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 5, Value: "hi"}}}},
	{"###### hi", ast.Document{Content: []ast.Block{&ast.Heading{Level: 6, Value: "hi"}}}},
	{"####### deep", ast.Document{Content: []ast.Block{&ast.Heading{Level: 7, Value: "deep"}}}},
	{"#nospace", ast.Document{Content: []ast.Block{&ast.Heading{Level: 1, Value: "nospace"}}}},
	{"#", ast.Document{Content: []ast.Block{&ast.Heading{Level: 1, Value: ""}}}},
	{"# **not bold**", ast.Document{Content: []ast.Block{&ast.Heading{Level: 1, Value: "**not bold**"}}}},
	{"[link text](https://link-url.org)", ast.Document{Content: []ast.Block{
		para(ast.Link{Href: "https://link-url.org", Text: "link text"}),
	}}},
	{"**bold text**", ast.Document{Content: []ast.Block{para(ast.Bold{Value: "bold text"})}}},
	{"*italic text*", ast.Document{Content: []ast.Block{para(ast.Italic{Value: "italic text"})}}},
	{"Text with **bold** and *italic* :)", ast.Document{Content: []ast.Block{
		para(
			ast.Text{Value: "Text with "},
			ast.Bold{Value: "bold"},
			ast.Text{Value: " and "},
			ast.Italic{Value: "italic"},
			ast.Text{Value: " :)"},
		),
	}}},
}

func TestBlocks(t *testing.T) {
	runCases(t, blockSmall)
}

var separateSmall = []smallcase{
	{"first\n\nsecond", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "first"}),
		para(ast.Text{Value: "second"}),
	}}},
	{"first\n\n\n  \n\t\nsecond", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "first"}),
		para(ast.Text{Value: "second"}),
	}}},
	{"intro\n# Title\nbody one\nbody two\n", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "intro"}),
		&ast.Heading{Level: 1, Value: "Title"},
		para(ast.Text{Value: "body one body two"}),
	}}},
	{"\r\nwindows\r\nlines\r\n\r\nnext\r\n", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "windows lines"}),
		para(ast.Text{Value: "next"}),
	}}},
	{"\n\n\n", ast.Document{}},
	{"# one\n## two", ast.Document{Content: []ast.Block{
		&ast.Heading{Level: 1, Value: "one"},
		&ast.Heading{Level: 2, Value: "two"},
	}}},
}

func TestSeparateBlocks(t *testing.T) {
	runCases(t, separateSmall)
}

var frontMatterSmall = []smallcase{
	{"---\ntitle: Hello\ndate: 2024-01-02\n---\n# Hello", ast.Document{
		FrontMatter: ast.FrontMatter{"title": "Hello", "date": "2024-01-02"},
		Content:     []ast.Block{&ast.Heading{Level: 1, Value: "Hello"}},
	}},
	{"---\nurl: https://example.org:8080/x\n---\n", ast.Document{
		FrontMatter: ast.FrontMatter{"url": "https://example.org:8080/x"},
	}},
	{"---\n  key  :   spaced value  \n---", ast.Document{
		FrontMatter: ast.FrontMatter{"key": "spaced value"},
	}},
	{"---\ntag: a\ntag: b\n---", ast.Document{
		FrontMatter: ast.FrontMatter{"tag": "b"},
	}},
	{"---\nflag\n\nempty:\n---", ast.Document{
		FrontMatter: ast.FrontMatter{"flag": "", "empty": ""},
	}},
	{"\n\n  ---  \na: 1\n---\nbody", ast.Document{
		FrontMatter: ast.FrontMatter{"a": "1"},
		Content:     []ast.Block{para(ast.Text{Value: "body"})},
	}},
	// byte order mark before the opening delimiter
	{"\ufeff---\na: b\n---\nbody", ast.Document{
		FrontMatter: ast.FrontMatter{"a": "b"},
		Content:     []ast.Block{para(ast.Text{Value: "body"})},
	}},
	// unterminated: no front matter, everything is body
	{"---\ntitle: x\nbody", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "--- title: x body"}),
	}}},
	// only recognized as the first non-blank line
	{"intro\n---\ntitle: x\n---\nbody", ast.Document{Content: []ast.Block{
		para(ast.Text{Value: "intro --- title: x --- body"}),
	}}},
}

func TestFrontMatter(t *testing.T) {
	runCases(t, frontMatterSmall)
}

func TestParseReader(t *testing.T) {
	src := "---\ntitle: Reader\n---\n\n*hello*\n"
	got, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := ast.Document{
		FrontMatter: ast.FrontMatter{"title": "Reader"},
		Content:     []ast.Block{para(ast.Italic{Value: "hello"})},
	}
	if !docEquals(want, *got) {
		t.Errorf("want %s,\ngot %s", litCfg.Sdump(want), litCfg.Sdump(*got))
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errTest }

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("read failed")

func TestParseReadError(t *testing.T) {
	if _, err := parser.Parse(errReader{}); err != errTest {
		t.Errorf("want %v, got %v", errTest, err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	parser.MustParse(errReader{})
}

func TestEmptyDocument(t *testing.T) {
	got := parser.ParseString("")
	if got.FrontMatter == nil || len(got.FrontMatter) != 0 {
		t.Errorf("want empty front matter, got %s", litCfg.Sdump(got.FrontMatter))
	}
	if got.Content == nil || len(got.Content) != 0 {
		t.Errorf("want empty content, got %s", litCfg.Sdump(got.Content))
	}
}
