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

const delimiter = "---"

// frontMatter splits lines into the front matter entries and the body lines.
//
// front_matter = delimiter newline { ( entry | blank ) newline } delimiter newline .
//
// The opening delimiter must be the first non-blank line. Without a closing
// delimiter the document has no front matter and every line is body.
func frontMatter(lines []string) (ast.FrontMatter, []string) {
	fm := make(ast.FrontMatter)
	open := -1
	for i, l := range lines {
		if l = strings.TrimSpace(l); l == "" {
			continue
		}
		if l == delimiter {
			open = i
		}
		break
	}
	if open < 0 {
		return fm, lines
	}
	for i := open + 1; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == delimiter {
			return fm, lines[i+1:]
		}
		if l == "" {
			continue
		}
		// entry = line [ colon line ] .
		key, value, _ := strings.Cut(l, ":")
		fm[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return make(ast.FrontMatter), lines
}
