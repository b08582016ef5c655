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

package site

import (
	"sort"
	"strings"

	"akhil.cc/harpdown/ast"
)

// A Page is one rendered markdown file on its way into the page template.
type Page struct {
	// Path is the slash-separated output path relative to the site root,
	// with a leading slash, e.g. "/blog/first.html".
	Path        string
	FrontMatter ast.FrontMatter

	// Content is the HTML fragment rendered from the document's blocks.
	Content string
}

// IsPost reports whether the page lives under /blog/.
func (p *Page) IsPost() bool {
	return strings.HasPrefix(p.Path, "/blog/")
}

// Post returns the blog index entry for p.
func (p *Page) Post() Post {
	return Post{Title: p.FrontMatter["title"], Date: p.FrontMatter["date"], Path: p.Path}
}

// Fill substitutes p into tmpl.
//
// Each front matter key replaces the first {{key}} placeholder with its value,
// except title, which becomes "siteName - title". Posts get a
// "<h2>date: title</h2>" header above their content. The content then
// replaces the first {{content}} placeholder; a front matter key named
// content is ignored. Placeholders without a value are left as they are.
func Fill(tmpl, siteName string, p *Page) string {
	keys := make([]string, 0, len(p.FrontMatter))
	for k := range p.FrontMatter {
		if k != "content" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := tmpl
	for _, k := range keys {
		v := p.FrontMatter[k]
		if k == "title" {
			v = siteName + " - " + v
		}
		out = strings.Replace(out, placeholder(k), v, 1)
	}
	content := p.Content
	if p.IsPost() {
		content = "<h2>" + p.FrontMatter["date"] + ": " + p.FrontMatter["title"] + "</h2>\n" + content
	}
	return strings.Replace(out, placeholder("content"), content, 1)
}

func placeholder(key string) string {
	return "{{" + key + "}}"
}
