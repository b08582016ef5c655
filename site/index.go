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
)

// A Post is an entry of the blog index.
type Post struct {
	Title string
	Date  string
	Path  string
}

// SortPosts orders posts newest first. Dates compare as strings, so they
// should be written as YYYY-MM-DD; equal dates keep path order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Path < posts[j].Path
	})
}

// Index returns the HTML list of posts in the given order.
func Index(posts []Post) string {
	var b strings.Builder
	b.WriteString("<h3>blog:</h3>\n<ul>\n")
	for _, p := range posts {
		b.WriteString(`<li><a href="` + p.Path + `">` + p.Date + ": " + p.Title + "</a></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// IndexPage fills tmpl with the blog index of posts, titled siteName.
func IndexPage(tmpl, siteName string, posts []Post) string {
	out := strings.Replace(tmpl, placeholder("title"), siteName, 1)
	return strings.Replace(out, placeholder("content"), Index(posts), 1)
}
