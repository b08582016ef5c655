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

// Package html converts a document's blocks into an HTML fragment.
// Every block is written on its own line, terminated by '\n'.
//
// Text is written verbatim: no HTML escaping is performed on text, link
// targets or emphasis. Callers rendering untrusted input must escape it
// before parsing.
//
// AST nodes correspond to the following HTML tags:
//
//	Paragraph                   <p></p>
//	Heading                     <h1></h1>, <h2></h2>, <h3></h3>, <h4></h4>, <h5></h5>, <h6></h6>
//	Link                        <a href=""></a>
//	Italic                      <em></em>
//	Bold                        <strong></strong>
//
// Headings deeper than level 6 are written as <h6>.
package html // import "akhil.cc/harpdown/gen/html"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"akhil.cc/harpdown/ast"
)

type stickyCountWriter struct {
	n   int64
	err error
	w   io.Writer
}

func (c *stickyCountWriter) Write(p []byte) (n int, err error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err = c.w.Write(p)
	c.err = err
	c.n += int64(n)
	return
}

// Render returns the HTML for blocks, one line per block.
func Render(blocks []ast.Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		block(&b, blk)
	}
	return b.String()
}

func block(b *strings.Builder, blk ast.Block) {
	switch t := blk.(type) {
	case *ast.Heading:
		tag := "h" + strconv.Itoa(level(t.Level))
		b.WriteString("<" + tag + ">")
		b.WriteString(t.Value)
		b.WriteString("</" + tag + ">\n")
	case *ast.Paragraph:
		b.WriteString("<p>")
		inline(b, t.Value)
		b.WriteString("</p>\n")
	}
}

func level(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 6:
		return 6
	}
	return n
}

func inline(b *strings.Builder, nodes []ast.Inline) {
	for _, n := range nodes {
		switch t := n.(type) {
		case ast.Text:
			b.WriteString(t.Value)
		case ast.Link:
			b.WriteString(`<a href="` + t.Href + `">` + t.Text + "</a>")
		case ast.Bold:
			b.WriteString("<strong>" + t.Value + "</strong>")
		case ast.Italic:
			b.WriteString("<em>" + t.Value + "</em>")
		}
	}
}

// Generator represents a non-reusable HTML output generator for an *ast.Document.
type Generator struct {
	// Stdout specifies the generator's output. If nil, output is discarded.
	Stdout   io.Writer
	ctx      context.Context
	doc      *ast.Document
	waitdone chan error

	m     sync.Mutex
	pipes []io.Closer
}

// Gen returns the Generator struct to convert the given document into HTML output.
//
// It sets only the document in the returned structure.
func Gen(doc *ast.Document) *Generator {
	return &Generator{ctx: context.TODO(), doc: doc}
}

// GenContext is like Gen but includes a context.
//
// The provided context is used to halt HTML generation
// between two blocks.
func GenContext(ctx context.Context, doc *ast.Document) *Generator {
	if ctx == nil {
		panic("nil context")
	}
	return &Generator{ctx: ctx, doc: doc}
}

// Start starts the generator but does not wait for it to complete.
func (g *Generator) Start() error {
	if g.waitdone != nil {
		return fmt.Errorf("already started")
	}
	if g.Stdout == nil {
		g.Stdout = io.Discard
	}
	g.waitdone = make(chan error)
	go func() {
		err := g.gen()
		g.m.Lock()
		for _, p := range g.pipes {
			p.Close()
		}
		g.pipes = nil
		g.m.Unlock()
		g.waitdone <- err
	}()
	return nil
}

// Wait waits for the generator to complete and finish writing to
// Stdout. It is an error to call Wait before Start has been called.
//
// Wait will release any resources associated with the generator.
func (g *Generator) Wait() error {
	if g.waitdone == nil {
		return fmt.Errorf("not started")
	}
	// prevent callers to Wait from a deadlock via not waiting for pipes to close
	g.m.Lock()
	if g.pipes != nil {
		g.m.Unlock()
		return fmt.Errorf("all reads from the pipe have not completed")
	}
	g.m.Unlock()
	err := <-g.waitdone
	close(g.waitdone)
	return err
}

// Run starts the generator and waits for it to complete, returning
// any errors enountered.
func (g *Generator) Run() error {
	if err := g.Start(); err != nil {
		return err
	}
	return g.Wait()
}

// StdoutPipe returns a pipe that is connected to the generator's
// standard output.
//
// It is invalid to call Wait until all reads from the pipe have completed.
// For the same reason, it is invalid to call Run when using StdoutPipe.
func (g *Generator) StdoutPipe() (io.Reader, error) {
	if g.Stdout != nil {
		return nil, fmt.Errorf("Stdout already set")
	}
	pr, pw := io.Pipe()
	g.Stdout = pw
	g.m.Lock()
	g.pipes = append(g.pipes, pw)
	g.m.Unlock()
	return pr, nil
}

// Output runs the generator and returns its standard output.
func (g *Generator) Output() ([]byte, error) {
	if g.Stdout != nil {
		return nil, fmt.Errorf("Stdout already set")
	}
	var stdout bytes.Buffer
	g.Stdout = &stdout
	err := g.Run()
	return stdout.Bytes(), err
}

func (g *Generator) gen() error {
	cw := &stickyCountWriter{0, nil, g.Stdout}
	var b strings.Builder
	for _, blk := range g.doc.Content {
		select {
		case <-g.ctx.Done():
			return g.ctx.Err()
		default:
		}
		b.Reset()
		block(&b, blk)
		io.WriteString(cw, b.String())
	}
	return cw.err
}
