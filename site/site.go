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

// Package site builds a static site from a tree of harpdown source files.
//
// Every *.md file below the source directory is parsed, rendered into the
// page template and written to the same relative path below the output
// directory with an .html extension. Pages below blog/ are collected into a
// blog index written to index.html.
package site // import "akhil.cc/harpdown/site"

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"akhil.cc/harpdown/ast"
	"akhil.cc/harpdown/gen"
	"akhil.cc/harpdown/gen/html"
	"akhil.cc/harpdown/parser"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TemplateName is the page template looked up in the source directory
// when Config.Template is empty.
const TemplateName = "__template.html"

// Config describes a site build. Zero fields take the defaults noted.
type Config struct {
	Source   string // "content"
	Output   string // "public"
	Template string // Source/__template.html
	SiteName string // "1001harps dot com"

	// Jobs bounds the number of pages rendered at once. Default runtime.NumCPU().
	Jobs int

	// AfterBuild is a command line run in Output once every page is written.
	AfterBuild string

	// Stdout and Stderr receive the AfterBuild command's output.
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.SugaredLogger
}

func (c Config) withDefaults() Config {
	if c.Source == "" {
		c.Source = "content"
	}
	if c.Output == "" {
		c.Output = "public"
	}
	if c.Template == "" {
		c.Template = filepath.Join(c.Source, TemplateName)
	}
	if c.SiteName == "" {
		c.SiteName = "1001harps dot com"
	}
	if c.Jobs < 1 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	return c
}

// Report summarizes a finished build.
type Report struct {
	// Pages holds the output path of every page, sorted.
	Pages []string
	// Posts holds the blog index entries, newest first.
	Posts []Post
}

type builder struct {
	cfg  Config
	tmpl string
	log  *zap.SugaredLogger
}

// Build renders the site described by cfg. The first failing page cancels
// the remaining ones and its error is returned.
func Build(ctx context.Context, cfg Config) (*Report, error) {
	start := time.Now()
	cfg = cfg.withDefaults()
	tmpl, err := os.ReadFile(cfg.Template)
	if err != nil {
		return nil, errors.Wrap(err, "could not read template")
	}
	files, err := sources(cfg.Source)
	if err != nil {
		return nil, err
	}
	b := &builder{cfg: cfg, tmpl: string(tmpl), log: cfg.Logger}
	report, err := b.pages(ctx, files)
	if err != nil {
		return nil, err
	}

	SortPosts(report.Posts)
	index := filepath.Join(cfg.Output, "index.html")
	if err := write(index, IndexPage(b.tmpl, cfg.SiteName, report.Posts)); err != nil {
		return nil, err
	}
	b.log.Infow("site built",
		"pages", len(report.Pages),
		"posts", len(report.Posts),
		"output", cfg.Output,
		"elapsed", time.Since(start),
	)

	if cfg.AfterBuild != "" {
		c := &gen.Command{Ctx: ctx, Dir: cfg.Output, Stdout: cfg.Stdout, Stderr: cfg.Stderr}
		b.log.Infow("running after-build command", "command", cfg.AfterBuild)
		if err := c.Run(cfg.AfterBuild); err != nil {
			return report, errors.Wrapf(err, "after-build command %q", cfg.AfterBuild)
		}
	}
	return report, nil
}

// sources lists the markdown files below dir relative to it, in lexical order.
func sources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", dir)
	}
	return files, nil
}

// pages renders files on at most cfg.Jobs goroutines. The first failing
// page cancels the ones not yet started.
func (b *builder) pages(ctx context.Context, files []string) (*Report, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Jobs)

	var (
		m      sync.Mutex
		report Report
	)
	for _, rel := range files {
		if gctx.Err() != nil {
			break
		}
		rel := rel
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			p, err := b.page(rel)
			if err != nil {
				return err
			}
			m.Lock()
			defer m.Unlock()
			report.Pages = append(report.Pages, p.Path)
			if p.IsPost() {
				report.Posts = append(report.Posts, p.Post())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "build canceled")
	}
	sort.Strings(report.Pages)
	return &report, nil
}

// page renders the source file rel and writes it below the output directory.
func (b *builder) page(rel string) (*Page, error) {
	src := filepath.Join(b.cfg.Source, rel)
	text, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", src)
	}
	doc := parser.ParseString(string(text))
	p := &Page{
		Path:        "/" + filepath.ToSlash(strings.TrimSuffix(rel, ".md")+".html"),
		FrontMatter: withTitle(doc),
		Content:     html.Render(doc.Content),
	}
	dst := filepath.Join(b.cfg.Output, filepath.FromSlash(p.Path))
	if err := write(dst, Fill(b.tmpl, b.cfg.SiteName, p)); err != nil {
		return nil, err
	}
	b.log.Debugw("rendered page", "src", src, "dst", dst, "blocks", len(doc.Content))
	return p, nil
}

// withTitle copies the document's front matter, taking the title from the
// first level 1 heading if the front matter has none.
func withTitle(doc *ast.Document) ast.FrontMatter {
	fm := make(ast.FrontMatter, len(doc.FrontMatter)+1)
	for k, v := range doc.FrontMatter {
		fm[k] = v
	}
	if _, ok := fm["title"]; ok {
		return fm
	}
	found := false
	ast.Walk(doc, func(n ast.Node) bool {
		if h, ok := n.(*ast.Heading); ok && !found && h.Level == 1 {
			fm["title"] = h.Value
			found = true
		}
		return !found
	})
	return fm
}

func write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}
