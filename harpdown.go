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

// This CLI utility converts harpdown source files into HTML, either one
// file at a time or as a whole static site.
//
// Usage:
//
//	harpdown [command]
//
// Available Commands:
//
//	build       Build a static site from a directory of harpdown source files
//	help        Help about any command
//	html        HTML output generator for a harpdown source file
//
// Flags:
//
//	-h, --help   help for harpdown
//
// Use "harpdown [command] --help" for more information about a command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"akhil.cc/harpdown/ast"
	"akhil.cc/harpdown/gen/html"
	"akhil.cc/harpdown/parser"
	"akhil.cc/harpdown/site"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func prefix(msg string, err error) error {
	return errors.WithMessage(err, msg)
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "harpdown",
		Short: "HTML generation for harpdown source files",
		Long: `This CLI utility converts harpdown source files into HTML, either one
file at a time or as a whole static site.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(htmlCmd(), buildCmd())
	return rootCmd
}

// withTimeout derives a context that expires after timeout, unless timeout is negative.
func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > -1 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func flagErrors(cmd *cobra.Command, tag string) {
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(tag, err)
		}
		return nil
	})
}

func htmlCmd() *cobra.Command {
	var (
		outputfile  string
		timeout     time.Duration
		frontMatter bool
	)
	const tag = "(HTML)"
	htmlCmd := &cobra.Command{
		Use:   "html [input] [-o output]",
		Short: "HTML output generator for a harpdown source file",
		Long: `This command parses a harpdown source file and converts its headings
and paragraphs into an HTML fragment, one block per line. Text is not
escaped. Front matter is stripped from the output.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.ReadCloser = os.Stdin
			var err error
			if len(args) != 0 {
				src, err = os.Open(args[0])
				if err != nil {
					return prefix(tag, err)
				}
			}
			defer src.Close()
			out := cmd.OutOrStdout()
			var f io.WriteCloser
			if len(outputfile) != 0 {
				f, err = createOutput(outputfile)
				if err != nil {
					return prefix(tag, err)
				}
				defer f.Close()
				out = f
			}
			doc, err := parser.Parse(src)
			if err != nil {
				return prefix(tag, err)
			}
			if frontMatter {
				printFrontMatter(cmd.ErrOrStderr(), doc.FrontMatter)
			}
			ctx, cancel := withTimeout(timeout)
			defer cancel()
			g := html.GenContext(ctx, doc)
			g.Stdout = out
			if err := g.Run(); err != nil {
				return prefix(tag, err)
			}
			if f != nil {
				// written data may only be flushed on close
				if err := f.Close(); err != nil {
					return prefix(tag, err)
				}
			}
			return nil
		},
	}
	flagErrors(htmlCmd, tag)
	// pflag includes the argument type when it unquotes its usage.
	// To prevent this behavior we prefix the usage with backquotes ``.
	htmlCmd.Flags().StringVarP(&outputfile, "output", "o", "", "``name of the output file")
	htmlCmd.Flags().DurationVarP(&timeout, "timeout", "t", -1, "``timeout used to halt the generator")
	htmlCmd.Flags().BoolVar(&frontMatter, "front-matter", false, "print the front matter to standard error")
	// Set string version of default value to be zero-value to prevent it from being printed by FlagUsages.
	htmlCmd.Flags().Lookup("timeout").DefValue = "0"
	return htmlCmd
}

// createOutput opens the -o file of the html command.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func printFrontMatter(w io.Writer, fm ast.FrontMatter) {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, fm[k])
	}
}

func buildCmd() *cobra.Command {
	var (
		cfg     site.Config
		timeout time.Duration
		verbose bool
	)
	const tag = "(BUILD)"
	buildCmd := &cobra.Command{
		Use:   "build [-s source] [-o output]",
		Short: "Build a static site from a directory of harpdown source files",
		Long: `This command renders every .md file below the source directory into
the page template and writes it below the output directory with an .html
extension. Template placeholders of the form {{key}} are replaced by the
page's front matter; {{content}} receives the rendered page.

Pages below blog/ are listed, newest first, in the output's index.html.
An after-build command, split by the Bourne shell's word-splitting rules,
is run in the output directory once the site is written.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return prefix(tag, err)
			}
			defer log.Sync()
			cfg.Logger = log
			cfg.Stdout = cmd.OutOrStdout()
			cfg.Stderr = cmd.ErrOrStderr()
			ctx, cancel := withTimeout(timeout)
			defer cancel()
			if _, err := site.Build(ctx, cfg); err != nil {
				return prefix(tag, err)
			}
			return nil
		},
	}
	flagErrors(buildCmd, tag)
	f := buildCmd.Flags()
	f.StringVarP(&cfg.Source, "source", "s", "content", "``directory of harpdown source files")
	f.StringVarP(&cfg.Output, "output", "o", "public", "``directory the site is written to")
	f.StringVar(&cfg.Template, "template", "", "``page template (default source/"+site.TemplateName+")")
	f.StringVar(&cfg.SiteName, "site-name", "1001harps dot com", "``site name used in page titles")
	f.IntVarP(&cfg.Jobs, "jobs", "j", 0, "``number of pages rendered in parallel (default number of CPUs)")
	f.StringVar(&cfg.AfterBuild, "after", "", "``command run in the output directory after the build")
	f.DurationVarP(&timeout, "timeout", "t", -1, "``timeout used to halt the build")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every rendered page")
	f.Lookup("timeout").DefValue = "0"
	return buildCmd
}

// newLogger returns a development logger when verbose, a production logger otherwise.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		z   *zap.Logger
		err error
	)
	if verbose {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
