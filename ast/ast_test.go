package ast_test

import (
	"testing"

	"akhil.cc/harpdown/ast"
	"github.com/stretchr/testify/assert"
)

func TestWalk(t *testing.T) {
	doc := &ast.Document{Content: []ast.Block{
		&ast.Heading{Level: 1, Value: "h"},
		&ast.Paragraph{Value: []ast.Inline{ast.Text{Value: "a"}, ast.Bold{Value: "b"}}},
		&ast.Paragraph{Value: []ast.Inline{ast.Link{Href: "/", Text: "c"}}},
	}}
	var got []string
	ast.Walk(doc, func(n ast.Node) bool {
		switch t := n.(type) {
		case *ast.Document:
			got = append(got, "doc")
		case *ast.Heading:
			got = append(got, "h:"+t.Value)
		case *ast.Paragraph:
			got = append(got, "p")
			return len(got) < 4
		default:
			got = append(got, ast.Raw(t.(ast.Inline)))
		}
		return true
	})
	assert.Equal(t, []string{"doc", "h:h", "p", "a", "**b**", "p"}, got)
}

func TestRaw(t *testing.T) {
	assert.Equal(t, "plain", ast.Raw(ast.Text{Value: "plain"}))
	assert.Equal(t, "*i*", ast.Raw(ast.Italic{Value: "i"}))
	assert.Equal(t, "**b**", ast.Raw(ast.Bold{Value: "b"}))
	assert.Equal(t, "[t](h)", ast.Raw(ast.Link{Href: "h", Text: "t"}))
}
