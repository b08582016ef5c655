package ast

//go:generate sumgen Node = *Document | *Heading | *Paragraph | Text | Link | Bold | Italic
type Node interface {
	node()
}

//go:generate sumgen Block = *Heading | *Paragraph
type Block interface {
	Node
	block()
}

//go:generate sumgen Inline = Text | Link | Bold | Italic
type Inline interface {
	Node
	inline()
}

// FrontMatter holds the key: value pairs of a document's leading --- block.
type FrontMatter map[string]string

type Document struct {
	FrontMatter FrontMatter
	Content     []Block
}

// Heading is not inline-parsed; Value is the trimmed text after the # run.
type Heading struct {
	Level int
	Value string
}

type Paragraph struct {
	Value []Inline
}

type Text struct {
	Value string
}

type Link struct {
	Href string
	Text string
}

type Bold struct {
	Value string
}

type Italic struct {
	Value string
}

func (*Document) node()  {}
func (*Heading) node()   {}
func (*Paragraph) node() {}
func (Text) node()       {}
func (Link) node()       {}
func (Bold) node()       {}
func (Italic) node()     {}

func (*Heading) block()   {}
func (*Paragraph) block() {}

func (Text) inline()   {}
func (Link) inline()   {}
func (Bold) inline()   {}
func (Italic) inline() {}

// Raw returns the source text an inline node was parsed from,
// delimiters included.
func Raw(n Inline) string {
	switch t := n.(type) {
	case Text:
		return t.Value
	case Bold:
		return "**" + t.Value + "**"
	case Italic:
		return "*" + t.Value + "*"
	case Link:
		return "[" + t.Text + "](" + t.Href + ")"
	}
	return ""
}

// Walk traverses n in depth-first order, calling f for n and then for each
// of its children. If f returns false, the children of that node are skipped.
func Walk(n Node, f Walker) {
	if n == nil || !f(n) {
		return
	}
	switch t := n.(type) {
	case *Document:
		for _, b := range t.Content {
			Walk(b, f)
		}
	case *Paragraph:
		for _, in := range t.Value {
			Walk(in, f)
		}
	}
}

type Walker func(Node) bool
