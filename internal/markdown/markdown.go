// Package markdown flattens the narrative and notes fields of an invoice,
// which users write as light Markdown, into blocks the PDF sections can
// lay out: paragraphs, headings and bullets.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Kind classifies a Block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Bullet
)

// Block is one laid-out unit of text.
type Block struct {
	Kind   Kind
	Text   string
	Level  int    // heading level, or list nesting depth starting at 0
	Marker string // bullet glyph or "n." for ordered lists
}

// BulletMarker prefixes unordered list items.
const BulletMarker = "•"

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
)

// Parse converts src into blocks in document order. Blank input yields no
// blocks. Code blocks become paragraphs with their line breaks kept; raw
// HTML and thematic breaks are dropped.
func Parse(src string) []Block {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var out []Block
	walkBlocks(doc, source, 0, &out)
	return out
}

// PlainText joins the blocks back into newline separated text.
func PlainText(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind == Bullet {
			lines = append(lines, b.Marker+" "+b.Text)
			continue
		}
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n")
}

func walkBlocks(n ast.Node, src []byte, depth int, out *[]Block) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Heading:
			appendBlock(out, Block{Kind: Heading, Text: inlineText(node, src), Level: node.Level})
		case *ast.Paragraph, *ast.TextBlock:
			appendBlock(out, Block{Kind: Paragraph, Text: inlineText(node, src)})
		case *ast.List:
			walkList(node, src, depth, out)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			appendBlock(out, Block{Kind: Paragraph, Text: codeText(node, src)})
		case *ast.Blockquote:
			walkBlocks(node, src, depth, out)
		}
	}
}

func walkList(list *ast.List, src []byte, depth int, out *[]Block) {
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := BulletMarker
		if list.IsOrdered() {
			marker = strconv.Itoa(number) + "."
			number++
		}

		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if t := inlineText(node, src); t != "" {
					parts = append(parts, t)
				}
			}
		}
		appendBlock(out, Block{Kind: Bullet, Text: strings.Join(parts, " "), Level: depth, Marker: marker})

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				walkList(nested, src, depth+1, out)
			}
		}
	}
}

func appendBlock(out *[]Block, b Block) {
	if b.Text == "" {
		return
	}
	*out = append(*out, b)
}

// inlineText concatenates the text segments under n. Soft line breaks
// become spaces and hard line breaks newlines.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			switch {
			case t.HardLineBreak():
				b.WriteByte('\n')
			case t.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func codeText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
