package corpus

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/CrestNiraj12/orgfeed/domain"
)

// MentionScheme prefixes link destinations that point at a participant's feed.
// A mention is written as [@nick](org-social:https://example.org/social.org).
const MentionScheme = "org-social:"

var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
		)
	})
	return markdownParserInstance
}

// Body is a post body turned into the structured form the TUI consumes.
type Body struct {
	Tokens   []domain.Token
	Blocks   []domain.Block
	Mentions []string
}

// Tokenize parses a markdown post body into tokens, block ranges and the
// identities it mentions. It is the only place that looks at raw body text.
func Tokenize(input string) Body {
	if strings.TrimSpace(input) == "" {
		return Body{}
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	tz := &tokenizer{source: source, open: -1}
	_ = ast.Walk(document, tz.walk)
	tz.closeBlock()
	trimTrailingBreaks(&tz.body)
	return tz.body
}

type listState struct {
	ordered bool
	counter int
}

type tokenizer struct {
	source []byte
	body   Body

	open       int // index into body.Blocks of the block being filled, -1 when none
	quoteDepth int
	lists      []listState
	bullet     string // pending list marker for the next block inside a list item
}

func (tz *tokenizer) emit(tok domain.Token) {
	tz.body.Tokens = append(tz.body.Tokens, tok)
}

func (tz *tokenizer) closeBlock() {
	if tz.open < 0 {
		return
	}
	b := &tz.body.Blocks[tz.open]
	b.End = len(tz.body.Tokens)
	if b.End == b.Start {
		tz.body.Blocks = tz.body.Blocks[:tz.open]
	}
	tz.open = -1
}

// startBlock closes the current block, separates it from the new one with
// break tokens and opens a block of the given kind.
func (tz *tokenizer) startBlock(kind domain.BlockKind, lang string) {
	var prev domain.BlockKind = -1
	if n := len(tz.body.Blocks); n > 0 {
		prev = tz.body.Blocks[n-1].Kind
	}
	if kind == domain.BlockParagraph {
		switch {
		case len(tz.lists) > 0:
			kind = domain.BlockList
		case tz.quoteDepth > 0:
			kind = domain.BlockQuote
		}
	}
	tz.closeBlock()
	if len(tz.body.Tokens) > 0 {
		tz.emit(domain.Break())
		if prev != domain.BlockList || kind != domain.BlockList {
			tz.emit(domain.Break())
		}
	}
	tz.body.Blocks = append(tz.body.Blocks, domain.Block{Kind: kind, Lang: lang, Start: len(tz.body.Tokens)})
	tz.open = len(tz.body.Blocks) - 1

	if len(tz.lists) > 0 && kind == domain.BlockList {
		if tz.bullet != "" {
			tz.emit(domain.Text(tz.bullet))
			tz.bullet = ""
		} else {
			tz.emit(domain.Text("  "))
		}
	}
}

func (tz *tokenizer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			tz.startBlock(domain.BlockParagraph, "")
		}

	case *ast.Heading:
		if entering {
			tz.startBlock(domain.BlockParagraph, "")
			tz.emit(domain.StyleOn(domain.StyleBold))
		} else {
			tz.emit(domain.StyleOff(domain.StyleBold))
		}

	case *ast.FencedCodeBlock:
		if entering {
			tz.codeLines(n.Lines(), string(n.Language(tz.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			tz.codeLines(n.Lines(), "")
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			tz.quoteDepth++
		} else {
			tz.quoteDepth--
		}

	case *ast.List:
		if entering {
			start := n.Start
			if start == 0 {
				start = 1
			}
			tz.lists = append(tz.lists, listState{ordered: n.IsOrdered(), counter: start})
		} else {
			tz.lists = tz.lists[:len(tz.lists)-1]
		}

	case *ast.ListItem:
		if entering && len(tz.lists) > 0 {
			top := &tz.lists[len(tz.lists)-1]
			indent := strings.Repeat("  ", len(tz.lists)-1)
			if top.ordered {
				tz.bullet = indent + strconv.Itoa(top.counter) + ". "
				top.counter++
			} else {
				tz.bullet = indent + "• "
			}
		}

	case *ast.ThematicBreak:
		if entering {
			tz.startBlock(domain.BlockParagraph, "")
			tz.emit(domain.Text("───"))
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			tz.emit(domain.Text(string(n.Segment.Value(tz.source))))
			switch {
			case n.HardLineBreak():
				tz.emit(domain.Break())
			case n.SoftLineBreak():
				tz.emit(domain.Text(" "))
			}
		}

	case *ast.String:
		if entering {
			tz.emit(domain.Text(string(n.Value)))
		}

	case *ast.Emphasis:
		attr := domain.StyleItalic
		if n.Level >= 2 {
			attr = domain.StyleBold
		}
		if entering {
			tz.emit(domain.StyleOn(attr))
		} else {
			tz.emit(domain.StyleOff(attr))
		}

	case *extast.Strikethrough:
		if entering {
			tz.emit(domain.StyleOn(domain.StyleStrikethrough))
		} else {
			tz.emit(domain.StyleOff(domain.StyleStrikethrough))
		}

	case *ast.CodeSpan:
		if entering {
			tz.emit(domain.StyleOn(domain.StyleCode))
			tz.emit(domain.Text(tz.plainText(n)))
			tz.emit(domain.StyleOff(domain.StyleCode))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if entering {
			tz.link(string(n.Destination), tz.plainText(n))
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			tz.link(string(n.URL(tz.source)), string(n.Label(tz.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		if entering {
			label := tz.plainText(n)
			if label == "" {
				label = "image"
			}
			tz.emit(domain.Link(string(n.Destination), "["+label+"]"))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (tz *tokenizer) link(dest, label string) {
	if rest, ok := strings.CutPrefix(dest, MentionScheme); ok {
		nick := strings.TrimPrefix(strings.TrimSpace(label), "@")
		feedURL := domain.NormalizeFeedURL(rest)
		tz.emit(domain.Mention(nick, feedURL))
		switch {
		case feedURL != "":
			tz.body.Mentions = append(tz.body.Mentions, feedURL)
		case nick != "":
			tz.body.Mentions = append(tz.body.Mentions, nick)
		}
		return
	}
	if label == dest {
		label = ""
	}
	tz.emit(domain.Link(dest, label))
}

func (tz *tokenizer) codeLines(lines *text.Segments, lang string) {
	tz.startBlock(domain.BlockCode, strings.TrimSpace(lang))
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(tz.source)), "\r\n")
		if i > 0 {
			tz.emit(domain.Break())
		}
		if line != "" {
			tz.emit(domain.Text(line))
		}
	}
}

// plainText concatenates the text of node's descendants.
func (tz *tokenizer) plainText(node ast.Node) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(tz.source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func trimTrailingBreaks(b *Body) {
	n := len(b.Tokens)
	for n > 0 && b.Tokens[n-1].Kind == domain.TokenBlockBoundary {
		n--
	}
	b.Tokens = b.Tokens[:n]
	for i := range b.Blocks {
		if b.Blocks[i].End > n {
			b.Blocks[i].End = n
		}
	}
}
