package domain

// TokenKind is the structural type of a token in a post body.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenStyle
	TokenLink
	TokenMention
	TokenBlockBoundary
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenStyle:
		return "style"
	case TokenLink:
		return "link"
	case TokenMention:
		return "mention"
	case TokenBlockBoundary:
		return "block"
	default:
		return "unknown"
	}
}

// StyleAttr is one inline emphasis attribute.
type StyleAttr int

const (
	StyleBold StyleAttr = iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleCode
	StyleAttrCount
)

// Token is the smallest structurally typed unit of a post body.
//
// Text runs use Text. Style markers use Style and Open (true opens the
// attribute, false closes it). Links carry URL and an optional Text label.
// Mentions carry the mentioned Nick and, when known, its feed URL.
type Token struct {
	Kind  TokenKind
	Text  string
	Style StyleAttr
	Open  bool
	URL   string
	Nick  string
}

// DisplayText returns what the token shows on screen.
func (t Token) DisplayText() string {
	switch t.Kind {
	case TokenLink:
		if t.Text != "" {
			return t.Text
		}
		return t.URL
	case TokenMention:
		name := t.Nick
		if name == "" {
			name = t.Text
		}
		if name == "" {
			return ""
		}
		if name[0] == '@' {
			return name
		}
		return "@" + name
	default:
		return t.Text
	}
}

// Text builds a text-run token.
func Text(s string) Token { return Token{Kind: TokenText, Text: s} }

// StyleOn builds an opening style marker.
func StyleOn(a StyleAttr) Token { return Token{Kind: TokenStyle, Style: a, Open: true} }

// StyleOff builds a closing style marker.
func StyleOff(a StyleAttr) Token { return Token{Kind: TokenStyle, Style: a} }

// Link builds a link token. label may be empty.
func Link(url, label string) Token { return Token{Kind: TokenLink, URL: url, Text: label} }

// Mention builds a mention token. feedURL may be empty when only the nick is known.
func Mention(nick, feedURL string) Token { return Token{Kind: TokenMention, Nick: nick, URL: feedURL} }

// Break builds a block-boundary token.
func Break() Token { return Token{Kind: TokenBlockBoundary} }

// BlockKind classifies a group of tokens.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockCode
	BlockQuote
	BlockList
)

// Block groups the half-open token range [Start, End) of a post.
type Block struct {
	Kind  BlockKind
	Lang  string // source language for code blocks
	Start int
	End   int
}
