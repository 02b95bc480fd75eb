package lexer

import (
	"cvlint/internal/diag"
	"cvlint/internal/source"
	"cvlint/internal/token"
)

// Lexer produces tokens for the declarator subset. Comments and whitespace
// are skipped; there is no trivia tracking.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.cursor.Span(lx.cursor.Off),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '#':
		return lx.scanHashDefine()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Tokens scans the whole file and returns every significant token including
// the trailing EOF.
func (lx *Lexer) Tokens() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// skipTrivia consumes whitespace and comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Advance()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Advance()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Off
			lx.cursor.Advance()
			lx.cursor.Advance()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Advance()
					lx.cursor.Advance()
					closed = true
					break
				}
				lx.cursor.Advance()
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlockComment, lx.cursor.Span(start), "block comment is never closed")
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}
	text := lx.cursor.Text(start)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.Span(start),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Advance()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Advance()
		}
	}
	if isIdentStart(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Advance()
		}
		sp := lx.cursor.Span(start)
		lx.report(diag.LexBadNumber, sp, "identifier characters directly after a number")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
	}
	return token.Token{Kind: kind, Span: lx.cursor.Span(start), Text: lx.cursor.Text(start)}
}

// scanHashDefine recognizes the '#define' introducer. Any other directive
// is outside the subset and reported once.
func (lx *Lexer) scanHashDefine() token.Token {
	start := lx.cursor.Off
	lx.cursor.Advance() // '#'
	wordStart := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}
	word := lx.cursor.Text(wordStart)
	sp := lx.cursor.Span(start)
	if word != "define" {
		lx.report(diag.LexUnknownChar, sp, "unsupported preprocessor directive")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
	}
	return token.Token{Kind: token.HashDefine, Span: sp, Text: "#define"}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	next := lx.cursor.PeekAt(1)
	lx.cursor.Advance()

	twoByte := func(kind token.Kind) token.Token {
		lx.cursor.Advance()
		return token.Token{Kind: kind, Span: lx.cursor.Span(start), Text: lx.cursor.Text(start)}
	}
	oneByte := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Span: lx.cursor.Span(start), Text: lx.cursor.Text(start)}
	}

	switch ch {
	case ':':
		if next == ':' {
			return twoByte(token.ColonColon)
		}
		return oneByte(token.Colon)
	case '=':
		if next == '=' {
			return twoByte(token.EqEq)
		}
		return oneByte(token.Assign)
	case '!':
		if next == '=' {
			return twoByte(token.BangEq)
		}
	case '<':
		if next == '=' {
			return twoByte(token.LtEq)
		}
		return oneByte(token.Lt)
	case '>':
		if next == '=' {
			return twoByte(token.GtEq)
		}
		return oneByte(token.Gt)
	case '+':
		if next == '+' {
			return twoByte(token.PlusPlus)
		}
		return oneByte(token.Plus)
	case '-':
		if next == '-' {
			return twoByte(token.MinusMinus)
		}
		return oneByte(token.Minus)
	case '*':
		return oneByte(token.Star)
	case '&':
		return oneByte(token.Amp)
	case '/':
		return oneByte(token.Slash)
	case '%':
		return oneByte(token.Percent)
	case '?':
		return oneByte(token.Question)
	case ';':
		return oneByte(token.Semicolon)
	case ',':
		return oneByte(token.Comma)
	case '.':
		return oneByte(token.Dot)
	case '(':
		return oneByte(token.LParen)
	case ')':
		return oneByte(token.RParen)
	case '{':
		return oneByte(token.LBrace)
	case '}':
		return oneByte(token.RBrace)
	case '[':
		return oneByte(token.LBracket)
	case ']':
		return oneByte(token.RBracket)
	}

	sp := lx.cursor.Span(start)
	lx.report(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
