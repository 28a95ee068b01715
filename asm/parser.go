package asm

import "c8/diag"

// parseError is a single parser failure: the offending token plus the span
// of the related tokens that preceded it.
type parseError struct {
	token        Token
	previousSpan *diag.Span
	message      string
}

func (e *parseError) Error() string {
	return e.message
}

// report emits the error over the union of the related spans.
func (e *parseError) report(d *diag.Diagnostics) {
	span := e.token.Span
	if e.previousSpan != nil {
		span = e.previousSpan.Union(span)
	}

	d.Error(span, e.message)
}

// parser is a recursive descent parser over the scanned token stream.
type parser struct {
	tokens     []Token
	current    int
	statements []Stmt
}

// Parse turns a token stream into a statement list. Parse errors are
// reported through d; the parser synchronizes to the next statement and
// keeps going so that one run surfaces every error.
func Parse(tokens []Token, d *diag.Diagnostics) []Stmt {
	p := &parser{tokens: tokens}

	for !p.atEnd() {
		if stmt, err := p.parseStatement(); err != nil {
			err.report(d)
			p.synchronize()
		} else {
			p.statements = append(p.statements, stmt)
		}
	}

	return p.statements
}

func (p *parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

// peek returns the token being considered, or false at the end.
func (p *parser) peek() (Token, bool) {
	if p.atEnd() {
		return Token{}, false
	}

	return p.tokens[p.current], true
}

// advance consumes and returns the next token. At the end of the stream it
// keeps returning the final token.
func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}

	return p.tokens[p.current-1]
}

// stepBack reverses one advance, used by the reg-or-byte rewind.
func (p *parser) stepBack() {
	p.current--
}

// synchronize skips tokens until one that can legally begin a statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		switch p.tokens[p.current].Kind {
		case TokenIdentifier, TokenInstructionName, TokenDefine,
			TokenDefineBytes, TokenDefineWords, TokenText, TokenInclude:
			return
		}

		p.advance()
	}
}

// statement := aliasDefinition | rawDataDefinition | label | instruction | include
func (p *parser) parseStatement() (Stmt, *parseError) {
	token, _ := p.peek()

	switch token.Kind {
	case TokenDefine:
		return p.parseAliasDefinition()
	case TokenDefineBytes, TokenDefineWords, TokenText:
		return p.parseRawDataDefinition()
	case TokenIdentifier:
		return p.parseLabel()
	case TokenInstructionName:
		return p.parseInstruction()
	case TokenInclude:
		return p.parseInclude()
	}

	return Stmt{}, &parseError{token: token, message: "Invalid start of statement"}
}

// aliasDefinition := "define" IDENTIFIER (NUMBER | REGISTER)
func (p *parser) parseAliasDefinition() (Stmt, *parseError) {
	define := p.advance()

	ident := p.advance()
	if ident.Kind != TokenIdentifier {
		return Stmt{}, &parseError{
			token:        ident,
			previousSpan: &define.Span,
			message:      "`define` keyword must be followed by an identifier",
		}
	}

	prevSpan := define.Span.Union(ident.Span)

	value := p.advance()
	switch value.Kind {
	case TokenNumericLiteral:
		return Stmt{
			Kind:  StmtAliasDefinition,
			Span:  prevSpan.Union(value.Span),
			Name:  ident.Text,
			Alias: AliasableThing{Kind: AliasRawData, Data: value.Num},
		}, nil
	case TokenGeneralRegisterName:
		return Stmt{
			Kind:  StmtAliasDefinition,
			Span:  prevSpan.Union(value.Span),
			Name:  ident.Text,
			Alias: AliasableThing{Kind: AliasRegister, Reg: value.Reg},
		}, nil
	}

	return Stmt{}, &parseError{
		token:        value,
		previousSpan: &prevSpan,
		message:      "Can only create aliases for raw data or general registers",
	}
}

// rawDataDefinition := "db" NUMBER* | "dw" NUMBER* | "text" STRING
func (p *parser) parseRawDataDefinition() (Stmt, *parseError) {
	decl := p.advance()
	span := decl.Span

	var data []byte

	switch decl.Kind {
	case TokenDefineBytes:
		for {
			next, ok := p.peek()
			if !ok || next.Kind != TokenNumericLiteral {
				break
			}

			token := p.advance()
			if token.Num > 0xFF {
				return Stmt{}, &parseError{
					token:   token,
					message: "Number in byte definition must only be 8 bit",
				}
			}

			span = span.Union(token.Span)
			data = append(data, byte(token.Num))
		}
	case TokenDefineWords:
		for {
			next, ok := p.peek()
			if !ok || next.Kind != TokenNumericLiteral {
				break
			}

			token := p.advance()
			span = span.Union(token.Span)

			// words are emitted big-endian
			data = append(data, byte(token.Num>>8), byte(token.Num))
		}
	case TokenText:
		token := p.advance()
		if token.Kind != TokenStringLiteral {
			return Stmt{}, &parseError{
				token:        token,
				previousSpan: &decl.Span,
				message:      "Expected string literal after text data definition",
			}
		}

		span = span.Union(token.Span)
		data = append(data, token.Text...)
	}

	return Stmt{Kind: StmtRawData, Span: span, Data: data}, nil
}

// include := "include" STRING
func (p *parser) parseInclude() (Stmt, *parseError) {
	include := p.advance()

	token := p.advance()
	if token.Kind != TokenStringLiteral {
		return Stmt{}, &parseError{
			token:        token,
			previousSpan: &include.Span,
			message:      "`include` must be followed with a string literal",
		}
	}

	return Stmt{
		Kind: StmtInclude,
		Span: include.Span.Union(token.Span),
		Name: token.Text,
	}, nil
}

// label := IDENTIFIER ":"
func (p *parser) parseLabel() (Stmt, *parseError) {
	ident := p.advance()

	colon := p.advance()
	if colon.Kind != TokenColon {
		return Stmt{}, &parseError{
			token:        colon,
			previousSpan: &ident.Span,
			message:      "Label must be followed by `:`",
		}
	}

	return Stmt{
		Kind: StmtLabel,
		Span: ident.Span.Union(colon.Span),
		Name: ident.Text,
	}, nil
}
