// Package parser is the recursive-descent parser external collaborator: it
// turns the scanner's Token stream into the Expr/Stmt trees fixed by spec
// §3. Grounded on the teacher's internal/parser recursive-descent structure
// (a cursor over tokens, one method per grammar production, panic/recover
// for statement-boundary error synchronization).
package parser

import (
	"github.com/yuhlearn/goslox/internal/ast"
	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/token"
)

// parseError unwinds out of the current statement/declaration so the parser
// can resynchronize; it is never allowed to escape Parse itself.
type parseError struct{}

// Parser consumes a token slice and produces a program (slice of Stmt).
type Parser struct {
	tokens  []token.Token
	current int
	sink    *diag.Sink
}

// New creates a Parser over tokens, reporting syntax errors to sink.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse parses the whole token stream into a program: a list of top-level
// declarations/statements. Parse errors are reported to the sink and the
// parser resynchronizes at the next statement boundary rather than
// aborting, so a single file can surface more than one syntax error.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) safeDeclaration() (stmt ast.Stmt, ok bool) {
	start := p.current
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); isParseErr {
				// An error raised at the keyword opening the next statement
				// already leaves the cursor on a boundary; keep that keyword
				// (only once tokens were consumed, so parsing still advances).
				if p.current > start {
					switch p.peek().Kind {
					case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
						stmt, ok = nil, false
						return
					}
				}
				p.synchronize()
				stmt, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.declaration(), true
}

// ---- Declarations & statements ----------------------------------------

func (p *Parser) declaration() ast.Stmt {
	if p.check(token.VAR) {
		p.advance()
		return p.varDeclaration()
	}
	if p.check(token.FUN) {
		p.advance()
		return p.function("function")
	}
	return p.statement()
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return ast.NewVar(name, init)
}

func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return ast.NewFunction(name, params, body)
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		pos := p.previous().Pos
		return ast.NewBlock(pos, p.block())
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	pos := p.previous().Pos
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return ast.NewPrint(pos, value)
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return ast.NewReturn(keyword, value)
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	pos := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return ast.NewIf(pos, cond, then, els)
}

func (p *Parser) whileStatement() ast.Stmt {
	pos := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return ast.NewWhile(pos, cond, body)
}

// forStatement desugars the classic C-style for loop into a while loop
// wrapped in a block, matching the teacher's preference for reusing
// existing AST shapes instead of adding a dedicated For node.
func (p *Parser) forStatement() ast.Stmt {
	pos := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.check(token.VAR):
		p.advance()
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var step ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		step = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if step != nil {
		body = ast.NewBlock(pos, []ast.Stmt{body, ast.NewExpressionStmt(step)})
	}

	if cond == nil {
		cond = ast.NewLiteral(pos, ast.LitBool, true)
	}
	body = ast.NewWhile(pos, cond, body)

	if init != nil {
		body = ast.NewBlock(pos, []ast.Stmt{init, body})
	}

	return body
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return ast.NewExpressionStmt(expr)
}

// ---- Expressions --------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(*ast.Variable); ok {
			return ast.NewAssign(variable.Name, value)
		}
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(op, right)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return ast.NewCall(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.NIL):
		return ast.NewLiteral(p.previous().Pos, ast.LitNil, nil)
	case p.check(token.BOOLEAN):
		tok := p.advance()
		return ast.NewLiteral(tok.Pos, ast.LitBool, tok.Literal.Bool)
	case p.check(token.NUMBER):
		tok := p.advance()
		return ast.NewLiteral(tok.Pos, ast.LitNumber, tok.Literal.Num)
	case p.check(token.STRING):
		tok := p.advance()
		return ast.NewLiteral(tok.Pos, ast.LitString, tok.Literal.Str)
	case p.match(token.THIS):
		return ast.NewThis(p.previous())
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return ast.NewSuper(keyword, method)
	case p.check(token.IDENTIFIER):
		return ast.NewVariable(p.advance())
	case p.match(token.LEFT_PAREN):
		pos := p.previous().Pos
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return ast.NewGrouping(pos, expr)
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}

// ---- Token cursor helpers ------------------------------------------------

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Kind == token.ENDOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), msg))
}

// errorAt reports a syntax error to the sink and returns the sentinel used
// to unwind to the nearest statement boundary.
func (p *Parser) errorAt(tok token.Token, msg string) parseError {
	p.sink.ErrorAt(tok, msg)
	return parseError{}
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so one syntax error doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
