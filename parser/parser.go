// Package parser is a hand-written recursive-descent parser over the
// token package's flat stream, producing the ast.Arena contract the
// semantic analyzer consumes. Per spec it is an external collaborator
// of the core: the core never imports this package, only ast.
//
// Structurally this follows the teacher's wat/internal/parser: a
// Parser struct holding the token slice and a cursor, peek/next/expect
// helpers, and one method per surface-grammar head. The source
// language's grammar is far smaller than WAT's (no $names, no
// multi-value blocks, no tables), so there is a single parseExpr
// dispatch instead of the teacher's many specialized clause parsers.
package parser

import (
	"fmt"
	"strconv"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/token"
	"github.com/sxwasm/sxc/valtype"
)

type Parser struct {
	arena  *ast.Arena
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, arena: &ast.Arena{}}
}

// Parse consumes the full token stream and returns the populated
// arena, or the first syntax error encountered.
func (p *Parser) Parse() (*ast.Arena, error) {
	for p.peek() != nil {
		h, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		p.arena.TopLevel = append(p.arena.TopLevel, h)
	}
	return p.arena, nil
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, fmt.Errorf("line %d: expected %v, got %q", t.Line, typ, t.Value)
	}
	return t, nil
}

func (p *Parser) expectAtom(want string) error {
	t, err := p.expect(token.Atom)
	if err != nil {
		return err
	}
	if t.Value != want {
		return fmt.Errorf("line %d: expected %q, got %q", t.Line, want, t.Value)
	}
	return nil
}

func (p *Parser) parseValType() (valtype.ValType, error) {
	t, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	vt, ok := valtype.Lookup(t.Value)
	if !ok {
		return 0, fmt.Errorf("line %d: unknown value type %q", t.Line, t.Value)
	}
	return vt, nil
}

// parseTopLevel dispatches on the head of a top-level parenthesized
// form: fn, export, or import.
func (p *Parser) parseTopLevel() (ast.Handle, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return 0, err
	}
	head, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	switch head.Value {
	case "fn":
		return p.parseFn()
	case "export":
		return p.parseExport()
	case "import":
		return p.parseImport()
	default:
		return 0, fmt.Errorf("line %d: unexpected top-level form %q", head.Line, head.Value)
	}
}

// parseParams parses a parenthesized, possibly-empty list of (name
// type) pairs: "( (a i32) (b i32) )" or "()".
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for {
		t := p.peek()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input in parameter list")
		}
		if t.Type == token.RParen {
			p.next()
			return params, nil
		}
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.Atom)
		if err != nil {
			return nil, err
		}
		vt, err := p.parseValType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Value, Type: vt})
	}
}

// optionalRetType consumes a bare value-type atom if one is present
// before the body/closing-paren begins. One token of lookahead decides
// "return type" versus "first body expression": a bare atom spelled
// like a type name is always taken as the return type. This parser does
// not reject type names as parameter or local names, so a body whose
// first expression is such a name is misread as a return type.
func (p *Parser) optionalRetType() (valtype.ValType, bool, error) {
	t := p.peek()
	if t == nil || t.Type != token.Atom {
		return 0, false, nil
	}
	if vt, ok := valtype.Lookup(t.Value); ok {
		p.next()
		return vt, true, nil
	}
	return 0, false, nil
}

func (p *Parser) parseFn() (ast.Handle, error) {
	nameTok, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	params, err := p.parseParams()
	if err != nil {
		return 0, err
	}
	retType, hasRet, err := p.optionalRetType()
	if err != nil {
		return 0, err
	}
	var body []ast.Handle
	for {
		t := p.peek()
		if t == nil {
			return 0, fmt.Errorf("unexpected end of input in function %q", nameTok.Value)
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		h, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		body = append(body, h)
	}
	return p.arena.Add(ast.Node{
		Kind:     ast.KindFuncDef,
		Name:     nameTok.Value,
		Params:   params,
		RetType:  retType,
		HasRet:   hasRet,
		Children: body,
	}), nil
}

func (p *Parser) parseExport() (ast.Handle, error) {
	nameTok, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{Kind: ast.KindExport, Name: nameTok.Value}), nil
}

func (p *Parser) parseImport() (ast.Handle, error) {
	modTok, err := p.expect(token.String)
	if err != nil {
		return 0, err
	}
	fieldTok, err := p.expect(token.String)
	if err != nil {
		return 0, err
	}
	nameTok, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	params, err := p.parseParams()
	if err != nil {
		return 0, err
	}
	retType, hasRet, err := p.optionalRetType()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{
		Kind:       ast.KindImportFunc,
		Name:       nameTok.Value,
		ModuleName: modTok.Value,
		FieldName:  fieldTok.Value,
		Params:     params,
		RetType:    retType,
		HasRet:     hasRet,
	}), nil
}

// parseNumber classifies an atom as an integer or float literal per
// spec §6: floats contain '.', integers are decimal or 0x-hex, and a
// leading '-' followed by a digit introduces a negative literal.
func parseNumber(s string) (ast.Node, bool, error) {
	if len(s) == 0 {
		return ast.Node{}, false, nil
	}
	first := s[0]
	isNumeric := isDigit(first) || (first == '-' && len(s) > 1 && isDigit(s[1]))
	if !isNumeric {
		return ast.Node{}, false, nil
	}
	if containsDot(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ast.Node{}, true, fmt.Errorf("invalid float literal %q: %w", s, err)
		}
		return ast.Node{Kind: ast.KindFloatLit, FloatVal: f}, true, nil
	}
	digits, neg := s, first == '-'
	if neg {
		digits = digits[1:]
	}
	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base, digits = 16, digits[2:]
	}
	if neg {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return ast.Node{}, true, fmt.Errorf("invalid integer literal %q: %w", s, err)
	}
	return ast.Node{Kind: ast.KindIntLit, IntVal: v}, true, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

var binOps = map[string]ast.BinOp{
	"+":   ast.OpAdd,
	"-":   ast.OpSub,
	"*":   ast.OpMul,
	"/":   ast.OpDivS,
	"%":   ast.OpRemS,
	"==":  ast.OpEq,
	"!=":  ast.OpNe,
	"<":   ast.OpLtS,
	">":   ast.OpGtS,
	"<=":  ast.OpLeS,
	">=":  ast.OpGeS,
	"and": ast.OpAnd,
	"or":  ast.OpOr,
	"xor": ast.OpXor,
	"shl": ast.OpShl,
	"shr": ast.OpShrS,
}

// parseExpr parses one expression: a bare atom (literal or
// identifier) or a parenthesized form dispatched by head.
func (p *Parser) parseExpr() (ast.Handle, error) {
	t := p.peek()
	if t == nil {
		return 0, fmt.Errorf("unexpected end of input in expression")
	}

	if t.Type == token.Atom {
		p.next()
		if n, ok, err := parseNumber(t.Value); err != nil {
			return 0, err
		} else if ok {
			return p.arena.Add(n), nil
		}
		return p.arena.Add(ast.Node{Kind: ast.KindIdent, Name: t.Value}), nil
	}

	if _, err := p.expect(token.LParen); err != nil {
		return 0, err
	}
	head, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}

	if op, ok := binOps[head.Value]; ok {
		left, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return 0, err
		}
		return p.arena.Add(ast.Node{Kind: ast.KindBinary, Op: op, Left: left, Right: right}), nil
	}

	switch head.Value {
	case "if":
		return p.parseIf()
	case "block":
		return p.parseBlock()
	case "var":
		return p.parseVar()
	case "set":
		return p.parseSet()
	case "while":
		return p.parseWhile()
	case "load":
		return p.parseLoad()
	case "store":
		return p.parseStore()
	default:
		return p.parseCall(head.Value)
	}
}

func (p *Parser) parseIf() (ast.Handle, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	n := ast.Node{Kind: ast.KindIf, Cond: cond, Then: then}
	t := p.peek()
	if t != nil && t.Type != token.RParen {
		elseH, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		n.Else = elseH
		n.HasElse = true
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(n), nil
}

func (p *Parser) parseBlock() (ast.Handle, error) {
	var children []ast.Handle
	for {
		t := p.peek()
		if t == nil {
			return 0, fmt.Errorf("unexpected end of input in block")
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		h, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		children = append(children, h)
	}
	return p.arena.Add(ast.Node{Kind: ast.KindBlock, Children: children}), nil
}

func (p *Parser) parseVar() (ast.Handle, error) {
	nameTok, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	vt, err := p.parseValType()
	if err != nil {
		return 0, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: nameTok.Value, DeclType: vt, Init: init}), nil
}

func (p *Parser) parseSet() (ast.Handle, error) {
	nameTok, err := p.expect(token.Atom)
	if err != nil {
		return 0, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{Kind: ast.KindLocalSet, Name: nameTok.Value, Init: expr}), nil
}

func (p *Parser) parseWhile() (ast.Handle, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	var body []ast.Handle
	for {
		t := p.peek()
		if t == nil {
			return 0, fmt.Errorf("unexpected end of input in while")
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		h, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		body = append(body, h)
	}
	return p.arena.Add(ast.Node{Kind: ast.KindWhile, Cond: cond, Children: body}), nil
}

func (p *Parser) parseLoad() (ast.Handle, error) {
	vt, err := p.parseValType()
	if err != nil {
		return 0, err
	}
	addr, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{Kind: ast.KindLoad, MemType: vt, Addr: addr}), nil
}

func (p *Parser) parseStore() (ast.Handle, error) {
	vt, err := p.parseValType()
	if err != nil {
		return 0, err
	}
	addr, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return p.arena.Add(ast.Node{Kind: ast.KindStore, MemType: vt, Addr: addr, Value: val}), nil
}

func (p *Parser) parseCall(callee string) (ast.Handle, error) {
	var args []ast.Handle
	for {
		t := p.peek()
		if t == nil {
			return 0, fmt.Errorf("unexpected end of input in call to %q", callee)
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		h, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		args = append(args, h)
	}
	return p.arena.Add(ast.Node{Kind: ast.KindCall, Name: callee, Args: args}), nil
}
