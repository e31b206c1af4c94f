package internal

import (
	"github.com/rs/zerolog"
)

// ruleKey enumerates the small, compile-time-fixed set of rules the
// leftpoline grow-seed loop memoizes. spec.md §4.2/§9 insist on a fixed
// 3-slot array keyed by this enumeration rather than any runtime hashing.
type ruleKey uint8

const (
	keyExpr ruleKey = iota
	keyExprList
	keyDefault // reserved slot; no rule currently memoizes under it
)

type memoEntry struct {
	valid bool
	node  NodeId
	pos   int // input position immediately after this memoized parse
}

// arenaSnapshot captures the lengths of the token and node arenas so a
// failed attempt can roll back without disturbing earlier, already-
// committed growth. The value arena is deliberately excluded: spec.md
// §4.2 tolerates unreferenced stray values surviving a rollback.
type arenaSnapshot struct {
	tokLen  int
	nodeLen int
}

// snapshot additionally captures input position, used by select-style
// ordered choice between grammar alternatives.
type snapshot struct {
	pos   int
	arena arenaSnapshot
}

// Parser is a scannerless, packrat-style recursive-descent parser over a
// rune buffer (spec.md §4.2). One Parser is built, used for exactly one
// parse, and discarded; its three arenas (tokens, nodes, values) form the
// AST with no references outside themselves (spec.md §3 invariant I1).
type Parser struct {
	input []rune
	pos   int

	// furthest is the deepest position any match attempt reached,
	// survives rollback, and backs the Parse{pos} error report even
	// though a failed top-level parse otherwise resets pos to 0.
	furthest int

	tokens []Token
	nodes  []Node
	values []Value

	memo [3]memoEntry

	log zerolog.Logger
}

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithParserLogger injects a logger; the default is zerolog.Nop().
func WithParserLogger(l zerolog.Logger) ParserOption {
	return func(p *Parser) { p.log = l }
}

// NewParser allocates a parser over formula text. Node 0 is always the
// reserved Zero sentinel (spec.md §4.4 "Zero ... reserved"); every Index/
// Addr built from a scalar subscript points its implicit row/col at this
// node (see the spec.md §8 boundary example: "[1] yields col=NodeId(1),
// row=NodeId(0)").
func NewParser(formula string, opts ...ParserOption) *Parser {
	p := &Parser{input: []rune(formula), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	p.pushNode(Node{Kind: NodeZero})
	return p
}

const zeroNodeID NodeId = 0

// Parse runs the expr grammar over the full input, requiring (in the
// common case) full consumption of the buffer (spec.md §8).
func (p *Parser) Parse() (NodeId, bool) {
	p.maybeWs()
	n, ok := p.parseExpr()
	if !ok {
		return noID, false
	}
	p.maybeWs()
	if p.pos != len(p.input) {
		p.log.Debug().Int("pos", p.pos).Int("len", len(p.input)).Msg("parse left unconsumed input")
		return noID, false
	}
	return n, true
}

// Scan returns the raw text of every token recorded along the winning
// parse path, for debugging (spec.md §4.2 "Tokens").
func (p *Parser) Scan() []string {
	out := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		out[i] = t.text(p.input)
	}
	return out
}

// GetNode and GetValue satisfy the evaluator Context obligations that the
// parser arena supplies (spec.md §4.4).
func (p *Parser) GetNode(id NodeId) Node   { return p.nodes[id] }
func (p *Parser) GetValue(id ValueId) Value { return p.values[id] }

// --- arena bookkeeping ---

func (p *Parser) save() snapshot {
	return snapshot{pos: p.pos, arena: p.snapshotArena()}
}

func (p *Parser) rollback(s snapshot) {
	p.pos = s.pos
	p.truncateArena(s.arena)
}

func (p *Parser) snapshotArena() arenaSnapshot {
	return arenaSnapshot{tokLen: len(p.tokens), nodeLen: len(p.nodes)}
}

func (p *Parser) truncateArena(s arenaSnapshot) {
	p.tokens = p.tokens[:s.tokLen]
	p.nodes = p.nodes[:s.nodeLen]
}

func (p *Parser) pushToken(kind TokenKind, start, length int) {
	p.tokens = append(p.tokens, Token{Kind: kind, Start: start, Len: length})
}

func (p *Parser) pushValue(v Value) ValueId {
	p.values = append(p.values, v)
	return ValueId(len(p.values) - 1)
}

func (p *Parser) pushNode(n Node) NodeId {
	p.nodes = append(p.nodes, n)
	return NodeId(len(p.nodes) - 1)
}

func (p *Parser) pushLeaf(v Value) NodeId {
	return p.pushNode(Node{Kind: NodeLeaf, Value: p.pushValue(v)})
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.furthest {
		p.furthest = p.pos
	}
}

// --- primitives: char, class, string recognisers (spec.md §4.2) ---

func (p *Parser) eof() bool { return p.pos >= len(p.input) }

func (p *Parser) matchChar(c rune) bool {
	if !p.eof() && p.input[p.pos] == c {
		p.advance(1)
		return true
	}
	return false
}

func (p *Parser) matchClass(pred func(rune) bool) bool {
	if !p.eof() && pred(p.input[p.pos]) {
		p.advance(1)
		return true
	}
	return false
}

func (p *Parser) matchString(s string) bool {
	runes := []rune(s)
	if p.pos+len(runes) > len(p.input) {
		return false
	}
	for i, r := range runes {
		if p.input[p.pos+i] != r {
			return false
		}
	}
	p.advance(len(runes))
	return true
}

// --- combinators: maybeWs, zeroOrMore ---
//
// There is no general maybe, oneOrMore or select helper: optional parts
// and ordered choice are written out in each rule with save/rollback.

// maybeWs consumes whitespace if present; it always "succeeds" in the
// sense that callers never need to check its return value.
func (p *Parser) maybeWs() {
	start := p.pos
	any := false
	for p.matchClass(isSpace) {
		any = true
	}
	if any {
		p.pushToken(TokWs, start, p.pos-start)
	}
}

func (p *Parser) zeroOrMore(rule func() bool) int {
	n := 0
	for rule() {
		n++
	}
	return n
}

// --- character classes ---

func isSpace(r rune) bool     { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isDigit(r rune) bool     { return r >= '0' && r <= '9' }
func isDigit19(r rune) bool   { return r >= '1' && r <= '9' }
func isAlpha(r rune) bool     { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// --- leftpoline / left: the grow-seed left-recursion loop (spec.md §4.2, §9) ---

// leftpoline implements the standard "seed-parse then grow" technique: it
// saves no initial seed (memo[key] starts invalid), repeatedly invokes
// rule from the same start position, and keeps growing for as long as
// each attempt consumes strictly more input than the last. A non-growing
// or failing attempt's own arena additions are discarded so earlier,
// already-committed growth survives untouched.
func (p *Parser) leftpoline(key ruleKey, rule func() (NodeId, bool)) (NodeId, bool) {
	savedMemo := p.memo[key]
	defer func() { p.memo[key] = savedMemo }()
	p.memo[key] = memoEntry{}

	startPos := p.pos
	startArena := p.snapshotArena()

	bestLen := -1
	bestNode := noID
	bestPos := startPos

	for {
		iterArena := p.snapshotArena()
		p.pos = startPos
		node, ok := rule()
		if !ok {
			p.truncateArena(iterArena)
			p.pos = bestPos
			break
		}
		consumed := p.pos - startPos
		if consumed <= bestLen {
			p.truncateArena(iterArena)
			p.pos = bestPos
			break
		}
		bestLen = consumed
		bestNode = node
		bestPos = p.pos
		p.memo[key] = memoEntry{valid: true, node: node, pos: p.pos}
	}

	if bestLen < 0 {
		p.truncateArena(startArena)
		p.pos = startPos
		return noID, false
	}
	return bestNode, true
}

// left consults the memo for key and, on a hit, repositions the parser to
// just after the memoized parse and returns its Node — this is how list
// "re-calls" its left-recursive expr argument without ever recursing.
func (p *Parser) left(key ruleKey) (NodeId, bool) {
	e := p.memo[key]
	if !e.valid {
		return noID, false
	}
	p.pos = e.pos
	return e.node, true
}

// --- grammar ---

// expr := binop | list | term | index | addr
//
// spec.md §4.2's grammar also lists a "lookup" alternative inside expr's
// select, but defines no production for it anywhere in the document; term
// already covers bare symbol references via sym, so lookup is treated as
// a vestigial alternative with no distinct grammar of its own and is not
// implemented separately.
func (p *Parser) parseExpr() (NodeId, bool) {
	return p.leftpoline(keyExpr, p.parseExprOnce)
}

func (p *Parser) parseExprOnce() (NodeId, bool) {
	save := p.save()
	if n, ok := p.parseBinOp(); ok {
		return n, true
	}
	p.rollback(save)
	if n, ok := p.parseList(); ok {
		return n, true
	}
	p.rollback(save)
	if n, ok := p.parseTerm(); ok {
		return n, true
	}
	p.rollback(save)
	if n, ok := p.parseIndex(); ok {
		return n, true
	}
	p.rollback(save)
	if n, ok := p.parseAddr(); ok {
		return n, true
	}
	p.rollback(save)
	return noID, false
}

// term := literal | sym | '(' expr ')'
func (p *Parser) parseTerm() (NodeId, bool) {
	if n, ok := p.parseLiteral(); ok {
		return n, true
	}
	if n, ok := p.parseSym(); ok {
		return n, true
	}
	save := p.save()
	lp := p.pos
	if !p.matchChar('(') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokLParen, lp, 1)
	n, ok := p.parseExpr()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	p.maybeWs()
	rp := p.pos
	if !p.matchChar(')') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokRParen, rp, 1)
	return n, true
}

// literal := num | string | bool
func (p *Parser) parseLiteral() (NodeId, bool) {
	if n, ok := p.parseNum(); ok {
		return n, true
	}
	if n, ok := p.parseString(); ok {
		return n, true
	}
	if n, ok := p.parseBool(); ok {
		return n, true
	}
	return noID, false
}

// num := '0' | ('-'? [1-9] [0-9]* ('.' [0-9]*)?)
func (p *Parser) parseNum() (NodeId, bool) {
	start := p.pos
	if p.matchChar('0') {
		p.pushToken(TokNum, start, p.pos-start)
		return p.pushLeaf(NumValue(parseDecimal("0"))), true
	}
	save := p.save()
	p.matchChar('-')
	if !p.matchClass(isDigit19) {
		p.rollback(save)
		return noID, false
	}
	p.zeroOrMore(func() bool { return p.matchClass(isDigit) })
	fracSave := p.save()
	if p.matchChar('.') {
		p.zeroOrMore(func() bool { return p.matchClass(isDigit) })
	} else {
		p.rollback(fracSave)
	}
	text := string(p.input[start:p.pos])
	p.pushToken(TokNum, start, p.pos-start)
	return p.pushLeaf(NumValue(parseDecimal(text))), true
}

// string := '\'' [^']* '\'' | '"' [^"]* '"'
func (p *Parser) parseString() (NodeId, bool) {
	start := p.pos
	for _, quote := range []rune{'\'', '"'} {
		save := p.save()
		if !p.matchChar(quote) {
			p.rollback(save)
			continue
		}
		contentStart := p.pos
		p.zeroOrMore(func() bool {
			return p.matchClass(func(r rune) bool { return r != quote })
		})
		contentEnd := p.pos
		if !p.matchChar(quote) {
			p.rollback(save)
			continue
		}
		p.pushToken(TokString, start, p.pos-start)
		return p.pushLeaf(StrValue(string(p.input[contentStart:contentEnd]))), true
	}
	return noID, false
}

// bool := "true" | "false"
func (p *Parser) parseBool() (NodeId, bool) {
	start := p.pos
	if p.matchString("true") {
		p.pushToken(TokBool, start, p.pos-start)
		return p.pushLeaf(BoolValue(true)), true
	}
	if p.matchString("false") {
		p.pushToken(TokBool, start, p.pos-start)
		return p.pushLeaf(BoolValue(false)), true
	}
	return noID, false
}

// sym := [A-Za-z]+ (case-insensitive class). The grammar parses bare
// symbols as text but spec.md defines no name-resolution semantics for
// them (no Sym Node kind exists); a recognised symbol is carried through
// as a string leaf so it can still round-trip through Scan()/rendering.
func (p *Parser) parseSym() (NodeId, bool) {
	start := p.pos
	if !p.matchClass(isAlpha) {
		return noID, false
	}
	p.zeroOrMore(func() bool { return p.matchClass(isAlpha) })
	p.pushToken(TokSym, start, p.pos-start)
	return p.pushLeaf(StrValue(string(p.input[start:p.pos]))), true
}

// binop := (term | index | addr) ws? op ws? expr
func (p *Parser) parseBinOp() (NodeId, bool) {
	save := p.save()
	lhs, ok := p.parseTerm()
	if !ok {
		lhs, ok = p.parseIndex()
	}
	if !ok {
		lhs, ok = p.parseAddr()
	}
	if !ok {
		p.rollback(save)
		return noID, false
	}
	p.maybeWs()
	opPos := p.pos
	op, ok := p.parseOp()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokOp, opPos, 1)
	p.maybeWs()
	rhs, ok := p.parseExpr()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	return p.pushNode(Node{Kind: NodeBinOp, Op: op, LHS: lhs, RHS: rhs}), true
}

// op := '+' | '-' | '*' | '/'
func (p *Parser) parseOp() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	switch p.input[p.pos] {
	case '+', '-', '*', '/':
		c := byte(p.input[p.pos])
		p.advance(1)
		return c, true
	default:
		return 0, false
	}
}

// list := expr ',' term (',' term)*  (left-recursive on expr)
//
// Implemented as a memoized single growth step: parseListStep re-calls
// expr's current seed via left(keyExpr) and consumes one more ",term".
// The step is wrapped in its own leftpoline(keyExprList,...), but the seed
// it reads does not change inside that inner loop, so each parseList call
// appends exactly one element; the list reaches its full length through
// the outer expr grow-loop, which retries the "list" alternative against
// its ever-longer seed. This uses two of the three memo slots (expr,
// expr_list, default).
func (p *Parser) parseList() (NodeId, bool) {
	return p.leftpoline(keyExprList, p.parseListStep)
}

func (p *Parser) parseListStep() (NodeId, bool) {
	save := p.save()
	left, ok := p.left(keyExpr)
	if !ok {
		p.rollback(save)
		return noID, false
	}
	commaPos := p.pos
	if !p.matchChar(',') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokComma, commaPos, 1)
	t, ok := p.parseTerm()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	return p.appendListElem(left, t), true
}

// appendListElem grows the list by one element without ever mutating a
// node already sitting in the arena: leftpoline re-invokes parseListStep
// for a "does it grow further?" check after every successful step, and
// truncateArena only shrinks the node slice's length, so any field mutated
// in place on a node below the truncation point would survive a rolled-
// back iteration. Every growth step therefore rebuilds the whole element
// chain as brand-new nodes (spec.md §9's arena discipline: "append-only...
// do not re-use slots").
//
// If left is not already a List node (the first growth step), the result
// is a fresh 2-element list; otherwise every element already reachable
// from left is collected, elem is appended, and the full chain is rebuilt
// from scratch, packing 8 elements per inline node and chaining overflow
// via fresh Link nodes (spec.md §3, §4.2 "AST construction").
func (p *Parser) appendListElem(left, elem NodeId) NodeId {
	if p.nodes[left].Kind != NodeList {
		return p.pushListNode([]NodeId{left, elem})
	}
	elems := append(p.collectListElems(left), elem)
	return p.buildListChain(elems)
}

// collectListElems reads (never mutates) every element reachable from a
// List node's inline slots and its Link chain, in order.
func (p *Parser) collectListElems(listID NodeId) []NodeId {
	var out []NodeId
	for listID != noID {
		n := p.nodes[listID]
		out = append(out, n.Elems[:n.Len]...)
		listID = n.Link
	}
	return out
}

// buildListChain pushes a brand-new List node (and, past listInline
// elements, a brand-new chain of overflow Link nodes) representing elems,
// touching no existing arena entry. The chain is built tail-first so each
// node's Link can be set at construction time rather than patched in
// after the fact.
func (p *Parser) buildListChain(elems []NodeId) NodeId {
	if len(elems) <= listInline {
		return p.pushListNode(elems)
	}
	var chunks [][]NodeId
	for i := 0; i < len(elems); i += listInline {
		end := i + listInline
		if end > len(elems) {
			end = len(elems)
		}
		chunks = append(chunks, elems[i:end])
	}
	next := noID
	for i := len(chunks) - 1; i >= 0; i-- {
		var node Node
		node.Kind = NodeList
		for j, e := range chunks[i] {
			node.Elems[j] = e
		}
		node.Len = len(chunks[i])
		node.Link = next
		next = p.pushNode(node)
	}
	return next
}

func (p *Parser) pushListNode(elems []NodeId) NodeId {
	var node Node
	node.Kind = NodeList
	node.Link = noID
	for i, e := range elems {
		node.Elems[i] = e
	}
	node.Len = len(elems)
	return p.pushNode(node)
}

// index := '[' expr ']'
func (p *Parser) parseIndex() (NodeId, bool) {
	save := p.save()
	lb := p.pos
	if !p.matchChar('[') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokLBracket, lb, 1)
	n, ok := p.parseExpr()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	p.maybeWs()
	rb := p.pos
	if !p.matchChar(']') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokRBracket, rb, 1)
	col, row, ok := p.splitSubscript(n)
	if !ok {
		p.rollback(save)
		return noID, false
	}
	return p.pushNode(Node{Kind: NodeIndex, Col: col, Row: row}), true
}

// addr := '{' expr '}'
func (p *Parser) parseAddr() (NodeId, bool) {
	save := p.save()
	lb := p.pos
	if !p.matchChar('{') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokLBrace, lb, 1)
	n, ok := p.parseExpr()
	if !ok {
		p.rollback(save)
		return noID, false
	}
	p.maybeWs()
	rb := p.pos
	if !p.matchChar('}') {
		p.rollback(save)
		return noID, false
	}
	p.pushToken(TokRBrace, rb, 1)
	col, row, ok := p.splitSubscript(n)
	if !ok {
		p.rollback(save)
		return noID, false
	}
	return p.pushNode(Node{Kind: NodeAddr, Col: col, Row: row}), true
}

// splitSubscript implements spec.md §4.2/§9's Index/Addr subscript rule: a
// scalar subscript addresses column n, row 0 (the reserved Zero node); a
// two-element list addresses [col, row]; anything longer is a parse-level
// error, per spec.md §9's Open Question resolution.
func (p *Parser) splitSubscript(n NodeId) (col, row NodeId, ok bool) {
	node := p.nodes[n]
	if node.Kind != NodeList {
		return n, zeroNodeID, true
	}
	if node.Len == 2 && node.Link == noID {
		return node.Elems[0], node.Elems[1], true
	}
	return noID, noID, false
}
