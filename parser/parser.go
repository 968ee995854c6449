package parser

import (
	"io"

	"gqlfmt/ast"
	"gqlfmt/gqlerror"
	"gqlfmt/tokenizer"
)

var executableDirectiveLocations = map[string]bool{
	"QUERY":               true,
	"MUTATION":            true,
	"SUBSCRIPTION":        true,
	"FIELD":               true,
	"FRAGMENT_DEFINITION": true,
	"FRAGMENT_SPREAD":     true,
	"INLINE_FRAGMENT":     true,
	"VARIABLE_DEFINITION": true,
}

var typeSystemDirectiveLocations = map[string]bool{
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

// Parse parses a complete GraphQL document. Comments are attached to the
// nodes they belong to. Any malformed input yields a *gqlerror.Error and no
// document.
func Parse(source string) (doc *ast.Document, err error) {
	p := &parser{tokens: tokenizer.New(source)}
	defer func() {
		if r := recover(); r != nil {
			gqlErr, ok := r.(*gqlerror.Error)
			if !ok {
				panic(r)
			}
			doc, err = nil, gqlErr
		}
	}()
	p.next = p.pull()
	return parseDocument(p), nil
}

// parseDocument parses definitions until the input is exhausted. Comments
// after the last definition belong to the document.
func parseDocument(p *parser) *ast.Document {
	var definitions []ast.Definition
	for p.peek().token != nil {
		definitions = append(definitions, parseDefinition(p))
	}
	return &ast.Document{
		Comments:    p.peek().comments,
		Definitions: definitions,
	}
}

// parseDefinition parses a top-level definition
func parseDefinition(p *parser) ast.Definition {
	if p.isNextPunctuator("{") {
		return &ast.OperationDefinition{
			Operation:    ast.Query,
			SelectionSet: parseSelectionSet(p, false),
		}
	}

	description := parseDescription(p)

	keyword := p.assertToken(tokenizer.NAME, "")
	switch keyword.token.Literal {
	case "query", "mutation", "subscription":
		if description != nil {
			p.fail(keyword.token, "")
		}
		return parseOperationDefinition(p)
	case "fragment":
		if description != nil {
			p.fail(keyword.token, "")
		}
		return parseFragmentDefinition(p)
	case "schema":
		return parseSchemaDefinition(p, description, nil)
	case "scalar":
		return parseScalarTypeDefinition(p, description, nil)
	case "type":
		return parseObjectTypeDefinition(p, description, nil)
	case "interface":
		return parseInterfaceTypeDefinition(p, description, nil)
	case "union":
		return parseUnionTypeDefinition(p, description, nil)
	case "enum":
		return parseEnumTypeDefinition(p, description, nil)
	case "input":
		return parseInputObjectTypeDefinition(p, description, nil)
	case "directive":
		return parseDirectiveDefinition(p, description)
	case "extend":
		if description != nil {
			p.fail(keyword.token, "")
		}
		return parseTypeSystemExtension(p)
	}
	p.fail(keyword.token, "")
	return nil
}

// parseOperationDefinition parses a query, mutation or subscription
func parseOperationDefinition(p *parser) *ast.OperationDefinition {
	operation, comments := parseOperationType(p)

	var name *ast.Name
	if p.isNext(tokenizer.NAME, "") {
		var nameComments []ast.Comment
		name, nameComments = parseName(p, "")
		comments = join(comments, nameComments)
	}

	variables := takeWrappedList(p, true, "(", ")", func() *ast.VariableDefinition {
		return parseVariableDefinition(p)
	})
	var variableDefinitionSet *ast.VariableDefinitionSet
	if len(variables.items) > 0 {
		variableDefinitionSet = &ast.VariableDefinitionSet{
			CommentsOpeningBracket: variables.opening,
			Definitions:            variables.items,
			CommentsClosingBracket: variables.closing,
		}
	}

	return &ast.OperationDefinition{
		Comments:              comments,
		Operation:             operation,
		Name:                  name,
		VariableDefinitionSet: variableDefinitionSet,
		Directives:            parseDirectives(p),
		SelectionSet:          parseSelectionSet(p, false),
	}
}

// parseVariableDefinition parses `$name: Type = default @directives`. The
// comments of the variable and the colon belong to the definition.
func parseVariableDefinition(p *parser) *ast.VariableDefinition {
	variable := parseVariable(p)
	colon := p.takePunctuator(":")
	comments := join(variable.Comments, colon.comments)
	variable.Comments = nil

	typ := parseType(p)
	defaultValue, equalsComments := parseDefaultValue(p)

	return &ast.VariableDefinition{
		Comments:     join(comments, equalsComments),
		Variable:     variable,
		Type:         typ,
		DefaultValue: defaultValue,
		Directives:   parseConstDirectives(p),
	}
}

// parseFragmentDefinition parses `fragment Name on Type @directives { ... }`
func parseFragmentDefinition(p *parser) *ast.FragmentDefinition {
	keyword := p.takeToken(tokenizer.NAME, "fragment")
	name, nameComments := parseName(p, "on")
	condition := parseTypeCondition(p, false)

	return &ast.FragmentDefinition{
		Comments:      join(keyword.comments, nameComments, condition.comments),
		Name:          name,
		TypeCondition: condition.typ,
		Directives:    parseDirectives(p),
		SelectionSet:  parseSelectionSet(p, false),
	}
}

type typeCondition struct {
	typ      *ast.NamedType
	comments []ast.Comment
}

// parseTypeCondition parses `on Type`. An optional condition that is absent
// yields the zero typeCondition.
func parseTypeCondition(p *parser, optional bool) typeCondition {
	if optional && !p.isNext(tokenizer.NAME, "on") {
		return typeCondition{}
	}
	on := p.takeToken(tokenizer.NAME, "on")
	return typeCondition{typ: parseNamedType(p), comments: on.comments}
}

// parseSelectionSet parses a `{ ... }` selection set. An optional set that is
// absent yields nil, a required one must hold at least one selection.
func parseSelectionSet(p *parser, optional bool) *ast.SelectionSet {
	list := takeWrappedList(p, optional, "{", "}", func() ast.Selection {
		return parseSelection(p)
	})
	if len(list.items) == 0 {
		if !optional {
			p.fail(list.end, "")
		}
		return nil
	}
	return &ast.SelectionSet{
		CommentsOpeningBracket: list.opening,
		Selections:             list.items,
		CommentsClosingBracket: list.closing,
	}
}

// parseSelection parses a field, a fragment spread or an inline fragment
func parseSelection(p *parser) ast.Selection {
	if p.isNextPunctuator("...") {
		spread := p.take()
		if tok := p.peek().token; tok != nil && tok.Type == tokenizer.NAME && tok.Literal != "on" {
			name, nameComments := parseName(p, "")
			return &ast.FragmentSpread{
				Comments:   join(spread.comments, nameComments),
				Name:       name,
				Directives: parseDirectives(p),
			}
		}

		condition := parseTypeCondition(p, true)
		return &ast.InlineFragment{
			Comments:      join(spread.comments, condition.comments),
			TypeCondition: condition.typ,
			Directives:    parseDirectives(p),
			SelectionSet:  parseSelectionSet(p, false),
		}
	}

	var alias *ast.Name
	var aliasComments, colonComments []ast.Comment
	name, nameComments := parseName(p, "")
	if p.isNextPunctuator(":") {
		colonComments = p.take().comments
		alias, aliasComments = name, nameComments
		name, nameComments = parseName(p, "")
	}

	return &ast.Field{
		Comments:     join(aliasComments, colonComments, nameComments),
		Alias:        alias,
		Name:         name,
		ArgumentSet:  parseArgumentSet(p),
		Directives:   parseDirectives(p),
		SelectionSet: parseSelectionSet(p, true),
	}
}

func parseOperationType(p *parser) (ast.OperationType, []ast.Comment) {
	pk := p.takeToken(tokenizer.NAME, "")
	switch op := ast.OperationType(pk.token.Literal); op {
	case ast.Query, ast.Mutation, ast.Subscription:
		return op, pk.comments
	}
	p.fail(pk.token, "")
	return "", nil
}

// parseDescription parses an optional string in front of a type-system
// definition.
func parseDescription(p *parser) *ast.StringValue {
	pk := p.peek()
	if pk.token == nil || (pk.token.Type != tokenizer.STRING && pk.token.Type != tokenizer.BLOCK_STRING) {
		return nil
	}
	p.take()
	return &ast.StringValue{
		Comments: pk.comments,
		Value:    pk.token.Literal,
		Block:    pk.token.Type == tokenizer.BLOCK_STRING,
	}
}

// parseName parses a name token. A name equal to bad is rejected.
func parseName(p *parser, bad string) (*ast.Name, []ast.Comment) {
	pk := p.takeToken(tokenizer.NAME, "")
	if bad != "" && pk.token.Literal == bad {
		p.fail(pk.token, "")
	}
	return &ast.Name{Value: pk.token.Literal}, pk.comments
}

func parseNamedType(p *parser) *ast.NamedType {
	name, comments := parseName(p, "")
	return &ast.NamedType{Comments: comments, Name: name}
}

// parseType parses a type reference. The comments of a wrapped type move to
// its wrapper so that every bracket and bang is accounted for once.
func parseType(p *parser) ast.Type {
	var inner ast.NullableType
	var comments []ast.Comment

	if p.isNextPunctuator("[") {
		open := p.take()
		typ := parseType(p)
		closing := p.takePunctuator("]")
		comments = join(open.comments, takeTypeComments(typ), closing.comments)
		inner = &ast.ListType{Comments: comments, Type: typ}
	} else {
		named := parseNamedType(p)
		comments = named.Comments
		inner = named
	}

	if !p.isNextPunctuator("!") {
		return inner
	}
	bang := p.take()
	takeTypeComments(inner)
	return &ast.NonNullType{
		Comments: join(comments, bang.comments),
		Type:     inner,
	}
}

// takeTypeComments clears and returns the comments of a type node.
func takeTypeComments(t ast.Type) []ast.Comment {
	var comments []ast.Comment
	switch t := t.(type) {
	case *ast.NamedType:
		comments, t.Comments = t.Comments, nil
	case *ast.ListType:
		comments, t.Comments = t.Comments, nil
	case *ast.NonNullType:
		comments, t.Comments = t.Comments, nil
	}
	return comments
}

func parseVariable(p *parser) *ast.Variable {
	dollar := p.takePunctuator("$")
	name, nameComments := parseName(p, "")
	return &ast.Variable{Comments: join(dollar.comments, nameComments), Name: name}
}

// parseDefaultValue parses an optional `= value`. The comments of the equals
// sign are returned for the enclosing definition.
func parseDefaultValue(p *parser) (ast.ConstValue, []ast.Comment) {
	if !p.isNextPunctuator("=") {
		return nil, nil
	}
	equals := p.take()
	return parseConstValue(p), equals.comments
}

func parseArgumentSet(p *parser) *ast.ArgumentSet {
	list := takeWrappedList(p, true, "(", ")", func() *ast.Argument {
		name, nameComments := parseName(p, "")
		colon := p.takePunctuator(":")
		return &ast.Argument{
			Comments: join(nameComments, colon.comments),
			Name:     name,
			Value:    parseValue(p),
		}
	})
	if len(list.items) == 0 {
		return nil
	}
	return &ast.ArgumentSet{
		CommentsOpeningBracket: list.opening,
		Arguments:              list.items,
		CommentsClosingBracket: list.closing,
	}
}

func parseConstArgumentSet(p *parser) *ast.ConstArgumentSet {
	list := takeWrappedList(p, true, "(", ")", func() *ast.ConstArgument {
		name, nameComments := parseName(p, "")
		colon := p.takePunctuator(":")
		return &ast.ConstArgument{
			Comments: join(nameComments, colon.comments),
			Name:     name,
			Value:    parseConstValue(p),
		}
	})
	if len(list.items) == 0 {
		return nil
	}
	return &ast.ConstArgumentSet{
		CommentsOpeningBracket: list.opening,
		Arguments:              list.items,
		CommentsClosingBracket: list.closing,
	}
}

func parseDirectives(p *parser) []*ast.Directive {
	var directives []*ast.Directive
	for p.isNextPunctuator("@") {
		at := p.take()
		name, nameComments := parseName(p, "")
		directives = append(directives, &ast.Directive{
			Comments:    join(at.comments, nameComments),
			Name:        name,
			ArgumentSet: parseArgumentSet(p),
		})
	}
	return directives
}

func parseConstDirectives(p *parser) []*ast.ConstDirective {
	var directives []*ast.ConstDirective
	for p.isNextPunctuator("@") {
		at := p.take()
		name, nameComments := parseName(p, "")
		directives = append(directives, &ast.ConstDirective{
			Comments:    join(at.comments, nameComments),
			Name:        name,
			ArgumentSet: parseConstArgumentSet(p),
		})
	}
	return directives
}

// parser holds the lookahead state over the token stream. next is the first
// token not yet consumed and is never an inline comment: those are collected
// by the peek that saw the token they trail. nextNext is only set while a
// peek is cached.
type parser struct {
	tokens   *tokenizer.Tokenizer
	next     *tokenizer.Token
	nextNext *tokenizer.Token
	cache    *peeked
	last     tokenizer.Token
}

// peeked is the next lexical token with the block comments in front of it
// and the inline comments behind it.
type peeked struct {
	token    *tokenizer.Token
	comments []ast.Comment
}

// pull reads one token from the tokenizer, nil at the end of input.
func (p *parser) pull() *tokenizer.Token {
	tok, err := p.tokens.Next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		panic(err)
	}
	p.last = tok
	return &tok
}

func (p *parser) peek() *peeked {
	if p.cache != nil {
		return p.cache
	}

	pk := &peeked{}
	tok := p.next
	for tok != nil && tok.Type == tokenizer.BLOCK_COMMENT {
		pk.comments = append(pk.comments, &ast.BlockComment{Value: tok.Literal})
		tok = p.pull()
	}
	pk.token = tok

	if tok != nil {
		nextNext := p.pull()
		for nextNext != nil && nextNext.Type == tokenizer.INLINE_COMMENT {
			pk.comments = append(pk.comments, &ast.InlineComment{Value: nextNext.Literal})
			nextNext = p.pull()
		}
		p.nextNext = nextNext
	}

	p.cache = pk
	return pk
}

func (p *parser) take() *peeked {
	pk := p.peek()
	p.next = p.nextNext
	p.nextNext = nil
	p.cache = nil
	return pk
}

// assertToken checks the next token without consuming it. An empty value
// matches any literal.
func (p *parser) assertToken(typ tokenizer.TokenType, value string) *peeked {
	pk := p.peek()
	if !matches(pk.token, typ, value) {
		p.fail(pk.token, value)
	}
	return pk
}

func (p *parser) takeToken(typ tokenizer.TokenType, value string) *peeked {
	p.assertToken(typ, value)
	return p.take()
}

func (p *parser) takePunctuator(punctuator string) *peeked {
	return p.takeToken(tokenizer.PUNCTUATOR, punctuator)
}

func (p *parser) isNext(typ tokenizer.TokenType, value string) bool {
	return matches(p.peek().token, typ, value)
}

func (p *parser) isNextPunctuator(punctuator string) bool {
	return p.isNext(tokenizer.PUNCTUATOR, punctuator)
}

// assertCombinedListLength fails on the next token when every length is
// zero, naming the punctuator that would have started the body.
func (p *parser) assertCombinedListLength(punctuator string, lengths ...int) {
	for _, n := range lengths {
		if n > 0 {
			return
		}
	}
	p.assertToken(tokenizer.PUNCTUATOR, punctuator)
	p.fail(p.peek().token, punctuator)
}

// fail aborts parsing. A nil token means the input ended early.
func (p *parser) fail(tok *tokenizer.Token, expected string) {
	var err *gqlerror.Error
	if tok == nil {
		err = gqlerror.New(gqlerror.KindUnexpected, p.last.Line, p.last.Column, "Unexpected EOF")
	} else {
		err = gqlerror.New(gqlerror.KindUnexpected, tok.Line, tok.Column, "Unexpected token: %s", tok.Literal)
		err.Excerpt = tok.Literal
	}
	if expected != "" {
		err.Message += " (expected " + expected + ")"
	}
	panic(err)
}

func matches(tok *tokenizer.Token, typ tokenizer.TokenType, value string) bool {
	return tok != nil && tok.Type == typ && (value == "" || tok.Literal == value)
}

// join concatenates comment lists and keeps nil for no comments.
func join(lists ...[]ast.Comment) []ast.Comment {
	var out []ast.Comment
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

type wrappedList[T any] struct {
	items   []T
	opening []ast.Comment
	closing []ast.Comment
	end     *tokenizer.Token
}

// takeWrappedList parses items between open and close. An optional list
// whose opening punctuator is absent yields the zero wrappedList.
func takeWrappedList[T any](p *parser, optional bool, open, close string, item func() T) wrappedList[T] {
	var list wrappedList[T]
	if optional && !p.isNextPunctuator(open) {
		return list
	}
	list.opening = p.takePunctuator(open).comments
	for !p.isNextPunctuator(close) {
		list.items = append(list.items, item())
	}
	end := p.take()
	list.closing = end.comments
	list.end = end.token
	return list
}

// takeDelimitedList parses `initializer delimiter? item (delimiter item)*`,
// as in `implements & A & B` or `= | A | B`. The comments of each delimiter
// are handed to the item that follows it. Without the initializer nothing is
// consumed and both results are nil.
func takeDelimitedList[T any](p *parser, delimiter string, initType tokenizer.TokenType, initializer string, item func(comments []ast.Comment) T) ([]T, []ast.Comment) {
	if !p.isNext(initType, initializer) {
		return nil, nil
	}
	initComments := p.take().comments

	var comments []ast.Comment
	if p.isNextPunctuator(delimiter) {
		comments = p.take().comments
	}
	items := []T{item(comments)}
	for p.isNextPunctuator(delimiter) {
		items = append(items, item(p.take().comments))
	}
	return items, initComments
}
