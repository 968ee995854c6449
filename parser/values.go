package parser

import (
	"gqlfmt/ast"
	"gqlfmt/tokenizer"
)

// parseValue parses a value where variables are allowed.
func parseValue(p *parser) ast.Value {
	if p.isNextPunctuator("$") {
		return parseVariable(p)
	}

	if p.isNextPunctuator("[") {
		list := takeWrappedList(p, false, "[", "]", func() ast.Value {
			return parseValue(p)
		})
		return &ast.ListValue{
			CommentsOpeningBracket: list.opening,
			Values:                 list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	if p.isNextPunctuator("{") {
		list := takeWrappedList(p, false, "{", "}", func() *ast.ObjectField {
			name, comments := parseName(p, "")
			colon := p.takePunctuator(":")
			return &ast.ObjectField{
				Comments: join(comments, colon.comments),
				Name:     name,
				Value:    parseValue(p),
			}
		})
		return &ast.ObjectValue{
			CommentsOpeningBracket: list.opening,
			Fields:                 list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	return parseScalarValue(p)
}

// parseConstValue parses a value where variables are rejected. A `$` is
// reported as an unexpected token.
func parseConstValue(p *parser) ast.ConstValue {
	if p.isNextPunctuator("[") {
		list := takeWrappedList(p, false, "[", "]", func() ast.ConstValue {
			return parseConstValue(p)
		})
		return &ast.ConstListValue{
			CommentsOpeningBracket: list.opening,
			Values:                 list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	if p.isNextPunctuator("{") {
		list := takeWrappedList(p, false, "{", "}", func() *ast.ConstObjectField {
			name, comments := parseName(p, "")
			colon := p.takePunctuator(":")
			return &ast.ConstObjectField{
				Comments: join(comments, colon.comments),
				Name:     name,
				Value:    parseConstValue(p),
			}
		})
		return &ast.ConstObjectValue{
			CommentsOpeningBracket: list.opening,
			Fields:                 list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	return parseScalarValue(p)
}

// scalarValue is a value that is valid in both const and non-const
// positions.
type scalarValue interface {
	ast.Value
	ast.ConstValue
}

// parseScalarValue parses a single-token value: a number, a string, a
// boolean, null or an enum value.
func parseScalarValue(p *parser) scalarValue {
	pk := p.take()
	tok := pk.token
	if tok == nil {
		p.fail(nil, "")
	}

	switch tok.Type {
	case tokenizer.INT:
		return &ast.IntValue{Comments: pk.comments, Value: tok.Literal}
	case tokenizer.FLOAT:
		return &ast.FloatValue{Comments: pk.comments, Value: tok.Literal}
	case tokenizer.STRING, tokenizer.BLOCK_STRING:
		return &ast.StringValue{
			Comments: pk.comments,
			Value:    tok.Literal,
			Block:    tok.Type == tokenizer.BLOCK_STRING,
		}
	case tokenizer.NAME:
		switch tok.Literal {
		case "true", "false":
			return &ast.BooleanValue{Comments: pk.comments, Value: tok.Literal == "true"}
		case "null":
			return &ast.NullValue{Comments: pk.comments}
		}
		return &ast.EnumValue{Comments: pk.comments, Value: tok.Literal}
	}

	p.fail(tok, "")
	return nil
}

// parseEnumValue parses the name of an enum value definition, which cannot
// be true, false or null.
func parseEnumValue(p *parser) *ast.EnumValue {
	pk := p.takeToken(tokenizer.NAME, "")
	switch pk.token.Literal {
	case "true", "false", "null":
		p.fail(pk.token, "")
	}
	return &ast.EnumValue{Comments: pk.comments, Value: pk.token.Literal}
}
