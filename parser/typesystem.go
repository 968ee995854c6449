package parser

import (
	"gqlfmt/ast"
	"gqlfmt/tokenizer"
)

// parseTypeSystemExtension parses `extend` followed by the keyword of the
// extended definition.
func parseTypeSystemExtension(p *parser) ast.Definition {
	extend := p.takeToken(tokenizer.NAME, "extend")

	keyword := p.assertToken(tokenizer.NAME, "")
	switch keyword.token.Literal {
	case "schema":
		return parseSchemaDefinition(p, nil, extend)
	case "scalar":
		return parseScalarTypeDefinition(p, nil, extend)
	case "type":
		return parseObjectTypeDefinition(p, nil, extend)
	case "interface":
		return parseInterfaceTypeDefinition(p, nil, extend)
	case "union":
		return parseUnionTypeDefinition(p, nil, extend)
	case "enum":
		return parseEnumTypeDefinition(p, nil, extend)
	case "input":
		return parseInputObjectTypeDefinition(p, nil, extend)
	}
	p.fail(keyword.token, "")
	return nil
}

// extendComments returns the comments of the `extend` keyword, nil for
// definitions.
func extendComments(extend *peeked) []ast.Comment {
	if extend == nil {
		return nil
	}
	return extend.comments
}

// parseSchemaDefinition parses `schema @directives { query: Query }` or its
// extension when extend is set.
func parseSchemaDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "schema")
	comments := join(extendComments(extend), keyword.comments)
	directives := parseConstDirectives(p)

	list := takeWrappedList(p, true, "{", "}", func() *ast.OperationTypeDefinition {
		operation, operationComments := parseOperationType(p)
		colon := p.takePunctuator(":")
		return &ast.OperationTypeDefinition{
			Comments:  join(operationComments, colon.comments),
			Operation: operation,
			Type:      parseNamedType(p),
		}
	})
	var set *ast.OperationTypeDefinitionSet
	if len(list.items) > 0 {
		set = &ast.OperationTypeDefinitionSet{
			CommentsOpeningBracket: list.opening,
			Definitions:            list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	if extend != nil {
		p.assertCombinedListLength("{", len(directives), len(list.items))
		return &ast.SchemaExtension{
			Comments:                   comments,
			Directives:                 directives,
			OperationTypeDefinitionSet: set,
		}
	}
	return &ast.SchemaDefinition{
		Comments:                   comments,
		Description:                description,
		Directives:                 directives,
		OperationTypeDefinitionSet: set,
	}
}

// parseScalarTypeDefinition parses `scalar Name @directives`. An extension
// needs at least one directive.
func parseScalarTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "scalar")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	directives := parseConstDirectives(p)

	if extend != nil {
		p.assertCombinedListLength("@", len(directives))
		return &ast.ScalarTypeExtension{Comments: comments, Name: name, Directives: directives}
	}
	return &ast.ScalarTypeDefinition{
		Comments:    comments,
		Description: description,
		Name:        name,
		Directives:  directives,
	}
}

// parseObjectTypeDefinition parses `type Name implements A & B @directives
// { fields }`.
func parseObjectTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "type")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	interfaces := parseImplementsInterfaces(p)
	directives := parseConstDirectives(p)
	fields := parseFieldDefinitionSet(p)

	if extend != nil {
		p.assertCombinedListLength("{", len(interfaceTypes(interfaces)), len(directives), len(fieldDefinitions(fields)))
		return &ast.ObjectTypeExtension{
			Comments:           comments,
			Name:               name,
			Interfaces:         interfaces,
			Directives:         directives,
			FieldDefinitionSet: fields,
		}
	}
	return &ast.ObjectTypeDefinition{
		Comments:           comments,
		Description:        description,
		Name:               name,
		Interfaces:         interfaces,
		Directives:         directives,
		FieldDefinitionSet: fields,
	}
}

func parseInterfaceTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "interface")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	interfaces := parseImplementsInterfaces(p)
	directives := parseConstDirectives(p)
	fields := parseFieldDefinitionSet(p)

	if extend != nil {
		p.assertCombinedListLength("{", len(interfaceTypes(interfaces)), len(directives), len(fieldDefinitions(fields)))
		return &ast.InterfaceTypeExtension{
			Comments:           comments,
			Name:               name,
			Interfaces:         interfaces,
			Directives:         directives,
			FieldDefinitionSet: fields,
		}
	}
	return &ast.InterfaceTypeDefinition{
		Comments:           comments,
		Description:        description,
		Name:               name,
		Interfaces:         interfaces,
		Directives:         directives,
		FieldDefinitionSet: fields,
	}
}

// parseUnionTypeDefinition parses `union Name @directives = A | B`
func parseUnionTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "union")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	directives := parseConstDirectives(p)

	members, membersComments := takeDelimitedList(p, "|", tokenizer.PUNCTUATOR, "=", parseDelimitedNamedType(p))
	var types *ast.NamedTypeSet
	if len(members) > 0 {
		types = &ast.NamedTypeSet{Comments: membersComments, Types: members}
	}

	if extend != nil {
		p.assertCombinedListLength("=", len(directives), len(members))
		return &ast.UnionTypeExtension{
			Comments:   comments,
			Name:       name,
			Directives: directives,
			Types:      types,
		}
	}
	return &ast.UnionTypeDefinition{
		Comments:    comments,
		Description: description,
		Name:        name,
		Directives:  directives,
		Types:       types,
	}
}

// parseEnumTypeDefinition parses `enum Name @directives { VALUES }`
func parseEnumTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "enum")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	directives := parseConstDirectives(p)

	list := takeWrappedList(p, true, "{", "}", func() *ast.EnumValueDefinition {
		valueDescription := parseDescription(p)
		value := parseEnumValue(p)
		valueComments := value.Comments
		value.Comments = nil
		return &ast.EnumValueDefinition{
			Comments:    valueComments,
			Description: valueDescription,
			Name:        value,
			Directives:  parseConstDirectives(p),
		}
	})
	var values *ast.EnumValueDefinitionSet
	if len(list.items) > 0 {
		values = &ast.EnumValueDefinitionSet{
			CommentsOpeningBracket: list.opening,
			Definitions:            list.items,
			CommentsClosingBracket: list.closing,
		}
	}

	if extend != nil {
		p.assertCombinedListLength("{", len(directives), len(list.items))
		return &ast.EnumTypeExtension{
			Comments:           comments,
			Name:               name,
			Directives:         directives,
			ValueDefinitionSet: values,
		}
	}
	return &ast.EnumTypeDefinition{
		Comments:           comments,
		Description:        description,
		Name:               name,
		Directives:         directives,
		ValueDefinitionSet: values,
	}
}

// parseInputObjectTypeDefinition parses `input Name @directives { fields }`
func parseInputObjectTypeDefinition(p *parser, description *ast.StringValue, extend *peeked) ast.Definition {
	keyword := p.takeToken(tokenizer.NAME, "input")
	name, nameComments := parseName(p, "")
	comments := join(extendComments(extend), keyword.comments, nameComments)
	directives := parseConstDirectives(p)
	fields := parseInputValueDefinitionSet(p, "{", "}")

	if extend != nil {
		p.assertCombinedListLength("{", len(directives), len(inputValueDefinitions(fields)))
		return &ast.InputObjectTypeExtension{
			Comments:                comments,
			Name:                    name,
			Directives:              directives,
			InputValueDefinitionSet: fields,
		}
	}
	return &ast.InputObjectTypeDefinition{
		Comments:                comments,
		Description:             description,
		Name:                    name,
		Directives:              directives,
		InputValueDefinitionSet: fields,
	}
}

// parseDirectiveDefinition parses `directive @name(args) repeatable on A | B`
func parseDirectiveDefinition(p *parser, description *ast.StringValue) *ast.DirectiveDefinition {
	keyword := p.takeToken(tokenizer.NAME, "directive")
	at := p.takePunctuator("@")
	name, nameComments := parseName(p, "")
	comments := join(keyword.comments, at.comments, nameComments)
	arguments := parseInputValueDefinitionSet(p, "(", ")")

	repeatable := p.isNext(tokenizer.NAME, "repeatable")
	if repeatable {
		comments = join(comments, p.take().comments)
	}

	locations, locationsComments := takeDelimitedList(p, "|", tokenizer.NAME, "on", func(comments []ast.Comment) ast.DirectiveLocation {
		return parseDirectiveLocation(p, comments)
	})
	if len(locations) == 0 {
		p.fail(p.peek().token, "on")
	}

	return &ast.DirectiveDefinition{
		Comments:                comments,
		Description:             description,
		Name:                    name,
		InputValueDefinitionSet: arguments,
		Repeatable:              repeatable,
		LocationSet: &ast.DirectiveLocationSet{
			Comments:  locationsComments,
			Locations: locations,
		},
	}
}

func parseDirectiveLocation(p *parser, delimiterComments []ast.Comment) ast.DirectiveLocation {
	pk := p.takeToken(tokenizer.NAME, "")
	comments := join(delimiterComments, pk.comments)
	switch value := pk.token.Literal; {
	case executableDirectiveLocations[value]:
		return &ast.ExecutableDirectiveLocation{Comments: comments, Value: value}
	case typeSystemDirectiveLocations[value]:
		return &ast.TypeSystemDirectiveLocation{Comments: comments, Value: value}
	}
	p.fail(pk.token, "")
	return nil
}

// parseImplementsInterfaces parses `implements & A & B`, nil when absent.
func parseImplementsInterfaces(p *parser) *ast.NamedTypeSet {
	types, comments := takeDelimitedList(p, "&", tokenizer.NAME, "implements", parseDelimitedNamedType(p))
	if len(types) == 0 {
		return nil
	}
	return &ast.NamedTypeSet{Comments: comments, Types: types}
}

// parseDelimitedNamedType returns a list item parser that puts the comments
// of the preceding delimiter in front of the named type's own.
func parseDelimitedNamedType(p *parser) func([]ast.Comment) *ast.NamedType {
	return func(comments []ast.Comment) *ast.NamedType {
		typ := parseNamedType(p)
		typ.Comments = join(comments, typ.Comments)
		return typ
	}
}

func parseFieldDefinitionSet(p *parser) *ast.FieldDefinitionSet {
	list := takeWrappedList(p, true, "{", "}", func() *ast.FieldDefinition {
		description := parseDescription(p)
		name, nameComments := parseName(p, "")
		arguments := parseInputValueDefinitionSet(p, "(", ")")
		colon := p.takePunctuator(":")
		return &ast.FieldDefinition{
			Comments:                join(nameComments, colon.comments),
			Description:             description,
			Name:                    name,
			InputValueDefinitionSet: arguments,
			Type:                    parseType(p),
			Directives:              parseConstDirectives(p),
		}
	})
	if len(list.items) == 0 {
		return nil
	}
	return &ast.FieldDefinitionSet{
		CommentsOpeningBracket: list.opening,
		Definitions:            list.items,
		CommentsClosingBracket: list.closing,
	}
}

// parseInputValueDefinitionSet parses argument definitions between
// parentheses or input fields between braces.
func parseInputValueDefinitionSet(p *parser, open, close string) *ast.InputValueDefinitionSet {
	list := takeWrappedList(p, true, open, close, func() *ast.InputValueDefinition {
		description := parseDescription(p)
		name, nameComments := parseName(p, "")
		colon := p.takePunctuator(":")
		typ := parseType(p)
		defaultValue, equalsComments := parseDefaultValue(p)
		return &ast.InputValueDefinition{
			Comments:     join(nameComments, colon.comments, equalsComments),
			Description:  description,
			Name:         name,
			Type:         typ,
			DefaultValue: defaultValue,
			Directives:   parseConstDirectives(p),
		}
	})
	if len(list.items) == 0 {
		return nil
	}
	return &ast.InputValueDefinitionSet{
		CommentsOpeningBracket: list.opening,
		Definitions:            list.items,
		CommentsClosingBracket: list.closing,
	}
}

func interfaceTypes(set *ast.NamedTypeSet) []*ast.NamedType {
	if set == nil {
		return nil
	}
	return set.Types
}

func fieldDefinitions(set *ast.FieldDefinitionSet) []*ast.FieldDefinition {
	if set == nil {
		return nil
	}
	return set.Definitions
}

func inputValueDefinitions(set *ast.InputValueDefinitionSet) []*ast.InputValueDefinition {
	if set == nil {
		return nil
	}
	return set.Definitions
}
