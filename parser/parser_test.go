package parser_test

import (
	"testing"

	"gqlfmt/ast"
	"gqlfmt/gqlerror"
	"gqlfmt/parser"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name     string
	input    string
	expected []ast.Definition
}

func name(v string) *ast.Name { return &ast.Name{Value: v} }

func named(v string) *ast.NamedType { return &ast.NamedType{Name: name(v)} }

func block(v string) ast.Comment { return &ast.BlockComment{Value: v} }

func inline(v string) ast.Comment { return &ast.InlineComment{Value: v} }

func field(v string) *ast.Field { return &ast.Field{Name: name(v)} }

func selections(s ...ast.Selection) *ast.SelectionSet {
	return &ast.SelectionSet{Selections: s}
}

func TestParser(t *testing.T) {
	tests := []testConfig{
		{
			name:  "shorthand query",
			input: "{ a }",
			expected: []ast.Definition{
				&ast.OperationDefinition{
					Operation:    ast.Query,
					SelectionSet: selections(field("a")),
				},
			},
		},
		{
			name:  "named query",
			input: "query Q { a b }",
			expected: []ast.Definition{
				&ast.OperationDefinition{
					Operation:    ast.Query,
					Name:         name("Q"),
					SelectionSet: selections(field("a"), field("b")),
				},
			},
		},
		{
			name: "fields with alias, arguments, directives and fragments",
			input: `mutation M($id: ID! = "x" @v) @op {
				u: user(id: $id, list: [1, 2.5], obj: {k: ENUM, n: null, b: false}) @include(if: true) {
					...F @d
					... on User { id }
					... @skip(if: $id) { name }
				}
			}`,
			expected: []ast.Definition{
				&ast.OperationDefinition{
					Operation: ast.Mutation,
					Name:      name("M"),
					VariableDefinitionSet: &ast.VariableDefinitionSet{
						Definitions: []*ast.VariableDefinition{{
							Variable:     &ast.Variable{Name: name("id")},
							Type:         &ast.NonNullType{Type: named("ID")},
							DefaultValue: &ast.StringValue{Value: "x"},
							Directives:   []*ast.ConstDirective{{Name: name("v")}},
						}},
					},
					Directives: []*ast.Directive{{Name: name("op")}},
					SelectionSet: selections(&ast.Field{
						Alias: name("u"),
						Name:  name("user"),
						ArgumentSet: &ast.ArgumentSet{Arguments: []*ast.Argument{
							{Name: name("id"), Value: &ast.Variable{Name: name("id")}},
							{Name: name("list"), Value: &ast.ListValue{Values: []ast.Value{
								&ast.IntValue{Value: "1"},
								&ast.FloatValue{Value: "2.5"},
							}}},
							{Name: name("obj"), Value: &ast.ObjectValue{Fields: []*ast.ObjectField{
								{Name: name("k"), Value: &ast.EnumValue{Value: "ENUM"}},
								{Name: name("n"), Value: &ast.NullValue{}},
								{Name: name("b"), Value: &ast.BooleanValue{Value: false}},
							}}},
						}},
						Directives: []*ast.Directive{{
							Name: name("include"),
							ArgumentSet: &ast.ArgumentSet{Arguments: []*ast.Argument{
								{Name: name("if"), Value: &ast.BooleanValue{Value: true}},
							}},
						}},
						SelectionSet: selections(
							&ast.FragmentSpread{Name: name("F"), Directives: []*ast.Directive{{Name: name("d")}}},
							&ast.InlineFragment{TypeCondition: named("User"), SelectionSet: selections(field("id"))},
							&ast.InlineFragment{
								Directives: []*ast.Directive{{
									Name: name("skip"),
									ArgumentSet: &ast.ArgumentSet{Arguments: []*ast.Argument{
										{Name: name("if"), Value: &ast.Variable{Name: name("id")}},
									}},
								}},
								SelectionSet: selections(field("name")),
							},
						),
					}),
				},
			},
		},
		{
			name:  "fragment definition",
			input: "fragment F on T @d { a }",
			expected: []ast.Definition{
				&ast.FragmentDefinition{
					Name:          name("F"),
					TypeCondition: named("T"),
					Directives:    []*ast.Directive{{Name: name("d")}},
					SelectionSet:  selections(field("a")),
				},
			},
		},
		{
			name:  "empty optional lists are dropped",
			input: "{ a() { } }",
			expected: []ast.Definition{
				&ast.OperationDefinition{
					Operation:    ast.Query,
					SelectionSet: selections(field("a")),
				},
			},
		},
		{
			name:  "empty list and object values",
			input: "{ a(l: [], o: {}) }",
			expected: []ast.Definition{
				&ast.OperationDefinition{
					Operation: ast.Query,
					SelectionSet: selections(&ast.Field{
						Name: name("a"),
						ArgumentSet: &ast.ArgumentSet{Arguments: []*ast.Argument{
							{Name: name("l"), Value: &ast.ListValue{}},
							{Name: name("o"), Value: &ast.ObjectValue{}},
						}},
					}),
				},
			},
		},
		{
			name: "object type with description, interfaces and arguments",
			input: `"""desc"""
			type A implements & B & C @key(fields: "id") {
				"field" f(x: [Int!]! = [1]): String!
				g: [A]
			}`,
			expected: []ast.Definition{
				&ast.ObjectTypeDefinition{
					Description: &ast.StringValue{Value: "desc", Block: true},
					Name:        name("A"),
					Interfaces:  &ast.NamedTypeSet{Types: []*ast.NamedType{named("B"), named("C")}},
					Directives: []*ast.ConstDirective{{
						Name: name("key"),
						ArgumentSet: &ast.ConstArgumentSet{Arguments: []*ast.ConstArgument{
							{Name: name("fields"), Value: &ast.StringValue{Value: "id"}},
						}},
					}},
					FieldDefinitionSet: &ast.FieldDefinitionSet{Definitions: []*ast.FieldDefinition{
						{
							Description: &ast.StringValue{Value: "field"},
							Name:        name("f"),
							InputValueDefinitionSet: &ast.InputValueDefinitionSet{Definitions: []*ast.InputValueDefinition{{
								Name: name("x"),
								Type: &ast.NonNullType{Type: &ast.ListType{
									Type: &ast.NonNullType{Type: named("Int")},
								}},
								DefaultValue: &ast.ConstListValue{Values: []ast.ConstValue{&ast.IntValue{Value: "1"}}},
							}}},
							Type: &ast.NonNullType{Type: named("String")},
						},
						{Name: name("g"), Type: &ast.ListType{Type: named("A")}},
					}},
				},
			},
		},
		{
			name: "schema, scalar, interface, union, enum and input definitions",
			input: `schema @s { query: Q mutation: M }
			scalar Date @docs(url: "x")
			interface I implements J { id: ID }
			union U = | A | B
			enum E { A "b" B @deprecated }
			input In { a: Int = 1 @d }`,
			expected: []ast.Definition{
				&ast.SchemaDefinition{
					Directives: []*ast.ConstDirective{{Name: name("s")}},
					OperationTypeDefinitionSet: &ast.OperationTypeDefinitionSet{Definitions: []*ast.OperationTypeDefinition{
						{Operation: ast.Query, Type: named("Q")},
						{Operation: ast.Mutation, Type: named("M")},
					}},
				},
				&ast.ScalarTypeDefinition{
					Name: name("Date"),
					Directives: []*ast.ConstDirective{{
						Name: name("docs"),
						ArgumentSet: &ast.ConstArgumentSet{Arguments: []*ast.ConstArgument{
							{Name: name("url"), Value: &ast.StringValue{Value: "x"}},
						}},
					}},
				},
				&ast.InterfaceTypeDefinition{
					Name:       name("I"),
					Interfaces: &ast.NamedTypeSet{Types: []*ast.NamedType{named("J")}},
					FieldDefinitionSet: &ast.FieldDefinitionSet{Definitions: []*ast.FieldDefinition{
						{Name: name("id"), Type: named("ID")},
					}},
				},
				&ast.UnionTypeDefinition{
					Name:  name("U"),
					Types: &ast.NamedTypeSet{Types: []*ast.NamedType{named("A"), named("B")}},
				},
				&ast.EnumTypeDefinition{
					Name: name("E"),
					ValueDefinitionSet: &ast.EnumValueDefinitionSet{Definitions: []*ast.EnumValueDefinition{
						{Name: &ast.EnumValue{Value: "A"}},
						{
							Description: &ast.StringValue{Value: "b"},
							Name:        &ast.EnumValue{Value: "B"},
							Directives:  []*ast.ConstDirective{{Name: name("deprecated")}},
						},
					}},
				},
				&ast.InputObjectTypeDefinition{
					Name: name("In"),
					InputValueDefinitionSet: &ast.InputValueDefinitionSet{Definitions: []*ast.InputValueDefinition{{
						Name:         name("a"),
						Type:         named("Int"),
						DefaultValue: &ast.IntValue{Value: "1"},
						Directives:   []*ast.ConstDirective{{Name: name("d")}},
					}}},
				},
			},
		},
		{
			name:  "directive definition",
			input: `directive @d(a: Int) repeatable on | FIELD | OBJECT`,
			expected: []ast.Definition{
				&ast.DirectiveDefinition{
					Name: name("d"),
					InputValueDefinitionSet: &ast.InputValueDefinitionSet{Definitions: []*ast.InputValueDefinition{
						{Name: name("a"), Type: named("Int")},
					}},
					Repeatable: true,
					LocationSet: &ast.DirectiveLocationSet{Locations: []ast.DirectiveLocation{
						&ast.ExecutableDirectiveLocation{Value: "FIELD"},
						&ast.TypeSystemDirectiveLocation{Value: "OBJECT"},
					}},
				},
			},
		},
		{
			name: "extensions",
			input: `extend schema @a
			extend scalar S @a
			extend type T { f: Int }
			extend interface I implements J
			extend union U = A
			extend enum E { X }
			extend input In { f: Int }`,
			expected: []ast.Definition{
				&ast.SchemaExtension{Directives: []*ast.ConstDirective{{Name: name("a")}}},
				&ast.ScalarTypeExtension{Name: name("S"), Directives: []*ast.ConstDirective{{Name: name("a")}}},
				&ast.ObjectTypeExtension{
					Name: name("T"),
					FieldDefinitionSet: &ast.FieldDefinitionSet{Definitions: []*ast.FieldDefinition{
						{Name: name("f"), Type: named("Int")},
					}},
				},
				&ast.InterfaceTypeExtension{
					Name:       name("I"),
					Interfaces: &ast.NamedTypeSet{Types: []*ast.NamedType{named("J")}},
				},
				&ast.UnionTypeExtension{
					Name:  name("U"),
					Types: &ast.NamedTypeSet{Types: []*ast.NamedType{named("A")}},
				},
				&ast.EnumTypeExtension{
					Name: name("E"),
					ValueDefinitionSet: &ast.EnumValueDefinitionSet{Definitions: []*ast.EnumValueDefinition{
						{Name: &ast.EnumValue{Value: "X"}},
					}},
				},
				&ast.InputObjectTypeExtension{
					Name: name("In"),
					InputValueDefinitionSet: &ast.InputValueDefinitionSet{Definitions: []*ast.InputValueDefinition{
						{Name: name("f"), Type: named("Int")},
					}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, doc.Definitions, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("definitions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserComments(t *testing.T) {
	input := "# leading\n" +
		"query Q( # after paren\n" +
		"  $a: Int = 1 # after default\n" +
		") {\n" +
		"  a # after a\n" +
		"  # before b\n" +
		"  b\n" +
		"} # trailing\n" +
		"# end\n"

	expected := &ast.Document{
		Comments: []ast.Comment{block("end")},
		Definitions: []ast.Definition{
			&ast.OperationDefinition{
				Comments:  []ast.Comment{block("leading")},
				Operation: ast.Query,
				Name:      name("Q"),
				VariableDefinitionSet: &ast.VariableDefinitionSet{
					CommentsOpeningBracket: []ast.Comment{inline("after paren")},
					Definitions: []*ast.VariableDefinition{{
						Variable: &ast.Variable{Name: name("a")},
						Type:     named("Int"),
						DefaultValue: &ast.IntValue{
							Comments: []ast.Comment{inline("after default")},
							Value:    "1",
						},
					}},
				},
				SelectionSet: &ast.SelectionSet{
					Selections: []ast.Selection{
						&ast.Field{Comments: []ast.Comment{inline("after a")}, Name: name("a")},
						&ast.Field{Comments: []ast.Comment{block("before b")}, Name: name("b")},
					},
					CommentsClosingBracket: []ast.Comment{inline("trailing")},
				},
			},
		},
	}

	doc, err := parser.Parse(input)
	require.NoError(t, err)
	if diff := cmp.Diff(expected, doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParserCommentAttribution(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Node
		pick     func(doc *ast.Document) ast.Node
	}{
		{
			name:  "wrapped type comments move to the outermost type",
			input: "type A {\n  f: [ # open\n  Int # inner\n  ] # close\n  ! # bang\n}",
			expected: &ast.NonNullType{
				Comments: []ast.Comment{inline("open"), inline("inner"), inline("close"), inline("bang")},
				Type:     &ast.ListType{Type: named("Int")},
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0].(*ast.ObjectTypeDefinition).FieldDefinitionSet.Definitions[0].Type
			},
		},
		{
			name:  "variable comments belong to the variable definition",
			input: "query (\n  # var\n  $a # name\n  : Int) { a }",
			expected: &ast.VariableDefinition{
				Comments: []ast.Comment{block("var"), inline("name")},
				Variable: &ast.Variable{Name: name("a")},
				Type:     named("Int"),
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0].(*ast.OperationDefinition).VariableDefinitionSet.Definitions[0]
			},
		},
		{
			name:  "enum value comments belong to the definition",
			input: "enum E {\n  # a\n  A\n}",
			expected: &ast.EnumValueDefinition{
				Comments: []ast.Comment{block("a")},
				Name:     &ast.EnumValue{Value: "A"},
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0].(*ast.EnumTypeDefinition).ValueDefinitionSet.Definitions[0]
			},
		},
		{
			name:  "delimiter comments go to the following member",
			input: "union U = # eq\n  # a\n  | A\n  # b\n  | B",
			expected: &ast.NamedTypeSet{
				Comments: []ast.Comment{inline("eq")},
				Types: []*ast.NamedType{
					{Comments: []ast.Comment{block("a")}, Name: name("A")},
					{Comments: []ast.Comment{block("b")}, Name: name("B")},
				},
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0].(*ast.UnionTypeDefinition).Types
			},
		},
		{
			name:  "repeatable keyword comments belong to the directive definition",
			input: "directive @d repeatable # r\n on FIELD",
			expected: &ast.DirectiveDefinition{
				Comments:   []ast.Comment{inline("r")},
				Name:       name("d"),
				Repeatable: true,
				LocationSet: &ast.DirectiveLocationSet{Locations: []ast.DirectiveLocation{
					&ast.ExecutableDirectiveLocation{Value: "FIELD"},
				}},
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0]
			},
		},
		{
			name:  "alias, colon and name comments belong to the field",
			input: "{\n  # alias\n  x # alias inline\n  : # colon\n  y # name\n}",
			expected: &ast.Field{
				Comments: []ast.Comment{block("alias"), inline("alias inline"), inline("colon"), inline("name")},
				Alias:    name("x"),
				Name:     name("y"),
			},
			pick: func(doc *ast.Document) ast.Node {
				return doc.Definitions[0].(*ast.OperationDefinition).SelectionSet.Selections[0]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, tt.pick(doc), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("node mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    error
		message string
	}{
		{"variable as field", "{ $ }", gqlerror.ErrUnexpected, "Unexpected token: $ (line 1, column 3)"},
		{"unexpected EOF", "{ a", gqlerror.ErrUnexpected, "Unexpected EOF (line 1, column 3)"},
		{"variable in const position", "type A { f(a: Int = $v): Int }", gqlerror.ErrUnexpected, "Unexpected token: $ (line 1, column 21)"},
		{"variable in schema directive", "scalar S @d(a: $v)", gqlerror.ErrUnexpected, "Unexpected token: $ (line 1, column 16)"},
		{"fragment named on", "fragment on on T { a }", gqlerror.ErrUnexpected, "Unexpected token: on (line 1, column 10)"},
		{"unknown definition", "foo { a }", gqlerror.ErrUnexpected, "Unexpected token: foo (line 1, column 1)"},
		{"description on operation", `"d" query { a }`, gqlerror.ErrUnexpected, "Unexpected token: query (line 1, column 5)"},
		{"description on extension", `"d" extend scalar S @a`, gqlerror.ErrUnexpected, "Unexpected token: extend (line 1, column 5)"},
		{"enum value true", "enum E { true }", gqlerror.ErrUnexpected, "Unexpected token: true (line 1, column 10)"},
		{"unknown directive location", "directive @d on NOWHERE", gqlerror.ErrUnexpected, "Unexpected token: NOWHERE (line 1, column 17)"},
		{"directive without locations", "directive @d(a: Int) scalar S", gqlerror.ErrUnexpected, "Unexpected token: scalar (expected on) (line 1, column 22)"},
		{"empty operation selection set", "query { }", gqlerror.ErrUnexpected, "Unexpected token: } (line 1, column 9)"},
		{"empty scalar extension", "extend scalar S", gqlerror.ErrUnexpected, "Unexpected EOF (expected @) (line 1, column 15)"},
		{"empty type extension", "extend type T scalar S", gqlerror.ErrUnexpected, "Unexpected token: scalar (expected {) (line 1, column 15)"},
		{"unknown extension", "extend directive @d on FIELD", gqlerror.ErrUnexpected, "Unexpected token: directive (line 1, column 8)"},
		{"unknown operation type in schema", "schema { query: Q other: O }", gqlerror.ErrUnexpected, "Unexpected token: other (line 1, column 19)"},
		{"missing colon", "type A { f Int }", gqlerror.ErrUnexpected, "Unexpected token: Int (expected :) (line 1, column 12)"},
		{"tokenizer error surfaces", "{ a ~ }", gqlerror.ErrSyntax, `Unexpected character: "~ }" (line 1, column 5)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := parser.Parse("  # only a comment\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Definitions)
	assert.Equal(t, []ast.Comment{block("only a comment")}, doc.Comments)
}
