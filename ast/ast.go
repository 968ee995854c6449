// Package ast defines the comment-preserving syntax tree of a GraphQL document.
//
// Nodes are pointers to structs. Optional children are nil when absent and
// wrapped lists (selection sets, argument lists, ...) are nil rather than
// empty when the source has no items. Trees are treated as immutable; the
// traverse package builds modified copies.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	node()
}

// Definition is a top-level definition of a Document.
type Definition interface {
	Node
	definitionNode()
}

// Selection is an entry of a SelectionSet.
type Selection interface {
	Node
	selectionNode()
}

// Value is a value in a context where variables are allowed.
type Value interface {
	Node
	valueNode()
}

// ConstValue is a value in a context where variables are not allowed, such
// as default values and type-system directive arguments.
type ConstValue interface {
	Node
	constValueNode()
}

// Type is a type reference.
type Type interface {
	Node
	typeNode()
}

// NullableType is a type that may be wrapped by a NonNullType.
type NullableType interface {
	Type
	nullableTypeNode()
}

type DirectiveLocation interface {
	Node
	directiveLocationNode()
}

// Comment is a BlockComment or an InlineComment. A block comment sits on its
// own line before the node it belongs to, an inline comment follows a token
// of the node on the same line.
type Comment interface {
	Node
	Text() string
	commentNode()
}

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type (
	Document struct {
		Comments    []Comment
		Definitions []Definition
	}

	OperationDefinition struct {
		Comments              []Comment
		Operation             OperationType
		Name                  *Name
		VariableDefinitionSet *VariableDefinitionSet
		Directives            []*Directive
		SelectionSet          *SelectionSet
	}

	FragmentDefinition struct {
		Comments      []Comment
		Name          *Name
		TypeCondition *NamedType
		Directives    []*Directive
		SelectionSet  *SelectionSet
	}

	SelectionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Selections             []Selection
		CommentsClosingBracket []Comment
	}

	Field struct {
		Comments     []Comment
		Alias        *Name
		Name         *Name
		ArgumentSet  *ArgumentSet
		Directives   []*Directive
		SelectionSet *SelectionSet
	}

	FragmentSpread struct {
		Comments   []Comment
		Name       *Name
		Directives []*Directive
	}

	InlineFragment struct {
		Comments      []Comment
		TypeCondition *NamedType
		Directives    []*Directive
		SelectionSet  *SelectionSet
	}
)

type (
	SchemaDefinition struct {
		Comments                   []Comment
		Description                *StringValue
		Directives                 []*ConstDirective
		OperationTypeDefinitionSet *OperationTypeDefinitionSet
	}

	SchemaExtension struct {
		Comments                   []Comment
		Directives                 []*ConstDirective
		OperationTypeDefinitionSet *OperationTypeDefinitionSet
	}

	OperationTypeDefinitionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Definitions            []*OperationTypeDefinition
		CommentsClosingBracket []Comment
	}

	OperationTypeDefinition struct {
		Comments  []Comment
		Operation OperationType
		Type      *NamedType
	}

	ScalarTypeDefinition struct {
		Comments    []Comment
		Description *StringValue
		Name        *Name
		Directives  []*ConstDirective
	}

	ScalarTypeExtension struct {
		Comments   []Comment
		Name       *Name
		Directives []*ConstDirective
	}

	ObjectTypeDefinition struct {
		Comments           []Comment
		Description        *StringValue
		Name               *Name
		Interfaces         *NamedTypeSet
		Directives         []*ConstDirective
		FieldDefinitionSet *FieldDefinitionSet
	}

	ObjectTypeExtension struct {
		Comments           []Comment
		Name               *Name
		Interfaces         *NamedTypeSet
		Directives         []*ConstDirective
		FieldDefinitionSet *FieldDefinitionSet
	}

	InterfaceTypeDefinition struct {
		Comments           []Comment
		Description        *StringValue
		Name               *Name
		Interfaces         *NamedTypeSet
		Directives         []*ConstDirective
		FieldDefinitionSet *FieldDefinitionSet
	}

	InterfaceTypeExtension struct {
		Comments           []Comment
		Name               *Name
		Interfaces         *NamedTypeSet
		Directives         []*ConstDirective
		FieldDefinitionSet *FieldDefinitionSet
	}

	UnionTypeDefinition struct {
		Comments    []Comment
		Description *StringValue
		Name        *Name
		Directives  []*ConstDirective
		Types       *NamedTypeSet
	}

	UnionTypeExtension struct {
		Comments   []Comment
		Name       *Name
		Directives []*ConstDirective
		Types      *NamedTypeSet
	}

	EnumTypeDefinition struct {
		Comments           []Comment
		Description        *StringValue
		Name               *Name
		Directives         []*ConstDirective
		ValueDefinitionSet *EnumValueDefinitionSet
	}

	EnumTypeExtension struct {
		Comments           []Comment
		Name               *Name
		Directives         []*ConstDirective
		ValueDefinitionSet *EnumValueDefinitionSet
	}

	EnumValueDefinitionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Definitions            []*EnumValueDefinition
		CommentsClosingBracket []Comment
	}

	EnumValueDefinition struct {
		Comments    []Comment
		Description *StringValue
		Name        *EnumValue
		Directives  []*ConstDirective
	}

	InputObjectTypeDefinition struct {
		Comments                []Comment
		Description             *StringValue
		Name                    *Name
		Directives              []*ConstDirective
		InputValueDefinitionSet *InputValueDefinitionSet
	}

	InputObjectTypeExtension struct {
		Comments                []Comment
		Name                    *Name
		Directives              []*ConstDirective
		InputValueDefinitionSet *InputValueDefinitionSet
	}

	DirectiveDefinition struct {
		Comments                []Comment
		Description             *StringValue
		Name                    *Name
		InputValueDefinitionSet *InputValueDefinitionSet
		Repeatable              bool
		LocationSet             *DirectiveLocationSet
	}

	// NamedTypeSet is the `implements A & B` list of object and interface
	// types or the `= A | B` member list of unions.
	NamedTypeSet struct {
		Comments []Comment
		Types    []*NamedType
	}

	DirectiveLocationSet struct {
		Comments  []Comment
		Locations []DirectiveLocation
	}

	// ExecutableDirectiveLocation is one of QUERY, MUTATION, SUBSCRIPTION,
	// FIELD, FRAGMENT_DEFINITION, FRAGMENT_SPREAD, INLINE_FRAGMENT and
	// VARIABLE_DEFINITION.
	ExecutableDirectiveLocation struct {
		Comments []Comment
		Value    string
	}

	// TypeSystemDirectiveLocation is one of SCHEMA, SCALAR, OBJECT,
	// FIELD_DEFINITION, ARGUMENT_DEFINITION, INTERFACE, UNION, ENUM,
	// ENUM_VALUE, INPUT_OBJECT and INPUT_FIELD_DEFINITION.
	TypeSystemDirectiveLocation struct {
		Comments []Comment
		Value    string
	}

	FieldDefinitionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Definitions            []*FieldDefinition
		CommentsClosingBracket []Comment
	}

	FieldDefinition struct {
		Comments                []Comment
		Description             *StringValue
		Name                    *Name
		InputValueDefinitionSet *InputValueDefinitionSet
		Type                    Type
		Directives              []*ConstDirective
	}

	// InputValueDefinitionSet holds field arguments, directive arguments or
	// the fields of an input object.
	InputValueDefinitionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Definitions            []*InputValueDefinition
		CommentsClosingBracket []Comment
	}

	InputValueDefinition struct {
		Comments     []Comment
		Description  *StringValue
		Name         *Name
		Type         Type
		DefaultValue ConstValue
		Directives   []*ConstDirective
	}
)

type (
	VariableDefinitionSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Definitions            []*VariableDefinition
		CommentsClosingBracket []Comment
	}

	VariableDefinition struct {
		Comments     []Comment
		Variable     *Variable
		Type         Type
		DefaultValue ConstValue
		Directives   []*ConstDirective
	}

	Directive struct {
		Comments    []Comment
		Name        *Name
		ArgumentSet *ArgumentSet
	}

	ConstDirective struct {
		Comments    []Comment
		Name        *Name
		ArgumentSet *ConstArgumentSet
	}

	ArgumentSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Arguments              []*Argument
		CommentsClosingBracket []Comment
	}

	ConstArgumentSet struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Arguments              []*ConstArgument
		CommentsClosingBracket []Comment
	}

	Argument struct {
		Comments []Comment
		Name     *Name
		Value    Value
	}

	ConstArgument struct {
		Comments []Comment
		Name     *Name
		Value    ConstValue
	}
)

type (
	NamedType struct {
		Comments []Comment
		Name     *Name
	}

	ListType struct {
		Comments []Comment
		Type     Type
	}

	NonNullType struct {
		Comments []Comment
		Type     NullableType
	}
)

type (
	Name struct {
		Value string
	}

	BlockComment struct {
		Value string
	}

	InlineComment struct {
		Value string
	}
)

func (n *Document) Kind() Kind                    { return KindDocument }
func (n *OperationDefinition) Kind() Kind         { return KindOperationDefinition }
func (n *FragmentDefinition) Kind() Kind          { return KindFragmentDefinition }
func (n *SelectionSet) Kind() Kind                { return KindSelectionSet }
func (n *Field) Kind() Kind                       { return KindField }
func (n *FragmentSpread) Kind() Kind              { return KindFragmentSpread }
func (n *InlineFragment) Kind() Kind              { return KindInlineFragment }
func (n *SchemaDefinition) Kind() Kind            { return KindSchemaDefinition }
func (n *SchemaExtension) Kind() Kind             { return KindSchemaExtension }
func (n *OperationTypeDefinitionSet) Kind() Kind  { return KindOperationTypeDefinitionSet }
func (n *OperationTypeDefinition) Kind() Kind     { return KindOperationTypeDefinition }
func (n *ScalarTypeDefinition) Kind() Kind        { return KindScalarTypeDefinition }
func (n *ScalarTypeExtension) Kind() Kind         { return KindScalarTypeExtension }
func (n *ObjectTypeDefinition) Kind() Kind        { return KindObjectTypeDefinition }
func (n *ObjectTypeExtension) Kind() Kind         { return KindObjectTypeExtension }
func (n *InterfaceTypeDefinition) Kind() Kind     { return KindInterfaceTypeDefinition }
func (n *InterfaceTypeExtension) Kind() Kind      { return KindInterfaceTypeExtension }
func (n *UnionTypeDefinition) Kind() Kind         { return KindUnionTypeDefinition }
func (n *UnionTypeExtension) Kind() Kind          { return KindUnionTypeExtension }
func (n *EnumTypeDefinition) Kind() Kind          { return KindEnumTypeDefinition }
func (n *EnumTypeExtension) Kind() Kind           { return KindEnumTypeExtension }
func (n *EnumValueDefinitionSet) Kind() Kind      { return KindEnumValueDefinitionSet }
func (n *EnumValueDefinition) Kind() Kind         { return KindEnumValueDefinition }
func (n *InputObjectTypeDefinition) Kind() Kind   { return KindInputObjectTypeDefinition }
func (n *InputObjectTypeExtension) Kind() Kind    { return KindInputObjectTypeExtension }
func (n *DirectiveDefinition) Kind() Kind         { return KindDirectiveDefinition }
func (n *NamedTypeSet) Kind() Kind                { return KindNamedTypeSet }
func (n *DirectiveLocationSet) Kind() Kind        { return KindDirectiveLocationSet }
func (n *ExecutableDirectiveLocation) Kind() Kind { return KindExecutableDirectiveLocation }
func (n *TypeSystemDirectiveLocation) Kind() Kind { return KindTypeSystemDirectiveLocation }
func (n *FieldDefinitionSet) Kind() Kind          { return KindFieldDefinitionSet }
func (n *FieldDefinition) Kind() Kind             { return KindFieldDefinition }
func (n *InputValueDefinitionSet) Kind() Kind     { return KindInputValueDefinitionSet }
func (n *InputValueDefinition) Kind() Kind        { return KindInputValueDefinition }
func (n *VariableDefinitionSet) Kind() Kind       { return KindVariableDefinitionSet }
func (n *VariableDefinition) Kind() Kind          { return KindVariableDefinition }
func (n *Directive) Kind() Kind                   { return KindDirective }
func (n *ConstDirective) Kind() Kind              { return KindDirective }
func (n *ArgumentSet) Kind() Kind                 { return KindArgumentSet }
func (n *ConstArgumentSet) Kind() Kind            { return KindArgumentSet }
func (n *Argument) Kind() Kind                    { return KindArgument }
func (n *ConstArgument) Kind() Kind               { return KindArgument }
func (n *NamedType) Kind() Kind                   { return KindNamedType }
func (n *ListType) Kind() Kind                    { return KindListType }
func (n *NonNullType) Kind() Kind                 { return KindNonNullType }
func (n *Name) Kind() Kind                        { return KindName }
func (n *BlockComment) Kind() Kind                { return KindBlockComment }
func (n *InlineComment) Kind() Kind               { return KindInlineComment }

func (*Document) node()                    {}
func (*OperationDefinition) node()         {}
func (*FragmentDefinition) node()          {}
func (*SelectionSet) node()                {}
func (*Field) node()                       {}
func (*FragmentSpread) node()              {}
func (*InlineFragment) node()              {}
func (*SchemaDefinition) node()            {}
func (*SchemaExtension) node()             {}
func (*OperationTypeDefinitionSet) node()  {}
func (*OperationTypeDefinition) node()     {}
func (*ScalarTypeDefinition) node()        {}
func (*ScalarTypeExtension) node()         {}
func (*ObjectTypeDefinition) node()        {}
func (*ObjectTypeExtension) node()         {}
func (*InterfaceTypeDefinition) node()     {}
func (*InterfaceTypeExtension) node()      {}
func (*UnionTypeDefinition) node()         {}
func (*UnionTypeExtension) node()          {}
func (*EnumTypeDefinition) node()          {}
func (*EnumTypeExtension) node()           {}
func (*EnumValueDefinitionSet) node()      {}
func (*EnumValueDefinition) node()         {}
func (*InputObjectTypeDefinition) node()   {}
func (*InputObjectTypeExtension) node()    {}
func (*DirectiveDefinition) node()         {}
func (*NamedTypeSet) node()                {}
func (*DirectiveLocationSet) node()        {}
func (*ExecutableDirectiveLocation) node() {}
func (*TypeSystemDirectiveLocation) node() {}
func (*FieldDefinitionSet) node()          {}
func (*FieldDefinition) node()             {}
func (*InputValueDefinitionSet) node()     {}
func (*InputValueDefinition) node()        {}
func (*VariableDefinitionSet) node()       {}
func (*VariableDefinition) node()          {}
func (*Directive) node()                   {}
func (*ConstDirective) node()              {}
func (*ArgumentSet) node()                 {}
func (*ConstArgumentSet) node()            {}
func (*Argument) node()                    {}
func (*ConstArgument) node()               {}
func (*NamedType) node()                   {}
func (*ListType) node()                    {}
func (*NonNullType) node()                 {}
func (*Name) node()                        {}
func (*BlockComment) node()                {}
func (*InlineComment) node()               {}

func (*OperationDefinition) definitionNode()       {}
func (*FragmentDefinition) definitionNode()        {}
func (*SchemaDefinition) definitionNode()          {}
func (*SchemaExtension) definitionNode()           {}
func (*ScalarTypeDefinition) definitionNode()      {}
func (*ScalarTypeExtension) definitionNode()       {}
func (*ObjectTypeDefinition) definitionNode()      {}
func (*ObjectTypeExtension) definitionNode()       {}
func (*InterfaceTypeDefinition) definitionNode()   {}
func (*InterfaceTypeExtension) definitionNode()    {}
func (*UnionTypeDefinition) definitionNode()       {}
func (*UnionTypeExtension) definitionNode()        {}
func (*EnumTypeDefinition) definitionNode()        {}
func (*EnumTypeExtension) definitionNode()         {}
func (*InputObjectTypeDefinition) definitionNode() {}
func (*InputObjectTypeExtension) definitionNode()  {}
func (*DirectiveDefinition) definitionNode()       {}

func (*Field) selectionNode()          {}
func (*FragmentSpread) selectionNode() {}
func (*InlineFragment) selectionNode() {}

func (*NamedType) typeNode()   {}
func (*ListType) typeNode()    {}
func (*NonNullType) typeNode() {}

func (*NamedType) nullableTypeNode() {}
func (*ListType) nullableTypeNode()  {}

func (*ExecutableDirectiveLocation) directiveLocationNode() {}
func (*TypeSystemDirectiveLocation) directiveLocationNode() {}

func (c *BlockComment) Text() string  { return c.Value }
func (c *InlineComment) Text() string { return c.Value }

func (*BlockComment) commentNode()  {}
func (*InlineComment) commentNode() {}
