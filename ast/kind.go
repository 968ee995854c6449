package ast

// Kind tags every node type. Const and non-const variants of the same
// construct share a kind.
type Kind uint8

const (
	KindDocument Kind = iota
	KindOperationDefinition
	KindFragmentDefinition
	KindSelectionSet
	KindField
	KindFragmentSpread
	KindInlineFragment

	KindSchemaDefinition
	KindSchemaExtension
	KindScalarTypeDefinition
	KindScalarTypeExtension
	KindObjectTypeDefinition
	KindObjectTypeExtension
	KindInterfaceTypeDefinition
	KindInterfaceTypeExtension
	KindUnionTypeDefinition
	KindUnionTypeExtension
	KindEnumTypeDefinition
	KindEnumTypeExtension
	KindEnumValueDefinitionSet
	KindEnumValueDefinition
	KindInputObjectTypeDefinition
	KindInputObjectTypeExtension
	KindDirectiveDefinition

	KindOperationTypeDefinitionSet
	KindOperationTypeDefinition
	KindNamedTypeSet
	KindDirectiveLocationSet
	KindExecutableDirectiveLocation
	KindTypeSystemDirectiveLocation

	KindVariableDefinitionSet
	KindVariableDefinition
	KindDirective
	KindArgumentSet
	KindArgument
	KindFieldDefinitionSet
	KindFieldDefinition
	KindInputValueDefinitionSet
	KindInputValueDefinition

	KindNamedType
	KindListType
	KindNonNullType

	KindIntValue
	KindFloatValue
	KindStringValue
	KindBooleanValue
	KindNullValue
	KindEnumValue
	KindListValue
	KindObjectValue
	KindObjectField
	KindVariable

	KindName
	KindBlockComment
	KindInlineComment

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:                    "Document",
	KindOperationDefinition:         "OperationDefinition",
	KindFragmentDefinition:          "FragmentDefinition",
	KindSelectionSet:                "SelectionSet",
	KindField:                       "Field",
	KindFragmentSpread:              "FragmentSpread",
	KindInlineFragment:              "InlineFragment",
	KindSchemaDefinition:            "SchemaDefinition",
	KindSchemaExtension:             "SchemaExtension",
	KindScalarTypeDefinition:        "ScalarTypeDefinition",
	KindScalarTypeExtension:         "ScalarTypeExtension",
	KindObjectTypeDefinition:        "ObjectTypeDefinition",
	KindObjectTypeExtension:         "ObjectTypeExtension",
	KindInterfaceTypeDefinition:     "InterfaceTypeDefinition",
	KindInterfaceTypeExtension:      "InterfaceTypeExtension",
	KindUnionTypeDefinition:         "UnionTypeDefinition",
	KindUnionTypeExtension:          "UnionTypeExtension",
	KindEnumTypeDefinition:          "EnumTypeDefinition",
	KindEnumTypeExtension:           "EnumTypeExtension",
	KindEnumValueDefinitionSet:      "EnumValueDefinitionSet",
	KindEnumValueDefinition:         "EnumValueDefinition",
	KindInputObjectTypeDefinition:   "InputObjectTypeDefinition",
	KindInputObjectTypeExtension:    "InputObjectTypeExtension",
	KindDirectiveDefinition:         "DirectiveDefinition",
	KindOperationTypeDefinitionSet:  "OperationTypeDefinitionSet",
	KindOperationTypeDefinition:     "OperationTypeDefinition",
	KindNamedTypeSet:                "NamedTypeSet",
	KindDirectiveLocationSet:        "DirectiveLocationSet",
	KindExecutableDirectiveLocation: "ExecutableDirectiveLocation",
	KindTypeSystemDirectiveLocation: "TypeSystemDirectiveLocation",
	KindVariableDefinitionSet:       "VariableDefinitionSet",
	KindVariableDefinition:          "VariableDefinition",
	KindDirective:                   "Directive",
	KindArgumentSet:                 "ArgumentSet",
	KindArgument:                    "Argument",
	KindFieldDefinitionSet:          "FieldDefinitionSet",
	KindFieldDefinition:             "FieldDefinition",
	KindInputValueDefinitionSet:     "InputValueDefinitionSet",
	KindInputValueDefinition:        "InputValueDefinition",
	KindNamedType:                   "NamedType",
	KindListType:                    "ListType",
	KindNonNullType:                 "NonNullType",
	KindIntValue:                    "IntValue",
	KindFloatValue:                  "FloatValue",
	KindStringValue:                 "StringValue",
	KindBooleanValue:                "BooleanValue",
	KindNullValue:                   "NullValue",
	KindEnumValue:                   "EnumValue",
	KindListValue:                   "ListValue",
	KindObjectValue:                 "ObjectValue",
	KindObjectField:                 "ObjectField",
	KindVariable:                    "Variable",
	KindName:                        "Name",
	KindBlockComment:                "BlockComment",
	KindInlineComment:               "InlineComment",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Kinds returns every node kind.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}
