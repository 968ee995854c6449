package printer

import (
	"gqlfmt/ast"
)

// node lays out n from the layouts of its children. parent is the closest
// enclosing node, nil for the root.
func (l *layout) node(n ast.Node, parent ast.Node) []item {
	sp := l.space

	switch n := n.(type) {
	case *ast.Document:
		return l.document(n)

	case *ast.OperationDefinition:
		if isShorthandQuery(n) {
			return concat(l.comments(n.Comments), l.of(n.SelectionSet))
		}
		var name []item
		if n.Name != nil {
			name = concat(texts(" "), l.of(n.Name))
		}
		return concat(
			l.comments(n.Comments),
			texts(string(n.Operation)),
			name,
			l.of(n.VariableDefinitionSet),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.SelectionSet)),
		)

	case *ast.FragmentDefinition:
		return concat(
			l.comments(n.Comments),
			texts("fragment "),
			l.of(n.Name),
			texts(" on "),
			l.of(n.TypeCondition),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.SelectionSet)),
		)

	case *ast.SelectionSet:
		list := wrappedList{
			items:     layoutsOf(l, n.Selections),
			open:      "{",
			delimiter: ",",
			close:     "}",
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
			force:     true,
		}
		if l.opts.CompactSelectionSets {
			list.spacer, list.force = sp, false
			if l.opts.Pretty {
				list.delimiter = " "
			}
		}
		return l.wrapped(list)

	case *ast.Field:
		var alias []item
		if n.Alias != nil {
			alias = concat(l.of(n.Alias), texts(":", sp))
		}
		return concat(
			l.comments(n.Comments),
			alias,
			l.of(n.Name),
			l.of(n.ArgumentSet),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.SelectionSet)),
		)

	case *ast.FragmentSpread:
		return concat(
			l.comments(n.Comments),
			texts("..."),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.InlineFragment:
		var condition []item
		if n.TypeCondition != nil {
			condition = concat(texts(sp, "on "), l.of(n.TypeCondition))
		}
		return concat(
			l.comments(n.Comments),
			texts("..."),
			condition,
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.SelectionSet)),
		)

	case *ast.SchemaDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("schema"),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.OperationTypeDefinitionSet)),
		)

	case *ast.SchemaExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend schema"),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.OperationTypeDefinitionSet)),
		)

	case *ast.OperationTypeDefinitionSet:
		return l.wrapped(wrappedList{
			items:     layoutsOf(l, n.Definitions),
			open:      "{",
			delimiter: ",",
			close:     "}",
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
			force:     true,
		})

	case *ast.OperationTypeDefinition:
		return concat(
			l.comments(n.Comments),
			texts(string(n.Operation), ":", sp),
			l.of(n.Type),
		)

	case *ast.ScalarTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("scalar "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.ScalarTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend scalar "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.ObjectTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("type "),
			l.of(n.Name),
			l.of(n.Interfaces),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.FieldDefinitionSet)),
		)

	case *ast.ObjectTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend type "),
			l.of(n.Name),
			l.of(n.Interfaces),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.FieldDefinitionSet)),
		)

	case *ast.InterfaceTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("interface "),
			l.of(n.Name),
			l.of(n.Interfaces),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.FieldDefinitionSet)),
		)

	case *ast.InterfaceTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend interface "),
			l.of(n.Name),
			l.of(n.Interfaces),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.FieldDefinitionSet)),
		)

	case *ast.UnionTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("union "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.of(n.Types),
		)

	case *ast.UnionTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend union "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.of(n.Types),
		)

	case *ast.EnumTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("enum "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.ValueDefinitionSet)),
		)

	case *ast.EnumTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend enum "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.ValueDefinitionSet)),
		)

	case *ast.EnumValueDefinitionSet:
		return l.wrapped(wrappedList{
			items:     layoutsOf(l, n.Definitions),
			open:      "{",
			delimiter: ",",
			close:     "}",
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
			force:     true,
		})

	case *ast.EnumValueDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.InputObjectTypeDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("input "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.InputValueDefinitionSet)),
		)

	case *ast.InputObjectTypeExtension:
		return concat(
			l.comments(n.Comments),
			texts("extend input "),
			l.of(n.Name),
			l.directives(layoutsOf(l, n.Directives)),
			l.withSpace(l.of(n.InputValueDefinitionSet)),
		)

	case *ast.DirectiveDefinition:
		repeatable := " "
		if n.Repeatable {
			repeatable = " repeatable "
		}
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			texts("directive", sp, "@"),
			l.of(n.Name),
			l.of(n.InputValueDefinitionSet),
			texts(repeatable),
			l.of(n.LocationSet),
		)

	case *ast.NamedTypeSet:
		return l.namedTypeSet(n, parent)

	case *ast.DirectiveLocationSet:
		return l.directiveLocationSet(n)

	case *ast.ExecutableDirectiveLocation:
		return concat(l.comments(n.Comments), texts(n.Value))

	case *ast.TypeSystemDirectiveLocation:
		return concat(l.comments(n.Comments), texts(n.Value))

	case *ast.FieldDefinitionSet:
		return l.wrapped(wrappedList{
			items:     layoutsOf(l, n.Definitions),
			open:      "{",
			delimiter: ",",
			close:     "}",
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
			force:     true,
		})

	case *ast.FieldDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			l.of(n.Name),
			l.of(n.InputValueDefinitionSet),
			texts(":", sp),
			l.of(n.Type),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.InputValueDefinitionSet:
		open, close, block := inputValueBrackets(parent)
		delimiter := ","
		if !block {
			delimiter += sp
		}
		return l.wrapped(wrappedList{
			items:     layoutsOf(l, n.Definitions),
			open:      open,
			delimiter: delimiter,
			close:     close,
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
			force:     block,
		})

	case *ast.InputValueDefinition:
		return concat(
			l.description(n.Description, n.Comments),
			l.comments(n.Comments),
			l.of(n.Name),
			texts(":", sp),
			l.of(n.Type),
			l.defaultValue(n.DefaultValue),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.VariableDefinitionSet:
		return l.wrapped(wrappedList{
			items:     layoutsOf(l, n.Definitions),
			open:      "(",
			delimiter: "," + sp,
			close:     ")",
			opening:   n.CommentsOpeningBracket,
			closing:   n.CommentsClosingBracket,
		})

	case *ast.VariableDefinition:
		return concat(
			l.comments(n.Comments),
			l.of(n.Variable),
			texts(":", sp),
			l.of(n.Type),
			l.defaultValue(n.DefaultValue),
			l.directives(layoutsOf(l, n.Directives)),
		)

	case *ast.Directive:
		return concat(l.comments(n.Comments), texts("@"), l.of(n.Name), l.of(n.ArgumentSet))

	case *ast.ConstDirective:
		return concat(l.comments(n.Comments), texts("@"), l.of(n.Name), l.of(n.ArgumentSet))

	case *ast.ArgumentSet:
		return l.arguments(layoutsOf(l, n.Arguments), n.CommentsOpeningBracket, n.CommentsClosingBracket)

	case *ast.ConstArgumentSet:
		return l.arguments(layoutsOf(l, n.Arguments), n.CommentsOpeningBracket, n.CommentsClosingBracket)

	case *ast.Argument:
		return concat(l.comments(n.Comments), l.of(n.Name), texts(":", sp), l.of(n.Value))

	case *ast.ConstArgument:
		return concat(l.comments(n.Comments), l.of(n.Name), texts(":", sp), l.of(n.Value))

	case *ast.NamedType:
		return concat(l.comments(n.Comments), l.of(n.Name))

	case *ast.ListType:
		return concat(l.comments(n.Comments), texts("["), l.of(n.Type), texts("]"))

	case *ast.NonNullType:
		return concat(l.comments(n.Comments), l.of(n.Type), texts("!"))

	case *ast.IntValue:
		return concat(l.comments(n.Comments), texts(n.Value))

	case *ast.FloatValue:
		return concat(l.comments(n.Comments), texts(n.Value))

	case *ast.StringValue:
		return concat(l.comments(n.Comments), l.stringValue(n))

	case *ast.BooleanValue:
		value := "false"
		if n.Value {
			value = "true"
		}
		return concat(l.comments(n.Comments), texts(value))

	case *ast.NullValue:
		return concat(l.comments(n.Comments), texts("null"))

	case *ast.EnumValue:
		return concat(l.comments(n.Comments), texts(n.Value))

	case *ast.Variable:
		return concat(l.comments(n.Comments), texts("$"), l.of(n.Name))

	case *ast.ListValue:
		return concat(l.comments(n.Comments), l.list(layoutsOf(l, n.Values), n.CommentsOpeningBracket, n.CommentsClosingBracket))

	case *ast.ConstListValue:
		return concat(l.comments(n.Comments), l.list(layoutsOf(l, n.Values), n.CommentsOpeningBracket, n.CommentsClosingBracket))

	case *ast.ObjectValue:
		return concat(l.comments(n.Comments), l.object(layoutsOf(l, n.Fields), n.CommentsOpeningBracket, n.CommentsClosingBracket))

	case *ast.ConstObjectValue:
		return concat(l.comments(n.Comments), l.object(layoutsOf(l, n.Fields), n.CommentsOpeningBracket, n.CommentsClosingBracket))

	case *ast.ObjectField:
		return concat(l.comments(n.Comments), l.of(n.Name), texts(":", sp), l.of(n.Value))

	case *ast.ConstObjectField:
		return concat(l.comments(n.Comments), l.of(n.Name), texts(":", sp), l.of(n.Value))

	case *ast.Name:
		return texts(n.Value)

	case *ast.BlockComment, *ast.InlineComment:
		// printed by the node they belong to
		return nil
	}
	return nil
}

func (l *layout) arguments(items [][]item, opening, closing []ast.Comment) []item {
	return l.wrapped(wrappedList{
		items:     items,
		open:      "(",
		delimiter: "," + l.space,
		close:     ")",
		opening:   opening,
		closing:   closing,
	})
}

func (l *layout) list(items [][]item, opening, closing []ast.Comment) []item {
	return l.wrapped(wrappedList{
		items:     items,
		open:      "[",
		delimiter: "," + l.space,
		close:     "]",
		opening:   opening,
		closing:   closing,
	})
}

func (l *layout) object(items [][]item, opening, closing []ast.Comment) []item {
	return l.wrapped(wrappedList{
		items:     items,
		open:      "{",
		spacer:    l.space,
		delimiter: "," + l.space,
		close:     "}",
		opening:   opening,
		closing:   closing,
	})
}
