// Package printer turns a syntax tree back into GraphQL source.
//
// Printing runs in two phases. The layout phase walks the tree bottom-up and
// describes every node as a list of items: text, hard line breaks and soft
// line breaks. The assembly phase renders the items line by line, breaking
// soft lines only on lines wider than Options.MaxLineLength.
package printer

import (
	"encoding/json"
	"fmt"
	"strings"

	"gqlfmt/ast"
	"gqlfmt/traverse"
)

// Print renders node, which may be any node of a tree produced by the
// parser or by a traversal of one.
func Print(node ast.Node, opts Options) string {
	return PrintNodes([]ast.Node{node}, opts)
}

// PrintNodes renders several nodes one after another into a single text.
func PrintNodes(nodes []ast.Node, opts Options) string {
	opts = opts.WithDefaults()
	l := newLayout(opts)

	var items []item
	for _, n := range nodes {
		items = append(items, l.root(n)...)
	}

	a := &assembler{opts: opts, lineEmpty: true}
	return a.assemble(items)
}

type layout struct {
	opts  Options
	space string
	// items holds the layout of every visited node under its parent. A node
	// shared by several parents is laid out once per parent.
	items map[placement][]item
	// current is the node being laid out. Its children are looked up under
	// it.
	current ast.Node
}

type placement struct {
	node, parent ast.Node
}

func newLayout(opts Options) *layout {
	l := &layout{opts: opts, items: make(map[placement][]item)}
	if opts.Pretty {
		l.space = " "
	}
	return l
}

// root lays out the tree below n.
func (l *layout) root(n ast.Node) []item {
	if n == nil {
		return nil
	}
	if c, ok := n.(ast.Comment); ok {
		return l.comment(c)
	}

	visitor := traverse.Visitor{}
	for _, kind := range ast.Kinds() {
		visitor[kind] = traverse.Funcs{Leave: l.leave}
	}
	l.walk(n, visitor)
	return l.items[placement{node: n}]
}

// walk runs v over n. The layout visitor only ever continues, so a failing
// walk means the tree cannot be printed at all.
func (l *layout) walk(n ast.Node, v traverse.Visitor) {
	if _, err := traverse.Traverse(n, v); err != nil {
		panic(fmt.Sprintf("printer: cannot lay out %T: %v", n, err))
	}
}

func (l *layout) leave(n ast.Node, c *traverse.Cursor) traverse.Signal {
	l.current = n
	l.items[placement{node: n, parent: c.Parent}] = l.node(n, c.Parent)
	return traverse.Continue
}

// of returns the layout of a child of the current node, nil for absent
// children.
func (l *layout) of(n ast.Node) []item {
	return l.items[placement{node: n, parent: l.current}]
}

func layoutsOf[T ast.Node](l *layout, nodes []T) [][]item {
	out := make([][]item, len(nodes))
	for i, n := range nodes {
		out[i] = l.of(n)
	}
	return out
}

func (l *layout) comment(c ast.Comment) []item {
	if !l.opts.PreserveComments {
		return nil
	}
	return []item{text("#" + l.space + c.Text()), hardLine(indentKeep)}
}

// comments puts the comments of a node on lines of their own in front of it.
// Block comments come first, then inline comments.
func (l *layout) comments(comments []ast.Comment) []item {
	var before, after []item
	for _, c := range comments {
		if _, ok := c.(*ast.BlockComment); ok {
			before = append(before, l.comment(c)...)
		} else {
			after = append(after, l.comment(c)...)
		}
	}
	if len(before) == 0 && len(after) == 0 {
		return nil
	}
	return concat([]item{optionalHardLine()}, before, after)
}

type wrappedList struct {
	items     [][]item
	open      string
	spacer    string
	delimiter string
	close     string
	opening   []ast.Comment
	closing   []ast.Comment
	force     bool
}

// wrapped lays out a bracketed list. Pretty lists go one item per line when
// forced, when an item spans lines, or when the closing bracket carries
// comments. Other lists stay on one line unless it does not fit.
func (l *layout) wrapped(w wrappedList) []item {
	opening := l.comments(w.opening)
	closing := l.comments(w.closing)
	multiLine := l.opts.Pretty && (w.force || hasHardLine(w.items...) || len(closing) > 0)

	out := concat(opening, texts(w.open))
	switch {
	case len(w.items) == 0 && len(closing) == 0:
	case multiLine:
		out = append(out, hardLine(indentIn))
		out = append(out, join(w.items, hardLine(indentKeep))...)
		if len(closing) > 0 {
			// closing comments stay inside the list, the bracket steps out
			out = append(out, closing[:len(closing)-1]...)
		}
		out = append(out, hardLine(indentOut))
	case len(closing) > 0:
		out = append(out, softLine(w.spacer, "", indentIn))
		out = append(out, join(w.items, softLine(w.delimiter, "", indentKeep))...)
		out = append(out, hardLine(indentOut))
		out = append(out, closing[1:]...)
	default:
		out = append(out, softLine(w.spacer, "", indentIn))
		out = append(out, join(w.items, softLine(w.delimiter, "", indentKeep))...)
		out = append(out, softLine(w.spacer, "", indentOut))
	}
	return append(out, text(w.close))
}

// withSpace prefixes a non-empty list with a space.
func (l *layout) withSpace(items []item) []item {
	if len(items) == 0 {
		return nil
	}
	return concat(texts(l.space), items)
}

func (l *layout) directives(directives [][]item) []item {
	return l.withSpace(join(directives, texts(l.space)...))
}

// description puts a description on its own line in pretty output. Comments
// of the described node start a new line anyway.
func (l *layout) description(description *ast.StringValue, comments []ast.Comment) []item {
	if description == nil {
		return nil
	}
	out := l.of(description)
	if l.opts.Pretty && (!l.opts.PreserveComments || len(comments) == 0) {
		out = concat(out, []item{hardLine(indentKeep)})
	}
	return out
}

func (l *layout) defaultValue(v ast.ConstValue) []item {
	if v == nil {
		return nil
	}
	return concat(texts(l.space, "=", l.space), l.of(v))
}

func (l *layout) stringValue(n *ast.StringValue) []item {
	if !n.Block {
		return []item{text(quote(n.Value))}
	}
	if n.Value == "" {
		return []item{text(`""""""`)}
	}

	lines := strings.Split(strings.ReplaceAll(n.Value, `"""`, `\"""`), "\n")
	var out []item
	switch blockForm(lines) {
	case blockLines:
		out = []item{text(`"""`), hardLine(indentKeep)}
	case blockInline:
		if len(lines) == 1 {
			return []item{text(`"""` + lines[0] + `"""`)}
		}
		out = []item{text(`"""` + lines[0]), hardLine(indentKeep)}
		lines = lines[1:]
	default:
		return []item{text(quote(n.Value))}
	}
	for _, line := range lines {
		out = append(out, texts(line)...)
		out = append(out, hardLine(indentKeep))
	}
	return append(out, text(`"""`))
}

type blockStringForm uint8

const (
	blockQuoted blockStringForm = iota
	// blockLines puts every line of the value on a line of its own.
	blockLines
	// blockInline keeps the first line next to the opening quotes.
	blockInline
)

// blockForm picks a way to print lines as a block string that reads back
// unchanged. Reading a block string drops blank first and last lines,
// carriage returns and the indentation shared by all lines but the first.
func blockForm(lines []string) blockStringForm {
	first, last := lines[0], lines[len(lines)-1]
	switch {
	case strings.ContainsRune(strings.Join(lines, ""), '\r'):
		return blockQuoted
	case isBlank(first) || isBlank(last):
		return blockQuoted
	case !startsWithSpace(first):
		return blockLines
	}
	for _, line := range lines[1:] {
		if !isBlank(line) && !startsWithSpace(line) {
			return blockInline
		}
	}
	if len(lines) == 1 {
		return blockInline
	}
	return blockQuoted
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}

// quote renders s as a GraphQL string literal. JSON string syntax is a
// subset of it.
func quote(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

// isShorthandQuery reports whether an operation can be written as a bare
// selection set.
func isShorthandQuery(n *ast.OperationDefinition) bool {
	return n.Operation == ast.Query && n.Name == nil && n.VariableDefinitionSet == nil && len(n.Directives) == 0
}

// inputValueBrackets returns the brackets of an input value definition list:
// arguments use parentheses, input object fields use braces.
func inputValueBrackets(parent ast.Node) (open, close string, block bool) {
	switch parent.(type) {
	case *ast.FieldDefinition, *ast.DirectiveDefinition:
		return "(", ")", false
	}
	return "{", "}", true
}

func (l *layout) namedTypeSet(n *ast.NamedTypeSet, parent ast.Node) []item {
	types := layoutsOf(l, n.Types)
	hard := hasHardLine(types...)

	var initializer, before string
	var after, delimiter []item
	switch parent.(type) {
	case *ast.ObjectTypeDefinition, *ast.ObjectTypeExtension,
		*ast.InterfaceTypeDefinition, *ast.InterfaceTypeExtension:
		initializer, before = "implements", " "
		after, delimiter = l.setDelimiters("&", " ", hard)
	case *ast.UnionTypeDefinition, *ast.UnionTypeExtension:
		initializer, before = "=", l.space
		after, delimiter = l.setDelimiters("|", l.space, hard)
	default:
		if hard {
			delimiter = []item{hardLine(indentKeep)}
		} else {
			delimiter = []item{softLine(","+l.space, "", indentKeep)}
		}
	}

	comments := l.comments(n.Comments)
	if len(comments) > 0 {
		before = ""
	}
	return concat(comments, texts(before, initializer), after, join(types, delimiter...))
}

// setDelimiters returns the items after the initializer of a type set and
// between its members.
func (l *layout) setDelimiters(symbol, alt string, hard bool) (after, delimiter []item) {
	if hard {
		return []item{hardLine(indentKeep), text(symbol + l.space)},
			[]item{hardLine(indentKeep), text(symbol), text(l.space)}
	}
	return []item{softLine(alt, symbol+l.space, indentKeep)},
		concat([]item{softLine(l.space, "", indentKeep), text(symbol)}, texts(l.space))
}

func (l *layout) directiveLocationSet(n *ast.DirectiveLocationSet) []item {
	locations := layoutsOf(l, n.Locations)
	out := concat(l.comments(n.Comments), texts("on"))

	if hasHardLine(locations...) {
		out = append(out, hardLine(indentKeep))
		for i, loc := range locations {
			if l.opts.Pretty || i > 0 {
				out = append(out, text("|"))
			}
			out = append(out, texts(l.space)...)
			out = append(out, loc...)
			if l.opts.Pretty {
				out = append(out, hardLine(indentKeep))
			} else {
				out = append(out, softLine("", "", indentKeep))
			}
		}
		return out
	}

	out = append(out, softLine(" ", "|"+l.space, indentKeep))
	out = append(out, join(locations, concat([]item{softLine(l.space, "", indentKeep), text("|")}, texts(l.space))...)...)
	return append(out, softLine("", "", indentKeep))
}

func (l *layout) document(n *ast.Document) []item {
	definitions := layoutsOf(l, n.Definitions)
	for i, d := range definitions {
		for len(d) > 0 && d[0].kind == hardLineItem {
			d = d[1:]
		}
		definitions[i] = d
	}

	separator := []item{hardLine(indentKeep)}
	if l.opts.Pretty {
		separator = append(separator, hardLine(indentKeep))
	}

	out := join(definitions, separator...)
	comments := l.comments(n.Comments)
	if len(comments) > 0 && len(out) > 0 {
		out = append(out, separator...)
	}
	return append(out, comments...)
}
