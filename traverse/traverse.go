// Package traverse walks a syntax tree with per-kind visitor callbacks and
// builds a modified copy of it when callbacks replace or remove nodes.
//
// The walk is iterative. Every node and every node slice is pushed as an
// ENTER frame paired with a LEAVE frame. Children are the struct fields that
// hold nodes or slices of nodes, visited in declaration order; nil children
// are not visited. Replacements are collected on the LEAVE frame of the
// enclosing node or slice, which is shallow-copied with the new children set
// and handed on to its own parent. The input tree is never modified.
package traverse

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gqlfmt/ast"
)

// ErrNotAssignable is returned when a replacement node does not fit the
// field or slice it replaces, such as a variable in a constant list.
var ErrNotAssignable = errors.New("traverse: replacement not assignable")

type action uint8

const (
	actionContinue action = iota
	actionBreak
	actionSkip
	actionReplace
)

// Signal tells the walker how to proceed after a callback.
type Signal struct {
	action action
	node   ast.Node
}

var (
	// Continue proceeds with the walk.
	Continue = Signal{}
	// Break stops the walk. Edits collected so far are still applied.
	Break = Signal{action: actionBreak}
	// Skip, returned from Enter, skips the children and the Leave callback
	// of the node. From Leave it behaves like Continue.
	Skip = Signal{action: actionSkip}
)

// Replace substitutes n for the visited node. A replacement in Enter is
// walked in place of the original. A nil n removes the node.
func Replace(n ast.Node) Signal {
	return Signal{action: actionReplace, node: n}
}

// Remove deletes the visited node. Removed slice elements are dropped and
// removed fields are set to nil.
func Remove() Signal {
	return Signal{action: actionReplace}
}

type VisitFunc func(node ast.Node, c *Cursor) Signal

// Funcs holds the callbacks for one node kind. Either may be nil.
type Funcs struct {
	Enter VisitFunc
	Leave VisitFunc
}

// Visitor maps node kinds to callbacks. Kinds without an entry are walked
// without callbacks.
type Visitor map[ast.Kind]Funcs

// Cursor describes the position of the visited node.
type Cursor struct {
	// Key is the field name holding the node, or its index when the node is
	// a slice element. It is nil for the root.
	Key any
	// Parent is the closest node containing the visited one, nil for the
	// root. Slices are not parents; Key and Path tell slice positions apart.
	Parent ast.Node
	// Path lists the keys from the root down to the visited node.
	Path []any
	// Ancestors lists the nodes from the root down to Parent.
	Ancestors []ast.Node
}

// Traverse walks root depth first and returns the resulting tree. It returns
// root itself when no callback changed anything, and nil when the root was
// removed.
func Traverse(root ast.Node, v Visitor) (ast.Node, error) {
	if root == nil {
		return nil, nil
	}
	w := &walker{visitor: v}
	return w.walk(root)
}

var (
	nodeType = reflect.TypeFor[ast.Node]()
	// rootType is the static type of the root slot: anything goes.
	rootType = nodeType
)

type frame struct {
	leave bool
	// node is set for node frames, list for slice frames.
	node ast.Node
	list reflect.Value
	// slot is the static type the node or slice must be assignable to.
	slot reflect.Type
	key  any
	// parent is the LEAVE frame of the enclosing node or slice, nil for the
	// root.
	parent *frame
	// pair is the LEAVE frame matching an ENTER frame.
	pair  *frame
	edits []edit
	// changed is set on a LEAVE frame once its value differs from the input.
	changed bool
}

type edit struct {
	key   any
	value reflect.Value
}

type walker struct {
	visitor Visitor
	stack   []*frame
	result  ast.Node
	broken  bool
}

func (w *walker) walk(root ast.Node) (ast.Node, error) {
	w.result = root
	enter := &frame{node: root, slot: rootType}
	enter.pair = &frame{leave: true, node: root, slot: rootType}
	w.stack = append(w.stack, enter)

	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		var err error
		switch {
		case w.broken && !f.leave:
			continue
		case f.leave && f.node != nil:
			err = w.leaveNode(f)
		case f.leave:
			err = w.leaveList(f)
		case f.node != nil:
			err = w.enterNode(f)
		default:
			w.enterList(f)
		}
		if err != nil {
			return nil, err
		}
	}
	return w.result, nil
}

func (w *walker) enterNode(f *frame) error {
	leave := f.pair
	if fn := w.visitor[f.node.Kind()].Enter; fn != nil {
		sig := fn(f.node, w.cursor(f))
		switch sig.action {
		case actionBreak:
			w.broken = true
			return nil
		case actionSkip:
			return nil
		case actionReplace:
			if sig.node == nil {
				w.offer(f, reflect.Value{})
				return nil
			}
			if err := w.assignable(f, sig.node); err != nil {
				return err
			}
			leave.node = sig.node
			leave.changed = true
		}
	}

	w.stack = append(w.stack, leave)
	w.pushChildren(leave)
	return nil
}

func (w *walker) pushChildren(leave *frame) {
	v := reflect.ValueOf(leave.node).Elem()
	t := v.Type()

	var children []*frame
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)
		child := &frame{key: sf.Name, slot: sf.Type, parent: leave}
		switch {
		case sf.Type.Kind() == reflect.Slice && sf.Type.Elem().Implements(nodeType):
			if fv.Len() == 0 {
				continue
			}
			child.list = fv
			child.pair = &frame{leave: true, list: fv, slot: sf.Type, key: sf.Name, parent: leave}
		case sf.Type.Implements(nodeType):
			if fv.IsNil() {
				continue
			}
			child.node = fv.Interface().(ast.Node)
			child.pair = &frame{leave: true, node: child.node, slot: sf.Type, key: sf.Name, parent: leave}
		default:
			continue
		}
		children = append(children, child)
	}

	// first child on top
	for _, child := range slices.Backward(children) {
		w.stack = append(w.stack, child)
	}
}

func (w *walker) enterList(f *frame) {
	leave := f.pair
	w.stack = append(w.stack, leave)

	elemType := f.slot.Elem()
	for i := f.list.Len() - 1; i >= 0; i-- {
		ev := f.list.Index(i)
		if ev.IsNil() {
			continue
		}
		n := ev.Interface().(ast.Node)
		w.stack = append(w.stack, &frame{
			node:   n,
			slot:   elemType,
			key:    i,
			parent: leave,
			pair:   &frame{leave: true, node: n, slot: elemType, key: i, parent: leave},
		})
	}
}

func (w *walker) leaveNode(f *frame) error {
	if len(f.edits) > 0 {
		f.node = applyFieldEdits(f.node, f.edits)
		f.changed = true
	}

	if fn := w.visitor[f.node.Kind()].Leave; fn != nil && !w.broken {
		sig := fn(f.node, w.cursor(f))
		switch sig.action {
		case actionBreak:
			w.broken = true
		case actionReplace:
			return w.replace(f, sig.node)
		}
	}

	if f.changed {
		w.offer(f, reflect.ValueOf(f.node))
	}
	return nil
}

func (w *walker) leaveList(f *frame) error {
	if len(f.edits) == 0 {
		return nil
	}

	out := reflect.MakeSlice(f.slot, 0, f.list.Len())
	replaced := make(map[int]reflect.Value, len(f.edits))
	for _, e := range f.edits {
		replaced[e.key.(int)] = e.value
	}
	for i := range f.list.Len() {
		ev := f.list.Index(i)
		if r, ok := replaced[i]; ok {
			ev = r
		}
		if !ev.IsValid() || ev.IsNil() {
			continue
		}
		out = reflect.Append(out, ev)
	}
	if out.Len() == 0 {
		out = reflect.Zero(f.slot)
	}
	w.offer(f, out)
	return nil
}

// replace records n as the new value of the node held by f. A nil n removes
// it.
func (w *walker) replace(f *frame, n ast.Node) error {
	if n == nil {
		w.offer(f, reflect.Value{})
		return nil
	}
	if err := w.assignable(f, n); err != nil {
		return err
	}
	w.offer(f, reflect.ValueOf(n))
	return nil
}

func (w *walker) assignable(f *frame, n ast.Node) error {
	if !reflect.TypeOf(n).AssignableTo(f.slot) {
		return fmt.Errorf("%w: %T to %s at %v", ErrNotAssignable, n, f.slot, w.path(f))
	}
	return nil
}

// offer hands the new value of f to its parent frame, or makes it the
// result of the walk for the root.
func (w *walker) offer(f *frame, value reflect.Value) {
	if f.parent == nil {
		if !value.IsValid() {
			w.result = nil
			return
		}
		w.result = value.Interface().(ast.Node)
		return
	}
	f.parent.edits = append(f.parent.edits, edit{key: f.key, value: value})
}

// applyFieldEdits returns a shallow copy of n with the edited fields set.
// Later edits of the same field win.
func applyFieldEdits(n ast.Node, edits []edit) ast.Node {
	orig := reflect.ValueOf(n).Elem()
	cp := reflect.New(orig.Type())
	cp.Elem().Set(orig)
	for _, e := range edits {
		field := cp.Elem().FieldByName(e.key.(string))
		if !e.value.IsValid() {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		field.Set(e.value)
	}
	return cp.Interface().(ast.Node)
}

func (w *walker) cursor(f *frame) *Cursor {
	c := &Cursor{Key: f.key, Path: w.path(f)}
	for p := f.parent; p != nil; p = p.parent {
		if p.node != nil {
			c.Ancestors = append(c.Ancestors, p.node)
		}
	}
	slices.Reverse(c.Ancestors)
	if len(c.Ancestors) > 0 {
		c.Parent = c.Ancestors[len(c.Ancestors)-1]
	}
	return c
}

func (w *walker) path(f *frame) []any {
	var path []any
	for p := f; p != nil && p.parent != nil; p = p.parent {
		path = append(path, p.key)
	}
	slices.Reverse(path)
	return path
}
