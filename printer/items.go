package printer

type itemKind uint8

const (
	textItem itemKind = iota
	hardLineItem
	softLineItem
)

type indent int8

const (
	indentKeep indent = iota
	indentIn
	indentOut
)

// item is one instruction of the layout. Hard lines always break. Soft lines
// break only when the line they are on does not fit, and print text in
// place otherwise.
type item struct {
	kind   itemKind
	text   string
	prefix string
	indent indent
	// optional hard lines are dropped at the start of a line
	optional bool
}

func text(s string) item {
	return item{kind: textItem, text: s}
}

func hardLine(i indent) item {
	return item{kind: hardLineItem, indent: i}
}

func optionalHardLine() item {
	return item{kind: hardLineItem, optional: true}
}

func softLine(alt, prefix string, i indent) item {
	return item{kind: softLineItem, text: alt, prefix: prefix, indent: i}
}

// join concatenates lists with delimiter between each pair.
func join(lists [][]item, delimiter ...item) []item {
	var out []item
	for i, l := range lists {
		if i > 0 {
			out = append(out, delimiter...)
		}
		out = append(out, l...)
	}
	return out
}

func hasHardLine(lists ...[]item) bool {
	for _, l := range lists {
		for _, it := range l {
			if it.kind == hardLineItem {
				return true
			}
		}
	}
	return false
}

// concat flattens its arguments into one list.
func concat(parts ...[]item) []item {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]item, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func texts(s ...string) []item {
	out := make([]item, 0, len(s))
	for _, t := range s {
		if t != "" {
			out = append(out, text(t))
		}
	}
	return out
}
