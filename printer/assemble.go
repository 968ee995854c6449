package printer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// assembler renders layout items. Indentation is written lazily in front of
// the first text of a line, so blank lines stay empty.
type assembler struct {
	opts      Options
	out       strings.Builder
	line      []item
	level     int
	lineEmpty bool
}

func (a *assembler) assemble(items []item) string {
	for _, it := range items {
		if it.kind != hardLineItem {
			a.line = append(a.line, it)
			continue
		}
		a.flush()
		if it.optional && a.lineEmpty {
			continue
		}
		a.adjust(it.indent)
		a.newline()
	}
	a.flush()

	printed := strings.Trim(a.out.String(), "\n")
	if a.opts.Pretty {
		printed += "\n"
	}
	return printed
}

// flush renders the buffered line, flat when it fits and with every soft
// line broken otherwise.
func (a *assembler) flush() {
	defer func() { a.line = a.line[:0] }()

	var flat strings.Builder
	for _, it := range a.line {
		flat.WriteString(it.text)
	}
	if !a.opts.Pretty || a.fits(flat.String()) {
		a.write(flat.String())
		return
	}

	for _, it := range a.line {
		switch it.kind {
		case textItem:
			a.write(it.text)
		case softLineItem:
			a.adjust(it.indent)
			a.newline()
			a.write(it.prefix)
		}
	}
}

func (a *assembler) fits(line string) bool {
	width := uniseg.StringWidth(a.indentation()) + uniseg.StringWidth(line)
	return width <= a.opts.MaxLineLength
}

func (a *assembler) indentation() string {
	return strings.Repeat(a.opts.IndentationStep, a.level)
}

func (a *assembler) adjust(i indent) {
	switch i {
	case indentIn:
		a.level++
	case indentOut:
		if a.level > 0 {
			a.level--
		}
	}
}

func (a *assembler) newline() {
	a.out.WriteByte('\n')
	a.lineEmpty = true
}

func (a *assembler) write(s string) {
	if s == "" {
		return
	}
	if a.lineEmpty {
		a.out.WriteString(a.indentation())
		a.lineEmpty = false
	}
	a.out.WriteString(s)
}
