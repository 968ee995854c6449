// Package format formats GraphQL sources and files.
package format

import (
	"gqlfmt/parser"
	"gqlfmt/printer"
)

// PrettifyOptions are the options of Prettify.
var PrettifyOptions = printer.Options{Pretty: true, PreserveComments: true}

// Prettify pretty-prints source and keeps its comments.
func Prettify(source string) (string, error) {
	return Source(source, PrettifyOptions)
}

// Source parses source and prints it with opts.
func Source(source string, opts printer.Options) (string, error) {
	doc, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return printer.Print(doc, opts), nil
}
