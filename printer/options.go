package printer

// Options control the printed layout. The zero value prints compact output
// without comments.
type Options struct {
	// IndentationStep is written once per nesting level. Defaults to two
	// spaces.
	IndentationStep string
	// MaxLineLength is the width a pretty line may take before its soft
	// line breaks are expanded. Defaults to 80.
	MaxLineLength int
	// PreserveComments prints comments on their own lines in front of the
	// nodes they belong to.
	PreserveComments bool
	// Pretty adds spaces, breaks block-shaped lists onto separate lines and
	// ends the output with a newline.
	Pretty bool
	// CompactSelectionSets lets selection sets stay on one line when they
	// fit.
	CompactSelectionSets bool
}

const (
	DefaultIndentationStep = "  "
	DefaultMaxLineLength   = 80
)

// WithDefaults fills in unset fields.
func (o Options) WithDefaults() Options {
	if o.IndentationStep == "" {
		o.IndentationStep = DefaultIndentationStep
	}
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	return o
}
