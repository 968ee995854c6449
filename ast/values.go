package ast

type (
	// IntValue and FloatValue keep the literal text of the number.
	IntValue struct {
		Comments []Comment
		Value    string
	}

	FloatValue struct {
		Comments []Comment
		Value    string
	}

	// StringValue holds the decoded string. Block is set for `"""` strings,
	// which are printed in block form again.
	StringValue struct {
		Comments []Comment
		Value    string
		Block    bool
	}

	BooleanValue struct {
		Comments []Comment
		Value    bool
	}

	NullValue struct {
		Comments []Comment
	}

	EnumValue struct {
		Comments []Comment
		Value    string
	}

	Variable struct {
		Comments []Comment
		Name     *Name
	}

	ListValue struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Values                 []Value
		CommentsClosingBracket []Comment
	}

	ConstListValue struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Values                 []ConstValue
		CommentsClosingBracket []Comment
	}

	ObjectValue struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Fields                 []*ObjectField
		CommentsClosingBracket []Comment
	}

	ConstObjectValue struct {
		Comments               []Comment
		CommentsOpeningBracket []Comment
		Fields                 []*ConstObjectField
		CommentsClosingBracket []Comment
	}

	ObjectField struct {
		Comments []Comment
		Name     *Name
		Value    Value
	}

	ConstObjectField struct {
		Comments []Comment
		Name     *Name
		Value    ConstValue
	}
)

func (n *IntValue) Kind() Kind         { return KindIntValue }
func (n *FloatValue) Kind() Kind       { return KindFloatValue }
func (n *StringValue) Kind() Kind      { return KindStringValue }
func (n *BooleanValue) Kind() Kind     { return KindBooleanValue }
func (n *NullValue) Kind() Kind        { return KindNullValue }
func (n *EnumValue) Kind() Kind        { return KindEnumValue }
func (n *Variable) Kind() Kind         { return KindVariable }
func (n *ListValue) Kind() Kind        { return KindListValue }
func (n *ConstListValue) Kind() Kind   { return KindListValue }
func (n *ObjectValue) Kind() Kind      { return KindObjectValue }
func (n *ConstObjectValue) Kind() Kind { return KindObjectValue }
func (n *ObjectField) Kind() Kind      { return KindObjectField }
func (n *ConstObjectField) Kind() Kind { return KindObjectField }

func (*IntValue) node()         {}
func (*FloatValue) node()       {}
func (*StringValue) node()      {}
func (*BooleanValue) node()     {}
func (*NullValue) node()        {}
func (*EnumValue) node()        {}
func (*Variable) node()         {}
func (*ListValue) node()        {}
func (*ConstListValue) node()   {}
func (*ObjectValue) node()      {}
func (*ConstObjectValue) node() {}
func (*ObjectField) node()      {}
func (*ConstObjectField) node() {}

func (*IntValue) valueNode()     {}
func (*FloatValue) valueNode()   {}
func (*StringValue) valueNode()  {}
func (*BooleanValue) valueNode() {}
func (*NullValue) valueNode()    {}
func (*EnumValue) valueNode()    {}
func (*Variable) valueNode()     {}
func (*ListValue) valueNode()    {}
func (*ObjectValue) valueNode()  {}

func (*IntValue) constValueNode()         {}
func (*FloatValue) constValueNode()       {}
func (*StringValue) constValueNode()      {}
func (*BooleanValue) constValueNode()     {}
func (*NullValue) constValueNode()        {}
func (*EnumValue) constValueNode()        {}
func (*ConstListValue) constValueNode()   {}
func (*ConstObjectValue) constValueNode() {}
