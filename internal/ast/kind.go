package ast

// Kind is the closed set of node kinds.
type Kind uint8

const (
	Invalid Kind = iota
	Script
	Block
	ExprResult
	Var
	Let
	Const
	Empty
	If
	For
	ForIn
	ForOf
	While
	Do
	Return
	Throw
	Break
	Continue
	Label
	LabelName
	Try
	Catch
	Switch
	Case
	DefaultCase
	Debugger
	Function
	ParamList
	DefaultValue
	Rest
	Spread
	Class
	ClassMembers
	MemberFunctionDef
	GetterDef
	SetterDef
	ComputedProp
	ObjectLit
	StringKey
	ObjectPattern
	ArrayPattern
	DestructuringLHS
	ArrayLit
	Name
	This
	Super
	Null
	True
	False
	Number
	String
	Regexp
	GetProp
	GetElem
	Call
	New
	Assign
	Hook
	Binary
	Unary
	Update
)

var kindNames = [...]string{
	Invalid:           "INVALID",
	Script:            "SCRIPT",
	Block:             "BLOCK",
	ExprResult:        "EXPR_RESULT",
	Var:               "VAR",
	Let:               "LET",
	Const:             "CONST",
	Empty:             "EMPTY",
	If:                "IF",
	For:               "FOR",
	ForIn:             "FOR_IN",
	ForOf:             "FOR_OF",
	While:             "WHILE",
	Do:                "DO",
	Return:            "RETURN",
	Throw:             "THROW",
	Break:             "BREAK",
	Continue:          "CONTINUE",
	Label:             "LABEL",
	LabelName:         "LABEL_NAME",
	Try:               "TRY",
	Catch:             "CATCH",
	Switch:            "SWITCH",
	Case:              "CASE",
	DefaultCase:       "DEFAULT_CASE",
	Debugger:          "DEBUGGER",
	Function:          "FUNCTION",
	ParamList:         "PARAM_LIST",
	DefaultValue:      "DEFAULT_VALUE",
	Rest:              "REST",
	Spread:            "SPREAD",
	Class:             "CLASS",
	ClassMembers:      "CLASS_MEMBERS",
	MemberFunctionDef: "MEMBER_FUNCTION_DEF",
	GetterDef:         "GETTER_DEF",
	SetterDef:         "SETTER_DEF",
	ComputedProp:      "COMPUTED_PROP",
	ObjectLit:         "OBJECTLIT",
	StringKey:         "STRING_KEY",
	ObjectPattern:     "OBJECT_PATTERN",
	ArrayPattern:      "ARRAY_PATTERN",
	DestructuringLHS:  "DESTRUCTURING_LHS",
	ArrayLit:          "ARRAYLIT",
	Name:              "NAME",
	This:              "THIS",
	Super:             "SUPER",
	Null:              "NULL",
	True:              "TRUE",
	False:             "FALSE",
	Number:            "NUMBER",
	String:            "STRING",
	Regexp:            "REGEXP",
	GetProp:           "GETPROP",
	GetElem:           "GETELEM",
	Call:              "CALL",
	New:               "NEW",
	Assign:            "ASSIGN",
	Hook:              "HOOK",
	Binary:            "BINARY",
	Unary:             "UNARY",
	Update:            "UPDATE",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "INVALID"
}

// IsNameDeclaration reports VAR, LET and CONST.
func (k Kind) IsNameDeclaration() bool {
	return k == Var || k == Let || k == Const
}

// IsLoop reports any loop statement.
func (k Kind) IsLoop() bool {
	switch k {
	case For, ForIn, ForOf, While, Do:
		return true
	default:
		return false
	}
}

// IsForLoop reports the three for forms.
func (k Kind) IsForLoop() bool {
	return k == For || k == ForIn || k == ForOf
}

// IsAccessor reports object literal or class members that wrap a function.
func (k Kind) IsAccessor() bool {
	return k == GetterDef || k == SetterDef
}
