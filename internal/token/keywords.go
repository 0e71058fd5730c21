package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"class":      KwClass,
	"extends":    KwExtends,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"in":         KwIn,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"void":       KwVoid,
	"instanceof": KwInstanceof,
	"this":       KwThis,
	"super":      KwSuper,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"debugger":   KwDebugger,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
