package token

var keywords = map[string]Kind{
	"abstract":  KwAbstract,
	"as":        KwAs,
	"base":      KwBase,
	"break":     KwBreak,
	"case":      KwCase,
	"catch":     KwCatch,
	"class":     KwClass,
	"const":     KwConst,
	"continue":  KwContinue,
	"default":   KwDefault,
	"delegate":  KwDelegate,
	"do":        KwDo,
	"else":      KwElse,
	"enum":      KwEnum,
	"event":     KwEvent,
	"extern":    KwExtern,
	"false":     KwFalse,
	"finally":   KwFinally,
	"for":       KwFor,
	"foreach":   KwForeach,
	"goto":      KwGoto,
	"if":        KwIf,
	"in":        KwIn,
	"interface": KwInterface,
	"internal":  KwInternal,
	"is":        KwIs,
	"lock":      KwLock,
	"namespace": KwNamespace,
	"new":       KwNew,
	"null":      KwNull,
	"operator":  KwOperator,
	"out":       KwOut,
	"override":  KwOverride,
	"params":    KwParams,
	"private":   KwPrivate,
	"protected": KwProtected,
	"public":    KwPublic,
	"readonly":  KwReadonly,
	"ref":       KwRef,
	"return":    KwReturn,
	"sealed":    KwSealed,
	"static":    KwStatic,
	"struct":    KwStruct,
	"switch":    KwSwitch,
	"this":      KwThis,
	"throw":     KwThrow,
	"true":      KwTrue,
	"try":       KwTry,
	"typeof":    KwTypeof,
	"unsafe":    KwUnsafe,
	"using":     KwUsing,
	"virtual":   KwVirtual,
	"void":      KwVoid,
	"volatile":  KwVolatile,
	"while":     KwWhile,
}

// contextual keywords that may act as modifiers
var contextualModifiers = map[string]bool{
	"async":   true,
	"partial": true,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsContextualModifier reports whether ident is a contextual keyword usable as a modifier.
func IsContextualModifier(ident string) bool {
	return contextualModifiers[ident]
}
