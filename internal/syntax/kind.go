package syntax

// Kind is the production a node was built from.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindToken

	KindCompilationUnit
	KindUsingDirective
	KindNamespaceDeclaration
	KindClassDeclaration
	KindEnumDeclaration
	KindBaseList
	KindAttributeList
	KindAttribute
	KindAttributeArguments
	KindModifierList
	KindMethodDeclaration
	KindConstructorDeclaration
	KindPropertyDeclaration
	KindFieldDeclaration
	KindTypeParameterList
	KindConstraintClause
	KindParameterList
	KindParameter
	KindTypeRef

	KindBlock
	KindIfStatement
	KindElseClause
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForEachStatement
	KindReturnStatement
	KindThrowStatement
	KindBreakStatement
	KindContinueStatement
	KindExpressionStatement
	KindLocalDeclaration
	KindEmptyStatement
	KindTryStatement
	KindCatchClause
	KindCatchDeclaration
	KindFinallyClause
	KindSwitchStatement
	KindSwitchSection
	KindSwitchLabel
	KindUsingStatement
	KindLockStatement

	KindExpression
	// KindSkipped holds tokens the parser could not place; a tree containing it is never returned to callers.
	KindSkipped

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                "Invalid",
	KindToken:                  "Token",
	KindCompilationUnit:        "CompilationUnit",
	KindUsingDirective:         "UsingDirective",
	KindNamespaceDeclaration:   "NamespaceDeclaration",
	KindClassDeclaration:       "ClassDeclaration",
	KindEnumDeclaration:        "EnumDeclaration",
	KindBaseList:               "BaseList",
	KindAttributeList:          "AttributeList",
	KindAttribute:              "Attribute",
	KindAttributeArguments:     "AttributeArguments",
	KindModifierList:           "ModifierList",
	KindMethodDeclaration:      "MethodDeclaration",
	KindConstructorDeclaration: "ConstructorDeclaration",
	KindPropertyDeclaration:    "PropertyDeclaration",
	KindFieldDeclaration:       "FieldDeclaration",
	KindTypeParameterList:      "TypeParameterList",
	KindConstraintClause:       "ConstraintClause",
	KindParameterList:          "ParameterList",
	KindParameter:              "Parameter",
	KindTypeRef:                "TypeRef",
	KindBlock:                  "Block",
	KindIfStatement:            "IfStatement",
	KindElseClause:             "ElseClause",
	KindWhileStatement:         "WhileStatement",
	KindDoStatement:            "DoStatement",
	KindForStatement:           "ForStatement",
	KindForEachStatement:       "ForEachStatement",
	KindReturnStatement:        "ReturnStatement",
	KindThrowStatement:         "ThrowStatement",
	KindBreakStatement:         "BreakStatement",
	KindContinueStatement:      "ContinueStatement",
	KindExpressionStatement:    "ExpressionStatement",
	KindLocalDeclaration:       "LocalDeclaration",
	KindEmptyStatement:         "EmptyStatement",
	KindTryStatement:           "TryStatement",
	KindCatchClause:            "CatchClause",
	KindCatchDeclaration:       "CatchDeclaration",
	KindFinallyClause:          "FinallyClause",
	KindSwitchStatement:        "SwitchStatement",
	KindSwitchSection:          "SwitchSection",
	KindSwitchLabel:            "SwitchLabel",
	KindUsingStatement:         "UsingStatement",
	KindLockStatement:          "LockStatement",
	KindExpression:             "Expression",
	KindSkipped:                "Skipped",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind resolves a kind by its name; used by configuration and test fixtures.
func ParseKind(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsStatement reports whether nodes of this kind appear in statement position.
func (k Kind) IsStatement() bool {
	return k >= KindBlock && k <= KindLockStatement &&
		k != KindElseClause && k != KindCatchClause && k != KindCatchDeclaration &&
		k != KindFinallyClause && k != KindSwitchSection && k != KindSwitchLabel
}

// IsLoop reports whether the kind is one of the loop statements.
func (k Kind) IsLoop() bool {
	switch k {
	case KindWhileStatement, KindDoStatement, KindForStatement, KindForEachStatement:
		return true
	}
	return false
}
