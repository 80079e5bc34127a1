package kotlin

// Node kinds of the tree-sitter Kotlin grammar.
const (
	kSourceFile               = "source_file"
	kSimpleIdentifier         = "simple_identifier"
	kTypeIdentifier           = "type_identifier"
	kIdentifier               = "identifier"
	kPropertyDeclaration      = "property_declaration"
	kVariableDeclaration      = "variable_declaration"
	kBindingPatternKind       = "binding_pattern_kind"
	kClassDeclaration         = "class_declaration"
	kObjectDeclaration        = "object_declaration"
	kCompanionObject          = "companion_object"
	kClassBody                = "class_body"
	kEnumClassBody            = "enum_class_body"
	kClassParameter           = "class_parameter"
	kFunctionDeclaration      = "function_declaration"
	kFunctionValueParameters  = "function_value_parameters"
	kParameter                = "parameter"
	kSecondaryConstructor     = "secondary_constructor"
	kAnonymousFunction        = "anonymous_function"
	kSetter                   = "setter"
	kLambdaLiteral            = "lambda_literal"
	kLambdaParameters         = "lambda_parameters"
	kAnnotatedLambda          = "annotated_lambda"
	kStatements               = "statements"
	kFunctionBody             = "function_body"
	kControlStructureBody     = "control_structure_body"
	kForStatement             = "for_statement"
	kCatchBlock               = "catch_block"
	kAssignment               = "assignment"
	kDirectlyAssignable       = "directly_assignable_expression"
	kNavigationExpression     = "navigation_expression"
	kNavigationSuffix         = "navigation_suffix"
	kIndexingSuffix           = "indexing_suffix"
	kCallExpression           = "call_expression"
	kCallSuffix               = "call_suffix"
	kValueArguments           = "value_arguments"
	kValueArgument            = "value_argument"
	kPostfixExpression        = "postfix_expression"
	kPrefixExpression         = "prefix_expression"
	kInfixExpression          = "infix_expression"
	kThisExpression           = "this_expression"
	kModifiers                = "modifiers"
	kAnnotation               = "annotation"
	kFileAnnotation           = "file_annotation"
	kUserType                 = "user_type"
	kConstructorInvocation    = "constructor_invocation"
	kStringLiteral            = "string_literal"
	kImportHeader             = "import_header"
	kPackageHeader            = "package_header"
	kAnonymousInitializer     = "anonymous_initializer"
	kTypeAlias                = "type_alias"
	kEnumEntry                = "enum_entry"
	kMultiVariableDeclaration = "multi_variable_declaration"
)

// boundaryKinds end a qualified-access chain.
var boundaryKinds = map[string]struct{}{
	kSourceFile:               {},
	kStatements:               {},
	kFunctionBody:             {},
	kClassBody:                {},
	kEnumClassBody:            {},
	kControlStructureBody:     {},
	kValueArgument:            {},
	kValueArguments:           {},
	kLambdaLiteral:            {},
	kAnnotatedLambda:          {},
	kIndexingSuffix:           {},
	kAnonymousInitializer:     {},
	kPropertyDeclaration:      {},
	kFunctionDeclaration:      {},
	"string_literal":          {},
	"interpolated_expression": {},
}

// operationKinds are the operator expressions used as highlight ranges.
var operationKinds = map[string]struct{}{
	kAssignment:                 {},
	kPostfixExpression:          {},
	kPrefixExpression:           {},
	kInfixExpression:            {},
	"additive_expression":       {},
	"multiplicative_expression": {},
	"comparison_expression":     {},
	"equality_expression":       {},
	"conjunction_expression":    {},
	"disjunction_expression":    {},
	"elvis_expression":          {},
	"range_expression":          {},
	"as_expression":             {},
	"check_expression":          {},
}

// commentKinds covers both the older single comment node and the split
// line/block comment nodes of newer grammar versions.
var commentKinds = map[string]struct{}{
	"comment":           {},
	"line_comment":      {},
	"multiline_comment": {},
}

// declarationNameParents are parents whose simple_identifier child names a
// declaration rather than referencing one.
var declarationNameParents = map[string]struct{}{
	kVariableDeclaration:           {},
	kClassParameter:                {},
	kParameter:                     {},
	kFunctionDeclaration:           {},
	kClassDeclaration:              {},
	kObjectDeclaration:             {},
	kCatchBlock:                    {},
	kIdentifier:                    {},
	kImportHeader:                  {},
	kPackageHeader:                 {},
	kTypeAlias:                     {},
	kEnumEntry:                     {},
	"label":                        {},
	"type_parameter":               {},
	"parameter_with_optional_type": {},
}

// functionLikeKinds own value parameters.
var functionLikeKinds = []string{kFunctionDeclaration, kSecondaryConstructor, kAnonymousFunction, kSetter}

func has(set map[string]struct{}, kind string) bool {
	_, ok := set[kind]
	return ok
}
