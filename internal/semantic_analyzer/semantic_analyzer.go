package semantic_analyzer

import (
	"fmt"
	"strconv"

	"github.com/dsamoilenko/cmpy/internal/ast"
	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
	"github.com/dsamoilenko/cmpy/internal/hir"
	types "github.com/dsamoilenko/cmpy/internal/hir/types"
	"github.com/dsamoilenko/cmpy/internal/lexer"
)

type RedeclarationError struct {
	Name string

	fileName string
	line     int
	column   int
}

func (e *RedeclarationError) GetMessage() string {
	return fmt.Sprintf("'%s' is already declared in this scope", e.Name)
}
func (e *RedeclarationError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Semantic
}
func (e *RedeclarationError) GetFileName() string { return e.fileName }
func (e *RedeclarationError) GetLine() int        { return e.line }
func (e *RedeclarationError) GetColumn() int      { return e.column }

type UndeclaredIdentifierError struct {
	message string

	fileName string
	line     int
	column   int
}

func (e *UndeclaredIdentifierError) GetMessage() string { return e.message }
func (e *UndeclaredIdentifierError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Semantic
}
func (e *UndeclaredIdentifierError) GetFileName() string { return e.fileName }
func (e *UndeclaredIdentifierError) GetLine() int        { return e.line }
func (e *UndeclaredIdentifierError) GetColumn() int      { return e.column }

type TypeMismatchError struct {
	message string

	fileName string
	line     int
	column   int
}

func (e *TypeMismatchError) GetMessage() string { return e.message }
func (e *TypeMismatchError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Semantic
}
func (e *TypeMismatchError) GetFileName() string { return e.fileName }
func (e *TypeMismatchError) GetLine() int        { return e.line }
func (e *TypeMismatchError) GetColumn() int      { return e.column }

type ArityMismatchError struct {
	Callee string
	Want   int
	Got    int

	fileName string
	line     int
	column   int
}

func (e *ArityMismatchError) GetMessage() string {
	return fmt.Sprintf("function '%s' expects %d argument(s), got %d", e.Callee, e.Want, e.Got)
}
func (e *ArityMismatchError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Semantic
}
func (e *ArityMismatchError) GetFileName() string { return e.fileName }
func (e *ArityMismatchError) GetLine() int        { return e.line }
func (e *ArityMismatchError) GetColumn() int      { return e.column }

func tokenPosition(token *lexer.Token) (string, int, int) {
	if token == nil {
		return "", 0, 0
	}
	return token.Metadata.FileName, token.Metadata.Line, token.Metadata.Column
}

func newRedeclarationError(name string, token *lexer.Token) *RedeclarationError {
	fileName, line, column := tokenPosition(token)
	return &RedeclarationError{
		Name: name,

		fileName: fileName,
		line:     line,
		column:   column,
	}
}

func newUndeclaredVariableError(name string, token *lexer.Token) *UndeclaredIdentifierError {
	fileName, line, column := tokenPosition(token)
	return &UndeclaredIdentifierError{
		message: fmt.Sprintf("variable '%s' not declared", name),

		fileName: fileName,
		line:     line,
		column:   column,
	}
}

func newUndeclaredFunctionError(name string, token *lexer.Token) *UndeclaredIdentifierError {
	fileName, line, column := tokenPosition(token)
	return &UndeclaredIdentifierError{
		message: fmt.Sprintf("function '%s' not declared", name),

		fileName: fileName,
		line:     line,
		column:   column,
	}
}

func newTypeMismatchError(message string, token *lexer.Token) *TypeMismatchError {
	fileName, line, column := tokenPosition(token)
	return &TypeMismatchError{
		message: message,

		fileName: fileName,
		line:     line,
		column:   column,
	}
}

func newArityMismatchError(callee string, want, got int, token *lexer.Token) *ArityMismatchError {
	fileName, line, column := tokenPosition(token)
	return &ArityMismatchError{
		Callee: callee,
		Want:   want,
		Got:    got,

		fileName: fileName,
		line:     line,
		column:   column,
	}
}

type scope struct {
	parent    *scope
	variables map[string]types.Type
}

func (s *scope) lookup(name string) (types.Type, bool) {
	t, ok := s.variables[name]
	if ok {
		return t, true
	}

	if s.parent != nil {
		return s.parent.lookup(name)
	}

	return nil, false
}

func (s *scope) lookupLocal(name string) (types.Type, bool) {
	t, ok := s.variables[name]
	return t, ok
}

func (s *scope) define(name string, t types.Type) {
	if _, ok := s.variables[name]; ok {
		panic("cannot redefine variable")
	}
	s.variables[name] = t
}

// SemanticAnalyzer validates a parse tree in a single depth-first,
// left-to-right traversal, accumulating every semantic error it finds.
// The typed tree it produces is meaningful only when the error handler
// stayed empty.
type SemanticAnalyzer struct {
	eh      compiler_errors.ErrorHandler
	program *ast.Program

	scope *scope

	typesMap       map[string]types.Type
	funcsMap       map[string]*types.FunctionType
	funcPrototypes []*types.FunctionType

	currentFunc *types.FunctionType
}

func NewSemanticAnalyzer(
	eh compiler_errors.ErrorHandler,
	program *ast.Program) *SemanticAnalyzer {
	return &SemanticAnalyzer{
		eh:      eh,
		program: program,

		scope: &scope{variables: make(map[string]types.Type)},

		typesMap:       make(map[string]types.Type),
		funcsMap:       make(map[string]*types.FunctionType),
		funcPrototypes: make([]*types.FunctionType, 0),
	}
}

func (sa *SemanticAnalyzer) enterScope() {
	sa.scope = &scope{parent: sa.scope, variables: make(map[string]types.Type)}
}

func (sa *SemanticAnalyzer) exitScope() {
	sa.scope = sa.scope.parent
}

func (sa *SemanticAnalyzer) Analyze() *hir.Program {
	sa.defineBuiltInTypes()
	sa.scanProgramForFunctions()

	funcs := make([]*hir.FuncDeclStmtHir, 0, len(sa.program.Funcs))
	for _, funcDeclStmt := range sa.program.Funcs {
		funcHir := sa.analyzeFuncDeclStmt(funcDeclStmt)
		if funcHir != nil {
			funcs = append(funcs, funcHir)
		}
	}

	return &hir.Program{
		FuncPrototypes: sa.funcPrototypes,
		Funcs:          funcs,
	}
}

func (sa *SemanticAnalyzer) defineBuiltInTypes() {
	sa.typesMap["int"] = &types.IntType{}
	sa.typesMap["bool"] = &types.BoolType{}
	sa.typesMap["void"] = &types.VoidType{}
}

// scanProgramForFunctions registers every function signature before any
// body is analyzed, so calls may reference functions declared later.
func (sa *SemanticAnalyzer) scanProgramForFunctions() {
	for _, funcDeclStmt := range sa.program.Funcs {
		if _, ok := sa.funcsMap[funcDeclStmt.Name]; ok {
			sa.eh.AddError(newRedeclarationError(funcDeclStmt.Name, funcDeclStmt.StartToken))
			continue
		}

		params := make([]types.FunctionParamType, 0, len(funcDeclStmt.Params))
		for _, param := range funcDeclStmt.Params {
			params = append(params, types.FunctionParamType{
				Name: param.Name,
				Type: sa.typesMap[param.Type],
			})
		}

		functionType := &types.FunctionType{
			Name:       funcDeclStmt.Name,
			Params:     params,
			ReturnType: sa.typesMap[funcDeclStmt.ReturnType],
		}
		sa.funcsMap[funcDeclStmt.Name] = functionType
		sa.funcPrototypes = append(sa.funcPrototypes, functionType)
	}
}

func (sa *SemanticAnalyzer) analyzeFuncDeclStmt(funcDeclStmt *ast.FuncDeclStmt) *hir.FuncDeclStmtHir {
	sa.enterScope()
	defer sa.exitScope()

	params := make([]types.FunctionParamType, 0, len(funcDeclStmt.Params))
	for _, param := range funcDeclStmt.Params {
		paramType := sa.typesMap[param.Type]
		if _, declared := sa.scope.lookupLocal(param.Name); declared {
			sa.eh.AddError(newRedeclarationError(param.Name, funcDeclStmt.StartToken))
			continue
		}

		sa.scope.define(param.Name, paramType)
		params = append(params, types.FunctionParamType{
			Name: param.Name,
			Type: paramType,
		})
	}

	functionType := types.FunctionType{
		Name:       funcDeclStmt.Name,
		Params:     params,
		ReturnType: sa.typesMap[funcDeclStmt.ReturnType],
	}

	prevFunc := sa.currentFunc
	sa.currentFunc = &functionType
	defer func() { sa.currentFunc = prevFunc }()

	// The function body shares the parameter scope; only nested blocks
	// open scopes of their own.
	stmts := make([]hir.StmtHir, 0, len(funcDeclStmt.Body.Stmts))
	for _, stmt := range funcDeclStmt.Body.Stmts {
		stmtHir := sa.analyzeStmt(stmt)
		if !hir.IsNilStmt(stmtHir) {
			stmts = append(stmts, stmtHir)
		}
	}

	return &hir.FuncDeclStmtHir{
		FunctionType: functionType,
		Body:         &hir.BlockStmtHir{Stmts: stmts},
	}
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt) hir.StmtHir {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return sa.analyzeBlockStmt(stmt)
	case *ast.VarDeclStmt:
		return sa.analyzeVarDeclStmt(stmt)
	case *ast.AssignStmt:
		return sa.analyzeAssignStmt(stmt)
	case *ast.IfStmt:
		return sa.analyzeIfStmt(stmt)
	case *ast.WhileStmt:
		return sa.analyzeWhileStmt(stmt)
	case *ast.ReturnStmt:
		return sa.analyzeReturnStmt(stmt)
	case *ast.PrintStmt:
		return sa.analyzePrintStmt(stmt)
	case *ast.CallExpr:
		callHir := sa.analyzeCallExpr(stmt)
		if hir.IsNilExpr(callHir) {
			return nil
		}
		return &hir.ExprStmtHir{Expr: callHir}
	default:
		panic("not implemented")
	}
}

func (sa *SemanticAnalyzer) analyzeBlockStmt(blockStmt *ast.BlockStmt) *hir.BlockStmtHir {
	sa.enterScope()
	defer sa.exitScope()

	stmts := make([]hir.StmtHir, 0, len(blockStmt.Stmts))
	for _, stmt := range blockStmt.Stmts {
		stmtHir := sa.analyzeStmt(stmt)
		if !hir.IsNilStmt(stmtHir) {
			stmts = append(stmts, stmtHir)
		}
	}

	return &hir.BlockStmtHir{
		Stmts: stmts,
	}
}

func (sa *SemanticAnalyzer) analyzeVarDeclStmt(varDeclStmt *ast.VarDeclStmt) *hir.VarDeclStmtHir {
	varType := sa.typesMap[varDeclStmt.Type]

	if varType.SameAs(sa.typesMap["void"]) {
		sa.eh.AddError(newTypeMismatchError(
			fmt.Sprintf("variable '%s' cannot be of type void", varDeclStmt.Name),
			varDeclStmt.StartToken,
		))
		if varDeclStmt.Init != nil {
			sa.analyzeExpr(varDeclStmt.Init)
		}
		return nil
	}

	if _, declared := sa.scope.lookupLocal(varDeclStmt.Name); declared {
		sa.eh.AddError(newRedeclarationError(varDeclStmt.Name, varDeclStmt.StartToken))
		if varDeclStmt.Init != nil {
			sa.analyzeExpr(varDeclStmt.Init)
		}
		return nil
	}

	var valueHir hir.ExprHir
	if varDeclStmt.Init != nil {
		valueHir = sa.analyzeExpr(varDeclStmt.Init)
	}

	// Define before reporting an initializer mismatch so later
	// references do not cascade into undeclared-identifier errors.
	sa.scope.define(varDeclStmt.Name, varType)

	if varDeclStmt.Init != nil {
		if hir.IsNilExpr(valueHir) {
			return nil
		}

		if !varType.SameAs(valueHir.ExprType()) {
			sa.eh.AddError(newTypeMismatchError(
				fmt.Sprintf(
					"cannot assign value of type %s to variable '%s' of type %s",
					valueHir.ExprType().Type(),
					varDeclStmt.Name,
					varType.Type()),
				varDeclStmt.StartToken,
			))
			return nil
		}
	}

	return &hir.VarDeclStmtHir{
		Type:  varType,
		Name:  varDeclStmt.Name,
		Value: valueHir,
	}
}

func (sa *SemanticAnalyzer) analyzeAssignStmt(assignStmt *ast.AssignStmt) *hir.AssignStmtHir {
	targetType, declared := sa.scope.lookup(assignStmt.Target.Value)
	if !declared {
		sa.eh.AddError(newUndeclaredVariableError(assignStmt.Target.Value, assignStmt.StartToken))
		sa.analyzeExpr(assignStmt.Value)
		return nil
	}

	valueHir := sa.analyzeExpr(assignStmt.Value)
	if hir.IsNilExpr(valueHir) {
		return nil
	}

	if !targetType.SameAs(valueHir.ExprType()) {
		sa.eh.AddError(newTypeMismatchError(
			fmt.Sprintf(
				"cannot assign value of type %s to variable '%s' of type %s",
				valueHir.ExprType().Type(),
				assignStmt.Target.Value,
				targetType.Type()),
			assignStmt.StartToken,
		))
		return nil
	}

	return &hir.AssignStmtHir{
		Target: &hir.IdentExprHir{
			Type: targetType,
			Name: assignStmt.Target.Value,
		},
		Value: valueHir,
	}
}

func (sa *SemanticAnalyzer) analyzeIfStmt(ifStmt *ast.IfStmt) *hir.IfStmtHir {
	condHir := sa.analyzeCondExpr(ifStmt.Cond, "if condition")

	thenHir := sa.analyzeStmt(ifStmt.Then)

	var elseHir hir.StmtHir
	if ifStmt.Else != nil {
		elseHir = sa.analyzeStmt(ifStmt.Else)
		if hir.IsNilStmt(elseHir) {
			return nil
		}
	}

	if hir.IsNilExpr(condHir) || hir.IsNilStmt(thenHir) {
		return nil
	}

	return &hir.IfStmtHir{
		Cond: condHir,
		Then: thenHir,
		Else: elseHir,
	}
}

func (sa *SemanticAnalyzer) analyzeWhileStmt(whileStmt *ast.WhileStmt) *hir.WhileStmtHir {
	condHir := sa.analyzeCondExpr(whileStmt.Cond, "while condition")

	bodyHir := sa.analyzeStmt(whileStmt.Body)

	if hir.IsNilExpr(condHir) || hir.IsNilStmt(bodyHir) {
		return nil
	}

	return &hir.WhileStmtHir{
		Cond: condHir,
		Body: bodyHir,
	}
}

func (sa *SemanticAnalyzer) analyzeCondExpr(cond ast.Expr, context string) hir.ExprHir {
	condHir := sa.analyzeExpr(cond)
	if hir.IsNilExpr(condHir) {
		return nil
	}

	if !condHir.ExprType().SameAs(sa.typesMap["bool"]) {
		sa.eh.AddError(newTypeMismatchError(
			fmt.Sprintf("%s must be of type bool, got %s", context, condHir.ExprType().Type()),
			cond.FirstToken(),
		))
		return nil
	}

	return condHir
}

func (sa *SemanticAnalyzer) analyzeReturnStmt(returnStmt *ast.ReturnStmt) *hir.ReturnStmtHir {
	returnType := sa.currentFunc.ReturnType
	voidType := sa.typesMap["void"]

	if returnStmt.Expr == nil {
		if !returnType.SameAs(voidType) {
			sa.eh.AddError(newTypeMismatchError(
				fmt.Sprintf(
					"function '%s' must return a value of type %s",
					sa.currentFunc.Name,
					returnType.Type()),
				returnStmt.StartToken,
			))
			return nil
		}

		return &hir.ReturnStmtHir{}
	}

	valueHir := sa.analyzeExpr(returnStmt.Expr)
	if hir.IsNilExpr(valueHir) {
		return nil
	}

	if returnType.SameAs(voidType) {
		sa.eh.AddError(newTypeMismatchError(
			fmt.Sprintf("function '%s' does not return a value", sa.currentFunc.Name),
			returnStmt.StartToken,
		))
		return nil
	}

	if !returnType.SameAs(valueHir.ExprType()) {
		sa.eh.AddError(newTypeMismatchError(
			fmt.Sprintf(
				"cannot return value of type %s from function '%s' returning %s",
				valueHir.ExprType().Type(),
				sa.currentFunc.Name,
				returnType.Type()),
			returnStmt.StartToken,
		))
		return nil
	}

	return &hir.ReturnStmtHir{
		Expr: valueHir,
	}
}

func (sa *SemanticAnalyzer) analyzePrintStmt(printStmt *ast.PrintStmt) *hir.PrintStmtHir {
	valueHir := sa.analyzeExpr(printStmt.Expr)
	if hir.IsNilExpr(valueHir) {
		return nil
	}

	if valueHir.ExprType().SameAs(sa.typesMap["void"]) {
		sa.eh.AddError(newTypeMismatchError(
			"cannot print a value of type void",
			printStmt.StartToken,
		))
		return nil
	}

	return &hir.PrintStmtHir{
		Expr: valueHir,
	}
}

func (sa *SemanticAnalyzer) analyzeExpr(expr ast.Expr) hir.ExprHir {
	switch expr := expr.(type) {
	case *ast.BinaryExpr:
		return sa.analyzeBinaryExpr(expr)
	case *ast.CallExpr:
		return sa.analyzeCallExpr(expr)
	case *ast.IdentExpr:
		return sa.analyzeIdentExpr(expr)
	case *ast.LiteralExpr:
		return sa.analyzeLiteralExpr(expr)
	default:
		panic("not implemented")
	}
}

func (sa *SemanticAnalyzer) analyzeBinaryExpr(binaryExpr *ast.BinaryExpr) *hir.BinaryExprHir {
	left := sa.analyzeExpr(binaryExpr.Left)
	right := sa.analyzeExpr(binaryExpr.Right)

	if hir.IsNilExpr(left) || hir.IsNilExpr(right) {
		return nil
	}

	intType := sa.typesMap["int"]
	boolType := sa.typesMap["bool"]
	voidType := sa.typesMap["void"]

	var resultType types.Type
	switch binaryExpr.Op.Kind {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
		lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		if !left.ExprType().SameAs(intType) || !right.ExprType().SameAs(intType) {
			sa.eh.AddError(newTypeMismatchError(
				fmt.Sprintf(
					"operator '%s' requires int operands, got %s and %s",
					binaryExpr.Op.Value,
					left.ExprType().Type(),
					right.ExprType().Type()),
				binaryExpr.Op,
			))
			return nil
		}

		resultType = intType
		if binaryExpr.Op.Kind == lexer.LT || binaryExpr.Op.Kind == lexer.GT ||
			binaryExpr.Op.Kind == lexer.LEQ || binaryExpr.Op.Kind == lexer.GEQ {
			resultType = boolType
		}
	case lexer.EQ, lexer.NEQ:
		if left.ExprType().SameAs(voidType) || right.ExprType().SameAs(voidType) ||
			!left.ExprType().SameAs(right.ExprType()) {
			sa.eh.AddError(newTypeMismatchError(
				fmt.Sprintf(
					"operator '%s' operands must be of the same type, got %s and %s",
					binaryExpr.Op.Value,
					left.ExprType().Type(),
					right.ExprType().Type()),
				binaryExpr.Op,
			))
			return nil
		}

		resultType = boolType
	default:
		panic("unexpected token kind")
	}

	return &hir.BinaryExprHir{
		Type:  resultType,
		Left:  left,
		Op:    hir.BinOpFromTokenKind(binaryExpr.Op.Kind),
		Right: right,
	}
}

func (sa *SemanticAnalyzer) analyzeCallExpr(callExpr *ast.CallExpr) *hir.CallExprHir {
	funcType, ok := sa.funcsMap[callExpr.Name]
	if !ok {
		sa.eh.AddError(newUndeclaredFunctionError(callExpr.Name, callExpr.StartToken))
		for _, arg := range callExpr.Args {
			sa.analyzeExpr(arg)
		}
		return nil
	}

	if len(callExpr.Args) != len(funcType.Params) {
		sa.eh.AddError(newArityMismatchError(
			callExpr.Name,
			len(funcType.Params),
			len(callExpr.Args),
			callExpr.StartToken,
		))
		for _, arg := range callExpr.Args {
			sa.analyzeExpr(arg)
		}
		return nil
	}

	args := make([]hir.ExprHir, 0, len(callExpr.Args))
	failed := false
	for i, arg := range callExpr.Args {
		argHir := sa.analyzeExpr(arg)
		if hir.IsNilExpr(argHir) {
			failed = true
			continue
		}

		paramType := funcType.Params[i].Type
		if !paramType.SameAs(argHir.ExprType()) {
			sa.eh.AddError(newTypeMismatchError(
				fmt.Sprintf(
					"cannot pass value of type %s as parameter '%s' of type %s",
					argHir.ExprType().Type(),
					funcType.Params[i].Name,
					paramType.Type()),
				arg.FirstToken(),
			))
			failed = true
			continue
		}

		args = append(args, argHir)
	}

	if failed {
		return nil
	}

	return &hir.CallExprHir{
		Type: funcType.ReturnType,
		Name: callExpr.Name,
		Args: args,
	}
}

func (sa *SemanticAnalyzer) analyzeIdentExpr(identExpr *ast.IdentExpr) hir.ExprHir {
	varType, declared := sa.scope.lookup(identExpr.Value)
	if !declared {
		sa.eh.AddError(newUndeclaredVariableError(identExpr.Value, identExpr.StartToken))
		return nil
	}

	return &hir.IdentExprHir{
		Type: varType,
		Name: identExpr.Value,
	}
}

func (sa *SemanticAnalyzer) analyzeLiteralExpr(literalExpr *ast.LiteralExpr) hir.ExprHir {
	switch literalExpr.Type {
	case "int":
		value, err := strconv.ParseInt(literalExpr.Value, 10, 64)
		if err != nil {
			panic(err)
		}

		return &hir.IntExprHir{
			Type:  sa.typesMap["int"],
			Value: value,
		}
	case "bool":
		return &hir.BoolExprHir{
			Type:  sa.typesMap["bool"],
			Value: literalExpr.Value == "true",
		}
	default:
		panic(fmt.Sprintf("analyzeLiteralExpr: received illegal literal type: %s", literalExpr.Type))
	}
}
