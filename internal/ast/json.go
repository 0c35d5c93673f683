package ast

import (
	"encoding/json"
	"fmt"

	"github.com/dsamoilenko/cmpy/internal/lexer"
)

// The exchange format: every node is an object with a "type"
// discriminant and one field per node attribute, so external tools can
// render or reconstruct the tree without re-running the pipeline.
// Source positions are diagnostics metadata, not tree attributes, and
// are not part of the format.

func EncodeJSON(program *Program) ([]byte, error) {
	return json.MarshalIndent(encodeProgram(program), "", "  ")
}

func DecodeJSON(data []byte) (*Program, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return decodeProgram(raw)
}

func encodeProgram(program *Program) map[string]any {
	body := make([]any, 0, len(program.Funcs))
	for _, fn := range program.Funcs {
		body = append(body, encodeStmt(fn))
	}

	return map[string]any{
		"type": "Program",
		"body": body,
	}
}

func encodeStmt(stmt Stmt) any {
	switch s := stmt.(type) {
	case *FuncDeclStmt:
		params := make([]any, 0, len(s.Params))
		for _, param := range s.Params {
			params = append(params, map[string]any{
				"name":     param.Name,
				"dataType": param.Type,
			})
		}
		return map[string]any{
			"type":       "FunctionDef",
			"name":       s.Name,
			"returnType": s.ReturnType,
			"params":     params,
			"body":       encodeStmt(s.Body),
		}
	case *BlockStmt:
		body := make([]any, 0, len(s.Stmts))
		for _, inner := range s.Stmts {
			body = append(body, encodeStmt(inner))
		}
		return map[string]any{
			"type": "Block",
			"body": body,
		}
	case *VarDeclStmt:
		var init any
		if s.Init != nil {
			init = encodeExpr(s.Init)
		}
		return map[string]any{
			"type":     "VarDecl",
			"dataType": s.Type,
			"name":     s.Name,
			"init":     init,
		}
	case *AssignStmt:
		return map[string]any{
			"type":   "Assignment",
			"target": encodeExpr(s.Target),
			"value":  encodeExpr(s.Value),
		}
	case *IfStmt:
		var alternate any
		if s.Else != nil {
			alternate = encodeStmt(s.Else)
		}
		return map[string]any{
			"type":       "If",
			"test":       encodeExpr(s.Cond),
			"consequent": encodeStmt(s.Then),
			"alternate":  alternate,
		}
	case *WhileStmt:
		return map[string]any{
			"type": "While",
			"test": encodeExpr(s.Cond),
			"body": encodeStmt(s.Body),
		}
	case *ReturnStmt:
		var value any
		if s.Expr != nil {
			value = encodeExpr(s.Expr)
		}
		return map[string]any{
			"type":  "Return",
			"value": value,
		}
	case *PrintStmt:
		return map[string]any{
			"type":  "Print",
			"value": encodeExpr(s.Expr),
		}
	case *CallExpr:
		return encodeExpr(s)
	default:
		panic(fmt.Sprintf("encodeStmt: received illegal statement: %T", stmt))
	}
}

func encodeExpr(expr Expr) any {
	switch e := expr.(type) {
	case *IdentExpr:
		return map[string]any{
			"type": "Identifier",
			"name": e.Value,
		}
	case *LiteralExpr:
		return map[string]any{
			"type":     "Literal",
			"dataType": e.Type,
			"value":    e.Value,
		}
	case *BinaryExpr:
		return map[string]any{
			"type":  "BinaryOp",
			"op":    e.Op.Value,
			"left":  encodeExpr(e.Left),
			"right": encodeExpr(e.Right),
		}
	case *CallExpr:
		args := make([]any, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, encodeExpr(arg))
		}
		return map[string]any{
			"type":   "Call",
			"callee": e.Name,
			"args":   args,
		}
	default:
		panic(fmt.Sprintf("encodeExpr: received illegal expression: %T", expr))
	}
}

func decodeProgram(raw any) (*Program, error) {
	node, err := asNode(raw, "Program")
	if err != nil {
		return nil, err
	}

	body, err := asList(node, "body")
	if err != nil {
		return nil, err
	}

	funcs := make([]*FuncDeclStmt, 0, len(body))
	for _, item := range body {
		fn, err := decodeFuncDecl(item)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}

	return &Program{Funcs: funcs}, nil
}

func decodeFuncDecl(raw any) (*FuncDeclStmt, error) {
	node, err := asNode(raw, "FunctionDef")
	if err != nil {
		return nil, err
	}

	name, err := asString(node, "name")
	if err != nil {
		return nil, err
	}
	returnType, err := asString(node, "returnType")
	if err != nil {
		return nil, err
	}

	rawParams, err := asList(node, "params")
	if err != nil {
		return nil, err
	}
	params := make([]FuncParam, 0, len(rawParams))
	for _, rawParam := range rawParams {
		paramNode, ok := rawParam.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a parameter object, got %T", rawParam)
		}
		paramName, err := asString(paramNode, "name")
		if err != nil {
			return nil, err
		}
		paramType, err := asString(paramNode, "dataType")
		if err != nil {
			return nil, err
		}
		params = append(params, FuncParam{Name: paramName, Type: paramType})
	}

	body, err := decodeBlock(node["body"])
	if err != nil {
		return nil, err
	}

	return &FuncDeclStmt{
		Name:       name,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
	}, nil
}

func decodeBlock(raw any) (*BlockStmt, error) {
	node, err := asNode(raw, "Block")
	if err != nil {
		return nil, err
	}

	body, err := asList(node, "body")
	if err != nil {
		return nil, err
	}

	stmts := make([]Stmt, 0, len(body))
	for _, item := range body {
		stmt, err := decodeStmt(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	return &BlockStmt{Stmts: stmts}, nil
}

func decodeStmt(raw any) (Stmt, error) {
	node, kind, err := anyNode(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Block":
		return decodeBlock(raw)
	case "FunctionDef":
		return decodeFuncDecl(raw)
	case "VarDecl":
		name, err := asString(node, "name")
		if err != nil {
			return nil, err
		}
		dataType, err := asString(node, "dataType")
		if err != nil {
			return nil, err
		}
		var init Expr
		if node["init"] != nil {
			init, err = decodeExpr(node["init"])
			if err != nil {
				return nil, err
			}
		}
		return &VarDeclStmt{Name: name, Type: dataType, Init: init}, nil
	case "Assignment":
		target, err := decodeExpr(node["target"])
		if err != nil {
			return nil, err
		}
		ident, ok := target.(*IdentExpr)
		if !ok {
			return nil, fmt.Errorf("assignment target must be an identifier, got %T", target)
		}
		value, err := decodeExpr(node["value"])
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Target: ident, Value: value}, nil
	case "If":
		test, err := decodeExpr(node["test"])
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStmt(node["consequent"])
		if err != nil {
			return nil, err
		}
		var alternate Stmt
		if node["alternate"] != nil {
			alternate, err = decodeStmt(node["alternate"])
			if err != nil {
				return nil, err
			}
		}
		return &IfStmt{Cond: test, Then: consequent, Else: alternate}, nil
	case "While":
		test, err := decodeExpr(node["test"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(node["body"])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: test, Body: body}, nil
	case "Return":
		var value Expr
		var err error
		if node["value"] != nil {
			value, err = decodeExpr(node["value"])
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStmt{Expr: value}, nil
	case "Print":
		value, err := decodeExpr(node["value"])
		if err != nil {
			return nil, err
		}
		return &PrintStmt{Expr: value}, nil
	case "Call":
		return decodeCall(node)
	default:
		return nil, fmt.Errorf("unknown statement kind: %q", kind)
	}
}

func decodeExpr(raw any) (Expr, error) {
	node, kind, err := anyNode(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Identifier":
		name, err := asString(node, "name")
		if err != nil {
			return nil, err
		}
		return &IdentExpr{Value: name}, nil
	case "Literal":
		dataType, err := asString(node, "dataType")
		if err != nil {
			return nil, err
		}
		value, err := asString(node, "value")
		if err != nil {
			return nil, err
		}
		return &LiteralExpr{Type: dataType, Value: value}, nil
	case "BinaryOp":
		op, err := asString(node, "op")
		if err != nil {
			return nil, err
		}
		opToken, err := binaryOpToken(op)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(node["right"])
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Left: left, Op: opToken, Right: right}, nil
	case "Call":
		return decodeCall(node)
	default:
		return nil, fmt.Errorf("unknown expression kind: %q", kind)
	}
}

func decodeCall(node map[string]any) (*CallExpr, error) {
	callee, err := asString(node, "callee")
	if err != nil {
		return nil, err
	}

	rawArgs, err := asList(node, "args")
	if err != nil {
		return nil, err
	}

	args := make([]Expr, 0, len(rawArgs))
	for _, rawArg := range rawArgs {
		arg, err := decodeExpr(rawArg)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return &CallExpr{Name: callee, Args: args}, nil
}

func binaryOpToken(op string) (*lexer.Token, error) {
	var kind lexer.TokenKind
	switch op {
	case "+":
		kind = lexer.PLUS
	case "-":
		kind = lexer.MINUS
	case "*":
		kind = lexer.ASTERISK
	case "/":
		kind = lexer.SLASH
	case "%":
		kind = lexer.PERCENT
	case "==":
		kind = lexer.EQ
	case "!=":
		kind = lexer.NEQ
	case "<":
		kind = lexer.LT
	case "<=":
		kind = lexer.LEQ
	case ">":
		kind = lexer.GT
	case ">=":
		kind = lexer.GEQ
	default:
		return nil, fmt.Errorf("unknown binary operator: %q", op)
	}

	return &lexer.Token{Kind: kind, Value: op}, nil
}

func anyNode(raw any) (map[string]any, string, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("expected a node object, got %T", raw)
	}

	kind, ok := node["type"].(string)
	if !ok {
		return nil, "", fmt.Errorf("node is missing its \"type\" discriminant")
	}

	return node, kind, nil
}

func asNode(raw any, kind string) (map[string]any, error) {
	node, actual, err := anyNode(raw)
	if err != nil {
		return nil, err
	}

	if actual != kind {
		return nil, fmt.Errorf("expected a %s node, got %s", kind, actual)
	}

	return node, nil
}

func asString(node map[string]any, field string) (string, error) {
	value, ok := node[field].(string)
	if !ok {
		return "", fmt.Errorf("expected field %q to be a string, got %T", field, node[field])
	}

	return value, nil
}

func asList(node map[string]any, field string) ([]any, error) {
	value, ok := node[field].([]any)
	if !ok {
		return nil, fmt.Errorf("expected field %q to be a list, got %T", field, node[field])
	}

	return value, nil
}
