package hir

import (
	types "github.com/dsamoilenko/cmpy/internal/hir/types"
)

// Program is the validated, type-annotated mirror of the parse tree.
// Same kinds, same shape, same child ordering; types attached.
type Program struct {
	FuncPrototypes []*types.FunctionType
	Funcs          []*FuncDeclStmtHir
}
