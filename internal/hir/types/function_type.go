package hir_types

import "fmt"

type FunctionType struct {
	Name       string
	Params     []FunctionParamType
	ReturnType Type
}

type FunctionParamType struct {
	Name string
	Type
}

func (f *FunctionType) Type() string {
	return fmt.Sprintf("fun(%s)", f.Name)
}

func (f *FunctionType) SameAs(other Type) bool {
	otherFunc, ok := other.(*FunctionType)
	return ok && otherFunc.Name == f.Name
}
