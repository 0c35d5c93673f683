package hir_types

type VoidType struct{}

func (*VoidType) Type() string {
	return "void"
}

func (*VoidType) SameAs(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}
