package hir_types

type BoolType struct{}

func (*BoolType) Type() string {
	return "bool"
}

func (*BoolType) SameAs(other Type) bool {
	_, ok := other.(*BoolType)
	return ok
}
