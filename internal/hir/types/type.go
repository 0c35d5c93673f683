package hir_types

type Type interface {
	Type() string
	SameAs(t Type) bool
}
