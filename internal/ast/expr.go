package ast

import (
	"rill/internal/source"
)

// BlockData lists the statements of a block in source order. Nested blocks,
// lets and expressions appear directly as children.
type BlockData struct {
	Stmts []NodeID
}

// LetData is a local variable declaration.
type LetData struct {
	Pat  NodeID // pattern introducing the bindings
	Type NodeID // optional type annotation
	Init NodeID // optional initializer expression
}

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
	LitBool
)

type IdentData struct {
	Name source.StringID
}

type LitData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type UnaryOp uint8

const (
	// OpRef is the address-of operator `&`.
	OpRef UnaryOp = iota
	OpNeg
	OpNot
)

type UnaryData struct {
	Op      UnaryOp
	Operand NodeID
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpAssign
)

type BinaryData struct {
	Op    BinaryOp
	Left  NodeID
	Right NodeID
}

type CallData struct {
	Callee NodeID
	Args   []NodeID
}

type IfData struct {
	Cond NodeID
	Then NodeID // block
	Else NodeID // optional block or if
}

type MatchData struct {
	Scrutinee NodeID
	Arms      []NodeID
}

// ArmData is one arm of a match. Patterns are visited before the body block,
// which is why pattern bindings are queued until the block is entered.
type ArmData struct {
	Pats  []NodeID
	Guard NodeID // optional guard expression
	Body  NodeID // block
}

// ClosureData is a function literal. Closures open a scope of their own but
// share the enclosing item's region parameter space.
type ClosureData struct {
	Params []FnParam
	Ret    NodeID // optional return type annotation
	Body   NodeID // block
}
