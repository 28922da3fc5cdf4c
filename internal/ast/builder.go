package ast

import (
	"rill/internal/source"
)

// Builder owns the node arena and every per-kind payload arena for one
// compilation unit, plus the identifier interner.
type Builder struct {
	Strings *source.Interner

	Nodes *Arena[Node]

	Units      *Arena[UnitData]
	Fns        *Arena[FnData]
	Enums      *Arena[EnumData]
	Impls      *Arena[ImplData]
	Aliases    *Arena[AliasData]
	Consts     *Arena[ConstData]
	Blocks     *Arena[BlockData]
	Lets       *Arena[LetData]
	Idents     *Arena[IdentData]
	Lits       *Arena[LitData]
	Unaries    *Arena[UnaryData]
	Binaries   *Arena[BinaryData]
	Calls      *Arena[CallData]
	Ifs        *Arena[IfData]
	Matches    *Arena[MatchData]
	Arms       *Arena[ArmData]
	Closures   *Arena[ClosureData]
	PatIdents  *Arena[PatIdentData]
	PatCtors   *Arena[PatCtorData]
	RefTypes   *Arena[TypeRefData]
	PathTypes  *Arena[TypePathData]
	FnTypes    *Arena[TypeFnData]
	TupleTypes *Arena[TypeTupleData]
	Regions    *Arena[RegionData]
}

// NewBuilder creates a Builder with arenas preallocated to capHint nodes.
// If capHint is 0, a default of 1<<8 is used.
func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Builder{
		Strings:    source.NewInterner(),
		Nodes:      NewArena[Node](capHint),
		Units:      NewArena[UnitData](1),
		Fns:        NewArena[FnData](capHint / 8),
		Enums:      NewArena[EnumData](capHint / 8),
		Impls:      NewArena[ImplData](capHint / 8),
		Aliases:    NewArena[AliasData](capHint / 8),
		Consts:     NewArena[ConstData](capHint / 8),
		Blocks:     NewArena[BlockData](capHint / 4),
		Lets:       NewArena[LetData](capHint / 4),
		Idents:     NewArena[IdentData](capHint / 2),
		Lits:       NewArena[LitData](capHint / 2),
		Unaries:    NewArena[UnaryData](capHint / 4),
		Binaries:   NewArena[BinaryData](capHint / 4),
		Calls:      NewArena[CallData](capHint / 4),
		Ifs:        NewArena[IfData](capHint / 8),
		Matches:    NewArena[MatchData](capHint / 8),
		Arms:       NewArena[ArmData](capHint / 8),
		Closures:   NewArena[ClosureData](capHint / 8),
		PatIdents:  NewArena[PatIdentData](capHint / 4),
		PatCtors:   NewArena[PatCtorData](capHint / 8),
		RefTypes:   NewArena[TypeRefData](capHint / 4),
		PathTypes:  NewArena[TypePathData](capHint / 4),
		FnTypes:    NewArena[TypeFnData](capHint / 8),
		TupleTypes: NewArena[TypeTupleData](capHint / 8),
		Regions:    NewArena[RegionData](capHint / 4),
	}
}

func (b *Builder) newNode(kind NodeKind, span source.Span, payload PayloadID) NodeID {
	return NodeID(b.Nodes.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the node header for id, or nil for an unknown ID.
func (b *Builder) Get(id NodeID) *Node {
	return b.Nodes.Get(uint32(id))
}

// Kind returns the node kind, or NodeInvalid for an unknown ID.
func (b *Builder) Kind(id NodeID) NodeKind {
	node := b.Get(id)
	if node == nil {
		return NodeInvalid
	}
	return node.Kind
}

// Span returns the node span, or the zero span for an unknown ID.
func (b *Builder) Span(id NodeID) source.Span {
	node := b.Get(id)
	if node == nil {
		return source.Span{}
	}
	return node.Span
}

// Intern is a shorthand for interning an identifier spelling.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name resolves an interned identifier back to its spelling.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// NewUnit creates the compilation-unit root.
func (b *Builder) NewUnit(span source.Span, items []NodeID) NodeID {
	payload := b.Units.Allocate(UnitData{Items: items})
	return b.newNode(NodeUnit, span, PayloadID(payload))
}

func (b *Builder) Unit(id NodeID) (*UnitData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeUnit {
		return nil, false
	}
	return b.Units.Get(uint32(node.Payload)), true
}

func (b *Builder) NewFn(span source.Span, name source.StringID, params []FnParam, ret, body NodeID) NodeID {
	payload := b.Fns.Allocate(FnData{Name: name, Params: params, Ret: ret, Body: body})
	return b.newNode(NodeFn, span, PayloadID(payload))
}

func (b *Builder) Fn(id NodeID) (*FnData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeFn {
		return nil, false
	}
	return b.Fns.Get(uint32(node.Payload)), true
}

func (b *Builder) NewEnum(span source.Span, name source.StringID, variants []EnumVariant) NodeID {
	payload := b.Enums.Allocate(EnumData{Name: name, Variants: variants})
	return b.newNode(NodeEnum, span, PayloadID(payload))
}

func (b *Builder) Enum(id NodeID) (*EnumData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeEnum {
		return nil, false
	}
	return b.Enums.Get(uint32(node.Payload)), true
}

func (b *Builder) NewImpl(span source.Span, contract source.StringID, target NodeID, methods []NodeID) NodeID {
	payload := b.Impls.Allocate(ImplData{Contract: contract, Target: target, Methods: methods})
	return b.newNode(NodeImpl, span, PayloadID(payload))
}

func (b *Builder) Impl(id NodeID) (*ImplData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeImpl {
		return nil, false
	}
	return b.Impls.Get(uint32(node.Payload)), true
}

func (b *Builder) NewAlias(span source.Span, name source.StringID, typ NodeID) NodeID {
	payload := b.Aliases.Allocate(AliasData{Name: name, Type: typ})
	return b.newNode(NodeAlias, span, PayloadID(payload))
}

func (b *Builder) Alias(id NodeID) (*AliasData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeAlias {
		return nil, false
	}
	return b.Aliases.Get(uint32(node.Payload)), true
}

func (b *Builder) NewConst(span source.Span, name source.StringID, typ, value NodeID) NodeID {
	payload := b.Consts.Allocate(ConstData{Name: name, Type: typ, Value: value})
	return b.newNode(NodeConst, span, PayloadID(payload))
}

func (b *Builder) Const(id NodeID) (*ConstData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeConst {
		return nil, false
	}
	return b.Consts.Get(uint32(node.Payload)), true
}

func (b *Builder) NewBlock(span source.Span, stmts []NodeID) NodeID {
	payload := b.Blocks.Allocate(BlockData{Stmts: stmts})
	return b.newNode(NodeBlock, span, PayloadID(payload))
}

func (b *Builder) Block(id NodeID) (*BlockData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeBlock {
		return nil, false
	}
	return b.Blocks.Get(uint32(node.Payload)), true
}

func (b *Builder) NewLet(span source.Span, pat, typ, init NodeID) NodeID {
	payload := b.Lets.Allocate(LetData{Pat: pat, Type: typ, Init: init})
	return b.newNode(NodeLet, span, PayloadID(payload))
}

func (b *Builder) Let(id NodeID) (*LetData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeLet {
		return nil, false
	}
	return b.Lets.Get(uint32(node.Payload)), true
}

func (b *Builder) NewIdent(span source.Span, name source.StringID) NodeID {
	payload := b.Idents.Allocate(IdentData{Name: name})
	return b.newNode(NodeIdent, span, PayloadID(payload))
}

func (b *Builder) Ident(id NodeID) (*IdentData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeIdent {
		return nil, false
	}
	return b.Idents.Get(uint32(node.Payload)), true
}

func (b *Builder) NewLit(span source.Span, kind ExprLitKind, value source.StringID) NodeID {
	payload := b.Lits.Allocate(LitData{Kind: kind, Value: value})
	return b.newNode(NodeLit, span, PayloadID(payload))
}

func (b *Builder) Lit(id NodeID) (*LitData, bool) {
	node := b.Get(id)
	if node == nil || (node.Kind != NodeLit && node.Kind != NodePatLit) {
		return nil, false
	}
	return b.Lits.Get(uint32(node.Payload)), true
}

func (b *Builder) NewUnary(span source.Span, op UnaryOp, operand NodeID) NodeID {
	payload := b.Unaries.Allocate(UnaryData{Op: op, Operand: operand})
	return b.newNode(NodeUnary, span, PayloadID(payload))
}

func (b *Builder) Unary(id NodeID) (*UnaryData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeUnary {
		return nil, false
	}
	return b.Unaries.Get(uint32(node.Payload)), true
}

func (b *Builder) NewBinary(span source.Span, op BinaryOp, left, right NodeID) NodeID {
	payload := b.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return b.newNode(NodeBinary, span, PayloadID(payload))
}

func (b *Builder) Binary(id NodeID) (*BinaryData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeBinary {
		return nil, false
	}
	return b.Binaries.Get(uint32(node.Payload)), true
}

func (b *Builder) NewCall(span source.Span, callee NodeID, args []NodeID) NodeID {
	payload := b.Calls.Allocate(CallData{Callee: callee, Args: args})
	return b.newNode(NodeCall, span, PayloadID(payload))
}

func (b *Builder) Call(id NodeID) (*CallData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeCall {
		return nil, false
	}
	return b.Calls.Get(uint32(node.Payload)), true
}

func (b *Builder) NewIf(span source.Span, cond, then, els NodeID) NodeID {
	payload := b.Ifs.Allocate(IfData{Cond: cond, Then: then, Else: els})
	return b.newNode(NodeIf, span, PayloadID(payload))
}

func (b *Builder) If(id NodeID) (*IfData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeIf {
		return nil, false
	}
	return b.Ifs.Get(uint32(node.Payload)), true
}

func (b *Builder) NewMatch(span source.Span, scrutinee NodeID, arms []NodeID) NodeID {
	payload := b.Matches.Allocate(MatchData{Scrutinee: scrutinee, Arms: arms})
	return b.newNode(NodeMatch, span, PayloadID(payload))
}

func (b *Builder) Match(id NodeID) (*MatchData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeMatch {
		return nil, false
	}
	return b.Matches.Get(uint32(node.Payload)), true
}

func (b *Builder) NewArm(span source.Span, pats []NodeID, guard, body NodeID) NodeID {
	payload := b.Arms.Allocate(ArmData{Pats: pats, Guard: guard, Body: body})
	return b.newNode(NodeArm, span, PayloadID(payload))
}

func (b *Builder) Arm(id NodeID) (*ArmData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeArm {
		return nil, false
	}
	return b.Arms.Get(uint32(node.Payload)), true
}

func (b *Builder) NewClosure(span source.Span, params []FnParam, ret, body NodeID) NodeID {
	payload := b.Closures.Allocate(ClosureData{Params: params, Ret: ret, Body: body})
	return b.newNode(NodeClosure, span, PayloadID(payload))
}

func (b *Builder) Closure(id NodeID) (*ClosureData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeClosure {
		return nil, false
	}
	return b.Closures.Get(uint32(node.Payload)), true
}

func (b *Builder) NewPatIdent(span source.Span, name source.StringID) NodeID {
	payload := b.PatIdents.Allocate(PatIdentData{Name: name})
	return b.newNode(NodePatIdent, span, PayloadID(payload))
}

func (b *Builder) PatIdent(id NodeID) (*PatIdentData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodePatIdent {
		return nil, false
	}
	return b.PatIdents.Get(uint32(node.Payload)), true
}

func (b *Builder) NewPatCtor(span source.Span, name source.StringID, args []NodeID) NodeID {
	payload := b.PatCtors.Allocate(PatCtorData{Name: name, Args: args})
	return b.newNode(NodePatCtor, span, PayloadID(payload))
}

func (b *Builder) PatCtor(id NodeID) (*PatCtorData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodePatCtor {
		return nil, false
	}
	return b.PatCtors.Get(uint32(node.Payload)), true
}

// NewPatLit creates a literal pattern; it shares the literal payload arena.
func (b *Builder) NewPatLit(span source.Span, kind ExprLitKind, value source.StringID) NodeID {
	payload := b.Lits.Allocate(LitData{Kind: kind, Value: value})
	return b.newNode(NodePatLit, span, PayloadID(payload))
}

// NewPatWild creates a wildcard pattern. It carries no payload.
func (b *Builder) NewPatWild(span source.Span) NodeID {
	return b.newNode(NodePatWild, span, NoPayloadID)
}

func (b *Builder) NewTypeRef(span source.Span, region, elem NodeID) NodeID {
	payload := b.RefTypes.Allocate(TypeRefData{Region: region, Elem: elem})
	return b.newNode(NodeTypeRef, span, PayloadID(payload))
}

func (b *Builder) TypeRef(id NodeID) (*TypeRefData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeTypeRef {
		return nil, false
	}
	return b.RefTypes.Get(uint32(node.Payload)), true
}

func (b *Builder) NewTypePath(span source.Span, name source.StringID, args []NodeID) NodeID {
	payload := b.PathTypes.Allocate(TypePathData{Name: name, Args: args})
	return b.newNode(NodeTypePath, span, PayloadID(payload))
}

func (b *Builder) TypePath(id NodeID) (*TypePathData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeTypePath {
		return nil, false
	}
	return b.PathTypes.Get(uint32(node.Payload)), true
}

func (b *Builder) NewTypeFn(span source.Span, params []NodeID, ret NodeID) NodeID {
	payload := b.FnTypes.Allocate(TypeFnData{Params: params, Ret: ret})
	return b.newNode(NodeTypeFn, span, PayloadID(payload))
}

func (b *Builder) TypeFn(id NodeID) (*TypeFnData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeTypeFn {
		return nil, false
	}
	return b.FnTypes.Get(uint32(node.Payload)), true
}

func (b *Builder) NewTypeTuple(span source.Span, elems []NodeID) NodeID {
	payload := b.TupleTypes.Allocate(TypeTupleData{Elems: elems})
	return b.newNode(NodeTypeTuple, span, PayloadID(payload))
}

func (b *Builder) TypeTuple(id NodeID) (*TypeTupleData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeTypeTuple {
		return nil, false
	}
	return b.TupleTypes.Get(uint32(node.Payload)), true
}

// NewRegion creates the region marker node attached to a reference type.
func (b *Builder) NewRegion(span source.Span, kind RegionMarkerKind, name source.StringID) NodeID {
	payload := b.Regions.Allocate(RegionData{Kind: kind, Name: name})
	return b.newNode(NodeRegion, span, PayloadID(payload))
}

func (b *Builder) Region(id NodeID) (*RegionData, bool) {
	node := b.Get(id)
	if node == nil || node.Kind != NodeRegion {
		return nil, false
	}
	return b.Regions.Get(uint32(node.Payload)), true
}
