package region

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/defs"
	"rill/internal/diag"
	"rill/internal/source"
)

// scopeKind tags the kind of the most immediate enclosing scope.
type scopeKind uint8

const (
	scopeRoot    scopeKind = iota // compilation-unit root
	scopeDecl                     // fn or enum item
	scopeBlock                    // block
	scopeClosure                  // function literal
	scopeItem                     // any other top-level item
)

type scopeRef struct {
	kind scopeKind
	id   ast.NodeID
}

// context is threaded top-down through the walk. It is copied on override:
// a node kind derives a child context and never mutates its parent's. The
// queued-locals inbox is the one deliberate exception: it is shared by
// pointer between a match arm's patterns and the arm's body block, which is
// the next block to be entered.
type context struct {
	scope   scopeRef
	inMatch bool
	inImpl  bool
	queued  *[]ast.NodeID
}

// binding records the parameter index a region name resolved to. The list is
// append-only within one item: each distinct name maps to exactly one index,
// first occurrence wins.
type binding struct {
	name  source.StringID
	index uint32
}

type resolver struct {
	build    *ast.Builder
	defs     defs.Map
	reporter diag.Reporter
	out      *Map

	// Per-item state, reset when a new top-level item begins and shared by
	// every closure nested inside it.
	bindings  []binding
	nextParam uint32
}

// bugError aborts the walk via panic; Resolve recovers it at the boundary.
type bugError struct {
	span source.Span
	msg  string
}

func (e bugError) Error() string {
	return fmt.Sprintf("%s at %s", e.msg, e.span)
}

// Resolve runs region resolution over one compilation unit. Source-level
// misuse of region syntax is reported through reporter and leaves the
// corresponding map entry absent; the walk continues. An internal invariant
// violation aborts immediately: the error is non-nil and no Map is returned.
func Resolve(build *ast.Builder, unit ast.NodeID, defMap defs.Map, reporter diag.Reporter) (result *Map, err error) {
	if build == nil {
		return nil, fmt.Errorf("region: nil builder")
	}
	unitData, ok := build.Unit(unit)
	if !ok {
		return nil, fmt.Errorf("region: node #%d is not a unit root", uint32(unit))
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	r := &resolver{
		build:    build,
		defs:     defMap,
		reporter: reporter,
		out:      NewMap(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			bug, isBug := rec.(bugError)
			if !isBug {
				panic(rec)
			}
			result = nil
			err = fmt.Errorf("region resolution aborted: %w", bug)
		}
	}()

	queued := make([]ast.NodeID, 0)
	cx := context{
		scope:  scopeRef{kind: scopeRoot, id: unit},
		queued: &queued,
	}
	for _, item := range unitData.Items {
		r.resolveItem(item, cx)
	}
	return r.out, nil
}

func (r *resolver) errorf(code diag.Code, span source.Span, format string, args ...any) {
	r.reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil)
}

func (r *resolver) bug(span source.Span, msg string) {
	r.reporter.Report(diag.RegionBug, diag.SevBug, span, msg, nil)
	panic(bugError{span: span, msg: msg})
}

// pushItemState resets the per-item binding list and parameter counter and
// returns a closure restoring the previous state.
func (r *resolver) pushItemState() func() {
	savedBindings, savedNext := r.bindings, r.nextParam
	r.bindings, r.nextParam = nil, 0
	return func() {
		r.bindings, r.nextParam = savedBindings, savedNext
	}
}

func (r *resolver) allocParam() uint32 {
	index := r.nextParam
	r.nextParam++
	return index
}

func (r *resolver) lookupBinding(name source.StringID) (uint32, bool) {
	for _, b := range r.bindings {
		if b.name == name {
			return b.index, true
		}
	}
	return 0, false
}

// resolveItem classifies a top-level item and descends with a fresh item
// context. Function-like items (fn, enum) open a declaration scope; a trait
// implementation keeps item scope but legalises the receiver region;
// everything else is a plain item scope.
func (r *resolver) resolveItem(id ast.NodeID, cx context) {
	node := r.build.Get(id)
	if node == nil {
		return
	}

	pop := r.pushItemState()
	defer pop()

	child := cx
	child.inMatch = false

	switch node.Kind {
	case ast.NodeFn:
		child.scope = scopeRef{kind: scopeDecl, id: id}
		child.inImpl = false
		if fn, ok := r.build.Fn(id); ok {
			r.resolveFn(fn, child)
		}

	case ast.NodeEnum:
		child.scope = scopeRef{kind: scopeDecl, id: id}
		child.inImpl = false
		if enum, ok := r.build.Enum(id); ok {
			for _, variant := range enum.Variants {
				for _, arg := range variant.Args {
					r.resolveType(arg, child)
				}
			}
		}

	case ast.NodeImpl:
		child.scope = scopeRef{kind: scopeItem, id: id}
		child.inImpl = true
		if impl, ok := r.build.Impl(id); ok {
			r.resolveType(impl.Target, child)
			// Methods are visited inside the impl context: they share its
			// region parameter space and keep the receiver region legal.
			for _, method := range impl.Methods {
				if fn, ok := r.build.Fn(method); ok {
					r.resolveFn(fn, child)
				}
			}
		}

	case ast.NodeAlias:
		child.scope = scopeRef{kind: scopeItem, id: id}
		child.inImpl = false
		if alias, ok := r.build.Alias(id); ok {
			r.resolveType(alias.Type, child)
		}

	case ast.NodeConst:
		child.scope = scopeRef{kind: scopeItem, id: id}
		child.inImpl = false
		if cst, ok := r.build.Const(id); ok {
			r.resolveType(cst.Type, child)
			r.walkNode(cst.Value, child)
		}
	}
}

func (r *resolver) resolveFn(fn *ast.FnData, cx context) {
	for _, param := range fn.Params {
		r.resolveType(param.Type, cx)
	}
	r.resolveType(fn.Ret, cx)
	r.walkNode(fn.Body, cx)
}

// walkNode dispatches on the node kind. Kinds without region-relevant
// behavior just recurse into their children.
func (r *resolver) walkNode(id ast.NodeID, cx context) {
	if !id.IsValid() {
		return
	}
	node := r.build.Get(id)
	if node == nil {
		return
	}

	switch node.Kind {
	case ast.NodeBlock:
		r.resolveBlock(id, cx)

	case ast.NodeLet:
		r.resolveLet(id, node.Span, cx)

	case ast.NodeUnary:
		r.resolveUnary(id, node.Span, cx)

	case ast.NodeMatch:
		r.resolveMatch(id, node.Span, cx)

	case ast.NodeClosure:
		r.resolveClosure(id, cx)

	case ast.NodeBinary:
		if bin, ok := r.build.Binary(id); ok {
			r.walkNode(bin.Left, cx)
			r.walkNode(bin.Right, cx)
		}

	case ast.NodeCall:
		if call, ok := r.build.Call(id); ok {
			r.walkNode(call.Callee, cx)
			for _, arg := range call.Args {
				r.walkNode(arg, cx)
			}
		}

	case ast.NodeIf:
		if ifData, ok := r.build.If(id); ok {
			r.walkNode(ifData.Cond, cx)
			r.walkNode(ifData.Then, cx)
			r.walkNode(ifData.Else, cx)
		}

	case ast.NodeArm:
		r.resolveArm(id, cx)

	case ast.NodePatIdent, ast.NodePatCtor, ast.NodePatLit, ast.NodePatWild:
		r.resolvePat(id, node, cx)

	case ast.NodeTypeRef, ast.NodeTypePath, ast.NodeTypeFn, ast.NodeTypeTuple:
		r.resolveType(id, cx)

	case ast.NodeIdent, ast.NodeLit:
		// Leaves.
	}
}

func (r *resolver) resolveBlock(id ast.NodeID, cx context) {
	r.recordParent(id, cx)

	// Locals queued by an enclosing match arm are owned by this block.
	for _, local := range *cx.queued {
		r.out.LocalBlocks[local] = id
	}

	child := cx
	child.scope = scopeRef{kind: scopeBlock, id: id}
	child.inMatch = false
	fresh := make([]ast.NodeID, 0, 4)
	child.queued = &fresh

	if block, ok := r.build.Block(id); ok {
		for _, stmt := range block.Stmts {
			r.walkNode(stmt, child)
		}
	}
}

func (r *resolver) resolveLet(id ast.NodeID, span source.Span, cx context) {
	if cx.scope.kind != scopeBlock {
		r.bug(span, "local outside of block")
	}
	// The initializer's temporary lives as long as the enclosing block.
	r.out.RvalueBlocks[id] = cx.scope.id

	if let, ok := r.build.Let(id); ok {
		r.walkNode(let.Pat, cx)
		r.resolveType(let.Type, cx)
		r.walkNode(let.Init, cx)
	}
}

func (r *resolver) resolveUnary(id ast.NodeID, span source.Span, cx context) {
	un, ok := r.build.Unary(id)
	if !ok {
		return
	}
	if un.Op == ast.OpRef {
		// Record the enclosing block in case the operand is an rvalue.
		if cx.scope.kind != scopeBlock {
			r.bug(span, "expression outside of block")
		}
		r.out.RvalueBlocks[un.Operand] = cx.scope.id
	}
	r.walkNode(un.Operand, cx)
}

func (r *resolver) resolveMatch(id ast.NodeID, span source.Span, cx context) {
	m, ok := r.build.Match(id)
	if !ok {
		return
	}
	if cx.scope.kind != scopeBlock {
		r.bug(span, "expression outside of block")
	}
	r.out.RvalueBlocks[m.Scrutinee] = cx.scope.id

	r.walkNode(m.Scrutinee, cx)
	for _, arm := range m.Arms {
		r.resolveArm(arm, cx)
	}
}

func (r *resolver) resolveArm(id ast.NodeID, cx context) {
	arm, ok := r.build.Arm(id)
	if !ok {
		return
	}

	// Patterns run before the arm's block, so bindings discovered here are
	// queued and drained when that block is entered.
	child := cx
	child.inMatch = true
	fresh := make([]ast.NodeID, 0, 4)
	child.queued = &fresh

	for _, pat := range arm.Pats {
		r.walkNode(pat, child)
	}
	r.walkNode(arm.Guard, child)
	r.walkNode(arm.Body, child)
}

func (r *resolver) resolveClosure(id ast.NodeID, cx context) {
	r.recordParent(id, cx)

	child := cx
	child.scope = scopeRef{kind: scopeClosure, id: id}
	child.inMatch = false

	if closure, ok := r.build.Closure(id); ok {
		for _, param := range closure.Params {
			r.resolveType(param.Type, child)
		}
		r.resolveType(closure.Ret, child)
		r.walkNode(closure.Body, child)
	}
}

func (r *resolver) resolvePat(id ast.NodeID, node *ast.Node, cx context) {
	switch node.Kind {
	case ast.NodePatIdent:
		if r.defs.Variant(id) {
			// Names a payload-less variant constructor, not a binding.
			return
		}
		switch {
		case cx.inMatch:
			*cx.queued = append(*cx.queued, id)
		case cx.scope.kind == scopeBlock:
			r.out.LocalBlocks[id] = cx.scope.id
		default:
			r.bug(node.Span, "pattern binding outside of block")
		}

	case ast.NodePatCtor:
		if ctor, ok := r.build.PatCtor(id); ok {
			for _, arg := range ctor.Args {
				r.walkNode(arg, cx)
			}
		}

	case ast.NodePatLit, ast.NodePatWild:
		// Bind nothing.
	}
}

// recordParent writes the scope-forest entry for a block or closure. Written
// once, on entry, before any child is visited. The unit root has no entry.
func (r *resolver) recordParent(id ast.NodeID, cx context) {
	if cx.scope.kind == scopeRoot {
		return
	}
	r.out.Parents[id] = cx.scope.id
}

// resolveType stores the default inferred region for the annotation, then
// resolves the explicit marker if the annotation is a reference.
func (r *resolver) resolveType(id ast.NodeID, cx context) {
	if !id.IsValid() {
		return
	}
	node := r.build.Get(id)
	if node == nil || !node.Kind.IsType() {
		return
	}

	r.out.InferredRegions[id] = r.inferredRegion(node.Span, cx)

	switch node.Kind {
	case ast.NodeTypeRef:
		if ref, ok := r.build.TypeRef(id); ok {
			r.resolveMarker(ref.Region, cx)
			r.resolveType(ref.Elem, cx)
		}

	case ast.NodeTypePath:
		if path, ok := r.build.TypePath(id); ok {
			for _, arg := range path.Args {
				r.resolveType(arg, cx)
			}
		}

	case ast.NodeTypeFn:
		if fn, ok := r.build.TypeFn(id); ok {
			for _, param := range fn.Params {
				r.resolveType(param, cx)
			}
			r.resolveType(fn.Ret, cx)
		}

	case ast.NodeTypeTuple:
		if tuple, ok := r.build.TypeTuple(id); ok {
			for _, elem := range tuple.Elems {
				r.resolveType(elem, cx)
			}
		}
	}
}

// inferredRegion computes what an unmarked reference defaults to at the
// current position: the next region parameter at declaration scope, the
// block's own region at block scope, and the single implicit parameter slot
// for other items.
func (r *resolver) inferredRegion(span source.Span, cx context) Region {
	switch cx.scope.kind {
	case scopeDecl, scopeClosure:
		return ParamRegion(r.allocParam())
	case scopeBlock:
		return BlockRegion(cx.scope.id)
	case scopeItem:
		return ParamRegion(0)
	default:
		r.bug(span, "inferred region at unit root")
		return Region{}
	}
}

func (r *resolver) resolveMarker(id ast.NodeID, cx context) {
	marker, ok := r.build.Region(id)
	if !ok {
		return
	}
	span := r.build.Span(id)

	switch marker.Kind {
	case ast.RegionMarkerElided:
		// The default inferred region stands.

	case ast.RegionMarkerSelf:
		if cx.inImpl {
			r.out.TypeRegions[id] = SelfRegion()
		} else {
			r.errorf(diag.RegionSelfOutsideImpl, span, "the `self` region is not allowed here")
		}

	case ast.RegionMarkerNamed:
		if index, found := r.lookupBinding(marker.Name); found {
			r.out.TypeRegions[id] = ParamRegion(index)
			return
		}
		switch cx.scope.kind {
		case scopeDecl, scopeClosure:
			index := r.allocParam()
			r.bindings = append(r.bindings, binding{name: marker.Name, index: index})
			r.out.TypeRegions[id] = ParamRegion(index)
		case scopeItem:
			r.errorf(diag.RegionNamedNotAllowed, span, "named region not allowed in this context")
		case scopeBlock:
			r.errorf(diag.RegionUnknownName, span, "unknown region `%s`", r.build.Name(marker.Name))
		default:
			r.bug(span, "named region at unit root")
		}
	}
}
