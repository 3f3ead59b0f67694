package resolve

import "github.com/jstankevicius/albatross-jit/ast"

// scope is a single lexical frame in a namespace stack.
type scope struct {
	bindings map[string]int // name -> index into the owning stack's records
}

func newScope() *scope {
	return &scope{bindings: make(map[string]int)}
}

// varStack is the variable namespace: independent scope frames plus a
// monotonically increasing index counter shared across the whole
// compilation.
type varStack struct {
	frames  []*scope
	records []ast.VarInfo
	next    int
}

func newVarStack() *varStack {
	return &varStack{frames: []*scope{newScope()}}
}

func (s *varStack) enterScope() { s.frames = append(s.frames, newScope()) }

func (s *varStack) exitScope() {
	if len(s.frames) == 1 {
		return // outermost frame is never popped
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *varStack) currentScope() *scope { return s.frames[len(s.frames)-1] }

// declaredInCurrentScope reports whether name is already bound in the
// top frame (a redefinition in the same frame is an error).
func (s *varStack) declaredInCurrentScope(name string) bool {
	_, ok := s.currentScope().bindings[name]
	return ok
}

// add binds name in the top frame to a fresh index and returns the
// resulting binding record.
func (s *varStack) add(name string, typ ast.Type) ast.VarInfo {
	info := ast.VarInfo{Type: typ, Index: s.next}
	s.next++
	s.records = append(s.records, info)
	s.currentScope().bindings[name] = info.Index
	return info
}

// find searches frames top-to-bottom for name.
func (s *varStack) find(name string) (ast.VarInfo, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if idx, ok := s.frames[i].bindings[name]; ok {
			return s.records[idx], true
		}
	}
	return ast.VarInfo{}, false
}

// funStack is the function namespace, structurally identical to
// varStack but keyed on ast.FunInfo.
type funStack struct {
	frames  []*scope
	records []ast.FunInfo
	next    int
}

func newFunStack() *funStack {
	return &funStack{frames: []*scope{newScope()}}
}

func (s *funStack) enterScope() { s.frames = append(s.frames, newScope()) }

func (s *funStack) exitScope() {
	if len(s.frames) == 1 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *funStack) currentScope() *scope { return s.frames[len(s.frames)-1] }

func (s *funStack) declaredInCurrentScope(name string) bool {
	_, ok := s.currentScope().bindings[name]
	return ok
}

func (s *funStack) add(name string, ret ast.Type, params []ast.Param) ast.FunInfo {
	info := ast.FunInfo{ReturnType: ret, Index: s.next, Params: params}
	s.next++
	s.records = append(s.records, info)
	s.currentScope().bindings[name] = info.Index
	return info
}

func (s *funStack) find(name string) (ast.FunInfo, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if idx, ok := s.frames[i].bindings[name]; ok {
			return s.records[idx], true
		}
	}
	return ast.FunInfo{}, false
}
