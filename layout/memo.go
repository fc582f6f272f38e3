package layout

import (
	"sync"

	"github.com/arc-language/typelayout/hirtype"
)

// Memo is the process-wide cache from §4.5, held as an explicit handle
// rather than an ambient global so tests and parallel tooling can each
// own one. It follows the concurrent-map discipline from §5: a lookup
// miss builds outside the lock, and a racing duplicate build is
// discarded in favor of whichever insert won, rather than holding the
// lock across a (possibly recursive) build.
type Memo struct {
	mu      sync.Mutex
	structs map[*hirtype.StructDef]*TypeRepr
	enums   map[*hirtype.EnumDef]*TypeRepr
	unions  map[*hirtype.UnionDef]*TypeRepr
	tuples  map[string]*TypeRepr
}

// NewMemo returns an empty memo cache.
func NewMemo() *Memo {
	return &Memo{
		structs: make(map[*hirtype.StructDef]*TypeRepr),
		enums:   make(map[*hirtype.EnumDef]*TypeRepr),
		unions:  make(map[*hirtype.UnionDef]*TypeRepr),
		tuples:  make(map[string]*TypeRepr),
	}
}

func (m *Memo) lookupStruct(def *hirtype.StructDef) (*TypeRepr, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.structs[def]
	return tr, ok
}

func (m *Memo) insertStruct(def *hirtype.StructDef, tr *TypeRepr) *TypeRepr {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.structs[def]; ok {
		return existing
	}
	m.structs[def] = tr
	return tr
}

func (m *Memo) lookupEnum(def *hirtype.EnumDef) (*TypeRepr, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.enums[def]
	return tr, ok
}

func (m *Memo) insertEnum(def *hirtype.EnumDef, tr *TypeRepr) *TypeRepr {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.enums[def]; ok {
		return existing
	}
	m.enums[def] = tr
	return tr
}

func (m *Memo) lookupUnion(def *hirtype.UnionDef) (*TypeRepr, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.unions[def]
	return tr, ok
}

func (m *Memo) insertUnion(def *hirtype.UnionDef, tr *TypeRepr) *TypeRepr {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.unions[def]; ok {
		return existing
	}
	m.unions[def] = tr
	return tr
}

func (m *Memo) lookupTuple(key string) (*TypeRepr, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.tuples[key]
	return tr, ok
}

func (m *Memo) insertTuple(key string, tr *TypeRepr) *TypeRepr {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.tuples[key]; ok {
		return existing
	}
	m.tuples[key] = tr
	return tr
}
