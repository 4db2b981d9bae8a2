package ast

import (
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/source"
)

// StmtKind is the closed set of statement variants.
type StmtKind uint8

const (
	// StmtAssign is "name <- expr".
	StmtAssign StmtKind = iota + 1
	// StmtLabel declares a jump target on its own line.
	StmtLabel
	// StmtGoto is "GoTo[label]" with an optional "(condition)".
	StmtGoto
	// StmtAction invokes a builtin action.
	StmtAction
	// StmtBlock is the root: the flat statement list of a script.
	StmtBlock
)

func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtLabel:
		return "Label"
	case StmtGoto:
		return "Goto"
	case StmtAction:
		return "Action"
	case StmtBlock:
		return "Block"
	default:
		return "Invalid"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtAssignData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type StmtLabelData struct {
	Name source.StringID
}

type StmtGotoData struct {
	Label     source.StringID
	LabelSpan source.Span
	Cond      ExprID // NoExprID for an unconditional jump
}

type StmtActionData struct {
	Name     source.StringID
	NameSpan source.Span
	Op       builtin.Op
	Args     []ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Assigns *Arena[StmtAssignData]
	Labels  *Arena[StmtLabelData]
	Gotos   *Arena[StmtGotoData]
	Actions *Arena[StmtActionData]
	Blocks  *Arena[StmtBlockData]
}

// NewStmts creates per-kind arenas; capHint 0 means 1<<8.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Assigns: NewArena[StmtAssignData](capHint / 2),
		Labels:  NewArena[StmtLabelData](capHint / 8),
		Gotos:   NewArena[StmtGotoData](capHint / 8),
		Actions: NewArena[StmtActionData](capHint / 2),
		Blocks:  NewArena[StmtBlockData](1),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewAssign(span, nameSpan source.Span, name source.StringID, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Name: name, NameSpan: nameSpan, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewLabel(span source.Span, name source.StringID) StmtID {
	return s.new(StmtLabel, span, s.Labels.Allocate(StmtLabelData{Name: name}))
}

func (s *Stmts) Label(id StmtID) (*StmtLabelData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLabel {
		return nil, false
	}
	return s.Labels.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewGoto(span, labelSpan source.Span, label source.StringID, cond ExprID) StmtID {
	return s.new(StmtGoto, span, s.Gotos.Allocate(StmtGotoData{Label: label, LabelSpan: labelSpan, Cond: cond}))
}

func (s *Stmts) Goto(id StmtID) (*StmtGotoData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtGoto {
		return nil, false
	}
	return s.Gotos.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewAction(span, nameSpan source.Span, name source.StringID, op builtin.Op, args []ExprID) StmtID {
	return s.new(StmtAction, span, s.Actions.Allocate(StmtActionData{Name: name, NameSpan: nameSpan, Op: op, Args: args}))
}

func (s *Stmts) Action(id StmtID) (*StmtActionData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAction {
		return nil, false
	}
	return s.Actions.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(st.Payload)), true
}
