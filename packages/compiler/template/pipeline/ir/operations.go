package ir

// XrefId is a branded type for a cross-reference ID. Xrefs are allocated
// monotonically within one compilation job and never reused.
type XrefId int

// ConstIndex is a branded type for an index into a job's consts array.
type ConstIndex int

// SlotHandle is a placeholder for the runtime data slot of a
// slot-consuming operation. The slot index is assigned by a later phase;
// this phase only allocates the handle so other operations can reference it.
type SlotHandle struct {
	Slot *int
}

// NewSlotHandle creates an unassigned SlotHandle.
func NewSlotHandle() *SlotHandle {
	return &SlotHandle{}
}

// Op is the base interface for semantic operations being performed within a
// template.
type Op interface {
	GetKind() OpKind
	GetPrev() Op
	SetPrev(op Op)
	GetNext() Op
	SetNext(op Op)
	GetDebugListId() *int
	SetDebugListId(id *int)
	// Next is a convenience method that calls GetNext().
	Next() Op
}

// CreateOp is an operation in a unit's create list. Create operations
// address an element or view by xref.
type CreateOp interface {
	Op
	GetXref() XrefId
	SetXref(xref XrefId)
}

// UpdateOp is an operation in a unit's update list.
type UpdateOp interface {
	Op
	GetXref() XrefId
	SetXref(xref XrefId)
}

// OpBase is embedded by every concrete operation type.
type OpBase struct {
	prev        Op
	next        Op
	debugListId *int
}

// NewOpBase creates a fresh, unowned OpBase.
func NewOpBase() OpBase {
	return OpBase{}
}

// GetPrev returns the previous operation.
func (o *OpBase) GetPrev() Op { return o.prev }

// SetPrev sets the previous operation.
func (o *OpBase) SetPrev(op Op) { o.prev = op }

// GetNext returns the next operation.
func (o *OpBase) GetNext() Op { return o.next }

// Next is a convenience method that calls GetNext().
func (o *OpBase) Next() Op { return o.next }

// SetNext sets the next operation.
func (o *OpBase) SetNext(op Op) { o.next = op }

// GetDebugListId returns the id of the owning list, if any.
func (o *OpBase) GetDebugListId() *int { return o.debugListId }

// SetDebugListId sets the id of the owning list.
func (o *OpBase) SetDebugListId(id *int) { o.debugListId = id }

// ListEndOp is a special operation type used to represent the beginning and
// end sentinels of a linked list.
type ListEndOp struct {
	prev        Op
	next        Op
	debugListId int
}

func (l *ListEndOp) GetKind() OpKind { return OpKindListEnd }

func (l *ListEndOp) GetPrev() Op { return l.prev }

func (l *ListEndOp) SetPrev(op Op) { l.prev = op }

func (l *ListEndOp) GetNext() Op { return l.next }

func (l *ListEndOp) Next() Op { return l.next }

func (l *ListEndOp) SetNext(op Op) { l.next = op }

func (l *ListEndOp) GetDebugListId() *int { return &l.debugListId }

func (l *ListEndOp) SetDebugListId(id *int) {
	if id == nil {
		// Sentinels always belong to their list.
		return
	}
	l.debugListId = *id
}

// OpList is a doubly-linked list of operations bracketed by two sentinel
// nodes. All mutation goes through the list so that ownership can be
// asserted.
type OpList struct {
	debugListId int
	head        Op
	tail        Op
}

var nextListId = 0

// NewOpList creates an empty OpList.
func NewOpList() *OpList {
	listId := nextListId
	nextListId++
	head := &ListEndOp{debugListId: listId}
	tail := &ListEndOp{debugListId: listId}
	head.SetNext(tail)
	tail.SetPrev(head)
	return &OpList{debugListId: listId, head: head, tail: tail}
}

// Head returns the head sentinel of the list.
func (l *OpList) Head() Op { return l.head }

// Tail returns the tail sentinel of the list.
func (l *OpList) Tail() Op { return l.tail }

// Size returns the number of operations in the list, excluding sentinels.
func (l *OpList) Size() int {
	n := 0
	for op := l.head.Next(); op.GetKind() != OpKindListEnd; op = op.Next() {
		n++
	}
	return n
}

// All returns the operations in list order, excluding sentinels.
func (l *OpList) All() []Op {
	var ops []Op
	for op := l.head.Next(); op.GetKind() != OpKindListEnd; op = op.Next() {
		ops = append(ops, op)
	}
	return ops
}

// Push adds an operation to the tail of the list.
func (l *OpList) Push(op Op) {
	if op.GetKind() == OpKindListEnd {
		panic("AssertionError: cannot push list end node")
	}
	if op.GetDebugListId() != nil {
		panic("AssertionError: operation is already owned by a list")
	}

	listId := l.debugListId
	op.SetDebugListId(&listId)

	prev := l.tail.GetPrev()
	prev.SetNext(op)
	op.SetPrev(prev)
	op.SetNext(l.tail)
	l.tail.SetPrev(op)
}

// PushAll pushes a sequence of operations in order.
func (l *OpList) PushAll(ops []Op) {
	for _, op := range ops {
		l.Push(op)
	}
}

// InsertBefore inserts a new operation before a given op already in the
// list.
func (l *OpList) InsertBefore(op Op, newOp Op) {
	if newOp.GetKind() == OpKindListEnd {
		panic("AssertionError: cannot insert list end node")
	}
	if newOp.GetDebugListId() != nil {
		panic("AssertionError: operation is already owned by a list")
	}
	if op.GetDebugListId() == nil || *op.GetDebugListId() != l.debugListId {
		panic("AssertionError: operation is not owned by this list")
	}

	listId := l.debugListId
	newOp.SetDebugListId(&listId)

	prev := op.GetPrev()
	prev.SetNext(newOp)
	newOp.SetPrev(prev)
	newOp.SetNext(op)
	op.SetPrev(newOp)
}

// InsertAfter inserts a new operation after a given op already in the list.
func (l *OpList) InsertAfter(op Op, newOp Op) {
	if newOp.GetKind() == OpKindListEnd {
		panic("AssertionError: cannot insert list end node")
	}
	if newOp.GetDebugListId() != nil {
		panic("AssertionError: operation is already owned by a list")
	}
	if op.GetDebugListId() == nil || *op.GetDebugListId() != l.debugListId {
		panic("AssertionError: operation is not owned by this list")
	}

	listId := l.debugListId
	newOp.SetDebugListId(&listId)

	next := op.GetNext()
	op.SetNext(newOp)
	newOp.SetPrev(op)
	newOp.SetNext(next)
	next.SetPrev(newOp)
}

// Remove removes an operation from the list.
func (l *OpList) Remove(op Op) {
	if op.GetKind() == OpKindListEnd {
		panic("AssertionError: cannot remove list end node")
	}
	if op.GetDebugListId() == nil || *op.GetDebugListId() != l.debugListId {
		panic("AssertionError: operation is not owned by this list")
	}

	prev := op.GetPrev()
	next := op.GetNext()
	prev.SetNext(next)
	next.SetPrev(prev)
	op.SetPrev(nil)
	op.SetNext(nil)
	op.SetDebugListId(nil)
}

// Replace replaces an operation with a new one, which takes its position.
func (l *OpList) Replace(oldOp Op, newOp Op) {
	if newOp.GetKind() == OpKindListEnd || oldOp.GetKind() == OpKindListEnd {
		panic("AssertionError: cannot replace list end node")
	}
	if newOp.GetDebugListId() != nil {
		panic("AssertionError: new operation is already owned by a list")
	}
	if oldOp.GetDebugListId() == nil || *oldOp.GetDebugListId() != l.debugListId {
		panic("AssertionError: old operation is not owned by this list")
	}

	listId := l.debugListId
	newOp.SetDebugListId(&listId)

	prev := oldOp.GetPrev()
	next := oldOp.GetNext()
	prev.SetNext(newOp)
	newOp.SetPrev(prev)
	newOp.SetNext(next)
	next.SetPrev(newOp)
	oldOp.SetPrev(nil)
	oldOp.SetNext(nil)
	oldOp.SetDebugListId(nil)
}

// Prepend prepends operations to the head of the list, preserving their
// order.
func (l *OpList) Prepend(ops []Op) {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if op.GetKind() == OpKindListEnd {
			panic("AssertionError: cannot prepend list end node")
		}
		if op.GetDebugListId() != nil {
			panic("AssertionError: operation is already owned by a list")
		}

		listId := l.debugListId
		op.SetDebugListId(&listId)

		first := l.head.GetNext()
		l.head.SetNext(op)
		op.SetPrev(l.head)
		op.SetNext(first)
		first.SetPrev(op)
	}
}
