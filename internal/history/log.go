package history

// Log holds the done and undone stacks. Both are only pushed and popped at
// the tail. The zero value is an empty log.
type Log struct {
	done   []Op
	undone []Op
}

// Record pushes op onto the done stack and discards everything that could
// have been redone.
func (l *Log) Record(op Op) {
	l.undone = nil
	l.done = append(l.done, op)
}

// Return records d for a fragment dropped back unchanged after being lifted.
// When the Clip that lifted it is still on top of the done stack at the same
// rectangle the two cancel and nothing is pushed. It reports whether the pair
// was elided.
func (l *Log) Return(d Drop) bool {
	if n := len(l.done); n > 0 {
		if c, ok := l.done[n-1].(Clip); ok && c.Rect == d.Rect {
			l.undone = nil
			l.done[n-1] = nil
			l.done = l.done[:n-1]
			return true
		}
	}
	l.Record(d)
	return false
}

// Undo reverts the most recent operation. It reports false when there is
// nothing to undo.
func (l *Log) Undo(c Canvas) bool { return transfer(&l.done, &l.undone, c) }

// Redo reapplies the most recently undone operation. It reports false when
// there is nothing to redo.
func (l *Log) Redo(c Canvas) bool { return transfer(&l.undone, &l.done, c) }

func transfer(from, to *[]Op, c Canvas) bool {
	if len(*from) == 0 {
		return false
	}
	i := len(*from) - 1
	op := (*from)[i]
	(*from)[i] = nil
	*from = (*from)[:i]
	inv := op.Invert(c)
	op.Revert(c)
	*to = append(*to, inv)
	return true
}

func (l *Log) CanUndo() bool { return len(l.done) > 0 }

func (l *Log) CanRedo() bool { return len(l.undone) > 0 }

// Len returns the sizes of the done and undone stacks.
func (l *Log) Len() (done, undone int) { return len(l.done), len(l.undone) }

// Done returns a copy of the done stack, oldest first.
func (l *Log) Done() []Op { return append([]Op(nil), l.done...) }

// Undone returns a copy of the undone stack, oldest first.
func (l *Log) Undone() []Op { return append([]Op(nil), l.undone...) }

// Reset drops all history.
func (l *Log) Reset() {
	l.done = nil
	l.undone = nil
}
