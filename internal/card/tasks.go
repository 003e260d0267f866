package card

// TaskID identifies a scheduled task.
type TaskID uint64

// tasks tracks pending scheduled tasks. A task that is not pending when
// it fires (cancelled or already fired) is ignored.
type tasks struct {
	next    TaskID
	pending map[TaskID]struct{}
}

func newTasks() *tasks {
	return &tasks{pending: make(map[TaskID]struct{})}
}

func (t *tasks) schedule() TaskID {
	t.next++
	t.pending[t.next] = struct{}{}
	return t.next
}

// fire consumes id and reports whether it was still pending.
func (t *tasks) fire(id TaskID) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

func (t *tasks) cancelAll() {
	clear(t.pending)
}

func (t *tasks) len() int {
	return len(t.pending)
}
