package console

import "container/heap"

// InterruptVBlank is the value the VM driver writes to rI at the
// active-video-to-vblank transition.
const InterruptVBlank Word = 0x000004

// priority extracts the low-byte priority key from an interrupt value.
func priority(v Word) int {
	return int(v & 0xFF)
}

// pendingQueue is the min-priority queue of preempted interrupt contexts,
// ordered by the low byte of the stored interrupt value.
type pendingQueue []Word

func (q pendingQueue) Len() int            { return len(q) }
func (q pendingQueue) Less(i, j int) bool  { return priority(q[i]) < priority(q[j]) }
func (q pendingQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pendingQueue) Push(x interface{}) { *q = append(*q, x.(Word)) }
func (q *pendingQueue) Pop() interface{} {
	old := *q
	n := len(old)
	v := old[n-1]
	*q = old[:n-1]
	return v
}

// trigger runs the interrupt engine's enter/return/preempt/overlap logic.
// It is called from Set whenever the host program writes rI.
func (b *Banks) trigger(v Word) error {
	u := b.contexts[b.current].registers[RegInterrupt]
	switch {
	case u == 0 && v == 0:
		return ErrInterruptDoubleZero
	case u == 0 && v != 0:
		b.enter(v)
		return nil
	case u != 0 && v == 0:
		b.doReturn()
		return nil
	default:
		pu, pv := priority(u), priority(v)
		switch {
		case pu < pv:
			heap.Push(&b.pending, v)
			b.setRaw(priority(v), RegProgramCounter, 0)
			return nil
		case pu > pv:
			heap.Push(&b.pending, u)
			b.enter(v)
			return nil
		default:
			return ErrInterruptOverlap
		}
	}
}

// enter switches into context priority(v), zeroing its pc and installing v
// as its rI. rG is not copied explicitly: it lives in a single shared
// cell (registers.go), so every context already observes the caller's rG.
func (b *Banks) enter(v Word) {
	p := priority(v)
	b.setRaw(p, RegProgramCounter, 0)
	b.setRaw(p, RegInterrupt, v)
	b.current = p
}

// doReturn handles a write of rI=0 while rI already held a nonzero value:
// pop the highest-priority (smallest p) pending interrupt and resume it, or fall
// back to context 0 if nothing is pending. A resumed context keeps the pc,
// registers and condition flag it had when it was preempted or paused.
func (b *Banks) doReturn() {
	if b.pending.Len() == 0 {
		b.current = 0
		return
	}
	v := heap.Pop(&b.pending).(Word)
	b.current = priority(v)
}
