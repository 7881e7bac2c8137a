package codewriter

// ----------------------------------------------------------------------------
// Register Manager

// RegisterManager leases the general purpose scratch registers (R13-R15) the Code
// Writer borrows to hold an intermediate value (a computed segment address, the return
// function's saved frame pointer) across a handful of instructions. A handle is
// reference counted rather than strictly stack allocated: once every register is
// already on loan, the manager hands out a second lease on the least-loaded one instead
// of failing, the same way a reference counted pointer keeps serving new readers once
// its backing allocation is shared, rather than requiring a dedicated copy per reader.
type RegisterManager struct {
	leases [3]int // Outstanding lease count for R13, R14 and R15, in that order
}

// NewRegisterManager returns a RegisterManager with every scratch register free.
func NewRegisterManager() RegisterManager { return RegisterManager{} }

// Handle identifies one of the three scratch registers by its Hack assembly symbol.
type Handle struct {
	mgr   *RegisterManager
	index int
}

var scratchSymbols = [3]string{"R13", "R14", "R15"}

// Symbol returns the Hack assembly symbol (e.g. "R13") this handle addresses.
func (h Handle) Symbol() string { return scratchSymbols[h.index] }

// Acquire hands out the first free scratch register. If all three are already on loan
// it falls back to the first one with fewer than 2 outstanding leases, rather than
// blocking or erroring: the snippets that reach for a second scratch register while the
// first is still held (the return sequence stashes both the caller's frame pointer and
// the return address at once) never need more than two simultaneously live handles.
func (m *RegisterManager) Acquire() Handle {
	for i := range m.leases {
		if m.leases[i] == 0 {
			m.leases[i]++
			return Handle{mgr: m, index: i}
		}
	}
	for i := range m.leases {
		if m.leases[i] < 2 {
			m.leases[i]++
			return Handle{mgr: m, index: i}
		}
	}
	m.leases[0]++
	return Handle{mgr: m, index: 0}
}

// Release drops one outstanding lease on the handle's register, making it eligible to
// be handed out as a free register again.
func (h Handle) Release() {
	if h.mgr.leases[h.index] > 0 {
		h.mgr.leases[h.index]--
	}
}
