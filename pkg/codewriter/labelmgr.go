package codewriter

import "fmt"

// ----------------------------------------------------------------------------
// Label Manager

// LabelManager generates collision-free Hack assembly labels for every VM-level label,
// whether user-declared ("label LOOP") or compiler-internal (the branch targets a
// comparison or a function call snippet needs). Every user-declared VM label is scoped
// to the function it appears in, so generated names get prefixed with that function's
// name; a Writer switches the active scope with Enter every time it starts writing a
// new 'function' declaration.
type LabelManager struct {
	current *labelGenerator
	static  *labelGenerator // Reserved for labels that must be reachable across function scopes
}

// NewLabelManager returns a LabelManager with no active function scope; Declared/Unique
// calls made before the first Enter produce un-prefixed labels, which is correct for VM
// modules that never declare a function (this is allowed, the module's code then simply
// runs top to bottom).
func NewLabelManager() *LabelManager {
	return &LabelManager{current: newLabelGenerator(""), static: newLabelGenerator("")}
}

// Enter switches the active scope to function, starting its collision counters fresh.
func (m *LabelManager) Enter(function string) { m.current = newLabelGenerator(function) }

// Declared resolves a user-declared VM label to its unique assembly label.
func (m *LabelManager) Declared(name string) string { return m.current.declared(name) }

// Unique mints a fresh compiler-internal label prefixed by tag (e.g. "JEQ", "Main.fib$ret"),
// guaranteed not to collide with any other label minted against the same tag in the
// current function scope.
func (m *LabelManager) Unique(tag string) string { return m.current.unique(tag) }

// Static mints a label outside of any function scope, for labels a Writer needs to
// reach from anywhere in the translated program.
func (m *LabelManager) Static(tag string) string { return m.static.unique(tag) }

type labelGenerator struct {
	function string
	seen     map[string]uint32 // Per-tag collision counters, keeps generated names short
}

func newLabelGenerator(function string) *labelGenerator {
	return &labelGenerator{function: function, seen: map[string]uint32{}}
}

func (g *labelGenerator) declared(name string) string {
	if g.function == "" {
		return name
	}
	return fmt.Sprintf("%s$%s", g.function, name)
}

func (g *labelGenerator) unique(tag string) string {
	n := g.seen[tag]
	g.seen[tag]++

	label := g.declared(tag)
	if n > 0 {
		label = fmt.Sprintf("%s.%d", label, n)
	}
	return label
}
