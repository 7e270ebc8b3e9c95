package execution

// Bug names one of the 6510's documented addressing-mode quirks that a
// faithful emulation must reproduce rather than silently correct.
type Bug string

const (
	NoBug                    Bug = ""
	JmpIndirectPageWrapBug   Bug = "indirect JMP page-wrap bug"
	IndexedIndirectWrapBug   Bug = "pre-indexed indirect zero-page wrap"
	ZeroPageIndexWrapBug     Bug = "zero page index wrap"
	IndirectIndexedCarryBug  Bug = "post-indexed indirect carry-page timing"
)
