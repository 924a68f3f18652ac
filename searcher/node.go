package searcher

const (
	// NoParent is the parent index of the root node.
	NoParent = -1
	// NoBranch is the origin of the root node, which belongs to no branch.
	NoBranch = -1
)

// Edge labels a child index with the display tag of the action leading to it.
type Edge struct {
	Tag   string
	Child int
}

type node[D any] struct {
	diff     D
	score    float64
	parent   int
	origin   int
	children []Edge
}

// tree is an append-only arena of nodes. Indices are stable for the lifetime
// of the tree and a child is always stored after its parent.
type tree[D any] struct {
	nodes []node[D]
}

func newTree[D any](capacity int) *tree[D] {
	return &tree[D]{nodes: make([]node[D], 0, capacity)}
}

func (t *tree[D]) create(diff D, score float64, parent, origin int) int {
	if parent >= len(t.nodes) {
		panic("parent index not yet created")
	}
	t.nodes = append(t.nodes, node[D]{
		diff:   diff,
		score:  score,
		parent: parent,
		origin: origin,
	})
	return len(t.nodes) - 1
}

func (t *tree[D]) attachChildren(index int, children []Edge) {
	for _, edge := range children {
		if edge.Child <= index {
			panic("child index must follow its parent")
		}
	}
	t.nodes[index].children = children
}

func (t *tree[D]) len() int                { return len(t.nodes) }
func (t *tree[D]) diff(index int) D        { return t.nodes[index].diff }
func (t *tree[D]) score(index int) float64 { return t.nodes[index].score }
func (t *tree[D]) parent(index int) int    { return t.nodes[index].parent }
func (t *tree[D]) origin(index int) int    { return t.nodes[index].origin }
func (t *tree[D]) children(index int) []Edge {
	return t.nodes[index].children
}
