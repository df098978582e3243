package substtree

// funcKey discriminates a functor-headed child by symbol and arity.
type funcKey struct {
	functor uint32
	arity   int
}

// arrayUpgradeThreshold / listUpgradeThreshold are the node-layout
// self-upgrade thresholds: array-to-list around 4 children, list-to-hash
// around 8.
const (
	arrayUpgradeThreshold = 4
	listUpgradeThreshold  = 8
)

// childSet holds a node's functor-keyed children, starting as an
// unsorted small array and self-upgrading to a linked list then a
// hash set as it grows past the thresholds above. The three layouts are
// functionally interchangeable; callers never observe which one is
// active.
type childSet struct {
	array []arrayEntry
	list  *listEntry
	hash  map[funcKey]*treeNode
}

type arrayEntry struct {
	key   funcKey
	child *treeNode
}

type listEntry struct {
	key   funcKey
	child *treeNode
	next  *listEntry
}

func newChildSet() *childSet { return &childSet{} }

func (c *childSet) len() int {
	switch {
	case c.hash != nil:
		return len(c.hash)
	case c.list != nil:
		n := 0
		for e := c.list; e != nil; e = e.next {
			n++
		}
		return n
	default:
		return len(c.array)
	}
}

func (c *childSet) get(key funcKey) (*treeNode, bool) {
	switch {
	case c.hash != nil:
		n, ok := c.hash[key]
		return n, ok
	case c.list != nil:
		for e := c.list; e != nil; e = e.next {
			if e.key == key {
				return e.child, true
			}
		}
		return nil, false
	default:
		for _, e := range c.array {
			if e.key == key {
				return e.child, true
			}
		}
		return nil, false
	}
}

// getOrCreate returns the existing child for key, or creates one and
// upgrades the layout if this insertion pushes the node past a
// threshold.
func (c *childSet) getOrCreate(key funcKey) *treeNode {
	if n, ok := c.get(key); ok {
		return n
	}
	n := newTreeNode()

	switch {
	case c.hash != nil:
		c.hash[key] = n
		return n
	case c.list != nil:
		c.list = &listEntry{key: key, child: n, next: c.list}
		if c.len() > listUpgradeThreshold {
			c.upgradeToHash()
		}
		return n
	default:
		c.array = append(c.array, arrayEntry{key: key, child: n})
		if c.len() > arrayUpgradeThreshold {
			c.upgradeToList()
		}
		return n
	}
}

func (c *childSet) upgradeToList() {
	var head *listEntry
	for _, e := range c.array {
		head = &listEntry{key: e.key, child: e.child, next: head}
	}
	c.array = nil
	c.list = head
}

func (c *childSet) upgradeToHash() {
	h := make(map[funcKey]*treeNode, c.len()*2)
	for e := c.list; e != nil; e = e.next {
		h[e.key] = e.child
	}
	c.list = nil
	c.hash = h
}

// each calls fn for every (key, child) pair, regardless of the
// current physical layout.
func (c *childSet) each(fn func(key funcKey, child *treeNode)) {
	switch {
	case c.hash != nil:
		for k, n := range c.hash {
			fn(k, n)
		}
	case c.list != nil:
		for e := c.list; e != nil; e = e.next {
			fn(e.key, e.child)
		}
	default:
		for _, e := range c.array {
			fn(e.key, e.child)
		}
	}
}
