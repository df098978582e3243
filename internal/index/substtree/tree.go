// Package substtree implements the substitution tree:
// the primary indexed map from terms or literal-argument tuples to
// leaf data, supporting unifier, generalization, instance and variant
// retrieval.
package substtree

import (
	"sync"

	"github.com/superpose/superpose/internal/term"
)

// Entry is one inserted key/leaf-data pair, handed back verbatim by
// every retrieval mode.
type Entry struct {
	Key  []*term.Term
	Data interface{}
}

type treeNode struct {
	funcChildren *childSet
	varChild     *treeNode
	leaves       []Entry
}

func newTreeNode() *treeNode {
	return &treeNode{funcChildren: newChildSet()}
}

func funcKeyOf(t *term.Term) funcKey {
	return funcKey{functor: uint32(t.Functor()), arity: t.Arity()}
}

// Tree is one substitution tree over one key shape (e.g. a predicate's
// argument list, or a single indexed subterm). Every operation expects
// keys with matching arity/sort conventions; the tree itself does not
// enforce this — callers build one Tree per indexed position family,
// so terms and literal-argument tuples can share this same
// implementation under whatever key shape each caller picks.
type Tree struct {
	mu   sync.Mutex
	root *treeNode
}

// New returns an empty substitution tree.
func New() *Tree {
	return &Tree{root: newTreeNode()}
}

// queue is the lazy key-term continuation used by both insertion and
// retrieval: element 0 is the next whole term to process; a
// functor's own arguments are spliced onto the front only at the
// moment the walk descends into it.
type queue = []*term.Term

func splice(args []*term.Term, rest queue) queue {
	out := make(queue, 0, len(args)+len(rest))
	out = append(out, args...)
	out = append(out, rest...)
	return out
}

// Insert adds key -> data to the tree. Insertion never fails;
// re-inserting an identical key simply adds another leaf entry at the
// same node (idempotent at the tree-shape level — duplicate Data
// values are still both kept, since distinguishing them is the
// caller's responsibility).
func (t *Tree) Insert(key []*term.Term, data interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	insert(t.root, queue(key), Entry{Key: key, Data: data})
}

func insert(node *treeNode, q queue, leaf Entry) {
	if len(q) == 0 {
		node.leaves = append(node.leaves, leaf)
		return
	}
	head, rest := q[0], q[1:]
	if head.IsVar() {
		if node.varChild == nil {
			node.varChild = newTreeNode()
		}
		insert(node.varChild, rest, leaf)
		return
	}
	child := node.funcChildren.getOrCreate(funcKeyOf(head))
	insert(child, splice(head.Args(), rest), leaf)
}

// Remove deletes the first leaf at key's node whose Data equals data
// (by ==). It is a no-op if no such leaf exists.
func (t *Tree) Remove(key []*term.Term, data interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	node := t.root
	q := queue(key)
	for len(q) > 0 {
		head, rest := q[0], q[1:]
		if head.IsVar() {
			if node.varChild == nil {
				return
			}
			node = node.varChild
			q = rest
			continue
		}
		child, ok := node.funcChildren.get(funcKeyOf(head))
		if !ok {
			return
		}
		node = child
		q = splice(head.Args(), rest)
	}
	for i, e := range node.leaves {
		if e.Data == data {
			node.leaves = append(node.leaves[:i], node.leaves[i+1:]...)
			return
		}
	}
}
