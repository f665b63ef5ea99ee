package octree

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	InternalNodes int
	EmptyNodes    int
	LeafNodes     int
	MinLeafNodes  int
	// LeafItems counts items stored alone in a leaf, MinLeafItems items stored in minimum leaves.
	LeafItems    int
	MinLeafItems int
	MaxDepth     int
}

// Nodes returns the total number of nodes in the tree, including the root.
func (s Stats) Nodes() int {
	return s.InternalNodes + s.EmptyNodes + s.LeafNodes + s.MinLeafNodes
}

// Stats walks the tree and counts its nodes and items by type.
func (t *Tree[I]) Stats() Stats {
	var s Stats
	t.root.walk(func(nd *node[I], depth int) bool {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		switch b := nd.body.(type) {
		case *internalBody[I]:
			s.InternalNodes++
		case emptyBody[I]:
			s.EmptyNodes++
		case *leafBody[I]:
			s.LeafNodes++
			s.LeafItems++
		case *minLeafBody[I]:
			s.MinLeafNodes++
			s.MinLeafItems += len(b.items)
		}
		return true
	})
	return s
}

// WriteVolumeByLevel writes, for every internal node, a table of its children's volumes and contents labeled
// with the level of the children's parent. Tables are written parent first.
func (t *Tree[I]) WriteVolumeByLevel(w io.Writer) error {
	return writeVolumeByLevel(w, t.root, 0)
}

func writeVolumeByLevel[I Item[I]](w io.Writer, nd *node[I], level int) error {
	internal, ok := nd.body.(*internalBody[I])
	if !ok {
		return nil
	}

	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Level %d", level))
	tw.AppendHeader(table.Row{"#", "Volume", "Type", "Contents"})
	for i, child := range internal.children {
		tw.AppendRow(table.Row{i, child.volume.String(), child.body.nodeType().String(), describeContents(child)})
	}
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return errors.Wrap(err, "error writing octree level")
	}

	for _, child := range internal.children {
		if err := writeVolumeByLevel(w, child, level+1); err != nil {
			return err
		}
	}
	return nil
}

func describeContents[I Item[I]](nd *node[I]) string {
	switch b := nd.body.(type) {
	case *leafBody[I]:
		return fmt.Sprintf("%v", b.item)
	case *minLeafBody[I]:
		return fmt.Sprintf("%d items %v", len(b.items), b.items)
	default:
		return ""
	}
}

// WriteLeaves writes every stored item along with the depth of the node holding it. Items sharing a minimum leaf
// are written together.
func (t *Tree[I]) WriteLeaves(w io.Writer) error {
	return writeLeaves(w, t.root, 0)
}

func writeLeaves[I Item[I]](w io.Writer, nd *node[I], depth int) error {
	var err error
	switch b := nd.body.(type) {
	case *internalBody[I]:
		for _, child := range b.children {
			if err := writeLeaves(w, child, depth+1); err != nil {
				return err
			}
		}
	case *leafBody[I]:
		_, err = fmt.Fprintf(w, "%v, at level %d\n", b.item, depth)
	case *minLeafBody[I]:
		if _, err = fmt.Fprintf(w, "MinLeaf at level %d\n", depth); err != nil {
			break
		}
		for _, item := range b.items {
			if _, err = fmt.Fprintf(w, "\t%v\n", item); err != nil {
				break
			}
		}
	}
	return errors.Wrap(err, "error writing octree leaves")
}
