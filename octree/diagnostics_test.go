package octree

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestStatsEmptyTree(t *testing.T) {
	tree := createTree(t, 10, nil)
	stats := tree.Stats()
	test.That(t, stats, test.ShouldResemble, Stats{EmptyNodes: 1})
	test.That(t, stats.Nodes(), test.ShouldEqual, 1)
}

func TestWriteVolumeByLevel(t *testing.T) {
	tree := threeItemTree(t, nil)

	var buf bytes.Buffer
	test.That(t, tree.WriteVolumeByLevel(&buf), test.ShouldBeNil)
	out := buf.String()

	// One table for the root and one for its +X+Y+Z child.
	lower := strings.ToLower(out)
	test.That(t, strings.Count(lower, "level 0"), test.ShouldEqual, 1)
	test.That(t, strings.Count(lower, "level 1"), test.ShouldEqual, 1)
	test.That(t, lower, test.ShouldNotContainSubstring, "level 2")
	test.That(t, out, test.ShouldContainSubstring, "Internal")
	test.That(t, out, test.ShouldContainSubstring, "Empty")
	test.That(t, out, test.ShouldContainSubstring, "item 90 (90.0, 90.0, 90.0)")
	test.That(t, out, test.ShouldContainSubstring, "[(0.00, 0.00, 0.00) .. (100.00, 100.00, 100.00)]")

	t.Run("leaf root writes nothing", func(t *testing.T) {
		tree := createTree(t, 10, nil)
		test.That(t, tree.Insert(newTestItem(0, 1, 1, 1)), test.ShouldBeTrue)
		var buf bytes.Buffer
		test.That(t, tree.WriteVolumeByLevel(&buf), test.ShouldBeNil)
		test.That(t, buf.Len(), test.ShouldEqual, 0)
	})
}

func TestWriteLeaves(t *testing.T) {
	tree := threeItemTree(t, nil)
	test.That(t, tree.Insert(newTestItem(1, 10, 10, 10)), test.ShouldBeTrue)
	test.That(t, tree.Insert(newTestItem(2, 10, 10, 10)), test.ShouldBeTrue)

	var buf bytes.Buffer
	test.That(t, tree.WriteLeaves(&buf), test.ShouldBeNil)
	out := buf.String()

	test.That(t, out, test.ShouldContainSubstring, "item -50 (-50.0, -50.0, -50.0), at level 1\n")
	test.That(t, out, test.ShouldContainSubstring, "item 90 (90.0, 90.0, 90.0), at level 2\n")
	test.That(t, out, test.ShouldContainSubstring, "MinLeaf at level 8\n\titem 1 (10.0, 10.0, 10.0)\n\titem 2 (10.0, 10.0, 10.0)\n")
	test.That(t, strings.Count(out, "\n"), test.ShouldEqual, 6)
}
