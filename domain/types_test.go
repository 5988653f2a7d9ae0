package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightMatrixK(t *testing.T) {
	wm := WeightMatrix{Rows: []SparseVector{{}, {}, {}}}
	assert.Equal(t, 3, wm.K())
	assert.Equal(t, 0, WeightMatrix{}.K())
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "branch", BranchNode.String())
	assert.Equal(t, "leaf", LeafNode.String())
}

func TestTreeNodeIsLeaf(t *testing.T) {
	leaf := &TreeNode{Kind: LeafNode}
	branch := &TreeNode{Kind: BranchNode}
	assert.True(t, leaf.IsLeaf())
	assert.False(t, branch.IsLeaf())
}
