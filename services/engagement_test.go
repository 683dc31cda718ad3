package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeEngagement_AttachesCounts(t *testing.T) {
	views := []PostView{{ID: 1}, {ID: 2}, {ID: 3}}
	eng := &engagement{
		likeCounts:    map[uint]int64{1: 4, 3: 1},
		dislikeCounts: map[uint]int64{1: 2},
		commentCounts: map[uint]int64{2: 7},
		viewerVotes:   map[uint]int{1: 1, 3: -1},
	}

	merged := mergeEngagement(views, eng)

	assert.Equal(t, int64(4), merged[0].LikeCount)
	assert.Equal(t, int64(2), merged[0].DislikeCount)
	assert.Equal(t, 1, merged[0].CurrentUserVote)

	assert.Equal(t, int64(7), merged[1].CommentCount)
	assert.Equal(t, 0, merged[1].CurrentUserVote)

	assert.Equal(t, int64(1), merged[2].LikeCount)
	assert.Equal(t, -1, merged[2].CurrentUserVote)
}

func TestMergeEngagement_ZeroFillsAbsentKeys(t *testing.T) {
	views := []PostView{{ID: 42}}
	eng := &engagement{
		likeCounts:    map[uint]int64{},
		dislikeCounts: map[uint]int64{},
		commentCounts: map[uint]int64{},
		viewerVotes:   map[uint]int{},
	}

	merged := mergeEngagement(views, eng)

	assert.Equal(t, int64(0), merged[0].LikeCount)
	assert.Equal(t, int64(0), merged[0].DislikeCount)
	assert.Equal(t, int64(0), merged[0].CommentCount)
	assert.Equal(t, 0, merged[0].CurrentUserVote)
}

func TestPostIDsOf(t *testing.T) {
	views := []PostView{{ID: 9}, {ID: 4}}
	assert.Equal(t, []uint{9, 4}, postIDsOf(views))

	assert.Empty(t, postIDsOf(nil))
}
