package services

import (
	"testing"

	"github.com/mementogram/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestNextVoteStatus(t *testing.T) {
	cases := []struct {
		name    string
		current int
		desired int
		want    int
	}{
		{"like from none", models.VoteNone, models.VoteLike, models.VoteLike},
		{"dislike from none", models.VoteNone, models.VoteDislike, models.VoteDislike},
		{"like toggles off", models.VoteLike, models.VoteLike, models.VoteNone},
		{"dislike toggles off", models.VoteDislike, models.VoteDislike, models.VoteNone},
		{"like switches to dislike", models.VoteLike, models.VoteDislike, models.VoteDislike},
		{"dislike switches to like", models.VoteDislike, models.VoteLike, models.VoteLike},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextVoteStatus(tc.current, tc.desired))
		})
	}
}

func TestNextVoteStatus_DoubleToggleReturnsToNone(t *testing.T) {
	after := nextVoteStatus(models.VoteNone, models.VoteLike)
	assert.Equal(t, models.VoteLike, after)

	after = nextVoteStatus(after, models.VoteLike)
	assert.Equal(t, models.VoteNone, after)
}

func TestNextVoteStatus_SwitchHasNoIntermediateState(t *testing.T) {
	// +1 then -1 lands directly on -1.
	after := nextVoteStatus(models.VoteLike, models.VoteDislike)
	assert.Equal(t, models.VoteDislike, after)
	assert.NotEqual(t, models.VoteNone, after)
}

func TestVoteActivity(t *testing.T) {
	assert.Equal(t, "post_liked", voteActivity(models.VoteLike))
	assert.Equal(t, "post_disliked", voteActivity(models.VoteDislike))
}

// Every transition that leaves a row behind (fresh cast or in-place switch)
// has an activity name to log; only the toggle-off removal goes unlogged.
func TestVoteTransitionsThatPersistHaveActivityNames(t *testing.T) {
	for _, current := range []int{models.VoteNone, models.VoteLike, models.VoteDislike} {
		for _, desired := range []int{models.VoteLike, models.VoteDislike} {
			if next := nextVoteStatus(current, desired); next != models.VoteNone {
				assert.NotEmpty(t, voteActivity(next))
			}
		}
	}
}
