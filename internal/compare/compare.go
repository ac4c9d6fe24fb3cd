package compare

import (
	"math"

	"reelmate/internal/movies"
)

// Result holds the derived comparison between two collections. It is
// computed fresh per request and never persisted.
type Result struct {
	Common            []movies.Record `json:"common"`
	UserOnly          []movies.Record `json:"userOnly"`
	FriendOnly        []movies.Record `json:"friendOnly"`
	SimilarityPercent int             `json:"similarityPercent"`
	UserTotal         int             `json:"userTotal"`
	FriendTotal       int             `json:"friendTotal"`
	CommonCount       int             `json:"commonCount"`
}

// Compare splits the two collections into common and exclusive subsets
// and scores their similarity. Common and UserOnly keep user's order;
// FriendOnly keeps friend's order. Duplicate keys within one input are
// not collapsed: every copy passes the same membership test.
func Compare(user, friend []movies.Record) Result {
	friendKeys := movies.KeySet(friend)
	userKeys := movies.KeySet(user)

	common := make([]movies.Record, 0, len(user))
	userOnly := make([]movies.Record, 0, len(user))
	for _, rec := range user {
		if _, ok := friendKeys[rec.Key()]; ok {
			common = append(common, rec)
		} else {
			userOnly = append(userOnly, rec)
		}
	}

	friendOnly := make([]movies.Record, 0, len(friend))
	for _, rec := range friend {
		if _, ok := userKeys[rec.Key()]; !ok {
			friendOnly = append(friendOnly, rec)
		}
	}

	return Result{
		Common:            common,
		UserOnly:          userOnly,
		FriendOnly:        friendOnly,
		SimilarityPercent: similarity(user, friend, len(common), userKeys, friendKeys),
		UserTotal:         len(user),
		FriendTotal:       len(friend),
		CommonCount:       len(common),
	}
}

// similarity is intersection-over-union of the two collections'
// identity keys as an integer percentage. Either side empty scores 0.
func similarity(user, friend []movies.Record, commonCount int, userKeys, friendKeys map[string]struct{}) int {
	if len(user) == 0 || len(friend) == 0 {
		return 0
	}

	distinct := len(userKeys)
	for key := range friendKeys {
		if _, ok := userKeys[key]; !ok {
			distinct++
		}
	}
	if distinct == 0 {
		return 0
	}

	return int(math.Round(float64(commonCount) / float64(distinct) * 100))
}
