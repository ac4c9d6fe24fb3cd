package compare_test

import (
	"reflect"
	"testing"

	"reelmate/internal/compare"
	"reelmate/internal/movies"
)

func intPtr(v int) *int { return &v }

func rec(title string, year int) movies.Record {
	return movies.Record{Title: title, Year: intPtr(year)}
}

func TestCompareOverlappingCollections(t *testing.T) {
	user := []movies.Record{rec("Inception", 2010)}
	friend := []movies.Record{rec("Inception", 2010), rec("Up", 2009)}

	result := compare.Compare(user, friend)

	if len(result.Common) != 1 || result.Common[0].Title != "Inception" {
		t.Fatalf("Common = %+v", result.Common)
	}
	if len(result.UserOnly) != 0 {
		t.Fatalf("UserOnly = %+v", result.UserOnly)
	}
	if len(result.FriendOnly) != 1 || result.FriendOnly[0].Title != "Up" {
		t.Fatalf("FriendOnly = %+v", result.FriendOnly)
	}
	if result.SimilarityPercent != 50 {
		t.Fatalf("SimilarityPercent = %d, want 50", result.SimilarityPercent)
	}
	if result.UserTotal != 1 || result.FriendTotal != 2 || result.CommonCount != 1 {
		t.Fatalf("totals = %d/%d/%d", result.UserTotal, result.FriendTotal, result.CommonCount)
	}
}

func TestCompareCaseInsensitiveTitles(t *testing.T) {
	result := compare.Compare(
		[]movies.Record{rec("the matrix", 1999)},
		[]movies.Record{rec("The Matrix", 1999)},
	)
	if result.CommonCount != 1 {
		t.Fatalf("expected case-insensitive match, got %+v", result)
	}
}

func TestCompareEmptyInputsScoreZero(t *testing.T) {
	something := []movies.Record{rec("Heat", 1995)}
	if got := compare.Compare(nil, something).SimilarityPercent; got != 0 {
		t.Fatalf("similarity(nil, x) = %d", got)
	}
	if got := compare.Compare(something, nil).SimilarityPercent; got != 0 {
		t.Fatalf("similarity(x, nil) = %d", got)
	}
	if got := compare.Compare(nil, nil).SimilarityPercent; got != 0 {
		t.Fatalf("similarity(nil, nil) = %d", got)
	}
}

func TestCompareSimilaritySymmetric(t *testing.T) {
	a := []movies.Record{rec("Heat", 1995), rec("Up", 2009), rec("Inception", 2010)}
	b := []movies.Record{rec("Up", 2009), rec("Alien", 1979)}

	ab := compare.Compare(a, b)
	ba := compare.Compare(b, a)
	if ab.SimilarityPercent != ba.SimilarityPercent {
		t.Fatalf("similarity asymmetric: %d vs %d", ab.SimilarityPercent, ba.SimilarityPercent)
	}
	// Roles swap: a's exclusives become friend-side exclusives.
	if !reflect.DeepEqual(ab.UserOnly, ba.FriendOnly) {
		t.Fatalf("UserOnly/FriendOnly should swap: %+v vs %+v", ab.UserOnly, ba.FriendOnly)
	}
}

func TestCompareReconstructsUserList(t *testing.T) {
	user := []movies.Record{rec("Heat", 1995), rec("Up", 2009), rec("Heat", 1995), rec("Alien", 1979)}
	friend := []movies.Record{rec("Heat", 1995)}

	result := compare.Compare(user, friend)
	if len(result.Common)+len(result.UserOnly) != len(user) {
		t.Fatalf("common+userOnly = %d, want %d", len(result.Common)+len(result.UserOnly), len(user))
	}

	// Interleave check: walking user and classifying each element must
	// reproduce Common and UserOnly in order, multiplicity included.
	var rebuiltCommon, rebuiltOnly []movies.Record
	friendKeys := movies.KeySet(friend)
	for _, r := range user {
		if _, ok := friendKeys[r.Key()]; ok {
			rebuiltCommon = append(rebuiltCommon, r)
		} else {
			rebuiltOnly = append(rebuiltOnly, r)
		}
	}
	if !reflect.DeepEqual(rebuiltCommon, result.Common) {
		t.Fatalf("Common order/multiplicity mismatch: %+v", result.Common)
	}
	if !reflect.DeepEqual(rebuiltOnly, result.UserOnly) {
		t.Fatalf("UserOnly order/multiplicity mismatch: %+v", result.UserOnly)
	}
}

func TestCompareDuplicatesNotCollapsed(t *testing.T) {
	user := []movies.Record{rec("Heat", 1995), rec("Heat", 1995)}
	friend := []movies.Record{rec("Heat", 1995)}

	result := compare.Compare(user, friend)
	if len(result.Common) != 2 {
		t.Fatalf("expected both duplicate entries in Common, got %d", len(result.Common))
	}
	// Denominator counts distinct keys, so the score can exceed 100 by
	// construction when one side holds duplicates of a shared film.
	if result.CommonCount != 2 {
		t.Fatalf("CommonCount = %d", result.CommonCount)
	}
}

func TestCompareLengthBound(t *testing.T) {
	a := []movies.Record{rec("Heat", 1995), rec("Up", 2009)}
	b := []movies.Record{rec("Up", 2009)}
	result := compare.Compare(a, b)
	if len(result.Common) > len(a) || len(result.Common) > len(b)+1 {
		t.Fatalf("Common too large: %d", len(result.Common))
	}
}

func TestCompareDeterministic(t *testing.T) {
	a := []movies.Record{rec("Heat", 1995), rec("Up", 2009), rec("Alien", 1979)}
	b := []movies.Record{rec("Up", 2009), rec("Heat", 1995)}

	first := compare.Compare(a, b)
	second := compare.Compare(a, b)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between runs:\n%+v\n%+v", first, second)
	}
}
