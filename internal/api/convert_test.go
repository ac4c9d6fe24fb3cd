package api

import (
	"testing"
	"time"

	"reelmate/internal/compare"
	"reelmate/internal/importer"
	"reelmate/internal/movies"
	"reelmate/internal/store"
)

func TestFromUserSummaryFormatsTimestamp(t *testing.T) {
	updated := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	dto := FromUserSummary(store.UserSummary{
		UserID:      "ana",
		DisplayName: "Ana",
		MovieCount:  3,
		UpdatedAt:   updated,
	})
	if dto.UpdatedAt != "2026-03-14T09:26:53.000Z" {
		t.Fatalf("UpdatedAt = %q", dto.UpdatedAt)
	}
	if dto.MovieCount != 3 {
		t.Fatalf("MovieCount = %d", dto.MovieCount)
	}
}

func TestFromUserSummaryZeroTimeOmitted(t *testing.T) {
	dto := FromUserSummary(store.UserSummary{UserID: "ana"})
	if dto.UpdatedAt != "" {
		t.Fatalf("expected empty UpdatedAt, got %q", dto.UpdatedAt)
	}
}

func TestFromImportSummary(t *testing.T) {
	dto := FromImportSummary(importer.Summary{
		BatchID:   "batch-1",
		Total:     10,
		Matched:   8,
		Unmatched: 2,
		Elapsed:   1500 * time.Millisecond,
	})
	if dto.ElapsedMillis != 1500 {
		t.Fatalf("ElapsedMillis = %d", dto.ElapsedMillis)
	}
	if dto.Total != 10 || dto.Matched != 8 || dto.Unmatched != 2 {
		t.Fatalf("counts = %+v", dto)
	}
}

func TestFromCompareResult(t *testing.T) {
	result := compare.Result{
		Common:            []movies.Record{{Title: "Heat"}},
		UserOnly:          []movies.Record{},
		FriendOnly:        []movies.Record{{Title: "Up"}},
		SimilarityPercent: 50,
		UserTotal:         1,
		FriendTotal:       2,
		CommonCount:       1,
	}
	dto := FromCompareResult("ana", "ben", result)
	if dto.UserID != "ana" || dto.FriendID != "ben" {
		t.Fatalf("identifiers = %q, %q", dto.UserID, dto.FriendID)
	}
	if dto.SimilarityPercent != 50 || len(dto.FriendOnly) != 1 {
		t.Fatalf("payload = %+v", dto)
	}
}
