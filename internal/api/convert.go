package api

import (
	"time"

	"reelmate/internal/importer"
	"reelmate/internal/store"
)

// FromUserSummary converts a stored user summary to its API representation.
func FromUserSummary(summary store.UserSummary) User {
	dto := User{
		UserID:      summary.UserID,
		DisplayName: summary.DisplayName,
		Email:       summary.Email,
		PhotoURL:    summary.PhotoURL,
		MovieCount:  summary.MovieCount,
	}
	if !summary.UpdatedAt.IsZero() {
		dto.UpdatedAt = summary.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromUserSummaries converts a slice of stored user summaries.
func FromUserSummaries(summaries []store.UserSummary) UserListResponse {
	users := make([]User, 0, len(summaries))
	for _, summary := range summaries {
		users = append(users, FromUserSummary(summary))
	}
	return UserListResponse{Users: users}
}

// FromImportSummary converts an import outcome to its API representation.
func FromImportSummary(summary importer.Summary) ImportResponse {
	return ImportResponse{
		BatchID:       summary.BatchID,
		Total:         summary.Total,
		Matched:       summary.Matched,
		Unmatched:     summary.Unmatched,
		ElapsedMillis: summary.Elapsed.Milliseconds(),
	}
}

// Profile converts a profile request to the storage representation.
func (r ProfileRequest) Profile() store.Profile {
	return store.Profile{
		DisplayName: r.DisplayName,
		Email:       r.Email,
		PhotoURL:    r.PhotoURL,
	}
}

// FormatTime renders a timestamp the way API payloads expect.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
