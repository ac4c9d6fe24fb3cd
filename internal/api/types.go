package api

import (
	"reelmate/internal/compare"
	"reelmate/internal/movies"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// StatusResponse aggregates server runtime information for API consumers.
type StatusResponse struct {
	Running   bool   `json:"running"`
	PID       int    `json:"pid"`
	Version   string `json:"version"`
	StorePath string `json:"storePath"`
	UserCount int    `json:"userCount"`
	StartedAt string `json:"startedAt,omitempty"`
}

// User describes a stored user in a transport-friendly format.
type User struct {
	UserID      string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	MovieCount  int    `json:"movieCount"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// UserListResponse wraps the stored users for API responses.
type UserListResponse struct {
	Users []User `json:"users"`
}

// ProfileRequest carries the mutable fields of a user profile.
type ProfileRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// MoviesResponse wraps a stored collection for API responses.
type MoviesResponse struct {
	UserID string          `json:"uid"`
	Count  int             `json:"count"`
	Movies []movies.Record `json:"movies"`
}

// ImportResponse reports the outcome of a CSV import.
type ImportResponse struct {
	BatchID       string `json:"batchId"`
	Total         int    `json:"total"`
	Matched       int    `json:"matched"`
	Unmatched     int    `json:"unmatched"`
	ElapsedMillis int64  `json:"elapsedMillis"`
}

// CompareResponse carries a full comparison between two collections.
type CompareResponse struct {
	UserID            string          `json:"user"`
	FriendID          string          `json:"friend"`
	Common            []movies.Record `json:"common"`
	UserOnly          []movies.Record `json:"userOnly"`
	FriendOnly        []movies.Record `json:"friendOnly"`
	SimilarityPercent int             `json:"similarityPercent"`
	UserTotal         int             `json:"userTotal"`
	FriendTotal       int             `json:"friendTotal"`
	CommonCount       int             `json:"commonCount"`
}

// ErrorResponse is the uniform error payload for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromCompareResult converts a comparison result to its API representation.
func FromCompareResult(userID, friendID string, result compare.Result) CompareResponse {
	return CompareResponse{
		UserID:            userID,
		FriendID:          friendID,
		Common:            result.Common,
		UserOnly:          result.UserOnly,
		FriendOnly:        result.FriendOnly,
		SimilarityPercent: result.SimilarityPercent,
		UserTotal:         result.UserTotal,
		FriendTotal:       result.FriendTotal,
		CommonCount:       result.CommonCount,
	}
}
