package models

import "time"

// Paper is a titled, append-only sequence of file versions inside a repo.
// CurrentVersion always equals the highest version number present.
type Paper struct {
	ID             string    `json:"id"`
	RepoID         string    `json:"repoId"`
	OwnerEmail     string    `json:"ownerEmail"`
	Title          string    `json:"title"`
	CurrentVersion int       `json:"currentVersion"`
	Versions       []Version `json:"versions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Version is one immutable uploaded file. Version numbers are 1-based and
// increase by exactly one per append within a paper.
type Version struct {
	VersionNumber int       `json:"versionNumber"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	StorageKey    string    `json:"storageKey"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// PaperSummary is the public per-paper listing view, showing only the
// current version's metadata.
type PaperSummary struct {
	PaperID        string    `json:"paperId"`
	Title          string    `json:"title"`
	OwnerEmail     string    `json:"ownerEmail"`
	CurrentVersion int       `json:"currentVersion"`
	UploadedAt     time.Time `json:"uploadedAt"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
}

// ActivityEvent is one version upload projected into a repo's activity feed.
// ActionType is "uploaded" for version 1 and "updated" for later versions.
type ActivityEvent struct {
	PaperID       string    `json:"paperId"`
	PaperTitle    string    `json:"paperTitle"`
	OwnerEmail    string    `json:"ownerEmail"`
	VersionNumber int       `json:"versionNumber"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ActionType    string    `json:"actionType"`
}
