// Package repository declares the errors shared by store implementations.
package repository

import "errors"

var (
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrChangeNotFound     = errors.New("change not found")
)
