package worldcup

import (
	"context"
	"errors"
	"io"
)

// File names inside one year directory.
const (
	FileCup       = "cup.txt"
	FileCupFinals = "cup_finals.txt"
	FileDocument  = "worldcup.json"
	FileGroups    = "worldcup.groups.json"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidSchema = errors.New("invalid schema")
)

// YearInventory reports which files exist for one year.
type YearInventory struct {
	Year        int  `json:"year"`
	HasCup      bool `json:"has_cup"`
	HasFinals   bool `json:"has_finals"`
	HasDocument bool `json:"has_document"`
	HasGroups   bool `json:"has_groups"`
}

// Repository describes dataset storage needs from use cases.
type Repository interface {
	// Years lists years with a converted worldcup.json, ascending.
	Years(ctx context.Context) ([]int, error)
	// SourceYears lists years with a cup.txt, ascending.
	SourceYears(ctx context.Context) ([]int, error)
	Inventory(ctx context.Context) ([]YearInventory, error)
	OpenSource(ctx context.Context, year int, file string) (io.ReadCloser, error)
	ReadRaw(ctx context.Context, year int, file string) ([]byte, error)
	ReadDocument(ctx context.Context, year int) (Document, error)
	ReadGroups(ctx context.Context, year int) (GroupsDocument, error)
	WriteDocument(ctx context.Context, year int, doc Document) error
	WriteGroups(ctx context.Context, year int, doc GroupsDocument) error
}
