// Package parser reads FIT, TCX and GPX activity files into activity records.
package parser

import (
	"errors"
	"fmt"
	"time"

	"github.com/sstent/garmin-wrapped/internal/models"
)

var (
	ErrUnsupportedFile = errors.New("unsupported activity file")
	ErrNoActivityData  = errors.New("no activity data found")
)

// Parser decodes one activity file.
type Parser interface {
	Parse(data []byte) (models.ActivityRecord, error)
}

func NewParser(fileType FileType) (Parser, error) {
	switch fileType {
	case FileTypeFIT:
		return &FITParser{}, nil
	case FileTypeTCX:
		return &TCXParser{}, nil
	case FileTypeGPX:
		return &GPXParser{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, fileType)
}

// ParseData detects the file type of data and parses it. When the contents
// are not recognised, the type implied by name is tried instead.
func ParseData(name string, data []byte) (models.ActivityRecord, error) {
	fileType := DetectFileType(data)
	if fileType == FileTypeUnknown {
		fileType = FileTypeFromName(name)
	}
	p, err := NewParser(fileType)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	rec, err := p.Parse(data)
	if err != nil {
		return models.ActivityRecord{}, fmt.Errorf("parse %s: %w", fileType, err)
	}
	return rec, nil
}

// newRecord fills the fields every parser derives the same way. Files carry
// no upstream id, so the start second keys the record.
func newRecord(start time.Time) models.ActivityRecord {
	start = start.UTC()
	return models.ActivityRecord{
		ID:        start.Unix(),
		StartDate: start.Format(time.RFC3339),
	}
}
