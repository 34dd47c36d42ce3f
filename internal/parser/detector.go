package parser

import (
	"bytes"
	"path/filepath"
	"strings"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeTCX     FileType = "tcx"
	FileTypeGPX     FileType = "gpx"
	FileTypeUnknown FileType = "unknown"
)

// sniffLen bounds how much of an XML prolog is searched for the root element.
const sniffLen = 1024

// DetectFileType identifies an activity file from its contents.
func DetectFileType(data []byte) FileType {
	// FIT header: size byte, protocol, profile (2), data size (4), ".FIT"
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	head := bytes.TrimLeft(data[:min(len(data), sniffLen)], "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return FileTypeUnknown
	}
	switch {
	case bytes.Contains(head, []byte("TrainingCenterDatabase")):
		return FileTypeTCX
	case bytes.Contains(head, []byte("<gpx")), bytes.Contains(head, []byte("topografix.com/GPX")):
		return FileTypeGPX
	}
	return FileTypeUnknown
}

// FileTypeFromName maps a file extension to a file type.
func FileTypeFromName(name string) FileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".fit":
		return FileTypeFIT
	case ".tcx":
		return FileTypeTCX
	case ".gpx":
		return FileTypeGPX
	}
	return FileTypeUnknown
}
