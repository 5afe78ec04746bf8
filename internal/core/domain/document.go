package domain

import "strings"

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
)

// SupportedFileTypes lists the accepted upload suffixes in display order.
var SupportedFileTypes = []FileType{FileTypePDF, FileTypeDOCX, FileTypeTXT}

// FileTypeFromName returns the lower-cased suffix after the last dot of filename.
// A name without a dot has no suffix and is rejected.
func FileTypeFromName(filename string) (FileType, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "", &UnsupportedFormatError{Filename: filename}
	}
	ext := FileType(strings.ToLower(filename[idx+1:]))
	for _, supported := range SupportedFileTypes {
		if ext == supported {
			return ext, nil
		}
	}
	return "", &UnsupportedFormatError{Filename: filename, Extension: string(ext)}
}

// UploadedDocument is the raw payload of one classification request.
type UploadedDocument struct {
	Filename string
	Type     FileType
	Body     []byte
}

// ExtractedText is the concatenated text of every extractable unit, in source order.
type ExtractedText struct {
	Text     string   `json:"text"`
	Type     FileType `json:"file_type"`
	Units    int      `json:"units"`
	Warnings []string `json:"warnings,omitempty"`
}
