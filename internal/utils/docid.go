package utils

import (
	"errors"
	"strings"
)

// MaxDocumentIDBytes is the longest accepted document identifier
const MaxDocumentIDBytes = 1500

// Document identifier errors
var (
	ErrDocumentIDEmpty    = errors.New("document id is empty")
	ErrDocumentIDTooLong  = errors.New("document id is too long")
	ErrDocumentIDSlash    = errors.New("document id must not contain '/'")
	ErrDocumentIDReserved = errors.New("document id must not be '.' or '..'")
)

// ValidateDocumentID checks the identifier rules shared by every stored document
func ValidateDocumentID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return ErrDocumentIDEmpty
	case len(id) > MaxDocumentIDBytes:
		return ErrDocumentIDTooLong
	case strings.Contains(id, "/"):
		return ErrDocumentIDSlash
	case id == "." || id == "..":
		return ErrDocumentIDReserved
	}
	return nil
}
