package validation

import (
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
)

// ValidatePostID rejects a missing identifier. It performs no I/O.
// Any other string is passed to the store, where an id that names no post fails as Internal.
func ValidatePostID(postID string) error {
	if postID == "" {
		return viewsErrors.InvalidArgument(viewsErrors.MsgMissingPostID)
	}
	return nil
}
