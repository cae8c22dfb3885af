// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned when the post to count does not exist.
// A missing record is never created by an increment.
var ErrRecordNotFound = errors.New("post record not found")

// ViewCounter is the store's atomic "increment views by one" on a post record
type ViewCounter interface {
	// IncrementViews raises the views field of postID by exactly 1 in a single atomic step
	IncrementViews(ctx context.Context, postID string) error
}

// PostRegistrar is implemented by counters that keep their own copy of the post key set.
// Posts must be registered before they can be counted.
type PostRegistrar interface {
	RegisterPost(ctx context.Context, postID string, views int64) error
}
