package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/qolzam/telar-blog/internal/utils"
	"github.com/qolzam/telar-blog/posts/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	maxTitleLength       = 300
	maxDescriptionLength = 2000
	maxContentUnits      = 500
)

// NormalizeListQuery fills defaults and rejects unknown sort orders
func NormalizeListQuery(q *models.ListPostsQuery) error {
	if q.Sort == "" {
		q.Sort = models.SortLatest
	}
	if q.Sort != models.SortLatest && q.Sort != models.SortTrending {
		return fmt.Errorf("sort must be one of: %s, %s", models.SortLatest, models.SortTrending)
	}
	limit, err := NormalizeLimit(q.Limit)
	if err != nil {
		return err
	}
	q.Limit = limit
	return nil
}

// NormalizeLimit applies the default list size and rejects out-of-range values
func NormalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return models.DefaultListLimit, nil
	}
	if limit < 0 || limit > models.MaxListLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", models.MaxListLimit)
	}
	return limit, nil
}

// ValidateSlug checks a URL key
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug must be lowercase letters and digits separated by single hyphens")
	}
	return nil
}

// ValidateName checks a category or label name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	return nil
}

// ValidatePost validates a post before it is stored
func ValidatePost(post *models.Post) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}

	if err := utils.ValidateDocumentID(post.ID); err != nil {
		return fmt.Errorf("id: %w", err)
	}

	if strings.TrimSpace(post.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(post.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if len(post.Description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}

	if err := ValidateSlug(post.Slug); err != nil {
		return err
	}

	if len(post.ContentUnits) > maxContentUnits {
		return fmt.Errorf("a post may have at most %d content units", maxContentUnits)
	}
	for i, unit := range post.ContentUnits {
		if !unit.Type.IsValid() {
			return fmt.Errorf("contentUnits[%d]: unknown type %q", i, unit.Type)
		}
		if strings.TrimSpace(unit.Content) == "" {
			return fmt.Errorf("contentUnits[%d]: content is required", i)
		}
	}

	for _, name := range append(append([]string{}, post.Categories...), post.Labels...) {
		if err := ValidateName(name); err != nil {
			return err
		}
	}

	return nil
}
