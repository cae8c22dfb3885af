package validation

import (
	"strings"
	"testing"

	"github.com/qolzam/telar-blog/posts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() *models.Post {
	return &models.Post{
		ID:    "p1",
		Title: "Hello",
		Slug:  "hello",
		ContentUnits: models.ContentUnits{
			{Type: models.ContentUnitText, Content: "Body"},
			{Type: models.ContentUnitVideo, Title: "Demo", Content: "https://www.youtube.com/watch?v=abc"},
		},
		Categories: []string{"Go"},
		Labels:     []string{"tutorial"},
	}
}

func TestNormalizeListQuery(t *testing.T) {
	q := models.ListPostsQuery{}
	require.NoError(t, NormalizeListQuery(&q))
	assert.Equal(t, models.SortLatest, q.Sort)
	assert.Equal(t, models.DefaultListLimit, q.Limit)

	q = models.ListPostsQuery{Sort: models.SortTrending, Limit: 50}
	require.NoError(t, NormalizeListQuery(&q))
	assert.Equal(t, 50, q.Limit)

	assert.Error(t, NormalizeListQuery(&models.ListPostsQuery{Sort: "oldest"}))
	assert.Error(t, NormalizeListQuery(&models.ListPostsQuery{Limit: 51}))
	assert.Error(t, NormalizeListQuery(&models.ListPostsQuery{Limit: -1}))
}

func TestValidatePost(t *testing.T) {
	require.NoError(t, ValidatePost(validPost()))

	cases := map[string]func(p *models.Post){
		"empty id":        func(p *models.Post) { p.ID = "" },
		"id with slash":   func(p *models.Post) { p.ID = "a/b" },
		"missing title":   func(p *models.Post) { p.Title = "  " },
		"long title":      func(p *models.Post) { p.Title = strings.Repeat("t", 301) },
		"bad slug":        func(p *models.Post) { p.Slug = "Hello World" },
		"unknown unit":    func(p *models.Post) { p.ContentUnits[0].Type = "audio" },
		"empty unit":      func(p *models.Post) { p.ContentUnits[1].Content = "" },
		"blank category":  func(p *models.Post) { p.Categories = []string{" "} },
		"long label name": func(p *models.Post) { p.Labels = []string{strings.Repeat("l", 101)} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validPost()
			mutate(p)
			assert.Error(t, ValidatePost(p))
		})
	}

	assert.Error(t, ValidatePost(nil))
}
