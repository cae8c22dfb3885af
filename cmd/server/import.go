package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/platform"
	"github.com/qolzam/telar-blog/internal/utils"
	postsErrors "github.com/qolzam/telar-blog/posts/errors"
	"github.com/qolzam/telar-blog/posts/models"
	postsRepository "github.com/qolzam/telar-blog/posts/repository"
	postsServices "github.com/qolzam/telar-blog/posts/services"
	viewsRepository "github.com/qolzam/telar-blog/views/repository"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var importFiles []string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load posts from JSON files",
	Long: `Each file holds a JSON array of posts. Posts without an id get a generated one.
Posts that already exist are skipped.`,
	Example: "  blog import --file posts.json --file drafts.json",
	RunE:    runImport,
}

func init() {
	importCmd.Flags().StringArrayVarP(&importFiles, "file", "f", nil, "JSON file with an array of posts (repeatable)")
	_ = importCmd.MarkFlagRequired("file")
}

// importSummary counts what an import did
type importSummary struct {
	Created int
	Skipped int
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	base, err := platform.NewBaseService(ctx, cfg, platform.DefaultServiceOptions())
	if err != nil {
		return err
	}
	defer base.Close()

	counter, err := base.ViewCounter(ctx)
	if err != nil {
		return err
	}
	registrar, _ := counter.(viewsRepository.PostRegistrar)
	svc := postsServices.NewPostService(postsRepository.NewSQLRepository(base.SQL), base.Cache)

	contents, err := utils.GetFilesContents(importFiles...)
	if err != nil {
		return fmt.Errorf("failed to read import files: %w", err)
	}

	var total importSummary
	for _, file := range importFiles {
		summary, err := importPosts(ctx, svc, registrar, contents[file])
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		log.Info("%s: %d created, %d skipped", file, summary.Created, summary.Skipped)
		total.Created += summary.Created
		total.Skipped += summary.Skipped
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts (%d skipped)\n", total.Created, total.Skipped)
	return nil
}

// importPosts creates every post in data. registrar may be nil.
func importPosts(ctx context.Context, svc postsServices.PostService, registrar viewsRepository.PostRegistrar, data []byte) (importSummary, error) {
	var summary importSummary

	var items []*models.Post
	if err := json.Unmarshal(data, &items); err != nil {
		return summary, fmt.Errorf("invalid posts file: %w", err)
	}

	for i, item := range items {
		if item == nil {
			continue
		}
		if strings.TrimSpace(item.ID) == "" {
			id, err := uuid.NewV4()
			if err != nil {
				return summary, fmt.Errorf("failed to generate post id: %w", err)
			}
			item.ID = id.String()
		}
		views := item.Views

		created, err := svc.CreatePost(ctx, item)
		if errors.Is(err, postsErrors.ErrPostAlreadyExists) {
			log.Warn("post %s already exists, skipping", item.ID)
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("post #%d (%s): %w", i, item.ID, err)
		}

		if registrar != nil {
			if err := registrar.RegisterPost(ctx, created.ID, views); err != nil {
				return summary, fmt.Errorf("failed to register views for %s: %w", created.ID, err)
			}
		}
		summary.Created++
	}

	return summary, nil
}
