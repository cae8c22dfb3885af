package main

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/platform"
	sharedInterfaces "github.com/qolzam/telar-blog/shared/interfaces"
	"github.com/qolzam/telar-blog/views"
	viewsServices "github.com/qolzam/telar-blog/views/services"
	"github.com/spf13/cobra"
)

var viewsGrpcAddr string

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "View counter operations",
}

var viewsIncrementCmd = &cobra.Command{
	Use:   "increment [postId]",
	Short: "Record one view of a post",
	Long: `Records one view directly against the configured store, or through a
running server when --grpc is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runViewsIncrement,
}

func init() {
	viewsIncrementCmd.Flags().StringVar(&viewsGrpcAddr, "grpc", "", "gRPC address of a running server, e.g. localhost:9090")
	viewsCmd.AddCommand(viewsIncrementCmd)
}

func runViewsIncrement(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if id, err := uuid.NewV4(); err == nil {
		ctx = log.WithRequestID(ctx, id.String())
	}

	var incrementer sharedInterfaces.PostViewIncrementer
	if viewsGrpcAddr != "" {
		remote, closeConn, err := views.NewGrpcIncrementer(viewsGrpcAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", viewsGrpcAddr, err)
		}
		defer closeConn()
		incrementer = remote
	} else {
		base, err := platform.NewBaseService(ctx, cfg, platform.ServiceOptions{})
		if err != nil {
			return err
		}
		defer base.Close()

		counter, err := base.ViewCounter(ctx)
		if err != nil {
			return err
		}
		incrementer = views.NewDirectCallIncrementer(viewsServices.NewViewService(counter))
	}

	if err := incrementer.IncrementPostView(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recorded a view of %s\n", args[0])
	return nil
}
