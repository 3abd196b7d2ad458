package cli

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/feed"
	"github.com/tartampluch/go-chinacal/internal/server"
)

func newServeCmd(cacheTTL *time.Duration, noCache *bool) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP query server and holiday feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validatePort(port); err != nil {
				return err
			}

			eng, err := buildEngine(*cacheTTL, *noCache)
			if err != nil {
				return err
			}

			srv := server.NewQueryServer(port, eng.registry, eng.cache)

			generator := &feed.Generator{
				Holidays: eng.holidays,
				Store:    eng.store,
				Clock:    eng.clock,
			}
			ics, err := generator.Build()
			if err != nil {
				return err
			}
			srv.UpdateFeed(ics)

			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

func validatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < config.MinPort || n > config.MaxPort {
		return errors.New(config.ErrPortRange)
	}
	return nil
}
