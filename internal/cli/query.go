package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

func newQueryCmd(cacheTTL *time.Duration, noCache *bool) *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "query <tool>",
		Short: "Execute a single tool and print its JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			eng, err := buildEngine(*cacheTTL, *noCache)
			if err != nil {
				return err
			}

			args := map[string]any{}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
					return fmt.Errorf("%s: %w", config.ErrArgsDecode, err)
				}
			}

			result, err := eng.registry.Execute(posArgs[0], args)
			if err != nil {
				// Print the same envelope the server would return, then
				// report failure through the exit code.
				envelope, _ := json.MarshalIndent(errs.Envelope(err), "", "  ")
				fmt.Fprintln(cmd.ErrOrStderr(), string(envelope))
				return err
			}

			pretty, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
			return nil
		},
	}

	cmd.Flags().StringVar(&rawArgs, config.FlagArgs, "", config.FlagDescArgs)
	return cmd
}
