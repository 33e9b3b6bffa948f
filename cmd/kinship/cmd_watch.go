package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
)

func newWatchCmd() *cobra.Command {
	var since uint64
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live changes from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return apiClient.Watch(ctx, since, func(m client.FeedMessage) error {
				if flagFmt == "quiet" {
					fmt.Println(m.ID)
					return nil
				}
				if flagFmt == "table" {
					fmt.Printf("%d  %s  %s  %s\n", m.ID, m.Time.Local().Format("15:04:05"), m.Type, truncate(string(m.Data), 80))
					return nil
				}
				return formatJSON(m)
			})
		},
	}
	cmd.Flags().Uint64Var(&since, "since", 0, "Replay buffered events after this event id")
	return cmd
}
