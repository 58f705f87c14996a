package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wrfweb/taskmonitor/internal/infrastructure/notify"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <task-id>",
		Short: "Fetch the current status of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newTaskClient(opts.cfg, opts.log, nil)

			payload, err := client.CheckStatus(cmd.Context(), args[0])
			if err != nil {
				opts.log.Errorw("task_check_failed", "task_id", args[0], "error", err)
				notify.NewConsole(cmd.ErrOrStderr()).Alert("Failed to check task status: " + err.Error())
				return &alertedError{err: err}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
}
