package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wrfweb/taskmonitor/internal/infrastructure/notify"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <task-id>",
		Short: "Ask the task service to start a pending task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newTaskClient(opts.cfg, opts.log, nil)

			payload, err := client.RunTask(cmd.Context(), args[0])
			if err != nil {
				opts.log.Errorw("task_run_failed", "task_id", args[0], "error", err)
				notify.NewConsole(cmd.ErrOrStderr()).Alert("Failed to start task: " + err.Error())
				return &alertedError{err: err}
			}
			opts.log.Infow("task_started", "task_id", args[0], "status", payload.Status)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
}
