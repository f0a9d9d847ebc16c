package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/conductor/internal/executors/queue"
	"github.com/dukaforge/conductor/internal/executors/queuecluster"
	"github.com/dukaforge/conductor/internal/paths"
	"github.com/dukaforge/conductor/pkg/loader"
	"github.com/dukaforge/conductor/pkg/types"
)

func newRunCmd() *cobra.Command {
	var (
		executorName string
		queueName    string
		taskName     string
	)

	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run one command on an execution backend",
		Long: "Submit a single task to an executor and wait for it to finish.\n" +
			"Without --executor, the configured default backend is used.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := initSettings()
			if err != nil {
				return err
			}

			var executor types.Executor
			if executorName != "" {
				executor, err = loader.Load(executorName)
			} else {
				executor, err = loader.Default()
			}
			if err != nil {
				return err
			}
			if err := configureDataDir(executor, settings.GetString(cfgKeyDataDir)); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := executor.Start(ctx); err != nil {
				return fmt.Errorf("start executor: %w", err)
			}
			defer executor.Stop(ctx)

			task := types.NewTask(taskName, queueName, args)
			if err := executor.Submit(ctx, task); err != nil {
				return fmt.Errorf("submit task: %w", err)
			}
			if err := executor.Drain(ctx); err != nil {
				return fmt.Errorf("wait for task: %w", err)
			}

			if reporter, ok := executor.(types.StateReporter); ok {
				state, _ := reporter.TaskState(task.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "task %s: %s\n", task.ID, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&executorName, "executor", "", "executor name (default: configured backend)")
	cmd.Flags().StringVar(&queueName, "queue", "", "task queue tag")
	cmd.Flags().StringVar(&taskName, "name", "cli-task", "task name")
	return cmd
}

// configureDataDir points any queue executor (standalone or inside the
// hybrid) at the resolved data directory before Start.
func configureDataDir(executor types.Executor, configValue string) error {
	if hybrid, ok := executor.(*queuecluster.QueueClusterExecutor); ok {
		executor = hybrid.QueueExecutor()
	}
	qe, ok := executor.(*queue.QueueExecutor)
	if !ok {
		return nil
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, configValue)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	qe.DataDir = dataDir
	return nil
}
