package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dotkit/internal/syncer"
)

// sync flags
var (
	syncAppend    bool
	syncOverwrite bool
	syncForce     bool
	syncDryRun    bool
	syncWatch     bool
	syncDebugHome string
)

// syncCmd copies the configuration tree into the target root.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize configuration files to the target directory",
	Long: `Sync walks the source tree, plans which files drifted out of sync,
and writes them into the target directory (the home directory by
default).

Every write is staged first and committed only when the whole pass
staged cleanly, so a failed run leaves all targets untouched. Each
existing or new target asks for confirmation unless --force is given;
outside a terminal, prompts decline. Applied files are recorded in the
sync state file so the next run can skip them.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncAppend, "append", false, "Set default sync policy to append")
	syncCmd.Flags().BoolVar(&syncOverwrite, "overwrite", false, "Set default sync policy to overwrite (default behavior)")
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "Skip confirmation prompts")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan only; write nothing")
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "Keep running and re-sync when the source tree changes")
	syncCmd.Flags().StringVar(&syncDebugHome, "debug-home", "", "Sync into this directory instead of the target")
	syncCmd.MarkFlagsMutuallyExclusive("append", "overwrite")
}

func newSyncer() (*syncer.Syncer, error) {
	paths := cfg.Paths()
	syncCfg := cfg.Sync()

	name := syncCfg.Policy
	switch {
	case syncAppend:
		name = string(syncer.PolicyAppend)
	case syncOverwrite:
		name = string(syncer.PolicyOverwrite)
	}
	defaultPolicy, err := syncer.ParsePolicy(name)
	if err != nil {
		return nil, err
	}

	policies := make(map[string]syncer.Policy, len(syncCfg.Policies))
	for rel, pname := range syncCfg.Policies {
		p, err := syncer.ParsePolicy(pname)
		if err != nil {
			return nil, fmt.Errorf("policy for %s: %w", rel, err)
		}
		policies[rel] = p
	}

	target := paths.Target
	if syncDebugHome != "" {
		target = syncDebugHome
	}

	return syncer.New(paths.Source, target, paths.State,
		syncer.WithDefaultPolicy(defaultPolicy),
		syncer.WithPolicies(policies),
		syncer.WithExcludes(syncCfg.Exclude...),
		syncer.WithForce(syncForce),
		syncer.WithDryRun(syncDryRun),
		syncer.WithLogger(logger),
	)
}

func runSync(cmd *cobra.Command, args []string) error {
	s, err := newSyncer()
	if err != nil {
		return err
	}

	fmt.Println(dimStyle.Render("source: ") + pathStyle.Render(s.Source()))
	fmt.Println(dimStyle.Render("target: ") + pathStyle.Render(s.Target()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Let ctrl-C end a watch or abort a stuck prompt cleanly.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	printResult(result)

	if !syncWatch {
		return nil
	}

	err = s.Watch(ctx, syncer.DefaultWatchDebounce, func(res *syncer.Result, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, warnStyle.Render("sync pass failed:"), err)
			return
		}
		printResult(res)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
