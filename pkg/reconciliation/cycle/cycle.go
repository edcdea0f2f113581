// Package cycle orchestrates one complete synchronization cycle: probe,
// scan, merge, reconcile, execute, persist (spec.md §2, §5).
package cycle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/foldersync/foldersync/pkg/configuration"
	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/reconciliation/core"
)

// Orchestrator runs repeated sync cycles against a fixed pair of roots and
// a persisted snapshot store.
type Orchestrator struct {
	config   *configuration.Configuration
	store    core.Store
	notifier core.Notifier
	logger   *logging.Logger
	filter   *core.IgnoreFilter
}

// New constructs an Orchestrator from a validated configuration.
func New(config *configuration.Configuration, store core.Store, notifier core.Notifier, logger *logging.Logger) *Orchestrator {
	if notifier == nil {
		notifier = core.DiscardNotifier{}
	}
	filter := core.NewIgnoreFilter(
		config.Ignore.Extensions,
		config.Ignore.FilenamesPrefix,
		config.Ignore.FilenamesExact,
		config.Ignore.Directories,
		config.Ignore.Patterns,
	)
	return &Orchestrator{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   logger,
		filter:   filter,
	}
}

// Report summarizes the outcome of one cycle.
type Report struct {
	Tolerance      float64
	ActionsPlanned int
	Results        []core.ExecutionResult
	Conflicts      []core.ConflictAlert
	Errors         []core.ErrorAlert
	Cancelled      bool
}

// RunOnce executes exactly one sync cycle, per spec.md §2's pipeline:
// probe -> scan(x2) -> merge -> reconcile -> execute -> persist.
func (o *Orchestrator) RunOnce(ctx context.Context) (*Report, error) {
	leftRoot, rightRoot := o.config.LeftRoot, o.config.RightRoot

	tolerance := core.ProbeTolerance(leftRoot, rightRoot, o.logger)

	var leftScan, rightScan map[string]core.ScanEntry
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		leftScan, err = core.Scan(leftRoot, o.filter, o.logger.Sublogger("scan.left"))
		if err != nil {
			return fmt.Errorf("unable to scan left root: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		rightScan, err = core.Scan(rightRoot, o.filter, o.logger.Sublogger("scan.right"))
		if err != nil {
			return fmt.Errorf("unable to scan right root: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	_ = groupCtx // scans don't currently accept a context; reserved for future cancellable I/O.

	current := core.Merge(leftScan, rightScan)

	previous, err := o.store.Load()
	if err != nil {
		return nil, fmt.Errorf("unable to load previous snapshot: %w", err)
	}

	collector := &core.CollectingNotifier{}
	reconcileConfig := o.reconcileConfig()
	actions := core.Reconcile(leftRoot, rightRoot, previous, current, reconcileConfig, tolerance, collector, o.logger)

	executor := core.NewExecutor(leftRoot, rightRoot, o.config.DryRun, collector, o.logger)
	results := executor.Execute(ctx, actions)

	report := &Report{
		Tolerance:      tolerance,
		ActionsPlanned: len(actions),
		Results:        results,
		Conflicts:      collector.Conflicts,
		Errors:         collector.Errors,
	}

	if ctx.Err() != nil {
		report.Cancelled = true
		o.logger.Warnf("cycle cancelled; leaving prior snapshot intact")
		return report, nil
	}

	if o.config.DryRun {
		o.logger.Infof("dry-run cycle complete: %d action(s) planned, snapshot not updated", len(actions))
		return report, nil
	}

	next, err := o.postExecutionSnapshot(leftRoot, rightRoot)
	if err != nil {
		return report, fmt.Errorf("unable to capture post-execution snapshot: %w", err)
	}
	if err := o.store.Save(next); err != nil {
		return report, fmt.Errorf("unable to persist snapshot: %w", err)
	}

	for _, alert := range collector.Conflicts {
		o.notifier.ConflictDetected(alert)
	}
	for _, alert := range collector.Errors {
		o.notifier.ErrorOccurred(alert)
	}

	return report, nil
}

// postExecutionSnapshot re-scans both roots after execution so the
// persisted snapshot reflects the actual post-sync state, including any
// conflict artifacts and renamed/resolved paths the executor produced.
func (o *Orchestrator) postExecutionSnapshot(leftRoot, rightRoot string) (core.Snapshot, error) {
	leftScan, err := core.Scan(leftRoot, o.filter, o.logger.Sublogger("scan.left.post"))
	if err != nil {
		return nil, fmt.Errorf("unable to re-scan left root: %w", err)
	}
	rightScan, err := core.Scan(rightRoot, o.filter, o.logger.Sublogger("scan.right.post"))
	if err != nil {
		return nil, fmt.Errorf("unable to re-scan right root: %w", err)
	}
	merged := core.Merge(leftScan, rightScan)
	return core.Snapshot(merged), nil
}

// reconcileConfig translates configuration.Configuration into
// core.ReconcileConfig, keeping the core package free of a dependency on
// the configuration package (spec.md §3).
func (o *Orchestrator) reconcileConfig() core.ReconcileConfig {
	maxSize := int64(-1)
	if bytes, ok := o.config.SoftDelete.MaxSizeBytes(); ok {
		maxSize = bytes
	}
	return core.ReconcileConfig{
		SoftDeleteEnabled:      o.config.SoftDelete.Enabled,
		SoftDeleteMaxSizeBytes: maxSize,
		PolicyModifyModify:     translateResolution(o.config.ConflictPolicy.ModifyModify),
		PolicyNewNew:           translateResolution(o.config.ConflictPolicy.NewNew),
		PolicyMetadataConflict: translateResolution(o.config.ConflictPolicy.MetadataConflict),
	}
}

func translateResolution(r configuration.ConflictResolution) core.Resolution {
	switch r {
	case configuration.ResolutionOverwriteNewer:
		return core.ResolutionOverwriteNewer
	case configuration.ResolutionNotifyOnly:
		return core.ResolutionNotifyOnly
	default:
		return core.ResolutionClash
	}
}
