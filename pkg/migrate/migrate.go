// pkg/migrate/migrate.go
package migrate

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agencyops/clickup-ingress/pkg/config"
	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/parser"
	"github.com/agencyops/clickup-ingress/pkg/resolver"
	"github.com/agencyops/clickup-ingress/pkg/store"
	"github.com/agencyops/clickup-ingress/pkg/transform"
)

// Options control a single migration run.
type Options struct {
	DryRun bool
	// Now overrides the run clock; nil means time.Now.
	Now func() time.Time
}

// Runner drives the migration end to end:
// Inspect -> Backup -> Migrate(x4) -> Report.
//
// The pipeline runs against production data files directly and gets no
// second chance, so the ordering constraints are strict: every store is
// read once into an in-memory snapshot, the backup completes before the
// first mutation, and each sub-pipeline failure degrades to a warning
// instead of aborting the others.
type Runner struct {
	cfg      *config.Config
	resolver *resolver.Resolver
	logger   *zap.Logger
	dryRun   bool
	now      func() time.Time
}

// NewRunner creates a migration runner.
func NewRunner(cfg *config.Config, logger *zap.Logger, opts Options) *Runner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		cfg:      cfg,
		resolver: resolver.New(logger),
		logger:   logger,
		dryRun:   opts.DryRun,
		now:      now,
	}
}

// snapshot is the single read of all persisted collections. All merges
// work against it; nothing re-reads a target file mid-run.
type snapshot struct {
	billing []model.BillingPeriod
	regs    []model.A2PRegistration
	drops   []model.Drop
	clients []model.Client
}

// Run executes the full pipeline and always returns a report; the error
// is non-nil only for fatal conditions (backup or write failure,
// unreadable existing store).
func (r *Runner) Run() (*RunReport, error) {
	now := r.now()
	report := NewRunReport(r.dryRun, now)

	r.logger.Info("starting migration",
		zap.Bool("dryRun", r.dryRun),
		zap.String("dataDir", r.cfg.DataDir))

	// Inspect: presence of the five fixed source files. Informational
	// only; absence is handled per sub-pipeline.
	for _, src := range r.cfg.SourceFiles() {
		_, err := os.Stat(src.Path)
		present := err == nil
		report.SourceFiles = append(report.SourceFiles, SourcePresence{
			Name:    src.Name,
			Path:    src.Path,
			Present: present,
		})
		r.logger.Info("inspected source file",
			zap.String("source", src.Name),
			zap.String("path", src.Path),
			zap.Bool("present", present))
	}

	// One snapshot read of every target store. A malformed store is
	// fatal: merging against a partial read would risk data loss.
	snap, err := r.loadSnapshot()
	if err != nil {
		return report, err
	}

	// Backup before the first mutation. Skipped in dry-run, where
	// nothing mutates anyway.
	if !r.dryRun {
		dir, err := store.Backup(r.cfg.TargetPaths(), r.cfg.BackupDir, now, r.logger)
		if err != nil {
			return report, fmt.Errorf("backup failed: %w", err)
		}
		report.BackupDir = dir
	}

	// The four sub-pipelines are logically independent: a missing
	// source degrades that one to a warning.
	stubs := r.migrateBilling(report, snap, now)
	r.migrateA2P(report, snap)
	r.migrateDrops(report, snap, now)
	r.migrateClients(report, snap, stubs)

	if err := r.save(report, snap, now); err != nil {
		return report, err
	}

	r.logger.Info("migration finished",
		zap.Int("recordsAdded", report.TotalAdded()),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

func (r *Runner) loadSnapshot() (*snapshot, error) {
	billing, err := store.Load[model.BillingPeriod](r.cfg.BillingStorePath(), "billingPeriods")
	if err != nil {
		return nil, err
	}
	regs, err := store.Load[model.A2PRegistration](r.cfg.A2PStorePath(), "registrations")
	if err != nil {
		return nil, err
	}
	drops, err := store.Load[model.Drop](r.cfg.DropsStorePath(), "drops")
	if err != nil {
		return nil, err
	}
	clients, err := store.Load[model.Client](r.cfg.ClientsStorePath(), "clients")
	if err != nil {
		return nil, err
	}
	return &snapshot{billing: billing, regs: regs, drops: drops, clients: clients}, nil
}

// parseSource reads and parses one export, degrading any failure to a
// warning. The bool reports whether rows are usable.
func (r *Runner) parseSource(report *RunReport, name, path string) ([]parser.Row, bool) {
	if _, err := os.Stat(path); err != nil {
		report.Warn("%s source file not found at %s; skipping", name, path)
		r.logger.Warn("skipping sub-pipeline, source missing",
			zap.String("source", name),
			zap.String("path", path))
		return nil, false
	}

	parsed, err := parser.ParseFile(path)
	if err != nil {
		report.Warn("%s source file unreadable: %v; skipping", name, err)
		return nil, false
	}
	return parsed.Rows, true
}

func (r *Runner) migrateBilling(report *RunReport, snap *snapshot, now time.Time) []model.Client {
	rows, ok := r.parseSource(report, "income", r.cfg.IncomeCSV)
	if !ok {
		return nil
	}

	res := transform.NewBilling(r.resolver, r.logger, now).Transform(rows)
	report.Sources = append(report.Sources, res.Stats)
	report.Warnings = append(report.Warnings, res.Warnings...)

	before := len(snap.billing)
	snap.billing, report.AddedBillingPeriods = store.Merge(snap.billing, res.Periods, model.BillingPeriod.Key)

	// Monetary totals cover only the records this run actually added.
	for _, p := range snap.billing[before:] {
		amount := decimal.NewFromFloat(p.MonthlyTotal)
		report.TotalRevenue = report.TotalRevenue.Add(amount)
		if p.Status == model.PaymentPaid || p.Status == model.PaymentCompleted {
			report.ReceivedRevenue = report.ReceivedRevenue.Add(amount)
		}
	}

	return res.Stubs
}

func (r *Runner) migrateA2P(report *RunReport, snap *snapshot) {
	rows, ok := r.parseSource(report, "a2p", r.cfg.A2PCSV)
	if !ok {
		return
	}

	res := transform.NewA2P(r.logger).Transform(rows)
	report.Sources = append(report.Sources, res.Stats)
	report.Warnings = append(report.Warnings, res.Warnings...)

	snap.regs, report.AddedRegistrations = store.Merge(snap.regs, res.Registrations, model.A2PRegistration.Key)
}

func (r *Runner) migrateDrops(report *RunReport, snap *snapshot, now time.Time) {
	rows, ok := r.parseSource(report, "tasks", r.cfg.TasksCSV)
	if !ok {
		return
	}

	res := transform.NewDrops(r.logger, now).Transform(rows)
	report.Sources = append(report.Sources, res.Stats)
	report.Warnings = append(report.Warnings, res.Warnings...)

	snap.drops, report.AddedDrops = store.Merge(snap.drops, res.Drops, model.Drop.Key)
}

func (r *Runner) migrateClients(report *RunReport, snap *snapshot, stubs []model.Client) {
	if len(stubs) == 0 {
		return
	}
	snap.clients, report.AddedClients = store.Merge(snap.clients, stubs, model.Client.Key)
}

// save rewrites only the stores that gained records. Write failure is
// fatal, but the backup already completed, so the operator can restore.
func (r *Runner) save(report *RunReport, snap *snapshot, now time.Time) error {
	type pending struct {
		path       string
		collection string
		write      func() error
		added      int
	}

	targets := []pending{
		{r.cfg.BillingStorePath(), "billingPeriods", func() error {
			return store.Save(r.cfg.BillingStorePath(), "billingPeriods", snap.billing, now)
		}, report.AddedBillingPeriods},
		{r.cfg.A2PStorePath(), "registrations", func() error {
			return store.Save(r.cfg.A2PStorePath(), "registrations", snap.regs, now)
		}, report.AddedRegistrations},
		{r.cfg.DropsStorePath(), "drops", func() error {
			return store.Save(r.cfg.DropsStorePath(), "drops", snap.drops, now)
		}, report.AddedDrops},
		{r.cfg.ClientsStorePath(), "clients", func() error {
			return store.Save(r.cfg.ClientsStorePath(), "clients", snap.clients, now)
		}, report.AddedClients},
	}

	for _, t := range targets {
		if t.added == 0 {
			continue
		}
		if r.dryRun {
			r.logger.Info("dry-run: would write store",
				zap.String("path", t.path),
				zap.Int("newRecords", t.added))
			continue
		}
		if err := t.write(); err != nil {
			return fmt.Errorf("failed to persist %s: %w", t.collection, err)
		}
		report.FilesWritten = append(report.FilesWritten, t.path)
		r.logger.Info("wrote store",
			zap.String("path", t.path),
			zap.Int("newRecords", t.added))
	}

	return nil
}
