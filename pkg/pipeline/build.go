package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/katpally123/pxt-phoenix/pkg/config"
	"github.com/katpally123/pxt-phoenix/pkg/engine"
	"github.com/katpally123/pxt-phoenix/pkg/logging"
	"github.com/katpally123/pxt-phoenix/pkg/parser"
	"github.com/katpally123/pxt-phoenix/pkg/report"
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// TimestampLayout formats every generated_at field.
const TimestampLayout = "2006-01-02 15:04:05"

// File is one named input blob.
type File struct {
	Name string
	Data []byte
}

type options struct {
	logger            *slog.Logger
	now               func() time.Time
	newRunID          func() string
	strictMarketplace bool
	headerScanRows    int
	diagnosticColumns int
}

// Option configures BuildAll.
type Option func(*options)

// WithLogger routes pipeline logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNow overrides the clock used for generated_at stamps.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) { o.newRunID = func() string { return id } }
}

// WithStrictMarketplace switches marketplace acceptance to the status-gated rule.
func WithStrictMarketplace(strict bool) Option {
	return func(o *options) { o.strictMarketplace = strict }
}

// WithHeaderScanRows bounds how many leading rows header repair inspects.
func WithHeaderScanRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.headerScanRows = n
		}
	}
}

// WithDiagnosticColumns bounds how many column names diagnostics list per file.
func WithDiagnosticColumns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.diagnosticColumns = n
		}
	}
}

// WithEngineConfig applies every engine setting from cfg.
func WithEngineConfig(cfg config.EngineConfig) Option {
	return func(o *options) {
		WithStrictMarketplace(cfg.StrictMarketplace)(o)
		WithHeaderScanRows(cfg.HeaderScanRows)(o)
		WithDiagnosticColumns(cfg.DiagnosticColumns)(o)
	}
}

// loadedFile is a classified input table.
type loadedFile struct {
	table  *parser.Table
	banner bool
	diag   report.LoadedFile
}

// BuildAll runs the whole pipeline over files and returns the headcount
// result. It never fails: unreadable files become empty tables, missing
// document kinds produce empty sections, and a panic in any stage is
// recovered into diagnostics.errors with the sections built so far.
func BuildAll(files []File, settings report.Settings, targetDate string, opts ...Option) (res *Result) {
	o := &options{
		logger:            logging.Discard(),
		now:               time.Now,
		newRunID:          uuid.NewString,
		headerScanRows:    parser.DefaultHeaderScanRows,
		diagnosticColumns: 25,
	}
	for _, opt := range opts {
		opt(o)
	}

	runID := o.newRunID()
	ctx := logging.WithRunID(context.Background(), runID)
	logger := o.logger.With(slog.String("component", "pipeline"))
	stamp := o.now().Format(TimestampLayout)

	target := schema.ParseTargetDate(targetDate)
	diag := report.NewDiagnostics(runID, target)
	if o.strictMarketplace {
		diag.Marketplace.Mode = report.MarketplaceStrict
	}
	res = newResult(runID, stamp, settings, diag)

	defer func() {
		if r := recover(); r != nil {
			diag.Errors = append(diag.Errors, fmt.Sprintf("internal error: %v", r))
			logger.ErrorContext(ctx, "pipeline panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	logger.InfoContext(ctx, "build started",
		slog.Int("file_count", len(files)),
		slog.String("target_date", targetDate))

	if targetDate != "" && target == nil {
		diag.Errors = append(diag.Errors, fmt.Sprintf("target date %q is not a date; no date filter applied", targetDate))
		logger.WarnContext(ctx, "unparseable target date ignored", slog.String("target_date", targetDate))
	}
	diag.SettingsIssues = append(diag.SettingsIssues, settings.Validate()...)
	for _, issue := range diag.SettingsIssues {
		logger.WarnContext(ctx, "settings issue", slog.String("issue", issue))
	}

	loaded := loadFiles(ctx, logger, files, o)
	selected := selectByKind(loaded)
	for _, lf := range loaded {
		diag.LoadedFiles = append(diag.LoadedFiles, lf.diag)
	}

	rosterTable := selected[schema.KindRoster]
	attendanceTable := selected[schema.KindAttendance]
	marketplaceTable := selected[schema.KindShiftMarketplace]
	swapTable := selected[schema.KindShiftSwap]

	roster := engine.NormalizeRoster(rosterTable)
	feed := engine.NormalizeAttendance(attendanceTable)
	diag.PickedColumns.Roster = roster.Picks
	diag.PickedColumns.Attendance = feed.Picks
	diag.Hints.Roster = hintsFor(rosterTable, schema.RosterRoles, roster.Picks)
	diag.Hints.Attendance = hintsFor(attendanceTable, schema.AttendanceRoles, feed.Picks)

	index := engine.BuildPersonIndex(roster.Records)
	diag.DuplicateIDs = append(diag.DuplicateIDs, index.Stats.DuplicateIDs...)
	if n := len(index.Stats.DuplicateIDs); n > 0 {
		logger.WarnContext(ctx, "duplicate roster identities, last row wins", slog.Int("duplicate_count", n))
	}

	presence := engine.ReconcilePresence(index, feed)
	res.PresenceMap.Presence = presence.Records
	diag.PresenceCount = len(presence.Records)
	diag.Presence = presence.Stats
	diag.PresenceOverrides = len(presence.Overrides)
	logger.InfoContext(ctx, "presence reconciled",
		slog.Int("persons", presence.Stats.TotalProcessed),
		slog.Int("present", presence.Stats.Present),
		slog.Int("from_feed", presence.Stats.FromFeed),
		slog.Int("overrides", len(presence.Overrides)))

	filter := engine.FilterOptions{Target: target, StrictMarketplace: o.strictMarketplace}

	market := engine.FilterMarketplace(marketplaceTable, presence, filter)
	res.VetVTO.Records = market.Events
	diag.PickedColumns.Marketplace = market.Picks
	diag.Hints.Marketplace = hintsFor(marketplaceTable, schema.MarketplaceRoles, market.Picks)
	diag.Marketplace.Stats = market.Stats

	swaps := engine.FilterSwaps(swapTable, presence, filter)
	res.Swaps.SwapOut = swaps.Out
	res.Swaps.SwapInExpected = swaps.InExpected
	res.Swaps.SwapInPresent = swaps.InPresent
	diag.PickedColumns.Swaps = swaps.Picks
	diag.Hints.Swaps = hintsFor(swapTable, schema.SwapRoles, swaps.Picks)
	diag.Swaps = swaps.Stats
	logger.InfoContext(ctx, "events filtered",
		slog.Int("marketplace_kept", market.Stats.Kept),
		slog.Int("swap_rows_kept", swaps.Stats.Kept),
		slog.String("marketplace_mode", diag.Marketplace.Mode))

	summary := report.Aggregate(settings, presence.Records, market.Events, swaps, stamp)
	res.DeptSummary = summary
	diag.Unbucketed = summary.Unbucketed

	logger.InfoContext(ctx, "build finished",
		slog.Int("departments", len(summary.ByDepartment)),
		slog.Int("unbucketed_presence", summary.Unbucketed.Presence))
	return res
}

// loadFiles loads, repairs and classifies every input in order.
func loadFiles(ctx context.Context, logger *slog.Logger, files []File, o *options) []*loadedFile {
	out := make([]*loadedFile, 0, len(files))
	for _, f := range files {
		t := parser.Load(f.Data)
		banner := !t.Empty() && parser.HasBannerSignature(t)
		if banner {
			t = parser.Repair(t, o.headerScanRows)
		}
		kind := schema.Classify(t.Columns)

		logger.DebugContext(ctx, "file loaded",
			slog.String("file_name", f.Name),
			slog.String("kind", string(kind)),
			slog.String("strategy", string(t.Strategy)),
			slog.String("encoding", t.Encoding),
			slog.Int("rows", t.Len()),
			slog.Bool("header_repaired", t.Repaired))
		if t.Empty() {
			logger.WarnContext(ctx, "file produced no table", slog.String("file_name", f.Name))
		}

		out = append(out, &loadedFile{
			table:  t,
			banner: banner,
			diag:   report.DescribeFile(f.Name, t, kind, report.KindSourceHeader, o.diagnosticColumns),
		})
	}
	return out
}

// selectByKind picks the first table of each kind. A bannered file that is
// still unknown after repair stands in for a missing attendance feed.
func selectByKind(loaded []*loadedFile) map[schema.DocumentKind]*parser.Table {
	selected := make(map[schema.DocumentKind]*parser.Table, 4)
	for _, lf := range loaded {
		kind := lf.diag.Kind
		if kind == schema.KindUnknown {
			continue
		}
		if _, taken := selected[kind]; taken {
			continue
		}
		selected[kind] = lf.table
		lf.diag.Selected = true
	}

	if _, ok := selected[schema.KindAttendance]; !ok {
		for _, lf := range loaded {
			if lf.diag.Kind != schema.KindUnknown || !lf.banner || lf.table.Empty() {
				continue
			}
			lf.diag.Kind = schema.KindAttendance
			lf.diag.KindSource = report.KindSourceBannerFallback
			lf.diag.Selected = true
			selected[schema.KindAttendance] = lf.table
			break
		}
	}
	return selected
}

func hintsFor(t *parser.Table, roles []schema.Role, picks schema.Picks) []schema.ColumnHint {
	if t.Empty() {
		return nil
	}
	return schema.HintsFor(t.Columns, roles, picks)
}
