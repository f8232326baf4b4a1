package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/firmdash/firmdash-sync/pkg/mapping"
	"github.com/firmdash/firmdash-sync/pkg/models"
	"github.com/firmdash/firmdash-sync/pkg/source"
)

// stubFetcher serves scripted per-endpoint responses.
type stubFetcher struct {
	records  map[string][]mapping.Raw
	outcomes map[string]source.PageOutcome
	errs     map[string]error
}

func (f *stubFetcher) FetchAll(_ context.Context, endpoint string, _ url.Values) ([]mapping.Raw, source.PageOutcome, error) {
	outcome, ok := f.outcomes[endpoint]
	if !ok {
		outcome = source.OutcomeComplete
	}
	return f.records[endpoint], outcome, f.errs[endpoint]
}

// stubWriter records upserts and can fail whole tables.
type stubWriter struct {
	rowsByTable map[string][][]any
	failTables  map[string]bool
}

func (w *stubWriter) Upsert(_ context.Context, table string, _ []string, _ string, rows [][]any) (int, int) {
	if w.rowsByTable == nil {
		w.rowsByTable = make(map[string][][]any)
	}
	w.rowsByTable[table] = rows
	if w.failTables[table] {
		return 0, len(rows)
	}
	return len(rows), 0
}

// memReporter keeps the audit trail in memory.
type memReporter struct {
	run      *models.SyncRun
	results  []*models.EntityResult
	finished bool
}

func (r *memReporter) StartRun(context.Context) (*models.SyncRun, error) {
	r.run = &models.SyncRun{Status: models.RunStatusRunning}
	return r.run, nil
}

func (r *memReporter) ReportEntity(_ context.Context, result *models.EntityResult) error {
	r.results = append(r.results, result)
	return nil
}

func (r *memReporter) FinishRun(_ context.Context, run *models.SyncRun) error {
	r.finished = true
	return nil
}

func (r *memReporter) byEntity(name string) *models.EntityResult {
	for _, res := range r.results {
		if res.EntityType == name {
			return res
		}
	}
	return nil
}

func newOrchestrator(t *testing.T, f Fetcher, w Writer, r Reporter) *Orchestrator {
	t.Helper()
	return NewOrchestrator(f, w, r, zaptest.NewLogger(t))
}

func TestRun_AllEntitiesClean(t *testing.T) {
	fetcher := &stubFetcher{
		records: map[string][]mapping.Raw{
			"Users":    {{"UserKey": "u1", "FullName": "Jane Doe"}},
			"Contacts": {{"ContactKey": "c1", "FirstName": "John"}},
		},
	}
	writer := &stubWriter{}
	reporter := &memReporter{}

	run, err := newOrchestrator(t, fetcher, writer, reporter).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.True(t, reporter.finished)
	assert.Len(t, reporter.results, 9) // every registry entity reported, even empty ones

	users := reporter.byEntity("team_member")
	require.NotNil(t, users)
	assert.Equal(t, models.EntityStateDone, users.State)
	assert.Equal(t, models.FetchOutcomeComplete, users.FetchOutcome)
	assert.Equal(t, 1, users.Fetched)
	assert.Equal(t, 1, users.Synced)
	assert.Zero(t, users.Errors)
}

func TestRun_WriteFailureIsolatedPerEntity(t *testing.T) {
	fetcher := &stubFetcher{
		records: map[string][]mapping.Raw{
			"Contacts": {
				{"ContactKey": "c1"},
				{"ContactKey": "c2"},
			},
			"Organizations": {{"OrganizationKey": "o1"}},
		},
	}
	writer := &stubWriter{failTables: map[string]bool{"contacts": true}}
	reporter := &memReporter{}

	run, err := newOrchestrator(t, fetcher, writer, reporter).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompletedWithErrors, run.Status)

	contacts := reporter.byEntity("contact")
	require.NotNil(t, contacts)
	assert.Equal(t, 0, contacts.Synced)
	assert.Equal(t, 2, contacts.Errors)

	// Organizations still fetched, mapped and written in full.
	orgs := reporter.byEntity("organization")
	require.NotNil(t, orgs)
	assert.Equal(t, models.EntityStateDone, orgs.State)
	assert.Equal(t, 1, orgs.Synced)
	assert.Zero(t, orgs.Errors)

	assert.Equal(t, 2, run.TotalErrors)
}

func TestRun_FetchFailureKeepsPartialData(t *testing.T) {
	fetcher := &stubFetcher{
		records: map[string][]mapping.Raw{
			"WorkItems": {{"WorkItemKey": "w1"}}, // page one survived
			"Users":     {{"UserKey": "u1"}},
		},
		outcomes: map[string]source.PageOutcome{"WorkItems": source.OutcomeFailed},
		errs:     map[string]error{"WorkItems": errors.New("page 2: unexpected status 429")},
	}
	writer := &stubWriter{}
	reporter := &memReporter{}

	run, err := newOrchestrator(t, fetcher, writer, reporter).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompletedWithErrors, run.Status)

	items := reporter.byEntity("work_item")
	require.NotNil(t, items)
	assert.Equal(t, models.EntityStateFailed, items.State)
	assert.Equal(t, models.FetchOutcomeFailed, items.FetchOutcome)
	assert.Contains(t, items.ErrorMessage, "429")
	assert.Equal(t, 1, items.Fetched)
	assert.Equal(t, 1, items.Synced) // partial page still written

	// Unrelated entity untouched by the failure.
	users := reporter.byEntity("team_member")
	require.NotNil(t, users)
	assert.Equal(t, models.EntityStateDone, users.State)
}

func TestRun_TruncationRecordedWithoutFailing(t *testing.T) {
	fetcher := &stubFetcher{
		records:  map[string][]mapping.Raw{"Invoices": {{"InvoiceKey": "i1"}}},
		outcomes: map[string]source.PageOutcome{"Invoices": source.OutcomeTruncated},
	}
	writer := &stubWriter{}
	reporter := &memReporter{}

	run, err := newOrchestrator(t, fetcher, writer, reporter).Run(context.Background())

	require.NoError(t, err)

	invoices := reporter.byEntity("invoice")
	require.NotNil(t, invoices)
	assert.Equal(t, models.FetchOutcomeTruncated, invoices.FetchOutcome)
	assert.Equal(t, models.EntityStateDone, invoices.State)
	assert.Equal(t, 1, invoices.Synced)

	// Truncation alone does not degrade the run status.
	assert.Equal(t, models.RunStatusCompleted, run.Status)
}

func TestRun_DedupesAndFiltersBeforeWriting(t *testing.T) {
	fetcher := &stubFetcher{
		records: map[string][]mapping.Raw{
			"Users": {
				{"UserKey": "u1", "Email": "jane@firm.test"},
				{"MemberKey": "m2", "Email": "jane@firm.test"}, // same email, dropped
				{"FullName": "No Identity"},                    // filtered by mapper
				{"UserKey": "u3"},
			},
		},
	}
	writer := &stubWriter{}
	reporter := &memReporter{}

	_, err := newOrchestrator(t, fetcher, writer, reporter).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, writer.rowsByTable["team_members"], 2)

	users := reporter.byEntity("team_member")
	require.NotNil(t, users)
	assert.Equal(t, 4, users.Fetched)
	assert.Equal(t, 2, users.Synced)
}

func TestRun_CancelledBeforeEntities(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{}
	writer := &stubWriter{}
	reporter := &memReporter{}

	run, err := newOrchestrator(t, fetcher, writer, reporter).Run(ctx)

	require.NoError(t, err)
	assert.True(t, reporter.finished) // finalized, not left running
	assert.Empty(t, reporter.results)
	assert.Equal(t, models.RunStatusCompletedWithErrors, run.Status)
}

func TestRun_StartRunFailureIsFatal(t *testing.T) {
	reporter := &failingStartReporter{}
	_, err := newOrchestrator(t, &stubFetcher{}, &stubWriter{}, reporter).Run(context.Background())
	require.Error(t, err)
}

type failingStartReporter struct{ memReporter }

func (r *failingStartReporter) StartRun(context.Context) (*models.SyncRun, error) {
	return nil, errors.New("sync_runs table unreachable")
}
