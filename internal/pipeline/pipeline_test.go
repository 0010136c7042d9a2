// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

const (
	tsimikasURL = "https://en.wikipedia.org/wiki/Kostas_Tsimikas"
	cityURL     = "https://en.wikipedia.org/wiki/Thessaloniki"
	missingURL  = "https://en.wikipedia.org/wiki/Missing"
)

var testNow = time.Date(2024, time.October, 1, 9, 30, 15, 0, time.UTC)

const tsimikasPage = `<html><body>
<h1>Kostas Tsimikas</h1>
<table class="infobox vcard"><tbody>
<tr><th class="infobox-label">Full name</th><td class="infobox-data">Konstantinos Tsimikas<sup>[1]</sup></td></tr>
<tr><th class="infobox-label">Date of birth</th><td class="infobox-data"><span style="display:none">(<span class="bday">1996-05-12</span>)</span> 12 May 1996 (age 28)</td></tr>
<tr><th class="infobox-label">Place of birth</th><td class="infobox-data"><a href="/wiki/Thessaloniki">Thessaloniki</a>, Greece</td></tr>
<tr><th class="infobox-label">Position</th><td class="infobox-data"><a href="/wiki/Defender">Defender</a></td></tr>
<tr><th colspan="4" class="infobox-header">Senior career*</th></tr>
<tr><th class="infobox-label">Years</th><th>Team</th><th>Apps</th><th>(Gls)</th></tr>
<tr><th class="infobox-label">2015–2020</th><td class="infobox-data"><a href="/wiki/Olympiacos_F.C.">Olympiacos</a></td><td class="infobox-data">21</td><td class="infobox-data">(0)</td></tr>
<tr><th class="infobox-label">2020–</th><td class="infobox-data"><a href="/wiki/Liverpool_F.C.">Liverpool</a></td><td class="infobox-data">120</td><td class="infobox-data">(8)</td></tr>
<tr><th colspan="4" class="infobox-header">International career</th></tr>
<tr><th class="infobox-label">2018–</th><td class="infobox-data"><a href="/wiki/Greece_national_football_team">Greece</a></td><td class="infobox-data">40</td><td class="infobox-data">(1)</td></tr>
</tbody></table>
<p>Konstantinos Tsimikas is a Greek professional footballer.</p>
</body></html>`

const cityPage = `<html><body><h1>Thessaloniki</h1><p>Thessaloniki is a city in Greece.</p></body></html>`

// fakeFetcher serves pages from memory.
type fakeFetcher struct {
	pages    map[string]string
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("HTTP 404 from %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// failingStore rejects every record.
type failingStore struct{}

func (failingStore) Reconcile(context.Context, types.PlayerRecord, store.Mode) (store.Outcome, error) {
	return store.Outcome{}, fmt.Errorf("database is locked")
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "players.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newRunner(f Fetcher, s Reconciler, out *bytes.Buffer) *Runner {
	return &Runner{
		Fetcher: f,
		Store:   s,
		Workers: 2,
		Now:     func() time.Time { return testNow },
		Log:     logging.NewNop(),
		Out:     out,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	s := testStore(t)
	f := &fakeFetcher{pages: map[string]string{tsimikasURL: tsimikasPage, cityURL: cityPage}}
	var out bytes.Buffer

	result, err := newRunner(f, s, &out).Run(context.Background(), []string{tsimikasURL, cityURL, missingURL})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scraped)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())

	require.Len(t, result.Items, 3)
	assert.Equal(t, tsimikasURL, result.Items[0].URL)
	assert.Equal(t, StatusSkipped, result.Items[1].Status)
	assert.Equal(t, StatusFailed, result.Items[2].Status)
	assert.Error(t, result.Items[2].Err)

	recs := result.Records()
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].PlayerID)

	got, err := s.Lookup(context.Background(), tsimikasURL)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.Ptr("Kostas Tsimikas"), got.Name)
	assert.Equal(t, types.Ptr("Konstantinos Tsimikas"), got.FullName)
	assert.Equal(t, types.Ptr("1996-05-12"), got.DateOfBirth)
	assert.Equal(t, types.Ptr(28), got.Age)
	assert.Equal(t, types.Ptr("Thessaloniki"), got.PlaceOfBirth)
	assert.Equal(t, types.Ptr("Greece"), got.CountryOfBirth)
	assert.Equal(t, types.Ptr("Defender"), got.Positions)
	assert.Equal(t, types.Ptr("Liverpool"), got.CurrentClub)
	assert.Equal(t, types.Ptr(120), got.AppearancesCurrentClub)
	assert.Equal(t, types.Ptr(8), got.GoalsCurrentClub)
	assert.Equal(t, types.Ptr("Greece"), got.NationalTeam)
	require.NotNil(t, got.ScrapedAt)
	assert.True(t, testNow.Equal(*got.ScrapedAt))

	status := out.String()
	assert.Contains(t, status, "scraped: "+tsimikasURL)
	assert.Contains(t, status, "skipped: "+cityURL)
	assert.Contains(t, status, "failed:  "+missingURL)
	assert.Contains(t, status, "Batch summary: 1 scraped, 1 skipped, 1 failed (total: 3)")
}

func TestRun_WithoutStore(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{tsimikasURL: tsimikasPage}}

	result, err := newRunner(f, nil, nil).Run(context.Background(), []string{tsimikasURL})
	require.NoError(t, err)
	require.Len(t, result.Records(), 1)
	assert.Empty(t, result.Records()[0].PlayerID)
}

func TestRun_ReconcileFailureKeepsRecord(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{tsimikasURL: tsimikasPage}}
	var out bytes.Buffer

	result, err := newRunner(f, failingStore{}, &out).Run(context.Background(), []string{tsimikasURL})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Records(), 1)
	assert.Contains(t, out.String(), "database is locked")
}

func TestRun_BoundedWorkers(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{tsimikasURL: tsimikasPage}, delay: 5 * time.Millisecond}
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = tsimikasURL
	}

	r := newRunner(f, testStore(t), nil)
	r.Workers = 3
	result, err := r.Run(context.Background(), urls)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Scraped)
	assert.LessOrEqual(t, f.peak.Load(), int32(3))

	// Every duplicate reconciled onto one stored identity.
	ids := make(map[string]bool)
	for _, rec := range result.Records() {
		ids[rec.PlayerID] = true
	}
	assert.Len(t, ids, 1)
}

func TestRun_CancelledContext(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{tsimikasURL: tsimikasPage}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner(f, nil, nil).Run(ctx, []string{tsimikasURL, tsimikasURL})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Total())
}

func TestImport_SeedThenRefresh(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var out bytes.Buffer

	seed := []types.PlayerRecord{
		{PlayerID: "seed-1", URL: tsimikasURL, Name: types.Ptr("Kostas Tsimikas"), CurrentClub: types.Ptr("Liverpool")},
		{URL: "not a url"},
	}
	res, err := Import(ctx, s, seed, store.ModeSeed, &out, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 1, Failed: 1}, res)
	assert.Contains(t, out.String(), "created: "+tsimikasURL+" (seed-1)")

	refresh := []types.PlayerRecord{{URL: tsimikasURL, Positions: types.Ptr("Defender")}}
	res, err = Import(ctx, s, refresh, store.ModeRefresh, &out, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Updated: 1}, res)

	got, err := s.Lookup(ctx, tsimikasURL)
	require.NoError(t, err)
	assert.Equal(t, "seed-1", got.PlayerID)
	assert.Equal(t, types.Ptr("Liverpool"), got.CurrentClub)
	assert.Equal(t, types.Ptr("Defender"), got.Positions)
	assert.Contains(t, out.String(), "Import summary (refresh): 0 created, 1 updated, 0 failed (total: 1)")
}

func TestImport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Import(ctx, testStore(t), []types.PlayerRecord{{URL: tsimikasURL}}, store.ModeSeed, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "scraped", StatusScraped.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
