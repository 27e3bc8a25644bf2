package lodestone

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFCID  = "9229001536389012345"
	testWorld = "Siren"
	testDC    = "Aether"
)

func membersPath(fcID string) string {
	return "/lodestone/freecompany/" + fcID + "/member"
}

func gcQuery(page int) string {
	return url.Values{"page": {strconv.Itoa(page)}, "worldname": {testWorld}}.Encode()
}

func registerGCPages(f *fakeLodestone, pages ...[]professionalsdomain.LeaderboardRecord) {
	for i := range DefaultRankingPages {
		var rows []professionalsdomain.LeaderboardRecord
		if i < len(pages) {
			rows = pages[i]
		}
		f.register("/lodestone/ranking/gc/weekly", gcQuery(i+1), http.StatusOK, gcRankingPage(rows...))
	}
}

func TestClient_FreeCompanyMembers(t *testing.T) {
	pageOne := []professionalsdomain.MembershipRecord{
		{IdentityToken: "1001", Name: "Alpha One", Tier: "Leader"},
		{IdentityToken: "1002", Name: "Beta Two", Tier: "Member"},
	}
	pageTwo := []professionalsdomain.MembershipRecord{
		{IdentityToken: "1003", Name: "Gamma Three", Tier: "Recruit"},
	}

	tests := []struct {
		name    string
		setup   func(f *fakeLodestone)
		want    []professionalsdomain.MembershipRecord
		wantErr error
	}{
		{
			name: "single page",
			setup: func(f *fakeLodestone) {
				f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1, pageOne...))
			},
			want: pageOne,
		},
		{
			name: "walks every page",
			setup: func(f *fakeLodestone) {
				f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 2, pageOne...))
				f.register(membersPath(testFCID), "page=2", http.StatusOK, membersPage(2, 2, pageTwo...))
			},
			want: append(append([]professionalsdomain.MembershipRecord{}, pageOne...), pageTwo...),
		},
		{
			name: "not found",
			setup: func(f *fakeLodestone) {
				f.register(membersPath(testFCID), "", http.StatusNotFound, "")
			},
			wantErr: ErrNotFound,
		},
		{
			name: "missing pager",
			setup: func(f *fakeLodestone) {
				f.register(membersPath(testFCID), "", http.StatusOK, "<html><body><ul></ul></body></html>")
			},
			wantErr: ErrParse,
		},
		{
			name: "second page fails",
			setup: func(f *fakeLodestone) {
				f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 2, pageOne...))
				f.register(membersPath(testFCID), "page=2", http.StatusServiceUnavailable, "")
			},
			wantErr: ErrServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeLodestone(t)
			tt.setup(f)
			c := f.client(Config{}, nil)

			got, err := c.FreeCompanyMembers(context.Background(), testFCID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
		wantMsg string
	}{
		{http.StatusNotFound, ErrNotFound, "Free Company " + testFCID + " could not be found"},
		{http.StatusTooManyRequests, ErrRateLimited, "unable to fetch Free Company members due to Lodestone rate limiting"},
		{http.StatusForbidden, ErrClientError, "failed to fetch Free Company members due to an unknown client error"},
		{http.StatusServiceUnavailable, ErrServerError, "the Lodestone appears to be down"},
		{http.StatusNoContent, ErrClientError, "failed to fetch Free Company members due to an unknown issue"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			f := newFakeLodestone(t)
			f.register(membersPath(testFCID), "", tt.status, "")
			c := f.client(Config{}, nil)

			_, err := c.FreeCompanyMembers(context.Background(), testFCID)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var lerr *Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.status, lerr.StatusCode)
			assert.Equal(t, tt.wantMsg, lerr.Message)
		})
	}
}

func TestClient_GrandCompanyRankings(t *testing.T) {
	t.Run("concatenates all pages in order", func(t *testing.T) {
		f := newFakeLodestone(t)
		first := []professionalsdomain.LeaderboardRecord{
			{IdentityToken: "1001", Name: "Alpha One", Rank: 1, Score: 95000},
			{IdentityToken: "2001", Name: "Someone Else", Rank: 2, Score: 90000},
		}
		third := []professionalsdomain.LeaderboardRecord{
			{IdentityToken: "1001", Name: "Alpha One", Rank: 150, Score: 1000},
		}
		registerGCPages(f, first, nil, third)

		got, err := f.client(Config{}, nil).GrandCompanyRankings(context.Background(), testWorld)
		require.NoError(t, err)
		assert.Equal(t, append(append([]professionalsdomain.LeaderboardRecord{}, first...), third...), got)
		for page := 1; page <= DefaultRankingPages; page++ {
			assert.Equal(t, 1, f.requests("/lodestone/ranking/gc/weekly", gcQuery(page)), "page %d", page)
		}
	})

	t.Run("honors configured page count", func(t *testing.T) {
		f := newFakeLodestone(t)
		registerGCPages(f)

		_, err := f.client(Config{RankingPages: 2}, nil).GrandCompanyRankings(context.Background(), testWorld)
		require.NoError(t, err)
		assert.Equal(t, 1, f.requests("/lodestone/ranking/gc/weekly", gcQuery(2)))
		assert.Equal(t, 0, f.requests("/lodestone/ranking/gc/weekly", gcQuery(3)))
	})

	t.Run("failing page fails the whole fetch", func(t *testing.T) {
		f := newFakeLodestone(t)
		registerGCPages(f)
		f.register("/lodestone/ranking/gc/weekly", gcQuery(3), http.StatusTooManyRequests, "")

		got, err := f.client(Config{}, nil).GrandCompanyRankings(context.Background(), testWorld)
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Nil(t, got)
	})

	t.Run("malformed seal count", func(t *testing.T) {
		f := newFakeLodestone(t)
		registerGCPages(f)
		f.register("/lodestone/ranking/gc/weekly", gcQuery(1), http.StatusOK,
			`<table><tbody><tr data-href='/lodestone/character/1/'><td class='ranking-character__number'>1</td><td><h4>A B</h4></td><td class='ranking-character__value'>lots</td></tr></tbody></table>`)

		_, err := f.client(Config{}, nil).GrandCompanyRankings(context.Background(), testWorld)
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestClient_SearchFreeCompanies(t *testing.T) {
	f := newFakeLodestone(t)
	want := []professionalsdomain.FreeCompany{
		{ID: "9229001536389012345", Name: "Professionals"},
		{ID: "9229001536389054321", Name: "Amateurs"},
	}
	f.register("/lodestone/freecompany", url.Values{"worldname": {testWorld}}.Encode(), http.StatusOK, freeCompaniesPage(testWorld, want...))

	got, err := f.client(Config{}, nil).SearchFreeCompanies(context.Background(), testWorld)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_FreeCompanyRankings(t *testing.T) {
	query := url.Values{"filter": {"1"}, "dcgroup": {testDC}, "dcGroup": {testDC}}.Encode()

	t.Run("parses rankings with thousands separators", func(t *testing.T) {
		f := newFakeLodestone(t)
		want := []professionalsdomain.FreeCompanyRanking{
			{ID: "9229001536389012345", Name: "Professionals", Rank: 1, Seals: 12345678},
			{ID: "9229001536389054321", Name: "Amateurs", Rank: 2, Seals: 999},
		}
		f.register("/lodestone/ranking/fc/weekly", query, http.StatusOK, fcRankingPage(want...))

		got, err := f.client(Config{}, nil).FreeCompanyRankings(context.Background(), testDC)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing table", func(t *testing.T) {
		f := newFakeLodestone(t)
		f.register("/lodestone/ranking/fc/weekly", query, http.StatusOK, "<html><body></body></html>")

		_, err := f.client(Config{}, nil).FreeCompanyRankings(context.Background(), testDC)
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestClient_Caching(t *testing.T) {
	members := []professionalsdomain.MembershipRecord{{IdentityToken: "1001", Name: "Alpha One", Tier: "Leader"}}

	t.Run("second call is served from cache", func(t *testing.T) {
		f := newFakeLodestone(t)
		f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1, members...))

		reg := prometheus.NewRegistry()
		metrics, err := NewMetrics(reg)
		require.NoError(t, err)
		c := f.client(Config{CacheTTL: time.Minute, CacheSize: 10}, metrics)

		for range 3 {
			got, err := c.FreeCompanyMembers(context.Background(), testFCID)
			require.NoError(t, err)
			assert.Equal(t, members, got)
		}

		assert.Equal(t, 1, f.requests(membersPath(testFCID), ""))
		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.cacheHits.WithLabelValues(membersRequest.endpoint)))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(membersRequest.endpoint, "ok")))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		f := newFakeLodestone(t)
		f.register(membersPath(testFCID), "", http.StatusServiceUnavailable, "")
		c := f.client(Config{CacheTTL: time.Minute, CacheSize: 10}, nil)

		_, err := c.FreeCompanyMembers(context.Background(), testFCID)
		require.ErrorIs(t, err, ErrServerError)

		f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1, members...))
		got, err := c.FreeCompanyMembers(context.Background(), testFCID)
		require.NoError(t, err)
		assert.Equal(t, members, got)
		assert.Equal(t, 2, f.requests(membersPath(testFCID), ""))
	})

	t.Run("disabled cache always fetches", func(t *testing.T) {
		f := newFakeLodestone(t)
		f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1, members...))
		c := f.client(Config{}, nil)

		for range 2 {
			_, err := c.FreeCompanyMembers(context.Background(), testFCID)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, f.requests(membersPath(testFCID), ""))
	})
}

func TestClient_ScopeFetchers(t *testing.T) {
	f := newFakeLodestone(t)
	f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1,
		professionalsdomain.MembershipRecord{IdentityToken: "1001", Name: "Alpha One", Tier: "Leader"}))
	registerGCPages(f, []professionalsdomain.LeaderboardRecord{{IdentityToken: "1001", Name: "Alpha One", Rank: 3, Score: 500}})
	c := f.client(Config{}, nil)
	scope := professionalsdomain.Scope{FreeCompanyID: testFCID, World: testWorld}

	members, err := c.FetchMembership(context.Background(), scope)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	board, err := c.FetchLeaderboard(context.Background(), scope)
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func TestClient_ContextCancelled(t *testing.T) {
	f := newFakeLodestone(t)
	f.register(membersPath(testFCID), "", http.StatusOK, membersPage(1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client(Config{}, nil).FreeCompanyMembers(ctx, testFCID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "none", Kind(nil))
	assert.Equal(t, "not_found", Kind(&Error{Kind: ErrNotFound}))
	assert.Equal(t, "parse_error", Kind(parseError("bad %s", "page")))
	assert.Equal(t, "unknown", Kind(errors.New("boom")))
}
