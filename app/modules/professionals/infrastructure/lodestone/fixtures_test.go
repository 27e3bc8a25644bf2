package lodestone

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func memberEntry(m professionalsdomain.MembershipRecord) string {
	return fmt.Sprintf(`
<li class='entry'><a href='/lodestone/character/%s/' class='entry__bg'>
  <div class='entry__flex'>
    <div class='entry__freecompany__center'><p class='entry__name'>%s</p>
      <ul class='entry__freecompany__info'>
        <li><img src='img-url' width='20' height='20' alt=''><span>%s</span></li>
      </ul>
    </div>
  </div>
</a></li>`, m.IdentityToken, m.Name, m.Tier)
}

func membersPage(page, maxPages int, members ...professionalsdomain.MembershipRecord) string {
	var entries strings.Builder
	for _, m := range members {
		entries.WriteString(memberEntry(m))
	}
	return fmt.Sprintf(`<html><body>
  <ul class='btn__pager'>
    <li class='btn__pager__current'>Page %d of %d</li>
  </ul>
  <ul>%s</ul>
</body></html>`, page, maxPages, entries.String())
}

func gcRankingRow(r professionalsdomain.LeaderboardRecord) string {
	return fmt.Sprintf(`
<tr data-href='/lodestone/character/%s/' class='clickable'>
  <td class='ranking-character__number											'> %d </td>
  <td class='ranking-character__face'> <img src='face' width='50' height='50' alt=''> </td>
  <td class='ranking-character__info'>
    <h4>%s</h4>
    <p><i class='xiv-lds xiv-lds-home-world js__tooltip' data-tooltip='Home World'></i>Siren [Aether]</p>
  </td>
  <td class='ranking-character__gcrank'> <img src='gc' alt='Immortal Flames/Flame Captain'> </td>
  <td class='ranking-character__value'> %d </td>
</tr>`, r.IdentityToken, r.Rank, r.Name, r.Score)
}

func gcRankingPage(rows ...professionalsdomain.LeaderboardRecord) string {
	var body strings.Builder
	for _, r := range rows {
		body.WriteString(gcRankingRow(r))
	}
	return fmt.Sprintf(`<html><body><table><tbody>%s</tbody></table></body></html>`, body.String())
}

func freeCompaniesPage(world string, fcs ...professionalsdomain.FreeCompany) string {
	var body strings.Builder
	for _, fc := range fcs {
		fmt.Fprintf(&body, `
<div class='entry'>
  <a href='/lodestone/freecompany/%s/' class='entry__block'>
    <div class='entry__freecompany__inner'>
      <div class='entry__freecompany__box'>
        <p class='entry__world'>Maelstrom</p>
        <p class='entry__name'>%s</p>
        <p class='entry__world'>%s [Aether]</p>
      </div>
    </div>
    <ul class='entry__freecompany__fc-data clearix'>
      <li class='entry__freecompany__fc-member'>35</li>
    </ul>
  </a>
</div>`, fc.ID, fc.Name, world)
	}
	return fmt.Sprintf(`<html><body><div>%s</div></body></html>`, body.String())
}

func fcRankingPage(rows ...professionalsdomain.FreeCompanyRanking) string {
	var body strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&body, `
<tr data-href='/lodestone/freecompany/%s/' class='clickable'>
  <td class="ranking-character__number ranking-character__up">%d</td>
  <td class='ranking-character__info ranking-character__info-freecompany'>
    <h4>%s</h4>
  </td>
  <td class='ranking-character__value'>%s</td>
</tr>`, r.ID, r.Rank, r.Name, formatThousands(r.Seals))
	}
	return fmt.Sprintf(`<html><body>
<table class="ranking-character ranking-character__freecompany js--ranking" cellpadding="0" cellspacing="0">
  <tbody>%s</tbody>
</table></body></html>`, body.String())
}

func formatThousands(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

type fakeResponse struct {
	status int
	body   string
}

// fakeLodestone serves canned pages keyed by path and raw query.
type fakeLodestone struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	hits      map[string]int
	server    *httptest.Server
}

func newFakeLodestone(t *testing.T) *fakeLodestone {
	t.Helper()
	f := &fakeLodestone{
		responses: make(map[string]fakeResponse),
		hits:      make(map[string]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLodestone) register(path, rawQuery string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key(path, rawQuery)] = fakeResponse{status: status, body: body}
}

func (f *fakeLodestone) requests(path, rawQuery string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key(path, rawQuery)]
}

func (f *fakeLodestone) serve(w http.ResponseWriter, r *http.Request) {
	k := key(r.URL.Path, r.URL.Query().Encode())

	f.mu.Lock()
	f.hits[k]++
	resp, ok := f.responses[k]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

func (f *fakeLodestone) client(cfg Config, metrics *Metrics) *Client {
	cfg.BaseURL = f.server.URL
	cfg.HTTPClient = f.server.Client()
	return NewClient(cfg, nil, metrics, nil)
}
