package lodestone

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"golang.org/x/net/html"
)

var (
	pageCountPattern     = regexp.MustCompile(`Page\s+\d+\s+of\s+(\d+)`)
	characterLinkPattern = regexp.MustCompile(`^/lodestone/character/([^/]+)/$`)
	freeCompanyPattern   = regexp.MustCompile(`^/lodestone/freecompany/([^/]+)/$`)
)

// --- node helpers ---

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// element matches a tag with an optional class; an empty tag matches any tag.
func element(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if tag != "" && n.Data != tag {
			return false
		}
		return class == "" || hasClass(n, class)
	}
}

// findAll returns matching descendants of root in document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// leadingText returns the first text child, ignoring nested markup.
func leadingText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return strings.TrimSpace(c.Data)
		}
	}
	return ""
}

func parseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, parseError("unable to parse Lodestone page: %v", err)
	}
	return doc, nil
}

// --- page parsers ---

func parsePageCount(doc *html.Node) (int, error) {
	pager := findFirst(doc, element("li", "btn__pager__current"))
	if pager == nil {
		return 0, parseError("unable to find page number on Free Company member page")
	}
	text := textContent(pager)
	m := pageCountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, parseError("unable to parse page number from following: %s", text)
	}
	pages, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, parseError("unable to parse page number from following: %s", text)
	}
	return pages, nil
}

func parseMembers(doc *html.Node) ([]professionalsdomain.MembershipRecord, error) {
	var members []professionalsdomain.MembershipRecord

	for _, entry := range findAll(doc, element("li", "entry")) {
		link := findFirst(entry, element("a", "entry__bg"))
		if link == nil {
			return nil, parseError("member entry has no character link")
		}
		href, _ := attr(link, "href")
		m := characterLinkPattern.FindStringSubmatch(href)
		if m == nil {
			return nil, parseError("unable to parse character lodestone ID from following: %s", href)
		}

		nameTag := findFirst(entry, element("p", "entry__name"))
		if nameTag == nil {
			return nil, parseError("member entry %s has no name", m[1])
		}

		var tier string
		if info := findFirst(entry, element("ul", "entry__freecompany__info")); info != nil {
			if li := findFirst(info, element("li", "")); li != nil {
				if span := findFirst(li, element("span", "")); span != nil {
					tier = textContent(span)
				}
			}
		}

		members = append(members, professionalsdomain.MembershipRecord{
			IdentityToken: m[1],
			Name:          textContent(nameTag),
			Tier:          tier,
		})
	}

	return members, nil
}

// rankingRow holds the fields shared by character and Free Company ranking tables.
type rankingRow struct {
	id    string
	name  string
	rank  int
	value int64
}

func parseRankingRow(tr *html.Node) (rankingRow, error) {
	href, ok := attr(tr, "data-href")
	if !ok {
		return rankingRow{}, parseError("ranking row has no data-href")
	}
	parts := strings.Split(href, "/")
	if len(parts) < 4 || parts[3] == "" {
		return rankingRow{}, parseError("unable to parse lodestone ID from following: %s", href)
	}

	h4 := findFirst(tr, element("h4", ""))
	if h4 == nil {
		return rankingRow{}, parseError("ranking row %s has no name", parts[3])
	}

	numberTag := findFirst(tr, element("", "ranking-character__number"))
	if numberTag == nil {
		return rankingRow{}, parseError("ranking row %s has no rank", parts[3])
	}
	rank, err := strconv.Atoi(textContent(numberTag))
	if err != nil {
		return rankingRow{}, parseError("unable to parse rank for %s: %q", parts[3], textContent(numberTag))
	}

	valueTag := findFirst(tr, element("td", "ranking-character__value"))
	if valueTag == nil {
		return rankingRow{}, parseError("ranking row %s has no seal count", parts[3])
	}
	value, err := strconv.ParseInt(strings.ReplaceAll(textContent(valueTag), ",", ""), 10, 64)
	if err != nil {
		return rankingRow{}, parseError("unable to parse seals for %s: %q", parts[3], textContent(valueTag))
	}

	return rankingRow{id: parts[3], name: leadingText(h4), rank: rank, value: value}, nil
}

func parseGrandCompanyRankings(doc *html.Node) ([]professionalsdomain.LeaderboardRecord, error) {
	var records []professionalsdomain.LeaderboardRecord

	for _, body := range findAll(doc, element("tbody", "")) {
		for _, tr := range findAll(body, element("tr", "")) {
			row, err := parseRankingRow(tr)
			if err != nil {
				return nil, err
			}
			records = append(records, professionalsdomain.LeaderboardRecord{
				IdentityToken: row.id,
				Name:          row.name,
				Rank:          row.rank,
				Score:         row.value,
			})
		}
	}

	return records, nil
}

func parseFreeCompanyRankings(doc *html.Node) ([]professionalsdomain.FreeCompanyRanking, error) {
	table := findFirst(doc, element("table", "ranking-character"))
	if table == nil {
		return nil, parseError("unable to find Free Company ranking table")
	}

	var rankings []professionalsdomain.FreeCompanyRanking
	for _, tr := range findAll(table, element("tr", "")) {
		row, err := parseRankingRow(tr)
		if err != nil {
			return nil, err
		}
		rankings = append(rankings, professionalsdomain.FreeCompanyRanking{
			ID:    row.id,
			Name:  row.name,
			Rank:  row.rank,
			Seals: row.value,
		})
	}
	return rankings, nil
}

func parseFreeCompanies(doc *html.Node) ([]professionalsdomain.FreeCompany, error) {
	var companies []professionalsdomain.FreeCompany

	for _, entry := range findAll(doc, element("div", "entry")) {
		link := findFirst(entry, element("a", "entry__block"))
		if link == nil {
			return nil, parseError("Free Company entry has no link")
		}
		href, _ := attr(link, "href")
		m := freeCompanyPattern.FindStringSubmatch(href)
		if m == nil {
			return nil, parseError("unable to parse Free Company lodestone ID from following: %s", href)
		}

		nameTag := findFirst(entry, element("p", "entry__name"))
		if nameTag == nil {
			return nil, parseError("Free Company entry %s has no name", m[1])
		}

		companies = append(companies, professionalsdomain.FreeCompany{ID: m[1], Name: textContent(nameTag)})
	}

	return companies, nil
}
