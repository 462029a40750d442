// Package research retrieves supporting literature from the NCBI
// E-utilities API so generated questions can carry evidence citations.
package research

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	esearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

	// RelevanceThreshold is the minimum score an article needs to be
	// cited. Articles scoring below it are discarded.
	RelevanceThreshold = 0.55

	maxPMIDs          = 15
	maxAbstractLength = 2000
)

// Article is a PubMed article with a computed relevance score.
type Article struct {
	PMID           string  `json:"pmid"`
	Title          string  `json:"title"`
	Abstract       string  `json:"abstract"`
	Authors        string  `json:"authors"`
	Journal        string  `json:"journal"`
	PubDate        string  `json:"pub_date"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SearchTerms pairs the queries sent to PubMed with the terms used to
// score returned articles for relevance.
type SearchTerms struct {
	Search []string
	Match  []string
}

// topicTerms holds curated queries for common clinical topics. Topics
// not listed here fall back to generic nursing queries.
var topicTerms = map[string]SearchTerms{
	"sepsis": {
		Search: []string{"sepsis nursing", "sepsis management", "septic shock treatment"},
		Match:  []string{"sepsis", "septic", "septicemia", "severe sepsis", "septic shock"},
	},
	"pneumonia": {
		Search: []string{"pneumonia nursing care", "pneumonia treatment", "community acquired pneumonia"},
		Match:  []string{"pneumonia", "respiratory infection", "lung infection", "cap", "hospital acquired pneumonia"},
	},
	"heart failure": {
		Search: []string{"heart failure nursing", "heart failure management", "congestive heart failure"},
		Match:  []string{"heart failure", "cardiac failure", "chf", "congestive", "hfref", "hfpef"},
	},
	"diabetes": {
		Search: []string{"diabetes nursing care", "diabetes management", "diabetic patient care"},
		Match:  []string{"diabetes", "diabetic", "hyperglycemia", "hypoglycemia", "glucose", "insulin"},
	},
	"hypertension": {
		Search: []string{"hypertension nursing", "hypertension management", "blood pressure control"},
		Match:  []string{"hypertension", "hypertensive", "high blood pressure", "blood pressure"},
	},
	"stroke": {
		Search: []string{"stroke nursing care", "acute stroke management", "cerebrovascular accident"},
		Match:  []string{"stroke", "cva", "cerebrovascular", "ischemic stroke", "hemorrhagic stroke", "tpa"},
	},
	"copd": {
		Search: []string{"copd nursing", "copd exacerbation", "chronic obstructive pulmonary"},
		Match:  []string{"copd", "chronic obstructive", "emphysema", "chronic bronchitis"},
	},
	"myocardial infarction": {
		Search: []string{"myocardial infarction nursing", "acute mi treatment", "stemi management"},
		Match:  []string{"myocardial infarction", "mi", "heart attack", "stemi", "nstemi", "acute coronary"},
	},
	"asthma": {
		Search: []string{"asthma nursing care", "asthma management", "asthma exacerbation"},
		Match:  []string{"asthma", "asthmatic", "bronchospasm", "wheezing", "inhaler"},
	},
	"renal failure": {
		Search: []string{"acute kidney injury nursing", "renal failure management", "dialysis nursing"},
		Match:  []string{"renal failure", "kidney failure", "aki", "ckd", "dialysis", "creatinine"},
	},
}

// GetSearchTerms resolves the curated term set for a topic, matching in
// either direction so "sepsis management" still hits "sepsis". Unknown
// topics get generic nursing queries built from the topic itself.
func GetSearchTerms(topic string) SearchTerms {
	topicLower := strings.ToLower(strings.TrimSpace(topic))

	for key, terms := range topicTerms {
		if strings.Contains(topicLower, key) || strings.Contains(key, topicLower) {
			return terms
		}
	}

	match := append([]string{topicLower}, strings.Fields(topicLower)...)
	return SearchTerms{
		Search: []string{
			topicLower + " nursing",
			topicLower + " treatment",
			topicLower + " management",
		},
		Match: match,
	}
}

// CalculateRelevance scores an article against the match terms. Title
// hits weigh 0.25 each, abstract hits 0.15, capped at 1.0.
func CalculateRelevance(title, abstract string, matchTerms []string) float64 {
	titleLower := strings.ToLower(title)
	abstractLower := strings.ToLower(abstract)

	score := 0.0
	for _, term := range matchTerms {
		if strings.Contains(titleLower, term) {
			score += 0.25
		}
		if strings.Contains(abstractLower, term) {
			score += 0.15
		}
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// Client talks to the NCBI E-utilities endpoints.
type Client struct {
	httpClient *http.Client
	searchURL  string
	fetchURL   string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  esearchURL,
		fetchURL:   efetchURL,
	}
}

// NewClientWithBase points the client at an alternate E-utilities host.
func NewClientWithBase(httpClient *http.Client, searchURL, fetchURL string) *Client {
	return &Client{httpClient: httpClient, searchURL: searchURL, fetchURL: fetchURL}
}

type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search runs each query through esearch and returns the deduplicated
// PMID set, capped at fifteen ids. Individual query failures are logged
// and skipped.
func (c *Client) Search(ctx context.Context, queries []string, maxPerQuery int) []string {
	seen := make(map[string]bool)
	var pmids []string

	for _, query := range queries {
		params := url.Values{}
		params.Set("db", "pubmed")
		params.Set("term", query+" AND English[Language]")
		params.Set("retmax", fmt.Sprintf("%d", maxPerQuery))
		params.Set("retmode", "json")
		params.Set("sort", "relevance")

		body, err := c.get(ctx, c.searchURL, params)
		if err != nil {
			log.Printf("WARN: [research] pubmed search %q: %v", query, err)
			continue
		}

		var resp esearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			log.Printf("WARN: [research] pubmed search %q: decode: %v", query, err)
			continue
		}

		for _, id := range resp.Result.IDList {
			if !seen[id] {
				seen[id] = true
				pmids = append(pmids, id)
			}
		}
	}

	if len(pmids) > maxPMIDs {
		pmids = pmids[:maxPMIDs]
	}
	return pmids
}

// flatText collects the character data of an element and all of its
// children. Article titles can contain inline markup like <i>.
type flatText string

func (f *flatText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name == start.Name {
				*f = flatText(sb.String())
				return nil
			}
		}
	}
}

type efetchResponse struct {
	Articles []pubmedArticleXML `xml:"PubmedArticle"`
}

type pubmedArticleXML struct {
	PMID      string      `xml:"MedlineCitation>PMID"`
	Title     flatText    `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstracts []flatText  `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Authors   []authorXML `xml:"MedlineCitation>Article>AuthorList>Author"`
	Journal   string      `xml:"MedlineCitation>Article>Journal>Title"`
	Year      string      `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
}

type authorXML struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

// FetchArticles pulls full records for the given pmids. Articles with
// no title or an abstract under 100 characters are dropped since they
// cannot be scored meaningfully.
func (c *Client) FetchArticles(ctx context.Context, pmids []string) ([]Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, c.fetchURL, params)
	if err != nil {
		return nil, fmt.Errorf("pubmed fetch: %w", err)
	}

	var resp efetchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("pubmed fetch: decode: %w", err)
	}

	var articles []Article
	for _, raw := range resp.Articles {
		title := strings.TrimSpace(string(raw.Title))
		abstract := joinAbstracts(raw.Abstracts)
		if title == "" || len(abstract) < 100 {
			continue
		}
		if len(abstract) > maxAbstractLength {
			abstract = abstract[:maxAbstractLength]
		}

		journal := raw.Journal
		if journal == "" {
			journal = "Unknown"
		}
		pubDate := raw.Year
		if pubDate == "" {
			pubDate = "Unknown"
		}

		articles = append(articles, Article{
			PMID:     raw.PMID,
			Title:    title,
			Abstract: abstract,
			Authors:  formatAuthors(raw.Authors),
			Journal:  journal,
			PubDate:  pubDate,
		})
	}
	return articles, nil
}

// GetRelevantCitations searches, fetches, scores, and returns the top
// articles above the relevance threshold, best first.
func (c *Client) GetRelevantCitations(ctx context.Context, topic string, maxCitations int) ([]Article, error) {
	terms := GetSearchTerms(topic)
	pmids := c.Search(ctx, terms.Search, 5)

	articles, err := c.FetchArticles(ctx, pmids)
	if err != nil {
		return nil, err
	}

	var relevant []Article
	for _, article := range articles {
		score := CalculateRelevance(article.Title, article.Abstract, terms.Match)
		if score >= RelevanceThreshold {
			article.RelevanceScore = score
			relevant = append(relevant, article)
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].RelevanceScore > relevant[j].RelevanceScore
	})
	if len(relevant) > maxCitations {
		relevant = relevant[:maxCitations]
	}
	return relevant, nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func joinAbstracts(parts []flatText) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, string(p))
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// formatAuthors keeps the first four authors and appends "et al." when
// the list runs longer.
func formatAuthors(authors []authorXML) string {
	var names []string
	for i, a := range authors {
		if i == 4 {
			break
		}
		if a.LastName == "" {
			continue
		}
		if a.ForeName != "" {
			names = append(names, a.ForeName+" "+a.LastName)
		} else {
			names = append(names, a.LastName)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	joined := strings.Join(names, ", ")
	if len(authors) > 4 {
		joined += " et al."
	}
	return joined
}
