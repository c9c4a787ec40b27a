package videolink

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-fitness-coach/internal/coach"

	"github.com/PuerkitoBio/goquery"
)

// Previewer resolves exercise demonstration links to a human-readable page
// title so render surfaces can label them.
type Previewer struct {
	httpClient *http.Client
}

// NewPreviewer creates a Previewer with a bounded request timeout.
func NewPreviewer() *Previewer {
	return &Previewer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Title fetches the URL and extracts its title, preferring og:title.
func (p *Previewer) Title(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch link: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch link: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && title != "" {
		return title, nil
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("page has no title")
	}
	return title, nil
}

// Annotate resolves titles for up to limit demonstration links in the plan.
// Failures are skipped; a missing preview never blocks rendering.
func (p *Previewer) Annotate(ctx context.Context, plan *coach.FitnessPlan, limit int) map[string]string {
	titles := make(map[string]string)
	for _, day := range plan.WeeklyWorkoutPlan {
		for _, exercise := range day.Exercises {
			if len(titles) >= limit {
				return titles
			}
			if exercise.VideoURL == "" {
				continue
			}
			if _, seen := titles[exercise.VideoURL]; seen {
				continue
			}
			title, err := p.Title(ctx, exercise.VideoURL)
			if err != nil {
				continue
			}
			titles[exercise.VideoURL] = title
		}
	}
	return titles
}
