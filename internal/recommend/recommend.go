// Package recommend maps a student's weak subjects to static learning
// resources.
package recommend

import (
	"slices"

	"github.com/edusense/edusense/internal/roster"
)

// DefaultThreshold is the score under which a core subject gets a quick link.
const DefaultThreshold = 70.0

type Website struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Video struct {
	Name     string `json:"name"`
	EmbedURL string `json:"embed_url"`
}

type Reading struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resources are the recommended materials for one subject.
type Resources struct {
	Websites []Website `json:"websites"`
	Videos   []Video   `json:"videos"`
	Reading  []Reading `json:"reading"`
}

// Recommendation pairs a subject with its resources.
type Recommendation struct {
	Subject   roster.Subject `json:"subject"`
	Resources Resources      `json:"resources"`
}

// Link is a single subject link.
type Link struct {
	Subject roster.Subject `json:"subject"`
	URL     string         `json:"url"`
}

// For returns the resources for subject.
func For(subject roster.Subject) (Resources, bool) {
	res, ok := catalogue[subject]
	if !ok {
		return Resources{}, false
	}
	return Resources{
		Websites: slices.Clone(res.Websites),
		Videos:   slices.Clone(res.Videos),
		Reading:  slices.Clone(res.Reading),
	}, true
}

// ForRecord recommends resources for the weakest subject of rec. A record
// with no scores gets no recommendation.
func ForRecord(rec roster.StudentRecord) (Recommendation, bool) {
	weakest, _, ok := rec.Weakest()
	if !ok {
		return Recommendation{}, false
	}
	res, ok := For(weakest)
	if !ok {
		return Recommendation{}, false
	}
	return Recommendation{Subject: weakest, Resources: res}, true
}

// BelowThreshold lists a primary link for every core subject scoring
// under threshold, in subject order.
func BelowThreshold(rec roster.StudentRecord, threshold float64) []Link {
	links := []Link{}
	for _, s := range roster.CoreSubjects {
		if rec.Score(s) < threshold {
			links = append(links, Link{Subject: s, URL: quickLinks[s]})
		}
	}
	return links
}
