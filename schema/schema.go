// Package schema has models and constants shared by all parts of mediascore.
package schema

import "time"

// Outlet is a media outlet being compared. Its name is the stable sort key.
type Outlet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CountRow is one cell of a grouped count: (outlet, category) -> count.
// Category is empty for counts grouped by outlet only.
type CountRow struct {
	Outlet   string
	Category string
	Count    float64
}

// OutletDocCount is the number of sources in one document of an outlet.
type OutletDocCount struct {
	Outlet     string
	DocumentID int64
	Sources    int
}

// DocumentFilter selects the documents a build or report runs over.
// Zero values mean "no restriction".
type DocumentFilter struct {
	Start    time.Time
	End      time.Time
	Country  string
	Nature   string
	Media    []string
	PersonID int64
	Query    string
}

// DocumentQuery describes a grouped count over documents.
type DocumentQuery struct {
	GroupBy DocumentDimension // dimension to group by besides the outlet
	In      []string          // restrict the dimension to these labels
	Quality QualityKey        // only documents with this quality flag set

	TopicGroup string // only documents whose topic is in this group

	// AbusedChild restricts to documents with an abused child who is also a source.
	AbusedChild bool
}

// SourceQuery describes a grouped count over document sources.
type SourceQuery struct {
	GroupBy    SourceDimension
	In         []string
	SourceType string
	QuotedOnly bool
	Indication RoleIndication
	Gender     string

	// DistinctDocuments counts documents instead of sources.
	DistinctDocuments bool
}

// Person is a source person known to the document store.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender,omitempty"`
	Race        string `json:"race,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// SourceMention is one appearance of a person as a source.
type SourceMention struct {
	PersonID    int64
	PublishedAt time.Time
}

// Utterance is a quote attributed to a person in a document.
type Utterance struct {
	ID         int64  `json:"id"`
	PersonID   int64  `json:"person_id"`
	DocumentID int64  `json:"document_id"`
	Outlet     string `json:"outlet"`
	Quote      string `json:"quote"`
}

// PersonSourceCount is a person with how often they were used as a source.
type PersonSourceCount struct {
	Person
	Sources int `json:"sources"`
}
