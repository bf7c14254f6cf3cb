package schema

import "time"

// Corpus is a fixture of analysed documents that can be loaded into a document store.
type Corpus struct {
	Principles []string         `yaml:"principles"`
	Roles      []CorpusRole     `yaml:"roles"`
	People     []CorpusPerson   `yaml:"people"`
	Documents  []CorpusDocument `yaml:"documents"`
}

// CorpusRole is a source role and its indication.
type CorpusRole struct {
	Name       string         `yaml:"name"`
	Indication RoleIndication `yaml:"indication"`
}

// CorpusPerson is a known source person.
type CorpusPerson struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Gender      string `yaml:"gender,omitempty"`
	Race        string `yaml:"race,omitempty"`
	Affiliation string `yaml:"affiliation,omitempty"`
}

// CorpusDocument is one analysed document with its tagged facts.
type CorpusDocument struct {
	ID          int64     `yaml:"id"`
	Medium      string    `yaml:"medium"`
	Title       string    `yaml:"title"`
	Summary     string    `yaml:"summary,omitempty"`
	PublishedAt time.Time `yaml:"published_at"`
	Country     string    `yaml:"country,omitempty"`
	Nature      string    `yaml:"nature,omitempty"`
	Type        string    `yaml:"type,omitempty"`
	Topic       string    `yaml:"topic,omitempty"`
	TopicGroup  string    `yaml:"topic_group,omitempty"`
	Origin      string    `yaml:"origin,omitempty"`

	Quality []QualityKey `yaml:"quality,omitempty"`

	AbuseVictim bool `yaml:"abuse_victim,omitempty"`
	AbuseSource bool `yaml:"abuse_source,omitempty"`

	PrincipleSupported string `yaml:"principle_supported,omitempty"`
	PrincipleViolated  string `yaml:"principle_violated,omitempty"`

	Taxonomies []string          `yaml:"taxonomies,omitempty"`
	Provinces  []string          `yaml:"provinces,omitempty"`
	Sources    []CorpusSource    `yaml:"sources,omitempty"`
	Utterances []CorpusUtterance `yaml:"utterances,omitempty"`
}

// CorpusSource is a source mentioned in a document.
type CorpusSource struct {
	PersonID    int64  `yaml:"person_id,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Quoted      bool   `yaml:"quoted,omitempty"`
	Gender      string `yaml:"gender,omitempty"`
	Race        string `yaml:"race,omitempty"`
	Age         string `yaml:"age,omitempty"`
	Role        string `yaml:"role,omitempty"`
	Affiliation string `yaml:"affiliation,omitempty"`
}

// CorpusUtterance is a quote by a person in a document.
type CorpusUtterance struct {
	PersonID int64  `yaml:"person_id"`
	Quote    string `yaml:"quote"`
}
