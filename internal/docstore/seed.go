package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"gopkg.in/yaml.v3"
)

// LoadCorpus reads a YAML corpus fixture from disk.
func LoadCorpus(path string) (schema.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Corpus{}, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return ParseCorpus(data)
}

// ParseCorpus decodes a YAML corpus fixture.
func ParseCorpus(data []byte) (schema.Corpus, error) {
	var corpus schema.Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return schema.Corpus{}, fmt.Errorf("failed to parse corpus: %w", err)
	}
	return corpus, nil
}

// Seed loads a corpus fixture into the store in a single transaction.
// Vocabulary rows that already exist are reused; documents and people must be new.
func (ds *DocumentStoreImpl) Seed(ctx context.Context, corpus schema.Corpus) error {
	people := make(map[int64]schema.CorpusPerson, len(corpus.People))
	for _, p := range corpus.People {
		people[p.ID] = p
	}
	for _, doc := range corpus.Documents {
		if doc.Medium == "" {
			return fmt.Errorf("document %d has no medium", doc.ID)
		}
		for _, u := range doc.Utterances {
			if _, ok := people[u.PersonID]; !ok {
				return fmt.Errorf("document %d quotes unknown person %d", doc.ID, u.PersonID)
			}
		}
		for _, s := range doc.Sources {
			if _, ok := people[s.PersonID]; s.PersonID != 0 && !ok {
				return fmt.Errorf("document %d cites unknown person %d", doc.ID, s.PersonID)
			}
		}
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	if err := ds.seedTx(ctx, tx, corpus, people); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func (ds *DocumentStoreImpl) seedTx(ctx context.Context, tx *sql.Tx, corpus schema.Corpus, people map[int64]schema.CorpusPerson) error {
	principles := slices.Clone(corpus.Principles)
	for _, doc := range corpus.Documents {
		for _, name := range []string{doc.PrincipleSupported, doc.PrincipleViolated} {
			if name != "" {
				principles = append(principles, name)
			}
		}
	}
	for _, name := range principles {
		if _, err := ds.ensureRow(ctx, tx, principlesTable, []string{"name"}, name); err != nil {
			return fmt.Errorf("failed to seed principle %q: %w", name, err)
		}
	}

	for _, role := range corpus.Roles {
		if _, err := ds.ensureRow(ctx, tx, rolesTable, []string{"name", "indication"}, role.Name, string(role.Indication)); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.Name, err)
		}
	}

	for _, p := range corpus.People {
		query := fmt.Sprintf("INSERT INTO %s (id, name, gender, race, affiliation) VALUES (?, ?, ?, ?, ?)", ds.table(peopleTable))
		if _, err := tx.ExecContext(ctx, ds.rebind(query), p.ID, p.Name, nullable(p.Gender), nullable(p.Race), nullable(p.Affiliation)); err != nil {
			return fmt.Errorf("failed to seed person %d: %w", p.ID, err)
		}
	}

	media := make(map[string]int64)
	for _, doc := range corpus.Documents {
		mediumID, ok := media[doc.Medium]
		if !ok {
			id, err := ds.ensureRow(ctx, tx, mediaTable, []string{"name", "country"}, doc.Medium, nullable(doc.Country))
			if err != nil {
				return fmt.Errorf("failed to seed medium %q: %w", doc.Medium, err)
			}
			media[doc.Medium] = id
			mediumID = id
		}
		if err := ds.seedDocument(ctx, tx, mediumID, doc, people); err != nil {
			return fmt.Errorf("failed to seed document %d: %w", doc.ID, err)
		}
	}
	return nil
}

func (ds *DocumentStoreImpl) seedDocument(ctx context.Context, tx *sql.Tx, mediumID int64, doc schema.CorpusDocument, people map[int64]schema.CorpusPerson) error {
	quality := make(map[schema.QualityKey]bool, len(doc.Quality))
	for _, key := range doc.Quality {
		if _, err := qualityColumn(key); err != nil {
			return err
		}
		quality[key] = true
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, medium_id, title, summary, published_at, country, nature, type, topic, topic_group, origin,
		quality_self_help, quality_consequences, quality_solutions, quality_policies, quality_causes, quality_basic_context,
		abuse_victim, abuse_source, principle_supported, principle_violated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, ds.table(documentsTable))
	_, err := tx.ExecContext(ctx, ds.rebind(query),
		doc.ID, mediumID, doc.Title, nullable(doc.Summary), contract.FormatTime(doc.PublishedAt, ds.backend),
		nullable(doc.Country), nullable(doc.Nature), nullable(doc.Type), nullable(doc.Topic), nullable(doc.TopicGroup), nullable(doc.Origin),
		quality[schema.QualitySelfHelp], quality[schema.QualityConsequences], quality[schema.QualitySolutions],
		quality[schema.QualityPolicies], quality[schema.QualityCauses], quality[schema.QualityBasicContext],
		doc.AbuseVictim, doc.AbuseSource, nullable(doc.PrincipleSupported), nullable(doc.PrincipleViolated))
	if err != nil {
		return err
	}

	for _, s := range doc.Sources {
		s = inheritPerson(s, people)
		query := fmt.Sprintf(`INSERT INTO %s (document_id, person_id, name, source_type, quoted, gender, race, age, role, affiliation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, ds.table(sourcesTable))
		var personID any
		if s.PersonID != 0 {
			personID = s.PersonID
		}
		if _, err := tx.ExecContext(ctx, ds.rebind(query), doc.ID, personID, nullable(s.Name), s.Type, s.Quoted,
			nullable(s.Gender), nullable(s.Race), nullable(s.Age), nullable(s.Role), nullable(s.Affiliation)); err != nil {
			return fmt.Errorf("source: %w", err)
		}
	}

	for _, name := range dedupe(doc.Taxonomies) {
		query := fmt.Sprintf("INSERT INTO %s (document_id, name) VALUES (?, ?)", ds.table(taxonomiesTable))
		if _, err := tx.ExecContext(ctx, ds.rebind(query), doc.ID, name); err != nil {
			return fmt.Errorf("taxonomy: %w", err)
		}
	}
	for _, province := range dedupe(doc.Provinces) {
		query := fmt.Sprintf("INSERT INTO %s (document_id, province) VALUES (?, ?)", ds.table(placesTable))
		if _, err := tx.ExecContext(ctx, ds.rebind(query), doc.ID, province); err != nil {
			return fmt.Errorf("place: %w", err)
		}
	}
	for _, u := range doc.Utterances {
		query := fmt.Sprintf("INSERT INTO %s (document_id, person_id, quote) VALUES (?, ?, ?)", ds.table(utterancesTable))
		if _, err := tx.ExecContext(ctx, ds.rebind(query), doc.ID, u.PersonID, u.Quote); err != nil {
			return fmt.Errorf("utterance: %w", err)
		}
	}
	return nil
}

// ensureRow returns the id of the row whose first column equals values[0],
// inserting the row when it does not exist yet.
func (ds *DocumentStoreImpl) ensureRow(ctx context.Context, tx *sql.Tx, table string, columns []string, values ...any) (int64, error) {
	if err := validateColumns(table, columns); err != nil {
		return 0, err
	}

	var id int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ?", ds.table(table), columns[0])
	err := tx.QueryRowContext(ctx, ds.rebind(query), values[0]).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", ds.table(table), joinColumns(columns), placeholdersFor(columns))
	if ds.backend == schema.PostgreSQLBackend {
		err := tx.QueryRowContext(ctx, ds.rebind(insert+" RETURNING id"), values...).Scan(&id)
		return id, err
	}
	res, err := tx.ExecContext(ctx, insert, values...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// nullable maps empty strings to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// inheritPerson fills blank source attributes from the cited person.
func inheritPerson(s schema.CorpusSource, people map[int64]schema.CorpusPerson) schema.CorpusSource {
	if s.Type == "" {
		s.Type = schema.PersonSource
	}
	p, ok := people[s.PersonID]
	if !ok {
		return s
	}
	if s.Name == "" {
		s.Name = p.Name
	}
	if s.Gender == "" {
		s.Gender = p.Gender
	}
	if s.Race == "" {
		s.Race = p.Race
	}
	if s.Affiliation == "" {
		s.Affiliation = p.Affiliation
	}
	return s
}

func dedupe(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
