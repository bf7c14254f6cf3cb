package docstore

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
)

// documentColumn maps a document dimension to its SQL expression and the join it needs.
func documentColumn(dim schema.DocumentDimension) (expr, join string, err error) {
	switch dim {
	case schema.NoDocumentDimension:
		return "", "", nil
	case schema.DocTopic:
		return "d.topic", "", nil
	case schema.DocTopicGroup:
		return "d.topic_group", "", nil
	case schema.DocOrigin:
		return "d.origin", "", nil
	case schema.DocType:
		return "d.type", "", nil
	case schema.DocPrincipleSupport:
		return "d.principle_supported", "", nil
	case schema.DocPrincipleViolated:
		return "d.principle_violated", "", nil
	case schema.DocTaxonomy:
		return "t.name", " JOIN " + taxonomiesTable + " t ON t.document_id = d.id", nil
	case schema.DocProvince:
		return "p.province", " JOIN " + placesTable + " p ON p.document_id = d.id", nil
	default:
		return "", "", fmt.Errorf("unsupported document dimension: %q", dim)
	}
}

// sourceColumn maps a source dimension to its SQL expression.
func sourceColumn(dim schema.SourceDimension) (string, error) {
	switch dim {
	case schema.NoSourceDimension:
		return "", nil
	case schema.SourceGender:
		return "s.gender", nil
	case schema.SourceRace:
		return "s.race", nil
	case schema.SourceAge:
		return "s.age", nil
	case schema.SourceRole:
		return "s.role", nil
	case schema.SourceAffiliation:
		return "s.affiliation", nil
	case schema.SourceOrigin:
		return "d.origin", nil
	default:
		return "", fmt.Errorf("unsupported source dimension: %q", dim)
	}
}

// qualityColumn maps a quality flag to its boolean column.
func qualityColumn(key schema.QualityKey) (string, error) {
	for _, qi := range schema.QualityIndicators {
		if qi.Key == key {
			return "d.quality_" + string(key), nil
		}
	}
	return "", fmt.Errorf("unsupported quality indicator: %q", key)
}

// chunkIDs splits ids into consecutive chunks of at most size ids.
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = defaultChunkSize
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// idArgs converts ids to query arguments.
func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// stringArgs converts strings to query arguments.
func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

// countQuery is a grouped count with its filter clauses, minus the id restriction.
type countQuery struct {
	from     string // FROM and JOIN clauses
	idColumn string
	category string // category expression; empty when grouped by outlet only
	count    string // aggregate expression
	where    []string
	args     []any
}

// CountDocuments counts documents per outlet, and per category when q.GroupBy is set.
func (ds *DocumentStoreImpl) CountDocuments(ctx context.Context, ids []int64, q schema.DocumentQuery) ([]schema.CountRow, error) {
	category, join, err := documentColumn(q.GroupBy)
	if err != nil {
		return nil, err
	}

	cq := countQuery{
		from:     ds.table(documentsTable) + " d JOIN " + ds.table(mediaTable) + " m ON m.id = d.medium_id" + join,
		idColumn: "d.id",
		category: category,
		count:    "COUNT(DISTINCT d.id)",
	}
	if q.Quality != "" {
		col, err := qualityColumn(q.Quality)
		if err != nil {
			return nil, err
		}
		cq.where = append(cq.where, col+" = TRUE")
	}
	if q.TopicGroup != "" {
		cq.where = append(cq.where, "d.topic_group = ?")
		cq.args = append(cq.args, q.TopicGroup)
	}
	if q.AbusedChild {
		cq.where = append(cq.where, "d.abuse_victim = TRUE", "d.abuse_source = TRUE")
	}
	if err := cq.restrict(q.In); err != nil {
		return nil, err
	}
	return ds.groupedCounts(ctx, ids, cq)
}

// CountSources counts document sources per outlet, and per category when q.GroupBy is set.
func (ds *DocumentStoreImpl) CountSources(ctx context.Context, ids []int64, q schema.SourceQuery) ([]schema.CountRow, error) {
	category, err := sourceColumn(q.GroupBy)
	if err != nil {
		return nil, err
	}

	cq := countQuery{
		from: ds.table(sourcesTable) + " s JOIN " + ds.table(documentsTable) + " d ON d.id = s.document_id" +
			" JOIN " + ds.table(mediaTable) + " m ON m.id = d.medium_id",
		idColumn: "d.id",
		category: category,
		count:    "COUNT(s.id)",
	}
	if q.DistinctDocuments {
		cq.count = "COUNT(DISTINCT d.id)"
	}
	if q.Indication != "" {
		cq.from += " JOIN " + ds.table(rolesTable) + " r ON r.name = s.role"
		cq.where = append(cq.where, "r.indication = ?")
		cq.args = append(cq.args, string(q.Indication))
	}
	if q.SourceType != "" {
		cq.where = append(cq.where, "s.source_type = ?")
		cq.args = append(cq.args, q.SourceType)
	}
	if q.QuotedOnly {
		cq.where = append(cq.where, "s.quoted = TRUE")
	}
	if q.Gender != "" {
		cq.where = append(cq.where, "s.gender = ?")
		cq.args = append(cq.args, q.Gender)
	}
	if err := cq.restrict(q.In); err != nil {
		return nil, err
	}
	return ds.groupedCounts(ctx, ids, cq)
}

// restrict limits the category to the given labels.
func (cq *countQuery) restrict(in []string) error {
	if len(in) == 0 {
		return nil
	}
	if cq.category == "" {
		return fmt.Errorf("a category restriction needs a grouping dimension")
	}
	cq.where = append(cq.where, cq.category+" IN ("+contract.Placeholders(len(in))+")")
	cq.args = append(cq.args, stringArgs(in)...)
	return nil
}

// groupedCounts runs the count over every id chunk and sums the partial counts.
// Chunks partition the id set, so the sums are exact.
func (ds *DocumentStoreImpl) groupedCounts(ctx context.Context, ids []int64, cq countQuery) ([]schema.CountRow, error) {
	type key struct{ outlet, category string }
	totals := make(map[key]float64)

	selectCols := "m.name"
	groupBy := "m.name"
	if cq.category != "" {
		selectCols += ", " + cq.category
		groupBy += ", " + cq.category
	}

	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		clauses := append([]string{cq.idColumn + " IN (" + contract.Placeholders(len(chunk)) + ")"}, cq.where...)
		query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s GROUP BY %s",
			selectCols, cq.count, cq.from, strings.Join(clauses, " AND "), groupBy)
		args := append(idArgs(chunk), cq.args...)

		rows, err := ds.db.QueryContext(ctx, ds.rebind(query), args...)
		if err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
		for rows.Next() {
			var outlet string
			var category sql.NullString
			var count int64
			var scanErr error
			if cq.category != "" {
				scanErr = rows.Scan(&outlet, &category, &count)
			} else {
				scanErr = rows.Scan(&outlet, &count)
			}
			if scanErr != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to scan count row: %w", scanErr)
			}
			totals[key{outlet, category.String}] += float64(count)
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read count rows: %w", err)
		}
	}

	result := make([]schema.CountRow, 0, len(totals))
	for k, n := range totals {
		result = append(result, schema.CountRow{Outlet: k.outlet, Category: k.category, Count: n})
	}
	slices.SortFunc(result, func(a, b schema.CountRow) int {
		return cmp.Or(cmp.Compare(a.Outlet, b.Outlet), cmp.Compare(a.Category, b.Category))
	})
	return result, nil
}

// SourcesPerDocument returns the number of sources of every document with at least one source.
func (ds *DocumentStoreImpl) SourcesPerDocument(ctx context.Context, ids []int64, childOnly bool) ([]schema.OutletDocCount, error) {
	var result []schema.OutletDocCount
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf(`SELECT m.name, d.id, COUNT(s.id)
			FROM %s s JOIN %s d ON d.id = s.document_id JOIN %s m ON m.id = d.medium_id
			WHERE d.id IN (%s)`,
			ds.table(sourcesTable), ds.table(documentsTable), ds.table(mediaTable), contract.Placeholders(len(chunk)))
		args := idArgs(chunk)
		if childOnly {
			query += " AND s.source_type = ?"
			args = append(args, schema.ChildSource)
		}
		query += " GROUP BY m.name, d.id"

		err := ds.queryRows(ctx, query, args, func(rows *sql.Rows) error {
			var row schema.OutletDocCount
			if err := rows.Scan(&row.Outlet, &row.DocumentID, &row.Sources); err != nil {
				return err
			}
			result = append(result, row)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count sources per document: %w", err)
		}
	}
	slices.SortFunc(result, func(a, b schema.OutletDocCount) int { return cmp.Compare(a.DocumentID, b.DocumentID) })
	return result, nil
}

// queryRows runs a query and calls scan for every row.
func (ds *DocumentStoreImpl) queryRows(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := ds.db.QueryContext(ctx, ds.rebind(query), args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// DocumentIDs returns the ids of documents matching the filter, ascending.
func (ds *DocumentStoreImpl) DocumentIDs(ctx context.Context, filter schema.DocumentFilter) ([]int64, error) {
	var where []string
	var args []any

	if !filter.Start.IsZero() {
		where = append(where, "d.published_at >= ?")
		args = append(args, contract.FormatTime(filter.Start, ds.backend))
	}
	if !filter.End.IsZero() {
		where = append(where, "d.published_at <= ?")
		args = append(args, contract.FormatTime(filter.End, ds.backend))
	}
	if filter.Country != "" {
		where = append(where, "d.country = ?")
		args = append(args, filter.Country)
	}
	if filter.Nature != "" {
		where = append(where, "d.nature = ?")
		args = append(args, filter.Nature)
	}
	if len(filter.Media) > 0 {
		where = append(where, "m.name IN ("+contract.Placeholders(len(filter.Media))+")")
		args = append(args, stringArgs(filter.Media)...)
	}
	if filter.PersonID > 0 {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM %s s WHERE s.document_id = d.id AND s.person_id = ?)", ds.table(sourcesTable)))
		args = append(args, filter.PersonID)
	}
	if text := strings.TrimSpace(filter.Query); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		where = append(where, "(LOWER(d.title) LIKE ? OR LOWER(COALESCE(d.summary, '')) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf("SELECT d.id FROM %s d JOIN %s m ON m.id = d.medium_id", ds.table(documentsTable), ds.table(mediaTable))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY d.id"

	var ids []int64
	err := ds.queryRows(ctx, query, args, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	return ids, nil
}

// Outlets returns the outlets that published any of the documents, ordered by name.
func (ds *DocumentStoreImpl) Outlets(ctx context.Context, ids []int64) ([]schema.Outlet, error) {
	seen := make(map[int64]schema.Outlet)
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf("SELECT DISTINCT m.id, m.name FROM %s m JOIN %s d ON d.medium_id = m.id WHERE d.id IN (%s)",
			ds.table(mediaTable), ds.table(documentsTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			var o schema.Outlet
			if err := rows.Scan(&o.ID, &o.Name); err != nil {
				return err
			}
			seen[o.ID] = o
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list outlets: %w", err)
		}
	}

	outlets := make([]schema.Outlet, 0, len(seen))
	for _, o := range seen {
		outlets = append(outlets, o)
	}
	slices.SortFunc(outlets, func(a, b schema.Outlet) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return outlets, nil
}

// RoleNames returns the names of source roles with the given indication, sorted.
func (ds *DocumentStoreImpl) RoleNames(ctx context.Context, indication schema.RoleIndication) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s WHERE indication = ? ORDER BY name", ds.table(rolesTable))
	names, err := ds.names(ctx, query, string(indication))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s roles: %w", indication, err)
	}
	return names, nil
}

// PrincipleNames returns all principle names, sorted.
func (ds *DocumentStoreImpl) PrincipleNames(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s ORDER BY name", ds.table(principlesTable))
	names, err := ds.names(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list principles: %w", err)
	}
	return names, nil
}

func (ds *DocumentStoreImpl) names(ctx context.Context, query string, args ...any) ([]string, error) {
	var names []string
	err := ds.queryRows(ctx, query, args, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	return names, err
}

// scanPerson reads id, name, gender, race and affiliation columns.
func scanPerson(rows *sql.Rows, extra ...any) (schema.Person, error) {
	var p schema.Person
	var gender, race, affiliation sql.NullString
	dest := append([]any{&p.ID, &p.Name, &gender, &race, &affiliation}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return p, err
	}
	p.Gender, p.Race, p.Affiliation = gender.String, race.String, affiliation.String
	return p, nil
}

// SourcePeople returns every person used as a source in the documents, ordered by id.
func (ds *DocumentStoreImpl) SourcePeople(ctx context.Context, ids []int64) ([]schema.Person, error) {
	seen := make(map[int64]schema.Person)
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf(`SELECT DISTINCT p.id, p.name, p.gender, p.race, p.affiliation
			FROM %s s JOIN %s p ON p.id = s.person_id WHERE s.document_id IN (%s)`,
			ds.table(sourcesTable), ds.table(peopleTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			p, err := scanPerson(rows)
			if err != nil {
				return err
			}
			seen[p.ID] = p
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list source people: %w", err)
		}
	}

	people := make([]schema.Person, 0, len(seen))
	for _, p := range seen {
		people = append(people, p)
	}
	slices.SortFunc(people, func(a, b schema.Person) int { return cmp.Compare(a.ID, b.ID) })
	return people, nil
}

// idSet builds a lookup set of ids.
func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SourceMentions returns one entry per source appearance of the given people.
func (ds *DocumentStoreImpl) SourceMentions(ctx context.Context, ids []int64, personIDs []int64) ([]schema.SourceMention, error) {
	wanted := idSet(personIDs)
	var mentions []schema.SourceMention
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf(`SELECT s.person_id, d.published_at
			FROM %s s JOIN %s d ON d.id = s.document_id
			WHERE d.id IN (%s) AND s.person_id IS NOT NULL`,
			ds.table(sourcesTable), ds.table(documentsTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			var personID int64
			var published any
			if err := rows.Scan(&personID, &published); err != nil {
				return err
			}
			if _, ok := wanted[personID]; !ok {
				return nil
			}
			at, err := contract.ScanTime(published)
			if err != nil {
				return err
			}
			mentions = append(mentions, schema.SourceMention{PersonID: personID, PublishedAt: at})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list source mentions: %w", err)
		}
	}
	return mentions, nil
}

// UtteranceCounts returns the number of utterances per person.
func (ds *DocumentStoreImpl) UtteranceCounts(ctx context.Context, ids []int64, personIDs []int64) (map[int64]int, error) {
	wanted := idSet(personIDs)
	counts := make(map[int64]int)
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf("SELECT u.person_id, COUNT(u.id) FROM %s u WHERE u.document_id IN (%s) GROUP BY u.person_id",
			ds.table(utterancesTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			var personID int64
			var n int
			if err := rows.Scan(&personID, &n); err != nil {
				return err
			}
			if _, ok := wanted[personID]; ok {
				counts[personID] += n
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count utterances: %w", err)
		}
	}
	return counts, nil
}

// Utterances returns the utterances of the given people, ordered by id.
func (ds *DocumentStoreImpl) Utterances(ctx context.Context, ids []int64, personIDs []int64) ([]schema.Utterance, error) {
	wanted := idSet(personIDs)
	var result []schema.Utterance
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf(`SELECT u.id, u.person_id, u.document_id, m.name, u.quote
			FROM %s u JOIN %s d ON d.id = u.document_id JOIN %s m ON m.id = d.medium_id
			WHERE d.id IN (%s)`,
			ds.table(utterancesTable), ds.table(documentsTable), ds.table(mediaTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			var u schema.Utterance
			if err := rows.Scan(&u.ID, &u.PersonID, &u.DocumentID, &u.Outlet, &u.Quote); err != nil {
				return err
			}
			if _, ok := wanted[u.PersonID]; ok {
				result = append(result, u)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list utterances: %w", err)
		}
	}
	slices.SortFunc(result, func(a, b schema.Utterance) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

// ProblemPeople returns source people lacking race, gender or affiliation,
// most used first.
func (ds *DocumentStoreImpl) ProblemPeople(ctx context.Context, ids []int64, limit int) ([]schema.PersonSourceCount, error) {
	totals := make(map[int64]schema.PersonSourceCount)
	for _, chunk := range chunkIDs(ids, ds.chunkSize) {
		query := fmt.Sprintf(`SELECT p.id, p.name, p.gender, p.race, p.affiliation, COUNT(s.id)
			FROM %s s JOIN %s p ON p.id = s.person_id
			WHERE s.document_id IN (%s)
			  AND (COALESCE(p.race, '') = '' OR COALESCE(p.gender, '') = '' OR COALESCE(p.affiliation, '') = '')
			GROUP BY p.id, p.name, p.gender, p.race, p.affiliation`,
			ds.table(sourcesTable), ds.table(peopleTable), contract.Placeholders(len(chunk)))
		err := ds.queryRows(ctx, query, idArgs(chunk), func(rows *sql.Rows) error {
			var n int
			p, err := scanPerson(rows, &n)
			if err != nil {
				return err
			}
			entry := totals[p.ID]
			entry.Person = p
			entry.Sources += n
			totals[p.ID] = entry
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list problem people: %w", err)
		}
	}

	result := make([]schema.PersonSourceCount, 0, len(totals))
	for _, entry := range totals {
		result = append(result, entry)
	}
	slices.SortFunc(result, func(a, b schema.PersonSourceCount) int {
		return cmp.Or(cmp.Compare(b.Sources, a.Sources), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
