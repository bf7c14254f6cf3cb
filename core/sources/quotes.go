package sources

import (
	"slices"
	"strings"

	"github.com/huangsam/mediascore/schema"
)

// NormaliseQuote trims a quote and collapses its inner whitespace.
func NormaliseQuote(quote string) string {
	return strings.Join(strings.Fields(quote), " ")
}

// SelectQuotes merges one person's utterances with the same normalised
// text and picks the most repeated groups.
//
// A group counts every utterance but links only one per outlet, the one
// from the lowest document id. Groups are taken by count, descending. A
// group is kept only while every document it links has contributed fewer
// than perDocument kept groups. At most limit groups are returned. The
// sample of a group is its linked utterance from the lowest document id.
func SelectQuotes(utterances []schema.Utterance, limit, perDocument int) []schema.AnalysedUtterance {
	var groups []schema.AnalysedUtterance
	index := make(map[string]int)
	for _, u := range utterances {
		quote := NormaliseQuote(u.Quote)
		if quote == "" {
			continue
		}
		i, ok := index[quote]
		if !ok {
			i = len(groups)
			index[quote] = i
			groups = append(groups, schema.AnalysedUtterance{Quote: quote})
		}
		groups[i].Count++
		groups[i].Utterances = link(groups[i].Utterances, u)
	}

	slices.SortStableFunc(groups, func(a, b schema.AnalysedUtterance) int {
		return b.Count - a.Count
	})

	used := make(map[int64]int)
	kept := make([]schema.AnalysedUtterance, 0, min(limit, len(groups)))
	for _, g := range groups {
		if len(kept) == limit {
			break
		}
		docs := documents(g.Utterances)
		if slices.ContainsFunc(docs, func(id int64) bool { return used[id] >= perDocument }) {
			continue
		}
		for _, id := range docs {
			used[id]++
		}
		g.Sample = sample(g.Utterances)
		kept = append(kept, g)
	}
	return kept
}

// documents returns the distinct document ids of utterances.
func documents(utterances []schema.Utterance) []int64 {
	ids := make([]int64, 0, len(utterances))
	for _, u := range utterances {
		ids = append(ids, u.DocumentID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// link adds u to the linked utterances unless its outlet is already
// linked, in which case the earlier of the two is kept.
func link(linked []schema.Utterance, u schema.Utterance) []schema.Utterance {
	i := slices.IndexFunc(linked, func(l schema.Utterance) bool { return l.Outlet == u.Outlet })
	if i < 0 {
		return append(linked, u)
	}
	if earlier(u, linked[i]) < 0 {
		linked[i] = u
	}
	return linked
}

func sample(utterances []schema.Utterance) schema.Utterance {
	return slices.MinFunc(utterances, earlier)
}

// earlier orders utterances by document id, then utterance id.
func earlier(a, b schema.Utterance) int {
	if a.DocumentID != b.DocumentID {
		return compareIDs(a.DocumentID, b.DocumentID)
	}
	return compareIDs(a.ID, b.ID)
}
