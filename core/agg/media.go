package agg

import (
	"context"
	"slices"

	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/schema"
)

// taxonomyScores writes article taxonomies, their diversity and the social justice focus.
func taxonomyScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Topic", row)
	taxonomies, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocTaxonomy})
	if err != nil {
		return row, err
	}
	const prefix = "Taxonomy: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(taxonomies)), prefixed(prefix, taxonomies), row); err != nil {
		return row, err
	}
	if err := a.writeEntropy("Diversity of Topics", taxonomies, row+1); err != nil {
		return row, err
	}

	row += 3
	focus := slices.Sorted(slices.Values(schema.SocialJusticeFocus))
	justice, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocTaxonomy, In: focus})
	if err != nil {
		return row, err
	}
	const focusPrefix = "Social Justice: "
	if row, err = a.writeSubsetTotal(prefixedLabels(focusPrefix, focus), prefixed(focusPrefix, justice), "Social Justice Focus", row); err != nil {
		return row, err
	}
	return a.writePercent("Social Justice Focus", totalArticles, row+1)
}

// regionScores writes the provinces articles mention and their diversity.
func regionScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Region", row)
	regions, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocProvince})
	if err != nil {
		return row, err
	}
	const prefix = "Region: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(regions)), prefixed(prefix, regions), row); err != nil {
		return row, err
	}
	if err := a.writeEntropy("Diversity of Regions", regions, row+1); err != nil {
		return row, err
	}
	return row + 2, nil
}

// sourceScores writes source affiliations, marginalised voices, source
// genders and the average number of sources per article.
func sourceScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Sources", row)
	affiliations, err := a.countSources(ctx, schema.SourceQuery{GroupBy: schema.SourceAffiliation})
	if err != nil {
		return row, err
	}
	const prefix = "Affiliation: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(affiliations)), prefixed(prefix, affiliations), row); err != nil {
		return row, err
	}
	if err := a.writeEntropy("Diversity of Affiliations", affiliations, row+1); err != nil {
		return row, err
	}

	row += 3
	groups := slices.Sorted(slices.Values(schema.MarginalisedVoices))
	marginalised := only(affiliations, groups...)
	const groupPrefix = "Marginalised: "
	if row, err = a.writeSubsetTotal(prefixedLabels(groupPrefix, groups), prefixed(groupPrefix, marginalised), "Marginalised Voices", row); err != nil {
		return row, err
	}
	if row, err = a.writePercent("Marginalised Voices", totalSources, row+1); err != nil {
		return row, err
	}

	row++
	genders, err := a.countSources(ctx, schema.SourceQuery{GroupBy: schema.SourceGender})
	if err != nil {
		return row, err
	}
	labels := withCategories(categories(genders), schema.MaleGender, schema.FemaleGender)
	if row, err = a.scores.WriteScoreTable(labels, genders, row); err != nil {
		return row, err
	}
	if row, err = a.writeGenderRatio(schema.MaleGender, schema.FemaleGender, "Male to female", "Gender Ratio", row+1); err != nil {
		return row, err
	}

	row++
	articles, err := a.row(totalArticles)
	if err != nil {
		return row, err
	}
	sources, err := a.row(totalSources)
	if err != nil {
		return row, err
	}
	if err := a.scores.WriteFormulaRow("Avg sources", sheet.Ratio(sources, articles), row); err != nil {
		return row, err
	}
	return row + 1, nil
}
