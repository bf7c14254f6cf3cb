package agg

import (
	"context"
	"fmt"
	"slices"

	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/schema"
)

// Labels of scores that later sections refer to.
const (
	totalArticles     = "Total articles"
	totalSources      = "Total sources"
	totalChildSources = "Total child sources"
)

// totals writes the article and source counts per outlet.
func totals(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Articles", row)
	docs, err := a.countDocuments(ctx, schema.DocumentQuery{})
	if err != nil {
		return row, err
	}
	if err := a.writeCount(totalArticles, docs, row); err != nil {
		return row, err
	}

	row += 2
	a.scores.WriteTitle("Sources", row)
	sources, err := a.countSources(ctx, schema.SourceQuery{})
	if err != nil {
		return row, err
	}
	if err := a.writeCount(totalSources, sources, row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// sourceBuckets writes how many articles have 1, 2, ... sources, with percentages of all articles.
func sourceBuckets(ctx context.Context, a *Aggregator, row int) (int, error) {
	rows, labels, err := a.bucketRows(ctx, false, " Sources")
	if err != nil {
		return row, err
	}
	return a.writeTableWithPercents(labels, rows, totalArticles, row)
}

// raceScores writes child source races and their diversity.
func raceScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	return a.childDiversity(ctx, "Races", "Race: ", "Diversity of Races", schema.SourceRace, row)
}

// ageScores writes child source ages and their diversity.
func ageScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	return a.childDiversity(ctx, "Child Ages", "Age: ", "Diversity of Ages", schema.SourceAge, row)
}

// childDiversity writes a child source table grouped by dim and its entropy.
func (a *Aggregator) childDiversity(ctx context.Context, title, prefix, diversity string, dim schema.SourceDimension, row int) (int, error) {
	a.scores.WriteTitle(title, row)
	rows, err := a.countSources(ctx, schema.SourceQuery{GroupBy: dim, SourceType: schema.ChildSource})
	if err != nil {
		return row, err
	}
	next, err := a.scores.WriteScoreTable(prefixedLabels(prefix, categories(rows)), prefixed(prefix, rows), row)
	if err != nil {
		return next, err
	}
	if err := a.writeEntropy(diversity, rows, next+1); err != nil {
		return next, err
	}
	return next + 2, nil
}

// qualityScores writes articles per quality indicator, with percentages of all articles.
func qualityScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Quality", row)
	var rows []schema.CountRow
	labels := make([]string, 0, len(schema.QualityIndicators))
	for _, qi := range schema.QualityIndicators {
		labels = append(labels, qi.Label)
		counts, err := a.countDocuments(ctx, schema.DocumentQuery{Quality: qi.Key})
		if err != nil {
			return row, err
		}
		for _, c := range counts {
			c.Category = qi.Label
			rows = append(rows, c)
		}
	}
	return a.writeTableWithPercents(labels, rows, totalArticles, row)
}

// childSourceScores writes child source totals, quoted children, child
// source buckets and the origins of articles quoting children.
func childSourceScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Child Sources", row)

	children, err := a.countSources(ctx, schema.SourceQuery{SourceType: schema.ChildSource})
	if err != nil {
		return row, err
	}
	if err := a.writeCount(totalChildSources, children, row); err != nil {
		return row, err
	}
	if row, err = a.writePercentOf("Percent Child sources", totalChildSources, totalSources, row+1); err != nil {
		return row, err
	}

	quoted, err := a.countSources(ctx, schema.SourceQuery{SourceType: schema.ChildSource, QuotedOnly: true})
	if err != nil {
		return row, err
	}
	if err := a.writeCount("Quoted child sources", quoted, row); err != nil {
		return row, err
	}
	if row, err = a.writePercent("Quoted child sources", totalSources, row+1); err != nil {
		return row, err
	}

	buckets, labels, err := a.bucketRows(ctx, true, " Child Sources")
	if err != nil {
		return row, err
	}
	if row, err = a.writeTableWithPercents(labels, buckets, totalArticles, row); err != nil {
		return row, err
	}

	row++
	a.scores.WriteTitle("Origins of Quoted Children", row)
	origins, err := a.countSources(ctx, schema.SourceQuery{
		GroupBy:           schema.SourceOrigin,
		SourceType:        schema.ChildSource,
		QuotedOnly:        true,
		DistinctDocuments: true,
	})
	if err != nil {
		return row, err
	}
	const prefix = "Quoted Origin: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(origins)), prefixed(prefix, origins), row); err != nil {
		return row, err
	}
	if err := a.writeEntropy("Diversity of Quoted Origins", origins, row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// roleScores writes child roles and their diversity, then for each role
// indication the role table, its share of child sources and its gender balance.
func roleScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Child Roles", row)
	roles, err := a.countSources(ctx, schema.SourceQuery{GroupBy: schema.SourceRole, SourceType: schema.ChildSource})
	if err != nil {
		return row, err
	}
	const prefix = "Role: "
	next, err := a.scores.WriteScoreTable(prefixedLabels(prefix, categories(roles)), prefixed(prefix, roles), row)
	if err != nil {
		return next, err
	}
	row = next + 1
	if err := a.writeEntropy("Diversity of Roles", roles, row); err != nil {
		return row, err
	}
	row++

	for _, indication := range []schema.RoleIndication{schema.PositiveRole, schema.NegativeRole} {
		if row, err = a.indicationScores(ctx, indication, row+1); err != nil {
			return row, err
		}
	}
	return row, nil
}

// indicationScores writes the role block of one indication.
func (a *Aggregator) indicationScores(ctx context.Context, indication schema.RoleIndication, row int) (int, error) {
	names, err := a.store.RoleNames(ctx, indication)
	if err != nil {
		return row, fmt.Errorf("list %s roles: %w", indication, err)
	}
	title := indicationTitle(indication)
	a.scores.WriteTitle(title, row)

	query := schema.SourceQuery{GroupBy: schema.SourceRole, SourceType: schema.ChildSource, Indication: indication}
	rows, err := a.countSources(ctx, query)
	if err != nil {
		return row, err
	}
	prefix := title + ": "
	if row, err = a.writeSubsetTotal(prefixedLabels(prefix, names), prefixed(prefix, rows), "Total "+title, row); err != nil {
		return row, err
	}
	// Percent of all child sources
	if row, err = a.writePercentOf(sheet.PercentLabel(title), "Total "+title, totalChildSources, row+1); err != nil {
		return row, err
	}

	row++
	for _, gender := range []string{schema.MaleGender, schema.FemaleGender} {
		gendered := gender + " " + title
		a.scores.WriteTitle(gendered, row)
		query.Gender = gender
		rows, err := a.countSources(ctx, query)
		if err != nil {
			return row, err
		}
		prefix := gendered + ": "
		if row, err = a.writeSubsetTotal(prefixedLabels(prefix, names), prefixed(prefix, rows), "Total "+gendered, row); err != nil {
			return row, err
		}
		row += 2
	}

	return a.writeGenderRatio("Total "+schema.MaleGender+" "+title, "Total "+schema.FemaleGender+" "+title,
		"Gender ratio "+title, "Gender score "+title, row)
}

// indicationTitle is "Positive Roles" or "Negative Roles".
func indicationTitle(indication schema.RoleIndication) string {
	if indication == schema.PositiveRole {
		return "Positive Roles"
	}
	return "Negative Roles"
}

// victimScores writes secondary victimisation: articles where an abused child is also a source.
func victimScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Secondary Victimisation", row)
	abused, err := a.countDocuments(ctx, schema.DocumentQuery{AbusedChild: true})
	if err != nil {
		return row, err
	}
	if err := a.writeCount("Abused sources", abused, row); err != nil {
		return row, err
	}
	if row, err = a.writePercent("Abused sources", totalChildSources, row+1); err != nil {
		return row, err
	}
	if err := a.scores.WriteFormulaRow("Percent Non-abused sources", sheet.Complement(row-1), row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// principleScores writes articles per supported and violated principle.
func principleScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	names, err := a.store.PrincipleNames(ctx)
	if err != nil {
		return row, fmt.Errorf("list principles: %w", err)
	}

	a.scores.WriteTitle("Principles supported", row)
	supported, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocPrincipleSupport})
	if err != nil {
		return row, err
	}
	sLabels := prefixedLabels("S. ", names)
	start := row
	if row, err = a.writeSubsetTotal(sLabels, prefixed("S. ", supported), "Rights respected", row); err != nil {
		return row, err
	}
	if row, err = a.writePercent("Rights respected", totalArticles, row+1); err != nil {
		return row, err
	}

	// Percent of articles supporting each principle
	den, err := a.row(totalArticles)
	if err != nil {
		return row, err
	}
	if row, err = a.scores.WritePercentTable(sLabels, den, start, row+1); err != nil {
		return row, err
	}

	row++
	a.scores.WriteTitle("Principles violated", row)
	violated, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocPrincipleViolated})
	if err != nil {
		return row, err
	}
	if row, err = a.writeSubsetTotal(prefixedLabels("V. ", names), prefixed("V. ", violated), "Principles violated", row); err != nil {
		return row, err
	}
	if row, err = a.writePercent("Principles violated", totalArticles, row+1); err != nil {
		return row, err
	}
	if err := a.scores.WriteFormulaRow("Inv. Percent Principles violated", sheet.Complement(row-1), row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// childGenderScores writes quoted and all child genders with their balance.
func childGenderScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Quoted Child Genders", row)
	quoted, err := a.countSources(ctx, schema.SourceQuery{GroupBy: schema.SourceGender, SourceType: schema.ChildSource, QuotedOnly: true})
	if err != nil {
		return row, err
	}
	genders := withCategories(categories(quoted), schema.MaleGender, schema.FemaleGender)
	const prefix = "Quoted "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, genders), prefixed(prefix, quoted), row); err != nil {
		return row, err
	}
	if row, err = a.writeGenderRatio(prefix+schema.MaleGender, prefix+schema.FemaleGender,
		"Quoted Boys to girls", "Quoted Gender Ratio", row+1); err != nil {
		return row, err
	}

	row++
	a.scores.WriteTitle("All Child Genders", row)
	all, err := a.countSources(ctx, schema.SourceQuery{GroupBy: schema.SourceGender, SourceType: schema.ChildSource})
	if err != nil {
		return row, err
	}
	genders = withCategories(categories(all), schema.MaleGender, schema.FemaleGender)
	if row, err = a.scores.WriteScoreTable(genders, all, row); err != nil {
		return row, err
	}
	if row, err = a.writeGenderRatio(schema.MaleGender, schema.FemaleGender, "Boys to girls", "Gender Ratio", row+1); err != nil {
		return row, err
	}
	binary := only(all, schema.MaleGender, schema.FemaleGender)
	if err := a.writeEntropy("Diversity of Gender", binary, row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// originScores writes article origins, their diversity and the focus-origin share.
func originScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Origins", row)
	origins, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocOrigin})
	if err != nil {
		return row, err
	}
	const prefix = "Origin: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(origins)), prefixed(prefix, origins), row); err != nil {
		return row, err
	}
	if err := a.writeEntropy("Diversity of Origins", origins, row+1); err != nil {
		return row, err
	}

	row += 3
	a.scores.WriteTitle("Focus origins", row)
	const focus = "Focus: "
	if row, err = a.writeSubsetTotal(prefixedLabels(focus, schema.FocusOrigins), prefixed(focus, origins), "Focus origins", row); err != nil {
		return row, err
	}
	return a.writePercent("Focus origins", totalArticles, row+1)
}

// topicScores writes article topics, their diversity and the child abuse share.
func topicScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Topics", row)
	topics, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocTopic})
	if err != nil {
		return row, err
	}
	const prefix = "Topic: "
	if row, err = a.scores.WriteScoreTable(prefixedLabels(prefix, categories(topics)), prefixed(prefix, topics), row); err != nil {
		return row, err
	}
	row++
	if err := a.writeEntropy("Diversity of Topics", topics, row); err != nil {
		return row, err
	}
	row++

	abuse, err := a.countDocuments(ctx, schema.DocumentQuery{TopicGroup: schema.ChildAbuseTopicGroup})
	if err != nil {
		return row, err
	}
	if err := a.writeCount("Child Abuse", abuse, row); err != nil {
		return row, err
	}
	return a.writePercent("Child Abuse", totalArticles, row+1)
}

// typeScores writes articles of the featured types and their share.
func typeScores(ctx context.Context, a *Aggregator, row int) (int, error) {
	a.scores.WriteTitle("Types", row)
	featured := slices.Sorted(slices.Values(schema.FeaturedTypes))
	types, err := a.countDocuments(ctx, schema.DocumentQuery{GroupBy: schema.DocType, In: featured})
	if err != nil {
		return row, err
	}
	const prefix = "Type: "
	if row, err = a.writeSubsetTotal(prefixedLabels(prefix, featured), prefixed(prefix, types), "Focus types", row); err != nil {
		return row, err
	}
	return a.writePercent("Focus types", totalArticles, row+1)
}
