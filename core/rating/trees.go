// Package rating has the built-in rating trees and the evaluator that lays
// a tree out on the Rating sheet as live weighted-sum formulas.
package rating

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/huangsam/mediascore/schema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTree is returned for malformed tree declarations.
var ErrInvalidTree = errors.New("invalid rating tree")

func node(weight float64, label string, children ...schema.RatingNode) schema.RatingNode {
	return schema.RatingNode{Weight: weight, Label: label, Children: children}
}

// childrenTree rates how outlets report on children.
var childrenTree = []schema.RatingNode{
	node(1.0, "Final rating",
		node(0.500, "Are Childrens Rights Respected",
			node(0.123, "Diversity of Roles"),
			node(0.326, "Percent Rights respected"),
			node(0.369, "Access Codes",
				node(0.833, "Percent Abused sources"),
				node(0.167, "Percent Non-abused sources")),
			node(0.181, "Information Points",
				node(0.500, "Percent Self Help"),
				node(0.500, "Percent S. Child's best interest"))),
		node(0.249, "Are Childrens Voices Heard?",
			node(0.083, "Quoted Gender Ratio"),
			node(0.418, "Percent Quoted child sources"),
			node(0.091, "Diversity of Quoted Origins"),
			node(0.178, "No of Children Sources",
				node(0.067, "Percent 1 Child Sources"),
				node(0.133, "Percent 2 Child Sources"),
				node(0.200, "Percent 3 Child Sources"),
				node(0.267, "Percent 4 Child Sources"),
				node(0.333, "Percent >4 Child Sources")),
			node(0.230, "Percent Child sources")),
		node(0.125, "Are Childrens Issued covered in Depth",
			node(0.053, "Diversity of Topics"),
			node(0.157, "Percent Child Abuse"),
			node(0.053, "Diversity of Origins"),
			node(0.105, "Percent Focus origins"),
			node(0.263, "Information Points",
				node(0.084, "Percent Basic Context"),
				node(0.166, "Percent Causes"),
				node(0.166, "Percent Consequences"),
				node(0.166, "Percent Solutions"),
				node(0.166, "Percent Policies"),
				node(0.252, "Percent Self Help")),
			node(0.263, "Principles",
				node(0.200, "Percent Rights respected"),
				node(0.800, "Inv. Percent Principles violated")),
			node(0.053, "Sources",
				node(0.067, "Percent 1 Sources"),
				node(0.133, "Percent 2 Sources"),
				node(0.200, "Percent 3 Sources"),
				node(0.267, "Percent 4 Sources"),
				node(0.333, "Percent >4 Sources")),
			node(0.053, "Percent Focus types")),
		node(0.125, "Is there Diversity in the Media",
			node(0.318, "Roles",
				node(0.500, "Percent Positive Roles"),
				node(0.50, "Percent Negative Roles")),
			node(0.134, "Diversity of Roles"),
			node(0.295, "Sex",
				node(0.157, "Diversity of Gender"),
				node(0.249, "Gender Ratio"),
				node(0.594, "Role",
					node(0.667, "Gender score Positive Roles"),
					node(0.333, "Gender score Negative Roles"))),
			node(0.126, "Diversity of Ages"),
			node(0.126, "Diversity of Races"))),
}

// mediaDiversityTree rates topic, region and source diversity.
var mediaDiversityTree = []schema.RatingNode{
	node(1.0, "Final rating",
		node(0.333, "Topic",
			node(0.500, "Diversity of Topics"),
			node(0.500, "Percent Social Justice Focus")),
		node(0.333, "Region",
			node(1.000, "Diversity of Regions")),
		node(0.333, "Sources",
			node(0.250, "Diversity of Affiliations"),
			node(0.250, "Percent Marginalised Voices"),
			node(0.250, "Gender Ratio"),
			node(0.250, "Avg sources"))),
}

// Tree returns the built-in tree of the given kind.
func Tree(kind schema.TreeKind) ([]schema.RatingNode, error) {
	switch kind {
	case schema.ChildrenTree:
		return childrenTree, nil
	case schema.MediaDiversityTree:
		return mediaDiversityTree, nil
	default:
		return nil, fmt.Errorf("%w: no built-in tree %q", ErrInvalidTree, kind)
	}
}

// LoadTree reads and validates a YAML tree declaration.
func LoadTree(path string) ([]schema.RatingNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	return ParseTree(data)
}

// ParseTree decodes and validates a YAML tree declaration: a list of
// nodes with weight, label and optional children.
func ParseTree(data []byte) ([]schema.RatingNode, error) {
	var roots []schema.RatingNode
	if err := yaml.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}
	if err := Validate(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

// Validate checks labels and weights. Sibling weights are not required to sum to 1.
func Validate(roots []schema.RatingNode) error {
	if len(roots) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidTree)
	}
	for _, n := range roots {
		if n.Label == "" {
			return fmt.Errorf("%w: node without label", ErrInvalidTree)
		}
		if math.IsNaN(n.Weight) || math.IsInf(n.Weight, 0) || n.Weight < 0 {
			return fmt.Errorf("%w: bad weight %v for %q", ErrInvalidTree, n.Weight, n.Label)
		}
		if !n.IsLeaf() {
			if err := Validate(n.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// Depth returns the maximum nesting depth. A flat list of leaves has depth 1.
func Depth(roots []schema.RatingNode) int {
	d := 0
	for _, n := range roots {
		nd := 1
		if !n.IsLeaf() {
			nd += Depth(n.Children)
		}
		d = max(d, nd)
	}
	return d
}

// Leaves returns the distinct leaf labels in pre-order.
func Leaves(roots []schema.RatingNode) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func([]schema.RatingNode)
	walk = func(nodes []schema.RatingNode) {
		for _, n := range nodes {
			if n.IsLeaf() {
				if !seen[n.Label] {
					seen[n.Label] = true
					out = append(out, n.Label)
				}
				continue
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// Flatten lists the nodes in pre-order with their depth. Values are left empty.
func Flatten(roots []schema.RatingNode) []schema.RatedRow {
	var rows []schema.RatedRow
	var walk func([]schema.RatingNode, int)
	walk = func(nodes []schema.RatingNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, schema.RatedRow{Depth: depth, Weight: n.Weight, Label: n.Label, Leaf: n.IsLeaf()})
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 1)
	return rows
}
