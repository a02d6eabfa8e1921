// Package analysis flattens the analysis/taxonomic-group forest of a
// project into the per-analysis group assignments the clients consume.
package analysis

import (
	"github.com/diversityworkbench/divservice/pkg/ent"
)

// ByParent indexes analyses by their parent analysis id. Roots (nil
// parent) are not part of the index; they enter the traversal through
// the root groups instead.
func ByParent(analyses []ent.Analysis) map[int][]ent.Analysis {
	idx := make(map[int][]ent.Analysis)
	for _, an := range analyses {
		if an.AnalysisParentID == nil {
			continue
		}
		idx[*an.AnalysisParentID] = append(idx[*an.AnalysisParentID], an)
	}
	return idx
}

// Flatten propagates the taxonomic-group labels of the root assignments
// down the analysis hierarchy with a breadth-first traversal. Children
// inherit the group of the ancestor they were reached from. Each
// analysis id is emitted at most once: when a node is seen again through
// another path its children are not re-enqueued, which terminates the
// walk on cyclic or re-converging ancestry and avoids revisiting shared
// subtrees.
func Flatten(
	roots []ent.AnalysisTaxonomicGroup,
	byParent map[int][]ent.Analysis,
) []ent.AnalysisTaxonomicGroup {
	queue := make([]ent.AnalysisTaxonomicGroup, len(roots))
	copy(queue, roots)

	seen := make(map[int]struct{}, len(roots))
	var flattened []ent.AnalysisTaxonomicGroup

	for len(queue) > 0 {
		atg := queue[0]
		queue = queue[1:]

		if _, dup := seen[atg.AnalysisID]; dup {
			continue
		}
		seen[atg.AnalysisID] = struct{}{}
		flattened = append(flattened, atg)

		for _, child := range byParent[atg.AnalysisID] {
			queue = append(queue, ent.AnalysisTaxonomicGroup{
				AnalysisID:     child.AnalysisID,
				TaxonomicGroup: atg.TaxonomicGroup,
			})
		}
	}
	return flattened
}
