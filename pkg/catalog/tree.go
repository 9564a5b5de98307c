package catalog

import (
	"fmt"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/heimdalr/dag"
)

// tree is the folder parentage graph, parent → child.
type tree struct {
	dag  *dag.DAG
	root string
}

// buildTree builds the parentage graph and rejects duplicate ids, dangling
// parents and cycles.
func buildTree(folders []settings.Folder) (*tree, error) {
	t := &tree{dag: dag.NewDAG()}
	ids := make(map[string]struct{}, len(folders))

	for i := range folders {
		id := folders[i].ID
		if id == "" {
			return nil, fmt.Errorf("%w: folder %q has no id", ErrInconsistentTree, folders[i].Name)
		}

		// Store the id as vertex data; folders are not hashable.
		if err := t.dag.AddVertexByID(id, id); err != nil {
			return nil, fmt.Errorf("%w: duplicate folder id %s", ErrInconsistentTree, id)
		}

		ids[id] = struct{}{}

		if folders[i].IsRoot() {
			if t.root != "" {
				return nil, fmt.Errorf("%w: more than one root folder (%s, %s)", ErrInconsistentTree, t.root, id)
			}

			t.root = id
		}
	}

	if t.root == "" {
		return nil, fmt.Errorf("%w: no root folder", ErrInconsistentTree)
	}

	for i := range folders {
		folder := &folders[i]
		if folder.IsRoot() {
			continue
		}

		parentID := folder.ParentID()
		if _, exists := ids[parentID]; !exists {
			return nil, fmt.Errorf("%w: folder %s has unknown parent %s", ErrInconsistentTree, folder.ID, parentID)
		}

		if parentID == folder.ID || t.isDescendant(folder.ID, parentID) {
			return nil, fmt.Errorf("%w: %s → %s", ErrCycleDetected, parentID, folder.ID)
		}

		if err := t.dag.AddEdge(parentID, folder.ID); err != nil {
			return nil, fmt.Errorf("%w: invalid parent %s → %s: %w", ErrInconsistentTree, parentID, folder.ID, err)
		}
	}

	return t, nil
}

// descendants returns every folder below id
func (t *tree) descendants(id string) []string {
	descendants, err := t.dag.GetDescendants(id)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(descendants))
	for descendantID := range descendants {
		out = append(out, descendantID)
	}

	return out
}

// isDescendant reports whether candidate lies below ancestor
func (t *tree) isDescendant(ancestor, candidate string) bool {
	descendants, err := t.dag.GetDescendants(ancestor)
	if err != nil {
		return false
	}

	_, exists := descendants[candidate]

	return exists
}

// reachable reports whether every folder hangs off the root
func (t *tree) reachable() bool {
	return len(t.descendants(t.root))+1 == t.dag.GetOrder()
}
