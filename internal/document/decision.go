package document

import (
	"regexp"
	"strings"
)

// DecisionNode is one node of the decision tree. Interior nodes carry a
// branch condition; leaves carry an outcome label.
type DecisionNode struct {
	Condition string
	Outcome   string
	Children  []DecisionNode
}

// Leaf reports whether the node is a leaf outcome.
func (n DecisionNode) Leaf() bool {
	return len(n.Children) == 0
}

var (
	arrowRe        = regexp.MustCompile(`\s*(?:\x{2192}|->)\s*`)
	indentBulletRe = regexp.MustCompile(`^(\s*)(?:[-*+]|\d+[.)])\s+(.+)$`)
)

// DecisionTree parses the decision tree section into nodes. Bullets
// nest by indentation; a "condition → outcome" bullet is a leaf whose
// condition and outcome are split on the arrow.
func (d *Document) DecisionTree() []DecisionNode {
	type frame struct {
		indent int
		nodes  *[]DecisionNode
	}
	var roots []DecisionNode
	stack := []frame{{indent: -1, nodes: &roots}}

	for _, line := range strings.Split(d.Section(KeyDecisionTree).Body, "\n") {
		m := indentBulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent := len(strings.ReplaceAll(m[1], "\t", "    "))
		text := strings.TrimSpace(m[2])

		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].nodes

		node := DecisionNode{Condition: text}
		if parts := arrowRe.Split(text, 2); len(parts) == 2 {
			node.Condition = strings.TrimSpace(parts[0])
			node.Outcome = strings.TrimSpace(parts[1])
		}
		*parent = append(*parent, node)
		stack = append(stack, frame{indent: indent, nodes: &(*parent)[len(*parent)-1].Children})
	}

	finalizeLeaves(roots)
	return roots
}

// finalizeLeaves assigns outcome labels to leaves that had no arrow
// form: the bullet text itself is the outcome.
func finalizeLeaves(nodes []DecisionNode) {
	for i := range nodes {
		if nodes[i].Leaf() {
			if nodes[i].Outcome == "" {
				nodes[i].Outcome = nodes[i].Condition
			}
			continue
		}
		finalizeLeaves(nodes[i].Children)
	}
}

// LeafOutcomes returns every leaf outcome label of the decision tree.
func (d *Document) LeafOutcomes() []string {
	var out []string
	var walk func(nodes []DecisionNode)
	walk = func(nodes []DecisionNode) {
		for _, n := range nodes {
			if n.Leaf() {
				out = append(out, n.Outcome)
				continue
			}
			walk(n.Children)
		}
	}
	walk(d.DecisionTree())
	return out
}

// BranchConditions returns every branch condition of the decision tree,
// including the condition part of arrow-form leaves.
func (d *Document) BranchConditions() []string {
	var out []string
	var walk func(nodes []DecisionNode)
	walk = func(nodes []DecisionNode) {
		for _, n := range nodes {
			if n.Condition != "" && (len(n.Children) > 0 || n.Outcome != n.Condition) {
				out = append(out, n.Condition)
			}
			walk(n.Children)
		}
	}
	walk(d.DecisionTree())
	return out
}
