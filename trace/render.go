package trace

import (
	"fmt"
	"strings"
)

// Render draws a trace as an ASCII tree for CLI/debug output, in the
// style of a proof tree: box-drawing connectors, with the result (or
// error) and message printed on each line. Durations are not printed, so
// the rendering is deterministic and snapshot-stable given a fixed input.
func Render(roots []*Node) string {
	var sb strings.Builder
	for i, root := range roots {
		renderNode(&sb, root, "", i == len(roots)-1)
	}
	return sb.String()
}

func renderNode(sb *strings.Builder, n *Node, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := n.Kind
	if n.Op != "" {
		label = fmt.Sprintf("%s(%s)", n.Kind, n.Op)
	}

	line := label
	if n.Err != "" {
		line += fmt.Sprintf(" !! %s", n.Err)
	} else if n.Result != nil {
		line += fmt.Sprintf(" => %v", n.Result)
	}
	if n.Message != "" {
		line += fmt.Sprintf(" (%s)", n.Message)
	}

	sb.WriteString(prefix + connector + line + "\n")

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, child := range n.Children {
		renderNode(sb, child, childPrefix, i == len(n.Children)-1)
	}
}
