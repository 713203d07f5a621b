package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/workflow"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	Visited []string
	Current string
}

// StateMachine produces a Mermaid flowchart of a transition table.
// States are emitted in the given order; the initial state is drawn as a
// ((Circle)) and every other state as a [Rectangle].
// Overlay styles (Visited/Current) are applied if provided.
func StateMachine[S comparable](initial S, states []S, table fsm.Table[S], overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range states {
		name := fmt.Sprint(s)
		opener, closer := "[", "]"
		if s == initial {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(name), opener, name, closer)
	}
	for _, s := range states {
		from := sanitizeMermaidID(fmt.Sprint(s))
		for _, to := range table[s] {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, sanitizeMermaidID(fmt.Sprint(to)))
		}
	}

	writeOverlay(&sb, overlay)
	return sb.String()
}

// EngineMachine is StateMachine for the engine lifecycle.
func EngineMachine(overlay *Overlay) string {
	return StateMachine(fsm.EngineOff, fsm.EngineStates(), fsm.EngineTransitions, overlay)
}

// Workflows draws each workflow as a subgraph: a ((Start)) node, its steps as
// [[Subroutine]] nodes in order, and a dotted failure edge from every step to
// a shared abort node.
func Workflows[C any](wfs ...*workflow.Workflow[C]) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, wf := range wfs {
		prefix := sanitizeMermaidID(wf.Name())
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", prefix, wf.Name())

		start := prefix + "_start"
		abort := prefix + "_abort"
		done := prefix + "_done"
		fmt.Fprintf(&sb, "        %s((\"start\"))\n", start)

		prev := start
		for i, step := range wf.Steps() {
			id := fmt.Sprintf("%s_%d", prefix, i+1)
			fmt.Fprintf(&sb, "        %s[[\"%d. %s\"]]\n", id, i+1, escapeLabel(step.Name))
			fmt.Fprintf(&sb, "        %s --> %s\n", prev, id)
			fmt.Fprintf(&sb, "        %s -. error .-> %s\n", id, abort)
			prev = id
		}
		fmt.Fprintf(&sb, "        %s --> %s((\"done\"))\n", prev, done)
		if wf.Len() > 0 {
			fmt.Fprintf(&sb, "        %s{{\"abort\"}}\n", abort)
		}
		sb.WriteString("    end\n")
	}
	return sb.String()
}

func writeOverlay(sb *strings.Builder, overlay *Overlay) {
	if overlay == nil {
		return
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	seen := make(map[string]bool)
	for _, id := range overlay.Visited {
		safeID := sanitizeMermaidID(id)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			fmt.Fprintf(sb, "    class %s visited;\n", safeID)
		}
	}
	if overlay.Current != "" {
		fmt.Fprintf(sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
