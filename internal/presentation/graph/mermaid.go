package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	navgraph "github.com/aretw0/wayfinder/pkg/graph"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// Route highlights a planned path, origin first.
	Route   []string
	Current string
	// Unready marks screens whose last readiness record is false.
	Unready []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a navigation graph.
// The start screen is drawn as a ((Circle)), other screens as [Rectangles].
// Labelled transitions carry their label on the arrow; route edges are thick.
func GenerateMermaid(g *navgraph.Graph, startID string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	onRoute := make(map[[2]string]bool)
	if overlay != nil {
		for i := 1; i < len(overlay.Route); i++ {
			onRoute[[2]string{overlay.Route[i-1], overlay.Route[i]}] = true
		}
	}

	for _, n := range g.Nodes() {
		opener, closer := "[", "]"
		if n.ID() == startID {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(n.ID()), opener, escape(n.ID()), closer))
	}

	for _, e := range g.Edges() {
		from, to := e.From.ID(), e.To.ID()
		arrow := "-->"
		if onRoute[[2]string{from, to}] {
			arrow = "==>"
		}
		if e.Label != "" {
			if arrow == "==>" {
				arrow = fmt.Sprintf("== \"%s\" ==>", escape(e.Label))
			} else {
				arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.Label))
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(from), arrow, sanitizeMermaidID(to)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef route fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef unready fill:#ffcdd2,stroke:#b71c1c,stroke-dasharray:4,color:#000;\n")

		styled := make(map[string]bool)
		for _, id := range overlay.Route {
			safeID := sanitizeMermaidID(id)
			if !styled[safeID] && safeID != "" && id != overlay.Current {
				styled[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s route;\n", safeID))
			}
		}
		for _, id := range overlay.Unready {
			sb.WriteString(fmt.Sprintf("    class %s unready;\n", sanitizeMermaidID(id)))
		}
		if overlay.Current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Current)))
		}
	}

	return sb.String()
}

// OverlayFor builds an overlay from a position, a planned path and records.
func OverlayFor(position domain.Navigable, path []domain.Navigable, records []domain.StateRecord) *GraphOverlay {
	o := &GraphOverlay{Current: domain.IDOf(position)}
	if len(path) > 0 {
		o.Route = append([]string{o.Current}, navgraph.IDs(path)...)
	}
	for _, rec := range records {
		if rec.Kind == domain.KindReady && !rec.Bool() {
			o.Unready = append(o.Unready, rec.NavigableID)
		}
	}
	return o
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
