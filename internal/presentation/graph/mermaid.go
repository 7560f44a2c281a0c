package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/handik/pkg/domain"
)

// Overlay marks the target currently holding each hand.
type Overlay struct {
	Left  domain.TargetType
	Right domain.TargetType
}

type edge struct {
	from, to domain.TargetType
}

// GenerateMermaid draws one subgraph per hand with the target types as nodes
// and the observed transitions as edges labelled by count.
// Shapes:
// - Mouse, keyboard, pen tablet: [Rectangle]
// - Gamepad, arcade stick, MIDI: [[Subroutine]]
// - Image tracking: ((Circle))
// - Always down: [/Parallelogram/]
func GenerateMermaid(events []domain.TransitionEvent, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, hand := range []domain.Hand{domain.HandLeft, domain.HandRight} {
		counts := map[edge]int{}
		var order []edge
		nodes := map[domain.TargetType]bool{}

		for _, e := range events {
			if e.Hand != hand {
				continue
			}
			k := edge{e.From, e.To}
			if counts[k] == 0 {
				order = append(order, k)
			}
			counts[k]++
			nodes[e.From] = true
			nodes[e.To] = true
		}
		if overlay != nil {
			nodes[overlayTarget(overlay, hand)] = true
		}

		fmt.Fprintf(&sb, "    subgraph %s_hand[\"%s hand\"]\n", hand, hand)
		for _, t := range sortedTargets(nodes) {
			opener, closer := shape(t)
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", nodeID(hand, t), opener, t, closer)
		}
		for _, k := range order {
			arrow := "-->"
			if n := counts[k]; n > 1 {
				arrow = fmt.Sprintf("-- \"%dx\" -->", n)
			}
			fmt.Fprintf(&sb, "        %s %s %s\n", nodeID(hand, k.from), arrow, nodeID(hand, k.to))
		}
		sb.WriteString("    end\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark themes.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", nodeID(domain.HandLeft, overlay.Left))
		fmt.Fprintf(&sb, "    class %s current;\n", nodeID(domain.HandRight, overlay.Right))
	}

	return sb.String()
}

func overlayTarget(o *Overlay, h domain.Hand) domain.TargetType {
	if h == domain.HandLeft {
		return o.Left
	}
	return o.Right
}

func sortedTargets(set map[domain.TargetType]bool) []domain.TargetType {
	out := make([]domain.TargetType, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func shape(t domain.TargetType) (string, string) {
	switch t {
	case domain.TargetGamepad, domain.TargetArcadeStick, domain.TargetMidiController:
		return "[[", "]]"
	case domain.TargetImageBaseHand:
		return "((", "))"
	case domain.TargetAlwaysDown:
		return "[/", "/]"
	}
	return "[", "]"
}

func nodeID(h domain.Hand, t domain.TargetType) string {
	return h.String() + "_" + strings.NewReplacer("(", "_", ")", "").Replace(t.String())
}
