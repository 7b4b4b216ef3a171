package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/msalah0e/netmap/internal/reveal"
	"github.com/msalah0e/netmap/internal/session"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/msalah0e/netmap/internal/viewport"
	"github.com/spf13/cobra"
)

// Step operations understood by parseSteps.
const (
	opClick      = "c"
	opSelect     = "s"
	opPathfinder = "p"
	opZoomIn     = "z+"
	opZoomOut    = "z-"
	opCenter     = "center"
)

type step struct {
	op string
	id int
}

func (s step) String() string {
	if s.op == opClick || s.op == opSelect {
		return fmt.Sprintf("%s:%d", s.op, s.id)
	}
	return s.op
}

// parseSteps reads a comma separated script such as "p,c:2,z+".
func parseSteps(script string) ([]step, error) {
	var steps []step
	for i, tok := range strings.Split(script, ",") {
		tok = strings.TrimSpace(strings.ToLower(tok))
		if tok == "" {
			continue
		}
		op, arg, hasArg := strings.Cut(tok, ":")
		switch op {
		case opClick, opSelect, "click", "select":
			if !hasArg {
				return nil, fmt.Errorf("step %d: %q needs a node id", i+1, tok)
			}
			id, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("step %d: invalid node id %q", i+1, arg)
			}
			steps = append(steps, step{op: op[:1], id: id})
		case opPathfinder, "pathfinder", opZoomIn, opZoomOut, opCenter:
			if hasArg {
				return nil, fmt.Errorf("step %d: %q takes no argument", i+1, op)
			}
			steps = append(steps, step{op: canonicalOp(op)})
		default:
			return nil, fmt.Errorf("step %d: unknown operation %q", i+1, op)
		}
	}
	return steps, nil
}

func canonicalOp(op string) string {
	if op == "pathfinder" {
		return opPathfinder
	}
	return op
}

// applySteps plays steps against s and describes what each one did.
func applySteps(s *session.Session, steps []step) []string {
	var out []string
	for _, st := range steps {
		e := s.Engine()
		switch st.op {
		case opClick:
			before := e.Progress().Visible
			s.OnNodeClick(st.id)
			out = append(out, fmt.Sprintf("%-8s selected %d, %d newly visible", st, e.Selected(), e.Progress().Visible-before))
		case opSelect:
			out = append(out, fmt.Sprintf("%-8s selected %d", st, s.Select(st.id)))
		case opPathfinder:
			out = append(out, fmt.Sprintf("%-8s exposed %v", st, s.OnPathfinder()))
		case opZoomIn, opZoomOut:
			dir := viewport.ZoomIn
			if st.op == opZoomOut {
				dir = viewport.ZoomOut
			}
			s.OnWheel(s.Viewport().Size().Center(), dir)
			out = append(out, fmt.Sprintf("%-8s zoom %.1f", st, s.Viewport().Camera().Zoom))
		case opCenter:
			s.OnCenterSelected()
			out = append(out, fmt.Sprintf("%-8s on %d", st, e.Selected()))
		}
	}
	return out
}

// simResult is the JSON shape of a finished simulation.
type simResult struct {
	Revealed []int         `json:"revealed"`
	Visible  []int         `json:"visible"`
	Selected int           `json:"selected"`
	Edges    []reveal.Edge `json:"edges"`
	Zoom     float64       `json:"zoom"`
	Pan      [2]float64    `json:"pan"`
}

func simCmd() *cobra.Command {
	var (
		script string
		width  float64
		height float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play a scripted run without the map",
		Long: `Play a comma separated script of steps and print the resulting state.

  c:<id>    click a node (reveal if accessible, then select)
  s:<id>    select a node
  p         run the pathfinder
  z+, z-    zoom in or out around the map center
  center    center the selected node

  netmap sim --steps "p,c:2,c:5"
  netmap sim --steps "p,s:4" --json`,
		Run: func(cmd *cobra.Command, args []string) {
			steps, err := parseSteps(script)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			j := openJournal()
			defer j.Close()

			s := newSession(mustArchitecture(), j)
			s.OnViewportResize(width, height)
			trace := applySteps(s, steps)

			e := s.Engine()
			cam := s.Viewport().Camera()
			if asJSON {
				printJSON(simResult{
					Revealed: e.RevealedIDs(),
					Visible:  e.VisibleIDs(),
					Selected: e.Selected(),
					Edges:    e.Edges(),
					Zoom:     cam.Zoom,
					Pan:      [2]float64{cam.Pan.X, cam.Pan.Y},
				})
				return
			}

			ui.Banner(s.Architecture(), ui.Subtle.Sprintf("%d step(s)", len(steps)))
			for _, line := range trace {
				fmt.Printf("  %s %s\n", ui.Info.Sprint("›"), line)
			}
			if len(trace) > 0 {
				fmt.Println()
			}
			printNodes(nodeRows(s, false), e.Progress())
			fmt.Printf("  zoom %.1f · pan (%.1f, %.1f)\n", cam.Zoom, cam.Pan.X, cam.Pan.Y)
		},
	}

	cmd.Flags().StringVar(&script, "steps", "", "Steps to play, e.g. \"p,c:2,c:5\"")
	cmd.Flags().Float64Var(&width, "width", 800, "Map width used for camera math")
	cmd.Flags().Float64Var(&height, "height", 600, "Map height used for camera math")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
