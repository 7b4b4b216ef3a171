package netarch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownType   = errors.New("unknown node type")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrEntryMissing  = errors.New("entry node missing")
	ErrDanglingEdge  = errors.New("connection to unknown node")
	ErrSelfLoop      = errors.New("node connects to itself")
	ErrAsymmetric    = errors.New("edge declared on one side only")
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("nodetype", func(fl validator.FieldLevel) bool {
		return NodeType(fl.Field().String()).Valid()
	})
}

// Validate checks every node's fields and the edge list. All problems are
// reported together.
func (a *Architecture) Validate() error {
	var errs []error

	if _, ok := a.Nodes[a.Entry]; !ok {
		errs = append(errs, fmt.Errorf("%w: %d", ErrEntryMissing, a.Entry))
	}

	for _, id := range a.IDs() {
		n := a.Nodes[id]
		if n.ID != id {
			errs = append(errs, fmt.Errorf("node %d: stored under id %d", n.ID, id))
		}
		if err := validate.Struct(n); err != nil {
			errs = append(errs, formatValidationError(id, err)...)
		}
		for _, c := range n.Connections {
			if c == id {
				errs = append(errs, fmt.Errorf("node %d: %w", id, ErrSelfLoop))
				continue
			}
			other, ok := a.Nodes[c]
			if !ok {
				errs = append(errs, fmt.Errorf("node %d: %w %d", id, ErrDanglingEdge, c))
				continue
			}
			if !slices.Contains(other.Connections, id) {
				errs = append(errs, fmt.Errorf("node %d -> %d: %w", id, c, ErrAsymmetric))
			}
		}
	}

	return errors.Join(errs...)
}

func formatValidationError(id int, err error) []error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{fmt.Errorf("node %d: %w", id, err)}
	}

	out := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, fmt.Errorf("node %d: %s is required", id, field))
		case "min":
			out = append(out, fmt.Errorf("node %d: %s must be at least %s", id, field, e.Param()))
		case "lt":
			out = append(out, fmt.Errorf("node %d: %s must be less than %s", id, field, e.Param()))
		case "nodetype":
			out = append(out, fmt.Errorf("node %d: %w %q", id, ErrUnknownType, e.Value()))
		default:
			out = append(out, fmt.Errorf("node %d: %s failed %s", id, field, e.Tag()))
		}
	}
	return out
}

// Normalize rewrites the edge list so traversal is symmetric: self loops and
// dangling references are dropped, one-sided edges are mirrored, and
// duplicate entries are collapsed. It returns a description of every change.
func (a *Architecture) Normalize() []string {
	var fixes []string

	for _, id := range a.IDs() {
		n := a.Nodes[id]
		kept := make([]int, 0, len(n.Connections))
		for _, c := range n.Connections {
			switch {
			case c == id:
				fixes = append(fixes, fmt.Sprintf("node %d: dropped self loop", id))
			case a.Nodes[c] == nil:
				fixes = append(fixes, fmt.Sprintf("node %d: dropped connection to unknown node %d", id, c))
			case slices.Contains(kept, c):
				fixes = append(fixes, fmt.Sprintf("node %d: dropped duplicate connection to %d", id, c))
			default:
				kept = append(kept, c)
			}
		}
		n.Connections = kept
	}

	for _, id := range a.IDs() {
		for _, c := range a.Nodes[id].Connections {
			other := a.Nodes[c]
			if !slices.Contains(other.Connections, id) {
				other.Connections = append(other.Connections, id)
				fixes = append(fixes, fmt.Sprintf("node %d: added missing back edge to %d", c, id))
			}
		}
	}

	return fixes
}
