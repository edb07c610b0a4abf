package graph

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2 — Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateNonZeroDimensions(g)...)

	warnings = append(warnings, validateCylinderSegments(g)...)
	warnings = append(warnings, validateDifferenceRedundantBase(g)...)

	return errs, warnings
}

// validateNonZeroDimensions checks that every primitive has strictly
// positive extents: a box's dimensions, or a cylinder's height and radius.
func validateNonZeroDimensions(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case BoxData:
			if d.Dimensions.X <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension X is %.4f, must be positive", d.Dimensions.X),
					Severity: SeverityError,
				})
			}
			if d.Dimensions.Y <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension Y is %.4f, must be positive", d.Dimensions.Y),
					Severity: SeverityError,
				})
			}
			if d.Dimensions.Z <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension Z is %.4f, must be positive", d.Dimensions.Z),
					Severity: SeverityError,
				})
			}

		case CylinderData:
			if d.Height <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder height is %.4f, must be positive", d.Height),
					Severity: SeverityError,
				})
			}
			if d.Radius <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder radius is %.4f, must be positive", d.Radius),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateCylinderSegments warns when a cylinder's explicit segment count
// is too low to approximate a smooth solid of revolution.
func validateCylinderSegments(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		cd, ok := node.Data.(CylinderData)
		if !ok {
			continue
		}
		if cd.Segments > 0 && cd.Segments < 3 {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf(
					"cylinder segments=%d is degenerate (fewer than 3 sides); the kernel will use its default instead",
					cd.Segments,
				),
			})
		}
	}

	return warnings
}

// validateDifferenceRedundantBase warns when a difference node's base
// operand and every subtracted operand are the exact same node, which
// always produces an empty result.
func validateDifferenceRedundantBase(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		bd, ok := node.Data.(BooleanData)
		if !ok || bd.Kind != BooleanDifference || len(node.Children) < 2 {
			continue
		}
		base := node.Children[0]
		allSame := true
		for _, child := range node.Children[1:] {
			if child != base {
				allSame = false
				break
			}
		}
		if allSame {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: "difference subtracts the base operand from itself; result is always empty",
			})
		}
	}

	return warnings
}
