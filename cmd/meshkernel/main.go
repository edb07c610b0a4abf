// Command meshkernel is the non-GUI entry point for the mesh-kernel
// core: a small CLI embedding the same pkg/engine -> pkg/graph ->
// pkg/tessellate -> pkg/meshkernel pipeline the teacher's Wails/GUI
// frontend embedded, replacing the GUI (explicitly out of scope per
// spec.md's Non-goals) with two subcommands: run and convert.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshkernel",
	Short: "Compute the exact integer kernel of a polyhedral mesh",
	Long: `meshkernel evaluates a CSG scene script or loads a mesh from disk,
then computes the mesh kernel: the convex polyhedron of points from which
every surface point of the input is visible.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
