package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/meshkernel/pkg/engine"
	"github.com/chazu/meshkernel/pkg/kernel"
	"github.com/chazu/meshkernel/pkg/kernel/manifold"
	"github.com/chazu/meshkernel/pkg/kernel/sdfx"
	"github.com/chazu/meshkernel/pkg/meshio"
	"github.com/chazu/meshkernel/pkg/meshkernel"
	"github.com/chazu/meshkernel/pkg/quantize"
	"github.com/chazu/meshkernel/pkg/tessellate"
	"github.com/spf13/cobra"
)

var (
	runOutDir   string
	runScale    float64
	runDebug    bool
	runHashSet  bool
	runNoSeidel bool
	runBackend  string
)

func init() {
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", ".", "directory to write one output mesh per evaluated part into")
	runCmd.Flags().Float64Var(&runScale, "scale", quantize.DefaultPrecision, "integer lattice units per working unit when quantizing tessellated parts")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "dump each part's Stats and kernel mesh state once its kernel is computed (not per plane cut)")
	runCmd.Flags().BoolVar(&runHashSet, "hash-set-planes", false, "deduplicate cutting planes with a hash set instead of flood fill")
	runCmd.Flags().BoolVar(&runNoSeidel, "no-seidel", false, "disable the background exact feasibility solver")
	runCmd.Flags().StringVar(&runBackend, "backend", "sdfx", `geometry kernel used to tessellate the scene script: "sdfx" or "manifold" (manifold requires building with -tags=manifold and linking libmanifoldc)`)
	rootCmd.AddCommand(runCmd)
}

// geometryBackend selects the kernel.Kernel implementation named by
// --backend. "manifold" resolves to pkg/kernel/manifold, whose New()
// only succeeds when the binary was built with -tags=manifold against
// libmanifoldc; otherwise it reports why it could not start.
func geometryBackend(name string) (kernel.Kernel, error) {
	switch name {
	case "sdfx", "":
		return sdfx.New(), nil
	case "manifold":
		return manifold.New()
	default:
		return nil, fmt.Errorf("run: unrecognized --backend %q (want \"sdfx\" or \"manifold\")", name)
	}
}

var runCmd = &cobra.Command{
	Use:   "run <script.lisp>",
	Short: "Evaluate a CSG scene script and compute the kernel of each resulting part",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("run: reading scene script: %w", err)
	}

	eng := engine.NewEngine()
	g, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("run: evaluating scene script: %w", err)
	}
	for _, e := range evalErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "run: scene script error: %s\n", e.Error())
	}
	if g == nil {
		return fmt.Errorf("run: scene script produced no graph")
	}

	k, err := geometryBackend(runBackend)
	if err != nil {
		return err
	}
	meshes, err := tessellate.Tessellate(g, k)
	if err != nil {
		return fmt.Errorf("run: tessellating scene: %w", err)
	}
	if len(meshes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "run: scene script produced no parts")
		return nil
	}

	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return fmt.Errorf("run: creating output directory: %w", err)
	}

	opts := meshkernel.DefaultOptions()
	opts.UseHashSetForPlanes = runHashSet
	opts.UseSeidelSolver = !runNoSeidel
	opts.Debug = runDebug

	for partIdx, part := range meshes {
		input, scale, err := quantize.Quantize(part, runScale)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "run: part %q: skipping (%v)\n", part.PartName, err)
			continue
		}

		result, err := meshkernel.Compute(input, opts)
		if err != nil {
			return fmt.Errorf("run: computing kernel for part %q: %w", part.PartName, err)
		}
		if opts.Debug {
			result.Stats.DebugDump(cmd.ErrOrStderr(), result.Mesh)
		}

		name := part.PartName
		if name == "" {
			name = fmt.Sprintf("part%d", partIdx)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run: part %q: convex=%t has_kernel=%t closed=%t kernel_faces=%d total_planes=%d\n",
			name, result.InputWasConvex, result.HasKernel, result.Closed, result.Stats.KernelFaces, result.Stats.TotalPlanes)

		if !result.HasKernel {
			continue
		}
		outPath := filepath.Join(runOutDir, sanitizePartName(name)+".obj")
		if err := writeKernelMesh(outPath, result, scale); err != nil {
			return fmt.Errorf("run: writing kernel mesh for part %q: %w", name, err)
		}
	}
	return nil
}

func writeKernelMesh(path string, result *meshkernel.Result, scale quantize.Scale) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	meshkernel.Triangulate(result.Mesh)
	return meshio.SaveOBJ(f, result.Mesh, scale.Factor)
}

// sanitizePartName strips path separators from a part name so it is
// always safe to join under runOutDir.
func sanitizePartName(name string) string {
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	return strings.ReplaceAll(name, "/", "_")
}
