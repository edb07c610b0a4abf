package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chazu/meshkernel/pkg/meshio"
	"github.com/chazu/meshkernel/pkg/meshkernel"
	"github.com/spf13/cobra"
)

var (
	convertScale       float64
	convertTriangulate bool
)

func init() {
	convertCmd.Flags().Float64Var(&convertScale, "scale", meshio.LoadOBJScale, "integer lattice units per working unit for both the source and destination format")
	convertCmd.Flags().BoolVar(&convertTriangulate, "triangulate", false, "fan-triangulate before writing the destination format")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.obj|input.3mf> <output.obj|output.3mf>",
	Short: "Round-trip a mesh between the OBJ and 3MF interchange formats",
	Long: `convert loads a mesh from the format implied by the input file's
extension and writes it out in the format implied by the output file's
extension. It performs no kernel computation: it is a pass-through of the
mesh IO collaborator meshkernel's input/output contract names (spec.md
section 6), useful for preparing an input mesh or inspecting a kernel
result saved by "run".`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("convert: opening input: %w", err)
	}
	defer in.Close()

	var input meshkernel.InputMesh
	switch ext := strings.ToLower(extOf(inPath)); ext {
	case ".obj":
		input, err = meshio.LoadOBJ(in, convertScale)
	case ".3mf":
		input, err = meshio.Load3MF(in, convertScale)
	default:
		return fmt.Errorf("convert: unrecognized input extension %q (want .obj or .3mf)", ext)
	}
	if err != nil {
		return fmt.Errorf("convert: loading %s: %w", inPath, err)
	}

	outExt := strings.ToLower(extOf(outPath))
	if convertTriangulate || outExt == ".3mf" {
		input = meshio.TriangulateInput(input)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("convert: creating output: %w", err)
	}
	defer out.Close()

	switch outExt {
	case ".obj":
		err = meshio.SaveOBJInput(out, input, convertScale)
	case ".3mf":
		err = meshio.Save3MFInput(out, input, convertScale)
	default:
		return fmt.Errorf("convert: unrecognized output extension %q (want .obj or .3mf)", outExt)
	}
	if err != nil {
		return fmt.Errorf("convert: writing %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "convert: %s -> %s: %d vertices, %d faces\n",
		inPath, outPath, len(input.Positions), len(input.Faces))
	return nil
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}
