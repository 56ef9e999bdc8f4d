// Command bufdump builds a mesh into vertex and index buffers and prints
// what a GPU would receive: the vertex layout, a matching WGSL input
// struct, buffer sizes and a hex dump of the first vertices.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/buffer"
	"github.com/gogpu/buffer/device"
	"github.com/gogpu/buffer/mesh"
	"github.com/gogpu/buffer/wgsl"
)

func main() {
	var (
		shape   = flag.String("mesh", "cube", "mesh to build: cube, quad or grid")
		cols    = flag.Int("cols", 4, "grid columns")
		rows    = flag.Int("rows", 4, "grid rows")
		usage   = flag.String("usage", "STATIC_DRAW", "usage hint of both buffers")
		output  = flag.String("out", "", "write vertex bytes to this file")
		records = flag.Int("records", 2, "number of vertices to hex dump")
		verbose = flag.Bool("v", false, "log buffer reallocations and uploads")
		compile = flag.Bool("compile", false, "print and compile a pass-through vertex shader")
	)
	flag.Parse()

	if *verbose {
		buffer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	u, err := buffer.ParseUsage(*usage)
	if err != nil {
		log.Fatalf("Invalid usage: %v", err)
	}
	b, err := build(*shape, *cols, *rows)
	if err != nil {
		log.Fatalf("Failed to build mesh: %v", err)
	}
	vertices, faces := b.Vertices(), b.Faces()
	vertices.SetUsage(u)
	faces.SetUsage(u)

	p := message.NewPrinter(language.English)
	fmt.Printf("layout %s\n", vertices.Layout())
	for _, f := range vertices.Layout().All() {
		fmt.Printf("  %-10s %-12s offset %3d size %3d\n", f.Name, f.Type, f.Offset, f.Size())
	}
	src, err := wgsl.VertexInput(vertices.Layout(), "VertexInput", 0)
	if err != nil {
		log.Fatalf("Failed to generate WGSL: %v", err)
	}
	fmt.Printf("\n%s\n", src)

	if *compile {
		shader, spirv, err := wgsl.NewCache(1).PassThrough(vertices.Layout())
		if err != nil {
			log.Fatalf("Failed to compile pass-through shader: %v", err)
		}
		fmt.Printf("%s\n", shader)
		p.Printf("SPIR-V: %d bytes\n\n", len(spirv))
	}

	adapter := device.NewMemoryAdapter()
	vb, err := upload(adapter, vertices, "vertices")
	if err != nil {
		log.Fatalf("Failed to upload vertices: %v", err)
	}
	defer vb.Release()
	ib, err := upload(adapter, faces, "faces")
	if err != nil {
		log.Fatalf("Failed to upload faces: %v", err)
	}
	defer ib.Release()

	p.Printf("%d vertices, %d bytes (%s, %s)\n", vertices.Size(), vertices.ByteLength(), vertices.Target(), u)
	p.Printf("%d faces, %d bytes (%s, %s)\n", faces.Size(), faces.ByteLength(), faces.Target(), u)
	p.Printf("device: %s\n", adapter.Stats())

	n := dumpLength(*records, vertices.Size(), vertices.Stride())
	dump, err := adapter.ReadBuffer(vb.ID(), 0, uint64(n)) //nolint:gosec // n is non-negative
	if err != nil {
		log.Fatalf("Failed to read back vertices: %v", err)
	}
	fmt.Printf("\n%s", hex.Dump(dump))

	if *output != "" {
		data := vertices.Bytes()[:vertices.ByteLength()]
		if err := os.WriteFile(*output, data, 0o600); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Vertices saved to %s (%d bytes)\n", *output, len(data))
	}
}

// dumpLength returns the byte length of the first records records,
// clamped to [0, size].
func dumpLength(records, size, stride int) int {
	return min(max(records, 0), size) * stride
}

func build(shape string, cols, rows int) (*mesh.Builder, error) {
	switch shape {
	case "cube":
		return mesh.Cube(), nil
	case "quad":
		return mesh.Quad(), nil
	case "grid":
		return mesh.Grid(cols, rows)
	default:
		return nil, fmt.Errorf("unknown mesh %q", shape)
	}
}

func upload(adapter device.Adapter, desc buffer.Descriptor, label string) (*device.Binding, error) {
	b, err := device.NewBinding(adapter, desc, label)
	if err != nil {
		return nil, err
	}
	if err := b.Sync(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}
