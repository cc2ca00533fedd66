package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/achilleasa/photon/bvh"
	"github.com/achilleasa/photon/geometry"
	"github.com/olekukonko/tablewriter"
)

var bundleSize = reflect.TypeOf(geometry.TriangleBundle{}).Size()

// Render a table with the memory used by each mesh and the shape of its BVH.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Asset", "Size", "Count"})

	var (
		totalBytes     uintptr
		totalTriangles int
	)
	for _, m := range s.meshes {
		tree := m.Tree()
		stats := tree.Stats()
		meshBytes := sizeOf(m.vertices, m.triangles, tree.Nodes(), tree.Leaves()) + uintptr(len(tree.Leaves()))*bundleSize
		totalBytes += meshBytes
		totalTriangles += m.TriangleCount()

		table.Append([]string{m.Name(), "---", fmtBytes(meshBytes), " "})
		table.Append([]string{"", "Vertices", fmtSize(m.vertices), strconv.Itoa(len(m.vertices))})
		table.Append([]string{"", "Triangles", fmtSize(m.triangles), strconv.Itoa(m.TriangleCount())})
		table.Append([]string{"", "Degenerate", " ", strconv.Itoa(m.Degenerate())})
		table.Append([]string{"", "Bundles", fmtBytes(uintptr(len(tree.Leaves())) * bundleSize), strconv.Itoa(stats.Leaves)})
		table.Append([]string{"", "BVH nodes", fmtSize(tree.Nodes()), strconv.Itoa(stats.Nodes)})
		table.Append([]string{"", "BVH depth", " ", strconv.Itoa(stats.MaxDepth)})
		table.Append([]string{"", "BVH empty slots", " ", strconv.Itoa(stats.EmptySlots)})
		table.Append([]string{" ", " ", " ", " "})
	}
	table.Append([]string{"Scene", "BVH nodes", fmtSize(s.tree.Nodes()), strconv.Itoa(s.tree.Stats().Nodes)})
	totalBytes += sizeOf(s.tree.Nodes())

	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtBytes(totalBytes), " "), strconv.Itoa(totalTriangles)})

	table.Render()
	return buf.String()
}

// Render the BVH statistics of a single tree.
func TreeStats(name string, stats bvh.Stats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Tree", "Nodes", "Leaves", "Empty slots", "Max depth", "Build time"})
	table.Append([]string{
		name,
		strconv.Itoa(stats.Nodes),
		strconv.Itoa(stats.Leaves),
		strconv.Itoa(stats.EmptySlots),
		strconv.Itoa(stats.MaxDepth),
		stats.BuildTime.String(),
	})
	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices.
func sizeOf(items ...interface{}) uintptr {
	var totalBytes uintptr
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += t.Elem().Size() * uintptr(v.Len())
	}
	return totalBytes
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	return fmtBytes(sizeOf(items...))
}

func fmtBytes(total uintptr) string {
	totalBytes := float32(total)
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
