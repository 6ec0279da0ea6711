package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"herbnet/domain/core/aggregates"
	pkgerrors "herbnet/pkg/errors"
)

// OutputFormat selects the rendered image format
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatSVG  OutputFormat = "svg"
	FormatBoth OutputFormat = "both"
)

// ParseOutputFormat validates a format name, defaulting to png
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatPNG, FormatSVG, FormatBoth:
		return OutputFormat(s), nil
	case "":
		return FormatPNG, nil
	default:
		return "", pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown output format %q", s))
	}
}

// Extensions lists the file extensions a format produces
func (f OutputFormat) Extensions() []string {
	switch f {
	case FormatBoth:
		return []string{"png", "svg"}
	case FormatSVG:
		return []string{"svg"}
	default:
		return []string{"png"}
	}
}

// nodeColors assigns each node kind a fixed fill color
var nodeColors = map[aggregates.NodeKind]color.Color{
	aggregates.NodeKindHerb:     color.RGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF},
	aggregates.NodeKindCompound: color.RGBA{R: 0x41, G: 0x69, B: 0xE1, A: 0xFF},
	aggregates.NodeKindTarget:   color.RGBA{R: 0x22, G: 0x8B, B: 0x22, A: 0xFF},
	aggregates.NodeKindDisease:  color.RGBA{R: 0xDC, G: 0x14, B: 0x3C, A: 0xFF},
}

// nodeRadii scale glyph sizes by layer so herbs read as anchors
var nodeRadii = map[aggregates.NodeKind]vg.Length{
	aggregates.NodeKindHerb:     vg.Points(7),
	aggregates.NodeKindCompound: vg.Points(5),
	aggregates.NodeKindTarget:   vg.Points(3.5),
	aggregates.NodeKindDisease:  vg.Points(7),
}

var edgeColor = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xA0}

// Renderer draws a laid-out network to image files
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a renderer with a fixed canvas size
func NewRenderer() *Renderer {
	return &Renderer{width: 10 * vg.Inch, height: 8 * vg.Inch}
}

// Render draws the network with the given coordinates to basePath plus the
// format's extension(s) and returns the written file paths in a stable
// order. Every node must have a coordinate.
func (r *Renderer) Render(network *aggregates.Network, positions LayoutResult, basePath string, format OutputFormat, title string) ([]string, error) {
	if network == nil || network.NodeCount() == 0 {
		return nil, pkgerrors.NewLayoutError("cannot render a graph with zero nodes")
	}
	for _, node := range network.Nodes() {
		if _, ok := positions[node.ID]; !ok {
			return nil, pkgerrors.NewLayoutError(fmt.Sprintf("no coordinate for node %q", node.ID))
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	if err := r.addEdges(p, network, positions); err != nil {
		return nil, err
	}
	if err := r.addNodes(p, network, positions); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(basePath), 0o755); err != nil {
		return nil, pkgerrors.NewInternalError("create output directory", err)
	}

	var paths []string
	for _, ext := range format.Extensions() {
		path := basePath + "." + ext
		if err := p.Save(r.width, r.height, path); err != nil {
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("save %s image", ext), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) addEdges(p *plot.Plot, network *aggregates.Network, positions LayoutResult) error {
	for _, edge := range network.Edges() {
		src := positions[edge.Source]
		dst := positions[edge.Target]
		line, err := plotter.NewLine(plotter.XYs{
			{X: src.X, Y: src.Y},
			{X: dst.X, Y: dst.Y},
		})
		if err != nil {
			return pkgerrors.NewInternalError("build edge line", err)
		}
		line.Color = edgeColor
		line.Width = vg.Points(0.5)
		p.Add(line)
	}
	return nil
}

func (r *Renderer) addNodes(p *plot.Plot, network *aggregates.Network, positions LayoutResult) error {
	kinds := []aggregates.NodeKind{
		aggregates.NodeKindHerb,
		aggregates.NodeKindCompound,
		aggregates.NodeKindTarget,
		aggregates.NodeKindDisease,
	}

	for _, kind := range kinds {
		nodes := network.NodesOfKind(kind)
		if len(nodes) == 0 {
			continue
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

		xys := make(plotter.XYs, len(nodes))
		labels := make([]string, len(nodes))
		for i, node := range nodes {
			pos := positions[node.ID]
			xys[i] = plotter.XY{X: pos.X, Y: pos.Y}
			labels[i] = node.Label
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return pkgerrors.NewInternalError("build node scatter", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = nodeColors[kind]
		scatter.GlyphStyle.Radius = nodeRadii[kind]
		p.Add(scatter)
		p.Legend.Add(string(kind), scatter)

		// Herb and disease labels only; per-target labels overwhelm the
		// canvas on dense graphs.
		if kind == aggregates.NodeKindHerb || kind == aggregates.NodeKindDisease {
			nodeLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
			if err != nil {
				return pkgerrors.NewInternalError("build node labels", err)
			}
			p.Add(nodeLabels)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return nil
}
