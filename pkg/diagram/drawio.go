package diagram

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/xml"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerscope/ledgermap/pkg/errors"
)

// drawioVersion is the editor version stamped on produced documents.
const drawioVersion = "24.7.17"

// mxfile is the light XML envelope of a draw.io document. The graph itself
// travels as a compressed, text-encoded payload in the diagram element.
type mxFile struct {
	XMLName xml.Name  `xml:"mxfile"`
	Host    string    `xml:"host,attr"`
	Agent   string    `xml:"agent,attr"`
	Version string    `xml:"version,attr"`
	Type    string    `xml:"type,attr"`
	Diagram mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name,attr"`
	Content string `xml:",chardata"`
}

type mxGraphModel struct {
	XMLName  xml.Name `xml:"mxGraphModel"`
	Dx       int      `xml:"dx,attr"`
	Dy       int      `xml:"dy,attr"`
	Grid     int      `xml:"grid,attr"`
	GridSize int      `xml:"gridSize,attr"`
	Guides   int      `xml:"guides,attr"`
	Tooltips int      `xml:"tooltips,attr"`
	Connect  int      `xml:"connect,attr"`
	Arrows   int      `xml:"arrows,attr"`
	Fold     int      `xml:"fold,attr"`
	Page     int      `xml:"page,attr"`
	Root     mxRoot   `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        float64 `xml:"x,attr,omitempty"`
	Y        float64 `xml:"y,attr,omitempty"`
	Width    float64 `xml:"width,attr,omitempty"`
	Height   float64 `xml:"height,attr,omitempty"`
	Relative string  `xml:"relative,attr,omitempty"`
	As       string  `xml:"as,attr"`
}

// GraphXML renders the laid-out graph as an uncompressed mxGraphModel
// document, the form draw.io works with once the payload is inflated.
func (g *Graph) GraphXML() (string, error) {
	// Cells 0 and 1 are draw.io's mandatory root and default layer.
	cells := []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}

	for _, node := range g.Nodes {
		cells = append(cells, mxCell{
			ID:     node.ID,
			Value:  node.Label,
			Style:  g.styles.nodeStyle(node.Kind),
			Vertex: "1",
			Parent: "1",
			Geometry: &mxGeometry{
				X:      node.X,
				Y:      node.Y,
				Width:  node.Width,
				Height: node.Height,
				As:     "geometry",
			},
		})
	}

	for _, edge := range g.Edges {
		cells = append(cells, mxCell{
			ID:     edge.ID,
			Style:  g.styles.edgeStyle(edge.Kind),
			Edge:   "1",
			Parent: "1",
			Source: edge.Source,
			Target: edge.Target,
			Geometry: &mxGeometry{
				Relative: "1",
				As:       "geometry",
			},
		})
	}

	model := mxGraphModel{
		Dx:       1000,
		Dy:       800,
		Grid:     0,
		GridSize: 10,
		Guides:   1,
		Tooltips: 1,
		Connect:  1,
		Arrows:   1,
		Fold:     1,
		Page:     1,
		Root:     mxRoot{Cells: cells},
	}

	data, err := xml.Marshal(model)
	if err != nil {
		return "", errors.WrapExport("diagram", err)
	}
	return string(data), nil
}

// Payload compresses the graph XML the way the viewer expects: the XML is
// percent-encoded (JavaScript encodeURIComponent semantics), raw-deflated
// with no zlib header or footer, then base64-encoded. Any deviation from
// this exact chain renders the document unreadable in the viewer.
func (g *Graph) Payload() (string, error) {
	graphXML, err := g.GraphXML()
	if err != nil {
		return "", err
	}
	return compressPayload(graphXML)
}

// Document renders the complete mxfile envelope around the compressed
// payload, carrying a display name and a generated diagram identifier.
func (g *Graph) Document(title string) ([]byte, error) {
	payload, err := g.Payload()
	if err != nil {
		return nil, err
	}

	doc := mxFile{
		Host:    "app.diagrams.net",
		Agent:   "ledgermap",
		Version: drawioVersion,
		Type:    "device",
		Diagram: mxDiagram{
			ID:      uuid.NewString(),
			Name:    title,
			Content: payload,
		},
	}

	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapExport("diagram", err)
	}
	return append([]byte(xml.Header), data...), nil
}

func compressPayload(graphXML string) (string, error) {
	escaped := encodeURIComponent(graphXML)

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", errors.WrapExport("diagram", err)
	}
	if _, err := w.Write([]byte(escaped)); err != nil {
		return "", errors.WrapExport("diagram", err)
	}
	if err := w.Close(); err != nil {
		return "", errors.WrapExport("diagram", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// encodeURIComponent mirrors the JavaScript function of the same name, which
// is what the viewer applies before inflating: unreserved characters plus
// !'()*-._~ pass through, everything else becomes percent-encoded UTF-8.
// net/url escapes a different character set, so it can't be used here.
func encodeURIComponent(s string) string {
	const hexDigits = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		if isURIComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func isURIComponentSafe(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '!', '*', '\'', '(', ')':
		return true
	}
	return false
}
