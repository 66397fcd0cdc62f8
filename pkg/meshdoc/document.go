// Package meshdoc reads and writes meshes as YAML documents.
//
// A document lists vertex positions and either polygons (vertex index
// lists) or legacy faces (triangles and quads with per-corner UVs and
// colors). Legacy faces are converted to polygons on load, so a document
// written back always holds polygons.
package meshdoc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document errors.
var (
	ErrEmptyDocument   = errors.New("document has no vertices")
	ErrInvalidIndex    = errors.New("index out of range")
	ErrPolygonTooSmall = errors.New("polygon has fewer than 3 vertices")
	ErrFaceCorners     = errors.New("legacy face must have 3 or 4 vertices")
	ErrMixedTopology   = errors.New("document has both polygons and faces")
	ErrComponentCount  = errors.New("wrong number of components")
	ErrLayerSize       = errors.New("layer size does not match loop count")
)

// Document is the YAML form of a mesh.
type Document struct {
	Vertices [][]float32 `yaml:"vertices,flow"`
	Edges    [][]uint32  `yaml:"edges,omitempty,flow"`
	Polygons []Polygon   `yaml:"polygons,omitempty"`
	Faces    []Face      `yaml:"faces,omitempty"`

	UVLayers    []UVLayer    `yaml:"uv_layers,omitempty"`
	ColorLayers []ColorLayer `yaml:"color_layers,omitempty"`

	HiddenVertices   []uint32 `yaml:"hidden_vertices,omitempty,flow"`
	SelectedVertices []uint32 `yaml:"selected_vertices,omitempty,flow"`
	HiddenPolygons   []int    `yaml:"hidden_polygons,omitempty,flow"`
	SelectedPolygons []int    `yaml:"selected_polygons,omitempty,flow"`
}

// Polygon is one polygon given by its corner vertices in winding order.
type Polygon struct {
	Verts    []uint32 `yaml:"verts,flow"`
	Material int16    `yaml:"material,omitempty"`
	Smooth   bool     `yaml:"smooth,omitempty"`
}

// Face is a legacy triangle or quad with optional per-corner data.
type Face struct {
	Verts    []uint32    `yaml:"verts,flow"`
	Material int16       `yaml:"material,omitempty"`
	Smooth   bool        `yaml:"smooth,omitempty"`
	UV       [][]float32 `yaml:"uv,omitempty,flow"`
	Colors   [][]int     `yaml:"colors,omitempty,flow"` // RGBA, 0-255
}

// UVLayer is a named per-loop UV layer, one entry per polygon corner in
// polygon order.
type UVLayer struct {
	Name string      `yaml:"name"`
	UVs  [][]float32 `yaml:"uvs,flow"`
}

// ColorLayer is a named per-loop RGBA color layer.
type ColorLayer struct {
	Name   string  `yaml:"name"`
	Colors [][]int `yaml:"colors,flow"`
}

// Parse decodes a YAML mesh document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding mesh document: %w", err)
	}
	if len(doc.Vertices) == 0 {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// ParseFile reads and decodes a YAML mesh document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh document: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// WriteFile encodes the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("encoding mesh document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
