package domain

import "encoding/json"

// SourceKind tells how a dataset resource is backed.
type SourceKind string

const (
	// SourceStored resources point into a cube store by path.
	SourceStored SourceKind = "stored"
	// SourceComputed resources are a function over other resources.
	SourceComputed SourceKind = "computed"
)

type DatasetResource struct {
	Identifier string     `json:"id"`
	Title      string     `json:"title"`
	Kind       SourceKind `json:"-"`

	// Stored resources. All of these are passed through unchanged
	// to the cube store that opens the dataset.
	FileSystem     string `json:"-"`
	Path           string `json:"-"`
	Endpoint       string `json:"-"`
	Region         string `json:"-"`
	Anonymous      bool   `json:"-"`
	ChunkCacheSize uint64 `json:"-"`

	// Computed resources.
	Function        string         `json:"-"`
	InputDatasets   []string       `json:"-"`
	InputParameters map[string]any `json:"-"`

	Variables []string `json:"variables,omitempty"`

	BoundingBox *BoundingBox `json:"bbox,omitempty"`

	Hidden        bool          `json:"-"`
	AccessControl AccessControl `json:"-"`

	Augmentation *AugmentationSpec `json:"-"`

	PlaceGroups       []string `json:"placeGroups,omitempty"`
	Style             string   `json:"style,omitempty"`
	TimeSeriesDataset string   `json:"-"`
}

// IsComputed reports whether the resource is a function over
// other catalog resources rather than a stored cube.
func (r DatasetResource) IsComputed() bool {
	return r.Kind == SourceComputed
}

type AccessControl struct {
	IsSubstitute   bool
	RequiredScopes []string
}

// AugmentationSpec fully specifies a named, deterministic transform
// to be invoked by the compute collaborator. Nothing in this core
// ever executes it.
type AugmentationSpec struct {
	Path            string         `json:"path"`
	Function        string         `json:"function"`
	InputDatasets   []string       `json:"inputDatasets,omitempty"`
	InputParameters map[string]any `json:"inputParameters,omitempty"`
}

// BoundingBox is ordered west, south, east, north.
type BoundingBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.West, b.South, b.East, b.North})
}

type PlaceGroup struct {
	Identifier      string            `json:"id"`
	Title           string            `json:"title"`
	Path            string            `json:"-"`
	Join            *PlaceJoin        `json:"-"`
	PropertyMapping map[string]string `json:"-"`
}

type PlaceJoin struct {
	Path     string
	Property string
}

type Style struct {
	Identifier    string
	ColorMappings map[string]ColorMapping
}

// ColorMapping is either a simple mapping (ColorBar or ColorFile plus
// ValueRange) or a composite RGB mapping. Exactly one form is set.
type ColorMapping struct {
	ColorBar   string
	ColorFile  string
	ValueRange *ValueRange
	RGB        *RGBMapping
}

type ValueRange struct {
	Min float64
	Max float64
}

type RGBMapping struct {
	Red   ChannelMapping
	Green ChannelMapping
	Blue  ChannelMapping
}

type ChannelMapping struct {
	Variable   string
	ValueRange ValueRange
}

// ServiceInfo carries the passthrough metadata blocks from the server
// configuration. The catalog never interprets them.
type ServiceInfo struct {
	DatasetAttribution []string       `json:"datasetAttribution,omitempty"`
	ServiceProvider    map[string]any `json:"serviceProvider,omitempty"`
	Authentication     map[string]any `json:"authentication,omitempty"`
}
