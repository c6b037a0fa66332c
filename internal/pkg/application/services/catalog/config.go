package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultComputeFunction is invoked for computed datasets that do
	// not name a function of their own.
	DefaultComputeFunction = "compute_dataset"
	// DefaultAugmentationFunction is invoked for augmentations that do
	// not name a function of their own.
	DefaultAugmentationFunction = "compute_variables"
)

type serverConfig struct {
	Authentication        map[string]any      `yaml:"Authentication"`
	ServiceProvider       map[string]any      `yaml:"ServiceProvider"`
	DatasetAttribution    []string            `yaml:"DatasetAttribution"`
	AccessControl         accessControlConfig `yaml:"AccessControl"`
	DatasetChunkCacheSize any                 `yaml:"DatasetChunkCacheSize"`
	Datasets              []datasetConfig     `yaml:"Datasets"`
	PlaceGroups           []placeGroupConfig  `yaml:"PlaceGroups"`
	Styles                []styleConfig       `yaml:"Styles"`
}

type accessControlConfig struct {
	IsSubstitute   bool     `yaml:"IsSubstitute"`
	RequiredScopes []string `yaml:"RequiredScopes"`
}

type datasetConfig struct {
	Identifier        string                `yaml:"Identifier"`
	Title             string                `yaml:"Title"`
	BoundingBox       []float64             `yaml:"BoundingBox"`
	FileSystem        string                `yaml:"FileSystem"`
	Path              string                `yaml:"Path"`
	Endpoint          string                `yaml:"Endpoint"`
	Region            string                `yaml:"Region"`
	Anonymous         bool                  `yaml:"Anonymous"`
	ChunkCacheSize    any                   `yaml:"ChunkCacheSize"`
	Function          string                `yaml:"Function"`
	InputDatasets     []string              `yaml:"InputDatasets"`
	InputParameters   map[string]any        `yaml:"InputParameters"`
	Variables         []string              `yaml:"Variables"`
	Augmentation      *augmentationConfig   `yaml:"Augmentation"`
	Hidden            bool                  `yaml:"Hidden"`
	AccessControl     accessControlConfig   `yaml:"AccessControl"`
	PlaceGroups       []placeGroupRefConfig `yaml:"PlaceGroups"`
	Style             string                `yaml:"Style"`
	TimeSeriesDataset string                `yaml:"TimeSeriesDataset"`
}

type augmentationConfig struct {
	Path            string         `yaml:"Path"`
	Function        string         `yaml:"Function"`
	InputParameters map[string]any `yaml:"InputParameters"`
}

type placeGroupRefConfig struct {
	PlaceGroupRef string         `yaml:"PlaceGroupRef"`
	Rest          map[string]any `yaml:",inline"`
}

type placeGroupConfig struct {
	Identifier      string            `yaml:"Identifier"`
	Title           string            `yaml:"Title"`
	Path            string            `yaml:"Path"`
	PlaceGroupRef   string            `yaml:"PlaceGroupRef"`
	Join            *placeJoinConfig  `yaml:"Join"`
	PropertyMapping map[string]string `yaml:"PropertyMapping"`
}

type placeJoinConfig struct {
	Path     string `yaml:"Path"`
	Property string `yaml:"Property"`
}

type styleConfig struct {
	Identifier    string                        `yaml:"Identifier"`
	ColorMappings map[string]colorMappingConfig `yaml:"ColorMappings"`
}

type colorMappingConfig struct {
	ColorBar   string         `yaml:"ColorBar"`
	ColorFile  string         `yaml:"ColorFile"`
	ValueRange []float64      `yaml:"ValueRange"`
	Red        *channelConfig `yaml:"Red"`
	Green      *channelConfig `yaml:"Green"`
	Blue       *channelConfig `yaml:"Blue"`
}

type channelConfig struct {
	Variable   string    `yaml:"Variable"`
	ValueRange []float64 `yaml:"ValueRange"`
}

// Load parses a declarative server configuration into an immutable
// catalog snapshot. It performs no I/O towards any data backend: paths
// and store parameters are carried through as descriptors only.
//
// Any inconsistency aborts the load, so a snapshot is either complete
// or not published at all.
func Load(input io.Reader) (*Snapshot, error) {
	body, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: (%w)", err)
	}

	cfg := &serverConfig{}
	if err := yaml.UnmarshalStrict(body, cfg); err != nil {
		return nil, configError("server configuration", "", "%s", err.Error())
	}

	snapshot := &Snapshot{
		resourceIndex:   map[string]int{},
		placeGroupIndex: map[string]int{},
		styles:          map[string]domain.Style{},
		serviceInfo: domain.ServiceInfo{
			DatasetAttribution: cfg.DatasetAttribution,
			ServiceProvider:    stringifyKeys(cfg.ServiceProvider),
			Authentication:     stringifyKeys(cfg.Authentication),
		},
	}

	if cfg.DatasetChunkCacheSize != nil {
		size, err := parseMemSize(cfg.DatasetChunkCacheSize)
		if err != nil {
			return nil, configError("server configuration", "", "invalid DatasetChunkCacheSize: %s", err.Error())
		}
		snapshot.defaultChunkCacheSize = size
	}

	if err := loadStyles(cfg, snapshot); err != nil {
		return nil, err
	}

	if err := loadPlaceGroups(cfg, snapshot); err != nil {
		return nil, err
	}

	if err := loadDatasets(cfg, snapshot); err != nil {
		return nil, err
	}

	if err := checkComputedDatasets(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func loadStyles(cfg *serverConfig, snapshot *Snapshot) error {
	for _, sc := range cfg.Styles {
		if sc.Identifier == "" {
			return configError("Styles", "", "missing Identifier")
		}
		if _, exists := snapshot.styles[sc.Identifier]; exists {
			return configError("Styles", sc.Identifier, "duplicate Identifier")
		}

		style := domain.Style{
			Identifier:    sc.Identifier,
			ColorMappings: map[string]domain.ColorMapping{},
		}

		for varName, cm := range sc.ColorMappings {
			mapping, err := newColorMapping(sc.Identifier, varName, cm)
			if err != nil {
				return err
			}
			style.ColorMappings[varName] = mapping
		}

		snapshot.styles[sc.Identifier] = style
	}

	return nil
}

func newColorMapping(styleID, varName string, cm colorMappingConfig) (domain.ColorMapping, error) {
	none := domain.ColorMapping{}

	isComposite := cm.Red != nil || cm.Green != nil || cm.Blue != nil
	if isComposite {
		if cm.ColorBar != "" || cm.ColorFile != "" || cm.ValueRange != nil {
			return none, configError("Styles", styleID,
				"mapping %q mixes an RGB mapping with a simple mapping", varName)
		}
		if cm.Red == nil || cm.Green == nil || cm.Blue == nil {
			return none, configError("Styles", styleID,
				"mapping %q must declare all of Red, Green and Blue", varName)
		}

		rgb := &domain.RGBMapping{}
		for _, ch := range []struct {
			name   string
			cfg    *channelConfig
			target *domain.ChannelMapping
		}{
			{"Red", cm.Red, &rgb.Red},
			{"Green", cm.Green, &rgb.Green},
			{"Blue", cm.Blue, &rgb.Blue},
		} {
			if ch.cfg.Variable == "" {
				return none, configError("Styles", styleID,
					"channel %s of mapping %q is missing a Variable", ch.name, varName)
			}
			valueRange, err := newValueRange(styleID, varName, ch.cfg.ValueRange)
			if err != nil {
				return none, err
			}
			ch.target.Variable = ch.cfg.Variable
			ch.target.ValueRange = *valueRange
		}

		return domain.ColorMapping{RGB: rgb}, nil
	}

	if cm.ColorBar != "" && cm.ColorFile != "" {
		return none, configError("Styles", styleID,
			"mapping %q declares both ColorBar and ColorFile", varName)
	}
	if cm.ColorBar == "" && cm.ColorFile == "" {
		return none, configError("Styles", styleID,
			"mapping %q declares neither ColorBar nor ColorFile", varName)
	}

	valueRange, err := newValueRange(styleID, varName, cm.ValueRange)
	if err != nil {
		return none, err
	}

	return domain.ColorMapping{
		ColorBar:   cm.ColorBar,
		ColorFile:  cm.ColorFile,
		ValueRange: valueRange,
	}, nil
}

func newValueRange(styleID, varName string, valueRange []float64) (*domain.ValueRange, error) {
	if len(valueRange) != 2 {
		return nil, configError("Styles", styleID,
			"ValueRange of mapping %q must hold exactly two values", varName)
	}
	if valueRange[0] >= valueRange[1] {
		return nil, configError("Styles", styleID,
			"ValueRange of mapping %q must be strictly increasing, got [%v, %v]",
			varName, valueRange[0], valueRange[1])
	}
	return &domain.ValueRange{Min: valueRange[0], Max: valueRange[1]}, nil
}

func loadPlaceGroups(cfg *serverConfig, snapshot *Snapshot) error {
	for _, pg := range cfg.PlaceGroups {
		if pg.PlaceGroupRef != "" {
			return configError("PlaceGroups", pg.PlaceGroupRef,
				"PlaceGroupRef cannot be used in a global place group")
		}
		if pg.Identifier == "" {
			return configError("PlaceGroups", "", "missing Identifier")
		}
		if _, exists := snapshot.placeGroupIndex[pg.Identifier]; exists {
			return configError("PlaceGroups", pg.Identifier, "duplicate Identifier")
		}
		if pg.Path == "" {
			return configError("PlaceGroups", pg.Identifier, "missing Path")
		}

		group := domain.PlaceGroup{
			Identifier:      pg.Identifier,
			Title:           pg.Title,
			Path:            pg.Path,
			PropertyMapping: pg.PropertyMapping,
		}
		if group.Title == "" {
			group.Title = pg.Identifier
		}

		if pg.Join != nil {
			if pg.Join.Path == "" || pg.Join.Property == "" {
				return configError("PlaceGroups", pg.Identifier,
					"Join requires both Path and Property")
			}
			group.Join = &domain.PlaceJoin{
				Path:     pg.Join.Path,
				Property: pg.Join.Property,
			}
		}

		snapshot.placeGroupIndex[pg.Identifier] = len(snapshot.placeGroups)
		snapshot.placeGroups = append(snapshot.placeGroups, group)
	}

	return nil
}

func loadDatasets(cfg *serverConfig, snapshot *Snapshot) error {
	for _, dc := range cfg.Datasets {
		if dc.Identifier == "" {
			return configError("Datasets", "", "missing Identifier")
		}
		if _, exists := snapshot.resourceIndex[dc.Identifier]; exists {
			return configError("Datasets", dc.Identifier, "duplicate Identifier")
		}

		resource, err := newDatasetResource(cfg, snapshot, dc)
		if err != nil {
			return err
		}

		snapshot.resourceIndex[dc.Identifier] = len(snapshot.resources)
		snapshot.resources = append(snapshot.resources, resource)
	}

	return nil
}

func newDatasetResource(cfg *serverConfig, snapshot *Snapshot, dc datasetConfig) (domain.DatasetResource, error) {
	none := domain.DatasetResource{}

	resource := domain.DatasetResource{
		Identifier: dc.Identifier,
		Title:      dc.Title,
		Variables:  dc.Variables,
		Hidden:     dc.Hidden,
		AccessControl: domain.AccessControl{
			IsSubstitute: dc.AccessControl.IsSubstitute,
			// The global scope requirements apply to every dataset.
			RequiredScopes: unionOfScopes(
				cfg.AccessControl.RequiredScopes,
				dc.AccessControl.RequiredScopes,
			),
		},
		Style:             dc.Style,
		TimeSeriesDataset: dc.TimeSeriesDataset,
	}
	if resource.Title == "" {
		resource.Title = dc.Identifier
	}

	if dc.Path == "" {
		return none, configError("Datasets", dc.Identifier, "missing Path")
	}
	resource.Path = dc.Path

	if dc.Function != "" || len(dc.InputDatasets) > 0 {
		resource.Kind = domain.SourceComputed
		resource.Function = dc.Function
		if resource.Function == "" {
			resource.Function = DefaultComputeFunction
		}
		if len(dc.InputDatasets) == 0 {
			return none, configError("Datasets", dc.Identifier,
				"computed dataset declares no InputDatasets")
		}
		resource.InputDatasets = dc.InputDatasets
		resource.InputParameters = dc.InputParameters
	} else {
		resource.Kind = domain.SourceStored
		resource.FileSystem = dc.FileSystem
		if resource.FileSystem == "" {
			resource.FileSystem = "file"
		}
		resource.Endpoint = dc.Endpoint
		resource.Region = dc.Region
		resource.Anonymous = dc.Anonymous
	}

	if dc.ChunkCacheSize != nil {
		size, err := parseMemSize(dc.ChunkCacheSize)
		if err != nil {
			return none, configError("Datasets", dc.Identifier,
				"invalid ChunkCacheSize: %s", err.Error())
		}
		resource.ChunkCacheSize = size
	} else {
		resource.ChunkCacheSize = snapshot.defaultChunkCacheSize
	}

	if dc.BoundingBox != nil {
		if len(dc.BoundingBox) != 4 {
			return none, configError("Datasets", dc.Identifier,
				"BoundingBox must hold exactly four values (west, south, east, north)")
		}
		bbox := &domain.BoundingBox{
			West:  dc.BoundingBox[0],
			South: dc.BoundingBox[1],
			East:  dc.BoundingBox[2],
			North: dc.BoundingBox[3],
		}
		if bbox.West >= bbox.East || bbox.South >= bbox.North {
			return none, configError("Datasets", dc.Identifier,
				"BoundingBox west must be less than east and south less than north")
		}
		resource.BoundingBox = bbox
	}

	if dc.Augmentation != nil {
		if dc.Augmentation.Path == "" {
			return none, configError("Datasets", dc.Identifier,
				"Augmentation is missing a Path")
		}
		function := dc.Augmentation.Function
		if function == "" {
			function = DefaultAugmentationFunction
		}
		resource.Augmentation = &domain.AugmentationSpec{
			Path:            dc.Augmentation.Path,
			Function:        function,
			InputParameters: dc.Augmentation.InputParameters,
		}
	}

	for _, ref := range dc.PlaceGroups {
		if ref.PlaceGroupRef == "" {
			return none, configError("Datasets", dc.Identifier,
				"PlaceGroups entries must reference a place group via PlaceGroupRef")
		}
		if len(ref.Rest) > 0 {
			return none, configError("Datasets", dc.Identifier,
				"PlaceGroupRef must be the only entry in a PlaceGroups item")
		}
		if _, exists := snapshot.placeGroupIndex[ref.PlaceGroupRef]; !exists {
			return none, configError("Datasets", dc.Identifier,
				"referenced place group %q does not exist", ref.PlaceGroupRef)
		}
		resource.PlaceGroups = append(resource.PlaceGroups, ref.PlaceGroupRef)
	}

	if resource.Style != "" {
		if _, exists := snapshot.styles[resource.Style]; !exists {
			return none, configError("Datasets", dc.Identifier,
				"referenced style %q does not exist", resource.Style)
		}
	}

	return resource, nil
}

// checkComputedDatasets validates that every input of a computed
// dataset resolves within the catalog and that the directed graph of
// computed to input edges is acyclic. Cycles are a load time failure,
// never a request time one.
func checkComputedDatasets(snapshot *Snapshot) error {
	for _, r := range snapshot.resources {
		if !r.IsComputed() {
			continue
		}
		for _, input := range r.InputDatasets {
			if _, exists := snapshot.resourceIndex[input]; !exists {
				return configError("Datasets", r.Identifier,
					"input dataset %q does not exist", input)
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := map[string]int{}
	var trail []string

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			cycle := append(trailFrom(trail, id), id)
			return fmt.Errorf("%w: %s", ErrCyclicDependency, strings.Join(cycle, " -> "))
		}

		state[id] = visiting
		trail = append(trail, id)

		resource, _ := snapshot.Resource(id)
		for _, input := range resource.InputDatasets {
			if err := visit(input); err != nil {
				return err
			}
		}

		trail = trail[:len(trail)-1]
		state[id] = done
		return nil
	}

	for _, r := range snapshot.resources {
		if err := visit(r.Identifier); err != nil {
			return err
		}
	}

	return nil
}

func trailFrom(trail []string, id string) []string {
	for i, t := range trail {
		if t == id {
			return trail[i:]
		}
	}
	return trail
}

func unionOfScopes(global, local []string) []string {
	if len(global) == 0 {
		return local
	}

	union := make([]string, 0, len(global)+len(local))
	seen := map[string]struct{}{}
	for _, scope := range append(append([]string{}, global...), local...) {
		if _, dup := seen[scope]; dup {
			continue
		}
		seen[scope] = struct{}{}
		union = append(union, scope)
	}
	return union
}

func parseMemSize(size any) (uint64, error) {
	switch v := size.(type) {
	case string:
		return humanize.ParseBytes(v)
	case int:
		if v < 0 {
			return 0, fmt.Errorf("size must not be negative")
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("unsupported size value %v", size)
	}
}

// stringifyKeys rewrites nested yaml maps so that the passthrough
// blocks can be marshalled to JSON unchanged.
func stringifyKeys(value map[string]any) map[string]any {
	if value == nil {
		return nil
	}
	result := make(map[string]any, len(value))
	for k, v := range value {
		result[k] = stringifyValue(v)
	}
	return result
}

func stringifyValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			result[fmt.Sprintf("%v", k)] = stringifyValue(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = stringifyValue(val)
		}
		return result
	default:
		return v
	}
}
