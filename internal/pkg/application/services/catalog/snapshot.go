package catalog

import (
	"github.com/diwise/api-datacubes/internal/pkg/domain"
)

// Snapshot is a fully resolved, immutable view of the server
// configuration. Arbitrarily many readers may share a snapshot
// without locking, since no operation on it mutates state.
type Snapshot struct {
	resources     []domain.DatasetResource
	resourceIndex map[string]int

	placeGroups     []domain.PlaceGroup
	placeGroupIndex map[string]int

	styles map[string]domain.Style

	serviceInfo           domain.ServiceInfo
	defaultChunkCacheSize uint64
}

// Resources returns all dataset resources in declared order,
// regardless of visibility.
func (s *Snapshot) Resources() []domain.DatasetResource {
	return s.resources
}

func (s *Snapshot) Resource(id string) (domain.DatasetResource, bool) {
	idx, exists := s.resourceIndex[id]
	if !exists {
		return domain.DatasetResource{}, false
	}
	return s.resources[idx], true
}

// PlaceGroups returns the global place groups in declared order.
func (s *Snapshot) PlaceGroups() []domain.PlaceGroup {
	return s.placeGroups
}

func (s *Snapshot) PlaceGroup(id string) (domain.PlaceGroup, bool) {
	idx, exists := s.placeGroupIndex[id]
	if !exists {
		return domain.PlaceGroup{}, false
	}
	return s.placeGroups[idx], true
}

func (s *Snapshot) Style(id string) (domain.Style, bool) {
	style, exists := s.styles[id]
	return style, exists
}

func (s *Snapshot) ServiceInfo() domain.ServiceInfo {
	return s.serviceInfo
}

// ResolveAugmentation returns the executable computation descriptor
// for a resource, or nil when the resource is a plain stored cube
// without a computed variable attachment. The descriptor is handed to
// the compute collaborator as is; nothing is executed here.
//
// Input datasets and cycles were validated when the snapshot was
// loaded, so resolution is a cheap lookup.
func (s *Snapshot) ResolveAugmentation(r domain.DatasetResource) *domain.AugmentationSpec {
	if r.IsComputed() {
		return &domain.AugmentationSpec{
			Path:            r.Path,
			Function:        r.Function,
			InputDatasets:   r.InputDatasets,
			InputParameters: r.InputParameters,
		}
	}

	return r.Augmentation
}

// TimeSeriesResource returns the companion resource to use for time
// series queries. A missing companion falls back to the resource
// itself.
func (s *Snapshot) TimeSeriesResource(r domain.DatasetResource) domain.DatasetResource {
	if r.TimeSeriesDataset == "" {
		return r
	}
	if companion, exists := s.Resource(r.TimeSeriesDataset); exists {
		return companion
	}
	return r
}

// StyleFor returns the style referenced by the resource, falling back
// to the style named "default" when the resource does not reference
// one.
func (s *Snapshot) StyleFor(r domain.DatasetResource) (domain.Style, bool) {
	styleID := r.Style
	if styleID == "" {
		styleID = "default"
	}
	return s.Style(styleID)
}

// ResourcePlaceGroups returns the place groups referenced by the
// resource, in reference order.
func (s *Snapshot) ResourcePlaceGroups(r domain.DatasetResource) []domain.PlaceGroup {
	groups := make([]domain.PlaceGroup, 0, len(r.PlaceGroups))
	for _, id := range r.PlaceGroups {
		if group, exists := s.PlaceGroup(id); exists {
			groups = append(groups, group)
		}
	}
	return groups
}
