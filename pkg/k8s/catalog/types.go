package catalog

import (
	"sort"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// CoreGroup is the name of the legacy core API group.
const CoreGroup = ""

// Scope tells whether a resource lives in a namespace.
type Scope string

const (
	// ScopeNamespaced marks namespace-scoped resources.
	ScopeNamespaced Scope = "Namespaced"
	// ScopeCluster marks cluster-scoped resources.
	ScopeCluster Scope = "Cluster"
)

// Descriptor identifies one resource at one group version.
type Descriptor struct {
	// Group is empty for the core group.
	Group string
	// Version is the version within the group, e.g. v1beta1.
	Version string
	// APIVersion is "v1" for core and "group/version" otherwise.
	APIVersion string
	// Kind is the singular PascalCase name.
	Kind string
	// Plural is the resource name used in URLs.
	Plural string
	// ShortNames are the abbreviations accepted by kubectl.
	ShortNames []string
}

// GroupVersionResource returns the coordinates used by the dynamic client.
func (d Descriptor) GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: d.Group, Version: d.Version, Resource: d.Plural}
}

// GroupVersionKind returns the kind coordinates of the descriptor.
func (d Descriptor) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: d.Group, Version: d.Version, Kind: d.Kind}
}

// Capability describes what can be done with a resource.
type Capability struct {
	Scope        Scope
	Operations   []string
	Subresources []Resource
}

// Resource pairs a descriptor with its capability.
type Resource struct {
	Descriptor
	Capability Capability
}

// Namespaced reports whether the resource is namespace-scoped.
func (r Resource) Namespaced() bool {
	return r.Capability.Scope == ScopeNamespaced
}

// GroupVersion holds the resources served by one group at one version.
type GroupVersion struct {
	Version   string
	Resources []Resource
}

// APIGroup is one API group with its versions ordered most preferred first.
type APIGroup struct {
	Name             string
	Versions         []GroupVersion
	PreferredVersion string
}

// Representatives returns one resource per kind, taken from the most
// preferred version that serves the kind. Results follow version priority
// and then discovery order.
func (g *APIGroup) Representatives() []Resource {
	seen := make(map[string]struct{})

	var out []Resource

	for _, version := range g.Versions {
		for _, resource := range version.Resources {
			if _, ok := seen[resource.Kind]; ok {
				continue
			}

			seen[resource.Kind] = struct{}{}
			out = append(out, resource)
		}
	}

	return out
}

// Catalog holds every API group known at session start. It is read-only
// once Build returns.
type Catalog struct {
	groups map[string]*APIGroup
}

// New assembles a catalog from already built groups. Versions are sorted by
// priority; a later group with the same name replaces an earlier one.
func New(groups ...*APIGroup) *Catalog {
	catalog := &Catalog{groups: make(map[string]*APIGroup, len(groups))}

	for _, group := range groups {
		sortVersions(group.Versions)
		catalog.groups[group.Name] = group
	}

	return catalog
}

// Group returns the named group.
func (c *Catalog) Group(name string) (*APIGroup, bool) {
	group, ok := c.groups[name]

	return group, ok
}

// Groups returns every group sorted by name, core first.
func (c *Catalog) Groups() []*APIGroup {
	out := make([]*APIGroup, 0, len(c.groups))
	for _, group := range c.groups {
		out = append(out, group)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Len returns the number of groups.
func (c *Catalog) Len() int {
	return len(c.groups)
}
