package catalog

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// DiscoveryClient is the part of discovery.DiscoveryInterface used to build
// a catalog.
type DiscoveryClient interface {
	ServerGroups() (*metav1.APIGroupList, error)
	ServerResourcesForGroupVersion(groupVersion string) (*metav1.APIResourceList, error)
}

// Build queries every API group, including the core group, and assembles
// the catalog. Any failed request and any group without versions aborts the
// build with a *DiscoveryError.
func Build(client DiscoveryClient) (*Catalog, error) {
	groupList, err := client.ServerGroups()
	if err != nil {
		return nil, &DiscoveryError{Err: fmt.Errorf("list api groups: %w", err)}
	}

	groups := make([]*APIGroup, 0, len(groupList.Groups))

	for _, apiGroup := range groupList.Groups {
		group, err := queryGroup(client, apiGroup)
		if err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	return New(groups...), nil
}

func queryGroup(client DiscoveryClient, apiGroup metav1.APIGroup) (*APIGroup, error) {
	log := logrus.WithField("group", apiGroup.Name)
	log.Debug("listing group versions")

	if len(apiGroup.Versions) == 0 {
		return nil, &DiscoveryError{Group: apiGroup.Name, Err: ErrNoVersions}
	}

	group := &APIGroup{
		Name:             apiGroup.Name,
		PreferredVersion: apiGroup.PreferredVersion.Version,
		Versions:         make([]GroupVersion, 0, len(apiGroup.Versions)),
	}

	for _, version := range apiGroup.Versions {
		list, err := client.ServerResourcesForGroupVersion(version.GroupVersion)
		if err != nil {
			return nil, &DiscoveryError{
				Group: apiGroup.Name,
				Err:   fmt.Errorf("list resources for %s: %w", version.GroupVersion, err),
			}
		}

		groupVersion, err := newGroupVersion(version.Version, list)
		if err != nil {
			return nil, &DiscoveryError{Group: apiGroup.Name, Err: err}
		}

		log.WithField("version", version.Version).
			WithField("resources", len(groupVersion.Resources)).
			Debug("parsed group version")

		group.Versions = append(group.Versions, groupVersion)
	}

	sortVersions(group.Versions)

	return group, nil
}

// newGroupVersion extracts the first-class resources of one version.
// Subresources are nested under their parent instead.
func newGroupVersion(version string, list *metav1.APIResourceList) (GroupVersion, error) {
	groupVersion := GroupVersion{Version: version}

	for _, apiResource := range list.APIResources {
		if strings.Contains(apiResource.Name, "/") {
			continue
		}

		descriptor, err := parseDescriptor(apiResource, list.GroupVersion)
		if err != nil {
			return GroupVersion{}, err
		}

		capability, err := parseCapability(list, apiResource.Name)
		if err != nil {
			return GroupVersion{}, err
		}

		groupVersion.Resources = append(groupVersion.Resources, Resource{
			Descriptor: descriptor,
			Capability: capability,
		})
	}

	return groupVersion, nil
}

func parseDescriptor(apiResource metav1.APIResource, groupVersion string) (Descriptor, error) {
	parsed, err := schema.ParseGroupVersion(groupVersion)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid group version %q: %w", groupVersion, err)
	}

	group := apiResource.Group
	if group == "" {
		group = parsed.Group
	}

	version := apiResource.Version
	if version == "" {
		version = parsed.Version
	}

	return Descriptor{
		Group:      group,
		Version:    version,
		APIVersion: parsed.String(),
		Kind:       apiResource.Kind,
		Plural:     apiResource.Name,
		ShortNames: append([]string(nil), apiResource.ShortNames...),
	}, nil
}

// parseCapability builds the capability of the named resource, recursing
// into every "name/sub" entry of the same list.
func parseCapability(list *metav1.APIResourceList, name string) (Capability, error) {
	var found *metav1.APIResource

	for index := range list.APIResources {
		if list.APIResources[index].Name == name {
			found = &list.APIResources[index]

			break
		}
	}

	if found == nil {
		return Capability{}, fmt.Errorf("resource %q missing from %s", name, list.GroupVersion)
	}

	capability := Capability{
		Scope:      ScopeCluster,
		Operations: append([]string(nil), found.Verbs...),
	}

	if found.Namespaced {
		capability.Scope = ScopeNamespaced
	}

	prefix := name + "/"

	for _, candidate := range list.APIResources {
		subName, ok := strings.CutPrefix(candidate.Name, prefix)
		if !ok {
			continue
		}

		descriptor, err := parseDescriptor(candidate, list.GroupVersion)
		if err != nil {
			return Capability{}, err
		}

		descriptor.Plural = subName

		subCapability, err := parseCapability(list, candidate.Name)
		if err != nil {
			return Capability{}, err
		}

		capability.Subresources = append(capability.Subresources, Resource{
			Descriptor: descriptor,
			Capability: subCapability,
		})
	}

	return capability, nil
}
