package catalog

import "strings"

// Resolve maps a kind, plural or short name to one resource. Every group
// contributes its representatives; among matches the group whose name sorts
// first wins, which puts the core group ahead of everything else the way
// kubectl does.
func Resolve(catalog *Catalog, token string) (Resource, error) {
	for _, group := range catalog.Groups() {
		for _, resource := range group.Representatives() {
			if matches(resource.Descriptor, token) {
				return resource, nil
			}
		}
	}

	return Resource{}, &ResolutionError{Token: token}
}

func matches(descriptor Descriptor, token string) bool {
	if strings.EqualFold(descriptor.Kind, token) || strings.EqualFold(descriptor.Plural, token) {
		return true
	}

	for _, shortName := range descriptor.ShortNames {
		if strings.EqualFold(shortName, token) {
			return true
		}
	}

	return false
}
