package catalog

import (
	"sort"

	"k8s.io/apimachinery/pkg/version"
)

// sortVersions orders versions most preferred first: GA before beta before
// alpha, higher numbers first within a class, non kube-like names last.
func sortVersions(versions []GroupVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		return HigherPriority(versions[i].Version, versions[j].Version)
	})
}

// HigherPriority reports whether version a is preferred over version b.
func HigherPriority(a, b string) bool {
	return version.CompareKubeAwareVersionStrings(a, b) > 0
}
