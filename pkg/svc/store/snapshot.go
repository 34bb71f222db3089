package store

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Identity is the stable key of one cluster object across its history.
// Namespace is empty for cluster-scoped objects.
type Identity struct {
	Namespace string
	Name      string
}

// String returns namespace/name, or just the name for cluster-scoped objects.
func (i Identity) String() string {
	if i.Namespace == "" {
		return i.Name
	}

	return i.Namespace + "/" + i.Name
}

// Snapshot is one observed state of an object. Snapshots are never mutated
// after creation; callers that need to change the document must DeepCopy it.
type Snapshot struct {
	Identity        Identity
	ResourceVersion string
	Object          *unstructured.Unstructured
}

// NewSnapshot captures obj as a snapshot. The object is deep-copied so later
// mutations by the caller cannot leak into the history.
func NewSnapshot(obj *unstructured.Unstructured) Snapshot {
	copied := obj.DeepCopy()

	return Snapshot{
		Identity: Identity{
			Namespace: copied.GetNamespace(),
			Name:      copied.GetName(),
		},
		ResourceVersion: copied.GetResourceVersion(),
		Object:          copied,
	}
}

// SameVersion reports whether both snapshots describe the same object at the
// same resource version.
func (s Snapshot) SameVersion(other Snapshot) bool {
	return s.Identity == other.Identity && s.ResourceVersion == other.ResourceVersion
}
