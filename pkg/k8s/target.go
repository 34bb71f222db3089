package k8s

import (
	"fmt"

	"github.com/devantler-tech/kwatch/pkg/k8s/catalog"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
)

// TargetOptions are the user filters applied to a resolved resource.
type TargetOptions struct {
	// Namespace is the explicitly requested namespace, empty when none.
	Namespace string
	// AllNamespaces watches every namespace and wins over Namespace.
	AllNamespaces bool
	// DefaultNamespace is the kubeconfig namespace used when nothing else
	// is requested.
	DefaultNamespace string
	// LabelSelector is passed through after validation.
	LabelSelector string
	// Name restricts the watch to one object.
	Name string
}

// Target is one resource type plus the scope and selectors to watch it with.
type Target struct {
	Resource catalog.Resource
	// Namespace is metav1.NamespaceAll for cluster-wide watches.
	Namespace     string
	LabelSelector string
	FieldSelector string
}

// NewTarget combines a resolved resource with the user filters.
//
// Cluster-scoped resources are always watched cluster-wide; asking for one
// of them in an explicit namespace is a *ScopeMismatchError, even together
// with AllNamespaces.
func NewTarget(resource catalog.Resource, opts TargetOptions) (Target, error) {
	target := Target{
		Resource:      resource,
		LabelSelector: opts.LabelSelector,
	}

	if opts.LabelSelector != "" {
		_, err := labels.Parse(opts.LabelSelector)
		if err != nil {
			return Target{}, fmt.Errorf("%w %q: %w", ErrInvalidSelector, opts.LabelSelector, err)
		}
	}

	if opts.Name != "" {
		target.FieldSelector = fields.OneTermEqualSelector("metadata.name", opts.Name).String()
	}

	switch {
	case !resource.Namespaced():
		if opts.Namespace != "" {
			return Target{}, &ScopeMismatchError{Resource: resource.Plural, Namespace: opts.Namespace}
		}

		target.Namespace = metav1.NamespaceAll
	case opts.AllNamespaces:
		target.Namespace = metav1.NamespaceAll
	case opts.Namespace != "":
		target.Namespace = opts.Namespace
	default:
		target.Namespace = opts.DefaultNamespace
	}

	return target, nil
}

// ListOptions returns the selectors of the target as list options.
func (t Target) ListOptions() metav1.ListOptions {
	return metav1.ListOptions{
		LabelSelector: t.LabelSelector,
		FieldSelector: t.FieldSelector,
	}
}

// Describe names the target for status lines and logs.
func (t Target) Describe() string {
	scope := "all namespaces"
	if t.Namespace != metav1.NamespaceAll {
		scope = "namespace " + t.Namespace
	}

	if !t.Resource.Namespaced() {
		scope = "cluster"
	}

	return fmt.Sprintf("%s (%s) in %s", t.Resource.Plural, t.Resource.APIVersion, scope)
}
