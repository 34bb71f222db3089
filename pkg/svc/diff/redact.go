package diff

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Transform removes fields from both sides of a pair in place.
// A nil side must be tolerated.
type Transform func(left, right *unstructured.Unstructured)

// Pipeline is an ordered, immutable list of transforms.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline builds the default pipeline. The type envelope is always
// stripped first; managed fields are stripped unless includeManagedFields.
func NewPipeline(includeManagedFields bool) Pipeline {
	transforms := []Transform{StripTypeEnvelope}
	if !includeManagedFields {
		transforms = append(transforms, StripManagedFields)
	}

	return Pipeline{transforms: transforms}
}

// Len returns the number of transforms in the pipeline.
func (p Pipeline) Len() int {
	return len(p.transforms)
}

// Apply runs every transform on deep copies of left and right and returns the
// copies. The inputs are never modified.
func (p Pipeline) Apply(
	left, right *unstructured.Unstructured,
) (*unstructured.Unstructured, *unstructured.Unstructured) {
	leftCopy := deepCopy(left)
	rightCopy := deepCopy(right)

	for _, transform := range p.transforms {
		transform(leftCopy, rightCopy)
	}

	return leftCopy, rightCopy
}

// StripTypeEnvelope removes apiVersion and kind.
func StripTypeEnvelope(left, right *unstructured.Unstructured) {
	for _, obj := range []*unstructured.Unstructured{left, right} {
		if obj == nil || obj.Object == nil {
			continue
		}

		delete(obj.Object, "apiVersion")
		delete(obj.Object, "kind")
	}
}

// StripManagedFields removes metadata.managedFields.
func StripManagedFields(left, right *unstructured.Unstructured) {
	for _, obj := range []*unstructured.Unstructured{left, right} {
		if obj == nil || obj.Object == nil {
			continue
		}

		unstructured.RemoveNestedField(obj.Object, "metadata", "managedFields")
	}
}

func deepCopy(obj *unstructured.Unstructured) *unstructured.Unstructured {
	if obj == nil {
		return nil
	}

	return obj.DeepCopy()
}
