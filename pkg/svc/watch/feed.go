package watch

import (
	"context"
	"errors"
	"io"

	"github.com/devantler-tech/kwatch/pkg/k8s"
	"github.com/devantler-tech/kwatch/pkg/svc/store"
	"github.com/sirupsen/logrus"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	apiwatch "k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic"
)

// errRelist asks the feed to start over with a fresh list.
var errRelist = errors.New("resource version expired")

// Feed produces snapshots of the watched objects until ctx is cancelled or
// the watch fails. Every applied object is passed to emit; an emit error
// stops the feed and is returned unchanged.
type Feed interface {
	Watch(ctx context.Context, emit func(store.Snapshot) error) error
}

// ListWatchFeed lists a target once and then follows its watch stream. The
// initial list and every later add or update become snapshots; deletions are
// not reported.
//
// emit runs on the goroutine reading the stream, so nothing is read from the
// server while emit blocks.
type ListWatchFeed struct {
	client dynamic.Interface
	target k8s.Target
}

// NewListWatchFeed creates a feed for target.
func NewListWatchFeed(client dynamic.Interface, target k8s.Target) *ListWatchFeed {
	return &ListWatchFeed{client: client, target: target}
}

// Watch implements Feed.
func (f *ListWatchFeed) Watch(ctx context.Context, emit func(store.Snapshot) error) error {
	log := logrus.WithFields(logrus.Fields{
		"resource":  f.target.Resource.Plural,
		"namespace": f.target.Namespace,
	})

	resourceVersion := ""

	for ctx.Err() == nil {
		if resourceVersion == "" {
			listed, err := f.list(ctx, emit)
			if err != nil {
				return f.stopped(ctx, err)
			}

			resourceVersion = listed
			log.WithField("resourceVersion", resourceVersion).Info("watching")
		}

		next, err := f.follow(ctx, resourceVersion, emit)

		switch {
		case errors.Is(err, errRelist):
			log.WithError(err).Debug("relisting")

			resourceVersion = ""
		case err != nil:
			return f.stopped(ctx, err)
		default:
			resourceVersion = next
		}
	}

	return nil
}

// list emits every current object and returns the list resource version.
func (f *ListWatchFeed) list(ctx context.Context, emit func(store.Snapshot) error) (string, error) {
	list, err := f.resource().List(ctx, f.target.ListOptions())
	if err != nil {
		return "", f.transportError(err)
	}

	for i := range list.Items {
		err = emit(store.NewSnapshot(&list.Items[i]))
		if err != nil {
			return "", err
		}
	}

	return list.GetResourceVersion(), nil
}

// follow reads one watch stream from resourceVersion until it ends. It
// returns the last resource version seen so the next stream resumes there.
func (f *ListWatchFeed) follow(
	ctx context.Context,
	resourceVersion string,
	emit func(store.Snapshot) error,
) (string, error) {
	opts := f.target.ListOptions()
	opts.ResourceVersion = resourceVersion
	opts.AllowWatchBookmarks = true

	stream, err := f.resource().Watch(ctx, opts)
	if err != nil {
		if isRecoverable(err) {
			return "", errRelist
		}

		return "", f.transportError(err)
	}
	defer stream.Stop()

	for {
		select {
		case <-ctx.Done():
			return resourceVersion, nil
		case event, ok := <-stream.ResultChan():
			if !ok {
				return resourceVersion, nil
			}

			if event.Type == apiwatch.Error {
				err := apierrors.FromObject(event.Object)
				if isRecoverable(err) {
					return "", errRelist
				}

				return "", f.transportError(err)
			}

			object, ok := event.Object.(*unstructured.Unstructured)
			if !ok {
				continue
			}

			resourceVersion = object.GetResourceVersion()

			if event.Type != apiwatch.Added && event.Type != apiwatch.Modified {
				continue
			}

			err := emit(store.NewSnapshot(object))
			if err != nil {
				return "", err
			}
		}
	}
}

func (f *ListWatchFeed) resource() dynamic.ResourceInterface {
	resource := f.client.Resource(f.target.Resource.GroupVersionResource())
	if f.target.Namespace == "" {
		return resource
	}

	return resource.Namespace(f.target.Namespace)
}

func (f *ListWatchFeed) transportError(err error) error {
	return &TransportError{Resource: f.target.Resource.Plural, Err: err}
}

// stopped drops failures caused by ctx being cancelled.
func (f *ListWatchFeed) stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}

	return err
}

// isRecoverable reports watch errors that are answered by listing again.
func isRecoverable(err error) bool {
	return apierrors.IsResourceExpired(err) ||
		apierrors.IsGone(err) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
