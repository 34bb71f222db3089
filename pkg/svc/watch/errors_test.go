package watch_test

import (
	"testing"

	"github.com/devantler-tech/kwatch/pkg/svc/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportError(t *testing.T) {
	t.Parallel()

	var err error = &watch.TransportError{Resource: "pods", Err: errFeedBroken}

	require.ErrorIs(t, err, watch.ErrTransport)
	require.ErrorIs(t, err, errFeedBroken)
	assert.Equal(t, "watch stream failed: pods: feed broken", err.Error())
}
