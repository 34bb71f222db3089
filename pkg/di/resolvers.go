package di

import (
	"fmt"

	"github.com/devantler-tech/kwatch/pkg/k8s"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Dependency resolvers.

// ResolveFs retrieves the filesystem dependency.
func ResolveFs(injector Injector) (afero.Fs, error) {
	fs, err := do.Invoke[afero.Fs](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve filesystem dependency: %w", err)
	}

	return fs, nil
}

// ResolveConnectorFactory retrieves the cluster connector factory.
func ResolveConnectorFactory(injector Injector) (k8s.ConnectorFactory, error) {
	factory, err := do.Invoke[k8s.ConnectorFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve connector factory dependency: %w", err)
	}

	return factory, nil
}
