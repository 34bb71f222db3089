package di

import (
	"github.com/devantler-tech/kwatch/pkg/k8s"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Dependency providers.

// NewRuntime constructs the runtime used by the root command. It provides the
// OS filesystem and the kubeconfig-based cluster connector.
func NewRuntime() *Runtime {
	return New(
		ProvideFs(afero.NewOsFs()),
		ProvideConnectorFactory(k8s.NewConfigConnector),
	)
}

// ProvideFs registers fs as the filesystem used for exports and diff scratch
// files. Later modules replace earlier registrations.
func ProvideFs(fs afero.Fs) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (afero.Fs, error) {
			return fs, nil
		})

		return nil
	}
}

// ProvideConnectorFactory registers the factory opening cluster connections.
func ProvideConnectorFactory(factory k8s.ConnectorFactory) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (k8s.ConnectorFactory, error) {
			return factory, nil
		})

		return nil
	}
}
