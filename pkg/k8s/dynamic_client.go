package k8s

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
)

// Cluster bundles the clients of one cluster connection.
type Cluster struct {
	Discovery discovery.DiscoveryInterface
	Dynamic   dynamic.Interface
	// DefaultNamespace is used when neither a namespace nor all namespaces
	// were requested.
	DefaultNamespace string
}

// Connector opens a cluster connection.
type Connector interface {
	Connect() (*Cluster, error)
}

// ConnectorFactory builds a Connector once the kubeconfig flags are parsed.
type ConnectorFactory func(getter genericclioptions.RESTClientGetter, verifyTLS bool) Connector

// NewConfigConnector is the ConnectorFactory used outside of tests.
func NewConfigConnector(getter genericclioptions.RESTClientGetter, verifyTLS bool) Connector {
	return ConfigConnector{Getter: getter, VerifyTLS: verifyTLS}
}

// ConfigConnector connects with the configuration found by a
// RESTClientGetter.
type ConfigConnector struct {
	Getter    genericclioptions.RESTClientGetter
	VerifyTLS bool
}

// Connect implements Connector.
func (c ConfigConnector) Connect() (*Cluster, error) {
	restConfig, err := BuildRESTConfig(c.Getter, c.VerifyTLS)
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config: %w", err)
	}

	namespace, err := DefaultNamespace(c.Getter)
	if err != nil {
		return nil, err
	}

	return NewCluster(restConfig, namespace)
}

// NewCluster creates the discovery and dynamic clients for restConfig.
func NewCluster(restConfig *rest.Config, defaultNamespace string) (*Cluster, error) {
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &Cluster{
		Discovery:        discoveryClient,
		Dynamic:          dynamicClient,
		DefaultNamespace: defaultNamespace,
	}, nil
}
