package k8s

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/rest"
)

// BuildRESTConfig loads the client configuration described by getter, which
// is normally the kubeconfig, context and cluster flags of the command line.
//
// Unless verifyTLS is set, server certificates are accepted without
// verification and any configured CA bundle is dropped, because client-go
// refuses a config that is both insecure and pinned to a CA.
func BuildRESTConfig(
	getter genericclioptions.RESTClientGetter,
	verifyTLS bool,
) (*rest.Config, error) {
	restConfig, err := getter.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	restConfig = rest.CopyConfig(restConfig)

	if !verifyTLS {
		restConfig.Insecure = true
		restConfig.CAData = nil
		restConfig.CAFile = ""
	}

	return restConfig, nil
}

// DefaultNamespace returns the namespace of the active kubeconfig context, or
// "default" when the context does not name one.
func DefaultNamespace(getter genericclioptions.RESTClientGetter) (string, error) {
	namespace, _, err := getter.ToRawKubeConfigLoader().Namespace()
	if err != nil {
		return "", fmt.Errorf("failed to read kubeconfig namespace: %w", err)
	}

	return namespace, nil
}
