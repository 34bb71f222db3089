// Package k8s connects to a Kubernetes cluster and describes what to watch.
//
// Key features:
//   - REST config building from kubeconfig flags (BuildRESTConfig, DefaultNamespace)
//   - Discovery and dynamic client creation (Connector, NewCluster)
//   - Watch target construction with scope validation (NewTarget)
//
// For resource discovery and name resolution, see the [catalog] sub-package.
package k8s
