// Package di wires the services shared by kwatch commands with samber/do.
//
// A Runtime holds the base modules. Every Invoke builds a fresh injector,
// registers the modules and hands the injector to the handler; tests replace
// the filesystem or the cluster connection by passing extra modules.
package di
