// Package configmanager loads the kwatch command configuration.
//
// Values come from command-line flags and KWATCH_* environment variables and
// are decoded with viper into a Config. Enumerated options such as the output
// mode, the diff backend and the log level are parsed through their
// UnmarshalText methods.
package configmanager
