package configmanager

import (
	"fmt"
	"strings"

	"github.com/devantler-tech/kwatch/pkg/svc/diff"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. KWATCH_MODE.
const EnvPrefix = "KWATCH"

// Configuration keys. Flag-backed keys share the flag name.
const (
	KeyNamespace            = "namespace"
	KeyAllNamespaces        = "all-namespaces"
	KeySelector             = "selector"
	KeyMode                 = "mode"
	KeyDiffTool             = "diff-tool"
	KeyUseTLS               = "use-tls"
	KeyIncludeManagedFields = "include-managed-fields"
	KeyExport               = "export"
	KeyLogLevel             = "log-level"
	// KeyLogFile has no flag; it is only read from KWATCH_LOG_FILE.
	KeyLogFile = "log-file"
)

// Config is the resolved configuration of one kwatch invocation.
type Config struct {
	// Resource is the resource type argument, e.g. "pods" or "deploy".
	Resource string `mapstructure:"resource"`
	// Name restricts the watch to a single object when set.
	Name string `mapstructure:"name"`

	Namespace            string       `mapstructure:"namespace"`
	AllNamespaces        bool         `mapstructure:"all-namespaces"`
	Selector             string       `mapstructure:"selector"`
	Mode                 Mode         `mapstructure:"mode"`
	DiffTool             diff.Backend `mapstructure:"diff-tool"`
	UseTLS               bool         `mapstructure:"use-tls"`
	IncludeManagedFields bool         `mapstructure:"include-managed-fields"`
	Export               string       `mapstructure:"export"`
	LogLevel             logrus.Level `mapstructure:"log-level"`
	LogFile              string       `mapstructure:"log-file"`
}

// Backend returns the diff backend to render with. The interactive view
// always renders panes.
func (c *Config) Backend() diff.Backend {
	if c.Mode == ModeTUI {
		return diff.BackendStructural
	}

	return c.DiffTool
}

// Manager binds flags and environment variables to a Config.
type Manager struct {
	Viper *viper.Viper
}

// NewManager returns a manager reading KWATCH_* environment variables.
func NewManager() *Manager {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	viperInstance.SetDefault(KeyMode, string(ModeTUI))
	viperInstance.SetDefault(KeyDiffTool, string(diff.BackendStructural))
	viperInstance.SetDefault(KeyLogLevel, logrus.WarnLevel.String())
	viperInstance.SetDefault(KeyLogFile, "")

	return &Manager{Viper: viperInstance}
}

// AddFlags registers the kwatch flags. The namespace flag is owned by the
// kubeconfig flags and only bound here.
func (m *Manager) AddFlags(flags *pflag.FlagSet) {
	flags.StringP(KeySelector, "l", "",
		"Selector (label query) to filter on, supports '=', '==', and '!='")
	flags.BoolP(KeyAllNamespaces, "A", false,
		"Watch the requested object(s) across all namespaces")
	flags.String(KeyMode, string(ModeTUI),
		fmt.Sprintf("Output mode (%s, %s, %s)", ModeTUI, ModeExpand, ModeSimple))
	flags.String(KeyDiffTool, string(diff.BackendStructural),
		fmt.Sprintf("Diff renderer for expand mode (%s, %s)", diff.BackendStructural, diff.BackendLine))
	flags.Bool(KeyUseTLS, false, "Verify the API server certificate")
	flags.Bool(KeyIncludeManagedFields, false, "Keep metadata.managedFields in diffs")
	flags.String(KeyExport, "", "Directory to export every observed version to as YAML")
	flags.String(KeyLogLevel, logrus.WarnLevel.String(), "Diagnostic log level")
}

// BindFlags binds every flag of the set, including kubeconfig flags.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	err := m.Viper.BindPFlags(flags)
	if err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	return nil
}

// Load decodes the configuration for the positional arguments
// "<resource> [name]".
func (m *Manager) Load(args []string) (*Config, error) {
	switch {
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		return nil, ErrResourceRequired
	case len(args) > 2: //nolint:mnd // resource and name
		return nil, fmt.Errorf("%w: expected <resource> [name], got %d", ErrTooManyArguments, len(args))
	}

	err := m.validateEnums()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	err = m.Viper.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	config.Resource = args[0]
	if len(args) == 2 { //nolint:mnd // resource and name
		config.Name = args[1]
	}

	return config, nil
}

// validateEnums checks enumerated values before decoding so that callers
// can match the package sentinels.
func (m *Manager) validateEnums() error {
	var mode Mode

	err := mode.Set(m.Viper.GetString(KeyMode))
	if err != nil {
		return err
	}

	var backend diff.Backend

	err = backend.Set(m.Viper.GetString(KeyDiffTool))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", KeyDiffTool, err)
	}

	_, err = logrus.ParseLevel(m.Viper.GetString(KeyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", KeyLogLevel, err)
	}

	return nil
}
