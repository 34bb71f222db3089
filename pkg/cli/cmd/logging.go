package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/kwatch/pkg/io/configmanager"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const logFileMode = 0o600

// configureLogging points logrus at the destination for the configured mode.
// The interactive view owns the terminal, so its logs are discarded unless a
// log file is configured. The returned func closes the log file.
func configureLogging(
	stderr io.Writer,
	fs afero.Fs,
	config *configmanager.Config,
) (func(), error) {
	logrus.SetLevel(config.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05Z07:00",
	})

	if config.LogFile != "" {
		file, err := fs.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		logrus.SetOutput(file)

		return func() { _ = file.Close() }, nil
	}

	if config.Mode == configmanager.ModeTUI {
		logrus.SetOutput(io.Discard)
	} else {
		logrus.SetOutput(stderr)
	}

	return func() {}, nil
}
