package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"tsguard.dev/pkg/tsguard/internal/domain/rules"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "tsguard"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	excludeFlagName      = "exclude"
	ignoreFlagName       = "ignore"
	tuiFlagName          = "tui"
	verboseFlagName      = "verbose"
	logFileFlagName      = "log-file"
	lintParallelFlagName = "parallel"
	lintReportFlagName   = "report"
	lintFixFlagName      = "fix"
	lintDiffFlagName     = "diff"
	lintWatchFlagName    = "watch"
	lintRuleFlagName     = "rule"

	excludeConfigKey      = "paths.exclude"
	ignoreConfigKey       = "paths.ignore"
	tuiConfigKey          = "ui.tui"
	lintParallelConfigKey = "lint.parallel"
	lintReportConfigKey   = "lint.report"

	bannedModulesConfigKey   = "rules.no-test-doubles.banned-modules"
	importExtensionConfigKey = "rules.import-extension.extension"

	defaultLintParallel = 0 // one worker per CPU
	defaultTUI          = false

	envPrefix = "TSGUARD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".tsguard.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(ignoreConfigKey, []string{})
	viper.SetDefault(tuiConfigKey, defaultTUI)
	viper.SetDefault(lintParallelConfigKey, defaultLintParallel)
	viper.SetDefault(lintReportConfigKey, "")

	for _, id := range rules.IDs() {
		viper.SetDefault(ruleEnabledKey(id), true)
	}

	viper.SetDefault(bannedModulesConfigKey, []string{})
	viper.SetDefault(importExtensionConfigKey, rules.DefaultExtension)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		fmt.Fprintf(os.Stderr, "tsguard: ignoring %s: %v\n", configFileName, err)
	}
}

// ruleEnabledKey is the config key toggling rule id.
func ruleEnabledKey(id string) string {
	return "rules." + id + ".enabled"
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs a rotating file logger as the slog default.
// It logs at the configured level, or Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
