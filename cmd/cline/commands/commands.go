package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/Navteca/cline/internal/conventions"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	storageio "github.com/Navteca/cline/internal/storage/io"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	ConfigPath string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := conventions.DBPath(homedir.HomeDir())
	app.Flag("db-path", "Path to the SQLite database file.").Envar("CLINE_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)

	defaultConfigPath := conventions.ConfigPath(homedir.HomeDir())
	app.Flag("config", "Path to the assistant YAML configuration file.").Envar("CLINE_CONFIG_PATH").Default(defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// AssistantConfig loads the assistant configuration from the configured YAML
// file. A missing file is not an error, the assistant runs with an empty
// configuration.
func (c *RootCommand) AssistantConfig(ctx context.Context) (model.AssistantConfig, error) {
	dir := filepath.Dir(c.ConfigPath)
	file := filepath.Base(c.ConfigPath)

	repo := storageio.NewConfigYAMLRepository(os.DirFS(dir))
	cfg, err := repo.GetConfig(ctx, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Logger.Debugf("No config file at %s, using empty config", c.ConfigPath)
			return model.AssistantConfig{}, nil
		}
		return model.AssistantConfig{}, fmt.Errorf("could not load config from %s: %w", c.ConfigPath, err)
	}

	return cfg, nil
}
