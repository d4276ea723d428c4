package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/host/docker"
	"github.com/Navteca/cline/internal/host/local"
	"github.com/Navteca/cline/internal/jupyter"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

// hostFlags groups the host environment flags shared by the notebook
// commands.
type hostFlags struct {
	hostType    string
	workspace   string
	notebook    string
	cell        int
	selection   string
	dockerImage string
}

func registerHostFlags(cmd *kingpin.CmdClause) *hostFlags {
	f := &hostFlags{}

	cmd.Flag("host", "Host environment (local, docker).").Default("local").EnumVar(&f.hostType, "local", "docker")
	cmd.Flag("workspace", "Workspace root directory.").StringVar(&f.workspace)
	cmd.Flag("notebook", "Notebook file acting as the active document.").StringVar(&f.notebook)
	cmd.Flag("cell", "Index of the selected notebook cell.").Default("-1").IntVar(&f.cell)
	cmd.Flag("selection", "Selected code snippet.").StringVar(&f.selection)
	cmd.Flag("docker-image", "Container image for the docker host.").StringVar(&f.dockerImage)

	return f
}

func (f *hostFlags) provider(logger log.Logger) (host.Provider, error) {
	switch f.hostType {
	case "docker":
		return docker.NewProvider(docker.ProviderConfig{
			Image:  f.dockerImage,
			Logger: logger,
		})
	default:
		return local.NewProvider(local.ProviderConfig{
			WorkspaceDir: f.workspace,
			NotebookPath: f.notebook,
			CellIndex:    f.cell,
			Selection:    f.selection,
			Logger:       logger,
		})
	}
}

// newAdapterService wires the full notebook stack for a command run: config,
// SQLite storage, the assistant core, the host provider and the adapter.
func newAdapterService(ctx context.Context, rootCmd *RootCommand, flags *hostFlags) (*jupyter.Service, error) {
	logger := rootCmd.Logger

	cfg, err := rootCmd.AssistantConfig(ctx)
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	core, err := assistant.NewService(assistant.ServiceConfig{
		Config:     cfg,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create assistant service: %w", err)
	}

	provider, err := flags.provider(logger)
	if err != nil {
		return nil, fmt.Errorf("could not create host provider: %w", err)
	}

	svc, err := jupyter.NewService(jupyter.ServiceConfig{
		Assistant: core,
		Provider:  provider,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create adapter service: %w", err)
	}

	return svc, nil
}
