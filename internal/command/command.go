package command

import (
	commandHandler "modelfetch/internal/command/handler"
	"modelfetch/internal/database/client"
	fluentdRepo "modelfetch/internal/database/fluentd/repository"
	"modelfetch/internal/pkg/httpclient"
	"modelfetch/internal/service"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

// 命令列只帶抓取需要的依賴，不連 MongoDB / Redis
var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewFetchHandler,
	commandHandler.NewAdminTokenHandler,
	commandHandler.NewStandaloneStore,
	telemetry.ProviderSet,
	httpclient.ProviderSet,
	client.NewFluentdClient,
	fluentdRepo.NewLogRepository,
	models.NewFetcher,
	service.NewModelFetchService,
	wire.Bind(new(service.ProviderLookup), new(*commandHandler.StandaloneStore)),
	wire.Bind(new(service.ModelCache), new(*commandHandler.StandaloneStore)),
	wire.Bind(new(service.ClientFactory), new(*httpclient.Factory)),
	wire.Bind(new(service.FetchAuditor), new(*fluentdRepo.LogRepository)),
)

type Command struct {
	fetchHandler      *commandHandler.FetchHandler
	adminTokenHandler *commandHandler.AdminTokenHandler
}

// NewCommand .
func NewCommand(
	fetchHandler *commandHandler.FetchHandler,
	adminTokenHandler *commandHandler.AdminTokenHandler,
) *Command {
	return &Command{
		fetchHandler:      fetchHandler,
		adminTokenHandler: adminTokenHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	fetchCmd := &cobra.Command{
		Use:          "fetch",
		Short:        "fetch the model list from an OpenAI-compatible endpoint",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.fetchHandler.Fetch(cmd, args)
		},
	}
	commandHandler.BindFetchFlags(fetchCmd)

	adminTokenCmd := &cobra.Command{
		Use:          "admin-token",
		Short:        "issue a JWT for the admin API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.adminTokenHandler.Issue(cmd, args)
		},
	}
	commandHandler.BindAdminTokenFlags(adminTokenCmd)

	rootCmd.AddCommand(fetchCmd, adminTokenCmd)
}
