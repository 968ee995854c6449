package cmd

import (
	"github.com/spf13/cobra"

	"gqlfmt/server"
)

var serveAddress string

// serveCmd: gqlfmt serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the formatter over HTTP and websockets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		addr := conf.Server.Address
		if serveAddress != "" {
			addr = serveAddress
		}

		s := server.New(logger, conf.Format.PrinterOptions(), conf.Server.Origins)
		return s.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "listen address (default: server.address of the config)")
}
