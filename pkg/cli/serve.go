package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/protomock"
)

// shutdownTimeout bounds graceful gRPC shutdown.
const shutdownTimeout = 5 * time.Second

var (
	grpcAddr string
	grpcSeed string
)

var serveGRPCCmd = &cobra.Command{
	Use:   "serve-grpc",
	Short: "Serve every method of a proto source over gRPC",
	Long: `Start a gRPC server answering every unary and server-streaming method of
the selected proto source with synthesized responses. List methods with
page_token/page_size fields are paginated through the cursor manager.

The server runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			src, err := s.source()
			if err != nil {
				return err
			}
			ps, err := s.catalog.ProtoSchema(src)
			if err != nil {
				return err
			}

			srv, err := protomock.NewServer(ps, s.catalog.ProtoGenerator(), s.catalog.Cursors(), protomock.ServerOptions{
				Addr:   grpcAddr,
				Seed:   grpcSeed,
				Policy: s.catalog.IDPolicy(),

				BackwardField: s.cfg.Cursor.BackwardParam,
			})
			if err != nil {
				return err
			}
			srv.SetLogger(logging.Component(s.log, "grpc"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s.catalog.Start()
			if err := srv.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "gRPC server listening on %s (%d services, %d methods)\n",
				srv.Address(), len(ps.ListServices()), ps.MethodCount())

			<-ctx.Done()
			s.log.Info("shutting down")
			return srv.Stop(context.Background(), shutdownTimeout)
		})
	},
}

func init() {
	serveGRPCCmd.Flags().StringVar(&grpcAddr, "addr", ":50051", "Listen address")
	serveGRPCCmd.Flags().StringVar(&grpcSeed, "seed", "", "Seed driving every response")
	rootCmd.AddCommand(serveGRPCCmd)
}
