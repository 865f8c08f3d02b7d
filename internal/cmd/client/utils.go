package client

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	transports "github.com/rzbill/eventreg/internal/cmd/client/transports"
)

// GRPCAddrEnv names the variable holding the server's gRPC address.
const GRPCAddrEnv = "EVREG_GRPC"

// grpcAddrFromEnv returns the gRPC server address from EVREG_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv(GRPCAddrEnv); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// dialGRPCContext opens a client for the eventreg gRPC endpoint with
// insecure transport for local/dev.
func dialGRPCContext(_ context.Context) (*grpc.ClientConn, error) {
	return grpc.NewClient(grpcAddrFromEnv(), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func getTransport() transports.EventsTransport {
	return transports.NewGrpcTransport(dialGRPCContext)
}

// printJSON writes v as a single JSON line.
func printJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
