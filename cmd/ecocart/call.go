package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/rpc"
)

var callAddr string

var callCmd = &cobra.Command{
	Use:   "call <command> [json]",
	Short: "Send one command to a running ecocart server",
	Example: `  ecocart call OpenSession
  ecocart call AddItem '{"session_id":"s1","id":"jar","unit_price_cents":1000,"unit_points":5}'
  ecocart call Submit '{"session_id":"s1","wait":true}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callAddr, "addr", "", "Server address (default localhost:<grpc_port>)")
}

func runCall(cmd *cobra.Command, args []string) error {
	body := "{}"
	if len(args) == 2 {
		body = args[1]
	}
	if !json.Valid([]byte(body)) {
		return fmt.Errorf("command body is not valid JSON")
	}

	addr := callAddr
	if addr == "" {
		addr = "localhost:" + cfg.Server.GRPCPort
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Payment.Timeout+5*time.Second)
	defer cancel()

	resp, err := rpc.NewClient(conn).Handle(ctx, &anypb.Any{
		TypeUrl: kit.TypeURL(args[0]),
		Value:   []byte(body),
	})
	if err != nil {
		return err
	}
	out, err := protojson.MarshalOptions{Multiline: true}.Marshal(resp)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
