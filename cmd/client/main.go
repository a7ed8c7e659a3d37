package main

import (
	"context"
	"flag"
	"fmt"
	hello "greeterservice/gen/v1"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

var (
	addr = flag.String("addr", "localhost:50051", "greeter server address")
	name = flag.String("name", "world", "name to greet")
)

func main() {
	flag.Parse()

	conn, err := grpc.NewClient(*addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    30 * time.Second,
			Timeout: 5 * time.Second,
		}),
	)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := hello.NewGreeterClient(conn)

	// The server blocks for its CPU sampling window, so leave headroom.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reply, err := client.SayHello(ctx, &hello.HelloRequest{Name: *name})
	if err != nil {
		log.Fatalf("SayHello failed: %v", err)
	}

	fmt.Println(reply.GetMessage())
}
