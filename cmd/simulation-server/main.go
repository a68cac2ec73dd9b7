package main

import (
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"antcolony/config"
	pb "antcolony/proto"

	"google.golang.org/grpc"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to the JSON config file")
	httpAddr := flag.String("http", "", "HTTP/WebSocket listen address (overrides config)")
	grpcAddr := flag.String("grpc", "", "gRPC listen address (overrides config)")
	writeConfig := flag.Bool("write-config", false, "Write a default config file if none exists")
	flag.Parse()

	if *writeConfig {
		if err := config.SaveDefaultConfig(*configPath); err != nil {
			log.Fatalf("Failed to create default config file: %v", err)
		}
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *grpcAddr != "" {
		cfg.GRPCAddr = *grpcAddr
	}

	core, err := NewSimulationCore(cfg)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}
	defer core.Stop()

	// gRPC field service
	grpcServer := grpc.NewServer()
	pb.RegisterFieldServiceServer(grpcServer, NewGRPCServer(core))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}
	go func() {
		log.Printf("gRPC server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server stopped: %v", err)
		}
	}()
	defer grpcServer.GracefulStop()

	// WebSocket tick stream plus health/status
	wsServer := NewWebSocketServer(core, cfg.MaxTicks)
	mux := http.NewServeMux()
	wsServer.Routes(mux)
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		log.Printf("WebSocket simulation server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server stopped: %v", err)
		}
	}()
	defer httpServer.Close()

	wsServer.Start()
	defer wsServer.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Printf("Received %v", sig)
	case <-wsServer.Done():
	}
}
