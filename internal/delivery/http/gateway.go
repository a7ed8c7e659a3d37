package httpgateway

import (
	"context"
	"fmt"
	hello "greeterservice/gen/v1"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/proto"
)

// GRPCConnectionManager owns the client connection to the greeter server and
// reconnects with bounded exponential backoff when it drops.
type GRPCConnectionManager struct {
	mu         sync.RWMutex
	conn       *grpc.ClientConn
	addr       string
	retries    int
	maxRetries int
}

// Gateway translates HTTP/JSON requests into Greeter RPCs.
type Gateway struct {
	grpcMgr  *GRPCConnectionManager
	router   *mux.Router
	httpAddr string
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewGRPCConnectionManager(addr string) *GRPCConnectionManager {
	mgr := &GRPCConnectionManager{
		addr:       addr,
		maxRetries: 5,
	}
	if err := mgr.connect(); err != nil {
		log.Printf("Initial connection failed: %v", err)
	}
	return mgr
}

func (m *GRPCConnectionManager) connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		m.conn.Close()
	}

	kacp := keepalive.ClientParameters{
		Time:                30 * time.Second,
		Timeout:             5 * time.Second,
		PermitWithoutStream: true,
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(kacp),
		grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy": "round_robin"}`),
	}

	conn, err := grpc.NewClient(m.addr, dialOpts...)
	if err != nil {
		return fmt.Errorf("failed to connect to gRPC server: %w", err)
	}

	m.conn = conn
	m.retries = 0
	log.Printf("Connected to gRPC server at %s", m.addr)
	return nil
}

func (m *GRPCConnectionManager) GetConnection() (*grpc.ClientConn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.conn == nil {
		return nil, fmt.Errorf("no connection available")
	}

	return m.conn, nil
}

func (m *GRPCConnectionManager) ensureConnection() {
	m.mu.Lock()
	if m.retries >= m.maxRetries {
		m.mu.Unlock()
		log.Printf("Max retries reached for gRPC connection")
		return
	}

	m.retries++
	retries := m.retries
	m.mu.Unlock()

	log.Printf("Attempting to reconnect to gRPC server (attempt %d/%d)",
		retries, m.maxRetries)

	delay := time.Duration(1<<uint(retries)) * time.Second
	time.Sleep(delay)

	if err := m.connect(); err != nil {
		log.Printf("Reconnect failed: %v", err)
	}
}

func (m *GRPCConnectionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		m.conn.Close()
		log.Printf("gRPC connection closed")
	}
}

func NewGateway(grpcAddr, httpAddr string) *Gateway {
	ctx, cancel := context.WithCancel(context.Background())

	return &Gateway{
		grpcMgr:  NewGRPCConnectionManager(grpcAddr),
		router:   mux.NewRouter(),
		httpAddr: httpAddr,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetupRoutes mounts the grpc-gateway mux under /v1/ plus the index and
// health endpoints.
func (g *Gateway) SetupRoutes() error {
	gwmux := runtime.NewServeMux(
		runtime.WithErrorHandler(g.errorHandler),
		runtime.WithForwardResponseOption(g.responseModifier),
	)

	if _, err := g.grpcMgr.GetConnection(); err != nil {
		return fmt.Errorf("failed to get gRPC connection: %w", err)
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    30 * time.Second,
			Timeout: 5 * time.Second,
		}),
	}

	if err := hello.RegisterGreeterHandlerFromEndpoint(g.ctx, gwmux, g.grpcMgr.addr, opts); err != nil {
		return fmt.Errorf("failed to register gateway: %w", err)
	}

	g.router.HandleFunc("/", g.homeHandler)
	g.router.HandleFunc("/health", g.healthHandler)

	g.router.PathPrefix("/v1/").Handler(gwmux)

	return nil
}

func (g *Gateway) errorHandler(ctx context.Context, mux *runtime.ServeMux,
	marshaler runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {

	log.Printf("gRPC Gateway error: %v", err)

	if err.Error() == "grpc: the client connection is closing" {
		go g.grpcMgr.ensureConnection()
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "gRPC connection closed, reconnecting..."}`))
		return
	}

	runtime.DefaultHTTPErrorHandler(ctx, mux, marshaler, w, r, err)
}

func (g *Gateway) responseModifier(ctx context.Context, w http.ResponseWriter,
	resp proto.Message) error {

	w.Header().Set("X-Gateway-Version", "1.0")
	return nil
}

func (g *Gateway) homeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, `
		<h1>Greeter Gateway</h1>
		<p>Available endpoints:</p>
		<ul>
			<li><a href="/v1/hello/world">GET /v1/hello/world</a></li>
			<li>POST /v1/hello with JSON: {"name": "world"}</li>
			<li><a href="/health">GET /health</a></li>
		</ul>
	`)
}

// healthHandler reports the state of the upstream gRPC connection.
func (g *Gateway) healthHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := g.grpcMgr.GetConnection()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status": "unavailable", "grpc": "disconnected", "error": "%v"}`, err)
		return
	}

	state := conn.GetState()

	w.Header().Set("Content-Type", "application/json")
	if state == connectivity.Ready || state == connectivity.Idle {
		fmt.Fprintf(w, `{"status": "ok", "grpc_state": "%s"}`, state)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status": "degraded", "grpc_state": "%s"}`, state)
	}
}

// Run serves HTTP until the listener fails or the process exits.
func (g *Gateway) Run() error {
	server := &http.Server{
		Addr:         g.httpAddr,
		Handler:      g.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// Close cancels the gateway context and closes the gRPC connection.
func (g *Gateway) Close() {
	g.cancel()
	g.grpcMgr.Close()
}
