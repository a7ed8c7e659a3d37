package grpcserver_test

import (
	"context"
	"errors"
	hello "greeterservice/gen/v1"
	"greeterservice/internal/config"
	"greeterservice/internal/delivery/grpch"
	"greeterservice/internal/domain"
	"greeterservice/internal/service"
	"greeterservice/pkg/grpcserver"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubSampler struct {
	usage *domain.ResourceUsage
	err   error
}

func (s *stubSampler) Sample(ctx context.Context) (*domain.ResourceUsage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.usage, nil
}

// trackingSampler records how many samples run at once.
type trackingSampler struct {
	delay   time.Duration
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (s *trackingSampler) Sample(ctx context.Context) (*domain.ResourceUsage, error) {
	cur := s.active.Add(1)
	defer s.active.Add(-1)

	for {
		max := s.maxSeen.Load()
		if cur <= max || s.maxSeen.CompareAndSwap(max, cur) {
			break
		}
	}

	time.Sleep(s.delay)
	return &domain.ResourceUsage{MemoryPercent: 50, CPUPercent: 10}, nil
}

func startServer(t *testing.T, sampler domain.UsageSampler, maxWorkers int) hello.GreeterClient {
	t.Helper()

	cfg := &config.Config{
		App:  config.AppConfig{Name: "greeterservice", Env: "test"},
		GRPC: config.GRPCConfig{Port: 0, MaxWorkers: maxWorkers},
	}

	handler := grpch.NewGreeterHandler(service.NewGreeterService(sampler))
	srv := grpcserver.NewServer(handler, cfg)

	lis := bufconn.Listen(1024 * 1024)
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			t.Logf("serve: %v", err)
		}
	}()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return hello.NewGreeterClient(conn)
}

func TestSayHelloEndToEnd(t *testing.T) {
	sampler := &stubSampler{usage: &domain.ResourceUsage{MemoryPercent: 62, CPUPercent: 13.37}}
	client := startServer(t, sampler, 1)

	tests := []struct {
		name     string
		reqName  string
		expected string
	}{
		{"plain name", "World", "Hello, World!Memory usage:62%  CPU:13.37%"},
		{"record placeholder", "record", "Hello, record_response!Memory usage:62%  CPU:13.37%"},
		{"replay placeholder", "replay", "Hello, replay_response!Memory usage:62%  CPU:13.37%"},
		{"empty name", "", "Hello, !Memory usage:62%  CPU:13.37%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			reply, err := client.SayHello(ctx, &hello.HelloRequest{Name: tt.reqName})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply.GetMessage())
			assert.Regexp(t, `^Hello, .*!Memory usage:\d{1,3}%  CPU:\d{1,3}\.\d{2}%$`, reply.GetMessage())
		})
	}
}

func TestSayHelloSampleFailureIsInternal(t *testing.T) {
	sampler := &stubSampler{err: errors.New("permission denied")}
	client := startServer(t, sampler, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.SayHello(ctx, &hello.HelloRequest{Name: "World"})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const calls = 4

	tests := []struct {
		name       string
		maxWorkers int
		expected   int32
	}{
		{"single worker serializes calls", 1, 1},
		{"two workers overlap", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := &trackingSampler{delay: 200 * time.Millisecond}
			client := startServer(t, sampler, tt.maxWorkers)

			var wg sync.WaitGroup
			for i := 0; i < calls; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()

					_, err := client.SayHello(ctx, &hello.HelloRequest{Name: "World"})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			assert.Equal(t, tt.expected, sampler.maxSeen.Load())
		})
	}
}
