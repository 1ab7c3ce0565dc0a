package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kardianos/service"
	"go.uber.org/zap"
)

type program struct {
	addr    string
	handler http.Handler
	log     *zap.Logger

	mu  sync.Mutex
	ln  net.Listener
	srv *http.Server
}

func (p *program) Start(s service.Service) error {
	// A second agent instance on the same station is a misconfiguration,
	// not something to fight over; bail out early.
	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		p.log.Error("agent is already running", zap.String("addr", p.addr), zap.Error(err))
		return err
	}

	p.mu.Lock()
	p.ln = ln
	p.srv = &http.Server{Handler: p.handler}
	p.mu.Unlock()

	go p.run(ln)
	return nil
}

func (p *program) run(ln net.Listener) {
	p.log.Info("print agent listening", zap.String("addr", ln.Addr().String()))
	if err := p.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		p.log.Error("server failed", zap.Error(err))
	}
}

func (p *program) Stop(s service.Service) error {
	p.mu.Lock()
	srv := p.srv
	p.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func Config() *service.Config {
	return &service.Config{
		Name:        "WarehousePrintAgent",
		DisplayName: "Warehouse Print Agent",
		Description: "Silent print dispatcher for warehouse station portals",
		Option: service.KeyValue{
			"RunAtLoad":        true,
			"DelayedAutoStart": false,
			"StartType":        "automatic",
		},
	}
}

// Run starts the agent under the OS service manager, or handles a service
// control verb (install/uninstall/start/stop/restart/status) if one was
// passed on the command line.
func Run(addr string, handler http.Handler, log *zap.Logger) error {
	prg := &program{addr: addr, handler: handler, log: log}
	s, err := service.New(prg, Config())
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		arg := os.Args[1]
		switch arg {
		case "status":
			status, err := s.Status()
			if err != nil {
				return fmt.Errorf("getting status: %w", err)
			}
			fmt.Printf("Service status: %v\n", status)
			return nil
		case "install", "uninstall", "start", "stop", "restart":
			if err := service.Control(s, arg); err != nil {
				return fmt.Errorf("service command failed: %w", err)
			}
			fmt.Printf("Service %sed successfully\n", arg)
			if arg == "install" {
				// Start right away so the operator does not have to.
				_ = service.Control(s, "start")
			}
			return nil
		}
	}

	return s.Run()
}
