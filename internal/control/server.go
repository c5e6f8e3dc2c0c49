package control

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

const (
	maxRequestBytes = 64 * 1024
	requestTimeout  = 5 * time.Second
)

// Controller is the command surface the server drives.
type Controller interface {
	Status() model.Status
	Preferences() model.Preferences
	SetPaused(paused bool)
	Snooze(minutes uint64)
	ClearSnooze()
	SkipCurrent()
	TriggerNow()
	Sync(ctx context.Context) error
	UpdatePreferences(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error)
}

// WindowOpener is implemented by controllers that own a window a second
// launch should bring forward.
type WindowOpener interface {
	ShowWindow()
}

// Server answers control requests on a listener it does not own.
type Server struct {
	listener   net.Listener
	controller Controller

	wg sync.WaitGroup
}

// NewServer returns a server for listener.
func NewServer(listener net.Listener, controller Controller) *Server {
	return &Server{listener: listener, controller: controller}
}

// Serve accepts connections until ctx is cancelled or the listener closes.
// Cancelling ctx closes the listener.
func (server *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = server.listener.Close()
	})
	defer stop()
	defer server.wg.Wait()

	for {
		conn, err := server.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept control connection: %w", err)
		}
		server.wg.Add(1)
		go func() {
			defer server.wg.Done()
			server.serveConn(ctx, conn)
		}()
	}
}

func (server *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxRequestBytes)
	encoder := json.NewEncoder(conn)

	for scanner.Scan() {
		var request Request
		var response Response
		if err := json.Unmarshal(scanner.Bytes(), &request); err != nil {
			response = Response{Error: fmt.Sprintf("decode request: %v", err)}
		} else {
			requestCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			response = server.Handle(requestCtx, request)
			cancel()
		}
		if err := encoder.Encode(response); err != nil {
			log.Printf("control: write response: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("control: read request: %v", err)
	}
}

// Handle runs one request against the controller.
func (server *Server) Handle(ctx context.Context, request Request) Response {
	controller := server.controller

	switch request.Command {
	case CommandStatus:
	case CommandPreferences:
		prefs := controller.Preferences()
		return Response{OK: true, Preferences: &prefs}
	case CommandPause:
		controller.SetPaused(true)
	case CommandResume:
		controller.SetPaused(false)
	case CommandSnooze:
		controller.Snooze(request.Minutes)
	case CommandClearSnooze:
		controller.ClearSnooze()
	case CommandSkip:
		controller.SkipCurrent()
	case CommandTrigger:
		controller.TriggerNow()
	case CommandShow:
		opener, ok := controller.(WindowOpener)
		if !ok {
			return Response{Error: "show: no window to open"}
		}
		opener.ShowWindow()
	case CommandSet:
		if request.Update == nil || request.Update.IsEmpty() {
			return Response{Error: "set: no preferences given"}
		}
		prefs, err := controller.UpdatePreferences(ctx, *request.Update)
		if err != nil {
			return Response{Error: fmt.Sprintf("set: %v", err)}
		}
		status := controller.Status()
		return Response{OK: true, Status: &status, Preferences: &prefs}
	default:
		return Response{Error: fmt.Sprintf("unknown command %q", request.Command)}
	}

	if err := controller.Sync(ctx); err != nil {
		return Response{Error: fmt.Sprintf("%s: %v", request.Command, err)}
	}
	status := controller.Status()
	return Response{OK: true, Status: &status}
}
