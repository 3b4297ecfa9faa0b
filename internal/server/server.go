package server

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/indigo-web/webpool/config"
	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/mime"
	"github.com/indigo-web/webpool/http/status"
	"github.com/indigo-web/webpool/internal/parser"
	"github.com/indigo-web/webpool/internal/serializer"
	"github.com/indigo-web/webpool/router"
	"github.com/indigo-web/webpool/transport"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Server handles a single request per connection: reads it once, routes it, writes the
// response and closes the connection.
type Server struct {
	router     router.Router
	bufferSize int
	serverName string
	logger     Logger
	onState    func(id string, state State)
}

func New(cfg *config.Config, r router.Router, logger Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		router:     r,
		bufferSize: cfg.NET.ReadBufferSize,
		serverName: cfg.Server.Name,
		logger:     logger,
	}
}

// OnStateChange sets a callback invoked on every transition of every connection. It is
// called from worker goroutines concurrently.
func (s *Server) OnStateChange(cb func(id string, state State)) *Server {
	s.onState = cb
	return s
}

// Serve processes the connection to the end and closes it. Its signature fits as a
// worker pool routine.
func (s *Server) Serve(conn net.Conn) {
	client := transport.NewClient(conn, make([]byte, s.bufferSize))
	s.transition(client, Accepted)
	defer func() {
		_ = client.Close()
		s.transition(client, Closed)
	}()

	s.Handle(client)
}

// Handle runs the connection through its stages up to the response being written. The
// client is left open.
func (s *Server) Handle(client transport.Client) {
	s.transition(client, Reading)
	data, err := client.Read()
	if len(data) == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Printf("[%s] read failed: %s", client.ID(), err)
		}

		return
	}

	var (
		request  *http.Request
		response *http.Response
	)

	switch result := parser.ParseLimited(data, s.bufferSize); {
	case result.Ok():
		s.transition(client, Parsed)
		request = result.Request()
		response = s.onRequest(request)
	default:
		s.transition(client, Malformed)
		response = s.onError(result.Reason())
	}

	s.transition(client, Routed)
	code := response.Reveal().Code
	if request != nil {
		s.logger.Printf("[%s] %s %s %s -> %d", client.ID(), client.Remote(), request.Method, request.Path, code)
	} else {
		s.logger.Printf("[%s] %s malformed request -> %d", client.ID(), client.Remote(), code)
	}

	s.transition(client, Responding)
	buff := serializer.New(make([]byte, 0, 512), s.serverName).Render(response)
	if err = client.Write(buff); err != nil {
		s.logger.Printf("[%s] write failed: %s", client.ID(), err)
	}
}

func (s *Server) transition(client transport.Client, state State) {
	if s.onState != nil {
		s.onState(client.ID(), state)
	}
}

func (s *Server) onRequest(request *http.Request) (response *http.Response) {
	defer s.recoverResponse(&response)
	return notNil(s.router.OnRequest(request))
}

func (s *Server) onError(err error) (response *http.Response) {
	defer s.recoverResponse(&response)
	return notNil(s.router.OnError(nil, err))
}

// recoverResponse replaces the response with 500 if the router panicked.
func (s *Server) recoverResponse(response **http.Response) {
	if rec := recover(); rec != nil {
		s.logger.Printf("router panicked: %v", rec)
		*response = s.internalError()
	}
}

// internalError asks the router for the 500 page, falling back to a bare one if the
// router can't render it either.
func (s *Server) internalError() (response *http.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Printf("router panicked rendering an error page: %v", rec)
			response = bareInternalError()
		}
	}()

	if response = s.router.OnError(nil, status.ErrInternalServerError); response == nil {
		return bareInternalError()
	}

	return response
}

func bareInternalError() *http.Response {
	return http.NewResponse().
		Code(status.InternalServerError).
		ContentType(mime.Plain).
		String(status.Text(status.InternalServerError))
}

func notNil(response *http.Response) *http.Response {
	if response != nil {
		return response
	}

	return http.NewResponse()
}
