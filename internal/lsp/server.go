package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/textproto"
	"strconv"
	"sync"

	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/format"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInvalidRequest = -32600
)

// ErrExitBeforeShutdown is returned by Run when the client sends exit
// without a preceding shutdown request.
var ErrExitBeforeShutdown = errors.New("lsp: exit received before shutdown")

// Options configures a Server.
type Options struct {
	Session       *session.Session
	FormatOptions []format.Option
	Logger        *slog.Logger
	Version       string
}

// Server implements the Language Server Protocol over one reader/writer
// pair. Requests are handled in arrival order.
type Server struct {
	documents  *DocumentStore
	sess       *session.Session
	formatOpts []format.Option
	version    string

	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	shutdown bool
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(r io.Reader, w io.Writer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(nil, session.WithLogger(logger))
	}
	return &Server{
		documents:  NewDocumentStore(),
		sess:       sess,
		formatOpts: opts.FormatOptions,
		version:    opts.Version,
		reader:     bufio.NewReader(r),
		writer:     w,
		logger:     logger,
	}
}

// Documents returns the store of open documents.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Message is a JSON-RPC 2.0 request, response or notification.
type Message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *ResponseError   `json:"error,omitempty"`
}

// ResponseError is a JSON-RPC error object.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("jsonrpc %d: %s", e.Code, e.Message)
}

// errExit stops the read loop after an exit notification.
var errExit = errors.New("exit")

// Run processes messages until the client sends exit, the input ends or
// ctx is cancelled. A clean exit after shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("language server starting")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			var rpcErr *ResponseError
			if errors.As(err, &rpcErr) {
				s.logger.Warn("dropping malformed message", slog.Any("error", err))
				s.sendResponse(nil, nil, rpcErr)
				continue
			}
			return fmt.Errorf("read message: %w", err)
		}

		err = s.handleMessage(ctx, msg)
		if errors.Is(err, errExit) {
			if !s.shutdown {
				return ErrExitBeforeShutdown
			}
			s.logger.Info("language server exited")
			return nil
		}
		if err != nil {
			s.logger.Warn("error handling message", slog.String("method", msg.Method), slog.Any("error", err))
		}
	}
}

// readMessage reads one Content-Length framed message.
func (s *Server) readMessage() (*Message, error) {
	header, err := textproto.NewReader(s.reader).ReadMIMEHeader()
	if err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(header.Get("Content-Length"))
	if err != nil || n < 0 {
		return nil, &ResponseError{Code: codeInvalidRequest, Message: "missing or invalid Content-Length"}
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &ResponseError{Code: codeParseError, Message: err.Error()}
	}
	return &msg, nil
}

func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *ResponseError) {
	msg := Message{JSONRPC: "2.0", ID: id, Error: rpcErr}
	if rpcErr == nil {
		if result == nil {
			result = json.RawMessage("null")
		}
		msg.Result = result
	}
	if id == nil {
		null := json.RawMessage("null")
		msg.ID = &null
	}
	s.writeMessage(&msg)
}

func (s *Server) sendNotification(method string, params any) {
	raw, err := json.Marshal(params)
	if err != nil {
		s.logger.Error("error marshaling notification", slog.Any("error", err))
		return
	}
	s.writeMessage(&Message{JSONRPC: "2.0", Method: method, Params: raw})
}

func (s *Server) writeMessage(msg *Message) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", slog.Any("error", err))
		return
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(body), body); err != nil {
		s.logger.Error("error writing message", slog.Any("error", err))
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *Message) error {
	s.logger.Debug("received", slog.String("method", msg.Method))

	if s.shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &ResponseError{Code: codeInvalidRequest, Message: "server is shut down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		s.handleInitialized(ctx)
		return nil
	case "shutdown":
		s.shutdown = true
		s.sendResponse(msg.ID, nil, nil)
		return nil
	case "exit":
		return errExit
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(ctx, msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &ResponseError{
				Code:    codeMethodNotFound,
				Message: "method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// decode unmarshals request params, answering the request on failure.
func (s *Server) decode(msg *Message, v any) error {
	if len(msg.Params) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Params, v); err != nil {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &ResponseError{Code: codeInvalidParams, Message: err.Error()})
		}
		return err
	}
	return nil
}

// --- Lifecycle ---

func (s *Server) handleInitialize(msg *Message) error {
	var params InitializeParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.logger.Info("client connected", slog.String("root", URIToPath(params.RootURI)))

	s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindIncremental,
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{".", " "},
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "sqlpad", Version: s.version},
	}, nil)
	return nil
}

// handleInitialized loads the schema up front and warns the client when it
// is unavailable. Completion still offers keywords in that case.
func (s *Server) handleInitialized(ctx context.Context) {
	if err := s.sess.EnsureSchema(ctx); err != nil {
		s.logger.Warn("schema unavailable", slog.Any("error", err))
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeWarning,
			Message: "sqlpad: schema unavailable, completing keywords only: " + err.Error(),
		})
	}
}

// --- Documents ---

func (s *Server) handleDidOpen(msg *Message) error {
	var params DidOpenTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", slog.String("path", URIToPath(params.TextDocument.URI)))
	return nil
}

func (s *Server) handleDidChange(msg *Message) error {
	var params DidChangeTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.documents.Apply(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges)
	return nil
}

func (s *Server) handleDidClose(msg *Message) error {
	var params DidCloseTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("closed", slog.String("path", URIToPath(params.TextDocument.URI)))
	return nil
}

// --- Features ---

func (s *Server) handleCompletion(ctx context.Context, msg *Message) error {
	var params CompletionParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		s.sendResponse(msg.ID, &CompletionList{Items: []CompletionItem{}}, nil)
		return nil
	}

	cursor := doc.PositionToOffset(params.Position)
	items := completionItems(doc, cursor, s.sess.Suggest(ctx, doc.Content, cursor))
	s.sendResponse(msg.ID, &CompletionList{Items: items}, nil)
	return nil
}

func (s *Server) handleFormatting(msg *Message) error {
	var params DocumentFormattingParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}

	formatted := format.SQL(doc.Content, s.formatOpts...)
	if formatted == doc.Content {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}
	s.sendResponse(msg.ID, []TextEdit{{
		Range:   Range{End: doc.End()},
		NewText: formatted,
	}}, nil)
	return nil
}
