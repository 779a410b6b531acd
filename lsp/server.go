// Package lsp is a language server that reports ASDL syntax errors and
// lists the definitions of open documents.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/vyparse/asdl"
	"github.com/dhamidi/vyparse/config"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("vyparse.lsp")

type Server struct {
	cfg     *config.Config
	handler protocol.Handler
	server  *server.Server

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:       cfg,
		documents: map[protocol.DocumentUri]string{},
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, cfg.LSP.Name, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	version := s.cfg.LSP.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    s.cfg.LSP.Name,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", s.cfg.LSP.Name, s.cfg.LSP.Version)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()
	publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	if text, ok := s.document(params.TextDocument.URI); ok {
		s.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	m, err := asdl.Parse(text, s.parseOptions()...)
	if err != nil {
		return nil, nil
	}
	return Symbols(text, m), nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	diagnostics := Diagnostics(text, s.parseOptions()...)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))
	publish(ctx, uri, diagnostics)
}

func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.documents[uri]
	return text, ok
}

func (s *Server) parseOptions() []asdl.Option {
	opts := []asdl.Option{asdl.WithMaxInputBytes(s.cfg.Parse.MaxInputBytes)}
	if s.cfg.Parse.Trace {
		opts = append(opts, asdl.WithTrace())
	}
	return opts
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
