// Package lsp serves emblem diagnostics to editors over the Language
// Server Protocol.
package lsp

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// Backend for glsp's own logging.
	_ "github.com/tliron/commonlog/simple"

	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/frontend"
)

const lsName = "em"

// Server is an emblem language server. It keeps the text of open documents
// and republishes diagnostics whenever one changes.
type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	compiler *frontend.Compiler
	logger   *log.Logger

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

// New creates a server that compiles documents with compiler.
func New(version string, compiler *frontend.Compiler, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	ls := &Server{
		version:  version,
		compiler: compiler,
		logger:   logger,
		docs:     make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

// RunStdio serves requests on standard input and output until the client
// disconnects.
func (ls *Server) RunStdio(verbosity int) error {
	commonlog.Configure(verbosity, nil)
	return ls.server.RunStdio()
}

func (ls *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKind(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	if params.ClientInfo != nil {
		ls.logger.Debug("client connected", "client", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.logger.Debug("document opened",
		logging.FieldURI, params.TextDocument.URI,
		logging.FieldDocVersion, params.TextDocument.Version,
	)
	ls.store(params.TextDocument.URI, params.TextDocument.Text)
	ls.publish(ctx.Notify, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change holds the whole text.
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		ls.store(params.TextDocument.URI, change.Text)
	case protocol.TextDocumentContentChangeEvent:
		if change.Range != nil {
			return nil
		}
		ls.store(params.TextDocument.URI, change.Text)
	default:
		return nil
	}
	ls.publish(ctx.Notify, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.store(params.TextDocument.URI, *params.Text)
	}
	ls.publish(ctx.Notify, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) store(uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.docs[uri] = text
}

func (ls *Server) text(uri protocol.DocumentUri) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	text, ok := ls.docs[uri]
	return text, ok
}

// publish compiles the stored text of uri and sends its diagnostics.
func (ls *Server) publish(notify glsp.NotifyFunc, uri protocol.DocumentUri) {
	text, ok := ls.text(uri)
	if !ok {
		return
	}

	diagnostics, err := ls.Diagnostics(context.Background(), uri, text)
	if err != nil {
		ls.logger.Error("compile failed", logging.FieldURI, uri, logging.FieldError, err)
		return
	}
	ls.logger.Debug("publishing diagnostics", logging.FieldURI, uri, logging.FieldDiagnostics, len(diagnostics))

	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics compiles text and returns what an editor should show for
// uri. A fatal parse or resolution error becomes a single error
// diagnostic; other failures are returned as errors.
func (ls *Server) Diagnostics(ctx context.Context, uri protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	result, err := ls.compiler.Compile(ctx, documentName(uri), text)
	if err != nil {
		d, file, ok := diag.FromError(err)
		if !ok {
			return nil, err
		}
		return []protocol.Diagnostic{convertDiagnostic(uri, file, &d)}, nil
	}

	file := result.File()
	out := make([]protocol.Diagnostic, 0, len(result.Diagnostics))
	for i := range result.Diagnostics {
		out = append(out, convertDiagnostic(uri, file, &result.Diagnostics[i]))
	}
	return out, nil
}

// documentName returns the file path of a file URI, or the URI itself.
func documentName(uri protocol.DocumentUri) string {
	name := string(uri)
	if !strings.HasPrefix(name, "file://") {
		return name
	}
	parsed, err := url.Parse(name)
	if err != nil {
		return name
	}
	return filepath.Clean(parsed.Path)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKind(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
