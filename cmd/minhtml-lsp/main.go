package main

import (
	goerrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	minerrors "github.com/pipe01/minhtml/errors"
	"github.com/pipe01/minhtml/internal/lexer"
	"github.com/pipe01/minhtml/minify"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "minhtml"

var version string = "0.0.1"
var handler protocol.Handler

var documents = map[string]string{}

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents[params.TextDocument.URI] = params.TextDocument.Text

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := documents[params.TextDocument.URI]
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					documents[params.TextDocument.URI] = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					documents[params.TextDocument.URI] = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentFormatting: formatDocument,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

// handleDocument tokenizes the document and publishes every recovered
// malformation as a warning diagnostic.
func handleDocument(context *glsp.Context, docURI string) error {
	url, err := url.Parse(docURI)
	if err != nil {
		return fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	contents, ok := documents[docURI]
	if !ok {
		return nil
	}

	fileName := filepath.Base(url.Path)

	l := lexer.New([]byte(contents), fileName)
	l.Collect()

	diag := []protocol.Diagnostic{}

	for _, w := range l.Warnings() {
		diag = append(diag, protocol.Diagnostic{
			Range: protocol.Range{
				Start: pos(w.Location),
				End:   pos(w.Location),
			},
			Severity: ptr(protocol.DiagnosticSeverityWarning),
			Message:  w.Message,
		})
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

// formatDocument responds to a formatting request with a single edit that
// replaces the whole document with its minified form.
func formatDocument(context *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := documents[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}

	out, err := minify.Minify(content)
	if err != nil {
		if goerrors.Is(err, minify.ErrEmptyInput) {
			return nil, nil
		}

		var serr minerrors.SituatedErr
		if goerrors.As(err, &serr) {
			at := serr.At()
			return nil, fmt.Errorf("%s: %w", &at, serr.Unwrap())
		}

		return nil, err
	}

	return []protocol.TextEdit{
		{
			Range:   wholeRange(content),
			NewText: out,
		},
	}, nil
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func wholeRange(content string) protocol.Range {
	lines := strings.Split(content, "\n")

	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End: protocol.Position{
			Line:      uint32(len(lines) - 1),
			Character: uint32(len(lines[len(lines)-1])),
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func pos(l lexer.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(l.Line),
		Character: uint32(l.Column),
	}
}
