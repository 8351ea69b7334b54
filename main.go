package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pipe01/minhtml/minify"
)

var (
	outDir   = kingpin.Flag("out-dir", "Folder to put minified files on").Short('o').Default(".").String()
	suffix   = kingpin.Flag("suffix", "Suffix to insert before the output file extension").Default(".min").String()
	toStdout = kingpin.Flag("stdout", "Write minified output to stdout instead of files").Bool()
	watch    = kingpin.Flag("watch", "Watch files for changes and minify automatically").Short('w').Bool()

	removeAttributeQuotes         = kingpin.Flag("remove-attribute-quotes", "Remove quotes around attribute values where safe").Bool()
	removeComments                = kingpin.Flag("remove-comments", "Remove HTML comments").Default("true").Bool()
	removeEmptyAttributes         = kingpin.Flag("remove-empty-attributes", "Remove attributes with empty values").Default("true").Bool()
	removeRedundantAttributes     = kingpin.Flag("remove-redundant-attributes", "Remove attributes whose value matches the element's default").Default("true").Bool()
	removeScriptTypeAttributes    = kingpin.Flag("remove-script-type-attributes", `Remove type="text/javascript" from script elements`).Default("true").Bool()
	removeStyleLinkTypeAttributes = kingpin.Flag("remove-style-link-type-attributes", `Remove type="text/css" from style and link elements`).Default("true").Bool()
	trimCustomFragments           = kingpin.Flag("trim-custom-fragments", "Trim whitespace around custom fragments").Bool()
	useShortDoctype               = kingpin.Flag("use-short-doctype", "Replace the doctype with <!doctype html>").Default("true").Bool()
	collapseWhitespace            = kingpin.Flag("collapse-whitespace", "Collapse whitespace between and inside elements").Default("true").Bool()
	conservativeCollapse          = kingpin.Flag("conservative-collapse", "Always leave at least one space when collapsing").Bool()
	preserveLineBreaks            = kingpin.Flag("preserve-line-breaks", "Collapse runs containing a newline to a single newline").Bool()
	collapseBooleanAttributes     = kingpin.Flag("collapse-boolean-attributes", "Collapse boolean attributes to their bare name").Default("true").Bool()
	removeEmptyElements           = kingpin.Flag("remove-empty-elements", "Remove elements with empty content").Bool()
	minifyJS                      = kingpin.Flag("minify-js", "Minify embedded scripts and event handler attributes").Bool()
	minifyCSS                     = kingpin.Flag("minify-css", "Minify embedded stylesheets and style attributes").Bool()
	minifyURLs                    = kingpin.Flag("minify-urls", "Clean up URL-bearing attribute values").Bool()
	urlBase                       = kingpin.Flag("url-base", "Base URL to make minified URLs relative to").String()

	files = kingpin.Arg("files", "List of files to minify").Required().ExistingFiles()

	opts minify.Options
)

func main() {
	kingpin.Parse()

	*outDir, _ = filepath.Abs(*outDir)

	opts = minify.Options{
		RemoveAttributeQuotes:         *removeAttributeQuotes,
		RemoveComments:                *removeComments,
		RemoveEmptyAttributes:         *removeEmptyAttributes,
		RemoveRedundantAttributes:     *removeRedundantAttributes,
		RemoveScriptTypeAttributes:    *removeScriptTypeAttributes,
		RemoveStyleLinkTypeAttributes: *removeStyleLinkTypeAttributes,
		TrimCustomFragments:           *trimCustomFragments,
		UseShortDoctype:               *useShortDoctype,
		CollapseWhitespace:            *collapseWhitespace,
		ConservativeCollapse:          *conservativeCollapse,
		PreserveLineBreaks:            *preserveLineBreaks,
		CollapseBooleanAttributes:     *collapseBooleanAttributes,
		RemoveEmptyElements:           *removeEmptyElements,
		MinifyJS:                      *minifyJS,
		MinifyCSS:                     *minifyCSS,
		MinifyURLs:                    *minifyURLs,
		URLBase:                       *urlBase,
	}

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		err := minifyAll()
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	}
}

func minifyAll() error {
	for _, fname := range *files {
		_, err := minifyFile(fname, opts)
		if err != nil {
			return fmt.Errorf("minify file %q: %w", fname, err)
		}
	}

	return nil
}

func minifyFile(fname string, opts minify.Options) (outPath string, err error) {
	src, err := os.ReadFile(fname)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}

	out, err := minify.MinifyWithOptions(string(src), opts)
	if err != nil {
		return "", err
	}

	if *toStdout {
		fmt.Print(out)
		return "", nil
	}

	outPath = filepath.Join(*outDir, outName(filepath.Base(fname)))

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return outPath, nil
}

func outName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + *suffix + ext
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Println("watching files for changes...")

	<-ch
	return nil
}
