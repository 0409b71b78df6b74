package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Exports  sitepdf.ExportService
	Exporter *crawl.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"Path to a YAML configuration file"`
	HistoryDB string          `name:"history-db" help:"Path to the export history database"`
	Verbose   bool            `short:"v" help:"Log every fetch, parse and download"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site and save it as a PDF"`
	History HistoryCmd `cmd:"" help:"List previous exports"`
	Show    ShowCmd    `cmd:"" help:"Show the pages of an export"`
	Delete  DeleteCmd  `cmd:"" help:"Remove an export from the history"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string        `arg:"" help:"Start URL"`
	MaxPages  string        `name:"max-pages" short:"n" default:"20" help:"Maximum pages to crawl (1-75)"`
	Out       string        `short:"o" default:"." help:"Directory the PDF is saved in"`
	Timeout   time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Rate      float64       `default:"2" help:"Requests per second per host (0 disables)"`
	Render    string        `enum:"never,always,auto" default:"never" help:"Render pages in a headless browser (never, always, auto)"`
	StartHTML string        `name:"start-html" type:"existingfile" help:"Use this file as the start page markup instead of fetching it"`
	Origin    string        `help:"Reject start URLs outside this site"`
	UserAgent string        `name:"user-agent" help:"User-Agent sent with every request"`
	Cookie    string        `help:"Cookie header sent with every plain HTTP request"`
	TextDir   string        `name:"text-dir" help:"Also save the text of every page under this directory"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"l" default:"20" help:"Maximum number of exports to show"`
	URL   string `name:"url" help:"Only show exports of this start URL"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Export ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Export ID"`
}
