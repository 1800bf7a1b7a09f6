package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sitevault-packager/internal/assembler"
	"sitevault-packager/internal/config"
	"sitevault-packager/internal/fetcher"
	"sitevault-packager/internal/ioformats"
	"sitevault-packager/pkg/logger"
)

func main() {
	in := flag.String("input", "", "pages file (csv with 'url' column or ndjson)")
	site := flag.String("site", "", "site name or site URL (overrides config)")
	out := flag.String("out", "", "output directory for the package zip (overrides config)")
	cfgPath := flag.String("config", "packager.yaml", "config file")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "missing --input")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if *site != "" {
		cfg.Site = *site
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	l := logger.New()
	pages, err := ioformats.ReadPages(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	client := fetcher.NewHTTPClient(cfg.FetchTimeout(), cfg.DialTimeout(), cfg.SizeCap())
	ctx := context.Background()

	// Records without inline or file markup are fetched from their URL.
	for i := range pages {
		if pages[i].Data != "" {
			continue
		}
		fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		body, contentType, err := client.Retrieve(fetchCtx, pages[i].URL)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch page %s: %v\n", pages[i].URL, err)
			os.Exit(1)
		}
		data, err := ioformats.ToUTF8(body, contentType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode page %s: %v\n", pages[i].URL, err)
			os.Exit(1)
		}
		pages[i].Data = data
	}

	res, err := assembler.New(client, l).Build(ctx, pages, cfg.Site)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build package:", err)
		os.Exit(1)
	}
	if res == nil {
		l.Infof("no pages, no package")
		return
	}
	path, err := res.WriteFile(cfg.OutputDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "write package:", err)
		os.Exit(1)
	}
	l.Infof("wrote %s", path)
}
