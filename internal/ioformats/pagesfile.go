// Package ioformats reads page-list input files and normalizes markup
// to UTF-8.
package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"sitevault-packager/internal/models"
)

// ReadPages reads page records from a CSV (header with "url", optional
// "path" and "file" columns) or NDJSON file. A record's markup comes
// from its inline data, else from its file (resolved relative to the
// input file); records with neither are returned with empty Data so the
// caller can fetch them. Missing paths are derived from the URL.
func ReadPages(path string) ([]models.RawPage, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		pages []models.RawPage
		err   error
	)
	switch ext {
	case ".csv":
		pages, err = readCSV(path)
	case ".ndjson", ".jsonl":
		pages, err = readNDJSON(path)
	default:
		// try csv then ndjson
		if pages, err = readCSV(path); err != nil || len(pages) == 0 {
			pages, err = readNDJSON(path)
		}
	}
	if err != nil {
		return nil, err
	}
	return finish(pages, filepath.Dir(path))
}

func finish(pages []models.RawPage, baseDir string) ([]models.RawPage, error) {
	for i := range pages {
		p := &pages[i]
		if p.URL == "" {
			return nil, errors.New("page record without url")
		}
		if p.Path == "" {
			p.Path = derivePath(p.URL)
		}
		if p.Data == "" && p.File != "" {
			name := p.File
			if !filepath.IsAbs(name) {
				name = filepath.Join(baseDir, name)
			}
			raw, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			data, err := ToUTF8(raw, "")
			if err != nil {
				return nil, err
			}
			p.Data = data
		}
	}
	return pages, nil
}

// derivePath maps a page URL to a source path, defaulting bare or
// directory URLs to index.html.
func derivePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/index.html"
	}
	if strings.HasSuffix(u.Path, "/") {
		return u.Path + "index.html"
	}
	return u.Path
}

func readCSV(path string) ([]models.RawPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["url"]; !ok {
		return nil, errors.New("csv must contain a 'url' header column")
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var out []models.RawPage
	for _, row := range rows[1:] {
		u := field(row, "url")
		if u == "" {
			continue
		}
		out = append(out, models.RawPage{
			URL:  u,
			Path: field(row, "path"),
			File: field(row, "file"),
		})
	}
	return out, nil
}

func readNDJSON(path string) ([]models.RawPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []models.RawPage
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// allow raw url lines or full page objects
		if strings.HasPrefix(line, "{") {
			var p models.RawPage
			if err := json.Unmarshal([]byte(line), &p); err == nil && p.URL != "" {
				out = append(out, p)
				continue
			}
		}
		out = append(out, models.RawPage{URL: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no pages found in ndjson")
	}
	return out, nil
}

// ToUTF8 decodes markup bytes to UTF-8 using the content type hint and
// byte sniffing. Already-valid UTF-8 survives a failed decode.
func ToUTF8(data []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return "", err
		}
		decoded = data
	}
	return string(decoded), nil
}
