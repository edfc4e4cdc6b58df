package output

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"adldap/collect"
)

type JSONPrinter struct {
	Config PrinterConfig
}

func NewJSONPrinter(config PrinterConfig) Printer {
	return &JSONPrinter{
		Config: config,
	}
}

type jsonMeta struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type jsonSummary struct {
	Count int `json:"count"`
}

type jsonEntry struct {
	DN         string            `json:"dn"`
	Attributes map[string]string `json:"attributes"`
}

func (p *JSONPrinter) Print(records []*collect.Record) error {
	data := make([]jsonEntry, 0, len(records))
	for _, rec := range records {
		data = append(data, jsonEntry{DN: rec.DN, Attributes: recordAttributes(rec)})
	}

	output := struct {
		Meta    jsonMeta    `json:"meta"`
		Data    []jsonEntry `json:"data"`
		Summary jsonSummary `json:"summary"`
	}{
		Meta: jsonMeta{
			Version:   "1.0",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Data:    data,
		Summary: jsonSummary{Count: len(records)},
	}

	w, closeFn, err := p.openWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func (p *JSONPrinter) StreamPrint(records <-chan *collect.Record) error {
	w, closeFn, err := p.openWriter()
	if err != nil {
		return err
	}
	defer closeFn()
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	meta := jsonMeta{Version: "1.0", Timestamp: time.Now().Format(time.RFC3339)}
	metaBytes, err := json.MarshalIndent(meta, "  ", "  ")
	if err != nil {
		return err
	}

	if _, err := bw.WriteString("{\n  \"meta\": "); err != nil {
		return err
	}
	if _, err := bw.Write(metaBytes); err != nil {
		return err
	}
	if _, err := bw.WriteString(",\n  \"data\": [\n"); err != nil {
		return err
	}

	first := true
	count := 0
	for rec := range records {
		if rec == nil {
			continue
		}
		if !first {
			bw.WriteString(",\n")
		}
		first = false
		count++

		entry := jsonEntry{DN: rec.DN, Attributes: recordAttributes(rec)}
		entryBytes, err := json.MarshalIndent(entry, "    ", "  ")
		if err != nil {
			return err
		}
		if _, err := bw.Write(entryBytes); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString("\n  ],\n"); err != nil {
		return err
	}

	summary := jsonSummary{Count: count}
	summaryBytes, err := json.MarshalIndent(summary, "  ", "  ")
	if err != nil {
		return err
	}
	if _, err := bw.WriteString("  \"summary\": "); err != nil {
		return err
	}
	if _, err := bw.Write(summaryBytes); err != nil {
		return err
	}
	if _, err := bw.WriteString("}\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func (p *JSONPrinter) openWriter() (*os.File, func(), error) {
	if p.Config.Path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(p.Config.Path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
