package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"adldap/collect"
)

type CSVPrinter struct {
	Config PrinterConfig
}

func NewCSVPrinter(config PrinterConfig) Printer {
	return &CSVPrinter{
		Config: config,
	}
}

func (p *CSVPrinter) Print(records []*collect.Record) error {
	if len(records) == 0 {
		return nil
	}

	attrSet := make(map[string]bool)
	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		rows[i] = recordAttributes(rec)
		for attr := range rows[i] {
			attrSet[attr] = true
		}
	}

	sortedAttrs := make([]string, 0, len(attrSet))
	for attr := range attrSet {
		sortedAttrs = append(sortedAttrs, attr)
	}
	sort.Strings(sortedAttrs)

	writer, closeFn, err := p.openWriter()
	if err != nil {
		return err
	}
	defer closeFn()
	defer writer.Flush()

	header := append([]string{"DN"}, sortedAttrs...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]string, len(header))
		row[0] = rec.DN
		for j, attr := range sortedAttrs {
			row[j+1] = rows[i][attr]
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (p *CSVPrinter) StreamPrint(records <-chan *collect.Record) error {
	writer, closeFn, err := p.openWriter()
	if err != nil {
		return err
	}
	defer closeFn()
	defer writer.Flush()

	header := []string{"DN", "Attribute Name", "Attribute Value"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for rec := range records {
		if rec == nil {
			continue
		}
		attrs := recordAttributes(rec)
		var names []string
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			row := []string{rec.DN, name, attrs[name]}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	return nil
}

func (p *CSVPrinter) openWriter() (*csv.Writer, func(), error) {
	if p.Config.Path == "" {
		return csv.NewWriter(os.Stdout), func() {}, nil
	}
	file, err := os.Create(p.Config.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create CSV file: %w", err)
	}
	return csv.NewWriter(file), func() { file.Close() }, nil
}
