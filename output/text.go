package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"adldap/collect"
)

type TextPrinter struct {
	Config PrinterConfig
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	blue   func(a ...interface{}) string
	green  func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	bold   func(a ...interface{}) string
	dim    func(a ...interface{}) string
}

func NewTextPrinter(config PrinterConfig) Printer {
	if color.NoColor {
		return &TextPrinter{
			Config: config,
			red:    fmt.Sprint,
			yellow: fmt.Sprint,
			blue:   fmt.Sprint,
			green:  fmt.Sprint,
			cyan:   fmt.Sprint,
			bold:   fmt.Sprint,
			dim:    fmt.Sprint,
		}
	}

	return &TextPrinter{
		Config: config,
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		blue:   color.New(color.FgBlue).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
		bold:   color.New(color.Bold).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
	}
}

func (p *TextPrinter) Print(records []*collect.Record) error {
	if len(records) == 0 {
		fmt.Println("[INFO] No records found")
		return nil
	}
	return p.printCard(records)
}

func (p *TextPrinter) StreamPrint(records <-chan *collect.Record) error {
	return p.streamCard(records)
}

func (p *TextPrinter) printCard(records []*collect.Record) error {
	p.printHeader("Search Results")
	for _, rec := range records {
		p.printRecordCard(rec)
	}
	p.printFooter(len(records))
	return nil
}

func (p *TextPrinter) streamCard(records <-chan *collect.Record) error {
	p.printHeader("Search Results")
	count := 0
	for rec := range records {
		if rec != nil {
			p.printRecordCard(rec)
			count++
		}
	}
	p.printFooter(count)
	return nil
}

func (p *TextPrinter) printRecordCard(rec *collect.Record) {
	attrMap := recordAttributes(rec)
	objType := objectType(rec.DN)

	separator := strings.Repeat("-", 80)
	fmt.Printf("%s\n", separator)
	fmt.Printf("%s\n", p.bold(fmt.Sprintf("[%s] %s", objType, rec.DN)))
	fmt.Printf("%s\n", separator)
	if isHighValueTarget(rec) {
		fmt.Printf("%s\n", p.red("  [!] high-value target"))
	}

	var keys []string
	var maxKeyLen int
	for k := range attrMap {
		if attrMap[k] != "" {
			keys = append(keys, k)
			if len(k) > maxKeyLen {
				maxKeyLen = len(k)
			}
		}
	}
	sort.Strings(keys)

	if maxKeyLen < 20 {
		maxKeyLen = 20
	}
	if maxKeyLen > 50 {
		maxKeyLen = 50
	}

	for _, k := range keys {
		val := attrMap[k]
		if val != "" {
			val = strings.ReplaceAll(val, "\r\n", " ")
			val = strings.ReplaceAll(val, "\n", " ")
			val = strings.ReplaceAll(val, "\r", " ")
			val = strings.ReplaceAll(val, "\t", " ")
		}

		keyText := fmt.Sprintf("  [*] %s", k)
		keyStr := p.cyan(keyText)
		padding := strings.Repeat(" ", maxKeyLen-len(k))
		valStr := val

		if strings.Contains(k, "AllowedToDelegate") ||
			strings.Contains(k, "AllowedToAct") ||
			(k == "adminCount" && val == "1") ||
			(k == "userAccountControl" && strings.Contains(val, "TRUSTED")) {
			valStr = p.red(val)
		} else if k == "whenCreated" || k == "whenChanged" {
			valStr = p.dim(val)
		}

		keyIndent := strings.Repeat(" ", len([]rune(keyText))+len(padding)+3)

		if k == "nTSecurityDescriptor" || strings.HasPrefix(valStr, "Owner=") || strings.HasPrefix(valStr, "O:") {
			for i, part := range wrapRunes(valStr, 120) {
				if i == 0 {
					fmt.Printf("%s%s : %s\n", keyStr, padding, part)
					continue
				}
				fmt.Printf("%s%s\n", keyIndent, part)
			}
			continue
		}

		if len(valStr) > 120 {
			valStr = valStr[:117] + "..."
		}

		fmt.Printf("%s%s : %s\n", keyStr, padding, valStr)
	}
	fmt.Println()
}

func wrapRunes(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}
	if !utf8.ValidString(s) {
		return []string{s}
	}
	r := []rune(s)
	if len(r) <= width {
		return []string{s}
	}
	parts := make([]string, 0, (len(r)/width)+1)
	for i := 0; i < len(r); i += width {
		end := i + width
		if end > len(r) {
			end = len(r)
		}
		parts = append(parts, string(r[i:end]))
	}
	return parts
}

func (p *TextPrinter) printHeader(title string) {
	fmt.Println()
	fmt.Printf("  %s\n", p.cyan(fmt.Sprintf("ADLDAP REPORT  |  %s", title)))
	fmt.Println()
}

func (p *TextPrinter) printFooter(count int) {
	fmt.Printf("Total Records: %s\n", p.green(strconv.Itoa(count)))
}
