package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fwojciec/labelmkr"
	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"
)

// noMatches is printed when selectors resolve but find nothing.
const noMatches = "No matches found for these selectors."

// Output formats.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatXLSX  = "xlsx"
)

// xlsxSheet names the worksheet holding label records.
const xlsxSheet = "Labels"

// pageOutput is one page of a labels or last listing.
type pageOutput struct {
	URL       string            `json:"url"`
	Records   []labelmkr.Record `json:"records"`
	Dropped   int               `json:"dropped,omitempty"`
	Hash      string            `json:"hash,omitempty"`
	Unchanged bool              `json:"unchanged,omitempty"`
	FetchedAt *time.Time        `json:"fetchedAt,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeItems(w io.Writer, format string, items []labelmkr.Item) error {
	switch format {
	case formatJSON:
		if items == nil {
			items = []labelmkr.Item{}
		}
		return writeJSON(w, items)
	case formatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "Value"})
		table.SetAutoWrapText(false)
		for _, item := range items {
			table.Append([]string{item.Position, item.Value})
		}
		table.Render()
		return nil
	default:
		_, err := fmt.Fprintln(w, labelmkr.FormatItems(items))
		return err
	}
}

func writePages(w io.Writer, format string, pages []pageOutput) error {
	switch format {
	case formatJSON:
		return writeJSON(w, pages)
	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"url", "ordinal", "code", "label"}); err != nil {
			return err
		}
		for _, p := range pages {
			for _, r := range p.Records {
				if err := cw.Write([]string{p.URL, strconv.Itoa(r.Ordinal), r.Code, r.Label}); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	case formatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"URL", "#", "Code", "Label"})
		table.SetAutoWrapText(false)
		for _, p := range pages {
			for _, r := range p.Records {
				table.Append([]string{p.URL, strconv.Itoa(r.Ordinal), r.Code, r.Label})
			}
		}
		table.Render()
		return nil
	default:
		for i, p := range pages {
			if i > 0 {
				fmt.Fprintln(w)
			}
			header := p.URL
			switch {
			case p.Error != "":
				header += "  (failed: " + p.Error + ")"
			case p.Unchanged:
				header += "  (unchanged)"
			case p.FetchedAt != nil:
				header += "  (" + p.FetchedAt.Local().Format("2006-01-02 15:04") + ")"
			}
			fmt.Fprintln(w, header)
			if len(p.Records) > 0 {
				fmt.Fprintln(w, labelmkr.FormatRecords(p.Records))
			}
		}
		return nil
	}
}

// emptyPages reports whether no page produced a record or an error.
func emptyPages(pages []pageOutput) bool {
	for _, p := range pages {
		if len(p.Records) > 0 || p.Error != "" {
			return false
		}
	}
	return true
}

// checkOutput rejects format and path combinations that cannot be written.
func checkOutput(format, path string) error {
	if format == formatXLSX && path == "" {
		return labelmkr.Errorf(labelmkr.EINVALID, "--format xlsx requires --output")
	}
	return nil
}

// emitPages writes pages to path, or to stdout when path is empty.
func emitPages(deps *Dependencies, format, path string, pages []pageOutput) (err error) {
	if format == formatXLSX {
		if err := writeXLSX(path, pages); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", countRecords(pages), path)
		return nil
	}
	if path == "" {
		return writePages(deps.Stdout, format, pages)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writePages(f, format, pages)
}

// writeXLSX saves the records of pages as a single worksheet, one row per
// record, ready for mail merge.
func writeXLSX(path string, pages []pageOutput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	row := 1
	put := func(values ...any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	if err := put("url", "ordinal", "code", "label"); err != nil {
		return err
	}
	for _, p := range pages {
		for _, r := range p.Records {
			if err := put(p.URL, r.Ordinal, r.Code, r.Label); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func countRecords(pages []pageOutput) int {
	var n int
	for _, p := range pages {
		n += len(p.Records)
	}
	return n
}
