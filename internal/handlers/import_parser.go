package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

// importRecord is one parsed row keyed by the (lowercased) header names.
type importRecord map[string]string

type importErrorKind int

const (
	importErrUnsupported importErrorKind = iota
	importErrNoValidRows
	importErrMissingImages
)

// importError is a client-input failure from parsing or validating a batch.
type importError struct {
	kind    importErrorKind
	message string
}

func (e importError) Error() string { return e.message }

// fileTypeForExtension dispatches the uploaded file by its declared extension.
func fileTypeForExtension(ext string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".xlsx", ".xls":
		return "excel", nil
	case ".docx":
		return "word", nil
	default:
		return "", importError{importErrUnsupported, "unsupported file type, upload .xlsx, .xls or .docx"}
	}
}

// parseSpreadsheet reads the first sheet, treating row 1 as column headers and
// each following row as one record. Short rows are padded with empty cells.
func parseSpreadsheet(r io.Reader) ([]importRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, importError{importErrUnsupported, "could not read spreadsheet: " + err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, importError{importErrNoValidRows, "spreadsheet has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, importError{importErrUnsupported, "could not read spreadsheet rows: " + err.Error()}
	}
	if len(rows) < 2 {
		return nil, importError{importErrNoValidRows, "spreadsheet has no data rows"}
	}

	headers := normalizeHeaders(rows[0])
	records := make([]importRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := importRecord{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			record[header] = value
		}
		records = append(records, record)
	}

	return records, nil
}

// parseWordDocument extracts the document text and reads it as tab-separated
// lines: line 1 is the header row, and a data line is silently dropped unless
// its field count exactly matches the header count.
func parseWordDocument(data []byte) ([]importRecord, error) {
	text, err := extractDocxText(data)
	if err != nil {
		return nil, importError{importErrUnsupported, "could not read document: " + err.Error()}
	}
	return parseDelimitedLines(text)
}

func parseDelimitedLines(text string) ([]importRecord, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, importError{importErrNoValidRows, "document has no data lines"}
	}

	headers := normalizeHeaders(strings.Split(lines[0], "\t"))
	records := make([]importRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) != len(headers) {
			continue
		}
		record := importRecord{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			record[header] = strings.TrimSpace(fields[i])
		}
		records = append(records, record)
	}

	return records, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}

// extractDocxText pulls the plain text out of a .docx archive: paragraphs
// become lines, w:tab runs become tab characters.
func extractDocxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}

// buildImportProducts applies the post-extraction pipeline:
//  1. fold dotted contact.* keys into the nested contact,
//  2. silently drop rows without a non-empty name,
//  3. require a non-empty image URL on every surviving row — one failure
//     rejects the whole batch, nothing is inserted.
func buildImportProducts(records []importRecord) ([]models.Product, error) {
	survivors := make([]importRecord, 0, len(records))
	for _, record := range records {
		if strings.TrimSpace(record["name"]) != "" {
			survivors = append(survivors, record)
		}
	}

	missingImages := 0
	for _, record := range survivors {
		if strings.TrimSpace(record["image"]) == "" {
			missingImages++
		}
	}
	if missingImages > 0 {
		return nil, importError{
			importErrMissingImages,
			fmt.Sprintf("%d row(s) are missing the required image URL; no rows were inserted", missingImages),
		}
	}

	if len(survivors) == 0 {
		return nil, importError{importErrNoValidRows, "no valid rows found in file"}
	}

	now := time.Now()
	products := make([]models.Product, 0, len(survivors))
	for _, record := range survivors {
		products = append(products, models.Product{
			Name:        record["name"],
			Description: record["description"],
			Category:    record["category"],
			Startup:     record["startup"],
			Quantity:    record["quantity"],
			Price:       record["price"],
			Contact: models.Contact{
				Name:  record["contact.name"],
				Phone: record["contact.phone"],
				Email: record["contact.email"],
			},
			Images:    []string{record["image"]},
			Reviews:   []models.Review{},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return products, nil
}
