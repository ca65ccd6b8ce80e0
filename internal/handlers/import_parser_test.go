package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFileTypeForExtension(t *testing.T) {
	if ft, err := fileTypeForExtension(".xlsx"); err != nil || ft != "excel" {
		t.Fatalf("expected excel, got %q err=%v", ft, err)
	}
	if ft, err := fileTypeForExtension(".DOCX"); err != nil || ft != "word" {
		t.Fatalf("expected word for uppercase extension, got %q err=%v", ft, err)
	}
	if _, err := fileTypeForExtension(".pdf"); err == nil {
		t.Fatal("expected error for .pdf")
	}
	if _, err := fileTypeForExtension(""); err == nil {
		t.Fatal("expected error for empty extension")
	}
}

func buildTestSpreadsheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write spreadsheet: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseSpreadsheetHeadersAndPadding(t *testing.T) {
	r := buildTestSpreadsheet(t, [][]interface{}{
		{"Name", "Image", "Category"},
		{"Millet Cookies", "https://cdn.example.com/cookies.png", "Food Products"},
		{"Vermicompost", "https://cdn.example.com/compost.png"},
	})

	records, err := parseSpreadsheet(r)
	if err != nil {
		t.Fatalf("parseSpreadsheet: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "Millet Cookies" || records[0]["category"] != "Food Products" {
		t.Fatalf("unexpected first record: %v", records[0])
	}
	if records[1]["category"] != "" {
		t.Fatalf("expected short row to be padded with empty category, got %q", records[1]["category"])
	}
}

func TestParseSpreadsheetNoDataRows(t *testing.T) {
	r := buildTestSpreadsheet(t, [][]interface{}{{"Name", "Image"}})

	_, err := parseSpreadsheet(r)
	var importErr importError
	if !errors.As(err, &importErr) || importErr.kind != importErrNoValidRows {
		t.Fatalf("expected no-valid-rows error, got %v", err)
	}
}

func TestParseDelimitedLinesDropsMismatchedFieldCount(t *testing.T) {
	text := strings.Join([]string{
		"name\timage\tprice",
		"Banana Fig Bar\thttps://cdn.example.com/bar.png\t₹60",
		"only two\tfields",
		"Neem Oil\thttps://cdn.example.com/neem.png\t₹150",
	}, "\n")

	records, err := parseDelimitedLines(text)
	if err != nil {
		t.Fatalf("parseDelimitedLines: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected mismatched line to be dropped, got %d records", len(records))
	}
	if records[1]["name"] != "Neem Oil" {
		t.Fatalf("unexpected second record: %v", records[1])
	}
}

func buildTestDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString("<w:p><w:r>")
		for i, field := range strings.Split(p, "\t") {
			if i > 0 {
				sb.WriteString("<w:tab/>")
			}
			sb.WriteString("<w:t>" + field + "</w:t>")
		}
		sb.WriteString("</w:r></w:p>")
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestParseWordDocument(t *testing.T) {
	data := buildTestDocx(t, []string{
		"name\timage",
		"Areca Leaf Plates\thttps://cdn.example.com/plates.png",
	})

	records, err := parseWordDocument(data)
	if err != nil {
		t.Fatalf("parseWordDocument: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["name"] != "Areca Leaf Plates" {
		t.Fatalf("unexpected record: %v", records[0])
	}
}

func TestParseWordDocumentNotADocx(t *testing.T) {
	_, err := parseWordDocument([]byte("plain text, not a zip"))
	var importErr importError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected import error, got %v", err)
	}
}

func TestBuildImportProductsDropsNamelessBeforeImageGate(t *testing.T) {
	// The nameless row also lacks an image; it must be discarded before the
	// image gate runs, so the remaining row passes.
	records := []importRecord{
		{"name": "", "image": ""},
		{"name": "Honey 500g", "image": "https://cdn.example.com/honey.png"},
	}

	products, err := buildImportProducts(records)
	if err != nil {
		t.Fatalf("buildImportProducts: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Honey 500g" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestBuildImportProductsAllOrNothing(t *testing.T) {
	records := []importRecord{
		{"name": "Honey 500g", "image": "https://cdn.example.com/honey.png"},
		{"name": "Ghee 250g", "image": ""},
	}

	_, err := buildImportProducts(records)
	var importErr importError
	if !errors.As(err, &importErr) || importErr.kind != importErrMissingImages {
		t.Fatalf("expected missing-images error, got %v", err)
	}
}

func TestBuildImportProductsEmptySurvivorSet(t *testing.T) {
	records := []importRecord{
		{"name": "", "image": "https://cdn.example.com/a.png"},
		{"name": "   ", "image": "https://cdn.example.com/b.png"},
	}

	_, err := buildImportProducts(records)
	var importErr importError
	if !errors.As(err, &importErr) || importErr.kind != importErrNoValidRows {
		t.Fatalf("expected no-valid-rows error, got %v", err)
	}
}

func TestBuildImportProductsFoldsContactKeys(t *testing.T) {
	records := []importRecord{
		{
			"name":          "Jackfruit Chips",
			"image":         "https://cdn.example.com/chips.png",
			"contact.name":  "Asha",
			"contact.phone": "9876500000",
			"contact.email": "asha@example.com",
		},
	}

	products, err := buildImportProducts(records)
	if err != nil {
		t.Fatalf("buildImportProducts: %v", err)
	}
	contact := products[0].Contact
	if contact.Name != "Asha" || contact.Phone != "9876500000" || contact.Email != "asha@example.com" {
		t.Fatalf("contact not folded: %+v", contact)
	}
	if products[0].Images[0] != "https://cdn.example.com/chips.png" {
		t.Fatalf("image not carried: %+v", products[0].Images)
	}
}
