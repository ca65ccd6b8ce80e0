package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, fields map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequestContactField(t *testing.T) {
	c := multipartContext(t, map[string]string{
		"name":    "Ragi Malt",
		"price":   "₹90",
		"contact": `{"name":"Deepa","phone":"9000012345","email":"deepa@example.com"}`,
	})

	input, err := parseMultipartProductRequest(c, t.TempDir())
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !input.NameSet || input.Name != "Ragi Malt" {
		t.Fatalf("expected name set, got %+v", input)
	}
	if !input.PriceSet || input.Price != "₹90" {
		t.Fatalf("expected free-text price preserved, got %+v", input)
	}
	if !input.ContactSet || input.Contact.Email != "deepa@example.com" {
		t.Fatalf("expected contact parsed from JSON field, got %+v", input.Contact)
	}
	if input.ImageSet {
		t.Fatal("expected no image without a file part")
	}
}

func TestParseMultipartProductRequestRejectsBadContactJSON(t *testing.T) {
	c := multipartContext(t, map[string]string{
		"name":    "Ragi Malt",
		"contact": "not-json",
	})

	if _, err := parseMultipartProductRequest(c, t.TempDir()); err == nil {
		t.Fatal("expected error for malformed contact JSON")
	}
}

func TestParseMultipartProductRequestDistinguishesAbsentFromEmpty(t *testing.T) {
	c := multipartContext(t, map[string]string{
		"name":        "Ragi Malt",
		"description": "",
	})

	input, err := parseMultipartProductRequest(c, t.TempDir())
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !input.DescriptionSet || input.Description != "" {
		t.Fatalf("expected empty description to be marked as set, got %+v", input)
	}
	if input.CategorySet {
		t.Fatal("expected absent category to be unset")
	}
}

func TestGetSchemaFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/products/schema-format", nil)

	GetSchemaFormat()(c)

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var payload struct {
		Fields []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
		} `json:"fields"`
		AcceptedExtensions []string `json:"acceptedExtensions"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("schema payload not valid JSON: %v", err)
	}

	required := map[string]bool{}
	for _, f := range payload.Fields {
		required[f.Name] = f.Required
	}
	if !required["name"] || !required["image"] {
		t.Fatalf("expected name and image to be required, got %v", required)
	}
	if len(payload.AcceptedExtensions) == 0 {
		t.Fatal("expected accepted extensions to be listed")
	}
}
