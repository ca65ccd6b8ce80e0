package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
POST /products/bulk-upload (admin)
- multipart "file": spreadsheet or word document of product rows
- all-or-nothing: one invalid surviving row rejects the entire batch
- response: {count, fileType}
*/
func BulkUploadProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/bulk-upload"
		defer handlePanic(c, route)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "file is required")
			return
		}

		fileType, err := fileTypeForExtension(filepath.Ext(fileHeader.Filename))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not open upload")
			return
		}
		defer file.Close()

		var records []importRecord
		switch fileType {
		case "excel":
			records, err = parseSpreadsheet(file)
		case "word":
			var data []byte
			data, err = io.ReadAll(io.LimitReader(file, 32<<20))
			if err == nil {
				records, err = parseWordDocument(data)
			}
		}
		if err != nil {
			respondImportError(c, route, err)
			return
		}

		products, err := buildImportProducts(records)
		if err != nil {
			respondImportError(c, route, err)
			return
		}

		docs := make([]interface{}, 0, len(products))
		for _, product := range products {
			docs = append(docs, product)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		if _, err := db.Collection("products").InsertMany(ctx, docs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "batch contains a duplicate product listing")
				return
			}
			log.Printf("[%s] insert error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] inserted %d products from %s file", route, len(products), fileType)
		c.JSON(http.StatusOK, gin.H{
			"count":    len(products),
			"fileType": fileType,
		})
	}
}

func respondImportError(c *gin.Context, route string, err error) {
	var importErr importError
	if errors.As(err, &importErr) {
		respondWithError(c, http.StatusBadRequest, route, importErr.Error())
		return
	}
	respondWithError(c, http.StatusInternalServerError, route, err.Error())
}
