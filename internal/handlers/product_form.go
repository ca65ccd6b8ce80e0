package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

// MultipartProductInput carries parsed admin-form fields; the Set flags
// distinguish "absent" from "present but empty" so updates stay partial.
type MultipartProductInput struct {
	Name           string
	NameSet        bool
	Description    string
	DescriptionSet bool
	Category       string
	CategorySet    bool
	Startup        string
	StartupSet     bool
	Quantity       string
	QuantitySet    bool
	Price          string
	PriceSet       bool
	Contact        models.Contact
	ContactSet     bool
	ImagePath      string
	ImageSet       bool
}

func parseMultipartProductRequest(c *gin.Context, uploadDir string) (MultipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return MultipartProductInput{}, err
	}

	input := MultipartProductInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}
	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}
	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}
	if value, ok := c.GetPostForm("startup"); ok {
		input.Startup = strings.TrimSpace(value)
		input.StartupSet = true
	}
	if value, ok := c.GetPostForm("quantity"); ok {
		input.Quantity = strings.TrimSpace(value)
		input.QuantitySet = true
	}
	if value, ok := c.GetPostForm("price"); ok {
		input.Price = strings.TrimSpace(value)
		input.PriceSet = true
	}

	// The admin form sends the nested contact as one JSON-encoded field.
	if value, ok := c.GetPostForm("contact"); ok && strings.TrimSpace(value) != "" {
		contact, err := parseContactField(value)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.Contact = contact
		input.ContactSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		imagePath, err := saveImage(file, uploadDir, "products")
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.ImagePath = imagePath
		input.ImageSet = true
	} else if err != http.ErrMissingFile && !strings.Contains(err.Error(), "no such file") {
		return MultipartProductInput{}, err
	}

	return input, nil
}

func parseContactField(value string) (models.Contact, error) {
	var contact models.Contact
	if err := json.Unmarshal([]byte(value), &contact); err != nil {
		return models.Contact{}, fmt.Errorf("contact must be a JSON object: %v", err)
	}
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	return contact, nil
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
