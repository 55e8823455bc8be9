package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"

	"backoffice/internal/models"
)

// ProductPayload is the writable part of a product.
type ProductPayload struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Price       float64            `json:"price"`
	Stock       int                `json:"stock"`
	Rating      float64            `json:"rating"`
	Reviews     int                `json:"reviews"`
	Description string             `json:"description"`
	Features    models.FeatureList `json:"features"`
	Specs       models.SpecMap     `json:"specs"`
}

// ImageFile is a single image attached to a product upload.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Products is the /api/products collection.
type Products struct {
	Collection[models.Product]
}

// Create uploads a new product as multipart/form-data. Features and specs are
// sent as JSON-encoded form fields; img, when non-nil, is sent as the single
// "image" file part.
func (p *Products) Create(ctx context.Context, payload ProductPayload, img *ImageFile) (*models.Product, error) {
	body, contentType, err := encodeProductForm(payload, img)
	if err != nil {
		return nil, err
	}
	var out models.Product
	if err := p.c.do(ctx, http.MethodPost, p.path, contentType, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the writable fields of a product. Images are left untouched.
func (p *Products) Update(ctx context.Context, id models.ID, payload ProductPayload) (*models.Product, error) {
	return p.update(ctx, id, payload)
}

func encodeProductForm(payload ProductPayload, img *ImageFile) (io.Reader, string, error) {
	features, err := payload.Features.Encode()
	if err != nil {
		return nil, "", err
	}
	specs, err := payload.Specs.Encode()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"name", payload.Name},
		{"category", payload.Category},
		{"price", strconv.FormatFloat(payload.Price, 'f', -1, 64)},
		{"stock", strconv.Itoa(payload.Stock)},
		{"rating", strconv.FormatFloat(payload.Rating, 'f', -1, 64)},
		{"reviews", strconv.Itoa(payload.Reviews)},
		{"description", payload.Description},
		{"features", features},
		{"specs", specs},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if img != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(img.Filename)))
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, img.Data); err != nil {
			return nil, "", fmt.Errorf("failed to copy image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
