package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"backoffice/internal/models"
	"backoffice/internal/services"
	"backoffice/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	images  storage.Storage
}

// NewProductHandler creates a new ProductHandler. Uploaded images go to images.
func NewProductHandler(service *services.ProductService, images storage.Storage) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts returns every product as a plain JSON array.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return writeError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(models.ID(c.Params("id")))
	if err != nil {
		return writeError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct accepts either a multipart form (JSON-encoded features
// and specs, one optional image part) or a JSON body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := parseProductForm(c, &product); err != nil {
			return badRequest(c, "Invalid product form", err)
		}
		stored, err := h.storeImage(c)
		if err != nil {
			return badRequest(c, "Invalid product image", err)
		}
		if stored != nil {
			product.Images = []string{stored.URL}
		}
		if err := h.service.CreateProduct(&product); err != nil {
			if stored != nil {
				if delErr := h.images.Delete(c.UserContext(), stored.Key); delErr != nil {
					log.Printf("Error removing orphaned image %s: %v", stored.Key, delErr)
				}
			}
			return writeError(c, "Could not create product", err)
		}
		return c.Status(fiber.StatusCreated).JSON(product)
	}

	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = ""
	if err := h.service.CreateProduct(&product); err != nil {
		return writeError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the writable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = models.ID(c.Params("id"))
	if err := h.service.UpdateProduct(&product); err != nil {
		return writeError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(models.ID(id)); err != nil {
		return writeError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}

func (h *ProductHandler) storeImage(c *fiber.Ctx) (*storage.PutResult, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["image"]
	switch {
	case len(files) == 0:
		return nil, nil
	case len(files) > 1:
		return nil, fmt.Errorf("at most one image may be uploaded, got %d", len(files))
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	res, err := h.images.Put(c.UserContext(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func parseProductForm(c *fiber.Ctx, p *models.Product) error {
	var err error
	p.Name = c.FormValue("name")
	p.Category = c.FormValue("category")
	p.Description = c.FormValue("description")
	if p.Price, err = formFloat(c, "price"); err != nil {
		return err
	}
	if p.Rating, err = formFloat(c, "rating"); err != nil {
		return err
	}
	if p.Stock, err = formInt(c, "stock"); err != nil {
		return err
	}
	if p.Reviews, err = formInt(c, "reviews"); err != nil {
		return err
	}
	if p.Features, err = models.DecodeFeatureList(c.FormValue("features")); err != nil {
		return err
	}
	if p.Specs, err = models.DecodeSpecMap(c.FormValue("specs")); err != nil {
		return err
	}
	return nil
}

func formFloat(c *fiber.Ctx, key string) (float64, error) {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func formInt(c *fiber.Ctx, key string) (int, error) {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return n, nil
}
