package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/storefront/internal/auth"
	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/service"
)

type Handler struct {
	storefront *service.Storefront
	admin      *service.Admin
}

func NewHandler(storefront *service.Storefront, admin *service.Admin) *Handler {
	return &Handler{storefront: storefront, admin: admin}
}

func (h *Handler) RegisterRoutes(router *gin.Engine, authenticator auth.Authenticator) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/home", h.Home)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)
	}

	admin := api.Group("/admin", RequireAdmin(authenticator))
	{
		admin.GET("/stats", h.Dashboard)
		admin.GET("/products", h.AdminListProducts)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/products/:id/toggle", h.ToggleActive)
		admin.GET("/settings", h.Settings)
		admin.PUT("/settings", h.SaveSettings)
		admin.POST("/settings/preset", h.ApplyPreset)
		admin.GET("/settings/options", h.SettingsOptions)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefront.Home(c.Request.Context()))
}

// ListProducts serves the storefront listing. The category parameter is also
// how category pages link into the listing.
func (h *Handler) ListProducts(c *gin.Context) {
	listing := h.storefront.ListProducts(c.Request.Context(), service.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	})
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.storefront.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListCategories(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	listing := h.storefront.ListCategories(c.Request.Context(), service.CategoryQuery{
		Search:       c.Query("search"),
		FeaturedOnly: featured,
	})
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.Dashboard(c.Request.Context()))
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	listing, err := h.admin.ListProducts(c.Request.Context(), service.AdminProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.admin.CreateProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.admin.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ToggleActive(c *gin.Context) {
	product, err := h.admin.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) Settings(c *gin.Context) {
	cfg, err := h.admin.Settings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var cfg domain.SiteConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}

	saved, err := h.admin.SaveSettings(c.Request.Context(), cfg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type presetRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) ApplyPreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cfg, err := h.admin.ApplyPreset(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) SettingsOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.SettingsOptions())
}
