package handlers

import (
	"net/http"

	"covenfield_backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

// Reference endpoints serve the static game catalog so clients do not
// hardcode it. No auth, long cache.

const catalogCacheControl = "public, max-age=3600"

func (h *Handler) RefItems(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"items": catalog.AllItems()})
}

func (h *Handler) RefCrops(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"crops": catalog.AllCrops()})
}

func (h *Handler) RefRecipes(c *gin.Context) {
	kind, ok := parseProducer(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"recipes": catalog.RecipesFor(kind)})
}

func (h *Handler) RefBuildings(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"buildings":   catalog.AllBuildingTypes(),
		"decorations": catalog.AllDecorationTypes(),
	})
}

func (h *Handler) RefAnimals(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"animals": catalog.AllAnimalTypes()})
}

func (h *Handler) RefOres(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"tiers": catalog.OreTiers()})
}
