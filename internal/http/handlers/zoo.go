package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ZooView(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.Zoo.View(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ZooBuyEnclosure(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	id, err := h.Zoo.BuyEnclosure(c.Request.Context(), pid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"enclosure_id": id})
}

type buyAnimalRequest struct {
	EnclosureID int64  `json:"enclosure_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

func (h *Handler) ZooBuyAnimal(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req buyAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enclosure_id and type required"})
		return
	}

	animal, err := h.Zoo.BuyAnimal(c.Request.Context(), pid, req.EnclosureID, req.Type)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, animal)
}

func (h *Handler) ZooCollect(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}
	animalID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.Zoo.Collect(c.Request.Context(), pid, animalID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type breedRequest struct {
	AnimalA int64 `json:"animal_a" binding:"required"`
	AnimalB int64 `json:"animal_b" binding:"required"`
}

func (h *Handler) ZooBreed(c *gin.Context) {
	pid, ok := playerID(c)
	if !ok {
		return
	}

	var req breedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "animal_a and animal_b required"})
		return
	}

	offspring, err := h.Zoo.Breed(c.Request.Context(), pid, req.AnimalA, req.AnimalB)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, offspring)
}
