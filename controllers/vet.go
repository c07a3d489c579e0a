package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/models"
	"github.com/vderm-x/vetcare-app/redis"
	"github.com/vderm-x/vetcare-app/utils"
)

const (
	vetsCacheKey = "vets:all"
	vetsCacheTTL = 5 * time.Minute
)

// GetVets lists all vet profiles, served from the redis cache when warm
func GetVets(c *fiber.Ctx) error {
	if cached, err := redis.Client.Get(redis.Ctx, vetsCacheKey).Result(); err == nil {
		var vets []models.User
		if err := json.Unmarshal([]byte(cached), &vets); err == nil {
			return c.JSON(vets)
		}
	}

	vets := make([]models.User, 0)
	if err := db.DB.Where("role = ?", models.RoleVet).Find(&vets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch vets",
			Error:   err.Error(),
		})
	}
	for i := range vets {
		vets[i].Sanitize()
	}

	if payload, err := json.Marshal(vets); err == nil {
		if err := redis.Client.Set(redis.Ctx, vetsCacheKey, payload, vetsCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache vet list: %v", err)
		}
	}

	return c.JSON(vets)
}

// GetVet returns a single vet profile by ID
func GetVet(c *fiber.Ctx) error {
	id := c.Params("id")
	var vet models.User
	if err := db.DB.Where("id = ? AND role = ?", id, models.RoleVet).First(&vet).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Vet not found",
		})
	}
	vet.Sanitize()
	return c.JSON(vet)
}

func invalidateVetsCache() {
	if err := redis.Client.Del(redis.Ctx, vetsCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate vet cache: %v", err)
	}
}
