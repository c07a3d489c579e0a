package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/models"
	"github.com/vderm-x/vetcare-app/utils"
)

// SaveDiagnosis stores an image-classification result for a user
func SaveDiagnosis(c *fiber.Ctx) error {
	type PredictionInput struct {
		Classification string    `json:"classification"`
		Confidence     []float64 `json:"confidence"`
		// Legacy clients send the confidence vector under "prediction"
		Prediction []float64 `json:"prediction"`
	}
	type DiagnosisInput struct {
		UserID     uint             `json:"userId"`
		ImageURL   string           `json:"imageUrl"`
		Prediction *PredictionInput `json:"prediction"`
		Location   string           `json:"location"`
	}

	input := new(DiagnosisInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if input.UserID == 0 || input.ImageURL == "" || input.Prediction == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "userId, imageUrl, and prediction are required",
		})
	}

	confidence := input.Prediction.Confidence
	if len(confidence) == 0 {
		confidence = input.Prediction.Prediction
	}
	if input.Prediction.Classification == "" || len(confidence) != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "prediction requires a classification and a 2-element confidence vector",
		})
	}

	var user models.User
	if db.DB.First(&user, input.UserID).RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	diagnosis := models.DiagnosisHistory{
		UserID:   input.UserID,
		ImageURL: input.ImageURL,
		Prediction: models.Prediction{
			Classification: input.Prediction.Classification,
			Confidence:     confidence,
		},
		Location: input.Location,
	}
	if err := db.DB.Create(&diagnosis).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save diagnosis",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(diagnosis)
}

// GetUserDiagnosisHistory lists a user's diagnoses newest-first
func GetUserDiagnosisHistory(c *fiber.Ctx) error {
	userID := c.Params("userId")
	diagnoses := make([]models.DiagnosisHistory, 0)
	err := db.DB.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&diagnoses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch diagnosis history",
			Error:   err.Error(),
		})
	}
	return c.JSON(diagnoses)
}

// GetDiagnosis returns a diagnosis by ID
func GetDiagnosis(c *fiber.Ctx) error {
	id := c.Params("id")
	var diagnosis models.DiagnosisHistory
	if err := db.DB.First(&diagnosis, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Diagnosis not found",
		})
	}
	return c.JSON(diagnosis)
}
