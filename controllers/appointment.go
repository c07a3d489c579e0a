package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/booking"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/models"
	"github.com/vderm-x/vetcare-app/utils"
)

// BookingService is wired at startup with the gorm store.
var BookingService *booking.Service

// userIDFromHeader reads the caller identity from the x-user-id header.
func userIDFromHeader(c *fiber.Ctx) (uint, error) {
	raw := c.Get("x-user-id")
	if raw == "" {
		return 0, fmt.Errorf("user ID is required in headers")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID header")
	}
	return uint(id), nil
}

func parseAppointmentDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// CreateAppointment books an appointment with a vet. The request is
// multipart so an optional image of the pet's condition can be attached.
func CreateAppointment(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID is required in headers",
		})
	}

	vetIDRaw := c.FormValue("vetId")
	dateRaw := c.FormValue("date")
	timeSlot := c.FormValue("timeSlot")
	reason := c.FormValue("reason")
	if vetIDRaw == "" || dateRaw == "" || timeSlot == "" || reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "vetId, date, timeSlot, and reason are required",
		})
	}

	vetID, err := strconv.ParseUint(vetIDRaw, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid vet ID",
		})
	}

	date, err := parseAppointmentDate(dateRaw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format",
			Error:   err.Error(),
		})
	}

	var imageURL string
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to read uploaded image",
				Error:   err.Error(),
			})
		}
		defer file.Close()

		imageURL, err = utils.UploadToCloudinary(file, "appointments")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to upload image",
				Error:   err.Error(),
			})
		}
	}

	appointment, err := BookingService.Book(userID, uint(vetID), date, timeSlot, reason, imageURL)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidVet):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid vet ID",
			})
		case errors.Is(err, booking.ErrInvalidUser):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid user ID",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create appointment",
				Error:   err.Error(),
			})
		}
	}

	sendBookingEmails(appointment, &appointment.User, &appointment.Vet)

	appointment.User.Sanitize()
	appointment.Vet.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetUserAppointments lists a user's appointments newest-first with the vet
// profile joined in
func GetUserAppointments(c *fiber.Ctx) error {
	userID := c.Params("userId")
	appointments := make([]models.Appointment, 0)
	err := db.DB.Preload("Vet").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	for i := range appointments {
		appointments[i].Vet.Sanitize()
	}
	return c.JSON(appointments)
}

// GetVetAppointments lists a vet's appointments newest-first with the owner
// profile joined in. The vet role header is asserted by the route middleware.
func GetVetAppointments(c *fiber.Ctx) error {
	vetID := c.Params("vetId")
	appointments := make([]models.Appointment, 0)
	err := db.DB.Preload("User").
		Where("vet_id = ?", vetID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	for i := range appointments {
		appointments[i].User.Sanitize()
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("User").Preload("Vet").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}
	appointment.User.Sanitize()
	appointment.Vet.Sanitize()
	return c.JSON(appointment)
}

// UpdateAppointmentStatus lets a vet confirm, reject, or complete an
// appointment
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status         models.AppointmentStatus `json:"status"`
		Notes          string                   `json:"notes"`
		RejectedReason string                   `json:"rejectedReason"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if !models.IsVetStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if err := appointment.ApplyStatus(input.Status, input.Notes, input.RejectedReason); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	sendStatusEmail(&appointment)

	return c.JSON(appointment)
}

// CancelAppointment lets the owning user cancel a not-yet-completed
// appointment
func CancelAppointment(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID is required in headers",
		})
	}

	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if appointment.UserID != userID {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "You can only cancel your own appointments",
		})
	}

	if appointment.Status == models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot cancel completed appointments",
		})
	}

	if err := appointment.CanTransitionTo(models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this appointment",
			Error:   err.Error(),
		})
	}

	appointment.Status = models.StatusCancelled
	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Appointment cancelled successfully",
	})
}

func sendBookingEmails(appointment *models.Appointment, user, vet *models.User) {
	details := fmt.Sprintf(`
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
	`, appointment.Date.Format("2006-01-02"), appointment.TimeSlot, appointment.Reason, appointment.Status)

	userBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment with Dr. %s has been requested.</p>
		%s
		<p>You will be notified once the vet confirms.</p>
		<p>Best regards,</p>
		<p>The VetCare Team</p>
	`, user.Username, vet.Username, details)
	if err := utils.SendEmail(user.Email, "Appointment Requested", userBody); err != nil {
		log.Printf("Failed to send booking email to %s: %v", user.Email, err)
	}

	vetBody := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>%s has requested an appointment.</p>
		%s
		<p>Best regards,</p>
		<p>The VetCare Team</p>
	`, vet.Username, user.Username, details)
	if err := utils.SendEmail(vet.Email, "New Appointment Request", vetBody); err != nil {
		log.Printf("Failed to send booking email to %s: %v", vet.Email, err)
	}
}

func sendStatusEmail(appointment *models.Appointment) {
	var user models.User
	if db.DB.First(&user, appointment.UserID).RowsAffected == 0 {
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment on %s (%s) is now <strong>%s</strong>.</p>
		<p>Best regards,</p>
		<p>The VetCare Team</p>
	`, user.Username, appointment.Date.Format("2006-01-02"), appointment.TimeSlot, appointment.Status)
	if err := utils.SendEmail(user.Email, "Appointment Update", body); err != nil {
		log.Printf("Failed to send status email to %s: %v", user.Email, err)
	}
}
