package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/models"
	"github.com/vderm-x/vetcare-app/redis"
	"github.com/vderm-x/vetcare-app/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL         = 10 * time.Minute
	otpResendEvery = time.Minute
)

func otpDisabled() bool {
	return os.Getenv("OTP_DISABLED") == "true"
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// SignupInput names the only fields a signup request may set. Account
// state (id, verified, otp) is never taken from the client.
type SignupInput struct {
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	Role           models.UserRole `json:"role"`
	Specialization string          `json:"specialization"`
	Contact        string          `json:"contact"`
	Area           string          `json:"area"`
	Availability   string          `json:"availability"`
	LicenseNumber  string          `json:"licenseNumber"`
	ProfileImage   string          `json:"profileImage"`
}

func (in *SignupInput) toUser() models.User {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       in.Password,
		Role:           role,
		Specialization: in.Specialization,
		Contact:        in.Contact,
		Area:           in.Area,
		Availability:   in.Availability,
		LicenseNumber:  in.LicenseNumber,
		ProfileImage:   in.ProfileImage,
	}
}

// Signup handles account creation for both pet owners and vets
func Signup(c *fiber.Ctx) error {
	input := new(SignupInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "username, email, and password are required",
		})
	}

	if !utils.IsValidEmail(input.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid email format",
		})
	}

	if !utils.IsStrongPassword(input.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Password must be at least 8 characters and include upper case, lower case, a digit, and a symbol",
		})
	}

	user := input.toUser()
	if user.Role != models.RoleUser && user.Role != models.RoleVet {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Role must be either 'user' or 'vet'",
		})
	}

	var existing models.User
	if db.DB.Where("email = ?", user.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}
	if db.DB.Where("username = ?", user.Username).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this username already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}
	user.Password = string(hashedPassword)

	if otpDisabled() {
		user.Verified = true
	} else {
		user.OTP = utils.GenerateOTP()
		user.OTPExpiresAt = time.Now().Add(otpTTL)
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	if !otpDisabled() {
		if err := sendOTPEmail(user.Email, user.Username, user.OTP); err != nil {
			// The user can still request a new code via resend-otp.
			log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
		}
	}

	if user.Role == models.RoleVet {
		invalidateVetsCache()
	}

	user.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(user)
}

// VerifyOTP confirms the code mailed at signup and marks the account verified
func VerifyOTP(c *fiber.Ctx) error {
	type VerifyInput struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}

	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "email and otp are required",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if user.Verified {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email is already verified",
		})
	}
	if user.OTP == "" || user.OTP != input.OTP {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid OTP",
		})
	}
	if time.Now().After(user.OTPExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "OTP has expired",
		})
	}

	updates := map[string]interface{}{
		"verified":       true,
		"otp":            "",
		"otp_expires_at": time.Time{},
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to verify user",
			Error:   err.Error(),
		})
	}

	user.Verified = true
	user.Sanitize()
	return c.JSON(user)
}

// ResendOTP reissues a verification code, rate limited per email
func ResendOTP(c *fiber.Ctx) error {
	type ResendInput struct {
		Email string `json:"email"`
	}

	input := new(ResendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email is required",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}
	if user.Verified {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email is already verified",
		})
	}

	cooldownKey := fmt.Sprintf("otp:cooldown:%s", input.Email)
	ok, err := redis.Client.SetNX(redis.Ctx, cooldownKey, 1, otpResendEvery).Result()
	if err != nil {
		log.Printf("Redis cooldown check failed: %v", err)
	} else if !ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(utils.ErrorResponse{
			Message: "Please wait before requesting another OTP",
		})
	}

	otp := utils.GenerateOTP()
	updates := map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": time.Now().Add(otpTTL),
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update OTP",
			Error:   err.Error(),
		})
	}

	if err := sendOTPEmail(user.Email, user.Username, otp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to send OTP email",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Verification OTP sent. Check your email.",
	})
}

// Login handles credential checks and token issuance
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	if !user.Verified && !otpDisabled() {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Email not verified",
		})
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate refresh token",
		})
	}

	user.Sanitize()
	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user":         user,
	})
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	// Set by the JWT middleware
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	userID := claims["id"].(float64)

	var profile models.User
	if db.DB.First(&profile, uint(userID)).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	profile.Sanitize()
	return c.JSON(profile)
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

func sendOTPEmail(to, username, otp string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>The code expires in 10 minutes.</p>
		<p>Best regards,</p>
		<p>The VetCare Team</p>
	`, username, otp)
	return utils.SendEmail(to, "Verify your email", body)
}
