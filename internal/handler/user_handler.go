package handler

import (
	"net/http"
	"strconv"

	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/models"
	"github.com/d-lino-kee/skill-swap-platform/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// ProfileInput defines the structure for a full profile update.
type ProfileInput struct {
	Name              string `json:"name"`
	Skill             string `json:"skill"`
	Location          string `json:"location"`
	TimeAvailability  string `json:"time_availability"`
	YearsOfExperience int    `json:"years_of_experience"`
	ProfilePicture    string `json:"profile_picture"`
	PortfolioLink     string `json:"portfolio_link"`
}

// ProfileResponse defines the structure for a user profile.
type ProfileResponse struct {
	ID                uint   `json:"id" example:"1"`
	Name              string `json:"name" example:"Alice"`
	Email             string `json:"email" example:"alice@example.com"`
	Skill             string `json:"skill" example:"Guitar"`
	Location          string `json:"location" example:"Toronto"`
	TimeAvailability  string `json:"time_availability" example:"Mon,Wed"`
	YearsOfExperience int    `json:"years_of_experience" example:"3"`
	ProfilePicture    string `json:"profile_picture"`
	PortfolioLink     string `json:"portfolio_link"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func newProfileResponse(user models.User) ProfileResponse {
	return ProfileResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Skill:             user.Skill,
		Location:          user.Location,
		TimeAvailability:  user.TimeAvailability,
		YearsOfExperience: user.YearsOfExperience,
		ProfilePicture:    user.ProfilePicture,
		PortfolioLink:     user.PortfolioLink,
	}
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token. Profile fields are filled in later via profile update.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "userId": user.ID})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID})
}

// endregion

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get current user's profile
// @Description  Retrieves the profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Overwrites all profile attributes of the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Profile Info"
// @Success      200  {object}  map[string]string "{"message": "Profile updated successfully!"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [put]
func UpdateMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", viewerID).Updates(map[string]interface{}{
		"name":                input.Name,
		"skill":               input.Skill,
		"location":            input.Location,
		"time_availability":   input.TimeAvailability,
		"years_of_experience": input.YearsOfExperience,
		"profile_picture":     input.ProfilePicture,
		"portfolio_link":      input.PortfolioLink,
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!"})
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the profile for a specific user by their ID.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// GetUserIDByEmail godoc
// @Summary      Look up a user ID by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email query string true "User email"
// @Success      200  {object}  map[string]uint "{"userId": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/id [get]
func GetUserIDByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: email"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": user.ID})
}

// SearchUsers godoc
// @Summary      Search for users by skill and availability
// @Description  Finds users whose skill matches the query and whose availability covers every requested hour slot.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skill        query string false "Skill substring"
// @Param        availability query string false "Comma-separated hour slots, all of which must be available"
// @Success      200  {array}   ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No users found"
// @Router       /users/search [get]
func SearchUsers(c *gin.Context) {
	skill := c.Query("skill")
	availability := c.Query("availability")

	if skill == "" && availability == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one search query (skill or availability) is required"})
		return
	}

	query := database.DB.Model(&models.User{})
	if skill != "" {
		query = query.Where("skill ILIKE ?", "%"+skill+"%")
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	// Availability is a comma-joined slot set; require every requested slot.
	wanted := models.User{TimeAvailability: availability}.AvailabilitySlots()
	var results []ProfileResponse
	for _, user := range users {
		if !hasAllSlots(user.AvailabilitySlots(), wanted) {
			continue
		}
		results = append(results, newProfileResponse(user))
	}

	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func hasAllSlots(have, wanted []string) bool {
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[s] = true
	}
	for _, s := range wanted {
		if !set[s] {
			return false
		}
	}
	return true
}

// endregion
