package admin

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubreport/dto"
	"clubreport/middleware"
	"clubreport/model"
)

func AdminController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client) {
	routes := router.Group("/admin", middleware.AccessTokenMiddleware())
	{
		routes.POST("/createadmin", middleware.AdminMiddleware(), func(c *gin.Context) {
			CreateAdmin(c, db, firestoreClient)
		})
	}
}

// CreateAdmin registers a new admin account. Only reachable by an existing
// admin; member signup goes through /auth/signup.
func CreateAdmin(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing model.Account
	result := db.Where("email = ?", req.Email).First(&existing)
	if result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	} else if result.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userRef := firestoreClient.Collection("users").NewDoc()
	user := model.User{
		UID:       userRef.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleAdmin,
	}
	if _, err := userRef.Set(c, user.Map()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user document"})
		return
	}

	account := model.Account{
		UID:            userRef.ID,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		Role:           model.RoleAdmin,
	}
	if err := db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin user created successfully",
		"uid":     userRef.ID,
		"email":   req.Email,
		"role":    model.RoleAdmin,
	})
}
