package auth

import (
	"crypto/sha256"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubreport/dto"
	"clubreport/middleware"
	"clubreport/model"
)

func AuthController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client) {
	routes := router.Group("/auth")
	{
		routes.POST("/signin", func(c *gin.Context) {
			Signin(c, db, firestoreClient)
		})
		routes.POST("/signup", func(c *gin.Context) {
			Signup(c, db, firestoreClient)
		})
		routes.POST("/signout", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
			Signout(c, db, firestoreClient)
		})
		routes.POST("/newaccesstoken", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
			NewAccessToken(c, db, firestoreClient)
		})
	}
}

func CreateAccessToken(uid, role string) (string, error) {
	hmacSampleSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	claims := &model.AccessClaims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "clubreport",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(hmacSampleSecret)
}

func CreateRefreshToken(uid string) (string, error) {
	refreshTokenSecret := []byte(os.Getenv("JWT_REFRESH_SECRET_KEY"))
	claims := &model.RefreshClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "clubreport",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(refreshTokenSecret)
}

// HashRefreshToken shortens the token with SHA-256 before bcrypt, which caps
// its input at 72 bytes.
func HashRefreshToken(token string) (string, error) {
	hash := sha256.Sum256([]byte(token))
	hashedToken, err := bcrypt.GenerateFromPassword(hash[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedToken), nil
}

func CompareRefreshToken(hashed, token string) error {
	hash := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hashed), hash[:])
}

func Signin(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var account model.Account
	result := db.Where("email = ?", request.Email).First(&account)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), []byte(request.Password)); err != nil {
		c.JSON(401, gin.H{"error": "Invalid password"})
		return
	}

	accessToken, err := CreateAccessToken(account.UID, account.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create token"})
		return
	}
	refreshToken, err := CreateRefreshToken(account.UID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create token"})
		return
	}

	hashedRefreshToken, err := HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	record := model.TokenRecord{
		UID:          account.UID,
		RefreshToken: hashedRefreshToken,
		CreatedAt:    time.Now().Unix(),
		Revoked:      false,
		ExpiresIn:    int64((7 * 24 * time.Hour).Seconds()),
	}
	if _, err := firestoreClient.Collection("refreshTokens").Doc(account.UID).Set(c, record); err != nil {
		c.JSON(500, gin.H{"error": "Failed to store refresh token"})
		return
	}

	c.JSON(200, gin.H{
		"message": "Login Successfully",
		"token": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// Signup registers a member account and its user document. Admin accounts are
// created by an existing admin through the admin controller.
func Signup(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var account model.Account
	result := db.Where("email = ?", request.Email).First(&account)
	if result.Error == nil {
		c.JSON(400, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}

	userRef := firestoreClient.Collection("users").NewDoc()
	user := model.User{
		UID:       userRef.ID,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      model.RoleMember,
		Leader:    request.Leader,
		Grade:     request.Grade,
	}
	if _, err := userRef.Set(c, user.Map()); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create user document"})
		return
	}

	accountData := model.Account{
		UID:            userRef.ID,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		Role:           model.RoleMember,
	}
	result = db.Create(&accountData)
	if result.Error != nil {
		c.JSON(500, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(200, gin.H{
		"message": "User created successfully",
		"user": gin.H{
			"uid":   userRef.ID,
			"email": request.Email,
		},
	})
}

func Signout(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)
	if _, err := firestoreClient.Collection("refreshTokens").Doc(uid).Delete(c); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete refresh token"})
		return
	}
	c.JSON(200, gin.H{"message": "Signout successfully"})
}

func NewAccessToken(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)
	refreshToken := c.MustGet("refreshToken").(string)

	doc, err := firestoreClient.Collection("refreshTokens").Doc(uid).Get(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Refresh token not found"})
		return
	}

	var record model.TokenRecord
	if err := doc.DataTo(&record); err != nil {
		c.JSON(500, gin.H{"error": "Failed to read refresh token record"})
		return
	}
	if record.Revoked {
		c.JSON(401, gin.H{"error": "Refresh token revoked"})
		return
	}
	if err := CompareRefreshToken(record.RefreshToken, refreshToken); err != nil {
		c.JSON(401, gin.H{"error": "Refresh token mismatch"})
		return
	}

	var account model.Account
	if result := db.Where("uid = ?", uid).First(&account); result.Error != nil {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	}

	accessToken, err := CreateAccessToken(account.UID, account.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(200, gin.H{"accessToken": accessToken})
}
