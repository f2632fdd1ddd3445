package member

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubreport/dto"
	"clubreport/middleware"
	"clubreport/model"
	"clubreport/services"
)

func MemberController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client) {
	routes := router.Group("/member", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware())
	{
		routes.GET("/list", func(c *gin.Context) {
			ListMembers(c, db, firestoreClient)
		})
		routes.PUT("/:uid", func(c *gin.Context) {
			UpdateMember(c, db, firestoreClient)
		})
		routes.DELETE("/:uid", func(c *gin.Context) {
			RemoveMember(c, db, firestoreClient)
		})
	}
}

// ListMembers returns the admin's member directory. An empty team answers 200
// with an empty list.
func ListMembers(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	members, err := services.ListMembers(c, firestoreClient, ident.UID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch members"})
		return
	}
	if members == nil {
		members = []model.User{}
	}

	c.JSON(200, gin.H{"members": members})
}

// requireOwnMember checks that the target member reports to the calling
// admin.
func requireOwnMember(c *gin.Context, firestoreClient *firestore.Client, adminUID, memberUID string) bool {
	target, err := services.GetUser(c, firestoreClient, memberUID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "Member not found"})
			return false
		}
		c.JSON(500, gin.H{"error": "Failed to fetch member"})
		return false
	}
	if target.Leader != adminUID {
		c.JSON(403, gin.H{"error": "Member does not belong to your team"})
		return false
	}
	return true
}

func UpdateMember(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	memberUID := c.Param("uid")
	if !requireOwnMember(c, firestoreClient, ident.UID, memberUID) {
		return
	}

	var request dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateMemberProfile(c, firestoreClient, memberUID, request.FirstName, request.LastName, request.Grade); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(200, gin.H{"message": "Member updated"})
}

// RemoveMember detaches a member from the admin's team. Their user document
// and reports are kept.
func RemoveMember(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	memberUID := c.Param("uid")
	if !requireOwnMember(c, firestoreClient, ident.UID, memberUID) {
		return
	}

	if err := services.RemoveMember(c, firestoreClient, memberUID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(200, gin.H{"message": "Member removed"})
}
