package contribution

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubreport/middleware"
	"clubreport/services"
)

func ContributionController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client) {
	routes := router.Group("/contribution", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware())
	{
		routes.GET("/graph", func(c *gin.Context) {
			ContributionGraph(c, db, firestoreClient)
		})
	}
}

// ContributionGraph returns one {memberName, score} entry per member of the
// admin's team, members with no reports included.
func ContributionGraph(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	policy := services.PolicyByName(c.Query("policy"))
	contributions, err := services.Contributions(c, firestoreClient, ident.UID, policy)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to compute contributions"})
		return
	}
	if contributions == nil {
		contributions = []services.Contribution{}
	}

	c.JSON(200, gin.H{"contributions": contributions})
}
