package report

import (
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clubreport/dto"
	"clubreport/middleware"
	"clubreport/model"
	"clubreport/services"
)

func ReportController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client) {
	sessions := services.NewSessionManager(services.NewReviewStore(firestoreClient))

	routes := router.Group("/report", middleware.AccessTokenMiddleware())
	{
		routes.POST("/send", middleware.MemberMiddleware(), func(c *gin.Context) {
			SendReport(c, db, firestoreClient)
		})
		routes.GET("/history", middleware.MemberMiddleware(), func(c *gin.Context) {
			ReportHistory(c, db, firestoreClient)
		})
		routes.GET("/window", middleware.AdminMiddleware(), func(c *gin.Context) {
			DayWindow(c, db, firestoreClient, sessions)
		})
		routes.PUT("/comment/:rid", middleware.AdminMiddleware(), func(c *gin.Context) {
			SaveComment(c, db, firestoreClient, sessions)
		})
	}
}

// SendReport creates a report for the signed-in member. Validation runs
// before any write; a rejected payload produces a 400 naming the rule and no
// document.
func SendReport(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveMember(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	var request dto.SendReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		c.JSON(400, gin.H{"error": "startTime must be an RFC3339 timestamp"})
		return
	}
	endTime, err := time.Parse(time.RFC3339, request.EndTime)
	if err != nil {
		c.JSON(400, gin.H{"error": "endTime must be an RFC3339 timestamp"})
		return
	}

	report := model.Report{
		UserID:    ident.UID,
		Leader:    ident.Leader,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  request.Location,
		Shots:     *request.Shots,
		Notes:     request.Notes,
	}

	if err := services.ValidateReport(report); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	id, err := services.CreateReport(c, firestoreClient, report)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(200, gin.H{"message": "Report submitted", "id": id})
}

// ReportHistory lists the signed-in member's own reports, newest first, in
// fixed-size pages.
func ReportHistory(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	uid := c.MustGet("uid").(string)

	if _, err := services.ResolveMember(c, firestoreClient, uid); err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			c.JSON(400, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = n
	}

	reports, err := services.ListReportsByUser(c, firestoreClient, uid)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch reports"})
		return
	}

	pageReports, totalPages := services.Paginate(reports, page, services.DefaultPageSize)
	c.JSON(200, gin.H{
		"reports":    pageReports,
		"page":       page,
		"totalPages": totalPages,
	})
}

// DayWindow lists one day's reports across the admin's members through the
// admin's review session. A chunk failure answers 500 but still carries the
// reports of the chunks that succeeded.
func DayWindow(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client, sessions *services.SessionManager) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	day := time.Now()
	if d := c.Query("date"); d != "" {
		day, err = time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(400, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
	}

	session := sessions.Session(ident.UID)
	entries, err := session.SelectDay(c, day)
	if err != nil {
		c.JSON(500, gin.H{
			"error":   "Failed to fetch reports: " + err.Error(),
			"reports": entries,
		})
		return
	}

	c.JSON(200, gin.H{
		"date":    day.Format("2006-01-02"),
		"reports": entries,
	})
}

// SaveComment writes an admin comment on one report. Authority is derived
// from the member's leader link, not stored on the report.
func SaveComment(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client, sessions *services.SessionManager) {
	uid := c.MustGet("uid").(string)

	ident, err := services.ResolveAdmin(c, firestoreClient, uid)
	if err != nil {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}

	reportID := c.Param("rid")
	if reportID == "" {
		c.JSON(400, gin.H{"error": "Report ID is required"})
		return
	}

	var request dto.SaveCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	report, err := services.GetReport(c, firestoreClient, reportID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to fetch report"})
		return
	}

	owner, err := services.GetUser(c, firestoreClient, report.UserID)
	if err != nil || owner.Leader != ident.UID {
		c.JSON(403, gin.H{"error": "Report does not belong to your members"})
		return
	}

	session := sessions.Session(ident.UID)
	if err := session.SaveComment(c, reportID, request.Comments); err != nil {
		c.JSON(500, gin.H{"error": "Failed to save comment"})
		return
	}

	c.JSON(200, gin.H{"message": "Comment saved"})
}
