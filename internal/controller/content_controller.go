package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 课程内容与作业的编辑接口（教师/管理员）
type ContentController struct {
	ContentSvc *service.ContentService
}

func NewContentController(contentSvc *service.ContentService) *ContentController {
	return &ContentController{ContentSvc: contentSvc}
}

type CreateContentRequest struct {
	Title       string  `json:"title" binding:"required"`
	ContentType string  `json:"contentType" binding:"required,oneof=video reading"`
	URL         string  `json:"url"`
	Text        string  `json:"text"`
	Order       int     `json:"order"`
	Duration    float64 `json:"durationSeconds"`
}

// CreateContent godoc
// @Summary 新建模块内容
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Param body body CreateContentRequest true "内容信息"
// @Success 201 {object} util.Response{data=model.Content}
// @Router /api/courses/{courseId}/modules/{moduleId}/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))

	if !c.ContentSvc.CanEditCourse(claims, courseID) {
		util.Forbidden(ctx)
		return
	}

	var req CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content := &model.Content{
		ModuleID:        moduleID,
		Title:           req.Title,
		ContentType:     model.ContentType(req.ContentType),
		URL:             req.URL,
		Text:            req.Text,
		Order:           req.Order,
		DurationSeconds: req.Duration,
	}
	if err := c.ContentSvc.CreateContent(ctx.Request.Context(), courseID, content); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// UploadVideo godoc
// @Summary 上传课程视频
// @Description 上传视频文件，服务端探测时长后返回访问地址
// @Tags 课程编辑
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/videos [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if !c.ContentSvc.CanEditCourse(claims, courseID) {
		util.Forbidden(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing video file")
		return
	}

	url, duration, err := c.ContentSvc.UploadVideo(ctx.Request.Context(), file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"url":             url,
		"durationSeconds": duration,
	})
}

type CreateAssignmentRequest struct {
	ModuleID            *uint  `json:"moduleId"`
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
	Type                string `json:"type" binding:"required,oneof=mcq qa"`
	Order               *int   `json:"order"`
	TotalPoints         int    `json:"totalPoints"`
	PassingGradePercent int    `json:"passingGradePercent"`
	MaxAttempts         int    `json:"maxAttempts"`
}

// CreateAssignment godoc
// @Summary 新建作业
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body CreateAssignmentRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/courses/{courseId}/assignments [post]
func (c *ContentController) CreateAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if !c.ContentSvc.CanEditCourse(claims, courseID) {
		util.Forbidden(ctx)
		return
	}

	var req CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment := &model.Assignment{
		CourseID:            courseID,
		ModuleID:            req.ModuleID,
		Title:               req.Title,
		Description:         req.Description,
		Type:                model.AssignmentType(req.Type),
		Order:               req.Order,
		TotalPoints:         req.TotalPoints,
		PassingGradePercent: req.PassingGradePercent,
		MaxAttempts:         req.MaxAttempts,
	}
	if assignment.TotalPoints == 0 {
		assignment.TotalPoints = 100
	}
	if assignment.PassingGradePercent == 0 {
		assignment.PassingGradePercent = 60
	}
	if assignment.MaxAttempts == 0 {
		assignment.MaxAttempts = 3
	}

	if err := c.ContentSvc.CreateAssignment(ctx.Request.Context(), assignment); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}
