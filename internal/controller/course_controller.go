package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CourseController 课程结构读取接口（课程树装载层的 HTTP 面）
type CourseController struct {
	CourseSvc  *service.CourseService
	ContentSvc *service.ContentService
}

func NewCourseController(courseSvc *service.CourseService, contentSvc *service.ContentService) *CourseController {
	return &CourseController{
		CourseSvc:  courseSvc,
		ContentSvc: contentSvc,
	}
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := c.CourseSvc.ListCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程基本信息，登录用户附带本人评分 my_rating
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))

	studentID := uint(0)
	if claims := util.GetUserFromContext(ctx); claims != nil {
		studentID = claims.UserID
	}

	detail, err := c.CourseSvc.GetCourseDetail(courseID, studentID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// GetCourseModules godoc
// @Summary 课程模块列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseModule}
// @Router /api/courses/{courseId}/modules [get]
func (c *CourseController) GetCourseModules(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))

	tree, err := c.CourseSvc.LoadTree(ctx.Request.Context(), courseID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tree.Modules)
}

// GetModuleContents godoc
// @Summary 模块内容列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Content}
// @Router /api/courses/{courseId}/modules/{moduleId}/contents [get]
func (c *CourseController) GetModuleContents(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))

	tree, err := c.CourseSvc.LoadTree(ctx.Request.Context(), courseID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	contents, ok := tree.Contents[moduleID]
	if !ok {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, contents)
}

// GetCourseAssignments godoc
// @Summary 课程作业列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param module query int false "按模块过滤"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{courseId}/assignments [get]
func (c *CourseController) GetCourseAssignments(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	moduleID := util.MustParseUint(ctx.DefaultQuery("module", "0"))

	assignments, err := c.CourseSvc.AssignmentRepo.FindByCourse(courseID, moduleID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
}

// CreateCourse godoc
// @Summary 新建课程
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		TeacherID:   claims.UserID,
	}
	if err := c.ContentSvc.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程信息
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body CreateCourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if !c.ContentSvc.CanEditCourse(claims, courseID) {
		util.Forbidden(ctx)
		return
	}

	course, err := c.CourseSvc.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price
	if err := c.ContentSvc.UpdateCourse(ctx.Request.Context(), course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type CreateModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"required,min=1"`
}

// CreateModule godoc
// @Summary 新建课程模块
// @Tags 课程编辑
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body CreateModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/courses/{courseId}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	if !c.ContentSvc.CanEditCourse(claims, courseID) {
		util.Forbidden(ctx)
		return
	}

	var req CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module := &model.CourseModule{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := c.ContentSvc.CreateModule(ctx.Request.Context(), module); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, module)
}
