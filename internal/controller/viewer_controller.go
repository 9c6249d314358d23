package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ViewerController 课程查看器接口：状态装载、播放进度上报、
// 内容完成与模块进度查询
type ViewerController struct {
	ViewerSvc   *service.ViewerService
	ProgressSvc *service.ProgressService
}

func NewViewerController(viewerSvc *service.ViewerService, progressSvc *service.ProgressService) *ViewerController {
	return &ViewerController{ViewerSvc: viewerSvc, ProgressSvc: progressSvc}
}

// GetViewer godoc
// @Summary 获取课程查看器状态
// @Description 返回模块合并序列、解锁状态、当前选中条目与整体进度
// @Tags 课程学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/viewer [get]
func (c *ViewerController) GetViewer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	state, err := c.ViewerSvc.GetViewer(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

type WatchReportRequest struct {
	CurrentTime float64 `json:"currentTime" binding:"min=0"`
	Duration    float64 `json:"duration" binding:"min=0"`
	// DeltaSeconds 距上次上报新增的观看秒数，用于累计学习时长
	DeltaSeconds int `json:"deltaSeconds" binding:"min=0"`
}

// ReportWatch godoc
// @Summary 上报视频播放进度
// @Description 记录单调递增的最远观看位置，用于完成门槛判断
// @Tags 课程学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param contentId path int true "内容ID"
// @Param body body WatchReportRequest true "播放位置"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/contents/{contentId}/watch [post]
func (c *ViewerController) ReportWatch(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))
	contentID := util.MustParseUint(ctx.Param("contentId"))

	var req WatchReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	watch := c.ViewerSvc.ReportWatch(ctx.Request.Context(), claims.UserID, courseID, contentID, req.CurrentTime, req.Duration, req.DeltaSeconds)
	util.Success(ctx, watch)
}

// MarkContentComplete godoc
// @Summary 标记内容完成
// @Description 校验完成门槛后落库，并返回刷新后的进度、新的选中条目
// @Description 以及可能触发的结课结果
// @Tags 课程学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Param contentId path int true "内容ID"
// @Success 200 {object} util.Response{data=service.CompletionOutcome}
// @Failure 400 {object} util.Response "完成门槛未满足"
// @Failure 409 {object} util.Response "同一条目的完成请求仍在处理中"
// @Router /api/courses/{courseId}/modules/{moduleId}/contents/{contentId}/complete [post]
func (c *ViewerController) MarkContentComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	contentID := util.MustParseUint(ctx.Param("contentId"))

	outcome, err := c.ViewerSvc.MarkContentComplete(ctx.Request.Context(), claims.UserID, courseID, moduleID, contentID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrContentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGateNotSatisfied):
			util.BadRequest(ctx, "completion gate not satisfied")
		case errors.Is(err, util.ErrMutationInFlight):
			util.Conflict(ctx, "completion already in progress")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, outcome)
}

// GetModuleProgress godoc
// @Summary 查询单个模块的进度
// @Tags 课程学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response{data=service.ModuleProgressPayload}
// @Router /api/courses/{courseId}/modules/{moduleId}/progress [get]
func (c *ViewerController) GetModuleProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))

	payload, err := c.ProgressSvc.ModuleProgress(ctx.Request.Context(), claims.UserID, courseID, moduleID)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// DropSession godoc
// @Summary 退出课程查看器
// @Description 丢弃会话内的播放状态与弹窗标志
// @Tags 课程学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/viewer [delete]
func (c *ViewerController) DropSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	c.ViewerSvc.DropSession(claims.UserID, courseID)
	util.Success(ctx, nil)
}

// RefreshMyCompletion godoc
// @Summary 刷新我的结课状态
// @Description 重算所有进行中报名的进度，把已到100%的报名补标记为完成
// @Tags 课程学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/my/completion/refresh [post]
func (c *ViewerController) RefreshMyCompletion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	updated, err := c.ProgressSvc.RefreshMyCompletion(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"updated_to_completed": updated})
}
