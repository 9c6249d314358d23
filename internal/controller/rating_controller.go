package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingSvc *service.RatingService
	ViewerSvc *service.ViewerService
}

func NewRatingController(ratingSvc *service.RatingService, viewerSvc *service.ViewerService) *RatingController {
	return &RatingController{RatingSvc: ratingSvc, ViewerSvc: viewerSvc}
}

// RateCourse godoc
// @Summary 提交课程评分
// @Description 结课后一次性提交评分、难度与文字评价
// @Tags 评分
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body service.RateCourseRequest true "评分内容"
// @Success 201 {object} util.Response{data=model.CourseRating}
// @Failure 409 {object} util.Response "已评分"
// @Router /api/courses/{courseId}/ratings [post]
func (c *RatingController) RateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	var req service.RateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rating, err := c.RatingSvc.RateCourse(ctx.Request.Context(), claims.UserID, courseID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrCourseNotCompleted):
			util.BadRequest(ctx, "course not completed yet")
		case errors.Is(err, util.ErrAlreadyRated):
			util.Conflict(ctx, "course already rated")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 评分成功后折叠当前查看会话的反馈入口
	c.ViewerSvc.NoteFeedbackSubmitted(claims.UserID, courseID)
	util.Created(ctx, rating)
}

// MyRating godoc
// @Summary 查询我对某课程的评分
// @Tags 评分
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseRating}
// @Router /api/courses/{courseId}/ratings/mine [get]
func (c *RatingController) MyRating(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	rating, err := c.RatingSvc.MyRating(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if rating == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, rating)
}
