package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateSvc *service.CertificateService
}

func NewCertificateController(certificateSvc *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateSvc: certificateSvc}
}

// MyCertificates godoc
// @Summary 我的证书列表
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/my/certificates [get]
func (c *CertificateController) MyCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	certs, err := c.CertificateSvc.MyCertificates(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Verify godoc
// @Summary 证书校验
// @Description 公开接口，按校验码查询证书真伪
// @Tags 证书
// @Produce json
// @Param code path string true "校验码"
// @Success 200 {object} util.Response{data=service.VerifyResult}
// @Router /api/certificates/{code}/verify [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		util.BadRequest(ctx, "missing verification code")
		return
	}

	result, err := c.CertificateSvc.Verify(code)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
