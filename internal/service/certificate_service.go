package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CertificateService struct {
	CertificateRepo *repository.CertificateRepository
}

func NewCertificateService(certificateRepo *repository.CertificateRepository) *CertificateService {
	return &CertificateService{CertificateRepo: certificateRepo}
}

func (s *CertificateService) MyCertificates(studentID uint) ([]model.Certificate, error) {
	return s.CertificateRepo.FindByStudent(studentID)
}

// VerifyResult 证书校验结果，对外公开接口的返回形态
type VerifyResult struct {
	Valid            bool   `json:"valid"`
	CourseTitle      string `json:"course,omitempty"`
	IssueDate        string `json:"issue_date,omitempty"`
	VerificationCode string `json:"verification_code"`
}

func (s *CertificateService) Verify(code string) (*VerifyResult, error) {
	cert, err := s.CertificateRepo.FindByVerificationCode(code)
	if err == gorm.ErrRecordNotFound {
		return &VerifyResult{Valid: false, VerificationCode: code}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Valid:            true,
		IssueDate:        cert.IssueDate.Format(util.DateFormat),
		VerificationCode: cert.VerificationCode,
	}
	if cert.Course != nil {
		result.CourseTitle = cert.Course.Title
	}
	return result, nil
}
