package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrGateNotSatisfied   = errors.New("completion gate not satisfied")
	ErrMutationInFlight   = errors.New("completion request already in flight")
	ErrAlreadyRated       = errors.New("course already rated")
	ErrCourseNotCompleted = errors.New("course not completed yet")
)
