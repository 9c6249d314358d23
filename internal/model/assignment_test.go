package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradePtr(g float64) *float64 { return &g }

func TestSubmissionPassed(t *testing.T) {
	a := &Assignment{TotalPoints: 100, PassingGradePercent: 60}

	cases := []struct {
		name string
		sub  AssignmentSubmission
		want bool
	}{
		{"挂起未批改", AssignmentSubmission{Status: SubmissionSubmitted, Grade: gradePtr(90)}, false},
		{"批改无成绩", AssignmentSubmission{Status: SubmissionGraded}, false},
		{"压线及格", AssignmentSubmission{Status: SubmissionGraded, Grade: gradePtr(60)}, true},
		{"差一分不及格", AssignmentSubmission{Status: SubmissionGraded, Grade: gradePtr(59)}, false},
		{"满分", AssignmentSubmission{Status: SubmissionGraded, Grade: gradePtr(100)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sub.Passed(a))
		})
	}
}

func TestSubmissionPassedScalesToTotalPoints(t *testing.T) {
	// 50 分制、及格线 60%：30 分及格
	a := &Assignment{TotalPoints: 50, PassingGradePercent: 60}

	sub := AssignmentSubmission{Status: SubmissionGraded, Grade: gradePtr(30)}
	assert.True(t, sub.Passed(a))

	sub.Grade = gradePtr(29)
	assert.False(t, sub.Passed(a))

	// 总分非法时一律不通过
	bad := &Assignment{TotalPoints: 0, PassingGradePercent: 60}
	assert.False(t, sub.Passed(bad))
}
