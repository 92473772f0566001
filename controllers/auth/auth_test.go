package authController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPermissions_Student(t *testing.T) {
	perms := getDefaultPermissions("STUDENT")

	assert.Contains(t, perms, "view-course")
	assert.Contains(t, perms, "track-progress")
	assert.NotContains(t, perms, "manage-courses")
	assert.NotContains(t, perms, "grade-test")
}

func TestDefaultPermissions_Instructor(t *testing.T) {
	perms := getDefaultPermissions("INSTRUCTOR")

	// Instructors grade and manage content but never touch enrollment
	// verification or student administration.
	assert.Contains(t, perms, "manage-courses")
	assert.Contains(t, perms, "grade-test")
	assert.Contains(t, perms, "view-reports")
	assert.NotContains(t, perms, "verify-requests")
	assert.NotContains(t, perms, "manage-students")
	assert.NotContains(t, perms, "unlock-topic")
	assert.NotContains(t, perms, "issue-certificate")
}

func TestDefaultPermissions_Admin(t *testing.T) {
	perms := getDefaultPermissions("ADMIN")

	for _, p := range []string{
		"manage-courses", "manage-students", "verify-requests",
		"grade-test", "unlock-topic", "issue-certificate", "view-reports",
	} {
		assert.Contains(t, perms, p)
	}
}

func TestDefaultPermissions_UnknownRoleGetsStudentSet(t *testing.T) {
	assert.Equal(t, getDefaultPermissions("STUDENT"), getDefaultPermissions("SOMETHING_ELSE"))
}
