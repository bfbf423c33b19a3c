package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestAssessmentID = uuid.MustParse("00000000-0000-0000-0000-000000000100")
	TestAlertID      = uuid.MustParse("00000000-0000-0000-0000-000000000200")
)

// Fixed student and counselor IDs for deterministic testing.
const (
	TestStudentID    int64 = 7
	TestCounselorID  int64 = 21
	TestCounselorID2 int64 = 22
)
