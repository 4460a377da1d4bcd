package sanitycheck

import (
	"testing"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func TestCheck_CleanScheduleHasNoIssues(t *testing.T) {
	shifts := []model.Assignment{
		{EmployeeID: 1, Day: model.Mon, Start: 9 * 60, End: 17 * 60},
		{EmployeeID: 2, Day: model.Mon, Start: 9 * 60, End: 17 * 60},
	}
	if issues := Check(shifts); len(issues) != 0 {
		t.Errorf("got %d issues, want 0: %+v", len(issues), issues)
	}
}

func TestCheck_DetectsOverlap(t *testing.T) {
	shifts := []model.Assignment{
		{EmployeeID: 1, Day: model.Mon, Start: 9 * 60, End: 17 * 60},
		{EmployeeID: 1, Day: model.Mon, Start: 16 * 60, End: 20 * 60},
	}
	issues := Check(shifts)
	if len(issues) != 1 || issues[0].Type != IssueOverlap {
		t.Errorf("expected 1 overlap issue, got %+v", issues)
	}
}

func TestCheck_DetectsShiftTooLong(t *testing.T) {
	shifts := []model.Assignment{
		{EmployeeID: 1, Day: model.Mon, Start: 8 * 60, End: 18 * 60},
	}
	issues := Check(shifts)
	if len(issues) != 1 || issues[0].Type != IssueShiftTooLong {
		t.Errorf("expected 1 too-long issue, got %+v", issues)
	}
}

func TestCheck_DetectsInvalidSpan(t *testing.T) {
	shifts := []model.Assignment{
		{EmployeeID: 1, Day: model.Mon, Start: 17 * 60, End: 9 * 60},
	}
	issues := Check(shifts)
	if len(issues) != 1 || issues[0].Type != IssueZeroOrNegative {
		t.Errorf("expected 1 invalid-span issue, got %+v", issues)
	}
}
