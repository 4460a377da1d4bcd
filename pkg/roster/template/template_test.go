package template

import (
	"testing"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func mustMinutes(t *testing.T, s string) model.MinutesOfDay {
	t.Helper()
	m, err := model.ParseHHMM(s)
	if err != nil {
		t.Fatalf("ParseHHMM(%q): %v", s, err)
	}
	return m
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		shop      model.Shop
		wantTypes map[model.Weekday][]model.ShiftType
	}{
		{
			name: "flexible 模式产生 AM/PM/FULL",
			shop: model.Shop{
				ID: 1, Name: "Test Shop", Active: true,
				Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "20:00"),
				Sunday:   model.SundayConfig{Closed: true},
				Staffing: model.StaffingConfig{Mode: model.CoverageFlexible},
			},
			wantTypes: map[model.Weekday][]model.ShiftType{
				model.Mon: {model.AM, model.PM, model.FULL},
			},
		},
		{
			name: "split 模式只产生 AM/PM",
			shop: model.Shop{
				ID: 2, Name: "Split Shop", Active: true,
				Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "20:00"),
				Sunday:   model.SundayConfig{Closed: true},
				Staffing: model.StaffingConfig{Mode: model.CoverageSplit},
			},
			wantTypes: map[model.Weekday][]model.ShiftType{
				model.Mon: {model.AM, model.PM},
			},
		},
		{
			name: "full-day-only 模式只产生 FULL",
			shop: model.Shop{
				ID: 3, Name: "Full Shop", Active: true,
				Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "20:00"),
				Sunday:   model.SundayConfig{Closed: true},
				Staffing: model.StaffingConfig{Mode: model.CoverageFullDayOnly},
			},
			wantTypes: map[model.Weekday][]model.ShiftType{
				model.Mon: {model.FULL},
			},
		},
		{
			name: "短营业日只产生 FULL",
			shop: model.Shop{
				ID: 4, Name: "Short Shop", Active: true,
				Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "13:00"), // 5h
				Sunday:   model.SundayConfig{Closed: true},
				Staffing: model.StaffingConfig{Mode: model.CoverageFlexible},
			},
			wantTypes: map[model.Weekday][]model.ShiftType{
				model.Mon: {model.FULL},
			},
		},
		{
			name: "周日关闭不产生模板",
			shop: model.Shop{
				ID: 5, Name: "Closed Sunday Shop", Active: true,
				Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "20:00"),
				Sunday:   model.SundayConfig{Closed: true},
				Staffing: model.StaffingConfig{Mode: model.CoverageFlexible},
			},
			wantTypes: map[model.Weekday][]model.ShiftType{
				model.Sun: nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templates := Build([]model.Shop{tt.shop})
			for day, want := range tt.wantTypes {
				var got []model.ShiftType
				for _, tpl := range templates {
					if tpl.Day == day {
						got = append(got, tpl.Type)
					}
				}
				if len(got) != len(want) {
					t.Fatalf("day %v: got %v types, want %v", day, got, want)
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("day %v type[%d] = %v, want %v", day, i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestBuildMidpointSplit(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Mid Shop", Active: true,
		Open: mustMinutes(t, "08:00"), Close: mustMinutes(t, "20:00"),
		Sunday:   model.SundayConfig{Closed: true},
		Staffing: model.StaffingConfig{Mode: model.CoverageFlexible},
	}
	templates := Build([]model.Shop{shop})

	var am, pm model.ShiftTemplate
	for _, tpl := range templates {
		if tpl.Day != model.Mon {
			continue
		}
		switch tpl.Type {
		case model.AM:
			am = tpl
		case model.PM:
			pm = tpl
		}
	}
	wantMid := mustMinutes(t, "14:00")
	if am.End != wantMid {
		t.Errorf("AM.End = %v, want %v", am.End, wantMid)
	}
	if pm.Start != wantMid {
		t.Errorf("PM.Start = %v, want %v", pm.Start, wantMid)
	}
}

func TestBuildSkipsInactiveShop(t *testing.T) {
	shop := model.Shop{ID: 1, Name: "Inactive", Active: false}
	if got := Build([]model.Shop{shop}); got != nil {
		t.Errorf("Build() for inactive shop = %v, want nil", got)
	}
}
