package demand

import (
	"testing"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func TestBuildDefaults(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "No Config Shop", Active: true, CanBeSolo: false,
		Open: 8 * 60, Close: 20 * 60,
		Sunday: model.SundayConfig{Closed: true},
	}
	entries := Build([]model.Shop{shop})

	var mon model.DemandEntry
	found := false
	for _, e := range entries {
		if e.Day == model.Mon {
			mon, found = e, true
		}
	}
	if !found {
		t.Fatal("no Monday demand entry produced")
	}
	if mon.MinAM != 1 || mon.TargetAM != 2 || mon.MaxStaff != 10 {
		t.Errorf("defaults = %+v, want min=1 target=2 max=10", mon)
	}
}

func TestBuildSoloDay(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Solo Eligible Shop", Active: true, CanBeSolo: true,
		Open: 8 * 60, Close: 16 * 60,
		Sunday: model.SundayConfig{Closed: true},
	}
	entries := Build([]model.Shop{shop})
	for _, e := range entries {
		if e.Day != model.Mon {
			continue
		}
		if !e.IsSolo {
			t.Fatal("expected solo day")
		}
		if e.MinAM != 1 || e.TargetAM != 1 || e.MaxStaff != 2 {
			t.Errorf("solo demand = %+v, want min=target=1 max=2", e)
		}
	}
}

func TestBuildLargeShopNeverSolo(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Hamrun", Active: true, CanBeSolo: true, // CanBeSolo ignored for Hamrun
		Open: 8 * 60, Close: 20 * 60,
		Sunday: model.SundayConfig{Closed: false},
	}
	entries := Build([]model.Shop{shop})
	for _, e := range entries {
		if e.IsSolo {
			t.Errorf("day %v: large shop must never be marked solo", e.Day)
		}
	}
}

func TestBuildSundayOverrideForLargeShop(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Hamrun", Active: true,
		Open: 8 * 60, Close: 20 * 60,
		Sunday: model.SundayConfig{Closed: false},
	}
	entries := Build([]model.Shop{shop})
	var sun model.DemandEntry
	for _, e := range entries {
		if e.Day == model.Sun {
			sun = e
		}
	}
	if sun.MinAM != 2 || sun.MinPM != 2 || sun.MaxStaff != 4 {
		t.Errorf("Hamrun Sunday override = %+v, want minAM=minPM=2 max=4", sun)
	}
	if !sun.IsMandatory {
		t.Error("Hamrun Sunday entry should be mandatory")
	}
}

func TestBuildSplitPreferredShopStaysSoloEligible(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Rabat", Active: true, CanBeSolo: true, // a LargeShops member, but not Hamrun
		Open: 8 * 60, Close: 20 * 60,
		Sunday: model.SundayConfig{Closed: false},
	}
	entries := Build([]model.Shop{shop})

	var mon, sun model.DemandEntry
	for _, e := range entries {
		switch e.Day {
		case model.Mon:
			mon = e
		case model.Sun:
			sun = e
		}
	}
	if !mon.IsSolo {
		t.Error("Rabat is solo-eligible and not Hamrun, Monday demand should allow solo")
	}
	if sun.MinAM == 2 && sun.MinPM == 2 && sun.MaxStaff == 4 {
		t.Error("Rabat must not receive Hamrun's mandatory Sunday 2/2/4 override")
	}
	if sun.IsMandatory {
		t.Error("Rabat Sunday demand must not be forced mandatory by the Hamrun override")
	}
}

func TestBuildSkipsClosedSunday(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Closed Sunday", Active: true,
		Open: 8 * 60, Close: 20 * 60,
		Sunday: model.SundayConfig{Closed: true},
	}
	entries := Build([]model.Shop{shop})
	for _, e := range entries {
		if e.Day == model.Sun {
			t.Error("closed-Sunday shop must not produce a Sunday demand entry")
		}
	}
}
