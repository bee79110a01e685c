package core

import "testing"

func TestInputFrameLatestDirectionWins(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionConfirm)
	f.Set(ActionLeft)

	if f.Has(ActionUp) {
		t.Error("Up should be replaced by the later Left")
	}
	if f.Direction() != ActionLeft {
		t.Errorf("Direction() = %v, expected Left", f.Direction())
	}
	if !f.Has(ActionConfirm) {
		t.Error("Non-direction actions should be kept")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) || !f.Empty() || f.Direction() != ActionNone {
		t.Error("Zero frame should be empty")
	}
	f.Set(ActionHelp)
	if !f.Has(ActionHelp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameListCloneClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRestart)
	f.Set(ActionDown)

	list := f.List()
	if len(list) != 2 || list[0] != ActionDown || list[1] != ActionRestart {
		t.Errorf("List() = %v", list)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionDown) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" || Action(99).String() != "Unknown" {
		t.Error("unexpected Action.String output")
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionUp; a <= ActionQuit; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("unknown names should not parse")
	}
	if _, ok := ParseAction("None"); ok {
		t.Error("None is not a triggerable action")
	}
}
