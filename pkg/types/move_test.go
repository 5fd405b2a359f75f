package types

import "testing"

func TestLayerValid(t *testing.T) {
	for _, l := range Layers {
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}
	for _, l := range []Layer{"", "X", "M", "u"} {
		if l.Valid() {
			t.Errorf("%q should not be valid", l)
		}
	}
	if LayerR.IsSlice() || !LayerS.IsSlice() {
		t.Error("IsSlice mismatch")
	}
}

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Move{LayerR, TurnCW}, "R"},
		{Move{LayerU, TurnCCW}, "U'"},
		{Move{LayerV, Turn180}, "V2"},
	}
	for _, tt := range tests {
		if got := tt.move.Notation(); got != tt.want {
			t.Errorf("Notation() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoveAngles(t *testing.T) {
	if a := (Move{LayerF, TurnCW}).TargetAngle(); a != -90 {
		t.Errorf("clockwise angle = %v, want -90", a)
	}
	if a := (Move{LayerF, TurnCCW}).TargetAngle(); a != 90 {
		t.Errorf("counter-clockwise angle = %v, want 90", a)
	}
	q := Move{LayerD, Turn180}.Quarters()
	if len(q) != 2 || q[0] != (Move{LayerD, TurnCW}) || q[1] != q[0] {
		t.Errorf("Quarters() = %v", q)
	}
}

func TestMoveMerge(t *testing.T) {
	r := Move{LayerR, TurnCW}
	if m := r.Merge(r); m == nil || m.Turn != Turn180 {
		t.Errorf("R R should merge to R2, got %v", m)
	}
	if m := r.Merge(r.Inverse()); m != nil {
		t.Errorf("R R' should cancel, got %v", m)
	}
	if m := (Move{LayerR, Turn180}).Merge(r); m == nil || m.Turn != TurnCCW {
		t.Errorf("R2 R should merge to R', got %v", m)
	}
	if m := r.Merge(Move{LayerU, TurnCW}); m != nil {
		t.Errorf("different layers should not merge, got %v", m)
	}
	if half := (Move{LayerD, Turn180}); half.Inverse() != half {
		t.Errorf("D2 should be its own inverse, got %v", half.Inverse())
	}
	if !r.IsCancellation(r.Inverse()) {
		t.Error("R' should cancel R")
	}
}
