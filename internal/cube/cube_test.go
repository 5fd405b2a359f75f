package cube

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

var allQuarterMoves = []types.Move{
	{Layer: types.LayerU, Turn: types.TurnCW}, {Layer: types.LayerU, Turn: types.TurnCCW},
	{Layer: types.LayerL, Turn: types.TurnCW}, {Layer: types.LayerL, Turn: types.TurnCCW},
	{Layer: types.LayerF, Turn: types.TurnCW}, {Layer: types.LayerF, Turn: types.TurnCCW},
	{Layer: types.LayerR, Turn: types.TurnCW}, {Layer: types.LayerR, Turn: types.TurnCCW},
	{Layer: types.LayerB, Turn: types.TurnCW}, {Layer: types.LayerB, Turn: types.TurnCCW},
	{Layer: types.LayerD, Turn: types.TurnCW}, {Layer: types.LayerD, Turn: types.TurnCCW},
	{Layer: types.LayerV, Turn: types.TurnCW}, {Layer: types.LayerV, Turn: types.TurnCCW},
	{Layer: types.LayerH, Turn: types.TurnCW}, {Layer: types.LayerH, Turn: types.TurnCCW},
	{Layer: types.LayerS, Turn: types.TurnCW}, {Layer: types.LayerS, Turn: types.TurnCCW},
}

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("New cube should be valid: %v", err)
	}
}

func TestSolvedLayout(t *testing.T) {
	c := New()

	wantFaces := map[types.Layer][9]string{
		types.LayerU: {"LUB", "UB", "RUB", "LU", "U", "RU", "LUF", "UF", "RUF"},
		types.LayerL: {"LUB", "LU", "LUF", "LB", "L", "LF", "LDB", "LD", "LDF"},
		types.LayerF: {"LUF", "UF", "RUF", "LF", "F", "RF", "LDF", "DF", "RDF"},
		types.LayerR: {"RUF", "RU", "RUB", "RF", "R", "RB", "RDF", "RD", "RDB"},
		types.LayerB: {"RUB", "UB", "LUB", "RB", "B", "LB", "RDB", "DB", "LDB"},
		types.LayerD: {"LDF", "DF", "RDF", "LD", "D", "RD", "LDB", "DB", "RDB"},
	}
	for face, want := range wantFaces {
		if got := c.Face(face); got != want {
			t.Errorf("face %s = %v, want %v", face, got, want)
		}
	}

	wantSlices := map[types.Layer][8]string{
		types.LayerV: {"UB", "U", "UF", "F", "DF", "D", "DB", "B"},
		types.LayerH: {"LB", "L", "LF", "F", "RF", "R", "RB", "B"},
		types.LayerS: {"LU", "U", "RU", "R", "RD", "D", "LD", "L"},
	}
	for slice, want := range wantSlices {
		if got := c.Slice(slice); got != want {
			t.Errorf("slice %s = %v, want %v", slice, got, want)
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := New()
	if err := c.Rotate(types.LayerR, true); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestFourQuarterTurns_ReturnToStart(t *testing.T) {
	for _, m := range allQuarterMoves {
		c := New()
		for i := 0; i < 4; i++ {
			if err := c.Rotate(m.Layer, m.Clockwise()); err != nil {
				t.Fatalf("%s: %v", m, err)
			}
		}
		if !c.IsSolved() {
			t.Errorf("%s x 4 should return to solved", m)
			t.Log(c.String())
		}
	}
}

func TestMoveThenInverse_RestoresState(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := New()
	for i := 0; i < 30; i++ {
		m := allQuarterMoves[rng.Intn(len(allQuarterMoves))]
		if err := start.ApplyMove(m); err != nil {
			t.Fatal(err)
		}
	}

	for _, m := range allQuarterMoves {
		c := start.Clone()
		if err := c.ApplyMove(m); err != nil {
			t.Fatal(err)
		}
		if err := c.ApplyMove(m.Inverse()); err != nil {
			t.Fatal(err)
		}
		if !c.Equal(start) {
			t.Errorf("%s then %s should restore the previous state", m, m.Inverse())
		}
	}
}

func TestRMove_Example(t *testing.T) {
	c := New()
	prevF2 := c.Face(types.LayerF)[2]
	prevD2 := c.Face(types.LayerD)[2]
	prevU2 := c.Face(types.LayerU)[2]
	prevF2Slot := c.Face(types.LayerF)[2]

	if err := c.Rotate(types.LayerR, true); err != nil {
		t.Fatal(err)
	}
	if got := c.Face(types.LayerU)[2]; got != prevF2 {
		t.Errorf("after R, U[2] = %s, want %s", got, prevF2)
	}
	if got := c.Face(types.LayerF)[2]; got != prevD2 {
		t.Errorf("after R, F[2] = %s, want %s", got, prevD2)
	}

	if err := c.Rotate(types.LayerR, false); err != nil {
		t.Fatal(err)
	}
	if got := c.Face(types.LayerU)[2]; got != prevU2 {
		t.Errorf("after R R', U[2] = %s, want %s", got, prevU2)
	}
	if got := c.Face(types.LayerF)[2]; got != prevF2Slot {
		t.Errorf("after R R', F[2] = %s, want %s", got, prevF2Slot)
	}
	if !c.IsSolved() {
		t.Error("R R' should return to solved")
		t.Log(c.String())
	}
}

func TestUMove_FrontGoesLeft(t *testing.T) {
	c := New()
	if err := c.Rotate(types.LayerU, true); err != nil {
		t.Fatal(err)
	}
	if got := c.Face(types.LayerL)[1]; got != "UF" {
		t.Errorf("after U, L[1] = %s, want UF", got)
	}
	if got := c.Face(types.LayerU)[4]; got != "U" {
		t.Errorf("U center moved to %s", got)
	}
}

func TestSliceTurns_FollowStandardDirection(t *testing.T) {
	tests := []struct {
		slice types.Layer
		face  types.Layer
		want  string
	}{
		{types.LayerV, types.LayerF, "U"}, // like L: U center goes to F
		{types.LayerH, types.LayerR, "F"}, // like D: F center goes to R
		{types.LayerS, types.LayerR, "U"}, // like F: U center goes to R
	}

	for _, tt := range tests {
		c := New()
		if err := c.Rotate(tt.slice, true); err != nil {
			t.Fatal(err)
		}
		if got := c.Face(tt.face)[4]; got != tt.want {
			t.Errorf("after %s, %s center = %s, want %s", tt.slice, tt.face, got, tt.want)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("after %s: %v", tt.slice, err)
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	c := New()
	for i := 0; i < 6; i++ {
		c.Rotate(types.LayerR, true)  // R
		c.Rotate(types.LayerU, true)  // U
		c.Rotate(types.LayerR, false) // R'
		c.Rotate(types.LayerU, false) // U'
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestRandomSequence_KeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New()
	for i := 0; i < 500; i++ {
		m := allQuarterMoves[rng.Intn(len(allQuarterMoves))]
		if err := c.ApplyMove(m); err != nil {
			t.Fatalf("move %d (%s): %v", i, m, err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("after move %d (%s): %v", i, m, err)
		}
	}
}

func TestScrambleAndReverse(t *testing.T) {
	c := New()
	scramble := []types.Move{
		{Layer: types.LayerR, Turn: types.TurnCW}, {Layer: types.LayerU, Turn: types.TurnCW},
		{Layer: types.LayerV, Turn: types.TurnCCW}, {Layer: types.LayerF, Turn: types.Turn180},
		{Layer: types.LayerS, Turn: types.TurnCW}, {Layer: types.LayerD, Turn: types.TurnCCW},
		{Layer: types.LayerH, Turn: types.TurnCW}, {Layer: types.LayerB, Turn: types.TurnCW},
	}
	if err := c.ApplyMoves(scramble); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Error("Cube should be scrambled after moves")
	}

	for i := len(scramble) - 1; i >= 0; i-- {
		if err := c.ApplyMove(scramble[i].Inverse()); err != nil {
			t.Fatal(err)
		}
	}
	if !c.IsSolved() {
		t.Error("Cube should be solved after reversing scramble")
		t.Log(c.String())
	}
}

func TestCorruptTable_RevertsAndReportsConsistency(t *testing.T) {
	c := New()
	if err := c.Rotate(types.LayerF, true); err != nil {
		t.Fatal(err)
	}
	before := c.Clone()

	bad := tables[types.LayerU]
	bad.cycleCW = []int{0, 0, 2, 3, 4, 5, 6, 7, 8}

	err := c.apply(bad, true)
	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("apply with a duplicating cycle: got %v, want ErrConsistency", err)
	}
	if !c.Equal(before) {
		t.Error("state should be unchanged after a rejected rotation")
		t.Log(c.String())
	}
}

func TestUnknownLayer(t *testing.T) {
	c := New()
	err := c.Rotate(types.Layer("X"), true)
	if !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Rotate(X) = %v, want ErrUnknownLayer", err)
	}
	if !c.IsSolved() {
		t.Error("unknown layer should not change the cube")
	}
}

func TestNeighbours(t *testing.T) {
	tests := map[types.Layer][]types.Layer{
		types.LayerU: {types.LayerL, types.LayerF, types.LayerR, types.LayerB, types.LayerV, types.LayerS},
		types.LayerF: {types.LayerU, types.LayerL, types.LayerR, types.LayerD, types.LayerV, types.LayerH},
		types.LayerV: {types.LayerU, types.LayerF, types.LayerB, types.LayerD, types.LayerH, types.LayerS},
	}
	for l, want := range tests {
		got := Neighbours(l)
		if len(got) != len(want) {
			t.Errorf("Neighbours(%s) = %v, want %v", l, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Neighbours(%s) = %v, want %v", l, got, want)
				break
			}
		}
	}
}

func TestLinkTables_AreComplete(t *testing.T) {
	// Faces: 4 neighbour faces x 3 plus 2 crossing slices x 3.
	// Slices: 4 faces x 3 plus 2 crossing slices x 2.
	for _, l := range types.Layers {
		want := 18
		if l.IsSlice() {
			want = 16
		}
		if got := len(tables[l].links); got != want {
			t.Errorf("%s has %d links, want %d", l, got, want)
		}
	}
}
