package isocurve

// Face edge j joins local corner j and corner (j+1) mod k:
//
//	quad:     0 = A-B, 1 = B-C, 2 = C-D, 3 = D-A
//	triangle: 0 = A-B, 1 = B-C, 2 = C-A
//
// A case index has one bit per corner, A in the most significant bit. Corners
// whose value is strictly above the iso value set their bit. Tables are
// indexed with caseIndex-1; cases 0 and 2^k-1 never cross.

const (
	quadSaddleBD = 5  // B and D above
	quadSaddleAC = 10 // A and C above
)

var quadPowers = [4]int{8, 4, 2, 1}
var triPowers = [3]int{4, 2, 1}

// quadCases lists the crossed edge pair for each non-uniform quad case. The
// saddle rows hold the pairing used when the center does not join the
// "above" corners; the extractor dispatches them separately.
var quadCases = [14][2]int8{
	{2, 3}, // 1:  D
	{1, 2}, // 2:  C
	{1, 3}, // 3:  C D
	{0, 1}, // 4:  B
	{0, 1}, // 5:  B D (saddle)
	{0, 2}, // 6:  B C
	{0, 3}, // 7:  B C D
	{0, 3}, // 8:  A
	{0, 2}, // 9:  A D
	{0, 1}, // 10: A C (saddle)
	{0, 1}, // 11: A C D
	{1, 3}, // 12: A B
	{1, 2}, // 13: A B D
	{2, 3}, // 14: A B C
}

// saddlePairs holds both connections of a saddle quad: index 0 joins
// edges 0-1 and 2-3, index 1 joins edges 0-3 and 1-2.
var saddlePairs = [2][2][2]int8{
	{{0, 1}, {2, 3}},
	{{0, 3}, {1, 2}},
}

var triCases = [6][2]int8{
	{1, 2}, // 1: C
	{0, 1}, // 2: B
	{0, 2}, // 3: B C
	{0, 2}, // 4: A
	{0, 1}, // 5: A C
	{1, 2}, // 6: A B
}

// saddleConnection picks the saddlePairs entry for a saddle case given
// whether the face center is above the iso value.
func saddleConnection(caseIndex int, centerAbove bool) int {
	if (caseIndex == quadSaddleBD && centerAbove) || (caseIndex == quadSaddleAC && !centerAbove) {
		return 1
	}
	return 0
}

func isQuadSaddle(caseIndex int) bool {
	return caseIndex == quadSaddleBD || caseIndex == quadSaddleAC
}
