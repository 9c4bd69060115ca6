package testutil

// SampleRows is the canonical ten by ten patrol map.
//
// Unobstructed, the guard visits 41 cells and exits through the bottom edge.
// Six single-cell placements trap it:
//
//	(3,6) (6,7) (7,7) (1,8) (3,8) (7,9)
func SampleRows() []string {
	return []string{
		"....#.....",
		".........#",
		"..........",
		"..#.......",
		".......#..",
		"..........",
		".#..^.....",
		"........#.",
		"#.........",
		"......#...",
	}
}

// SampleTrailRows is SampleRows with the unobstructed path painted as X.
func SampleTrailRows() []string {
	return []string{
		"....#.....",
		"....XXXXX#",
		"....X...X.",
		"..#.X...X.",
		"..XXXXX#X.",
		"..X.X.X.X.",
		".#XXXXXXX.",
		".XXXXXXX#.",
		"#XXXXXXX..",
		"......#X..",
	}
}

// LoopRows is a map whose four obstacles hold the guard in a closed
// rectangle forever.
func LoopRows() []string {
	return []string{
		".#....",
		".....#",
		"......",
		".^....",
		"#.....",
		"....#.",
	}
}

// WalledRows boxes the guard in on all four sides.
func WalledRows() []string {
	return []string{
		".....",
		"..#..",
		".#^#.",
		"..#..",
		".....",
	}
}
