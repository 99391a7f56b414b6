package scoring

import "fmt"

// coxSpragueTable holds the static place-by-starters points lookup for
// the Cox-Sprague variant. Row s-1 covers fleets of s starters, places
// 1 through s+1, with the s+1 slot worth zero. Fleets larger than 20
// use the 20-starter row; places beyond 21 extrapolate linearly.
var coxSpragueTable = [20][]int{
	{5, 0},
	{10, 7, 0},
	{15, 12, 8, 0},
	{20, 17, 13, 9, 0},
	{25, 22, 18, 14, 10, 0},
	{30, 27, 24, 20, 16, 10, 0},
	{35, 32, 29, 25, 21, 17, 11, 0},
	{40, 37, 34, 30, 26, 22, 17, 11, 0},
	{45, 42, 39, 35, 32, 28, 23, 18, 12, 0},
	{50, 47, 44, 40, 37, 33, 29, 24, 19, 13, 0},
	{55, 52, 49, 45, 42, 38, 34, 30, 25, 20, 13, 0},
	{60, 57, 54, 50, 47, 43, 40, 35, 31, 26, 20, 14, 0},
	{65, 62, 59, 56, 52, 49, 45, 41, 37, 32, 27, 21, 14, 0},
	{70, 67, 64, 61, 57, 54, 50, 46, 42, 38, 33, 28, 22, 14, 0},
	{75, 72, 69, 66, 62, 59, 55, 51, 47, 43, 39, 34, 29, 22, 15, 0},
	{80, 77, 74, 71, 67, 64, 60, 57, 53, 49, 44, 40, 35, 29, 23, 15, 0},
	{85, 82, 79, 76, 72, 69, 65, 62, 58, 54, 50, 46, 41, 36, 30, 24, 16, 0},
	{90, 87, 84, 81, 77, 74, 71, 67, 63, 59, 55, 51, 47, 42, 37, 31, 24, 16, 0},
	{95, 92, 89, 86, 82, 79, 76, 72, 68, 65, 61, 57, 52, 48, 43, 37, 31, 25, 16, 0},
	{100, 97, 94, 91, 87, 84, 81, 77, 74, 70, 66, 62, 58, 53, 49, 44, 38, 32, 25, 17, 0},
}

// CoxSpragueScore looks up the points for a finishing place in a fleet of
// the given size. Place starters+1 is the zero-point did-not-finish slot;
// anything beyond that is an error. Fleets above 20 starters use the
// 20-starter row, and places beyond the row's 21 entries extrapolate as
// max(79-place, 0).
func CoxSpragueScore(place, starters int) (int, error) {
	if place < 1 || starters < 1 {
		return 0, fmt.Errorf("%w: place %d, starters %d", ErrPlaceOutOfRange, place, starters)
	}
	if place > starters+1 {
		return 0, fmt.Errorf("%w: place %d exceeds starters+1 (%d)", ErrPlaceOutOfRange, place, starters+1)
	}
	row := coxSpragueTable[min(starters, 20)-1]
	if place > len(row) {
		v := 79 - place
		if v < 0 {
			v = 0
		}
		return v, nil
	}
	return row[place-1], nil
}
