package carousel

// Role is the visual slot a slide occupies relative to the focused one.
type Role string

const (
	Center Role = "center"
	Left   Role = "left"
	Right  Role = "right"
	Hidden Role = "hidden"
)

// Position derives the role of the slide at index when current is focused
// in a list of count slides. With fewer than three slides there are no
// left/right roles, otherwise both neighbours would land in one slot.
func Position(current, index, count int) Role {
	if count <= 0 {
		return Hidden
	}
	if index == current {
		return Center
	}
	if count < 3 {
		return Hidden
	}
	switch index {
	case (current - 1 + count) % count:
		return Left
	case (current + 1) % count:
		return Right
	}
	return Hidden
}
