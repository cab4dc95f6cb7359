// Package cross models intersections ("crosses"): a stable id and the up
// to four incident road slots described in spec.md §3.
package cross

// NoRoad is the sentinel slot value meaning "no road in this compass slot".
const NoRoad int32 = -1

// Cross is one intersection. Slots holds up to four incident road ids in
// slot order (0,1,2,3); a slot value of NoRoad means the slot is unused.
//
// 功能：保存路口的四个方向槽位，槽位0、1称为"正向入" 槽位，2、3称为
// "反向入"槽位——这一约定仅用于还原原始数据里槽位分组的语义，实际的
// 行驶方向判定由 entity/road 的 Road.HasDirectionInto/DirectionFrom 根据
// 道路的起止点直接推导。
type Cross struct {
	ID    int32
	Slots [4]int32
}

// SlotOf returns the slot index (0..3) at which roadID sits, or -1 if the
// road is not incident to this cross.
func (c *Cross) SlotOf(roadID int32) int {
	for i, r := range c.Slots {
		if r == roadID {
			return i
		}
	}
	return -1
}

// IncidentRoads returns the four slots in order, NoRoad for empty slots.
func (c *Cross) IncidentRoads() [4]int32 {
	return c.Slots
}
