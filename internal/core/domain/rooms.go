package domain

type RoomSelection struct {
	Room     RoomType `json:"room"`
	Quantity int      `json:"quantity"`
}

func findRoom(rooms []RoomSelection, id ItemID) int {
	for i, sel := range rooms {
		if sel.Room.ItemID == id {
			return i
		}
	}
	return -1
}

// QuantityOf reports how many rooms of the given type are selected.
func QuantityOf(rooms []RoomSelection, id ItemID) int {
	if i := findRoom(rooms, id); i >= 0 {
		return rooms[i].Quantity
	}
	return 0
}

// AllocateRoom adds one room of type r. It refuses when the new quantity would
// exceed r.Available. Existing rows keep their position; new rows append.
func AllocateRoom(rooms []RoomSelection, r RoomType) ([]RoomSelection, bool) {
	i := findRoom(rooms, r.ItemID)
	current := 0
	if i >= 0 {
		current = rooms[i].Quantity
	}
	if current+1 > r.Available {
		return rooms, false
	}

	out := cloneRooms(rooms)
	if i >= 0 {
		out[i] = RoomSelection{Room: r, Quantity: current + 1}
	} else {
		out = append(out, RoomSelection{Room: r, Quantity: 1})
	}
	return out, true
}

// ReleaseRoom removes one room of the given type. A row that reaches zero is dropped.
func ReleaseRoom(rooms []RoomSelection, id ItemID) ([]RoomSelection, bool) {
	i := findRoom(rooms, id)
	if i < 0 || rooms[i].Quantity <= 0 {
		return rooms, false
	}

	out := cloneRooms(rooms)
	if out[i].Quantity == 1 {
		return append(out[:i], out[i+1:]...), true
	}
	out[i].Quantity--
	return out, true
}

func cloneRooms(rooms []RoomSelection) []RoomSelection {
	out := make([]RoomSelection, len(rooms), len(rooms)+1)
	copy(out, rooms)
	return out
}
